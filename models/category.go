package models

import (
	"time"
)

// 收支类型
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Category 收支类别（初始化时写入，仅月度预算可修改）
type Category struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	Type          string    `json:"type" gorm:"size:10;not null;index;check:type IN ('income','expense')"`
	Color         string    `json:"color" gorm:"size:20"`
	Icon          string    `json:"icon" gorm:"size:50"`
	MonthlyBudget *float64  `json:"monthly_budget" gorm:"type:decimal(12,2);check:monthly_budget IS NULL OR monthly_budget >= 0"` // 月度预算，NULL 表示未设置
	CreatedAt     time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// IsValidType 判断收支类型是否合法
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// DefaultCategories 默认类别（支出在前，收入在后）
func DefaultCategories() []Category {
	return []Category{
		{Name: "Housing", Type: TypeExpense, Color: "#f59e0b", Icon: "home"},
		{Name: "Transportation", Type: TypeExpense, Color: "#3b82f6", Icon: "car"},
		{Name: "Food & Dining", Type: TypeExpense, Color: "#10b981", Icon: "utensils"},
		{Name: "Utilities", Type: TypeExpense, Color: "#6366f1", Icon: "zap"},
		{Name: "Healthcare", Type: TypeExpense, Color: "#ec4899", Icon: "heart"},
		{Name: "Entertainment", Type: TypeExpense, Color: "#8b5cf6", Icon: "film"},
		{Name: "Shopping", Type: TypeExpense, Color: "#f43f5e", Icon: "shopping-bag"},
		{Name: "Travel", Type: TypeExpense, Color: "#06b6d4", Icon: "plane"},
		{Name: "Education", Type: TypeExpense, Color: "#14b8a6", Icon: "book"},
		{Name: "Other Expenses", Type: TypeExpense, Color: "#64748b", Icon: "more-horizontal"},

		{Name: "Salary", Type: TypeIncome, Color: "#10b981", Icon: "briefcase"},
		{Name: "Freelance", Type: TypeIncome, Color: "#14b8a6", Icon: "code"},
		{Name: "Investments", Type: TypeIncome, Color: "#06b6d4", Icon: "trending-up"},
		{Name: "Gifts", Type: TypeIncome, Color: "#f59e0b", Icon: "gift"},
		{Name: "Other Income", Type: TypeIncome, Color: "#64748b", Icon: "plus-circle"},
	}
}
