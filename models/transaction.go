package models

import (
	"time"
)

// DateLayout 日期格式（无时间部分）
const DateLayout = "2006-01-02"

// Transaction 收支记录模型
type Transaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:10;not null;index:idx_transactions_type_date,priority:1;check:type IN ('income','expense')"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null;check:amount > 0"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Description *string   `json:"description" gorm:"size:500"`
	Date        string    `json:"date" gorm:"type:varchar(10);not null;index;index:idx_transactions_type_date,priority:2"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Category    *Category `json:"-" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// 以下字段仅查询时通过 JOIN categories 填充
	CategoryName  string `json:"category_name" gorm:"->;-:migration"`
	CategoryColor string `json:"category_color" gorm:"->;-:migration"`
	CategoryIcon  string `json:"category_icon" gorm:"->;-:migration"`
}

func (Transaction) TableName() string {
	return "transactions"
}
