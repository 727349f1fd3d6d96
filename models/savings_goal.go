package models

import (
	"time"
)

// 储蓄目标状态
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusArchived  = "archived"
)

// SavingsGoal 储蓄目标模型
type SavingsGoal struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:200;not null"`
	TargetAmount  float64   `json:"target_amount" gorm:"type:decimal(12,2);not null;check:target_amount > 0"`
	CurrentAmount float64   `json:"current_amount" gorm:"type:decimal(12,2);not null;default:0;check:current_amount >= 0"`
	Deadline      *string   `json:"deadline" gorm:"type:varchar(10)"` // YYYY-MM-DD
	Color         *string   `json:"color" gorm:"size:20"`
	Description   *string   `json:"description" gorm:"size:500"`
	Status        string    `json:"status" gorm:"size:20;not null;default:active;index;check:status IN ('active','completed','archived')"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Progress int `json:"progress" gorm:"-"` // 完成百分比，读取时计算
}

func (SavingsGoal) TableName() string {
	return "savings_goals"
}

// IsValidGoalStatus 判断目标状态是否合法
func IsValidGoalStatus(s string) bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusArchived:
		return true
	}
	return false
}
