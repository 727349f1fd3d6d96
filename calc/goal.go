package calc

import (
	"errors"
	"math"

	"fintrack/models"
)

// 进度更新模式
const (
	ModeAdd = "add" // 在当前金额基础上增加
	ModeSet = "set" // 直接设置当前金额
)

var (
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrExceedsTarget   = errors.New("amount cannot exceed target")
	ErrUnknownMode     = errors.New("mode must be add or set")
	ErrGoalUnavailable = errors.New("goal is required")
)

// Progress 计算目标完成百分比，结果限制在 [0, 100]。
// 目标为空或目标金额不大于 0 时返回 0。
func Progress(goal *models.SavingsGoal) int {
	if goal == nil || goal.TargetAmount <= 0 {
		return 0
	}
	pct := math.Round(goal.CurrentAmount * 100 / goal.TargetAmount)
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// ApplyProgressUpdate 计算进度更新后的当前金额。
// 结果不超过目标金额；直接编辑 current_amount 不受此限制。
func ApplyProgressUpdate(goal *models.SavingsGoal, mode string, amount float64) (float64, error) {
	if goal == nil {
		return 0, ErrGoalUnavailable
	}
	if amount < 0 || math.IsNaN(amount) {
		return 0, ErrNegativeAmount
	}

	var next float64
	switch mode {
	case ModeAdd:
		next = addMoney(goal.CurrentAmount, amount)
	case ModeSet:
		next = RoundMoney(amount)
		if next > goal.TargetAmount {
			return 0, ErrExceedsTarget
		}
	default:
		return 0, ErrUnknownMode
	}

	if next > goal.TargetAmount {
		next = goal.TargetAmount
	}
	return next, nil
}

// AutoComplete 持久化前作用于合并后的目标：当前金额达到目标金额时强制标记为已完成，
// 覆盖请求中显式传入的状态。
func AutoComplete(goal *models.SavingsGoal) {
	if goal == nil {
		return
	}
	if goal.CurrentAmount >= goal.TargetAmount {
		goal.Status = models.GoalStatusCompleted
	}
}
