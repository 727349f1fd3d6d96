package calc

// BudgetState 预算使用状态
type BudgetState string

const (
	BudgetNone    BudgetState = "none"    // 未设置预算
	BudgetGood    BudgetState = "good"    // 低于 80%
	BudgetWarning BudgetState = "warning" // [80%, 100%)
	BudgetOver    BudgetState = "over"    // 达到或超过 100%
)

// 预警阈值（百分比）
const (
	budgetWarningPct = 80
	budgetOverPct    = 100
)

// HasBudget 预算为 NULL 或 0 都视为未设置
func HasBudget(budget *float64) bool {
	return budget != nil && *budget > 0
}

// BudgetStatus 根据支出与预算判断状态，分类使用未截断的比例。
func BudgetStatus(spent float64, budget *float64) BudgetState {
	if !HasBudget(budget) {
		return BudgetNone
	}
	pct := spent * 100 / *budget
	switch {
	case pct >= budgetOverPct:
		return BudgetOver
	case pct >= budgetWarningPct:
		return BudgetWarning
	default:
		return BudgetGood
	}
}

// BudgetPercentage 用于展示的已用百分比，上限 100，保留两位小数。
func BudgetPercentage(spent float64, budget *float64) float64 {
	if !HasBudget(budget) {
		return 0
	}
	pct := spent * 100 / *budget
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return RoundMoney(pct)
}
