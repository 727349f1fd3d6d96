package service

import (
	"context"
	"time"

	"fintrack/calc"
	"fintrack/models"

	"gorm.io/gorm"
)

// Summary 收支汇总
type Summary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Balance       float64 `json:"balance"`
}

// CategoryTotal 按类别统计的一行，没有收支记录的类别 total 与 transaction_count 为 0
type CategoryTotal struct {
	ID               uint    `json:"id"`
	CategoryID       uint    `json:"category_id" gorm:"-"`
	Name             string  `json:"name"`
	CategoryName     string  `json:"category_name" gorm:"-"`
	Type             string  `json:"type"`
	Color            string  `json:"color"`
	Icon             string  `json:"icon"`
	Total            float64 `json:"total"`
	TransactionCount int64   `json:"transaction_count"`
}

// MonthlyTrend 月度趋势，仅包含有收支记录的月份
type MonthlyTrend struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// CategoryBudget 单个支出类别的预算使用情况
type CategoryBudget struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Color         string           `json:"color"`
	Icon          string           `json:"icon"`
	MonthlyBudget *float64         `json:"monthly_budget"`
	Spent         float64          `json:"spent"`
	Remaining     float64          `json:"remaining"`
	Percentage    float64          `json:"percentage"`
	Status        calc.BudgetState `json:"status"`
}

// BudgetOverview 预算总览
type BudgetOverview struct {
	StartDate   string           `json:"startDate"`
	EndDate     string           `json:"endDate"`
	TotalBudget float64          `json:"total_budget"`
	TotalSpent  float64          `json:"total_spent"`
	Remaining   float64          `json:"remaining"`
	Categories  []CategoryBudget `json:"categories"`
}

// AnalyticsService 统计服务，每次查询都重新读取当前数据，不做缓存
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db, now: time.Now}
}

// Summary 汇总日期范围内的收入、支出与结余；无记录时三项均为 0
func (s *AnalyticsService) Summary(ctx context.Context, r DateRange) (*Summary, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	var out Summary
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expenses`)
	if err := r.apply(q, "date").Scan(&out).Error; err != nil {
		return nil, Internal("Failed to compute summary", err)
	}

	out.TotalIncome = calc.RoundMoney(out.TotalIncome)
	out.TotalExpenses = calc.RoundMoney(out.TotalExpenses)
	out.Balance = calc.RoundMoney(out.TotalIncome - out.TotalExpenses)
	return &out, nil
}

// ByCategory 按类别统计，所有类别都会出现（LEFT JOIN，日期条件放在 ON 子句中），按 total 降序
func (s *AnalyticsService) ByCategory(ctx context.Context, r DateRange) ([]CategoryTotal, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	join := "LEFT JOIN transactions t ON t.category_id = c.id"
	var args []interface{}
	if r.StartDate != "" {
		join += " AND t.date >= ?"
		args = append(args, r.StartDate)
	}
	if r.EndDate != "" {
		join += " AND t.date <= ?"
		args = append(args, r.EndDate)
	}

	out := make([]CategoryTotal, 0)
	err := s.db.WithContext(ctx).Table("categories c").
		Select("c.id, c.name, c.type, c.color, c.icon, COALESCE(SUM(t.amount), 0) AS total, COUNT(t.id) AS transaction_count").
		Joins(join, args...).
		Group("c.id, c.name, c.type, c.color, c.icon").
		Order("total DESC, c.name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, Internal("Failed to compute category breakdown", err)
	}

	for i := range out {
		out[i].CategoryID = out[i].ID
		out[i].CategoryName = out[i].Name
		out[i].Total = calc.RoundMoney(out[i].Total)
	}
	return out, nil
}

// Trends 按月（YYYY-MM）统计收支，升序；没有记录的月份不补零
func (s *AnalyticsService) Trends(ctx context.Context, r DateRange) ([]MonthlyTrend, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	out := make([]MonthlyTrend, 0)
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select(`SUBSTR(date, 1, 7) AS month,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses`)
	err := r.apply(q, "date").
		Group("SUBSTR(date, 1, 7)").
		Order("month ASC").
		Scan(&out).Error
	if err != nil {
		return nil, Internal("Failed to compute trends", err)
	}

	for i := range out {
		out[i].Income = calc.RoundMoney(out[i].Income)
		out[i].Expenses = calc.RoundMoney(out[i].Expenses)
		out[i].Net = calc.RoundMoney(out[i].Income - out[i].Expenses)
	}
	return out, nil
}

// Budgets 支出类别的预算使用情况；未指定日期范围时统计本月（1 日至今天）
func (s *AnalyticsService) Budgets(ctx context.Context, r DateRange) (*BudgetOverview, error) {
	if r.StartDate == "" && r.EndDate == "" {
		now := s.now()
		r.StartDate = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(models.DateLayout)
		r.EndDate = now.Format(models.DateLayout)
	}

	totals, err := s.ByCategory(ctx, r)
	if err != nil {
		return nil, err
	}
	spent := make(map[uint]float64, len(totals))
	for _, t := range totals {
		spent[t.ID] = t.Total
	}

	var cats []models.Category
	if err := s.db.WithContext(ctx).Where("type = ?", models.TypeExpense).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, Internal("Failed to load categories", err)
	}

	out := &BudgetOverview{
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Categories: make([]CategoryBudget, 0, len(cats)),
	}
	for _, c := range cats {
		used := spent[c.ID]
		row := CategoryBudget{
			ID:            c.ID,
			Name:          c.Name,
			Color:         c.Color,
			Icon:          c.Icon,
			MonthlyBudget: c.MonthlyBudget,
			Spent:         used,
			Percentage:    calc.BudgetPercentage(used, c.MonthlyBudget),
			Status:        calc.BudgetStatus(used, c.MonthlyBudget),
		}
		if calc.HasBudget(c.MonthlyBudget) {
			row.Remaining = calc.RoundMoney(max(0, *c.MonthlyBudget-used))
			out.TotalBudget += *c.MonthlyBudget
			out.TotalSpent += used
		}
		out.Categories = append(out.Categories, row)
	}
	out.TotalBudget = calc.RoundMoney(out.TotalBudget)
	out.TotalSpent = calc.RoundMoney(out.TotalSpent)
	out.Remaining = calc.RoundMoney(out.TotalBudget - out.TotalSpent)
	return out, nil
}
