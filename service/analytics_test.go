package service

import (
	"context"
	"testing"

	"fintrack/calc"
	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics_SummaryEmpty(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	sum, err := svc.Summary(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, Summary{}, *sum)
}

func TestAnalytics_Summary(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeIncome, 5000, "Salary", "2024-01-05")
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	svc := NewAnalyticsService(db)

	sum, err := svc.Summary(context.Background(), DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 5000.0, sum.TotalIncome)
	assert.Equal(t, 1200.0, sum.TotalExpenses)
	assert.Equal(t, 3800.0, sum.Balance)

	// 日期范围为闭区间
	sum, err = svc.Summary(context.Background(), DateRange{StartDate: "2024-01-10", EndDate: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.TotalIncome)
	assert.Equal(t, 1200.0, sum.TotalExpenses)
	assert.Equal(t, -1200.0, sum.Balance)
}

func TestAnalytics_SummaryRounding(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeExpense, 0.1, "Food & Dining", "2024-02-01")
	addTxn(t, db, models.TypeExpense, 0.2, "Food & Dining", "2024-02-02")

	sum, err := NewAnalyticsService(db).Summary(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0.3, sum.TotalExpenses)
	assert.Equal(t, -0.3, sum.Balance)
}

func TestAnalytics_InvalidRange(t *testing.T) {
	svc := NewAnalyticsService(newTestDB(t))

	_, err := svc.Summary(context.Background(), DateRange{StartDate: "2024-13-01"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = svc.Trends(context.Background(), DateRange{EndDate: "yesterday"})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAnalytics_ByCategory(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeIncome, 5000, "Salary", "2024-01-05")
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	addTxn(t, db, models.TypeExpense, 40, "Food & Dining", "2024-01-11")
	addTxn(t, db, models.TypeExpense, 45.5, "Food & Dining", "2024-02-11")
	svc := NewAnalyticsService(db)

	rows, err := svc.ByCategory(context.Background(), DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 15)

	assert.Equal(t, "Salary", rows[0].Name)
	assert.Equal(t, 5000.0, rows[0].Total)
	assert.Equal(t, "Housing", rows[1].Name)
	assert.Equal(t, "Food & Dining", rows[2].Name)
	assert.Equal(t, 85.5, rows[2].Total)
	assert.Equal(t, int64(2), rows[2].TransactionCount)
	assert.Equal(t, rows[2].ID, rows[2].CategoryID)
	assert.Equal(t, rows[2].Name, rows[2].CategoryName)

	// 零活动类别仍然出现，按名称升序排在后面
	for i := 3; i < len(rows); i++ {
		assert.Zero(t, rows[i].Total)
		assert.Zero(t, rows[i].TransactionCount)
		if i > 3 {
			assert.LessOrEqual(t, rows[i-1].Name, rows[i].Name)
		}
	}
}

func TestAnalytics_ByCategoryRangeKeepsCategories(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	addTxn(t, db, models.TypeExpense, 30, "Transportation", "2024-03-02")
	svc := NewAnalyticsService(db)

	rows, err := svc.ByCategory(context.Background(), DateRange{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, rows, 15)

	byName := map[string]CategoryTotal{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	require.Contains(t, byName, "Housing")
	assert.Zero(t, byName["Housing"].Total)
	assert.Zero(t, byName["Housing"].TransactionCount)
	assert.Equal(t, 30.0, byName["Transportation"].Total)
}

func TestAnalytics_ByCategoryMatchesSummary(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeIncome, 5000, "Salary", "2024-01-05")
	addTxn(t, db, models.TypeIncome, 250.25, "Freelance", "2024-01-20")
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	addTxn(t, db, models.TypeExpense, 85.5, "Food & Dining", "2024-01-12")
	addTxn(t, db, models.TypeExpense, 19.99, "Entertainment", "2024-02-01")
	svc := NewAnalyticsService(db)
	r := DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"}

	sum, err := svc.Summary(context.Background(), r)
	require.NoError(t, err)
	rows, err := svc.ByCategory(context.Background(), r)
	require.NoError(t, err)

	var income, expense float64
	for _, row := range rows {
		if row.Type == models.TypeIncome {
			income = calc.RoundMoney(income + row.Total)
		} else {
			expense = calc.RoundMoney(expense + row.Total)
		}
	}
	assert.Equal(t, sum.TotalIncome, income)
	assert.Equal(t, sum.TotalExpenses, expense)
}

func TestAnalytics_Trends(t *testing.T) {
	db := newTestDB(t)
	addTxn(t, db, models.TypeIncome, 5000, "Salary", "2024-01-05")
	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-01-10")
	addTxn(t, db, models.TypeExpense, 100, "Utilities", "2024-03-15")
	svc := NewAnalyticsService(db)

	trends, err := svc.Trends(context.Background(), DateRange{})
	require.NoError(t, err)

	// 2 月没有记录，不补零
	require.Len(t, trends, 2)
	assert.Equal(t, MonthlyTrend{Month: "2024-01", Income: 5000, Expenses: 1200, Net: 3800}, trends[0])
	assert.Equal(t, MonthlyTrend{Month: "2024-03", Income: 0, Expenses: 100, Net: -100}, trends[1])

	trends, err = svc.Trends(context.Background(), DateRange{StartDate: "2024-02-01"})
	require.NoError(t, err)
	require.Len(t, trends, 1)
	assert.Equal(t, "2024-03", trends[0].Month)
}

func TestAnalytics_TrendsEmpty(t *testing.T) {
	trends, err := NewAnalyticsService(newTestDB(t)).Trends(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.NotNil(t, trends)
	assert.Empty(t, trends)
}

func TestAnalytics_Budgets(t *testing.T) {
	db := newTestDB(t)
	cats := NewCategoryService(db)
	housing := categoryID(t, db, "Housing")
	food := categoryID(t, db, "Food & Dining")
	_, err := cats.Update(context.Background(), housing, UpdateCategoryInput{MonthlyBudget: Nullable[float64]{Set: true, Value: 1000}})
	require.NoError(t, err)
	_, err = cats.Update(context.Background(), food, UpdateCategoryInput{MonthlyBudget: Nullable[float64]{Set: true, Value: 500}})
	require.NoError(t, err)
	// 预算为 0 视为未设置，不计入总预算与总支出
	_, err = cats.Update(context.Background(), categoryID(t, db, "Entertainment"), UpdateCategoryInput{MonthlyBudget: Nullable[float64]{Set: true, Value: 0}})
	require.NoError(t, err)

	addTxn(t, db, models.TypeExpense, 1200, "Housing", "2024-05-02")
	addTxn(t, db, models.TypeExpense, 450, "Food & Dining", "2024-05-03")
	addTxn(t, db, models.TypeExpense, 60, "Entertainment", "2024-05-04")
	addTxn(t, db, models.TypeExpense, 999, "Food & Dining", "2024-04-30")

	svc := NewAnalyticsService(db)
	svc.now = fixedNow("2024-05-20")

	out, err := svc.Budgets(context.Background(), DateRange{})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", out.StartDate)
	assert.Equal(t, "2024-05-20", out.EndDate)
	assert.Len(t, out.Categories, 10)
	assert.Equal(t, 1500.0, out.TotalBudget)
	assert.Equal(t, 1650.0, out.TotalSpent)
	assert.Equal(t, -150.0, out.Remaining)

	byName := map[string]CategoryBudget{}
	for _, c := range out.Categories {
		byName[c.Name] = c
	}
	assert.Equal(t, calc.BudgetOver, byName["Housing"].Status)
	assert.Equal(t, 100.0, byName["Housing"].Percentage)
	assert.Zero(t, byName["Housing"].Remaining)

	assert.Equal(t, calc.BudgetWarning, byName["Food & Dining"].Status)
	assert.Equal(t, 90.0, byName["Food & Dining"].Percentage)
	assert.Equal(t, 50.0, byName["Food & Dining"].Remaining)

	assert.Equal(t, calc.BudgetNone, byName["Entertainment"].Status)
	assert.Equal(t, 60.0, byName["Entertainment"].Spent)
	assert.Zero(t, byName["Entertainment"].Remaining)
	assert.Zero(t, byName["Entertainment"].Percentage)
	require.NotNil(t, byName["Entertainment"].MonthlyBudget)
	assert.Zero(t, *byName["Entertainment"].MonthlyBudget)
	assert.Nil(t, byName["Travel"].MonthlyBudget)
}
