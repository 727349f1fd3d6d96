package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestBudgetStatus(t *testing.T) {
	tests := []struct {
		name   string
		spent  float64
		budget *float64
		want   BudgetState
		pct    float64
	}{
		{"no budget", 450, nil, BudgetNone, 0},
		{"zero budget", 10, ptr(0), BudgetNone, 0},
		{"nothing spent", 0, ptr(500), BudgetGood, 0},
		{"under warning", 399.99, ptr(500), BudgetGood, 80},
		{"warning lower bound", 400, ptr(500), BudgetWarning, 80},
		{"warning", 450, ptr(500), BudgetWarning, 90},
		{"exactly spent", 500, ptr(500), BudgetOver, 100},
		{"over clamps display", 750, ptr(500), BudgetOver, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BudgetStatus(tt.spent, tt.budget))
			assert.InDelta(t, tt.pct, BudgetPercentage(tt.spent, tt.budget), 0.01)
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 10.01, RoundMoney(10.005))
	assert.Equal(t, 1200.0, RoundMoney(1200))
}
