// Package calc 储蓄目标进度与预算状态的纯计算规则，不做任何 I/O。
package calc

import (
	"github.com/shopspring/decimal"
)

// RoundMoney 金额保留两位小数（四舍五入）
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// addMoney 以十进制精度相加，避免 0.1+0.2 之类的浮点误差
func addMoney(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
