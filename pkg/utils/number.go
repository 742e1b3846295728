package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

// RoundMoney arredonda valores monetários em 2 casas (meio para cima)
func RoundMoney(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// FormatViews abrevia contagens de visualização: 40000 -> 40K, 1200000 -> 1.2M
func FormatViews(views int64) string {
	switch {
	case views >= 1_000_000:
		return decimal.NewFromInt(views).Div(decimal.NewFromInt(1_000_000)).RoundDown(1).String() + "M"
	case views >= 1_000:
		return decimal.NewFromInt(views).Div(decimal.NewFromInt(1_000)).RoundDown(1).String() + "K"
	default:
		return fmt.Sprintf("%d", views)
	}
}
