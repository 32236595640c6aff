package loan

import "github.com/shopspring/decimal"

// Money is a currency amount with two decimal places.
type Money = float64

func toDecimal(m Money) decimal.Decimal {
	return decimal.NewFromFloat(m).Round(2)
}

func fromDecimal(d decimal.Decimal) Money {
	return d.Round(2).InexactFloat64()
}

// SubtractMoney returns a-b rounded to cents, so 1000-400-600 is exactly zero.
func SubtractMoney(a, b Money) Money {
	return fromDecimal(toDecimal(a).Sub(toDecimal(b)))
}

// CompareMoney compares a and b at cent precision.
func CompareMoney(a, b Money) int {
	return toDecimal(a).Cmp(toDecimal(b))
}

func FormatMoney(m Money) string {
	return toDecimal(m).StringFixed(2)
}
