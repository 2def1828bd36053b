package service

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount normalizes whatever the gateway put in an amount field into a
// non-negative decimal. Strings are stripped down to digits and the decimal
// point before parsing; anything unparseable becomes zero. This never fails:
// a zero amount is a valid (if unusual) payment, not an error sentinel.
func ParseAmount(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return clamp(val)
	case float64:
		return clamp(decimal.NewFromFloat(val))
	case float32:
		return clamp(decimal.NewFromFloat32(val))
	case int:
		return clamp(decimal.NewFromInt(int64(val)))
	case int64:
		return clamp(decimal.NewFromInt(val))
	case json.Number:
		return parseAmountString(val.String())
	case string:
		return parseAmountString(val)
	default:
		return decimal.Zero
	}
}

func parseAmountString(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}

	return d
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatCurrency renders an amount the way notifications show money.
func FormatCurrency(d decimal.Decimal) string {
	return "KES " + d.StringFixed(2)
}
