// Package types provides common type aliases and money utilities.
package types

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"vendorgate/pkg/logger"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors. Single currency,
// decimal dollars; no conversion happens anywhere in the portal.
type Money = decimal.Decimal

// NullMoney is a tri-state monetary value: a number or absent.
// Absent means "unknown / not configured" and is never the same thing as
// zero. A literal zero price (promotional freebie) stays a valid zero.
type NullMoney = decimal.NullDecimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// SomeMoney wraps a Money value as a present NullMoney.
func SomeMoney(d Money) NullMoney {
	return NullMoney{Decimal: d, Valid: true}
}

// NoMoney returns the absent NullMoney value.
func NoMoney() NullMoney {
	return NullMoney{}
}

// ParseNullMoney is the single shared parser for "maybe numeric" inputs.
// Historical rows and override fields arrive as numbers, numeric strings,
// empty strings, or nothing at all:
//
//   - nil, empty/blank string, nil pointer  -> absent
//   - number or parseable numeric string    -> that value (zero included)
//   - anything else                         -> absent, logged at debug level
//
// A malformed value never returns an error: one bad override row must not
// fail pricing for unrelated products on the same page.
func ParseNullMoney(v any) NullMoney {
	switch x := v.(type) {
	case nil:
		return NullMoney{}
	case Money:
		return SomeMoney(x)
	case NullMoney:
		return x
	case *Money:
		if x == nil {
			return NullMoney{}
		}
		return SomeMoney(*x)
	case string:
		return parseNullMoneyString(x)
	case *string:
		if x == nil {
			return NullMoney{}
		}
		return parseNullMoneyString(*x)
	case json.Number:
		return parseNullMoneyString(x.String())
	case float64:
		return parseNullMoneyFloat(x)
	case float32:
		return parseNullMoneyFloat(float64(x))
	case *float64:
		if x == nil {
			return NullMoney{}
		}
		return parseNullMoneyFloat(*x)
	case int:
		return SomeMoney(decimal.NewFromInt(int64(x)))
	case int32:
		return SomeMoney(decimal.NewFromInt(int64(x)))
	case int64:
		return SomeMoney(decimal.NewFromInt(x))
	default:
		logger.Default().Debugw("unparseable money value", "value", v)
		return NullMoney{}
	}
}

func parseNullMoneyString(s string) NullMoney {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullMoney{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		logger.Default().Debugw("malformed money string", "value", s)
		return NullMoney{}
	}
	return SomeMoney(d)
}

func parseNullMoneyFloat(f float64) NullMoney {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		logger.Default().Debugw("non-finite money value", "value", f)
		return NullMoney{}
	}
	return SomeMoney(decimal.NewFromFloat(f))
}

// Round2 rounds money to 2 decimal places, half away from zero.
// Applied at the point of emission only; intermediate derivations keep
// finer precision so repeated conversions do not compound rounding error.
func Round2(d Money) Money {
	return d.Round(2)
}

// Round4 rounds to 4 decimal places, used for per-unit equivalents.
func Round4(d Money) Money {
	return d.Round(4)
}
