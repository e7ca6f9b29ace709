package dto

import (
	"vendorgate/internal/core/types"
)

// NullMoneyOf maps an optional request price onto the tri-state money
// type. A null field stays absent; a present zero is a real price.
func NullMoneyOf(p *types.Money) types.NullMoney {
	if p == nil {
		return types.NoMoney()
	}
	return types.SomeMoney(*p)
}

// MoneyPtr exposes a tri-state price as a nullable JSON field.
func MoneyPtr(nm types.NullMoney) *types.Money {
	if !nm.Valid {
		return nil
	}
	v := nm.Decimal
	return &v
}
