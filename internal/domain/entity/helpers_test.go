package entity_test

import "github.com/shopspring/decimal"

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
