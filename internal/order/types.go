package order

import (
	"github.com/shopspring/decimal"
)

// Side 表示订单方向。
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Type 表示订单类型。
type Type string

const (
	TypeMarket Type = "market"
	TypeLimit  Type = "limit"
)

// Instruction 表示从自然语言指令中解析出的结构化订单。
// 构造完成后不再修改；限价单的 Price 必定非空且大于0。
type Instruction struct {
	Side     Side
	Pair     string
	Quantity decimal.Decimal
	Type     Type
	Price    *decimal.Decimal
}
