package order

import "github.com/shopspring/decimal"

// Payload 是提交给 3Commas 智能交易接口的请求体。
// 字段名是与远端 API 的兼容性契约，不可改动。
// 订单方向不在请求体内：传输层用它选择接口变体。
type Payload struct {
	AccountID int64           `json:"account_id"`
	Pair      string          `json:"pair"`
	Position  PositionPayload `json:"position"`
}

// PositionPayload 描述仓位信息，限价单才携带 Price 块。
type PositionPayload struct {
	Type  string        `json:"type"`
	Units UnitsPayload  `json:"units"`
	Price *PricePayload `json:"price,omitempty"`
}

// UnitsPayload 携带下单数量。
type UnitsPayload struct {
	Value decimal.Decimal `json:"value"`
}

// PricePayload 携带限价价格。
type PricePayload struct {
	Value decimal.Decimal `json:"value"`
}

// Payload 将结构化订单映射为请求体。纯函数，无副作用。
func (i Instruction) Payload(accountID int64) Payload {
	payload := Payload{
		AccountID: accountID,
		Pair:      i.Pair,
		Position: PositionPayload{
			Type:  string(i.Type),
			Units: UnitsPayload{Value: i.Quantity},
		},
	}

	if i.Type == TypeLimit && i.Price != nil {
		payload.Position.Price = &PricePayload{Value: *i.Price}
	}

	return payload
}
