package order

import "strings"

// Parser 将自然语言交易指令解析为结构化订单。
// 解析过程无状态、无副作用，可被多个 goroutine 并发调用。
type Parser struct{}

// NewParser 创建解析器。
func NewParser() *Parser {
	return &Parser{}
}

// Parse 解析一条指令。任一环节识别失败立即返回对应的哨兵错误，
// 不返回部分结果。
func (p *Parser) Parse(message string) (Instruction, error) {
	normalized := strings.TrimSpace(message)
	if normalized == "" {
		return Instruction{}, ErrEmptyInstruction
	}

	lower := strings.ToLower(normalized)

	side, ok := matchSide(lower)
	if !ok {
		return Instruction{}, ErrAmbiguousSide
	}

	orderType := matchType(lower)

	pair, ok := extractPair(normalized)
	if !ok {
		return Instruction{}, ErrMissingPair
	}

	quantity, found, err := extractQuantity(lower)
	if err != nil {
		return Instruction{}, err
	}
	if !found || quantity.Sign() <= 0 {
		return Instruction{}, ErrMissingQuantity
	}

	instruction := Instruction{
		Side:     side,
		Pair:     pair,
		Quantity: quantity,
		Type:     orderType,
	}

	// 市价单忽略消息中出现的价格；限价单必须能解析出正价格。
	if orderType == TypeLimit {
		price, found, err := extractPrice(lower)
		if err != nil {
			return Instruction{}, err
		}
		if !found || price.Sign() <= 0 {
			return Instruction{}, ErrMissingPrice
		}
		instruction.Price = &price
	}

	return instruction, nil
}
