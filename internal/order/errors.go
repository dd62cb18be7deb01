package order

import "errors"

var (
	// ErrEmptyInstruction 表示输入指令为空或仅包含空白。
	ErrEmptyInstruction = errors.New("order: instruction message is empty")
	// ErrAmbiguousSide 表示指令中没有可识别的买入或卖出词。
	ErrAmbiguousSide = errors.New("order: cannot determine buy or sell side")
	// ErrMissingPair 表示指令中没有可识别的交易对。
	ErrMissingPair = errors.New("order: no trading pair detected")
	// ErrMissingQuantity 表示指令中没有可识别的数量。
	ErrMissingQuantity = errors.New("order: no quantity detected")
	// ErrMissingPrice 表示限价单指令缺少价格。
	ErrMissingPrice = errors.New("order: limit order requested without a price")
)

// IsParseError 判断错误是否属于指令解析错误，方便上层映射退出码。
func IsParseError(err error) bool {
	return errors.Is(err, ErrEmptyInstruction) ||
		errors.Is(err, ErrAmbiguousSide) ||
		errors.Is(err, ErrMissingPair) ||
		errors.Is(err, ErrMissingQuantity) ||
		errors.Is(err, ErrMissingPrice)
}
