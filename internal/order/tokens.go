package order

import "strings"

// 词表按固定顺序扫描，保证匹配结果可复现。
// 买入词先于卖出词检查：同时出现时按买入处理，这是既定的优先级而非错误。
var (
	buyTokens  = []string{"buy", "achète", "achete", "achat"}
	sellTokens = []string{"sell", "vends", "vendre", "vend", "revends", "revendre"}

	// 限价词先于市价词检查；两者都未出现时默认市价。
	limitTokens  = []string{"limit", "limite"}
	marketTokens = []string{"market", "marché", "marche"}
)

// matchSide 在小写消息中识别订单方向。
func matchSide(lower string) (Side, bool) {
	for _, token := range buyTokens {
		if strings.Contains(lower, token) {
			return SideBuy, true
		}
	}
	for _, token := range sellTokens {
		if strings.Contains(lower, token) {
			return SideSell, true
		}
	}
	return "", false
}

// matchType 在小写消息中识别订单类型，未出现任何词时默认市价单。
func matchType(lower string) Type {
	for _, token := range limitTokens {
		if strings.Contains(lower, token) {
			return TypeLimit
		}
	}
	for _, token := range marketTokens {
		if strings.Contains(lower, token) {
			return TypeMarket
		}
	}
	return TypeMarket
}
