package order

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// 交易对在消息的大写副本上搜索，取最左匹配。
	// 基础币采用非贪婪量词：同一段字母存在多种切分时取最短基础币、最长计价币，
	// 例如 ETHUSDT 解析为 ETH_USDT 而不是 ETHU_SDT。
	pairPattern = regexp.MustCompile(`([A-Z]{3,5}?)[/\-]?([A-Z]{3,5})`)

	// 数量紧跟在动作词之后，允许分隔符与一个填充词，如 "achète de 3"。
	quantityPattern = regexp.MustCompile(`(?i)(?:buy|sell|ach(?:è|e)te|achat|vend(?:re|s)?)[\s:]+(?:[a-zA-Z]+\s+)?([0-9]+(?:[.,][0-9]+)?)`)

	// 价格由 "at" 或 "à" 引导。
	pricePattern = regexp.MustCompile(`(?i)(?:at|à)\s+([0-9]+(?:[.,][0-9]+)?)`)
)

// extractPair 识别形如 BTC/USDT、BTC-USDT、BTCUSDT 的交易对并归一化为 BASE_QUOTE。
func extractPair(message string) (string, bool) {
	match := pairPattern.FindStringSubmatch(strings.ToUpper(message))
	if match == nil {
		return "", false
	}
	return match[1] + "_" + match[2], true
}

// extractQuantity 识别数量字面量并解析为十进制数。
func extractQuantity(lower string) (decimal.Decimal, bool, error) {
	match := quantityPattern.FindStringSubmatch(lower)
	if match == nil {
		return decimal.Decimal{}, false, nil
	}
	value, err := parseAmount(match[1])
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return value, true, nil
}

// extractPrice 识别价格字面量；未找到不视为错误，由装配层决定是否致命。
func extractPrice(lower string) (decimal.Decimal, bool, error) {
	match := pricePattern.FindStringSubmatch(lower)
	if match == nil {
		return decimal.Decimal{}, false, nil
	}
	value, err := parseAmount(match[1])
	if err != nil {
		return decimal.Decimal{}, false, err
	}
	return value, true, nil
}

// parseAmount 解析数字字面量，逗号小数分隔符归一化为点号。
func parseAmount(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(raw, ",", ".")
	value, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("order: 解析数字 %q 失败: %w", raw, err)
	}
	return value, nil
}
