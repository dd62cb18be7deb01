package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse_MarketBuy(t *testing.T) {
	instruction, err := NewParser().Parse("buy 0.5 BTC/USDT")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if instruction.Side != SideBuy {
		t.Errorf("expected side buy, got %s", instruction.Side)
	}
	if instruction.Pair != "BTC_USDT" {
		t.Errorf("expected pair BTC_USDT, got %s", instruction.Pair)
	}
	if !instruction.Quantity.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("expected quantity 0.5, got %s", instruction.Quantity)
	}
	if instruction.Type != TypeMarket {
		t.Errorf("expected market order by default, got %s", instruction.Type)
	}
	if instruction.Price != nil {
		t.Errorf("expected no price for market order, got %s", instruction.Price)
	}
}

func TestParse_LimitSellFrench(t *testing.T) {
	instruction, err := NewParser().Parse("vends 10 ETHUSDT at 1800 limit")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if instruction.Side != SideSell {
		t.Errorf("expected side sell, got %s", instruction.Side)
	}
	if instruction.Pair != "ETH_USDT" {
		t.Errorf("expected pair ETH_USDT, got %s", instruction.Pair)
	}
	if !instruction.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected quantity 10, got %s", instruction.Quantity)
	}
	if instruction.Type != TypeLimit {
		t.Errorf("expected limit order, got %s", instruction.Type)
	}
	if instruction.Price == nil || !instruction.Price.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("expected price 1800, got %v", instruction.Price)
	}
}

func TestParse_PairNormalization(t *testing.T) {
	cases := []struct {
		message string
		pair    string
	}{
		{"buy 1 BTC/USDT", "BTC_USDT"},
		{"buy 1 BTC-USDT", "BTC_USDT"},
		{"buy 1 BTCUSDT", "BTC_USDT"},
		{"buy 1 btcusdt", "BTC_USDT"},
		{"achète 2 SOL/USDT", "SOL_USDT"},
		{"sell 3 MATIC-USDT", "MATIC_USDT"},
	}

	for _, tc := range cases {
		instruction, err := NewParser().Parse(tc.message)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.message, err)
			continue
		}
		if instruction.Pair != tc.pair {
			t.Errorf("Parse(%q) pair mismatch: got %s want %s", tc.message, instruction.Pair, tc.pair)
		}
	}
}

func TestParse_SidePrecedence(t *testing.T) {
	// 同时包含买卖词时按买入处理，这是既定优先级而非错误。
	instruction, err := NewParser().Parse("buy or sell 1 BTC/USDT")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if instruction.Side != SideBuy {
		t.Errorf("expected buy precedence, got %s", instruction.Side)
	}
}

func TestParse_MarketIgnoresPrice(t *testing.T) {
	instruction, err := NewParser().Parse("buy 1 BTC/USDT at 20000")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if instruction.Type != TypeMarket {
		t.Errorf("expected market order, got %s", instruction.Type)
	}
	if instruction.Price != nil {
		t.Errorf("market order must not carry a price, got %s", instruction.Price)
	}
}

func TestParse_FrenchLimitPrice(t *testing.T) {
	instruction, err := NewParser().Parse("achète 2 ETH/USDT limite à 2500,50")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if instruction.Type != TypeLimit {
		t.Fatalf("expected limit order, got %s", instruction.Type)
	}
	if instruction.Price == nil || !instruction.Price.Equal(decimal.RequireFromString("2500.5")) {
		t.Errorf("expected price 2500.5, got %v", instruction.Price)
	}
}

func TestParse_LocaleTolerantQuantity(t *testing.T) {
	comma, err := NewParser().Parse("buy 1,5 BTC-USDT")
	if err != nil {
		t.Fatalf("Parse with comma separator returned error: %v", err)
	}
	dot, err := NewParser().Parse("buy 1.5 BTC-USDT")
	if err != nil {
		t.Fatalf("Parse with dot separator returned error: %v", err)
	}
	if !comma.Quantity.Equal(dot.Quantity) {
		t.Errorf("quantity mismatch: %s vs %s", comma.Quantity, dot.Quantity)
	}
	if !dot.Quantity.Equal(decimal.RequireFromString("1.5")) {
		t.Errorf("expected quantity 1.5, got %s", dot.Quantity)
	}
}

func TestParse_QuantityWithFillerWord(t *testing.T) {
	instruction, err := NewParser().Parse("achète de 3 ETH/USDT")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !instruction.Quantity.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected quantity 3, got %s", instruction.Quantity)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    error
	}{
		{"empty message", "", ErrEmptyInstruction},
		{"whitespace only", "   \t  ", ErrEmptyInstruction},
		{"no side token", "2 BTC/USDT", ErrAmbiguousSide},
		{"no pair", "buy 5", ErrMissingPair},
		{"no quantity", "buy BTCUSDT", ErrMissingQuantity},
		{"zero quantity", "buy 0 BTC/USDT", ErrMissingQuantity},
		{"limit without price", "sell 2 BTC/USDT limit", ErrMissingPrice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewParser().Parse(tc.message)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) error mismatch: got %v want %v", tc.message, err, tc.want)
			}
			if !IsParseError(err) {
				t.Errorf("IsParseError(%v) = false, want true", err)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	const message = "vends 10 ETHUSDT at 1800 limit"

	first, err := NewParser().Parse(message)
	if err != nil {
		t.Fatalf("first Parse returned error: %v", err)
	}
	second, err := NewParser().Parse(message)
	if err != nil {
		t.Fatalf("second Parse returned error: %v", err)
	}

	if first.Side != second.Side || first.Pair != second.Pair || first.Type != second.Type {
		t.Errorf("instruction fields differ between calls: %+v vs %+v", first, second)
	}
	if !first.Quantity.Equal(second.Quantity) {
		t.Errorf("quantity differs between calls: %s vs %s", first.Quantity, second.Quantity)
	}
	if !first.Price.Equal(*second.Price) {
		t.Errorf("price differs between calls: %s vs %s", first.Price, second.Price)
	}
}
