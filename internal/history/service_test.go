package history

import (
	"context"
	"testing"

	"trade-translator/internal/config"
	"trade-translator/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	// 内存库下连接池必须收敛到单连接，否则每个连接各有一份空库。
	st, err := store.NewSQLite(config.DatabaseConfig{
		InMemory:     true,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	svc, err := NewService(st, nil)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestRecordAndRecent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	entries := []Entry{
		{Message: "buy 0.5 BTC/USDT", Side: "buy", Pair: "BTC_USDT", Quantity: "0.5", OrderType: "market", Status: StatusSubmitted},
		{Message: "vends 10 ETHUSDT at 1800 limit", Side: "sell", Pair: "ETH_USDT", Quantity: "10", OrderType: "limit", Price: "1800", Status: StatusDryRun},
		{Message: "buy BTCUSDT", Status: StatusParseFailed, Detail: "order: no quantity detected"},
	}
	for _, entry := range entries {
		if err := svc.Record(ctx, entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}

	// 按时间倒序，最新的记录在前。
	if recent[0].Message != "buy BTCUSDT" || recent[0].Status != StatusParseFailed {
		t.Errorf("unexpected newest entry: %+v", recent[0])
	}
	if recent[1].Pair != "ETH_USDT" || recent[1].Price != "1800" {
		t.Errorf("entry fields did not round-trip: %+v", recent[1])
	}
	if recent[1].CreatedAt.IsZero() {
		t.Errorf("expected created_at to be set, got zero time")
	}
}

func TestRecent_EmptyDatabase(t *testing.T) {
	svc := newTestService(t)

	recent, err := svc.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("expected no entries, got %d", len(recent))
	}
}
