package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"trade-translator/internal/store"
)

// Service 负责持久化指令转换记录。
type Service struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewService 初始化历史记录服务，创建所需表结构。
func NewService(store *store.Store, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("history: store 不能为空")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		db:     store.DB(),
		logger: logger,
	}

	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Service) initSchema() error {
	stmt := `
CREATE TABLE IF NOT EXISTS translations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message TEXT NOT NULL,
	side TEXT NOT NULL DEFAULT '',
	pair TEXT NOT NULL DEFAULT '',
	quantity TEXT NOT NULL DEFAULT '',
	order_type TEXT NOT NULL DEFAULT '',
	price TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_translations_status ON translations(status);
`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("history: 初始化表失败: %w", err)
	}
	return nil
}

// Record 写入单条转换记录。
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	stmt := `
INSERT INTO translations (message, side, pair, quantity, order_type, price, status, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.Message,
		entry.Side,
		entry.Pair,
		entry.Quantity,
		entry.OrderType,
		entry.Price,
		string(entry.Status),
		entry.Detail,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("history: 写入记录失败: %w", err)
	}

	return nil
}

// Recent 返回最近的 limit 条记录，按时间倒序。
func (s *Service) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	stmt := `
SELECT id, message, side, pair, quantity, order_type, price, status, detail, created_at
FROM translations
ORDER BY id DESC
LIMIT ?;
`
	rows, err := s.db.QueryContext(ctx, stmt, limit)
	if err != nil {
		return nil, fmt.Errorf("history: 查询记录失败: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var entry Entry
		var status string
		var createdAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.Message,
			&entry.Side,
			&entry.Pair,
			&entry.Quantity,
			&entry.OrderType,
			&entry.Price,
			&status,
			&entry.Detail,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("history: 读取记录失败: %w", err)
		}
		entry.Status = Status(status)
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: 遍历记录失败: %w", err)
	}

	return entries, nil
}
