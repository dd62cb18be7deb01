package history

import "time"

// Status 表示一次指令转换的最终状态。
type Status string

const (
	StatusSubmitted    Status = "submitted"
	StatusDryRun       Status = "dry_run"
	StatusParseFailed  Status = "parse_failed"
	StatusSubmitFailed Status = "submit_failed"
)

// Entry 是一条转换历史记录。解析失败时订单字段为空，Detail 记录失败原因。
type Entry struct {
	ID        int64
	Message   string
	Side      string
	Pair      string
	Quantity  string
	OrderType string
	Price     string
	Status    Status
	Detail    string
	CreatedAt time.Time
}
