package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trade-translator/internal/history"
	"trade-translator/internal/order"
	"trade-translator/internal/threecommas"
)

// 依赖接口定义在消费方，便于测试替换。
type instructionParser interface {
	Parse(message string) (order.Instruction, error)
}

type tradeSubmitter interface {
	CreateSimpleTrade(ctx context.Context, side order.Side, payload order.Payload) (threecommas.TradeResponse, error)
}

type translationRecorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Translator 将原始指令解析为结构化订单并提交远端接口，
// 每次转换的结果都会写入历史记录。
type Translator struct {
	parser    instructionParser
	client    tradeSubmitter
	recorder  translationRecorder
	accountID int64
	logger    *zap.Logger
}

// NewTranslator 创建转换器。
func NewTranslator(parser instructionParser, client tradeSubmitter, recorder translationRecorder, accountID int64, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{
		parser:    parser,
		client:    client,
		recorder:  recorder,
		accountID: accountID,
		logger:    logger,
	}
}

// TranslateAndExecute 执行一次完整的转换与提交。
// 解析失败立即终止，不会发起网络请求。
func (t *Translator) TranslateAndExecute(ctx context.Context, message string) (threecommas.TradeResponse, error) {
	instruction, err := t.parser.Parse(message)
	if err != nil {
		t.record(ctx, history.Entry{
			Message: message,
			Status:  history.StatusParseFailed,
			Detail:  err.Error(),
		})
		return threecommas.TradeResponse{}, fmt.Errorf("解析指令失败: %w", err)
	}

	t.logger.Info("指令解析成功",
		zap.String("side", string(instruction.Side)),
		zap.String("pair", instruction.Pair),
		zap.String("quantity", instruction.Quantity.String()),
		zap.String("order_type", string(instruction.Type)),
	)

	payload := instruction.Payload(t.accountID)
	entry := entryFromInstruction(message, instruction)

	response, err := t.client.CreateSimpleTrade(ctx, instruction.Side, payload)
	if err != nil {
		entry.Status = history.StatusSubmitFailed
		entry.Detail = err.Error()
		t.record(ctx, entry)
		return threecommas.TradeResponse{}, fmt.Errorf("提交订单失败: %w", err)
	}

	if response.Status == "dry_run" {
		entry.Status = history.StatusDryRun
	} else {
		entry.Status = history.StatusSubmitted
	}
	t.record(ctx, entry)

	return response, nil
}

// record 写历史记录失败不影响主流程，仅记录告警。
func (t *Translator) record(ctx context.Context, entry history.Entry) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.Record(ctx, entry); err != nil {
		t.logger.Warn("写入历史记录失败", zap.Error(err))
	}
}

func entryFromInstruction(message string, instruction order.Instruction) history.Entry {
	entry := history.Entry{
		Message:   message,
		Side:      string(instruction.Side),
		Pair:      instruction.Pair,
		Quantity:  instruction.Quantity.String(),
		OrderType: string(instruction.Type),
	}
	if instruction.Price != nil {
		entry.Price = instruction.Price.String()
	}
	return entry
}
