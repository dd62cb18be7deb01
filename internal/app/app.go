package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"trade-translator/internal/config"
	"trade-translator/internal/history"
	"trade-translator/internal/order"
	"trade-translator/internal/store"
	"trade-translator/internal/threecommas"
)

// App 聚合核心依赖并驱动单次转换流程。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger, store *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// Translate 解析一条指令并提交远端接口。
func (a *App) Translate(ctx context.Context, message string) error {
	historySvc, err := history.NewService(a.store, a.logger)
	if err != nil {
		return fmt.Errorf("初始化历史记录服务失败: %w", err)
	}

	client, err := threecommas.NewClient(a.cfg.API, a.logger)
	if err != nil {
		return fmt.Errorf("初始化3Commas客户端失败: %w", err)
	}

	translator := NewTranslator(order.NewParser(), client, historySvc, a.cfg.API.AccountID, a.logger)

	response, err := translator.TranslateAndExecute(ctx, message)
	if err != nil {
		return err
	}

	if response.Status == "dry_run" {
		a.logger.Info("干跑完成", zap.ByteString("payload", response.Raw))
	} else {
		a.logger.Info("交易创建成功", zap.ByteString("response", response.Raw))
	}

	return nil
}

// ShowHistory 打印最近的转换记录。
func (a *App) ShowHistory(ctx context.Context, limit int) error {
	historySvc, err := history.NewService(a.store, a.logger)
	if err != nil {
		return fmt.Errorf("初始化历史记录服务失败: %w", err)
	}

	entries, err := historySvc.Recent(ctx, limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("暂无转换记录")
		return nil
	}

	for _, entry := range entries {
		line := fmt.Sprintf("%s  [%s]  %q", entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.Status, entry.Message)
		if entry.Pair != "" {
			line += fmt.Sprintf("  %s %s %s %s", entry.Side, entry.Quantity, entry.Pair, entry.OrderType)
			if entry.Price != "" {
				line += " @" + entry.Price
			}
		}
		if entry.Detail != "" {
			line += "  (" + entry.Detail + ")"
		}
		fmt.Println(line)
	}

	return nil
}
