package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"trade-translator/internal/app"
	"trade-translator/internal/config"
	"trade-translator/internal/log"
	"trade-translator/internal/order"
	"trade-translator/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	var configPath string
	var envFile string
	var dryRun bool
	var historyLimit int
	flag.StringVar(&configPath, "config", "", "配置文件路径，默认使用 configs/config.yaml")
	flag.StringVar(&envFile, "env-file", ".env", "可选的 .env 凭证文件路径")
	flag.BoolVar(&dryRun, "dry-run", false, "不发送HTTP请求，仅打印转换后的请求体")
	flag.IntVar(&historyLimit, "history", 0, "显示最近 N 条转换记录后退出")
	flag.Parse()

	message := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if message == "" && historyLimit <= 0 {
		flag.Usage()
		return 1
	}

	loadEnvFile(envFile)

	cfg, err := config.Load(configPath, dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := log.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		return 1
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	sqliteStore, err := store.NewSQLite(cfg.Database)
	if err != nil {
		logger.Error("初始化数据库失败", zap.Error(err))
		return 1
	}
	defer func() {
		if closeErr := sqliteStore.Close(); closeErr != nil {
			logger.Warn("关闭数据库失败", zap.Error(closeErr))
		}
	}()

	translatorApp := app.New(cfg, logger, sqliteStore)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if historyLimit > 0 {
		if err := translatorApp.ShowHistory(ctx, historyLimit); err != nil {
			logger.Error("读取历史记录失败", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := translatorApp.Translate(ctx, message); err != nil {
		if order.IsParseError(err) {
			logger.Error("解析指令失败", zap.Error(err))
			return 2
		}
		logger.Error("执行指令失败", zap.Error(err))
		return 3
	}

	return 0
}

// loadEnvFile 加载 .env 凭证文件；指定路径不存在时回退到当前目录的默认文件。
func loadEnvFile(path string) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
	_ = godotenv.Load()
}
