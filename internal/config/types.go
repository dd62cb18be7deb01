package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config 聚合了指令转换器运行所需的全部配置项。
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// APIConfig 描述 3Commas 接口的连接与签名信息。
type APIConfig struct {
	Key       string        `mapstructure:"key"`
	Secret    string        `mapstructure:"secret"`
	AccountID int64         `mapstructure:"account_id"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	DryRun    bool          `mapstructure:"dry_run"`
	Retry     RetryConfig   `mapstructure:"retry"`
}

// RetryConfig 统一控制重试机制。
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// DatabaseConfig 管理历史记录数据库连接。
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	InMemory        bool          `mapstructure:"in_memory"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate 对配置进行基本校验。
// 干跑模式不发送请求，允许缺少签名凭证与账户ID。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if !c.API.DryRun {
		if c.API.Key == "" {
			err = multierr.Append(err, errors.New("api.key 不能为空"))
		}
		if c.API.Secret == "" {
			err = multierr.Append(err, errors.New("api.secret 不能为空"))
		}
		if c.API.AccountID <= 0 {
			err = multierr.Append(err, errors.New("api.account_id 必须大于0"))
		}
	}
	if c.API.BaseURL == "" {
		err = multierr.Append(err, errors.New("api.base_url 不能为空"))
	}
	if c.API.Timeout <= 0 {
		err = multierr.Append(err, errors.New("api.timeout 必须大于0"))
	}
	if c.API.Retry.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("api.retry.max_attempts 必须大于0"))
	}
	if c.API.Retry.MinDelay <= 0 || c.API.Retry.MaxDelay <= 0 {
		err = multierr.Append(err, errors.New("api.retry.delay 必须为正"))
	}
	if c.API.Retry.MinDelay > c.API.Retry.MaxDelay {
		err = multierr.Append(err, errors.New("api.retry.min_delay 不能大于 max_delay"))
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		err = multierr.Append(err, errors.New("database.path 不能为空"))
	}
	if c.Database.MaxOpenConns <= 0 {
		err = multierr.Append(err, errors.New("database.max_open_conns 必须大于0"))
	}
	if c.Database.MaxIdleConns < 0 {
		err = multierr.Append(err, errors.New("database.max_idle_conns 不能为负"))
	}
	if c.Database.ConnMaxLifetime < 0 {
		err = multierr.Append(err, errors.New("database.conn_max_lifetime 不能为负"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
