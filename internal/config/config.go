package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "configs/config.yaml"
	envPrefix         = "translator"
)

// Load 读取配置文件并结合环境变量返回 Config。
// 默认路径的配置文件不存在时仅依赖环境变量与默认值；
// 显式指定的路径读取失败则视为错误。
// dryRun 为 true 时强制进入干跑模式，此时允许缺省签名凭证。
func Load(path string, dryRun bool) (*Config, error) {
	v := viper.New()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	setDefaults(v)
	bindCredentialEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("读取配置文件 %q 失败: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if dryRun {
		cfg.API.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")

	v.SetDefault("api.base_url", "https://api.3commas.io/public/api")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.dry_run", false)
	v.SetDefault("api.retry.max_attempts", 3)
	v.SetDefault("api.retry.min_delay", "500ms")
	v.SetDefault("api.retry.max_delay", "5s")

	v.SetDefault("database.path", "data/translator.db")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 4)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.in_memory", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.output_paths", []string{"stdout"})
	v.SetDefault("logging.error_output_paths", []string{"stderr"})
}

// bindCredentialEnv 显式绑定凭证相关环境变量。
// 这些键刻意不设默认值，AutomaticEnv 不会感知它们；
// 不绑定的话仅靠环境变量（无配置文件）无法提供凭证。
func bindCredentialEnv(v *viper.Viper) {
	for _, key := range []string{"api.key", "api.secret", "api.account_id"} {
		_ = v.BindEnv(key)
	}
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
