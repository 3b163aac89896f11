package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 配置键
const (
	KeyDelay          = "delay"
	KeyWaveFile       = "waveFile"
	KeyLogLevel       = "logLevel"
	KeyJournalEnabled = "journal.enabled"
	KeyJournalAppName = "journal.appName"
	KeyJournalReset   = "journal.reset"
)

// EnvPrefix 环境变量前缀，如 SPAWNER_DELAY=500ms
const EnvPrefix = "SPAWNER"

// ErrInvalidDelay 生成间隔必须为正
var ErrInvalidDelay = errors.New("delay must be positive")

// Config 运行配置
type Config struct {
	Delay    time.Duration // 相邻两次生成的间隔
	WaveFile string        // 波次配置文件，为空时使用内置波次
	LogLevel string        // debug, info, warn, error, trace
	Journal  JournalConfig
}

// JournalConfig 生成进度记录配置
type JournalConfig struct {
	Enabled bool   // 是否记录进度（重启后从中断处继续）
	AppName string // gdata 存储的应用名
	Reset   bool   // 启动时清空已保存的进度
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDelay, "2s")
	v.SetDefault(KeyWaveFile, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyJournalEnabled, false)
	v.SetDefault(KeyJournalAppName, "wavespawner")
	v.SetDefault(KeyJournalReset, false)
}

// Load 读取运行配置
//
// 优先级（高到低）：命令行参数（已绑定到 v）、环境变量、配置文件、默认值
//
// 参数：
//   - v: viper 实例
//   - configFile: 配置文件路径，为空时不读取文件
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	delay, err := parseDelay(v.Get(KeyDelay))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Delay:    delay,
		WaveFile: v.GetString(KeyWaveFile),
		LogLevel: strings.ToLower(v.GetString(KeyLogLevel)),
		Journal: JournalConfig{
			Enabled: v.GetBool(KeyJournalEnabled),
			AppName: v.GetString(KeyJournalAppName),
			Reset:   v.GetBool(KeyJournalReset),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseDelay 解析生成间隔
// 不带单位的数字按秒计算（"2" 与 2 都是 2 秒），否则按 time.ParseDuration 解析
func parseDelay(raw any) (time.Duration, error) {
	switch d := raw.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return d, nil
	case int:
		return time.Duration(d) * time.Second, nil
	case int64:
		return time.Duration(d) * time.Second, nil
	case uint64:
		return time.Duration(d) * time.Second, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	case string:
		s := strings.TrimSpace(d)
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return 0, fmt.Errorf("invalid delay %q", d)
			}
			return time.Duration(n * float64(time.Second)), nil
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid delay %q: %w", d, err)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("invalid delay %v: unsupported type %T", raw, raw)
	}
}

// Validate 验证运行配置
func (c *Config) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidDelay, c.Delay)
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel must be one of: trace, debug, info, warn, error, got %q", c.LogLevel)
	}

	if c.Journal.Enabled && c.Journal.AppName == "" {
		return fmt.Errorf("journal.appName is required when journal is enabled")
	}
	return nil
}
