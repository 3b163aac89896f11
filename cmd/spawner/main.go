// spawner 按固定间隔依次生成波次中的单位和小队
//
// 用法：
//
//	spawner [--config spawner.yaml] [--wave waves/demo.yaml] [--delay 2s] [--log-level info] [--journal] [--reset-journal]
//
// 实例化文本写入标准输出，日志写入标准错误。波次全部生成后退出。
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/decker502/wavespawner/pkg/app"
	"github.com/decker502/wavespawner/pkg/config"
	"github.com/decker502/wavespawner/pkg/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "spawner: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	v := viper.New()

	fs := pflag.NewFlagSet("spawner", pflag.ContinueOnError)
	configFile := fs.String("config", "", "配置文件路径（yaml/json/toml）")
	fs.String("wave", "", "波次配置文件路径，为空时使用内置波次")
	fs.Duration("delay", 0, "相邻两次生成的间隔，如 2s、500ms")
	fs.String("log-level", "", "日志级别：trace, debug, info, warn, error")
	fs.Bool("journal", false, "记录生成进度，重启后从中断处继续")
	fs.Bool("reset-journal", false, "启动时清空已保存的生成进度")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// 只绑定用户显式设置的参数，未设置时保留配置文件和环境变量的值
	bindings := map[string]string{
		"wave":          config.KeyWaveFile,
		"delay":         config.KeyDelay,
		"log-level":     config.KeyLogLevel,
		"journal":       config.KeyJournalEnabled,
		"reset-journal": config.KeyJournalReset,
	}
	for flagName, key := range bindings {
		if f := fs.Lookup(flagName); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	cfg, err := config.Load(v, *configFile)
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(cfg, os.Stdout, logger)
	if err != nil {
		return err
	}

	if err := a.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("interrupted")
			return nil
		}
		return err
	}
	return nil
}
