// Package app 组装生成器应用
//
// 该包将初始化逻辑从 main 包提取出来：加载波次、恢复生成进度、创建生成器。
// cmd/spawner 负责解析参数和配置后调用 NewApp()。
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/decker502/wavespawner/pkg/config"
	"github.com/decker502/wavespawner/pkg/entities"
	"github.com/decker502/wavespawner/pkg/game"
	"github.com/decker502/wavespawner/pkg/spawner"
	"github.com/rs/zerolog"
)

// DefaultWaveID 内置波次的进度存储键
const DefaultWaveID = "default"

// App 生成器应用
type App struct {
	spawner *spawner.Spawner
	journal *game.SpawnJournal
	waveID  string
	logger  zerolog.Logger
}

// NewApp 创建并初始化生成器应用
//
// 参数：
//   - cfg: 已验证的运行配置
//   - out: 实例化文本输出（通常为 os.Stdout）
//   - logger: 结构化日志
//   - opts: 额外的生成器选项（测试用于注入时钟）
func NewApp(cfg *config.Config, out io.Writer, logger zerolog.Logger, opts ...spawner.Option) (*App, error) {
	a := &App{logger: logger.With().Str("system", "App").Logger()}

	wave, err := a.loadWave(cfg)
	if err != nil {
		return nil, err
	}

	spawnerOpts := []spawner.Option{
		spawner.WithOutput(out),
		spawner.WithLogger(logger),
	}

	if cfg.Journal.Enabled {
		a.journal = a.openJournal(cfg.Journal.AppName, wave, logger)
		if cfg.Journal.Reset {
			if err := a.journal.Reset(); err != nil {
				a.logger.Warn().Err(err).Msg("failed to reset spawn journal")
			}
			a.logger.Info().Msg("spawn journal reset")
		}
		if skip := a.journal.Spawned(); skip > 0 {
			p := a.journal.Progress()
			wave = wave[skip:]
			a.logger.Info().
				Int("skipped", skip).
				Int("total", p.Total).
				Time("lastSpawnAt", p.UpdatedAt).
				Msg("skipping entries spawned by a previous run")
			spawnerOpts = append(spawnerOpts, spawner.WithAlreadySpawned(skip))
		}
		spawnerOpts = append(spawnerOpts, spawner.WithRecorder(a.journal))
	}

	a.spawner, err = spawner.New(wave, cfg.Delay, append(spawnerOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create spawner: %w", err)
	}

	a.logger.Info().
		Str("wave", a.waveID).
		Int("pending", a.spawner.Pending()).
		Dur("delay", a.spawner.Delay()).
		Msg("spawner ready")
	return a, nil
}

// loadWave 加载波次：指定了波次文件时从文件构造，否则使用内置波次
func (a *App) loadWave(cfg *config.Config) ([]entities.Spawnable, error) {
	if cfg.WaveFile == "" {
		a.waveID = DefaultWaveID
		a.logger.Debug().Msg("using built-in wave")
		return entities.DefaultWave(), nil
	}

	waveConfig, err := config.LoadWaveConfig(cfg.WaveFile)
	if err != nil {
		return nil, err
	}
	wave, err := waveConfig.BuildWave()
	if err != nil {
		return nil, fmt.Errorf("failed to build wave %s: %w", waveConfig.ID, err)
	}

	a.waveID = waveConfig.ID
	a.logger.Info().
		Str("wave", waveConfig.ID).
		Str("file", cfg.WaveFile).
		Int("entries", len(wave)).
		Msg("wave loaded")
	return wave, nil
}

// openJournal 打开进度记录；存储不可用时降级为内存记录
func (a *App) openJournal(appName string, wave []entities.Spawnable, logger zerolog.Logger) *game.SpawnJournal {
	storage, err := game.OpenStorage(appName)
	if err != nil {
		a.logger.Warn().Err(err).Msg("spawn journal storage unavailable, progress will not persist")
	}

	journal, err := game.NewSpawnJournal(storage, a.waveID, entities.WaveFingerprint(wave), len(wave), logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to load spawn journal, starting from the first entry")
	}
	return journal
}

// WaveID 返回当前波次ID
func (a *App) WaveID() string {
	return a.waveID
}

// Spawner 返回生成器
func (a *App) Spawner() *spawner.Spawner {
	return a.spawner
}

// Run 运行生成器直到波次全部生成或 ctx 取消
func (a *App) Run(ctx context.Context) error {
	if err := a.spawner.Run(ctx); err != nil {
		return fmt.Errorf("spawner stopped: %w", err)
	}
	return nil
}
