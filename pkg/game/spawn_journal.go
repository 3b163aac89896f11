package game

import (
	"fmt"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const journalObject = "journal"

// SpawnProgress 某个波次的生成进度
type SpawnProgress struct {
	WaveID      string    `yaml:"waveId"`
	Fingerprint string    `yaml:"fingerprint"` // 波次内容指纹（entities.WaveFingerprint）
	Spawned     int       `yaml:"spawned"`     // 已生成的条目数
	Total       int       `yaml:"total"`       // 波次条目总数
	UpdatedAt   time.Time `yaml:"updatedAt"`   // 最近一次记录时间
}

// SpawnJournal 生成进度记录
// 每次生成后保存进度，重启后生成器跳过已生成的条目
// 波次全部生成后进度归零，下次运行重新生成整个波次
//
// gdataManager 为 nil 时进入降级模式：只在内存中记录，不持久化
type SpawnJournal struct {
	gdataManager *gdata.Manager
	progress     SpawnProgress
	logger       zerolog.Logger
}

// NewSpawnJournal 创建生成进度记录并加载已保存的进度
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//   - waveID: 波次ID，作为存储键
//   - fingerprint: 波次内容指纹，与保存的不一致时丢弃旧进度
//   - total: 波次条目总数
//   - logger: 日志
//
// 返回：
//   - *SpawnJournal: 进度记录实例（加载失败时从 0 开始）
//   - error: 加载失败返回错误（不影响创建）
func NewSpawnJournal(gdataManager *gdata.Manager, waveID, fingerprint string, total int, logger zerolog.Logger) (*SpawnJournal, error) {
	j := &SpawnJournal{
		gdataManager: gdataManager,
		progress:     SpawnProgress{WaveID: waveID, Fingerprint: fingerprint, Total: total},
		logger:       logger.With().Str("system", "SpawnJournal").Str("wave", waveID).Logger(),
	}

	if err := j.Load(); err != nil {
		return j, err
	}
	return j, nil
}

// Load 从 gdata 加载进度
//
// 保存的指纹或总数与当前波次不一致（波次文件已修改）或波次已完成时从头开始
func (j *SpawnJournal) Load() error {
	if j.gdataManager == nil {
		return nil
	}
	if !j.gdataManager.ObjectPropExists(journalObject, j.progress.WaveID) {
		return nil
	}

	data, err := j.gdataManager.LoadObjectProp(journalObject, j.progress.WaveID)
	if err != nil {
		return fmt.Errorf("failed to load spawn journal: %w", err)
	}

	var saved SpawnProgress
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to unmarshal spawn journal: %w", err)
	}

	if saved.Fingerprint != j.progress.Fingerprint {
		j.logger.Warn().
			Str("savedFingerprint", saved.Fingerprint).
			Str("fingerprint", j.progress.Fingerprint).
			Msg("wave content changed since last run, starting over")
		return nil
	}
	if saved.Total != j.progress.Total {
		j.logger.Warn().
			Int("savedTotal", saved.Total).
			Int("total", j.progress.Total).
			Msg("wave changed since last run, starting over")
		return nil
	}
	if saved.Spawned <= 0 || saved.Spawned >= saved.Total {
		return nil
	}

	j.progress.Spawned = saved.Spawned
	j.progress.UpdatedAt = saved.UpdatedAt
	j.logger.Info().Int("spawned", saved.Spawned).Int("total", saved.Total).Msg("resuming wave")
	return nil
}

// Spawned 返回已生成的条目数
func (j *SpawnJournal) Spawned() int {
	return j.progress.Spawned
}

// Progress 返回当前进度的副本
func (j *SpawnJournal) Progress() SpawnProgress {
	return j.progress
}

// RecordSpawn 记录生成进度
// 波次全部生成后进度归零
func (j *SpawnJournal) RecordSpawn(spawned int) error {
	j.progress.Spawned = spawned
	j.progress.UpdatedAt = time.Now().UTC()
	if spawned >= j.progress.Total {
		j.progress.Spawned = 0
	}
	return j.save()
}

// Reset 清空进度
func (j *SpawnJournal) Reset() error {
	j.progress.Spawned = 0
	return j.save()
}

func (j *SpawnJournal) save() error {
	if j.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(j.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal spawn journal: %w", err)
	}
	if err := j.gdataManager.SaveObjectProp(journalObject, j.progress.WaveID, data); err != nil {
		return fmt.Errorf("failed to save spawn journal: %w", err)
	}
	return nil
}

// OpenStorage 打开 gdata 存储
// 失败时返回 nil Manager 和错误，调用方以降级模式继续
func OpenStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return m, nil
}
