package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/wavespawner/pkg/entities"
	"gopkg.in/yaml.v3"
)

// ErrInvalidWave 波次配置非法
var ErrInvalidWave = errors.New("invalid wave config")

// WaveConfig 波次配置
// 条目顺序即生成顺序
type WaveConfig struct {
	ID      string        `yaml:"id"`      // 波次ID，用于记录生成进度，默认取文件名
	Name    string        `yaml:"name"`    // 波次名称（可选）
	Entries []EntryConfig `yaml:"entries"` // 待生成条目
}

// EntryConfig 单个生成条目
// unit 与 squad 必须且只能设置一个
type EntryConfig struct {
	Unit  *entities.UnitSpec  `yaml:"unit"`
	Squad []entities.UnitSpec `yaml:"squad"`
}

// LoadWaveConfig 从YAML文件加载波次配置
//
// 参数：
//   - path: 波次配置文件路径
//
// 返回：
//   - *WaveConfig: 解析并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadWaveConfig(path string) (*WaveConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read wave config file %s: %w", path, err)
	}

	cfg, err := ParseWaveConfig(data)
	if err != nil {
		return nil, fmt.Errorf("wave config %s: %w", path, err)
	}

	if cfg.ID == "" {
		cfg.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// ParseWaveConfig 解析YAML格式的波次配置
// 未知字段（如拼写错误的 armour）视为非法配置
func ParseWaveConfig(data []byte) (*WaveConfig, error) {
	var cfg WaveConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse wave config YAML: %w", ErrInvalidWave, err)
	}

	if err := validateWaveConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateWaveConfig 验证波次配置的完整性和合法性
func validateWaveConfig(cfg *WaveConfig) error {
	if len(cfg.Entries) == 0 {
		return fmt.Errorf("%w: at least one entry is required", ErrInvalidWave)
	}

	for i, entry := range cfg.Entries {
		hasUnit := entry.Unit != nil
		hasSquad := len(entry.Squad) > 0

		switch {
		case hasUnit && hasSquad:
			return fmt.Errorf("%w: entry %d: unit and squad are mutually exclusive", ErrInvalidWave, i)
		case !hasUnit && !hasSquad:
			return fmt.Errorf("%w: entry %d: unit or non-empty squad is required", ErrInvalidWave, i)
		case hasUnit:
			if err := entry.Unit.Validate(); err != nil {
				return fmt.Errorf("%w: entry %d: %w", ErrInvalidWave, i, err)
			}
		default:
			for j, member := range entry.Squad {
				if err := member.Validate(); err != nil {
					return fmt.Errorf("%w: entry %d, squad member %d: %w", ErrInvalidWave, i, j, err)
				}
			}
		}
	}
	return nil
}

// BuildWave 按配置构造生成队列
func (cfg *WaveConfig) BuildWave() ([]entities.Spawnable, error) {
	wave := make([]entities.Spawnable, 0, len(cfg.Entries))
	for i, entry := range cfg.Entries {
		if entry.Unit != nil {
			u, err := entities.BuildUnit(*entry.Unit)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			wave = append(wave, u)
			continue
		}

		members := make([]*entities.Unit, 0, len(entry.Squad))
		for j, spec := range entry.Squad {
			u, err := entities.BuildUnit(spec)
			if err != nil {
				return nil, fmt.Errorf("entry %d, squad member %d: %w", i, j, err)
			}
			members = append(members, u)
		}
		wave = append(wave, entities.NewSquad(members...))
	}
	return wave, nil
}
