package entities

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// DefaultWave 返回内置的演示波次：
// 魔法飞行单位、小队（魔法飞行 + 物理路径）、物理无移动单位
func DefaultWave() []Spawnable {
	return []Spawnable{
		NewUnitBuilder().WithMagicalArmor().Flying().Create(),
		NewSquad(
			NewUnitBuilder().WithMagicalArmor().Flying().Create(),
			NewUnitBuilder().WithPhysicalArmor().MovingOnPath().Create(),
		),
		NewUnitBuilder().WithPhysicalArmor().Create(),
	}
}

// WaveFingerprint 计算波次内容指纹
// 条目顺序、小队成员、护甲和移动方式任一变化都会改变指纹
func WaveFingerprint(wave []Spawnable) string {
	parts := make([]string, len(wave))
	for i, e := range wave {
		parts[i] = fmt.Sprint(e)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(strings.Join(parts, "\n")))
}
