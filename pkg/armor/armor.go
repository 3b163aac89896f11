package armor

import (
	"errors"
	"fmt"
)

// Armor 护甲策略
// 将受到的伤害按固定比例削减，纯函数，无副作用
type Armor interface {
	ProcessDamage(damage int) int
}

// ErrUnknownArmor 未知护甲名称
var ErrUnknownArmor = errors.New("unknown armor")

// 护甲名称（用于波次配置文件）
const (
	NamePhysical = "physical"
	NameMagic    = "magic"
)

// Physical 物理护甲：伤害减半（整数截断）
type Physical struct{}

// ProcessDamage 返回削减后的伤害
func (Physical) ProcessDamage(damage int) int {
	return damage / 2
}

func (Physical) String() string { return NamePhysical }

// Magic 魔法护甲：伤害除以三（整数截断）
type Magic struct{}

// ProcessDamage 返回削减后的伤害
func (Magic) ProcessDamage(damage int) int {
	return damage / 3
}

func (Magic) String() string { return NameMagic }

// ByName 根据配置名称返回护甲策略
//
// 参数：
//   - name: "physical" 或 "magic"
//
// 返回：
//   - Armor: 护甲策略
//   - error: 未知名称时返回 ErrUnknownArmor
func ByName(name string) (Armor, error) {
	switch name {
	case NamePhysical:
		return Physical{}, nil
	case NameMagic:
		return Magic{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArmor, name)
	}
}
