package entities

import (
	"errors"
	"fmt"

	"github.com/decker502/wavespawner/pkg/armor"
	"github.com/decker502/wavespawner/pkg/components"
)

var (
	// ErrMovementWithoutArmor 移动方式必须在护甲之后选择
	ErrMovementWithoutArmor = errors.New("movement requires armor")
	// ErrUnknownArmor 未知护甲名称（与 armor.ErrUnknownArmor 为同一个值）
	ErrUnknownArmor = armor.ErrUnknownArmor
	// ErrUnknownMovement 未知移动方式名称
	ErrUnknownMovement = errors.New("unknown movement")
)

// UnitSpec 单位配置
// Armor 取值 ""、"physical"、"magic"；Movement 取值 ""、"path"、"fly"
type UnitSpec struct {
	Armor    string `yaml:"armor"`
	Movement string `yaml:"movement"`
}

// Validate 检查配置能否通过分阶段构造器构造
func (s UnitSpec) Validate() error {
	if s.Armor != "" {
		if _, err := armor.ByName(s.Armor); err != nil {
			return err
		}
	}
	switch s.Movement {
	case "", components.MovementPath, components.MovementFly:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMovement, s.Movement)
	}
	if s.Armor == "" && s.Movement != "" {
		return ErrMovementWithoutArmor
	}
	return nil
}

// BuildUnit 按配置驱动分阶段构造器创建单位
func BuildUnit(spec UnitSpec) (*Unit, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	b := NewUnitBuilder()
	if spec.Armor == "" {
		return b.Create(), nil
	}

	a, err := armor.ByName(spec.Armor)
	if err != nil {
		return nil, err
	}

	var armored *ArmoredUnitBuilder
	switch a.(type) {
	case armor.Physical:
		armored = b.WithPhysicalArmor()
	case armor.Magic:
		armored = b.WithMagicalArmor()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArmor, spec.Armor)
	}

	switch spec.Movement {
	case components.MovementPath:
		return armored.MovingOnPath().Create(), nil
	case components.MovementFly:
		return armored.Flying().Create(), nil
	default:
		return armored.Create(), nil
	}
}
