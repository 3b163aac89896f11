package entities

import (
	"github.com/decker502/wavespawner/pkg/armor"
	"github.com/decker502/wavespawner/pkg/components"
)

// UnitBuilder 单位构造器（第一阶段）
//
// 三个阶段共享同一个构造中的 Unit，不做拷贝：
//  1. UnitBuilder: 选择护甲，或直接 Create 得到无组件单位
//  2. ArmoredUnitBuilder: 选择移动方式，或直接 Create
//  3. FinalUnitBuilder: 只能 Create
//
// 每个阶段是不同的类型，护甲必须先于移动方式选择，且各自只能选择一次
type UnitBuilder struct {
	unit *Unit
}

// NewUnitBuilder 创建第一阶段构造器
func NewUnitBuilder() *UnitBuilder {
	return &UnitBuilder{unit: &Unit{}}
}

// WithPhysicalArmor 添加包装物理护甲的生命组件
func (b *UnitBuilder) WithPhysicalArmor() *ArmoredUnitBuilder {
	return b.withArmor(armor.Physical{})
}

// WithMagicalArmor 添加包装魔法护甲的生命组件
func (b *UnitBuilder) WithMagicalArmor() *ArmoredUnitBuilder {
	return b.withArmor(armor.Magic{})
}

func (b *UnitBuilder) withArmor(a armor.Armor) *ArmoredUnitBuilder {
	b.unit.addComponent(components.NewHealthComponent(a))
	return &ArmoredUnitBuilder{unit: b.unit}
}

// Create 返回构造中的单位
func (b *UnitBuilder) Create() *Unit {
	return b.unit
}

// ArmoredUnitBuilder 已选择护甲的构造器（第二阶段）
type ArmoredUnitBuilder struct {
	unit *Unit
}

// MovingOnPath 添加沿路径移动组件
func (b *ArmoredUnitBuilder) MovingOnPath() *FinalUnitBuilder {
	b.unit.addComponent(&components.PathMovementComponent{})
	return &FinalUnitBuilder{unit: b.unit}
}

// Flying 添加飞行移动组件
func (b *ArmoredUnitBuilder) Flying() *FinalUnitBuilder {
	b.unit.addComponent(&components.FlyMovementComponent{})
	return &FinalUnitBuilder{unit: b.unit}
}

// Create 返回构造中的单位（无移动组件）
func (b *ArmoredUnitBuilder) Create() *Unit {
	return b.unit
}

// FinalUnitBuilder 构造完成阶段，只能 Create
type FinalUnitBuilder struct {
	unit *Unit
}

// Create 返回构造中的单位
func (b *FinalUnitBuilder) Create() *Unit {
	return b.unit
}
