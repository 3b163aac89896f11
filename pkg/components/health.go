package components

import "github.com/decker502/wavespawner/pkg/armor"

// HealthComponent 生命组件
// 持有唯一的护甲策略，构造后不可更换（不支持护甲叠加）
type HealthComponent struct {
	armor armor.Armor
}

// NewHealthComponent 创建包装指定护甲的生命组件
func NewHealthComponent(a armor.Armor) *HealthComponent {
	return &HealthComponent{armor: a}
}

// Armor 返回生命组件持有的护甲策略
func (h *HealthComponent) Armor() armor.Armor {
	return h.armor
}

func (h *HealthComponent) Start()  {}
func (h *HealthComponent) Update() {}
