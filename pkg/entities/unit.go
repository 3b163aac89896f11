package entities

import (
	"fmt"
	"io"

	"github.com/decker502/wavespawner/pkg/armor"
	"github.com/decker502/wavespawner/pkg/components"
)

// Unit 单位
// 持有有序的组件列表，由 UnitBuilder 构造完成后放入生成队列，之后不再修改
type Unit struct {
	components []components.Component
}

func (u *Unit) addComponent(c components.Component) {
	u.components = append(u.components, c)
}

// Components 返回组件列表的副本（按添加顺序）
func (u *Unit) Components() []components.Component {
	out := make([]components.Component, len(u.components))
	copy(out, u.components)
	return out
}

// Armor 返回第一个生命组件持有的护甲，没有生命组件时返回 nil
func (u *Unit) Armor() armor.Armor {
	for _, c := range u.components {
		if h, ok := c.(*components.HealthComponent); ok {
			return h.Armor()
		}
	}
	return nil
}

// Movement 返回单位的移动组件，没有时返回 nil
func (u *Unit) Movement() components.MovementComponent {
	for _, c := range u.components {
		if m, ok := c.(components.MovementComponent); ok {
			return m
		}
	}
	return nil
}

// Instantiate 输出 "Unit was instantiated"
func (u *Unit) Instantiate(out io.Writer) {
	fmt.Fprintln(out, UnitInstantiatedMessage)
}

// Move 占位实现：单位不驱动自身的移动组件
func (u *Unit) Move() {}

func (u *Unit) String() string {
	a, m := "none", "none"
	if ar := u.Armor(); ar != nil {
		a = fmt.Sprint(ar)
	}
	if mv := u.Movement(); mv != nil {
		m = mv.Kind()
	}
	return fmt.Sprintf("unit(armor=%s, movement=%s)", a, m)
}
