package entities

import (
	"fmt"
	"io"
	"strings"
)

// Squad 小队
// 组合多个单位，将 Instantiate/Move 按成员顺序转发
type Squad struct {
	units []*Unit
}

// NewSquad 按给定顺序创建小队
func NewSquad(units ...*Unit) *Squad {
	return &Squad{units: units}
}

// Units 返回成员列表的副本
func (s *Squad) Units() []*Unit {
	out := make([]*Unit, len(s.units))
	copy(out, s.units)
	return out
}

// Instantiate 依次实例化全部成员，最后输出一次 "Squad was instantiated"
func (s *Squad) Instantiate(out io.Writer) {
	for _, u := range s.units {
		u.Instantiate(out)
	}
	fmt.Fprintln(out, SquadInstantiatedMessage)
}

// Move 依次转发给每个成员
func (s *Squad) Move() {
	for _, u := range s.units {
		u.Move()
	}
}

func (s *Squad) String() string {
	members := make([]string, len(s.units))
	for i, u := range s.units {
		members[i] = u.String()
	}
	return "squad[" + strings.Join(members, ", ") + "]"
}
