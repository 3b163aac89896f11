package entities

import "io"

// 实例化时输出到控制台的文本
const (
	UnitInstantiatedMessage  = "Unit was instantiated"
	SquadInstantiatedMessage = "Squad was instantiated"
)

// Spawnable 可生成实体
// 单个单位和小队都满足此契约，生成器可以统一对待两者
type Spawnable interface {
	// Instantiate 将实体引入世界，实例化文本写入 out
	Instantiate(out io.Writer)
	// Move 移动实体
	Move()
}
