package components

// Component 单位组件
// 组件在单位生成后由 Start 初始化，每帧由 Update 驱动
// 当前程序不运行组件更新循环，两者都是占位实现
type Component interface {
	Start()
	Update()
}
