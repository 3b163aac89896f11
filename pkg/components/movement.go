package components

// 移动方式名称（用于波次配置文件）
const (
	MovementPath = "path"
	MovementFly  = "fly"
)

// MovementComponent 移动组件
// 在 Component 基础上增加 Move，具体移动方式由实现决定
type MovementComponent interface {
	Component
	Move()
	// Kind 返回移动方式名称："path" 或 "fly"
	Kind() string
}

// PathMovementComponent 沿路径移动
type PathMovementComponent struct{}

func (*PathMovementComponent) Start()       {}
func (*PathMovementComponent) Update()      {}
func (*PathMovementComponent) Move()        {}
func (*PathMovementComponent) Kind() string { return MovementPath }

// FlyMovementComponent 飞行移动
type FlyMovementComponent struct{}

func (*FlyMovementComponent) Start()       {}
func (*FlyMovementComponent) Update()      {}
func (*FlyMovementComponent) Move()        {}
func (*FlyMovementComponent) Kind() string { return MovementFly }
