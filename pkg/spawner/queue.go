package spawner

// Queue 泛型先进先出队列
// 非并发安全，只由生成器所在的单个 goroutine 使用
type Queue[T any] struct {
	items []T
}

// NewQueue 按插入顺序创建队列
func NewQueue[T any](items ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, 0, len(items))}
	q.Push(items...)
	return q
}

// Push 追加到队尾
func (q *Queue[T]) Push(items ...T) {
	q.items = append(q.items, items...)
}

// Pop 移除并返回队首，队列为空时 ok 为 false
func (q *Queue[T]) Pop() (item T, ok bool) {
	if len(q.items) == 0 {
		return item, false
	}
	item = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Len 返回队列长度
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Empty 队列是否为空
func (q *Queue[T]) Empty() bool {
	return len(q.items) == 0
}
