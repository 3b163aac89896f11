package spawner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/decker502/wavespawner/pkg/entities"
	"github.com/rs/zerolog"
)

var (
	// ErrEmptyQueue 队列为空时调用 Spawn
	ErrEmptyQueue = errors.New("spawn queue is empty")
	// ErrInvalidDelay 生成间隔必须为正
	ErrInvalidDelay = errors.New("spawn delay must be positive")
)

// Recorder 生成进度记录
// 每次成功生成后收到本波次累计已生成的条目数
type Recorder interface {
	RecordSpawn(spawned int) error
}

// Spawner 生成器
// 按先进先出顺序，每隔一个生成间隔弹出并实例化一个条目
type Spawner struct {
	queue     *Queue[entities.Spawnable]
	delay     time.Duration
	lastSpawn time.Time
	spawned   int

	clock        Clock
	out          io.Writer
	logger       zerolog.Logger
	recorder     Recorder
	delayedStart bool
}

// Option 生成器选项
type Option func(*Spawner)

// WithClock 替换系统时钟
func WithClock(c Clock) Option {
	return func(s *Spawner) { s.clock = c }
}

// WithOutput 设置实例化文本的输出，默认 os.Stdout
func WithOutput(w io.Writer) Option {
	return func(s *Spawner) { s.out = w }
}

// WithLogger 设置日志，默认不输出
func WithLogger(l zerolog.Logger) Option {
	return func(s *Spawner) { s.logger = l }
}

// WithRecorder 设置生成进度记录
func WithRecorder(r Recorder) Option {
	return func(s *Spawner) { s.recorder = r }
}

// WithAlreadySpawned 从上次运行的计数继续，Recorder 收到的是整个波次的累计数
func WithAlreadySpawned(n int) Option {
	return func(s *Spawner) { s.spawned = n }
}

// WithDelayedStart 首次生成等待一个完整间隔，而不是立即生成
func WithDelayedStart() Option {
	return func(s *Spawner) { s.delayedStart = true }
}

// New 创建生成器
//
// 参数：
//   - wave: 待生成条目，顺序即生成顺序
//   - delay: 生成间隔，必须为正，否则返回 ErrInvalidDelay
//   - opts: 生成器选项
func New(wave []entities.Spawnable, delay time.Duration, opts ...Option) (*Spawner, error) {
	if delay <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidDelay, delay)
	}

	s := &Spawner{
		queue:  NewQueue(wave...),
		delay:  delay,
		clock:  SystemClock,
		out:    os.Stdout,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// 除非要求延迟启动，首次生成立即到期
	s.lastSpawn = s.clock.Now()
	if !s.delayedStart {
		s.lastSpawn = s.lastSpawn.Add(-delay)
	}

	s.logger = s.logger.With().Str("system", "Spawner").Logger()
	return s, nil
}

// Delay 返回生成间隔
func (s *Spawner) Delay() time.Duration {
	return s.delay
}

// Pending 返回尚未生成的条目数
func (s *Spawner) Pending() int {
	return s.queue.Len()
}

// Spawned 返回已生成的条目数（包含 WithAlreadySpawned 的计数）
func (s *Spawner) Spawned() int {
	return s.spawned
}

// NextSpawnAt 返回队首可生成的时间，队列为空时 ok 为 false
func (s *Spawner) NextSpawnAt() (at time.Time, ok bool) {
	if s.queue.Empty() {
		return time.Time{}, false
	}
	return s.lastSpawn.Add(s.delay), true
}

// CanSpawn 队列非空且距上次生成已过至少一个间隔
func (s *Spawner) CanSpawn() bool {
	return !s.queue.Empty() && s.clock.Now().Sub(s.lastSpawn) >= s.delay
}

// Spawn 弹出并实例化队首，然后重置上次生成时间
// 不检查间隔，调用方先用 CanSpawn 判断；队列为空时返回 ErrEmptyQueue
func (s *Spawner) Spawn() error {
	entry, ok := s.queue.Pop()
	if !ok {
		return ErrEmptyQueue
	}

	entry.Instantiate(s.out)
	s.lastSpawn = s.clock.Now()
	s.spawned++

	s.logger.Debug().
		Stringer("entry", entryName(entry)).
		Int("spawned", s.spawned).
		Int("pending", s.queue.Len()).
		Msg("spawned entry")

	if s.recorder != nil {
		if err := s.recorder.RecordSpawn(s.spawned); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record spawn progress")
		}
	}
	return nil
}

// Run 运行生成循环
//
// 两次生成之间阻塞等待到下一个到期时间，不做忙等轮询。
// 队列生成完毕返回 nil；ctx 先被取消时返回 ctx.Err()
func (s *Spawner) Run(ctx context.Context) error {
	s.logger.Info().
		Int("pending", s.queue.Len()).
		Dur("delay", s.delay).
		Msg("spawner started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, ok := s.NextSpawnAt()
		if !ok {
			s.logger.Info().Int("spawned", s.spawned).Msg("wave drained")
			return nil
		}

		if s.CanSpawn() {
			if err := s.Spawn(); err != nil {
				return err
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.clock.After(next.Sub(s.clock.Now())):
		}
	}
}

type stringer string

func (s stringer) String() string { return string(s) }

func entryName(e entities.Spawnable) fmt.Stringer {
	if st, ok := e.(fmt.Stringer); ok {
		return st
	}
	return stringer(fmt.Sprintf("%T", e))
}
