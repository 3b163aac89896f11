package spawner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/decker502/wavespawner/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock 手动推进的时钟；After 会直接把时间推进到期限并立即触发
type fakeClock struct {
	now   time.Time
	waits []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	c.now = c.now.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

// stampedLine 带时间偏移的输出行
type stampedLine struct {
	at   time.Duration
	text string
}

// stampedWriter 记录每行输出发生时相对起点的时间
type stampedWriter struct {
	clock *fakeClock
	start time.Time
	lines []stampedLine
}

func newStampedWriter(c *fakeClock) *stampedWriter {
	return &stampedWriter{clock: c, start: c.Now()}
}

func (w *stampedWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.lines = append(w.lines, stampedLine{at: w.clock.Now().Sub(w.start), text: line})
	}
	return len(p), nil
}

type recorderFunc func(int) error

func (f recorderFunc) RecordSpawn(n int) error { return f(n) }

const (
	unitMsg  = entities.UnitInstantiatedMessage
	squadMsg = entities.SquadInstantiatedMessage
)

func TestNew_RejectsNonPositiveDelay(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		s, err := New(entities.DefaultWave(), d)
		assert.ErrorIs(t, err, ErrInvalidDelay)
		assert.Nil(t, s)
	}
}

func TestSpawner_FirstSpawnImmediate(t *testing.T) {
	clock := newFakeClock()
	s, err := New(entities.DefaultWave(), 2*time.Second, WithClock(clock), WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	assert.True(t, s.CanSpawn())
	assert.Equal(t, 3, s.Pending())
	assert.Equal(t, 2*time.Second, s.Delay())
}

func TestSpawner_CanSpawnAfterDelay(t *testing.T) {
	clock := newFakeClock()
	s, err := New(entities.DefaultWave(), 2*time.Second, WithClock(clock), WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	require.NoError(t, s.Spawn())
	assert.False(t, s.CanSpawn(), "must not spawn right after a spawn")

	clock.Advance(1999 * time.Millisecond)
	assert.False(t, s.CanSpawn())

	clock.Advance(time.Millisecond)
	assert.True(t, s.CanSpawn(), "elapsed == delay is enough")
}

func TestSpawner_SpawnOrderIsFIFO(t *testing.T) {
	var got []string
	wave := []entities.Spawnable{
		&namedEntry{name: "A", log: &got},
		&namedEntry{name: "B", log: &got},
		&namedEntry{name: "C", log: &got},
	}
	s, err := New(wave, time.Second, WithClock(newFakeClock()))
	require.NoError(t, err)

	for s.Pending() > 0 {
		require.NoError(t, s.Spawn())
	}
	assert.Equal(t, []string{"A", "B", "C"}, got)
	assert.Equal(t, 3, s.Spawned())
}

func TestSpawner_SpawnEmptyQueue(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(nil, time.Second, WithClock(newFakeClock()), WithOutput(&buf))
	require.NoError(t, err)

	assert.False(t, s.CanSpawn())
	assert.ErrorIs(t, s.Spawn(), ErrEmptyQueue)
	assert.Empty(t, buf.String())
	assert.Zero(t, s.Spawned())

	_, ok := s.NextSpawnAt()
	assert.False(t, ok)
}

// 端到端场景：延迟 2 秒，首次生成等待一个完整延迟
func TestSpawner_EndToEndPolling(t *testing.T) {
	clock := newFakeClock()
	out := newStampedWriter(clock)
	s, err := New(entities.DefaultWave(), 2*time.Second,
		WithClock(clock), WithOutput(out), WithDelayedStart())
	require.NoError(t, err)

	poll := func() {
		if s.CanSpawn() {
			require.NoError(t, s.Spawn())
		}
	}

	poll() // 0s
	assert.Empty(t, out.lines)

	for i := 0; i < 3; i++ {
		clock.Advance(time.Second)
		poll()
		clock.Advance(time.Second)
		poll()
	}

	assert.Equal(t, []stampedLine{
		{2 * time.Second, unitMsg},
		{4 * time.Second, unitMsg},
		{4 * time.Second, unitMsg},
		{4 * time.Second, squadMsg},
		{6 * time.Second, unitMsg},
	}, out.lines)

	assert.Zero(t, s.Pending())
	clock.Advance(time.Hour)
	assert.False(t, s.CanSpawn(), "drained spawner never spawns again")
}

func TestSpawner_RunDrainsAndReturns(t *testing.T) {
	clock := newFakeClock()
	out := newStampedWriter(clock)
	s, err := New(entities.DefaultWave(), 2*time.Second, WithClock(clock), WithOutput(out))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, []stampedLine{
		{0, unitMsg},
		{2 * time.Second, unitMsg},
		{2 * time.Second, unitMsg},
		{2 * time.Second, squadMsg},
		{4 * time.Second, unitMsg},
	}, out.lines)
	// 每次只等待到下一个期限，不做轮询
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, clock.waits)
}

func TestSpawner_RunDelayedStart(t *testing.T) {
	clock := newFakeClock()
	out := newStampedWriter(clock)
	s, err := New(entities.DefaultWave(), 2*time.Second,
		WithClock(clock), WithOutput(out), WithDelayedStart())
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))
	require.Len(t, out.lines, 5)
	assert.Equal(t, 2*time.Second, out.lines[0].at)
	assert.Equal(t, 6*time.Second, out.lines[4].at)
}

// cancelClock 在第一次等待时取消上下文，返回永不触发的通道
type cancelClock struct {
	*fakeClock
	cancel context.CancelFunc
}

func (c *cancelClock) After(time.Duration) <-chan time.Time {
	c.cancel()
	return nil
}

func TestSpawner_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := &cancelClock{fakeClock: newFakeClock(), cancel: cancel}
	var buf bytes.Buffer
	s, err := New(entities.DefaultWave(), 2*time.Second, WithClock(clock), WithOutput(&buf))
	require.NoError(t, err)

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Spawned(), "first entry spawns before the first wait")
	assert.Equal(t, 2, s.Pending())
}

func TestSpawner_RunEmptyWave(t *testing.T) {
	s, err := New(nil, time.Second, WithClock(newFakeClock()))
	require.NoError(t, err)
	assert.NoError(t, s.Run(context.Background()))
}

func TestSpawner_Recorder(t *testing.T) {
	var counts []int
	rec := recorderFunc(func(n int) error {
		counts = append(counts, n)
		return nil
	})
	s, err := New(entities.DefaultWave()[1:], time.Second,
		WithClock(newFakeClock()), WithOutput(&bytes.Buffer{}),
		WithRecorder(rec), WithAlreadySpawned(1))
	require.NoError(t, err)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, []int{2, 3}, counts)
}

// 记录失败只告警，不影响生成
func TestSpawner_RecorderErrorIgnored(t *testing.T) {
	rec := recorderFunc(func(int) error { return errors.New("disk full") })
	var buf bytes.Buffer
	s, err := New(entities.DefaultWave()[:1], time.Second,
		WithClock(newFakeClock()), WithOutput(&buf), WithRecorder(rec))
	require.NoError(t, err)

	assert.NoError(t, s.Spawn())
	assert.Equal(t, unitMsg+"\n", buf.String())
}

// namedEntry 记录实例化顺序的测试实体
type namedEntry struct {
	name string
	log  *[]string
}

func (e *namedEntry) Instantiate(_ io.Writer) { *e.log = append(*e.log, e.name) }
func (e *namedEntry) Move()                   {}
