// Package frames provides a real-time frame clock for rotation
// controllers.
//
// A Loop owns one goroutine (the one calling Run).  Frame callbacks
// and posted work both run on that goroutine, so everything that
// touches cells stays single-writer even when requests arrive from
// elsewhere (a terminal reader, a MIDI callback).  Only one
// time.Ticker exists per Loop, and it only matters while somebody
// has requested a frame.
package frames

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	NotRunning     = errors.New("not running")
	AlreadyRunning = errors.New("already running")
)

// DefaultInterval is roughly one display refresh.
const DefaultInterval = 16 * time.Millisecond

const (
	notRunning = int64(iota)
	running
)

// Loop is a Clock (see package rotation) that delivers frames in real
// time.
type Loop struct {
	Interval time.Duration `json:"interval"`
	Debug    bool          `json:"-"`

	sync.Mutex
	pending []func(time.Duration)
	posted  chan func()
	running int64
	epoch   time.Time
	frames  uint64
}

// NewLoop makes a Loop with the given frame interval.
func NewLoop(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		Interval: interval,
		pending:  make([]func(time.Duration), 0, 8),
		posted:   make(chan func(), 32),
	}
}

// Run delivers frames and posted work in the current goroutine until
// the context is done.
func (l *Loop) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt64(&l.running, notRunning, running) {
		return AlreadyRunning
	}
	defer atomic.StoreInt64(&l.running, notRunning)

	l.epoch = time.Now()
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

LOOP:
	for {
		select {
		case <-ctx.Done():
			break LOOP
		case f := <-l.posted:
			f()
		case <-ticker.C:
			l.frame()
		}
	}

	return ctx.Err()
}

// IsRunning tries to report whether the Run method is currently
// executing.
func (l *Loop) IsRunning() bool {
	return atomic.LoadInt64(&l.running) == running
}

// RequestFrame implements rotation.Clock.
func (l *Loop) RequestFrame(f func(now time.Duration)) {
	l.Lock()
	l.pending = append(l.pending, f)
	l.Unlock()
}

// Pending reports the number of callbacks waiting for a frame.
func (l *Loop) Pending() int {
	l.Lock()
	defer l.Unlock()
	return len(l.pending)
}

// Frames reports how many frames have delivered at least one callback.
func (l *Loop) Frames() uint64 {
	return atomic.LoadUint64(&l.frames)
}

func (l *Loop) frame() {
	l.Lock()
	fs := l.pending
	if len(fs) == 0 {
		l.Unlock()
		return
	}
	l.pending = make([]func(time.Duration), 0, cap(fs))
	l.Unlock()

	now := time.Since(l.epoch)
	atomic.AddUint64(&l.frames, 1)
	l.debugf("frame %s: %d callbacks", now, len(fs))
	for _, f := range fs {
		f(now)
	}
}

// Post queues f to run on the loop's goroutine.
func (l *Loop) Post(ctx context.Context, f func()) error {
	if !l.IsRunning() {
		return NotRunning
	}
	select {
	case l.posted <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs f on the loop's goroutine and waits for it to return.
func (l *Loop) Do(ctx context.Context, f func()) error {
	done := make(chan struct{})
	if err := l.Post(ctx, func() {
		f()
		close(done)
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) debugf(format string, args ...interface{}) {
	if l.Debug {
		log.Printf("debug frames "+format, args...)
	}
}
