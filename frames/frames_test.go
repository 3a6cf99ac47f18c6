package frames

import (
	"context"
	"testing"
	"time"

	"github.com/tonalring/ring/rotation"
)

var _ rotation.Clock = (*Loop)(nil)

func TestLoopAnimates(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	l := NewLoop(time.Millisecond)
	go l.Run(ctx)

	for !l.IsRunning() {
		time.Sleep(time.Millisecond)
	}

	c := rotation.NewController(l)
	landed := make(chan error, 1)
	if err := l.Do(ctx, func() {
		c.AnimateTo(12, 20*time.Millisecond).OnSettle(func(err error) {
			landed <- err
		})
	}); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-landed:
		if err != nil {
			t.Fatal(err)
		}
	case <-ctx.Done():
		t.Fatal("animation never landed")
	}

	var rotating bool
	if err := l.Do(ctx, func() {
		rotating = c.IsRotating.Get()
	}); err != nil {
		t.Fatal(err)
	}
	if rotating {
		t.Fatal("still rotating")
	}
	if l.Frames() == 0 {
		t.Fatal("no frames delivered")
	}
}

func TestPostNotRunning(t *testing.T) {
	l := NewLoop(0)
	if err := l.Post(context.Background(), func() {}); err != NotRunning {
		t.Fatalf("err %v", err)
	}
	if l.Interval != DefaultInterval {
		t.Fatalf("interval %s", l.Interval)
	}
}

func TestRunTwice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(time.Millisecond)
	go l.Run(ctx)
	for !l.IsRunning() {
		time.Sleep(time.Millisecond)
	}
	if err := l.Run(ctx); err != AlreadyRunning {
		t.Fatalf("err %v", err)
	}
	cancel()
}
