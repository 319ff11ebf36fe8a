package match

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSweeperRunStopsOnCancel(t *testing.T) {
	e := newTestEngine()
	var mu sync.Mutex
	e.m.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return e.now
	}
	a, _ := e.pair(t, "a", "b")

	mu.Lock()
	e.advance(31 * time.Second)
	mu.Unlock()

	s := NewSweeper(e.m, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		e.m.mu.Lock()
		swept := len(a.named(EventMatchUpdated)) > 0
		e.m.mu.Unlock()
		if swept {
			break
		}
		select {
		case <-deadline:
			t.Fatal("sweeper never fired")
		case <-time.After(2 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on cancel")
	}
}
