// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockClock advances only when waited on or advanced.
type MockClock struct {
	time   time.Time
	waited []time.Duration
}

func (c *MockClock) Now() time.Time { return c.time }

func (c *MockClock) After(d time.Duration) <-chan time.Time {
	c.waited = append(c.waited, d)
	c.time = c.time.Add(d)
	ch := make(chan time.Time, 1)
	ch <- c.time
	return ch
}

func (c *MockClock) Advance(d time.Duration) { c.time = c.time.Add(d) }

func TestTicker(t *testing.T) {
	clock := &MockClock{time: time.Unix(1000, 0)}
	tk := NewTickerWithClock(50, clock)
	if p := tk.Period(); p != 20*time.Millisecond {
		t.Fatalf("Ticker.Period\nhave %v\nwant 20ms", p)
	}
	ctx := context.Background()

	// The first tick fires immediately, at the origin.
	ts, err := tk.Next(ctx)
	if err != nil || ts != 0 {
		t.Fatalf("Ticker.Next\nhave %v, %v\nwant 0, nil", ts, err)
	}
	clock.Advance(5 * time.Millisecond)
	ts, _ = tk.Next(ctx)
	if ts != 20*time.Millisecond {
		t.Fatalf("Ticker.Next\nhave %v\nwant 20ms", ts)
	}
	if w := clock.waited[len(clock.waited)-1]; w != 15*time.Millisecond {
		t.Fatalf("Ticker.Next: wait\nhave %v\nwant 15ms", w)
	}

	// Falling behind skips missed ticks.
	clock.Advance(100 * time.Millisecond)
	n := len(clock.waited)
	ts, _ = tk.Next(ctx)
	if ts != 120*time.Millisecond || len(clock.waited) != n {
		t.Fatalf("Ticker.Next: late\nhave %v (waited %d)\nwant 120ms (no wait)", ts, len(clock.waited)-n)
	}
	ts, _ = tk.Next(ctx)
	if ts != 140*time.Millisecond {
		t.Fatalf("Ticker.Next: after late\nhave %v\nwant 140ms", ts)
	}
}

func TestTickerCancel(t *testing.T) {
	tk := NewTicker(1)
	ctx, cancel := context.WithCancel(context.Background())
	if _, err := tk.Next(ctx); err != nil {
		t.Fatalf("Ticker.Next: %v", err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	if _, err := tk.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Ticker.Next: cancel\nhave %v\nwant %v", err, context.Canceled)
	}
}

func TestManual(t *testing.T) {
	m := NewManual()
	ctx := context.Background()
	got := make(chan time.Duration, 2)
	go func() {
		for {
			ts, err := m.Next(ctx)
			if err != nil {
				close(got)
				return
			}
			got <- ts
		}
	}()
	for _, ts := range [...]time.Duration{0, time.Second} {
		if !m.Step(ts) {
			t.Fatal("Manual.Step: unexpected false")
		}
		if have := <-got; have != ts {
			t.Fatalf("Manual.Next\nhave %v\nwant %v", have, ts)
		}
	}
	m.Close()
	if _, ok := <-got; ok {
		t.Fatal("Manual.Close: Next should return an error")
	}
	if m.Step(0) {
		t.Fatal("Manual.Step: should fail after Close")
	}
	if _, err := m.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("Manual.Next\nhave %v\nwant %v", err, ErrDone)
	}
}

func TestSequenceLimit(t *testing.T) {
	ctx := context.Background()
	s := Limit(NewSequence(1, 2, 3), 2)
	for _, want := range [...]time.Duration{1, 2} {
		if ts, err := s.Next(ctx); ts != want || err != nil {
			t.Fatalf("Limit.Next\nhave %v, %v\nwant %v, nil", ts, err, want)
		}
	}
	if _, err := s.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("Limit.Next\nhave %v\nwant %v", err, ErrDone)
	}

	seq := NewSequence(7)
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := seq.Next(cctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Sequence.Next: cancelled\nhave %v", err)
	}
	seq.Next(ctx)
	if _, err := seq.Next(ctx); !errors.Is(err, ErrDone) {
		t.Fatalf("Sequence.Next\nhave %v\nwant %v", err, ErrDone)
	}
}

func TestMeter(t *testing.T) {
	clock := &MockClock{time: time.Now()}
	var fps []float32
	m := NewMeterWithClock(clock, func(f float32) { fps = append(fps, f) })
	for i := 0; i < 30; i++ {
		clock.Advance(20 * time.Millisecond)
		m.Tick()
	}
	if len(fps) != 0 {
		t.Fatalf("Meter.Tick: early report %v", fps)
	}
	for i := 0; i < 20; i++ {
		clock.Advance(20 * time.Millisecond)
		m.Tick()
	}
	if len(fps) != 1 || fps[0] != 50 {
		t.Fatalf("Meter.Tick\nhave %v\nwant [50]", fps)
	}
	if m.frames != 0 {
		t.Fatalf("Meter.Tick: frames\nhave %d\nwant 0", m.frames)
	}
}
