// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package frame provides display-refresh schedulers.
// A scheduler paces a render loop: each call to Next
// blocks until the next refresh and yields a timestamp.
package frame

import (
	"context"
	"errors"
	"time"
)

// Scheduler is the interface that wraps the Next method.
//
// Next blocks until the next display refresh and returns
// the time elapsed since the scheduler's origin.
// It returns ctx.Err() if ctx is done first, and ErrDone
// when the scheduler has no more frames to produce.
// Timestamps should not decrease.
type Scheduler interface {
	Next(ctx context.Context) (time.Duration, error)
}

// ErrDone means that a scheduler has no more frames.
var ErrDone = errors.New("frame: no more frames")

// Clock is the source of time of a Ticker.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time                         { return time.Now() }
func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// SystemClock returns a Clock backed by package time.
func SystemClock() Clock { return systemClock{} }

// Ticker is a Scheduler that fires at a fixed rate.
// It stands in for the host's refresh signal where there
// is none, such as in headless runs.
type Ticker struct {
	clock  Clock
	period time.Duration
	origin time.Time
	next   time.Time
}

// NewTicker creates a Ticker firing rate times per second.
func NewTicker(rate int) *Ticker { return NewTickerWithClock(rate, systemClock{}) }

// NewTickerWithClock creates a Ticker that uses clock.
// rate must be positive.
func NewTickerWithClock(rate int, clock Clock) *Ticker {
	if rate <= 0 {
		panic("frame: non-positive rate")
	}
	now := clock.Now()
	return &Ticker{
		clock:  clock,
		period: time.Second / time.Duration(rate),
		origin: now,
		next:   now,
	}
}

// Period returns the time between two ticks.
func (t *Ticker) Period() time.Duration { return t.period }

// Next implements Scheduler.
// A tick that is missed is not made up for: if the
// caller falls behind, the next tick is scheduled one
// period from now.
func (t *Ticker) Next(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := t.clock.Now()
	if wait := t.next.Sub(now); wait > 0 {
		select {
		case now = <-t.clock.After(wait):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	t.next = t.next.Add(t.period)
	if t.next.Before(now) {
		t.next = now.Add(t.period)
	}
	return now.Sub(t.origin), nil
}

// Manual is a Scheduler driven by explicit calls to Step.
// It is mostly useful for tests.
type Manual struct {
	ch   chan time.Duration
	done chan struct{}
}

// NewManual creates a new Manual scheduler.
func NewManual() *Manual {
	return &Manual{
		ch:   make(chan time.Duration),
		done: make(chan struct{}),
	}
}

// Step delivers a frame with timestamp ts.
// It blocks until the frame is taken by Next, and
// returns false if m is closed first.
func (m *Manual) Step(ts time.Duration) bool {
	select {
	case m.ch <- ts:
		return true
	case <-m.done:
		return false
	}
}

// Close makes pending and further calls to Next return
// ErrDone. It must be called at most once.
func (m *Manual) Close() { close(m.done) }

// Next implements Scheduler.
func (m *Manual) Next(ctx context.Context) (time.Duration, error) {
	select {
	case ts := <-m.ch:
		return ts, nil
	case <-m.done:
		return 0, ErrDone
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Sequence is a Scheduler that yields a fixed list of
// timestamps without blocking, then ErrDone.
type Sequence struct {
	ts []time.Duration
}

// NewSequence creates a Sequence.
func NewSequence(ts ...time.Duration) *Sequence {
	return &Sequence{ts: append([]time.Duration(nil), ts...)}
}

// Next implements Scheduler.
func (s *Sequence) Next(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(s.ts) == 0 {
		return 0, ErrDone
	}
	ts := s.ts[0]
	s.ts = s.ts[1:]
	return ts, nil
}

// Limit returns a Scheduler that yields at most n frames
// from s, then ErrDone.
func Limit(s Scheduler, n int) Scheduler { return &limited{s, n} }

type limited struct {
	s Scheduler
	n int
}

func (l *limited) Next(ctx context.Context) (time.Duration, error) {
	if l.n <= 0 {
		return 0, ErrDone
	}
	ts, err := l.s.Next(ctx)
	if err == nil {
		l.n--
	}
	return ts, err
}
