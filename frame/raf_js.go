// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build js && wasm

package frame

import (
	"context"
	"math"
	"syscall/js"
	"time"
)

// RAF is a Scheduler backed by the browser's
// requestAnimationFrame.
// Timestamps are relative to the first frame received.
type RAF struct {
	window js.Value
	cb     js.Func
	ch     chan float64
	id     js.Value
	origin float64
	start  bool
	last   time.Duration
}

// NewRAF creates a new RAF.
// Release must be called when it is no longer needed.
func NewRAF() *RAF {
	r := &RAF{
		window: js.Global(),
		ch:     make(chan float64, 1),
	}
	r.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		var ts float64
		if len(args) > 0 {
			ts = args[0].Float()
		}
		select {
		case r.ch <- ts:
		default:
		}
		return nil
	})
	return r
}

// Next implements Scheduler.
func (r *RAF) Next(ctx context.Context) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.id = r.window.Call("requestAnimationFrame", r.cb)
	select {
	case ms := <-r.ch:
		if !r.start {
			r.origin, r.start = ms, true
		}
		ts := time.Duration(math.Round((ms - r.origin) * float64(time.Millisecond)))
		if ts < r.last {
			ts = r.last
		}
		r.last = ts
		return ts, nil
	case <-ctx.Done():
		r.window.Call("cancelAnimationFrame", r.id)
		// The callback may have run before the cancel.
		select {
		case <-r.ch:
		default:
		}
		return 0, ctx.Err()
	}
}

// Release releases the JS callback.
func (r *RAF) Release() { r.cb.Release() }
