// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package frame

import (
	"time"
)

// Callback receives a frames-per-second measurement.
type Callback func(fps float32)

// Meter measures the frame rate of a render loop.
// Call Tick once per frame; the callback runs once every
// interval with the rate observed during it.
type Meter struct {
	clock    Clock
	interval time.Duration
	frames   int
	ref      time.Time
	callback Callback
}

// NewMeter creates a Meter that reports once per second.
func NewMeter(callback Callback) *Meter {
	return NewMeterWithClock(systemClock{}, callback)
}

// NewMeterWithClock creates a Meter that uses clock.
func NewMeterWithClock(clock Clock, callback Callback) *Meter {
	return &Meter{
		clock:    clock,
		interval: time.Second,
		ref:      clock.Now(),
		callback: callback,
	}
}

// Tick counts one frame.
func (m *Meter) Tick() {
	now := m.clock.Now()
	m.frames++
	delta := now.Sub(m.ref)
	if delta < m.interval {
		return
	}
	fps := float32(float64(m.frames) / delta.Seconds())
	m.frames = 0
	m.ref = now
	m.callback(fps)
}
