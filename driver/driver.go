// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines a set of interfaces encompassing
// the graphics functionality needed to draw a scene.
// It is designed to allow host-specific APIs (WebGL,
// software recorders) to be implemented in a mostly
// straightforward manner.
package driver

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Driver is the interface that provides methods for
// loading and unloading an underlying implementation.
type Driver interface {
	// Open creates a context drawing into target.
	// How target is interpreted is driver-specific
	// (e.g., a canvas element ID).
	// Failure to create a context wraps ErrNoContext.
	Open(target string) (Context, error)

	// Name returns the name of the driver.
	// It must not cause the driver to be opened.
	Name() string

	// Close deinitializes the driver.
	// Closing a driver that is not open has no effect.
	Close()
}

// ErrNoContext means that a graphics context could not be
// created.
var ErrNoContext = errors.New("driver: graphics context unavailable")

// ErrCompile means that a shader failed to compile.
var ErrCompile = errors.New("driver: shader compilation failed")

// ErrLink means that a program failed to link or validate.
var ErrLink = errors.New("driver: program link failed")

// ErrDestroyed means that a destroyed resource was used.
var ErrDestroyed = errors.New("driver: use of destroyed resource")

// ErrNoDriver means that no registered driver matched.
var ErrNoDriver = errors.New("driver: driver not found")

// Drivers returns the registered Drivers.
// Client code imports specific driver packages, and then
// call this function. As such, drivers that do not
// register themselves on init will not be considered
// for selection.
func Drivers() []Driver {
	mu.Lock()
	defer mu.Unlock()
	drv := make([]Driver, len(drivers))
	copy(drv, drivers)
	return drv
}

// Register registers a Driver.
// Driver implementations are expected to call Register
// exactly once, from an init function.
// If a driver with the same name has already been
// registered, it will be replaced by drv.
func Register(drv Driver) {
	mu.Lock()
	defer mu.Unlock()
	for i := range drivers {
		if drivers[i].Name() == drv.Name() {
			drivers[i] = drv
			zap.L().Warn("driver replaced", zap.String("name", drv.Name()))
			return
		}
	}
	drivers = append(drivers, drv)
	zap.L().Debug("driver registered", zap.String("name", drv.Name()))
}

// Open opens a context on the first driver whose name
// contains name. It is case insensitive.
// If name is the empty string, then all registered
// drivers are considered.
func Open(name, target string) (Context, error) {
	name = strings.ToLower(name)
	err := fmt.Errorf("%w: %q", ErrNoDriver, name)
	for _, drv := range Drivers() {
		if !strings.Contains(strings.ToLower(drv.Name()), name) {
			continue
		}
		ctx, e := drv.Open(target)
		if e != nil {
			err = e
			continue
		}
		return ctx, nil
	}
	return nil, err
}

// Variables used for driver registration.
var (
	mu      sync.Mutex
	drivers = make([]Driver, 0, 2)
)
