package main

import (
	"errors"
	"fmt"
	"math"
)

// ClockGen produces a square wave on a pin.
type ClockGen interface {
	// Start runs the clock at as close to hz as it can manage and
	// returns the frequency actually produced.
	Start(pin int, hz float64) (float64, error)
}

// PIOClock is a state machine clock: one toggle every half period, timed
// by a 16.8 fixed point divider off the system clock.
type PIOClock struct {
	SysHz float64

	Pin    int
	Hz     float64 // requested
	Actual float64 // produced
}

var errClockRange = errors.New("clock out of range")

func (p *PIOClock) Start(pin int, hz float64) (float64, error) {
	if hz <= 0 {
		return 0, fmt.Errorf("%w: %.0f Hz", errClockRange, hz)
	}
	// two state machine cycles per output period
	div := math.Round(p.SysHz/(2*hz)*256) / 256
	if div < 1 || div >= 65536 {
		return 0, fmt.Errorf("%w: %.0f Hz needs divider %.3f", errClockRange, hz, div)
	}
	p.Pin, p.Hz = pin, hz
	p.Actual = p.SysHz / (2 * div)
	return p.Actual, nil
}
