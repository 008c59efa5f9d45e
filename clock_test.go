package main

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestPIOClock(t *testing.T) {
	for _, p := range Profiles {
		t.Run(p.Name, func(t *testing.T) {
			is := is.New(t)
			c := PIOClock{SysHz: sysClockHz}

			hz, err := c.Start(PinCLK, p.ClockHz)
			is.NoErr(err)
			is.Equal(c.Pin, PinCLK)
			is.Equal(c.Actual, hz)
			// an 8 bit fraction gets within 1/512 of a divider step
			is.True(math.Abs(hz-p.ClockHz)/p.ClockHz < 1e-4)
		})
	}
}

func TestPIOClockRange(t *testing.T) {
	is := is.New(t)
	c := PIOClock{SysHz: sysClockHz}

	for _, hz := range []float64{0, -1, 100, sysClockHz} {
		_, err := c.Start(PinCLK, hz)
		is.True(errors.Is(err, errClockRange))
	}
}
