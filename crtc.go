package main

import (
	"fmt"
	"strings"
	"time"
)

// MC6845 register numbers.
const (
	R0HTotal = iota
	R1HDisplayed
	R2HSyncPos
	R3SyncWidth
	R4VTotal
	R5VTotalAdj
	R6VDisplayed
	R7VSyncPos
	R8Interlace
	R9MaxScanline
	R10CursorStart
	R11CursorEnd
	R12StartHi
	R13StartLo
	R14CursorHi
	R15CursorLo
	R16LightPenHi
	R17LightPenLo

	numRegisters = 18
)

// regWidth masks each register to the bits the chip implements.
var regWidth = [numRegisters]uint8{
	0xff, 0xff, 0xff, 0xff, // R0-R3
	0x7f, 0x1f, 0x7f, 0x7f, // R4-R7
	0xf3, 0x1f, 0x7f, 0x1f, // R8-R11
	0x3f, 0xff, 0x3f, 0xff, // R12-R15
	0x3f, 0xff, // R16-R17
}

// Variant describes which registers a particular CRTC part lets the host
// read back.
type Variant struct {
	Name     string
	readable uint32
}

var (
	// VariantMC6845 is the Motorola part: cursor and light pen only.
	VariantMC6845 = Variant{Name: "mc6845", readable: 0xf << 14}

	// VariantHD6845 is the Hitachi part, which also returns the start address.
	VariantHD6845 = Variant{Name: "hd6845", readable: 0x3f << 12}
)

// Readable reports whether register r returns its contents on a read.
func (v Variant) Readable(r int) bool {
	return r >= 0 && r < numRegisters && v.readable&(1<<r) != 0
}

// LookupVariant returns the variant called name.
func LookupVariant(name string) (Variant, error) {
	for _, v := range []Variant{VariantMC6845, VariantHD6845} {
		if strings.EqualFold(v.Name, name) {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// CRTC drives the MC6845 register port: CS, RS, E and R/W plus the shared
// data bus. Every access is open loop; the chip has no acknowledge line.
type CRTC struct {
	pins Pins
	bus  *DataBus

	// Hold is the minimum time E is held at each level of a strobe.
	Hold time.Duration

	// Settle is the gap left between registers when applying a profile.
	Settle time.Duration
}

// NewCRTC returns a register port with the datasheet minimum timings.
func NewCRTC(pins Pins, bus *DataBus) *CRTC {
	return &CRTC{
		pins:   pins,
		bus:    bus,
		Hold:   time.Microsecond,
		Settle: 10 * time.Microsecond,
	}
}

// Reset puts the control lines in their idle state: deselected, E low,
// data bus released.
func (c *CRTC) Reset() {
	c.pins.SetDirMasked(controlMask, controlMask)
	c.pins.PutMasked(controlMask, 1<<PinCS)
	c.bus.Input()
}

// WriteRegister writes value into register reg. Only the low five bits of
// reg reach the chip.
func (c *CRTC) WriteRegister(reg, value uint8) {
	c.selectRegister(reg)

	c.pins.Put(PinRS, true) // data register
	c.bus.Write(value)
	c.strobe()

	c.pins.Put(PinCS, true)
}

// ReadRegister reads register reg. Registers the part does not expose
// return whatever the chip puts on the bus.
func (c *CRTC) ReadRegister(reg uint8) uint8 {
	c.selectRegister(reg)

	c.bus.Input()
	c.pins.Put(PinRS, true)
	c.pins.Put(PinRW, true)
	c.strobe()
	v := c.bus.Read()

	c.pins.Put(PinCS, true)
	return v
}

// selectRegister runs the address phase, leaving CS asserted.
func (c *CRTC) selectRegister(reg uint8) {
	c.bus.Output()
	c.pins.Put(PinCS, false)
	c.pins.Put(PinRW, false)
	c.pins.Put(PinRS, false) // address register
	c.bus.Write(reg & 0x1f)
	c.strobe()
}

// strobe pulses E high then low. The chip samples on the falling edge.
func (c *CRTC) strobe() {
	c.pins.Put(PinE, true)
	wait(c.Hold)
	c.pins.Put(PinE, false)
	wait(c.Hold)
}

// wait spins on the monotonic clock for at least d.
func wait(d time.Duration) {
	if d <= 0 {
		return
	}
	start := time.Now()
	for time.Since(start) < d {
	}
}
