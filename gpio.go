package main

// Pin assignments. The MC6845 control lines, the shared data bus and the
// MA/RA address outputs all sit in one 30 line GPIO bank.
const (
	PinMA   = 0  // MA0..MA13 on GPIO0..13
	PinRA   = 14 // RA0..RA2 on GPIO14..16
	PinData = 17 // D0..D7 on GPIO17..24
	PinCLK  = 25 // character clock output
	PinCS   = 26 // chip select, active low
	PinRS   = 27 // register select, 0 = address, 1 = data
	PinE    = 28 // enable, strobes on the high to low edge
	PinRW   = 29 // 0 = write, 1 = read

	maWidth   = 14
	raWidth   = 3
	dataWidth = 8

	maMask      = (1<<maWidth - 1) << PinMA
	raMask      = (1<<raWidth - 1) << PinRA
	addrBusMask = maMask | raMask
	dataMask    = (1<<dataWidth - 1) << PinData
	controlMask = 1<<PinCS | 1<<PinRS | 1<<PinE | 1<<PinRW
)

// Pins is a bank of GPIO lines that can be read and written as a single
// word. Masked operations change every selected line in one update.
type Pins interface {
	// SetDirMasked sets the lines in mask to output where out has a 1
	// and to input where it has a 0.
	SetDirMasked(mask, out uint32)

	// PutMasked drives the output lines in mask to value.
	PutMasked(mask, value uint32)

	// Put drives a single output line.
	Put(pin int, high bool)

	// GetAll samples every line.
	GetAll() uint32
}

// A Device is something on the far side of the pins. It is told every time
// the host changes a line it drives.
type Device interface {
	Sense(levels uint32)
}

// GPIO is a hosted model of a GPIO bank. Lines configured as outputs read
// back what the host drives, lines configured as inputs read back what the
// attached devices drive.
type GPIO struct {
	out uint32 // host driven levels
	oe  uint32 // 1 = output
	ext uint32 // device driven levels

	devices []Device
}

// Attach connects d to the bank.
func (g *GPIO) Attach(d Device) {
	g.devices = append(g.devices, d)
}

func (g *GPIO) SetDirMasked(mask, out uint32) {
	g.oe = g.oe&^mask | out&mask
	g.notify()
}

func (g *GPIO) PutMasked(mask, value uint32) {
	g.out = g.out&^mask | value&mask
	g.notify()
}

func (g *GPIO) Put(pin int, high bool) {
	if high {
		g.out |= 1 << pin
	} else {
		g.out &^= 1 << pin
	}
	g.notify()
}

func (g *GPIO) GetAll() uint32 {
	return g.out&g.oe | g.ext&^g.oe
}

// Drive sets the levels a device presents on the lines in mask. Devices are
// not notified of each other's drives.
func (g *GPIO) Drive(mask, value uint32) {
	g.ext = g.ext&^mask | value&mask
}

func (g *GPIO) notify() {
	if len(g.devices) == 0 {
		return
	}
	levels := g.GetAll()
	for _, d := range g.devices {
		d.Sense(levels)
	}
}
