package main

// MC6845 is a hosted model of the CRT controller at the far end of the
// pins. It decodes the register port on the falling edge of E and, when
// clocked, walks the raster putting MA/RA on the address lines and latching
// whatever byte the host has put on the data bus.
type MC6845 struct {
	gpio    *GPIO
	variant Variant

	r    [numRegisters]uint8
	addr uint8 // address register
	e    bool  // last level seen on E

	hcc     uint8  // horizontal character counter
	ra      uint8  // raster counter within a character row
	vcc     uint8  // character row counter
	adj     uint8  // lines into vertical total adjust
	inAdj   bool   // in vertical total adjust
	rowAddr uint16 // MA at the start of the current character row

	latched byte

	// Sink, if set, receives every byte latched during the displayed
	// area, with its character column and scanline.
	Sink func(col, line int, b byte)
}

// NewMC6845 attaches a controller of the given variant to g.
func NewMC6845(g *GPIO, v Variant) *MC6845 {
	c := &MC6845{gpio: g, variant: v}
	g.Attach(c)
	return c
}

// Sense implements Device.
func (c *MC6845) Sense(levels uint32) {
	cs := levels&(1<<PinCS) == 0
	rs := levels&(1<<PinRS) != 0
	rw := levels&(1<<PinRW) != 0
	e := levels&(1<<PinE) != 0

	if cs && rs && rw {
		c.gpio.Drive(dataMask, uint32(c.read(c.addr))<<PinData)
	}

	if cs && c.e && !e {
		data := uint8(levels & dataMask >> PinData)
		switch {
		case !rs && !rw:
			c.addr = data & 0x1f
		case rs && !rw:
			c.write(c.addr, data)
		}
	}
	c.e = e
}

func (c *MC6845) write(reg, v uint8) {
	// R16 and R17 belong to the light pen
	if int(reg) >= R16LightPenHi {
		return
	}
	c.r[reg] = v & regWidth[reg]
}

func (c *MC6845) read(reg uint8) uint8 {
	if !c.variant.Readable(int(reg)) {
		return 0
	}
	return c.r[reg]
}

// Reg returns the internal value of register reg, readable or not.
func (c *MC6845) Reg(reg int) uint8 { return c.r[reg] }

// LightPen latches the current refresh address into R16/R17, as a strobe
// on the LPSTB input would.
func (c *MC6845) LightPen() {
	ma := c.MA()
	c.r[R16LightPenHi] = uint8(ma>>8) & regWidth[R16LightPenHi]
	c.r[R17LightPenLo] = uint8(ma)
}

// MA is the refresh address currently on MA0..MA13.
func (c *MC6845) MA() uint16 {
	return (c.rowAddr + uint16(c.hcc)) & (AddrSpace - 1)
}

// RA is the row address currently on RA0..RA2.
func (c *MC6845) RA() uint8 { return c.ra & (GlyphHeight - 1) }

// Latched is the last byte taken off the data bus.
func (c *MC6845) Latched() byte { return c.latched }

// Displayed reports whether the counters are inside the displayed area.
func (c *MC6845) Displayed() bool {
	return !c.inAdj && c.hcc < c.r[R1HDisplayed] && c.vcc < c.r[R6VDisplayed]
}

// Line is the scanline within the displayed area.
func (c *MC6845) Line() int {
	return int(c.vcc)*(int(c.r[R9MaxScanline])+1) + int(c.ra)
}

// Tick advances one character clock. The byte answering the current
// address is latched first, then the counters move on and the next address
// is driven. It returns true when a new field starts.
func (c *MC6845) Tick() bool {
	if c.Displayed() {
		c.latched = uint8(c.gpio.GetAll() & dataMask >> PinData)
		if c.Sink != nil {
			c.Sink(int(c.hcc), c.Line(), c.latched)
		}
	}

	field := c.advance()
	c.gpio.Drive(addrBusMask, uint32(c.MA())<<PinMA|uint32(c.RA())<<PinRA)
	return field
}

func (c *MC6845) advance() bool {
	if c.hcc < c.r[R0HTotal] {
		c.hcc++
		return false
	}
	c.hcc = 0

	if c.inAdj {
		c.adj++
		if c.adj < c.r[R5VTotalAdj] {
			return false
		}
		c.restart()
		return true
	}

	if c.ra < c.r[R9MaxScanline] {
		c.ra++
		return false
	}
	c.ra = 0
	c.rowAddr += uint16(c.r[R1HDisplayed])

	if c.vcc < c.r[R4VTotal] {
		c.vcc++
		return false
	}
	if c.r[R5VTotalAdj] > 0 {
		c.inAdj = true
		c.adj = 0
		return false
	}
	c.restart()
	return true
}

// restart begins a new field from the programmed start address.
func (c *MC6845) restart() {
	c.hcc, c.ra, c.vcc, c.adj = 0, 0, 0, 0
	c.inAdj = false
	c.rowAddr = uint16(c.r[R12StartHi])<<8 | uint16(c.r[R13StartLo])
}

// Geometry returns the displayed area in characters and scanlines.
func (c *MC6845) Geometry() (cols, lines int) {
	return int(c.r[R1HDisplayed]), int(c.r[R6VDisplayed]) * (int(c.r[R9MaxScanline]) + 1)
}
