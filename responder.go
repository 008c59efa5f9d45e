package main

// DefaultSampleMask keeps MA0..MA13 and RA0..RA2 and drops every other
// line before two samples are compared.
const DefaultSampleMask = addrBusMask

// Responder is the emulated character ROM. Each time the address lines
// change it puts the byte for the new address on the data bus.
type Responder struct {
	pins   Pins
	bus    *DataBus
	vram   *VRAM
	glyphs *GlyphTable

	mask uint32
	prev uint32

	polls, served uint64
}

// NewResponder returns a responder comparing samples under mask.
func NewResponder(pins Pins, bus *DataBus, vram *VRAM, glyphs *GlyphTable, mask uint32) *Responder {
	r := &Responder{
		pins:   pins,
		bus:    bus,
		vram:   vram,
		glyphs: glyphs,
		mask:   mask,
	}
	r.Arm()
	return r
}

// Arm turns the data bus around to drive and forgets the previous sample,
// so the next Poll always serves.
func (r *Responder) Arm() {
	r.bus.Output()
	r.prev = 0xffffffff
}

// Poll samples the address lines once and serves the new address if the
// sample differs from the last one. It reports whether it served.
func (r *Responder) Poll() bool {
	r.polls++
	sample := r.pins.GetAll() & r.mask
	if sample == r.prev {
		return false
	}
	r.prev = sample

	addr := uint16(sample & maMask >> PinMA)
	row := uint8(sample & raMask >> PinRA)
	r.bus.Write(r.Serve(addr, row))
	r.served++
	return true
}

// Serve returns the byte the ROM presents for addr and row in the current
// mode. Pixel mode ignores row.
func (r *Responder) Serve(addr uint16, row uint8) byte {
	addr &= AddrSpace - 1
	if r.vram.mode == CharacterMode {
		return r.glyphs[int(r.vram.chars[addr])<<raWidth|int(row&(GlyphHeight-1))]
	}
	return r.vram.pixels[addr]
}

// Counts returns the number of polls and serves so far.
func (r *Responder) Counts() (polls, served uint64) {
	return r.polls, r.served
}
