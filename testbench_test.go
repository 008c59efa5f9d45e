package main

import (
	"fmt"
	"time"
)

// bench is a GPIO bank with a simulated controller on the far side and
// the register port on this side, with strobe timing turned off.
type bench struct {
	gpio *GPIO
	bus  *DataBus
	crtc *CRTC
	ctl  *MC6845
}

func newBench(v Variant) *bench {
	b := &bench{gpio: new(GPIO)}
	b.bus = NewDataBus(b.gpio)
	b.crtc = NewCRTC(b.gpio, b.bus)
	b.crtc.Hold, b.crtc.Settle = 0, 0
	b.ctl = NewMC6845(b.gpio, v)
	b.crtc.Reset()
	return b
}

func sample(addr uint16, row uint8) uint32 {
	return uint32(addr)<<PinMA | uint32(row)<<PinRA
}

// strobe is one falling edge of E seen while CS was low.
type strobe struct {
	rs, rw bool
	data   uint8
}

func (s strobe) String() string {
	return fmt.Sprintf("rs=%v rw=%v data=0x%02X", s.rs, s.rw, s.data)
}

// decoder watches the register port like a logic analyser.
type decoder struct {
	e       bool
	strobes []strobe
	edges   []time.Time
}

func (d *decoder) Sense(levels uint32) {
	e := levels&(1<<PinE) != 0
	if e != d.e {
		d.edges = append(d.edges, time.Now())
	}
	if d.e && !e && levels&(1<<PinCS) == 0 {
		d.strobes = append(d.strobes, strobe{
			rs:   levels&(1<<PinRS) != 0,
			rw:   levels&(1<<PinRW) != 0,
			data: uint8(levels & dataMask >> PinData),
		})
	}
	d.e = e
}

// pinLog records every call made on a GPIO bank.
type pinLog struct {
	GPIO
	ops []string
}

func (p *pinLog) SetDirMasked(mask, out uint32) {
	p.ops = append(p.ops, fmt.Sprintf("dir %08x %08x", mask, out))
	p.GPIO.SetDirMasked(mask, out)
}

func (p *pinLog) PutMasked(mask, value uint32) {
	p.ops = append(p.ops, fmt.Sprintf("put %08x %08x", mask, value))
	p.GPIO.PutMasked(mask, value)
}

func (p *pinLog) Put(pin int, high bool) {
	p.ops = append(p.ops, fmt.Sprintf("pin %d %v", pin, high))
	p.GPIO.Put(pin, high)
}
