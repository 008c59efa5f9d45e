package main

import (
	"fmt"
	"strings"
)

const (
	baseClockHz = 14.31818e6
	sysClockHz  = 400e6
)

// Profile is one set of timing registers R0..R15 and the character clock
// the controller needs to go with them.
type Profile struct {
	Name        string
	Description string
	Regs        [16]uint8
	ClockHz     float64
	Mode        Mode
}

// Profiles are the built in display timings.
var Profiles = []Profile{{
	Name:        "default",
	Description: "80x24 text, power on defaults",
	Regs: [16]uint8{
		0x64, 0x50, 0x54, 0x07, // R0-R3: htotal, hdisplayed, hsync pos, sync width
		0x1b, 0x02, 0x18, 0x19, // R4-R7: vtotal, vtotal adjust, vdisplayed, vsync pos
		0x00, 0x0a, 0x00, 0x0b, // R8-R11: interlace, max scanline, cursor start/end
		0x00, 0x80, 0x00, 0x80, // R12-R15: start address, cursor address
	},
	ClockHz: baseClockHz / 8,
	Mode:    CharacterMode,
}, {
	Name:        "text40",
	Description: "40x25 text, 8 line cells",
	Regs: [16]uint8{
		0x38, 0x28, 0x2d, 0x0a,
		0x1f, 0x06, 0x19, 0x1c,
		0x02, 0x07, 0x06, 0x07,
		0x00, 0x00, 0x00, 0x00,
	},
	ClockHz: baseClockHz / 16,
	Mode:    CharacterMode,
}, {
	Name:        "text80",
	Description: "80x25 text, 8 line cells",
	Regs: [16]uint8{
		0x71, 0x50, 0x5a, 0x0a,
		0x1f, 0x06, 0x19, 0x1c,
		0x02, 0x07, 0x06, 0x07,
		0x00, 0x00, 0x00, 0x00,
	},
	ClockHz: baseClockHz / 8,
	Mode:    CharacterMode,
}, {
	Name:        "gfx320",
	Description: "320x200 graphics, 4 pixels per byte, lines doubled",
	Regs: [16]uint8{
		0x71, 0x50, 0x5a, 0x0a,
		0x7f, 0x06, 0x64, 0x70,
		0x02, 0x01, 0x06, 0x07,
		0x00, 0x00, 0x00, 0x00,
	},
	ClockHz: baseClockHz / 8,
	Mode:    PixelMode,
}}

// LookupProfile returns the profile called name.
func LookupProfile(name string) (Profile, error) {
	for _, p := range Profiles {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}

// ApplyProfile writes R0..R15 in ascending order, which keeps the start
// address behind everything that affects addressing.
func ApplyProfile(c *CRTC, p Profile) {
	for r, v := range p.Regs {
		c.WriteRegister(uint8(r), v)
		wait(c.Settle)
	}
}

// VerifyProfile reads back every register v exposes and compares it with
// p. Bits the chip does not implement are ignored.
func VerifyProfile(c *CRTC, v Variant, p Profile) error {
	var bad []Mismatch
	for r, want := range p.Regs {
		if !v.Readable(r) {
			continue
		}
		want &= regWidth[r]
		if got := c.ReadRegister(uint8(r)); got != want {
			bad = append(bad, Mismatch{Reg: r, Want: want, Got: got})
		}
	}
	if len(bad) > 0 {
		return &VerifyError{Profile: p.Name, Mismatches: bad}
	}
	return nil
}
