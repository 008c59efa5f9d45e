package main

import (
	"fmt"
	"os"
	"strings"
)

// Mode selects which plane answers the address bus.
type Mode uint8

const (
	CharacterMode Mode = iota
	PixelMode
)

func (m Mode) String() string {
	switch m {
	case CharacterMode:
		return "char"
	case PixelMode:
		return "pixel"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts "char" or "pixel".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "char", "character", "text":
		return CharacterMode, nil
	case "pixel", "gfx", "graphics":
		return PixelMode, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// AddrSpace is the number of addresses MA0..MA13 can select. Both planes
// cover all of it, so every address the controller emits is in range and
// addresses past the visible page alias nothing.
const AddrSpace = 1 << maWidth

// VRAM holds the current mode and the two backing planes.
type VRAM struct {
	mode   Mode
	chars  [AddrSpace]byte // glyph index per cell
	pixels [AddrSpace]byte // 4 pixels per byte, 2 bits each
}

func (v *VRAM) SetMode(m Mode) { v.mode = m }
func (v *VRAM) Mode() Mode     { return v.mode }

// Char returns the glyph index stored for cell addr.
func (v *VRAM) Char(addr uint16) byte { return v.chars[addr&(AddrSpace-1)] }

// Pixel returns the pixel byte stored at addr.
func (v *VRAM) Pixel(addr uint16) byte { return v.pixels[addr&(AddrSpace-1)] }

// A Filler supplies plane content.
type Filler interface {
	Fill(chars, pixels []byte) error
}

// Fill replaces the contents of both planes using f.
func (v *VRAM) Fill(f Filler) error {
	return f.Fill(v.chars[:], v.pixels[:])
}

// ResetPattern regenerates both planes with the test pattern.
func (v *VRAM) ResetPattern() {
	_ = v.Fill(Pattern{})
}

// Pattern is a reproducible fill: printable characters 0x20..0x7f repeating
// across the character plane and a byte ramp across the pixel plane.
type Pattern struct{}

func (Pattern) Fill(chars, pixels []byte) error {
	for i := range chars {
		chars[i] = byte(0x20 + i%96)
	}
	for i := range pixels {
		pixels[i] = byte(i)
	}
	return nil
}

// ImageFile fills the planes from raw image files. An empty path leaves
// that plane untouched; a short file fills only its prefix.
type ImageFile struct {
	Chars  string
	Pixels string
}

func (f ImageFile) Fill(chars, pixels []byte) error {
	if err := load(chars, f.Chars); err != nil {
		return fmt.Errorf("character plane: %w", err)
	}
	if err := load(pixels, f.Pixels); err != nil {
		return fmt.Errorf("pixel plane: %w", err)
	}
	return nil
}

func load(plane []byte, path string) error {
	if path == "" {
		return nil
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	copy(plane, buf)
	return nil
}

// Fillers applies each Filler in turn.
type Fillers []Filler

func (fs Fillers) Fill(chars, pixels []byte) error {
	for _, f := range fs {
		if err := f.Fill(chars, pixels); err != nil {
			return err
		}
	}
	return nil
}
