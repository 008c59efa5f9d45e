package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestResetPattern(t *testing.T) {
	is := is.New(t)
	var v VRAM
	v.ResetPattern()

	is.Equal(v.Char(0), byte(0x20))
	is.Equal(v.Char(1), byte(0x21))
	is.Equal(v.Char(95), byte(0x7f))
	is.Equal(v.Char(96), byte(0x20))
	for a := 0; a < AddrSpace; a++ {
		c := v.Char(uint16(a))
		is.True(c >= 0x20 && c <= 0x7f)
		is.Equal(v.Pixel(uint16(a)), byte(a))
	}
}

func TestResetPatternIdempotent(t *testing.T) {
	is := is.New(t)
	var v VRAM
	v.ResetPattern()
	chars, pixels := v.chars, v.pixels

	v.ResetPattern()
	is.Equal(v.chars, chars)
	is.Equal(v.pixels, pixels)
}

func TestSetMode(t *testing.T) {
	is := is.New(t)
	var v VRAM
	is.Equal(v.Mode(), CharacterMode)
	v.SetMode(PixelMode)
	is.Equal(v.Mode(), PixelMode)
}

func TestParseMode(t *testing.T) {
	is := is.New(t)
	for in, want := range map[string]Mode{
		"char":     CharacterMode,
		"Text":     CharacterMode,
		"pixel":    PixelMode,
		"GRAPHICS": PixelMode,
	} {
		m, err := ParseMode(in)
		is.NoErr(err)
		is.Equal(m, want)
	}
	_, err := ParseMode("hires")
	is.True(errors.Is(err, ErrUnknownMode))
	is.Equal(Mode(7).String(), "Mode(7)")
}

func TestImageFileFill(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	chars := filepath.Join(dir, "chars.bin")
	is.NoErr(os.WriteFile(chars, []byte("HELLO"), 0644))

	var v VRAM
	v.ResetPattern()
	is.NoErr(v.Fill(ImageFile{Chars: chars}))

	is.Equal(v.Char(0), byte('H'))
	is.Equal(v.Char(4), byte('O'))
	is.Equal(v.Char(5), byte(0x20+5)) // rest of the plane untouched
	is.Equal(v.Pixel(7), byte(7))
}

func TestImageFileMissing(t *testing.T) {
	is := is.New(t)
	var v VRAM
	err := v.Fill(ImageFile{Pixels: filepath.Join(t.TempDir(), "nope")})
	is.True(errors.Is(err, os.ErrNotExist))
}

func TestFillers(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	pixels := filepath.Join(dir, "pixels.bin")
	is.NoErr(os.WriteFile(pixels, []byte{0xaa, 0x55}, 0644))

	var v VRAM
	is.NoErr(v.Fill(Fillers{Pattern{}, ImageFile{Pixels: pixels}}))
	is.Equal(v.Pixel(0), byte(0xaa))
	is.Equal(v.Pixel(1), byte(0x55))
	is.Equal(v.Pixel(2), byte(2))
	is.Equal(v.Char(2), byte(0x22))
}
