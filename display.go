package main

import (
	"image"
	"image/color"
)

var (
	phosphor = color.RGBA{0x33, 0xff, 0x66, 0xff}
	black    = color.RGBA{0x00, 0x00, 0x00, 0xff}

	// CGA palette 1, high intensity
	palette = [4]color.RGBA{
		black,
		{0x55, 0xff, 0xff, 0xff},
		{0xff, 0x55, 0xff, 0xff},
		{0xff, 0xff, 0xff, 0xff},
	}
)

// Frame is the picture the monitor would show: one row of pixels per
// scanline, eight pixels per character clock.
type Frame struct {
	img         *image.RGBA
	cols, lines int
}

// NewFrame returns a blank frame for cols characters by lines scanlines.
func NewFrame(cols, lines int) *Frame {
	f := new(Frame)
	f.Resize(cols, lines)
	return f
}

// Resize reallocates the frame if the geometry changed.
func (f *Frame) Resize(cols, lines int) {
	if f.img != nil && cols == f.cols && lines == f.lines {
		return
	}
	f.cols, f.lines = cols, lines
	f.img = image.NewRGBA(image.Rect(0, 0, cols*8, lines))
}

// Put shifts out byte b at character col of scanline line. Character mode
// shifts one bit per pixel; pixel mode shifts two bits per pixel, each
// pixel two dots wide.
func (f *Frame) Put(col, line int, b byte, m Mode) {
	if col >= f.cols || line >= f.lines {
		return
	}
	x := col * 8
	if m == CharacterMode {
		for i := 0; i < 8; i++ {
			c := black
			if b&(0x80>>i) != 0 {
				c = phosphor
			}
			f.img.SetRGBA(x+i, line, c)
		}
		return
	}
	for i := 0; i < 4; i++ {
		c := palette[b>>(6-2*i)&3]
		f.img.SetRGBA(x+2*i, line, c)
		f.img.SetRGBA(x+2*i+1, line, c)
	}
}

// Image returns the frame's pixels.
func (f *Frame) Image() *image.RGBA { return f.img }
