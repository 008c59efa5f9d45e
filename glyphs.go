package main

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// GlyphHeight is the number of scanlines in a character cell; RA0..RA2
// select one of them.
const GlyphHeight = 1 << raWidth

// GlyphTable is an 8x8 character generator: one byte per scanline, most
// significant bit leftmost.
type GlyphTable [256 * GlyphHeight]byte

// Row returns scanline row of glyph c.
func (t *GlyphTable) Row(c byte, row uint8) byte {
	return t[int(c)*GlyphHeight+int(row&(GlyphHeight-1))]
}

// NewGlyphTable renders the character generator from the 7x13 basic font,
// squeezing the cap height and descender into eight scanlines. Codes the
// font does not cover are blank.
func NewGlyphTable() *GlyphTable {
	face := basicfont.Face7x13

	cell := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	small := image.NewAlpha(image.Rect(0, 0, face.Advance, GlyphHeight))
	// the two rows above the cap height are empty in this face
	src := image.Rect(0, 2, face.Advance, face.Height)

	var t GlyphTable
	for c := 0x20; c < 256; c++ {
		if c == 0x7f || !covers(face, rune(c)) {
			continue
		}
		dr, mask, mp, _, _ := face.Glyph(fixed.P(0, face.Ascent), rune(c))
		draw.Draw(cell, cell.Bounds(), image.Transparent, image.Point{}, draw.Src)
		draw.DrawMask(cell, dr, image.Opaque, image.Point{}, mask, mp, draw.Over)
		draw.NearestNeighbor.Scale(small, small.Bounds(), cell, src, draw.Src, nil)

		for y := 0; y < GlyphHeight; y++ {
			var b byte
			for x := 0; x < face.Advance; x++ {
				if small.AlphaAt(x, y).A >= 0x80 {
					b |= 0x80 >> x
				}
			}
			t[c*GlyphHeight+y] = b
		}
	}
	return &t
}

// covers reports whether face has its own glyph for r rather than the
// replacement character.
func covers(face *basicfont.Face, r rune) bool {
	for _, rng := range face.Ranges {
		if rng.Low <= r && r < rng.High {
			return true
		}
	}
	return false
}
