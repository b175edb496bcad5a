package pixel

import (
	"image"
	"image/color"
)

// Channel indices within a Grid pixel. Channel 0 is blue by convention,
// matching the byte order the border fingerprint is computed over.
const (
	Blue = iota
	Green
	Red

	Channels = 3
)

// Grid is a dense planar pixel buffer with three 8-bit color channels per
// pixel plus preserved alpha. It is addressed by (row, col) with row 0 at the
// top of the image. The color slices are shared between copies of the value;
// a Grid mutates in place.
type Grid struct {
	bounds        image.Rectangle
	width, height int
	area          int

	// pix holds Channels bytes per pixel in row-major order: blue, green, red.
	pix   []uint8
	alpha []uint8
}

// FromImage converts src into a Grid. Colors are read non-premultiplied so
// that Build followed by a lossless encode reproduces every channel byte.
func FromImage(src image.Image) Grid {
	var g Grid
	g.bounds = src.Bounds()
	g.width, g.height = g.bounds.Dx(), g.bounds.Dy()
	g.area = g.width * g.height
	g.pix = make([]uint8, g.area*Channels)
	g.alpha = make([]uint8, g.area)

	idx := 0
	for y := g.bounds.Min.Y; y < g.bounds.Max.Y; y++ {
		for x := g.bounds.Min.X; x < g.bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			g.pix[idx*Channels+Blue] = c.B
			g.pix[idx*Channels+Green] = c.G
			g.pix[idx*Channels+Red] = c.R
			g.alpha[idx] = c.A
			idx++
		}
	}
	return g
}

func (g Grid) Width() int  { return g.width }
func (g Grid) Height() int { return g.height }

// At returns the channel byte at (row, col).
func (g Grid) At(row, col, channel int) uint8 {
	return g.pix[(row*g.width+col)*Channels+channel]
}

// LSB returns the least-significant bit of the channel byte at (row, col).
func (g Grid) LSB(row, col, channel int) bool {
	return g.At(row, col, channel)&1 == 1
}

// SetLSB clears the least-significant bit of the channel byte at (row, col)
// and ORs in the given bit.
func (g Grid) SetLSB(row, col, channel int, bit bool) {
	i := (row*g.width+col)*Channels + channel
	g.pix[i] &^= 1
	if bit {
		g.pix[i] |= 1
	}
}

// Build reconstructs the grid as a non-premultiplied image.
func (g Grid) Build() image.Image {
	dist := image.NewNRGBA(g.bounds)
	idx := 0
	for y := g.bounds.Min.Y; y < g.bounds.Max.Y; y++ {
		for x := g.bounds.Min.X; x < g.bounds.Max.X; x++ {
			dist.SetNRGBA(x, y, color.NRGBA{
				R: g.pix[idx*Channels+Red],
				G: g.pix[idx*Channels+Green],
				B: g.pix[idx*Channels+Blue],
				A: g.alpha[idx],
			})
			idx++
		}
	}
	return dist
}
