// Package render turns an encoded QR matrix into a flat sequence of
// rectangle draw commands that any drawing target can consume.
package render

import (
	"iter"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
)

type Kind int

const (
	KindModule Kind = iota
	KindCross
)

type Fill string

const (
	Black Fill = "black"
	White Fill = "white"
)

type Rect struct {
	X, Y, Width, Height float64
}

type Command struct {
	Kind Kind
	Rect Rect
	Fill Fill
}

type Options struct {
	// QuietZone is the light border width in modules.
	QuietZone int
	// Cross draws the Swiss cross over the symbol center. Only symbols
	// encoded at qrcode.OverlayLevel or above survive the occlusion.
	Cross bool
}

// ModuleSize is the edge length of one module when the symbol plus its quiet
// zone is fitted into size.
func ModuleSize(m *qrcode.Matrix, size float64, quietZone int) float64 {
	return size / float64(m.Size()+2*quietZone)
}

// Commands yields one black square per dark module in row-major order,
// followed by the cross rectangles when opts.Cross is set. The sequence can
// be ranged over any number of times.
func Commands(m *qrcode.Matrix, size float64, opts Options) iter.Seq[Command] {
	return func(yield func(Command) bool) {
		s := ModuleSize(m, size, opts.QuietZone)
		offset := float64(opts.QuietZone) * s
		for row := range m.Size() {
			for col := range m.Size() {
				if !m.Dark(row, col) {
					continue
				}
				c := Command{
					Kind: KindModule,
					Rect: Rect{X: offset + float64(col)*s, Y: offset + float64(row)*s, Width: s, Height: s},
					Fill: Black,
				}
				if !yield(c) {
					return
				}
			}
		}
		if !opts.Cross {
			return
		}
		for _, c := range Cross(size) {
			if !yield(c) {
				return
			}
		}
	}
}

// Render drives the callbacks from Commands. A nil sink skips its commands.
func Render(m *qrcode.Matrix, size float64, quietZone int, sinkModule func(x, y, s float64), sinkCross func(r Rect, fill Fill)) {
	opts := Options{QuietZone: quietZone, Cross: sinkCross != nil}
	for c := range Commands(m, size, opts) {
		switch c.Kind {
		case KindModule:
			if sinkModule != nil {
				sinkModule(c.Rect.X, c.Rect.Y, c.Rect.Width)
			}
		case KindCross:
			sinkCross(c.Rect, c.Fill)
		}
	}
}
