package qrgenerator

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"
	"strings"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/render"
)

type Generator struct {
	size      int
	quietZone int
}

var _ qrcode.Generator = (*Generator)(nil)

func NewGenerator(size, quietZone int) *Generator {
	return &Generator{size: size, quietZone: quietZone}
}

// SVG draws payload as a standalone SVG document with the Swiss cross.
func (g *Generator) SVG(payload string) ([]byte, error) {
	m, err := g.encode(payload)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg viewBox="0 0 %d %d" fill="black" xmlns="http://www.w3.org/2000/svg">`, g.size, g.size)
	for c := range render.Commands(m, float64(g.size), g.options()) {
		r := c.Rect
		b.WriteString(`<rect x="` + num(r.X) + `" y="` + num(r.Y) +
			`" width="` + num(r.Width) + `" height="` + num(r.Height) + `"`)
		if c.Kind == render.KindCross {
			b.WriteString(` fill="` + string(c.Fill) + `"`)
		}
		b.WriteString(" />")
	}
	b.WriteString("</svg>")

	return []byte(b.String()), nil
}

// PNG rasterizes payload into a size×size image on a white background.
func (g *Generator) PNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("png size must be positive, got %d", size)
	}
	m, err := g.encode(payload)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for c := range render.Commands(m, float64(size), g.options()) {
		draw.Draw(img, pixels(c.Rect), image.NewUniform(fill(c.Fill)), image.Point{}, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) encode(payload string) (*qrcode.Matrix, error) {
	_, m, err := qrcode.Encode(payload, qrcode.OverlayLevel)
	return m, err
}

func (g *Generator) options() render.Options {
	return render.Options{QuietZone: g.quietZone, Cross: true}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// pixels snaps a rectangle to whole pixels by rounding both edges, so
// adjacent modules share a border without gaps.
func pixels(r render.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.Width)), int(math.Round(r.Y+r.Height)),
	)
}

func fill(f render.Fill) color.Color {
	if f == render.White {
		return color.White
	}
	return color.Black
}
