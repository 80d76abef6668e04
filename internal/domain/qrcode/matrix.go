package qrcode

import "strings"

// Matrix is a square grid of modules. A true module is dark.
type Matrix struct {
	size    int
	modules []bool
}

// Size returns the side length in modules.
func (m *Matrix) Size() int {
	return m.size
}

// Dark reports whether the module at row, col is dark. Coordinates outside
// the symbol belong to the quiet zone and are light.
func (m *Matrix) Dark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.size || col >= m.size {
		return false
	}
	return m.modules[row*m.size+col]
}

// DarkCount returns the number of dark modules.
func (m *Matrix) DarkCount() int {
	n := 0
	for _, dark := range m.modules {
		if dark {
			n++
		}
	}
	return n
}

// String draws the matrix with '#' for dark and '.' for light modules.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.Grow((m.size + 1) * m.size)
	for row := 0; row < m.size; row++ {
		for col := 0; col < m.size; col++ {
			if m.Dark(row, col) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// builder assembles a symbol. Coordinates are (x, y) = (column, row).
type builder struct {
	version  int
	size     int
	modules  []bool
	function []bool
}

func newBuilder(version int) *builder {
	size := sizeForVersion(version)
	return &builder{
		version:  version,
		size:     size,
		modules:  make([]bool, size*size),
		function: make([]bool, size*size),
	}
}

func (b *builder) setFunction(x, y int, dark bool) {
	i := y*b.size + x
	b.modules[i] = dark
	b.function[i] = true
}

func (b *builder) matrix() *Matrix {
	modules := make([]bool, len(b.modules))
	copy(modules, b.modules)
	return &Matrix{size: b.size, modules: modules}
}

func (b *builder) drawFunctionPatterns() {
	for i := 0; i < b.size; i++ {
		b.setFunction(6, i, i%2 == 0)
		b.setFunction(i, 6, i%2 == 0)
	}

	b.drawFinder(3, 3)
	b.drawFinder(b.size-4, 3)
	b.drawFinder(3, b.size-4)

	pos := alignmentPositions(b.version)
	last := len(pos) - 1
	for i, x := range pos {
		for j, y := range pos {
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			b.drawAlignment(x, y)
		}
	}

	// Reserve the format areas; real bits are written once the mask is known.
	b.drawFormat(L, 0)
	b.drawVersion()
}

// drawFinder draws a finder pattern centred on (x, y) together with its
// light separator, clipped to the symbol.
func (b *builder) drawFinder(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= b.size || yy < 0 || yy >= b.size {
				continue
			}
			dist := max(abs(dx), abs(dy))
			b.setFunction(xx, yy, dist != 2 && dist != 4)
		}
	}
}

func (b *builder) drawAlignment(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			b.setFunction(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// placeCodewords flows codeword bits through the data region in the
// two-column zig-zag order, skipping function modules. Remainder modules
// stay light.
func (b *builder) placeCodewords(codewords []byte) {
	total := len(codewords) * 8
	i := 0
	for right := b.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < b.size; vert++ {
			y := vert
			if upward {
				y = b.size - 1 - vert
			}
			for j := 0; j < 2; j++ {
				x := right - j
				idx := y*b.size + x
				if b.function[idx] || i >= total {
					continue
				}
				b.modules[idx] = codewords[i>>3]>>(7-uint(i&7))&1 != 0
				i++
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
