package qrcode

const (
	penaltyRun     = 3
	penaltyBlock   = 3
	penaltyFinder  = 40
	penaltyBalance = 10
)

// maskFuncs are the eight data mask conditions; a true result flips the
// module at column x, row y.
var maskFuncs = [8]func(x, y int) bool{
	func(x, y int) bool { return (x+y)%2 == 0 },
	func(x, y int) bool { return y%2 == 0 },
	func(x, y int) bool { return x%3 == 0 },
	func(x, y int) bool { return (x+y)%3 == 0 },
	func(x, y int) bool { return (x/3+y/2)%2 == 0 },
	func(x, y int) bool { return x*y%2+x*y%3 == 0 },
	func(x, y int) bool { return (x*y%2+x*y%3)%2 == 0 },
	func(x, y int) bool { return ((x+y)%2+x*y%3)%2 == 0 },
}

// applyMask XORs the mask over data modules only. Applying the same mask
// twice restores the original modules.
func (b *builder) applyMask(mask int) {
	fn := maskFuncs[mask]
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			i := y*b.size + x
			if !b.function[i] && fn(x, y) {
				b.modules[i] = !b.modules[i]
			}
		}
	}
}

// maskPenalties scores every mask candidate on a scratch copy of the symbol,
// with the candidate's format information in place.
func (b *builder) maskPenalties(level Level) [8]int {
	var scores [8]int
	for mask := range maskFuncs {
		c := b.clone()
		c.applyMask(mask)
		c.drawFormat(level, mask)
		scores[mask] = penalty(c.modules, c.size)
	}
	return scores
}

// bestMask returns the mask with the lowest penalty; ties go to the lowest
// index.
func (b *builder) bestMask(level Level) int {
	return argMin(b.maskPenalties(level))
}

func argMin(scores [8]int) int {
	best := 0
	for i, s := range scores {
		if s < scores[best] {
			best = i
		}
	}
	return best
}

func (b *builder) clone() *builder {
	c := &builder{
		version:  b.version,
		size:     b.size,
		modules:  make([]bool, len(b.modules)),
		function: b.function,
	}
	copy(c.modules, b.modules)
	return c
}

// penalty evaluates the four ISO/IEC 18004 rules over the whole symbol.
func penalty(modules []bool, size int) int {
	total := 0
	line := make([]bool, size)

	for y := 0; y < size; y++ {
		copy(line, modules[y*size:(y+1)*size])
		total += linePenalty(line)
	}
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			line[y] = modules[y*size+x]
		}
		total += linePenalty(line)
	}

	for y := 0; y < size-1; y++ {
		for x := 0; x < size-1; x++ {
			c := modules[y*size+x]
			if c == modules[y*size+x+1] && c == modules[(y+1)*size+x] && c == modules[(y+1)*size+x+1] {
				total += penaltyBlock
			}
		}
	}

	dark := 0
	for _, m := range modules {
		if m {
			dark++
		}
	}
	cells := size * size
	total += abs(dark*2-cells) * 10 / cells * penaltyBalance

	return total
}

// linePenalty scores same-colour runs of five or more and 1:1:3:1:1 finder
// look-alikes bordered by four light modules. Modules past either end count
// as light quiet zone.
func linePenalty(line []bool) int {
	p := 0

	run := 1
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i] == line[i-1] {
			run++
			continue
		}
		if run >= 5 {
			p += penaltyRun + run - 5
		}
		run = 1
	}

	for i := 0; i+7 <= len(line); i++ {
		if line[i] && !line[i+1] && line[i+2] && line[i+3] && line[i+4] && !line[i+5] && line[i+6] &&
			(lightSpan(line, i-4, i) || lightSpan(line, i+7, i+11)) {
			p += penaltyFinder
		}
	}

	return p
}

func lightSpan(line []bool, from, to int) bool {
	for i := max(from, 0); i < min(to, len(line)); i++ {
		if line[i] {
			return false
		}
	}
	return true
}
