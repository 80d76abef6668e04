package qrcode

const (
	formatGenerator  = 0x537
	formatXORMask    = 0x5412
	versionGenerator = 0x1F25
)

// formatWord returns the 15-bit format information for level and mask,
// BCH(15,5) protected and masked.
func formatWord(level Level, mask int) uint32 {
	data := level.formatBits()<<3 | uint32(mask)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*formatGenerator
	}
	return (data<<10 | rem&0x3FF) ^ formatXORMask
}

// versionWord returns the 18-bit version information, BCH(18,6) protected.
func versionWord(version int) uint32 {
	rem := uint32(version)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*versionGenerator
	}
	return uint32(version)<<12 | rem&0xFFF
}

func bit(word uint32, i int) bool {
	return word>>uint(i)&1 != 0
}

// formatCoords lists where each of the 15 format bits lives: the copy around
// the top-left finder and the copy split between the other two finders.
func formatCoords(size int) (primary, secondary [15][2]int) {
	for i := 0; i < 15; i++ {
		switch {
		case i < 6:
			primary[i] = [2]int{8, i}
		case i < 8:
			primary[i] = [2]int{8, i + 1}
		case i == 8:
			primary[i] = [2]int{7, 8}
		default:
			primary[i] = [2]int{14 - i, 8}
		}
		if i < 8 {
			secondary[i] = [2]int{size - 1 - i, 8}
		} else {
			secondary[i] = [2]int{8, size - 15 + i}
		}
	}
	return primary, secondary
}

func (b *builder) drawFormat(level Level, mask int) {
	word := formatWord(level, mask)
	primary, secondary := formatCoords(b.size)
	for i := 0; i < 15; i++ {
		b.setFunction(primary[i][0], primary[i][1], bit(word, i))
		b.setFunction(secondary[i][0], secondary[i][1], bit(word, i))
	}
	b.setFunction(8, b.size-8, true)
}

func (b *builder) drawVersion() {
	if b.version < 7 {
		return
	}
	word := versionWord(b.version)
	for i := 0; i < 18; i++ {
		a, c := b.size-11+i%3, i/3
		b.setFunction(a, c, bit(word, i))
		b.setFunction(c, a, bit(word, i))
	}
}

// DecodeFormat reads both copies of the format information back from m.
// It reports false when the copies disagree or fail their check bits.
func DecodeFormat(m *Matrix) (Level, int, bool) {
	primary, secondary := formatCoords(m.size)
	var a, b uint32
	for i := 0; i < 15; i++ {
		if m.Dark(primary[i][1], primary[i][0]) {
			a |= 1 << uint(i)
		}
		if m.Dark(secondary[i][1], secondary[i][0]) {
			b |= 1 << uint(i)
		}
	}
	if a != b {
		return 0, 0, false
	}
	data := (a ^ formatXORMask) >> 10
	level, mask := levelFromFormatBits(data>>3), int(data&7)
	if formatWord(level, mask) != a {
		return 0, 0, false
	}
	return level, mask, true
}

// DecodeVersion reads the version information blocks of a version 7+ symbol.
// Smaller symbols carry no version blocks and report their size-derived
// version.
func DecodeVersion(m *Matrix) (int, bool) {
	version := (m.size - 17) / 4
	if version < 7 {
		return version, version >= MinVersion
	}
	var a, b uint32
	for i := 0; i < 18; i++ {
		x, y := m.size-11+i%3, i/3
		if m.Dark(y, x) {
			a |= 1 << uint(i)
		}
		if m.Dark(x, y) {
			b |= 1 << uint(i)
		}
	}
	if a != b || versionWord(int(a>>12)) != a {
		return 0, false
	}
	return int(a >> 12), true
}
