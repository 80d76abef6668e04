package qrcode

import (
	"fmt"
	"strings"
)

// Mode is a QR data encoding mode.
type Mode int

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
)

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) valid() bool {
	return m >= Numeric && m <= Byte
}

func (m Mode) indicator() uint32 {
	return [...]uint32{Numeric: 0x1, Alphanumeric: 0x2, Byte: 0x4}[m]
}

// countBits is the width of the character count indicator.
func (m Mode) countBits(version int) int {
	widths := [...][3]int{
		Numeric:      {10, 12, 14},
		Alphanumeric: {9, 11, 13},
		Byte:         {8, 16, 16},
	}[m]
	switch {
	case version <= 9:
		return widths[0]
	case version <= 26:
		return widths[1]
	default:
		return widths[2]
	}
}

// detectMode picks the densest single mode able to carry s.
func detectMode(s string) Mode {
	numeric, alpha := true, true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			numeric = false
		}
		if strings.IndexByte(alphanumericCharset, c) < 0 {
			alpha = false
		}
	}
	switch {
	case numeric:
		return Numeric
	case alpha:
		return Alphanumeric
	default:
		return Byte
	}
}

type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) write(v uint32, width int) {
	for i := width - 1; i >= 0; i-- {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 != 0 {
			w.buf[len(w.buf)-1] |= 0x80 >> uint(w.n%8)
		}
		w.n++
	}
}

// encodeData produces the data codewords for the symbol: segment header,
// packed characters, terminator and padding.
func encodeData(s string, mode Mode, version int, level Level) ([]byte, error) {
	capacity := dataCodewords(version, level)
	w := &bitWriter{buf: make([]byte, 0, capacity)}

	w.write(mode.indicator(), 4)
	w.write(uint32(len(s)), mode.countBits(version))

	switch mode {
	case Numeric:
		for i := 0; i < len(s); i += 3 {
			end := min(i+3, len(s))
			var v uint32
			for _, c := range []byte(s[i:end]) {
				if c < '0' || c > '9' {
					return nil, fmt.Errorf("%w: %q in numeric mode", ErrUnsupportedCharacter, c)
				}
				v = v*10 + uint32(c-'0')
			}
			w.write(v, (end-i)*3+1)
		}
	case Alphanumeric:
		for i := 0; i < len(s); i += 2 {
			a := strings.IndexByte(alphanumericCharset, s[i])
			if a < 0 {
				return nil, fmt.Errorf("%w: %q in alphanumeric mode", ErrUnsupportedCharacter, s[i])
			}
			if i+1 == len(s) {
				w.write(uint32(a), 6)
				break
			}
			b := strings.IndexByte(alphanumericCharset, s[i+1])
			if b < 0 {
				return nil, fmt.Errorf("%w: %q in alphanumeric mode", ErrUnsupportedCharacter, s[i+1])
			}
			w.write(uint32(a*45+b), 11)
		}
	default:
		for i := 0; i < len(s); i++ {
			w.write(uint32(s[i]), 8)
		}
	}

	capacityBits := capacity * 8
	if w.n > capacityBits {
		return nil, fmt.Errorf("%w: %d bits exceed %d", ErrPayloadTooLarge, w.n, capacityBits)
	}

	w.write(0, min(4, capacityBits-w.n))
	w.write(0, (8-w.n%8)%8)
	for pad := uint32(0xEC); len(w.buf) < capacity; pad ^= 0xEC ^ 0x11 {
		w.write(pad, 8)
	}
	return w.buf, nil
}
