// Package qrcode encodes text into QR Code model 2 symbols (ISO/IEC 18004).
//
// Encoding is a pure computation: the same payload and minimum level always
// produce the same Spec and Matrix. Nothing in this package holds mutable
// state shared between calls.
package qrcode

import (
	"errors"
	"fmt"
)

var (
	ErrPayloadTooLarge      = errors.New("qrcode: payload too large")
	ErrUnsupportedCharacter = errors.New("qrcode: unsupported character")
	ErrInvalidLevel         = errors.New("qrcode: invalid error correction level")
)

// Version bounds of QR Code model 2.
const (
	MinVersion = 1
	MaxVersion = 40
)

// Level is an error correction level. Levels are ordered by strength, so
// L < M < Q < H.
type Level int

const (
	L Level = iota // recovers ~7% of codewords
	M              // recovers ~15% of codewords
	Q              // recovers ~25% of codewords
	H              // recovers ~30% of codewords
)

// OverlayLevel is the lowest level that tolerates the central Swiss cross.
const OverlayLevel = M

func (l Level) String() string {
	switch l {
	case L:
		return "L"
	case M:
		return "M"
	case Q:
		return "Q"
	case H:
		return "H"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

func (l Level) valid() bool {
	return l >= L && l <= H
}

// Max returns the stronger of l and o.
func (l Level) Max(o Level) Level {
	if o > l {
		return o
	}
	return l
}

// formatBits is the two-bit level indicator stored in the format information.
func (l Level) formatBits() uint32 {
	return [...]uint32{L: 1, M: 0, Q: 3, H: 2}[l]
}

func levelFromFormatBits(b uint32) Level {
	return [...]Level{0: M, 1: L, 2: H, 3: Q}[b&3]
}

// Spec describes the symbol chosen for a payload.
type Spec struct {
	Version int
	Level   Level
	Mode    Mode
	Mask    int
}

// Size returns the side length of the symbol in modules.
func (s Spec) Size() int {
	return sizeForVersion(s.Version)
}

func sizeForVersion(version int) int {
	return 4*version + 17
}

// Generator turns a payment payload into a drawable image.
type Generator interface {
	SVG(payload string) ([]byte, error)
	PNG(payload string, size int) ([]byte, error)
}

// Encode builds the smallest symbol holding payload at minLevel or better.
// When the chosen version has room for a stronger level, the stronger level
// is used.
func Encode(payload string, minLevel Level) (Spec, *Matrix, error) {
	if !minLevel.valid() {
		return Spec{}, nil, ErrInvalidLevel
	}

	mode := detectMode(payload)
	count := len(payload)

	version, ok := smallestVersion(mode, count, minLevel)
	if !ok {
		return Spec{}, nil, fmt.Errorf("%w: %d %s characters exceed version %d at level %s",
			ErrPayloadTooLarge, count, mode, MaxVersion, minLevel)
	}
	level := strongestLevel(version, mode, count, minLevel)

	data, err := encodeData(payload, mode, version, level)
	if err != nil {
		return Spec{}, nil, err
	}

	b := newBuilder(version)
	b.drawFunctionPatterns()
	b.placeCodewords(interleave(data, version, level))

	mask := b.bestMask(level)
	b.applyMask(mask)
	b.drawFormat(level, mask)

	return Spec{
		Version: version,
		Level:   level,
		Mode:    mode,
		Mask:    mask,
	}, b.matrix(), nil
}

func smallestVersion(mode Mode, count int, level Level) (int, bool) {
	for v := MinVersion; v <= MaxVersion; v++ {
		if Capacity(v, mode, level) >= count {
			return v, true
		}
	}
	return 0, false
}

func strongestLevel(version int, mode Mode, count int, floor Level) Level {
	best := floor
	for l := floor + 1; l <= H; l++ {
		if Capacity(version, mode, l) < count {
			break
		}
		best = l
	}
	return best
}
