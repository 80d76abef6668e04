package qrcode_test

import (
	"strings"
	"testing"

	skip2 "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
)

const swissPayload = "SPC\n0200\n1\nCH9300762011623852957\nS\nHans Muster\nBahnhofstrasse 1\n\n8001\nZürich\nCH\n\n\n\n\n\n\n\n100.00\nCHF\n\n\n\n\n\n\n\nNON\n\n\nEPD"

func TestEncode_Deterministic(t *testing.T) {
	spec1, m1, err := qrcode.Encode(swissPayload, qrcode.M)
	require.NoError(t, err)
	spec2, m2, err := qrcode.Encode(swissPayload, qrcode.M)
	require.NoError(t, err)

	assert.Equal(t, spec1, spec2)
	assert.Equal(t, m1.String(), m2.String())
}

func TestEncode_ModeSelection(t *testing.T) {
	tests := []struct {
		payload string
		mode    qrcode.Mode
	}{
		{"0123456789", qrcode.Numeric},
		{"HELLO WORLD", qrcode.Alphanumeric},
		{"HTTPS://MONKEYPAY.CH/QR/$%*+-./:", qrcode.Alphanumeric},
		{"hello world", qrcode.Byte},
		{swissPayload, qrcode.Byte},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			spec, _, err := qrcode.Encode(tt.payload, qrcode.L)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, spec.Mode)
		})
	}
}

func TestCapacity_KnownValues(t *testing.T) {
	tests := []struct {
		version int
		mode    qrcode.Mode
		level   qrcode.Level
		want    int
	}{
		{1, qrcode.Numeric, qrcode.L, 41},
		{1, qrcode.Alphanumeric, qrcode.L, 25},
		{1, qrcode.Byte, qrcode.L, 17},
		{1, qrcode.Byte, qrcode.M, 14},
		{1, qrcode.Byte, qrcode.H, 7},
		{10, qrcode.Byte, qrcode.M, 213},
		{40, qrcode.Numeric, qrcode.L, 7089},
		{40, qrcode.Alphanumeric, qrcode.L, 4296},
		{40, qrcode.Byte, qrcode.L, 2953},
		{40, qrcode.Byte, qrcode.H, 1273},
		{0, qrcode.Byte, qrcode.L, 0},
		{41, qrcode.Byte, qrcode.L, 0},
	}

	for _, tt := range tests {
		got := qrcode.Capacity(tt.version, tt.mode, tt.level)
		assert.Equal(t, tt.want, got, "version %d %s %s", tt.version, tt.mode, tt.level)
	}
}

func TestEncode_SmallestVersion(t *testing.T) {
	for _, n := range []int{1, 14, 15, 100, 331, 500, 1000, 2331} {
		payload := strings.Repeat("a", n)
		for _, level := range []qrcode.Level{qrcode.L, qrcode.M, qrcode.Q, qrcode.H} {
			spec, m, err := qrcode.Encode(payload, level)
			if qrcode.Capacity(qrcode.MaxVersion, qrcode.Byte, level) < n {
				require.ErrorIs(t, err, qrcode.ErrPayloadTooLarge)
				continue
			}
			require.NoError(t, err)

			assert.GreaterOrEqual(t, qrcode.Capacity(spec.Version, spec.Mode, level), n)
			if spec.Version > qrcode.MinVersion {
				assert.Less(t, qrcode.Capacity(spec.Version-1, spec.Mode, level), n)
			}
			assert.GreaterOrEqual(t, spec.Level, level)
			assert.GreaterOrEqual(t, qrcode.Capacity(spec.Version, spec.Mode, spec.Level), n)
			assert.Equal(t, spec.Size(), m.Size())
		}
	}
}

func TestEncode_VersionMatchesIndependentEncoder(t *testing.T) {
	for _, n := range []int{5, 40, 120, 300, 700, 1200} {
		payload := strings.Repeat("q", n)

		other, err := skip2.New(payload, skip2.Highest)
		require.NoError(t, err)

		spec, _, err := qrcode.Encode(payload, qrcode.H)
		require.NoError(t, err)
		assert.Equal(t, other.VersionNumber, spec.Version, "payload length %d", n)
	}
}

func TestEncode_BoostsLevelWhenRoomAllows(t *testing.T) {
	spec, _, err := qrcode.Encode("HELLO", qrcode.L)
	require.NoError(t, err)

	assert.Equal(t, 1, spec.Version)
	assert.Equal(t, qrcode.H, spec.Level)
}

func TestEncode_OverlayNeverBelowM(t *testing.T) {
	for _, payload := range []string{"a", "hello", strings.Repeat("x", 300), swissPayload} {
		spec, _, err := qrcode.Encode(payload, qrcode.L.Max(qrcode.OverlayLevel))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, spec.Level, qrcode.M, payload)
	}
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	_, _, err := qrcode.Encode(strings.Repeat("x", 3000), qrcode.M)
	require.ErrorIs(t, err, qrcode.ErrPayloadTooLarge)

	_, _, err = qrcode.Encode(strings.Repeat("x", 3000), qrcode.L)
	require.ErrorIs(t, err, qrcode.ErrPayloadTooLarge)
}

func TestEncode_InvalidLevel(t *testing.T) {
	_, _, err := qrcode.Encode("x", qrcode.Level(7))
	require.ErrorIs(t, err, qrcode.ErrInvalidLevel)
}

func TestEncode_StructuralPatterns(t *testing.T) {
	payloads := []string{"1", "HELLO WORLD", swissPayload, strings.Repeat("z", 800)}

	for _, payload := range payloads {
		spec, m, err := qrcode.Encode(payload, qrcode.M)
		require.NoError(t, err)
		size := m.Size()

		level, mask, ok := qrcode.DecodeFormat(m)
		require.True(t, ok, "format information must decode")
		assert.Equal(t, spec.Level, level)
		assert.Equal(t, spec.Mask, mask)

		version, ok := qrcode.DecodeVersion(m)
		require.True(t, ok)
		assert.Equal(t, spec.Version, version)

		for _, corner := range [][2]int{{0, 0}, {0, size - 7}, {size - 7, 0}} {
			assertFinder(t, m, corner[0], corner[1])
		}

		for i := 8; i < size-8; i++ {
			assert.Equal(t, i%2 == 0, m.Dark(6, i), "horizontal timing at %d", i)
			assert.Equal(t, i%2 == 0, m.Dark(i, 6), "vertical timing at %d", i)
		}

		assert.True(t, m.Dark(size-8, 8), "dark module")
		assert.False(t, m.Dark(-1, 0))
		assert.False(t, m.Dark(0, size))
	}
}

func assertFinder(t *testing.T, m *qrcode.Matrix, top, left int) {
	t.Helper()
	for r := -1; r <= 7; r++ {
		for c := -1; c <= 7; c++ {
			dist := max(abs(r-3), abs(c-3))
			want := dist != 2 && dist != 4
			assert.Equal(t, want, m.Dark(top+r, left+c), "finder at (%d,%d) offset (%d,%d)", top, left, r, c)
		}
	}
}

func TestMatrix_DarkCountMatchesString(t *testing.T) {
	_, m, err := qrcode.Encode(swissPayload, qrcode.M)
	require.NoError(t, err)

	assert.Equal(t, strings.Count(m.String(), "#"), m.DarkCount())
	assert.Equal(t, m.Size()*m.Size(), strings.Count(m.String(), "#")+strings.Count(m.String(), "."))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
