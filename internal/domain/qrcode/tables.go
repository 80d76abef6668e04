package qrcode

// Error correction codewords per block, indexed by level then version.
// Index 0 is unused.
var eccCodewordsPerBlock = [4][MaxVersion + 1]int{
	L: {-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// Number of error correction blocks, indexed by level then version.
var eccBlocks = [4][MaxVersion + 1]int{
	L: {-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	M: {-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Q: {-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	H: {-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// rawDataModules counts the modules available for data and error correction
// codewords (including remainder bits) once every function pattern is placed.
func rawDataModules(version int) int {
	n := (16*version+128)*version + 64
	if version >= 2 {
		align := version/7 + 2
		n -= (25*align-10)*align - 55
		if version >= 7 {
			n -= 36
		}
	}
	return n
}

// rawCodewords is the total number of codewords in a symbol.
func rawCodewords(version int) int {
	return rawDataModules(version) / 8
}

// dataCodewords is the number of codewords left for data at the given level.
func dataCodewords(version int, level Level) int {
	return rawCodewords(version) - eccCodewordsPerBlock[level][version]*eccBlocks[level][version]
}

// alignmentPositions returns the row/column centres of the alignment patterns.
func alignmentPositions(version int) []int {
	if version == 1 {
		return nil
	}
	count := version/7 + 2
	step := (version*8 + count*3 + 5) / (count*4 - 4) * 2
	pos := make([]int, count)
	pos[0] = 6
	for i, p := count-1, sizeForVersion(version)-7; i >= 1; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// Capacity returns how many characters of the given mode fit in a symbol of
// the given version and level. Out-of-range arguments yield zero.
func Capacity(version int, mode Mode, level Level) int {
	if version < MinVersion || version > MaxVersion || !level.valid() || !mode.valid() {
		return 0
	}
	countBits := mode.countBits(version)
	bits := dataCodewords(version, level)*8 - 4 - countBits

	var n int
	switch mode {
	case Numeric:
		n = bits / 10 * 3
		switch r := bits % 10; {
		case r >= 7:
			n += 2
		case r >= 4:
			n++
		}
	case Alphanumeric:
		n = bits / 11 * 2
		if bits%11 >= 6 {
			n++
		}
	default:
		n = bits / 8
	}

	if limit := 1<<countBits - 1; n > limit {
		n = limit
	}
	return n
}
