package qrcode

import "rsc.io/qr/gf256"

// field is GF(256) over x^8+x^4+x^3+x^2+1 with generator 2. Its log and
// antilog tables are built once and only read afterwards.
var field = gf256.NewField(0x11d, 2)

// interleave splits data into the blocks mandated for version and level,
// appends Reed-Solomon check codewords to each block and returns the
// codewords in placement order.
func interleave(data []byte, version int, level Level) []byte {
	numBlocks := eccBlocks[level][version]
	eccLen := eccCodewordsPerBlock[level][version]
	total := rawCodewords(version)
	numShort := numBlocks - total%numBlocks
	shortDataLen := total/numBlocks - eccLen

	rs := gf256.NewRSEncoder(field, eccLen)
	blocks := make([][]byte, numBlocks)
	for i, k := 0, 0; i < numBlocks; i++ {
		n := shortDataLen
		if i >= numShort {
			n++
		}
		block := make([]byte, n+eccLen)
		copy(block, data[k:k+n])
		rs.ECC(block[:n], block[n:])
		blocks[i] = block
		k += n
	}

	out := make([]byte, 0, total)
	for i := 0; i <= shortDataLen; i++ {
		for _, b := range blocks {
			if i < len(b)-eccLen {
				out = append(out, b[i])
			}
		}
	}
	for i := 0; i < eccLen; i++ {
		for _, b := range blocks {
			out = append(out, b[len(b)-eccLen+i])
		}
	}
	return out
}
