package exif

import (
	"strings"
	"unicode/utf8"
)

// lossyUTF8 decodes raw as UTF-8, writing one U+FFFD for every maximal
// ill-formed subsequence: a stray byte, or the valid prefix of a
// truncated multi-byte sequence.
func lossyUTF8(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))

	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			raw = raw[invalidPrefix(raw):]
			continue
		}
		b.Write(raw[:size])
		raw = raw[size:]
	}

	return b.String()
}

// invalidPrefix returns the length of the ill-formed subsequence at the
// start of raw, which must not begin with a valid encoding.
func invalidPrefix(raw []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch lead := raw[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}

	n := 1
	for ; n <= need && n < len(raw); n++ {
		c := raw[n]
		if c < lo || c > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}
