package exif

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLossyUTF8(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  []byte
		want string
	}{
		{name: "valid", raw: []byte("Canon EOS 5D"), want: "Canon EOS 5D"},
		{name: "multibyte", raw: []byte("カメラ"), want: "カメラ"},
		{name: "each stray byte", raw: []byte{'N', 'i', 'k', 0xFF, 0xFE, 'o', 'n'}, want: "Nik\uFFFD\uFFFDon"},
		{name: "truncated sequence", raw: []byte{'a', 0xE2, 0x82, 'b'}, want: "a\uFFFDb"},
		{name: "truncated at end", raw: []byte{'a', 0xF0, 0x9F, 0x98}, want: "a\uFFFD"},
		{name: "lone continuation", raw: []byte{0x80, 0x80}, want: "\uFFFD\uFFFD"},
		{name: "overlong", raw: []byte{0xC0, 0xAF}, want: "\uFFFD\uFFFD"},
		{name: "surrogate", raw: []byte{0xED, 0xA0, 0x80}, want: "\uFFFD\uFFFD\uFFFD"},
		{name: "empty", raw: nil, want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, lossyUTF8(tc.raw))
		})
	}
}
