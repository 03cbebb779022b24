package conf

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/confkit/pkg/types"
)

// Byte-order marks recognized on parse input.
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// normalizeInput strips a UTF-8 byte-order mark and transcodes UTF-16
// input of either endianness, recognized by its mark, to UTF-8. Input
// without a mark passes through untouched.
func normalizeInput(src []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(src, bomUTF8):
		return src[len(bomUTF8):], nil
	case bytes.HasPrefix(src, bomUTF16LE), bytes.HasPrefix(src, bomUTF16BE):
		// The mark itself selects the endianness.
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, src)
		if err != nil {
			return nil, &types.Error{Kind: types.ErrKindFormat, Msg: "transcode utf-16 input", Err: err}
		}
		return out, nil
	default:
		return src, nil
	}
}
