// Package text implements linkpreview.Decoder using golang.org/x/text.
package text

import (
	"unicode/utf8"

	"github.com/fwojciec/linkpreview"
	"golang.org/x/text/encoding/unicode"
)

// Ensure Decoder implements linkpreview.Decoder at compile time.
var _ linkpreview.Decoder = (*Decoder)(nil)

// Decoder decodes page bodies as UTF-8. Other encodings are not sniffed;
// invalid byte sequences are rejected rather than replaced.
type Decoder struct{}

// NewDecoder creates a new Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode validates b as UTF-8 and returns it as a string with any leading
// byte order mark removed.
func (d *Decoder) Decode(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", linkpreview.Errorf(linkpreview.EDECODE, "payload is not valid UTF-8 (offset %d)", invalidOffset(b))
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", linkpreview.Errorf(linkpreview.EDECODE, "failed to decode payload: %v", err)
	}
	return string(out), nil
}

// invalidOffset returns the byte offset of the first invalid sequence.
func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
