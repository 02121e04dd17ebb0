package ddp

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidUTF8 is returned when member content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// DecodeText decodes raw member bytes as UTF-8.
//
// Decoding is strict: any invalid sequence fails the whole member rather
// than being replaced, so a mis-encoded file yields no records instead of
// records with corrupted values. A leading BOM is stripped and CRLF line
// endings are normalised to LF.
func DecodeText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("byte offset %d: %w", firstInvalid(raw), ErrInvalidUTF8)
	}

	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("strip bom: %w", err)
	}

	return strings.ReplaceAll(string(out), "\r\n", "\n"), nil
}

// firstInvalid returns the offset of the first invalid UTF-8 sequence.
func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
