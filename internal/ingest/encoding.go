package ingest

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names a supported source text encoding.
type Encoding string

const (
	UTF8 Encoding = "UTF-8"
	// CP949 is decoded with korean.EUCKR, which implements the full
	// Unified Hangul Code table of code page 949.
	CP949 Encoding = "cp949"
)

func (e Encoding) String() string {
	return string(e)
}

// Decode converts raw file bytes in this encoding to UTF-8 text.
func (e Encoding) Decode(raw []byte) ([]byte, error) {
	switch e {
	case UTF8:
		if i := invalidUTF8Offset(raw); i >= 0 {
			return nil, fmt.Errorf("%w: can't decode byte 0x%02x in position %d", ErrInvalidUTF8, raw[i], i)
		}
		return decodeWith(unicode.UTF8BOM, raw)
	case CP949:
		out, err := decodeWith(korean.EUCKR, raw)
		if err != nil {
			return nil, err
		}
		// the decoder substitutes U+FFFD for undecodable bytes instead of failing
		if bytes.ContainsRune(out, utf8.RuneError) {
			if i := invalidCP949Offset(raw); i >= 0 {
				return nil, fmt.Errorf("%w: can't decode byte 0x%02x in position %d", ErrInvalidCP949, raw[i], i)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", string(e))
	}
}

func decodeWith(enc encoding.Encoding, raw []byte) ([]byte, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// invalidUTF8Offset returns the index of the first byte that starts an
// invalid UTF-8 sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// invalidCP949Offset returns the index of the first byte that does not start
// a decodable code page 949 character, or -1.
func invalidCP949Offset(b []byte) int {
	dec := korean.EUCKR.NewDecoder()
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		if i+1 >= len(b) {
			return i
		}
		out, err := dec.Bytes(b[i : i+2])
		if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
			return i
		}
		i += 2
	}
	return -1
}
