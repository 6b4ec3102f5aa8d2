package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// CharsetAuto asks NewReader to detect the encoding itself.
const CharsetAuto = "auto"

// NewUTF8Reader detects the encoding of the input and returns a reader
// that decodes the content to NFC-normalised UTF-8.
//
// Detection order:
//  1. Check for BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Validate if the content is valid UTF-8 and return as-is
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(buf, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return normalize(br), nil
	}

	if bytes.HasPrefix(buf, bomUTF16LE) {
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	}

	if bytes.HasPrefix(buf, bomUTF16BE) {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(buf) {
		return normalize(br), nil
	}

	detector := chardet.NewTextDetector()

	result, detectErr := detector.DetectBest(buf)
	if detectErr == nil {
		switch result.Charset {
		case "UTF-8":
			return normalize(br), nil
		case "ISO-8859-1", "windows-1252":
			return decode(br, charmap.Windows1252), nil
		case "ISO-8859-9":
			return decode(br, charmap.ISO8859_9), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

// NewReader decodes r from the named charset ("windows-1258", "utf-16le", ...).
// An empty name or CharsetAuto falls back to NewUTF8Reader.
func NewReader(r io.Reader, charset string) (io.Reader, error) {
	charset = strings.TrimSpace(strings.ToLower(charset))
	if charset == "" || charset == CharsetAuto {
		return NewUTF8Reader(r)
	}

	e, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", charset, err)
	}

	return decode(r, e), nil
}

// decode converts to UTF-8 and composes the result, since legacy Vietnamese
// code pages store tone marks as combining characters.
func decode(r io.Reader, e xenc.Encoding) io.Reader {
	return transform.NewReader(r, transform.Chain(e.NewDecoder(), norm.NFC))
}

func normalize(r io.Reader) io.Reader {
	return transform.NewReader(r, norm.NFC)
}
