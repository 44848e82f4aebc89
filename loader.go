package hidefeature

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned for files that are not valid text.
var ErrInvalidEncoding = errors.New("file is not valid UTF-8 text")

// Loader returns the contents of target, resolved against base.
type Loader interface {
	Load(base, target string) (string, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(base, target string) (string, error)

func (f LoaderFunc) Load(base, target string) (string, error) { return f(base, target) }

// DirLoader reads files from the local filesystem. Relative targets are
// joined to the base directory; absolute targets are used as they are.
type DirLoader struct{}

func (DirLoader) Load(base, target string) (string, error) {
	p := target
	if !filepath.IsAbs(target) {
		p = filepath.Join(base, target)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p, err)
	}
	return text, nil
}

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText returns data as UTF-8 without a byte order mark. UTF-16 is
// accepted only when announced by a BOM.
func decodeText(data []byte) (string, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		enc = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		if !utf8.Valid(data) {
			return "", ErrInvalidEncoding
		}
		enc = unicode.UTF8BOM
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return string(out), nil
}
