// Package rom reads and writes the bit-pattern image that initializes the
// CRC lookup ROM: 256 lines of 32 '0'/'1' characters, most significant bit
// first, one table entry per line.
package rom

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sr8e/crclut/crc"
)

const (
	// Width is the number of characters in one line, excluding the newline.
	Width = 32
	// Lines is the number of lines in an image.
	Lines = len(crc.Table{})
	// Size is the byte size of a complete image.
	Size = Lines * (Width + 1)
)

// ErrMalformedLine marks input that is not a well-formed image.
var ErrMalformedLine = errors.New("malformed rom line")

// FormatEntry renders v from bit 31 down to bit 0.
func FormatEntry(v uint32) string {
	return string(appendEntry(make([]byte, 0, Width), v))
}

func appendEntry(dst []byte, v uint32) []byte {
	for i := Width - 1; i >= 0; i-- {
		if (v>>i)&1 == 1 {
			dst = append(dst, '1')
		} else {
			dst = append(dst, '0')
		}
	}
	return dst
}

// ParseEntry is the inverse of FormatEntry.
func ParseEntry(line string) (uint32, error) {
	if len(line) != Width {
		return 0, errors.Wrapf(ErrMalformedLine, "%d characters, want %d", len(line), Width)
	}
	var v uint32
	for i := 0; i < Width; i++ {
		v <<= 1
		switch line[i] {
		case '1':
			v |= 1
		case '0':
		default:
			return 0, errors.Wrapf(ErrMalformedLine, "unexpected %q at column %d", line[i], i+1)
		}
	}
	return v, nil
}

// Encode writes every entry of t, entry 0 first.
func Encode(w io.Writer, t *crc.Table) error {
	bw := bufio.NewWriterSize(w, Size)
	line := make([]byte, 0, Width+1)
	for _, v := range t {
		line = append(appendEntry(line[:0], v), '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Image returns the complete encoded form of t.
func Image(t *crc.Table) []byte {
	var buf bytes.Buffer
	buf.Grow(Size)
	// writes to a bytes.Buffer cannot fail
	_ = Encode(&buf, t)
	return buf.Bytes()
}

// Decode reads exactly Lines entries from r.
func Decode(r io.Reader) (*crc.Table, error) {
	t := new(crc.Table)
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		if n == Lines {
			return nil, errors.Wrapf(ErrMalformedLine, "line %d: more than %d lines", n+1, Lines)
		}
		v, err := ParseEntry(sc.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n+1)
		}
		t[n] = v
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n != Lines {
		return nil, errors.Wrapf(ErrMalformedLine, "got %d lines, want %d", n, Lines)
	}
	return t, nil
}
