package core

// streaming.go provides the reader chain every dataset file passes through:
//
//   - BOMSkippingReader: drops a leading UTF-8 BOM written by spreadsheet exports
//   - UTF8ValidatingReader: fails on the first invalid UTF-8 sequence
//   - CountingReader: tracks bytes read for load logging
//
// Use WrapForLoading to apply them in the correct order.

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a dataset file is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("encoding error: invalid UTF-8")

// readChunk is the size of each read from the underlying reader.
const readChunk = 32 * 1024

// UTF8ValidatingReader passes bytes through unchanged and fails with
// ErrInvalidUTF8 at the first byte that cannot start or continue a valid
// sequence. Multi-byte sequences split across reads are held back until
// complete.
type UTF8ValidatingReader struct {
	reader io.Reader

	// buf holds validated bytes not yet handed to the caller.
	buf []byte
	// pending holds an incomplete trailing sequence awaiting more input.
	pending []byte
	offset  int64
	err     error
}

// NewUTF8ValidatingReader creates a validating reader around r.
func NewUTF8ValidatingReader(r io.Reader) *UTF8ValidatingReader {
	return &UTF8ValidatingReader{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

// Read implements io.Reader.
func (v *UTF8ValidatingReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for len(v.buf) == 0 {
		if v.err != nil {
			return 0, v.err
		}
		v.fill()
	}

	n := copy(p, v.buf)
	v.buf = v.buf[n:]
	return n, nil
}

// fill performs one read from the underlying reader and validates it,
// leaving validated bytes in buf and any terminal condition in err.
func (v *UTF8ValidatingReader) fill() {
	chunk := make([]byte, len(v.pending)+readChunk)
	carried := copy(chunk, v.pending)
	v.pending = v.pending[:0]

	n, err := v.reader.Read(chunk[carried:])
	data := chunk[:carried+n]

	valid := validPrefix(data)
	if valid < len(data) {
		tail := data[valid:]
		if err == nil && !utf8.FullRune(tail) {
			// Sequence may complete on the next read.
			v.pending = append(v.pending, tail...)
		} else {
			v.buf = data[:valid]
			v.offset += int64(valid)
			v.err = fmt.Errorf("%w at byte %d", ErrInvalidUTF8, v.offset)
			return
		}
	}

	v.buf = data[:valid]
	v.offset += int64(valid)

	if err != nil {
		v.err = err
	}
}

// validPrefix returns the length of the longest prefix of data made of
// complete, valid UTF-8 sequences.
func validPrefix(data []byte) int {
	if isAllASCII(data) {
		return len(data)
	}

	i := 0
	for i < len(data) {
		if data[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return i
}

// isAllASCII returns true if all bytes are ASCII (< 128).
// Most dataset exports are plain ASCII, so this skips rune decoding.
func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// utf8BOM is the byte order mark some editors prepend to UTF-8 files.
var utf8BOM = [3]byte{0xEF, 0xBB, 0xBF}

// BOMSkippingReader wraps an io.Reader and skips the UTF-8 BOM if present.
type BOMSkippingReader struct {
	reader     io.Reader
	bomChecked bool
	head       []byte // bytes read during the BOM check that are not a BOM
}

// NewBOMSkippingReader creates a new BOM-skipping reader.
func NewBOMSkippingReader(r io.Reader) *BOMSkippingReader {
	return &BOMSkippingReader{
		reader: r,
	}
}

// Read implements io.Reader. On the first read, it checks for and skips the BOM.
func (r *BOMSkippingReader) Read(p []byte) (int, error) {
	if !r.bomChecked {
		r.bomChecked = true

		var buf [3]byte
		n, err := io.ReadFull(r.reader, buf[:])
		if n < 3 || buf != utf8BOM {
			r.head = append([]byte(nil), buf[:n]...)
		}

		switch {
		case err == io.ErrUnexpectedEOF || err == io.EOF:
			if len(r.head) == 0 {
				return 0, io.EOF
			}
		case err != nil:
			return 0, err
		}
	}

	if len(r.head) > 0 {
		n := copy(p, r.head)
		r.head = r.head[n:]
		return n, nil
	}

	return r.reader.Read(p)
}

// CountingReader wraps an io.Reader to track bytes read.
type CountingReader struct {
	reader    io.Reader
	BytesRead int64
}

// NewCountingReader creates a counting reader.
func NewCountingReader(r io.Reader) *CountingReader {
	return &CountingReader{reader: r}
}

// Read implements io.Reader.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	r.BytesRead += int64(n)
	return n, err
}

// WrapForLoading wraps a raw file reader for CSV parsing.
//
// The order matters:
// 1. Counting sees the raw bytes, so BytesRead matches the file size
// 2. The BOM is stripped before validation and parsing
// 3. UTF-8 validation runs last, directly under the CSV reader
func WrapForLoading(r io.Reader) (io.Reader, *CountingReader) {
	counter := NewCountingReader(r)
	return NewUTF8ValidatingReader(NewBOMSkippingReader(counter)), counter
}
