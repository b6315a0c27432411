// Package wire implements the little-endian primitive layer every region
// of a table file is decoded from and encoded to. The reader counts every
// byte it consumes so that region parsers can be held to exact windows.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrShortRead = errors.New("unexpected end of input")
)

// Reader decodes fixed-width little-endian values from an underlying stream.
type Reader struct {
	r        io.Reader
	consumed int64

	scratch [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int64 {
	return r.consumed
}

func (r *Reader) fill(n int) error {
	read, err := io.ReadFull(r.r, r.scratch[:n])
	r.consumed += int64(read)
	if err != nil {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrShortRead, n, read)
	}
	return nil
}

func (r *Reader) Uint8() (uint8, error) {
	if err := r.fill(1); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	if err := r.fill(2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.scratch[:2]), nil
}

func (r *Reader) Uint32() (uint32, error) {
	if err := r.fill(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.scratch[:4]), nil
}

func (r *Reader) Uint64() (uint64, error) {
	if err := r.fill(8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.scratch[:8]), nil
}

// Bytes reads exactly n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r.r, buf)
	r.consumed += int64(read)
	if err != nil {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortRead, n, read)
	}
	return buf, nil
}

// Rest consumes the stream through end-of-input.
func (r *Reader) Rest() ([]byte, error) {
	buf, err := io.ReadAll(r.r)
	r.consumed += int64(len(buf))
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Isolate hands the inner parser a view of exactly n bytes. The parser must
// consume all of them: consuming fewer or attempting to read past the window
// is an error carrying the region label.
func (r *Reader) Isolate(n int64, label string, fn func(*Reader) error) error {
	sub := &Reader{r: io.LimitReader(r.r, n)}
	err := fn(sub)
	r.consumed += sub.consumed
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}
	if sub.consumed != n {
		return fmt.Errorf("%s: parser consumed %d of %d bytes", label, sub.consumed, n)
	}
	return nil
}

// Writer is an append-only little-endian encoder. Its length is observable
// so composers can derive offsets and size fields from what has been
// written so far.
type Writer struct {
	buf     bytes.Buffer
	scratch [8]byte
}

func NewWriter() *Writer {
	return &Writer{}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) PutUint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) PutUint16(v uint16) {
	binary.LittleEndian.PutUint16(w.scratch[:2], v)
	w.buf.Write(w.scratch[:2])
}

func (w *Writer) PutUint32(v uint32) {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	w.buf.Write(w.scratch[:4])
}

func (w *Writer) PutUint64(v uint64) {
	binary.LittleEndian.PutUint64(w.scratch[:8], v)
	w.buf.Write(w.scratch[:8])
}

func (w *Writer) PutBytes(b []byte) {
	w.buf.Write(b)
}

// WriteTo flushes the accumulated output to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}
