package xim

import (
	"bytes"

	"github.com/netrack/xim/encoding/binary"
)

// Reader is a forward-only cursor over a decoded XIM message. It tracks
// the number of bytes consumed from the start of the message (header
// included) so that Pad4 can realign to the 4-byte record boundaries the
// wire format requires.
type Reader struct {
	data     []byte
	consumed int
}

// NewReader wraps b, the full bytes of a single XIM message, for
// sequential decoding starting at the message header.
func NewReader(b []byte) *Reader {
	return &Reader{data: b}
}

// Cursor returns the number of bytes remaining to be read. List bodies
// are measured against the value of Cursor taken immediately after their
// length prefix is read: end := r.Cursor() - length.
func (r *Reader) Cursor() int {
	return len(r.data)
}

// Consume returns the next n bytes and advances the cursor past them.
func (r *Reader) Consume(n int) ([]byte, error) {
	if n < 0 || len(r.data) < n {
		return nil, ErrEndOfStream
	}

	b := r.data[:n]
	r.data = r.data[n:]
	r.consumed += n
	return b, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.Consume(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// U16 reads a native-endian 16-bit unsigned integer.
func (r *Reader) U16() (uint16, error) {
	b, err := r.Consume(2)
	if err != nil {
		return 0, err
	}

	return binary.NativeEndian.Uint16(b), nil
}

// U32 reads a native-endian 32-bit unsigned integer.
func (r *Reader) U32() (uint32, error) {
	b, err := r.Consume(4)
	if err != nil {
		return 0, err
	}

	return binary.NativeEndian.Uint32(b), nil
}

// I32 reads a native-endian 32-bit signed integer.
func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

// Pad4 consumes the zero padding needed to align the cursor to the next
// 4-byte boundary, counting from the start of the message.
func (r *Reader) Pad4() error {
	n := pad4Len(r.consumed)
	_, err := r.Consume(n)
	return err
}

// Offset reports the number of bytes consumed so far from the start of
// the message, i.e. the absolute position of the cursor.
func (r *Reader) Offset() int {
	return r.consumed
}

// Writer is an append-only cursor used to build a single XIM message.
// Base is the absolute offset, from the start of the enclosing message,
// at which this writer's buffer begins — it lets nested writers (used to
// measure a length-prefixed list before it is copied into the parent)
// align their own padding exactly as the final, single-pass encoding
// would.
type Writer struct {
	buf  bytes.Buffer
	base int
}

// NewWriter creates a writer whose first byte will land at absolute
// offset base within the encoded message.
func NewWriter(base int) *Writer {
	return &Writer{base: base}
}

// Offset returns the absolute offset of the next byte this writer will
// emit.
func (w *Writer) Offset() int {
	return w.base + w.buf.Len()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.buf.WriteByte(v)
}

// WriteRaw appends b verbatim.
func (w *Writer) WriteRaw(b []byte) {
	w.buf.Write(b)
}

// WriteU16 appends a native-endian 16-bit unsigned integer.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// WriteU32 appends a native-endian 32-bit unsigned integer.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// WriteI32 appends a native-endian 32-bit signed integer.
func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

// WritePad4 appends zero bytes until the writer's absolute offset is a
// multiple of 4.
func (w *Writer) WritePad4() {
	n := pad4Len(w.Offset())
	if n == 0 {
		return
	}

	var zero [4]byte
	w.buf.Write(zero[:n])
}

func pad4Len(offset int) int {
	return (4 - offset%4) % 4
}
