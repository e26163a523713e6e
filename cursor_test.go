package xim

import (
	"bytes"
	"testing"
)

func TestReaderU16U32(t *testing.T) {
	w := NewWriter(0)
	w.WriteU16(0x0102)
	w.WriteU32(0x03040506)

	r := NewReader(w.Bytes())

	u16, err := r.U16()
	if err != nil {
		t.Fatalf("U16 failed: %s", err)
	}
	if u16 != 0x0102 {
		t.Fatalf("unexpected U16 value: %#x", u16)
	}

	u32, err := r.U32()
	if err != nil {
		t.Fatalf("U32 failed: %s", err)
	}
	if u32 != 0x03040506 {
		t.Fatalf("unexpected U32 value: %#x", u32)
	}
}

func TestReaderConsumeBounds(t *testing.T) {
	r := NewReader([]byte{0x01})

	if _, err := r.Consume(2); err != ErrEndOfStream {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
}

func TestReaderPad4(t *testing.T) {
	r := NewReader([]byte{0x01, 0x00, 0x00, 0x00, 0xff})

	if _, err := r.U8(); err != nil {
		t.Fatalf("U8 failed: %s", err)
	}

	if err := r.Pad4(); err != nil {
		t.Fatalf("Pad4 failed: %s", err)
	}

	if r.Offset() != 4 {
		t.Fatalf("expected offset 4 after padding, got %d", r.Offset())
	}

	b, err := r.U8()
	if err != nil {
		t.Fatalf("U8 failed: %s", err)
	}
	if b != 0xff {
		t.Fatalf("expected 0xff after padding, got %#x", b)
	}
}

func TestWriterPad4(t *testing.T) {
	w := NewWriter(0)
	w.WriteU8(0x01)
	w.WritePad4()

	if w.Len() != 4 {
		t.Fatalf("expected 4 bytes after padding, got %d", w.Len())
	}

	want := []byte{0x01, 0x00, 0x00, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("unexpected padded bytes: %x, want %x", w.Bytes(), want)
	}
}

func TestWriterOffsetAccountsForBase(t *testing.T) {
	w := NewWriter(2)
	w.WriteU8(0x01)

	if w.Offset() != 3 {
		t.Fatalf("expected offset 3, got %d", w.Offset())
	}

	w.WritePad4()
	if w.Offset() != 4 {
		t.Fatalf("expected offset 4 after pad, got %d", w.Offset())
	}
}

func TestPad4Len(t *testing.T) {
	cases := map[int]int{0: 0, 1: 3, 2: 2, 3: 1, 4: 0, 5: 3}
	for off, want := range cases {
		if got := pad4Len(off); got != want {
			t.Fatalf("pad4Len(%d) = %d, want %d", off, got, want)
		}
	}
}
