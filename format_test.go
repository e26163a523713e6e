package xim

import (
	"bytes"
	"testing"
)

func TestEndianRoundTrip(t *testing.T) {
	w := NewWriter(0)
	WriteEndian(w)

	r := NewReader(w.Bytes())
	e, err := ReadEndian(r)
	if err != nil {
		t.Fatalf("ReadEndian failed: %s", err)
	}
	if e != hostEndian {
		t.Fatalf("expected host endian %#x, got %#x", hostEndian, e)
	}
}

func TestReadEndianRejectsForeignByteOrder(t *testing.T) {
	foreign := EndianBig
	if hostEndian == EndianBig {
		foreign = EndianLittle
	}

	r := NewReader([]byte{uint8(foreign)})
	if _, err := ReadEndian(r); err != ErrNotNativeEndian {
		t.Fatalf("expected ErrNotNativeEndian, got %v", err)
	}
}

func TestReadEndianRejectsInvalidTag(t *testing.T) {
	r := NewReader([]byte{0x00})
	if _, err := ReadEndian(r); err == nil {
		t.Fatal("expected an error for an invalid endian tag")
	}
}

func TestSTRRoundTrip(t *testing.T) {
	w := NewWriter(0)
	WriteSTR(w, XimString("en_US"))

	r := NewReader(w.Bytes())
	s, err := ReadSTR(r)
	if err != nil {
		t.Fatalf("ReadSTR failed: %s", err)
	}
	if s.String() != "en_US" {
		t.Fatalf("unexpected string: %q", s.String())
	}
	if r.Cursor() != 0 {
		t.Fatalf("expected cursor to be fully consumed, got %d bytes left", r.Cursor())
	}
}

func TestSTRINGPaddedRoundTrip(t *testing.T) {
	w := NewWriter(0)
	WriteSTRINGPadded(w, XimString("COMPOUND_TEXT"))
	w.WriteU8(0xAA) // sentinel to prove padding landed before this byte

	r := NewReader(w.Bytes())
	s, err := ReadSTRINGPadded(r)
	if err != nil {
		t.Fatalf("ReadSTRINGPadded failed: %s", err)
	}
	if s.String() != "COMPOUND_TEXT" {
		t.Fatalf("unexpected string: %q", s.String())
	}

	b, err := r.U8()
	if err != nil || b != 0xAA {
		t.Fatalf("expected sentinel 0xAA after padding, got %#x, err=%v", b, err)
	}
}

func TestAttrRoundTrip(t *testing.T) {
	a := Attr{ID: 3, Type: AttrStyle, Name: XimString("preeditAttributes")}

	w := NewWriter(0)
	a.WriteTo(w)

	r := NewReader(w.Bytes())
	got, err := ReadAttr(r)
	if err != nil {
		t.Fatalf("ReadAttr failed: %s", err)
	}
	if got.ID != a.ID || got.Type != a.Type || !bytes.Equal(got.Name, a.Name) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, a)
	}
}

func TestAttrTypeRejectsUnknownDiscriminant(t *testing.T) {
	w := NewWriter(0)
	w.WriteU16(9999)

	r := NewReader(w.Bytes())
	if _, err := ReadAttrType(r); err == nil {
		t.Fatal("expected an error for an unknown AttrType discriminant")
	}
}

func TestAttributeValueRoundTrip(t *testing.T) {
	v := AttributeValue{ID: 7, Value: []byte{1, 2, 3}}

	w := NewWriter(0)
	v.WriteTo(w)

	if w.Len()%4 != 0 {
		t.Fatalf("expected a 4-byte-aligned encoding, got %d bytes", w.Len())
	}

	r := NewReader(w.Bytes())
	got, err := ReadAttributeValue(r)
	if err != nil {
		t.Fatalf("ReadAttributeValue failed: %s", err)
	}
	if got.ID != v.ID || !bytes.Equal(got.Value, v.Value) {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, v)
	}
}

func TestReadListHonoursDeclaredLength(t *testing.T) {
	w := NewWriter(0)
	writeU16List(w, []uint16{1, 2, 3})

	r := NewReader(w.Bytes())
	got, err := readU16List(r)
	if err != nil {
		t.Fatalf("readU16List failed: %s", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("unexpected list contents: %v", got)
	}
}

func TestReadListEmptyList(t *testing.T) {
	w := NewWriter(0)
	writeU16List(w, nil)

	r := NewReader(w.Bytes())
	got, err := readU16List(r)
	if err != nil {
		t.Fatalf("readU16List failed: %s", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected an empty list, got %v", got)
	}
}

func TestReadListTruncatedBodyFails(t *testing.T) {
	r := NewReader([]byte{0x10, 0x00}) // claims 16 bytes of body, has none
	if _, err := readU16List(r); err != ErrEndOfStream {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
}

func TestCommitDataKeysym(t *testing.T) {
	w := NewWriter(0)
	CommitKeysym{Keysym: 0x1234}.WriteTo(w)

	r := NewReader(w.Bytes())
	d, err := ReadCommitData(r, CommitFlagKeysym)
	if err != nil {
		t.Fatalf("ReadCommitData failed: %s", err)
	}
	ks, ok := d.(CommitKeysym)
	if !ok || ks.Keysym != 0x1234 {
		t.Fatalf("unexpected CommitData: %#v", d)
	}
}

func TestCommitDataChars(t *testing.T) {
	w := NewWriter(0)
	CommitChars{Committed: XimString("hello")}.WriteTo(w)

	r := NewReader(w.Bytes())
	d, err := ReadCommitData(r, CommitFlagChars)
	if err != nil {
		t.Fatalf("ReadCommitData failed: %s", err)
	}
	c, ok := d.(CommitChars)
	if !ok || c.Committed.String() != "hello" {
		t.Fatalf("unexpected CommitData: %#v", d)
	}
}

func TestCommitDataBoth(t *testing.T) {
	w := NewWriter(0)
	CommitBoth{Keysym: 0x41, Committed: XimString("a")}.WriteTo(w)

	r := NewReader(w.Bytes())
	d, err := ReadCommitData(r, CommitFlagKeysym|CommitFlagChars)
	if err != nil {
		t.Fatalf("ReadCommitData failed: %s", err)
	}
	b, ok := d.(CommitBoth)
	if !ok || b.Keysym != 0x41 || b.Committed.String() != "a" {
		t.Fatalf("unexpected CommitData: %#v", d)
	}
}

func TestCommitDataRejectsUnsetFlags(t *testing.T) {
	r := NewReader(nil)
	if _, err := ReadCommitData(r, 0); err == nil {
		t.Fatal("expected an error when neither commit flag is set")
	}
}
