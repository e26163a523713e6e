package xim

import (
	"github.com/netrack/xim/encoding/binary"
)

// Endian is the one-byte tag that opens a Connect message. Both peers
// encode in their own native byte order; the tag lets the receiver
// reject a message that doesn't match its own.
type Endian uint8

const (
	EndianBig    Endian = 0x42 // 'B'
	EndianLittle Endian = 0x6c // 'l'
)

// hostEndian is the Endian tag matching this process's native byte
// order.
var hostEndian = func() Endian {
	if binary.NativeEndian == binary.LittleEndian {
		return EndianLittle
	}
	return EndianBig
}()

// HostEndian returns the Endian tag a Connect message must carry to be
// accepted by this process.
func HostEndian() Endian {
	return hostEndian
}

// ReadEndian reads and validates the endian tag against the host's own
// byte order, per spec: any mismatch is rejected outright rather than
// silently byte-swapped.
func ReadEndian(r *Reader) (Endian, error) {
	v, err := r.U8()
	if err != nil {
		return 0, err
	}

	e := Endian(v)
	if e != EndianBig && e != EndianLittle {
		return 0, invalidData("Endian", v)
	}

	if e != hostEndian {
		return 0, ErrNotNativeEndian
	}

	return e, nil
}

// WriteEndian writes the host's own endian tag.
func WriteEndian(w *Writer) {
	w.WriteU8(uint8(hostEndian))
}

// XimString is an opaque length-prefixed byte string. Both wire forms
// (u8-length STR and u16-length STRING) decode to this same type; UTF-8
// interpretation, where relevant, is the caller's concern.
type XimString []byte

func (s XimString) String() string {
	return string(s)
}

// ReadSTR reads a u8-length-prefixed string followed by alignment
// padding to the next 4-byte boundary.
func ReadSTR(r *Reader) (XimString, error) {
	n, err := r.U8()
	if err != nil {
		return nil, err
	}

	b, err := r.Consume(int(n))
	if err != nil {
		return nil, err
	}

	if err := r.Pad4(); err != nil {
		return nil, err
	}

	return XimString(append([]byte(nil), b...)), nil
}

// WriteSTR writes s as a u8-length-prefixed string padded to the next
// 4-byte boundary.
func WriteSTR(w *Writer, s XimString) {
	w.WriteU8(uint8(len(s)))
	w.WriteRaw(s)
	w.WritePad4()
}

// ReadSTR0 reads a u8-length-prefixed string without consuming any
// trailing padding, for use inside a list whose elements are packed
// contiguously and padded once, as a unit, after the whole list.
func ReadSTR0(r *Reader) (XimString, error) {
	n, err := r.U8()
	if err != nil {
		return nil, err
	}

	b, err := r.Consume(int(n))
	if err != nil {
		return nil, err
	}

	return XimString(append([]byte(nil), b...)), nil
}

// WriteSTR0 writes s as a u8-length-prefixed string with no trailing
// padding, the counterpart of ReadSTR0.
func WriteSTR0(w *Writer, s XimString) {
	w.WriteU8(uint8(len(s)))
	w.WriteRaw(s)
}

// ReadSTRING reads a u16-length-prefixed string. Unlike STR it does not
// consume any trailing padding itself — callers pad once, after the
// enclosing list or field, per the variant's own schema.
func ReadSTRING(r *Reader) (XimString, error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}

	b, err := r.Consume(int(n))
	if err != nil {
		return nil, err
	}

	return XimString(append([]byte(nil), b...)), nil
}

// WriteSTRING writes s as a u16-length-prefixed string with no trailing
// padding.
func WriteSTRING(w *Writer, s XimString) {
	w.WriteU16(uint16(len(s)))
	w.WriteRaw(s)
}

// ReadSTRINGPadded reads a STRING field that pads itself individually
// (used by Connect's auth_protocol_names, where each list element is
// independently 4-byte aligned).
func ReadSTRINGPadded(r *Reader) (XimString, error) {
	s, err := ReadSTRING(r)
	if err != nil {
		return nil, err
	}

	if err := r.Pad4(); err != nil {
		return nil, err
	}

	return s, nil
}

// WriteSTRINGPadded writes s as a padded STRING field, the counterpart
// of ReadSTRINGPadded.
func WriteSTRINGPadded(w *Writer, s XimString) {
	WriteSTRING(w, s)
	w.WritePad4()
}

// AttrType enumerates the wire types an Attribute's value may carry.
type AttrType uint16

const (
	AttrSeparator        AttrType = 0
	AttrByte             AttrType = 1
	AttrWord             AttrType = 2
	AttrLong             AttrType = 3
	AttrChar             AttrType = 4
	AttrWindow           AttrType = 5
	AttrStyle            AttrType = 10
	AttrXRectangle       AttrType = 11
	AttrXPoint           AttrType = 12
	AttrXFontSet         AttrType = 13
	AttrHotkeyTriggers   AttrType = 15
	AttrStringConversion AttrType = 17
	AttrPreeditState     AttrType = 18
	AttrResetState       AttrType = 19
	AttrNestedList       AttrType = 32767
)

func (t AttrType) valid() bool {
	switch t {
	case AttrSeparator, AttrByte, AttrWord, AttrLong, AttrChar, AttrWindow,
		AttrStyle, AttrXRectangle, AttrXPoint, AttrXFontSet, AttrHotkeyTriggers,
		AttrStringConversion, AttrPreeditState, AttrResetState, AttrNestedList:
		return true
	}
	return false
}

// ReadAttrType reads and validates an AttrType discriminant.
func ReadAttrType(r *Reader) (AttrType, error) {
	v, err := r.U16()
	if err != nil {
		return 0, err
	}

	t := AttrType(v)
	if !t.valid() {
		return 0, invalidData("AttrType", v)
	}

	return t, nil
}

// WriteAttrType writes an AttrType discriminant.
func WriteAttrType(w *Writer, t AttrType) {
	w.WriteU16(uint16(t))
}

// Attr describes one entry of an im_attrs/ic_attrs dictionary: the
// locally-assigned id a later AttributeValue will reference, its wire
// type, and its human-readable name (e.g. "preeditAttributes").
type Attr struct {
	ID   uint16
	Type AttrType
	Name XimString
}

// ReadAttr reads one Attr entry, which self-pads after its
// u16-length-prefixed name.
func ReadAttr(r *Reader) (Attr, error) {
	var a Attr
	var err error

	if a.ID, err = r.U16(); err != nil {
		return a, err
	}

	if a.Type, err = ReadAttrType(r); err != nil {
		return a, err
	}

	if a.Name, err = ReadSTRINGPadded(r); err != nil {
		return a, err
	}

	return a, nil
}

// WriteTo writes the Attr entry.
func (a Attr) WriteTo(w *Writer) {
	w.WriteU16(a.ID)
	WriteAttrType(w, a.Type)
	WriteSTRINGPadded(w, a.Name)
}

// AttributeValue is a (attribute id, opaque bytes) pair, as carried by
// SetIcValues/GetIcValuesReply/SetIMValues/GetIMValuesReply and by
// CreateIc's ic_attributes. The bytes are left uninterpreted until the
// id is resolved against the session's attribute dictionary — this
// avoids cyclic typing and lets the engine defer interpretation.
type AttributeValue struct {
	ID    uint16
	Value []byte
}

// ReadAttributeValue reads one (id, length, value) triple, padded to the
// next 4-byte boundary.
func ReadAttributeValue(r *Reader) (AttributeValue, error) {
	var v AttributeValue
	var err error

	if v.ID, err = r.U16(); err != nil {
		return v, err
	}

	n, err := r.U16()
	if err != nil {
		return v, err
	}

	b, err := r.Consume(int(n))
	if err != nil {
		return v, err
	}
	v.Value = append([]byte(nil), b...)

	if err := r.Pad4(); err != nil {
		return v, err
	}

	return v, nil
}

// WriteTo writes the AttributeValue.
func (v AttributeValue) WriteTo(w *Writer) {
	w.WriteU16(v.ID)
	w.WriteU16(uint16(len(v.Value)))
	w.WriteRaw(v.Value)
	w.WritePad4()
}

// EncodingInfo names one encoding a peer's EncodingNegotiation offers or
// accepts, together with the category XIM groups it under (0: core
// encoding, 1: extension encoding — the two categories XIM 1.0 defines).
type EncodingInfo struct {
	Category uint16
	Name     XimString
}

// ReadEncodingInfo reads one EncodingInfo entry.
func ReadEncodingInfo(r *Reader) (EncodingInfo, error) {
	var e EncodingInfo
	var err error

	if e.Category, err = r.U16(); err != nil {
		return e, err
	}

	if e.Name, err = ReadSTR(r); err != nil {
		return e, err
	}

	return e, nil
}

// WriteTo writes the EncodingInfo entry.
func (e EncodingInfo) WriteTo(w *Writer) {
	w.WriteU16(e.Category)
	WriteSTR(w, e.Name)
}

// ExtInfo describes one extension a server advertises in
// QueryExtensionReply: the opcode pair a client should use to invoke it,
// and its name.
type ExtInfo struct {
	MajorOpcode uint8
	MinorOpcode uint8
	Name        XimString
}

// ReadExtInfo reads one ExtInfo entry.
func ReadExtInfo(r *Reader) (ExtInfo, error) {
	var e ExtInfo
	var err error

	if e.MajorOpcode, err = r.U8(); err != nil {
		return e, err
	}

	if e.MinorOpcode, err = r.U8(); err != nil {
		return e, err
	}

	if e.Name, err = ReadSTR(r); err != nil {
		return e, err
	}

	return e, nil
}

// WriteTo writes the ExtInfo entry.
func (e ExtInfo) WriteTo(w *Writer) {
	w.WriteU8(e.MajorOpcode)
	w.WriteU8(e.MinorOpcode)
	WriteSTR(w, e.Name)
}

// TriggerKey is one hotkey entry of RegisterTriggerkeys's on/off lists.
type TriggerKey struct {
	Keysym       uint32
	Modifier     uint32
	ModifierMask uint32
}

// ReadTriggerKey reads one fixed 12-byte TriggerKey entry.
func ReadTriggerKey(r *Reader) (TriggerKey, error) {
	var t TriggerKey
	var err error

	if t.Keysym, err = r.U32(); err != nil {
		return t, err
	}
	if t.Modifier, err = r.U32(); err != nil {
		return t, err
	}
	if t.ModifierMask, err = r.U32(); err != nil {
		return t, err
	}

	return t, nil
}

// WriteTo writes the TriggerKey entry.
func (t TriggerKey) WriteTo(w *Writer) {
	w.WriteU32(t.Keysym)
	w.WriteU32(t.Modifier)
	w.WriteU32(t.ModifierMask)
}

// Commit flag bits, used to key CommitData's sub-union.
const (
	CommitFlagSync   uint16 = 1 << 0
	CommitFlagKeysym        = CommitFlagSync // bit 0: keysym present
	commitFlagBit1   uint16 = 1 << 1
	CommitFlagChars  uint16 = 1 << 2 // bit 2: committed_bytes present
)

// CommitData is Commit's payload, a sub-union keyed by the commit flags
// bitfield carried alongside it.
type CommitData interface {
	WriteTo(w *Writer)
}

// CommitKeysym carries a single composed keysym (flags bit 0 set, bit 2
// clear).
type CommitKeysym struct {
	Keysym uint32
}

func (c CommitKeysym) WriteTo(w *Writer) { w.WriteU32(c.Keysym) }

// CommitChars carries committed text bytes (flags bit 2 set, bit 0
// clear).
type CommitChars struct {
	Committed XimString
}

func (c CommitChars) WriteTo(w *Writer) {
	WriteSTRINGPadded(w, c.Committed)
}

// CommitBoth carries both a keysym and committed text bytes (both flag
// bits set).
type CommitBoth struct {
	Keysym    uint32
	Committed XimString
}

func (c CommitBoth) WriteTo(w *Writer) {
	w.WriteU32(c.Keysym)
	WriteSTRINGPadded(w, c.Committed)
}

// readCommitChars reads the committed-text field shared by CommitChars
// and CommitBoth: a u16-length-prefixed string, padded to the next
// 4-byte boundary.
func readCommitChars(r *Reader) (XimString, error) {
	return ReadSTRINGPadded(r)
}

// ReadCommitData decodes CommitData according to the flags bitfield.
func ReadCommitData(r *Reader, flags uint16) (CommitData, error) {
	hasKeysym := flags&CommitFlagKeysym != 0
	hasChars := flags&CommitFlagChars != 0

	switch {
	case hasKeysym && !hasChars:
		keysym, err := r.U32()
		if err != nil {
			return nil, err
		}
		return CommitKeysym{keysym}, nil

	case hasChars && !hasKeysym:
		s, err := readCommitChars(r)
		if err != nil {
			return nil, err
		}
		return CommitChars{s}, nil

	case hasKeysym && hasChars:
		keysym, err := r.U32()
		if err != nil {
			return nil, err
		}
		s, err := readCommitChars(r)
		if err != nil {
			return nil, err
		}
		return CommitBoth{keysym, s}, nil

	default:
		return nil, invalidData("CommitFlags", flags)
	}
}

// readList reads a u16-byte-length-prefixed list, calling read for each
// element until the declared byte length is exhausted.
func readList[T any](r *Reader, read func(*Reader) (T, error)) ([]T, error) {
	n, err := r.U16()
	if err != nil {
		return nil, err
	}

	end := r.Cursor() - int(n)
	if end < 0 {
		return nil, ErrEndOfStream
	}

	var out []T
	for r.Cursor() > end {
		v, err := read(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// writeList writes a u16-byte-length-prefixed list. It measures the
// list body with a scratch Writer seeded at the correct absolute offset
// (immediately after the two-byte length prefix this function itself
// writes) so that any element-internal padding lands exactly where the
// final single-pass write would put it.
func writeList[T any](w *Writer, items []T, write func(*Writer, T)) {
	scratch := NewWriter(w.Offset() + 2)
	for _, it := range items {
		write(scratch, it)
	}

	w.WriteU16(uint16(scratch.Len()))
	w.WriteRaw(scratch.Bytes())
}

// readU16List and writeU16List handle a u16-byte-length-prefixed list
// of u16 values (attribute ids).
func readU16List(r *Reader) ([]uint16, error) {
	return readList(r, func(r *Reader) (uint16, error) { return r.U16() })
}

func writeU16List(w *Writer, items []uint16) {
	writeList(w, items, func(w *Writer, v uint16) { w.WriteU16(v) })
}

// readU32List and writeU32List do the same for u32 feedback arrays
// (preedit/status callback per-rune highlighting masks).
func readU32List(r *Reader) ([]uint32, error) {
	return readList(r, func(r *Reader) (uint32, error) { return r.U32() })
}

func writeU32List(w *Writer, items []uint32) {
	writeList(w, items, func(w *Writer, v uint32) { w.WriteU32(v) })
}
