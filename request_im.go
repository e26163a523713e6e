package xim

func init() {
	register(OpOpen, 0, func() body { return &Open{} })
	register(OpOpenReply, 0, func() body { return &OpenReply{} })
	register(OpClose, 0, func() body { return &Close{} })
	register(OpCloseReply, 0, func() body { return &CloseReply{} })
	register(OpRegisterTriggerkeys, 0, func() body { return &RegisterTriggerkeys{} })
	register(OpTriggerNotify, 0, func() body { return &TriggerNotify{} })
	register(OpTriggerNotifyReply, 0, func() body { return &TriggerNotifyReply{} })
	register(OpSetEventMask, 0, func() body { return &SetEventMask{} })
	register(OpEncodingNegotiation, 0, func() body { return &EncodingNegotiation{} })
	register(OpEncodingNegotiationReply, 0, func() body { return &EncodingNegotiationReply{} })
	register(OpQueryExtension, 0, func() body { return &QueryExtension{} })
	register(OpQueryExtensionReply, 0, func() body { return &QueryExtensionReply{} })
	register(OpSetIMValues, 0, func() body { return &SetIMValues{} })
	register(OpSetIMValuesReply, 0, func() body { return &SetIMValuesReply{} })
	register(OpGetIMValues, 0, func() body { return &GetIMValues{} })
	register(OpGetIMValuesReply, 0, func() body { return &GetIMValuesReply{} })
}

// Open requests an input-method session for the given locale name.
type Open struct {
	Name XimString
}

func (m *Open) Opcode() (uint8, uint8)   { return OpOpen, 0 }
func (m *Open) WriteBody(w *Writer)      { WriteSTR(w, m.Name) }
func (m *Open) ReadBody(r *Reader) error {
	var err error
	m.Name, err = ReadSTR(r)
	return err
}

// OpenReply grants an input-method id and publishes the session's
// attribute dictionaries. IcAttrs carries two extra padding bytes
// immediately after its length prefix — a quirk of the XIM 1.0 wire
// format this codec reproduces deliberately rather than "fixing".
type OpenReply struct {
	ImID    uint16
	ImAttrs []Attr
	IcAttrs []Attr
}

func (m *OpenReply) Opcode() (uint8, uint8) { return OpOpenReply, 0 }

func (m *OpenReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.ImAttrs, func(w *Writer, a Attr) { a.WriteTo(w) })

	scratch := NewWriter(w.Offset() + 2)
	scratch.WriteU16(0) // the extra pad bytes counted inside ic_attrs' own length
	for _, a := range m.IcAttrs {
		a.WriteTo(scratch)
	}
	w.WriteU16(uint16(scratch.Len()))
	w.WriteRaw(scratch.Bytes())
}

func (m *OpenReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}

	if m.ImAttrs, err = readList(r, ReadAttr); err != nil {
		return err
	}

	n, err := r.U16()
	if err != nil {
		return err
	}
	end := r.Cursor() - int(n)
	if end < 0 {
		return ErrEndOfStream
	}
	if _, err := r.U16(); err != nil { // the extra pad word
		return err
	}
	for r.Cursor() > end {
		a, err := ReadAttr(r)
		if err != nil {
			return err
		}
		m.IcAttrs = append(m.IcAttrs, a)
	}

	return nil
}

// Close ends an input-method session.
type Close struct {
	ImID uint16
}

func (m *Close) Opcode() (uint8, uint8) { return OpClose, 0 }
func (m *Close) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(0) }
func (m *Close) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	_, err = r.U16()
	return err
}

// CloseReply acknowledges Close.
type CloseReply struct {
	ImID uint16
}

func (m *CloseReply) Opcode() (uint8, uint8) { return OpCloseReply, 0 }
func (m *CloseReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(0) }
func (m *CloseReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	_, err = r.U16()
	return err
}

// RegisterTriggerkeys registers the hotkeys that should and should not
// toggle the input method on and off.
type RegisterTriggerkeys struct {
	ImID    uint16
	OnKeys  []TriggerKey
	OffKeys []TriggerKey
}

func (m *RegisterTriggerkeys) Opcode() (uint8, uint8) { return OpRegisterTriggerkeys, 0 }

func (m *RegisterTriggerkeys) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(0) // pad
	writeList(w, m.OnKeys, func(w *Writer, t TriggerKey) { t.WriteTo(w) })
	writeList(w, m.OffKeys, func(w *Writer, t TriggerKey) { t.WriteTo(w) })
}

func (m *RegisterTriggerkeys) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if _, err = r.U16(); err != nil {
		return err
	}
	if m.OnKeys, err = readList(r, ReadTriggerKey); err != nil {
		return err
	}
	m.OffKeys, err = readList(r, ReadTriggerKey)
	return err
}

// TriggerNotify reports that a registered hotkey fired.
type TriggerNotify struct {
	ImID                  uint16
	IcID                  uint16
	Flag                  uint32
	Index                 uint32
	ClientSelectEventMask uint32
}

func (m *TriggerNotify) Opcode() (uint8, uint8) { return OpTriggerNotify, 0 }

func (m *TriggerNotify) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU32(m.Flag)
	w.WriteU32(m.Index)
	w.WriteU32(m.ClientSelectEventMask)
}

func (m *TriggerNotify) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Flag, err = r.U32(); err != nil {
		return err
	}
	if m.Index, err = r.U32(); err != nil {
		return err
	}
	m.ClientSelectEventMask, err = r.U32()
	return err
}

// TriggerNotifyReply acknowledges TriggerNotify.
type TriggerNotifyReply struct {
	ImID uint16
	IcID uint16
}

func (m *TriggerNotifyReply) Opcode() (uint8, uint8) { return OpTriggerNotifyReply, 0 }
func (m *TriggerNotifyReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *TriggerNotifyReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// SetEventMask updates which X events the client should forward to the
// server and which it must forward synchronously.
type SetEventMask struct {
	ImID                 uint16
	IcID                 uint16
	ForwardEventMask     uint32
	SynchronousEventMask uint32
}

func (m *SetEventMask) Opcode() (uint8, uint8) { return OpSetEventMask, 0 }

func (m *SetEventMask) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU32(m.ForwardEventMask)
	w.WriteU32(m.SynchronousEventMask)
}

func (m *SetEventMask) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.ForwardEventMask, err = r.U32(); err != nil {
		return err
	}
	m.SynchronousEventMask, err = r.U32()
	return err
}

// EncodingNegotiation proposes a set of encodings the client can accept;
// the server answers with EncodingNegotiationReply.
type EncodingNegotiation struct {
	ImID          uint16
	Encodings     []XimString
	EncodingInfos []EncodingInfo
}

func (m *EncodingNegotiation) Opcode() (uint8, uint8) { return OpEncodingNegotiation, 0 }

func (m *EncodingNegotiation) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.Encodings, func(w *Writer, s XimString) { WriteSTR(w, s) })
	w.WritePad4()
	writeList(w, m.EncodingInfos, func(w *Writer, e EncodingInfo) { e.WriteTo(w) })
}

func (m *EncodingNegotiation) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.Encodings, err = readList(r, ReadSTR); err != nil {
		return err
	}
	if err := r.Pad4(); err != nil {
		return err
	}
	m.EncodingInfos, err = readList(r, ReadEncodingInfo)
	return err
}

// EncodingNegotiationReply announces which encoding the server chose,
// identified either by Category/Index into the offered list.
type EncodingNegotiationReply struct {
	ImID     uint16
	Category uint16
	Index    int16
}

func (m *EncodingNegotiationReply) Opcode() (uint8, uint8) { return OpEncodingNegotiationReply, 0 }

func (m *EncodingNegotiationReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.Category)
	w.WriteU16(uint16(m.Index))
	w.WriteU16(0) // pad
}

func (m *EncodingNegotiationReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.Category, err = r.U16(); err != nil {
		return err
	}
	idx, err := r.U16()
	if err != nil {
		return err
	}
	m.Index = int16(idx)
	_, err = r.U16() // pad
	return err
}

// QueryExtension asks which XIM extensions the server supports, among
// the names listed (an empty list asks for all of them). The names are
// STR entries packed contiguously with no per-element padding; the
// whole list is padded once, as a unit.
type QueryExtension struct {
	ImID       uint16
	Extensions []XimString
}

func (m *QueryExtension) Opcode() (uint8, uint8) { return OpQueryExtension, 0 }

func (m *QueryExtension) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	scratch := NewWriter(w.Offset() + 2)
	for _, s := range m.Extensions {
		WriteSTR0(scratch, s)
	}
	w.WriteU16(uint16(scratch.Len()))
	w.WriteRaw(scratch.Bytes())
	w.WritePad4()
}

func (m *QueryExtension) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}

	n, err := r.U16()
	if err != nil {
		return err
	}
	end := r.Cursor() - int(n)
	if end < 0 {
		return ErrEndOfStream
	}
	for r.Cursor() > end {
		s, err := ReadSTR0(r)
		if err != nil {
			return err
		}
		m.Extensions = append(m.Extensions, s)
	}

	return r.Pad4()
}

// QueryExtensionReply lists the extensions the server actually supports.
type QueryExtensionReply struct {
	ImID      uint16
	Supported []ExtInfo
}

func (m *QueryExtensionReply) Opcode() (uint8, uint8) { return OpQueryExtensionReply, 0 }

func (m *QueryExtensionReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.Supported, func(w *Writer, e ExtInfo) { e.WriteTo(w) })
}

func (m *QueryExtensionReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.Supported, err = readList(r, ReadExtInfo)
	return err
}

// SetIMValues updates input-method-scoped attributes.
type SetIMValues struct {
	ImID         uint16
	ImAttributes []AttributeValue
}

func (m *SetIMValues) Opcode() (uint8, uint8) { return OpSetIMValues, 0 }

func (m *SetIMValues) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.ImAttributes, func(w *Writer, a AttributeValue) { a.WriteTo(w) })
}

func (m *SetIMValues) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.ImAttributes, err = readList(r, ReadAttributeValue)
	return err
}

// SetIMValuesReply acknowledges SetIMValues.
type SetIMValuesReply struct {
	ImID uint16
}

func (m *SetIMValuesReply) Opcode() (uint8, uint8) { return OpSetIMValuesReply, 0 }
func (m *SetIMValuesReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(0) }
func (m *SetIMValuesReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	_, err = r.U16()
	return err
}

// GetIMValues requests the current values of the named im attribute ids.
type GetIMValues struct {
	ImID         uint16
	RequestedIDs []uint16
}

func (m *GetIMValues) Opcode() (uint8, uint8) { return OpGetIMValues, 0 }

func (m *GetIMValues) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeU16List(w, m.RequestedIDs)
}

func (m *GetIMValues) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.RequestedIDs, err = readU16List(r)
	return err
}

// GetIMValuesReply answers GetIMValues.
type GetIMValuesReply struct {
	ImID         uint16
	ImAttributes []AttributeValue
}

func (m *GetIMValuesReply) Opcode() (uint8, uint8) { return OpGetIMValuesReply, 0 }

func (m *GetIMValuesReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.ImAttributes, func(w *Writer, a AttributeValue) { a.WriteTo(w) })
}

func (m *GetIMValuesReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.ImAttributes, err = readList(r, ReadAttributeValue)
	return err
}
