package xim

func init() {
	register(OpCreateIc, 0, func() body { return &CreateIc{} })
	register(OpCreateIcReply, 0, func() body { return &CreateIcReply{} })
	register(OpDestroyIc, 0, func() body { return &DestroyIc{} })
	register(OpDestroyIcReply, 0, func() body { return &DestroyIcReply{} })
	register(OpSetIcValues, 0, func() body { return &SetIcValues{} })
	register(OpSetIcValuesReply, 0, func() body { return &SetIcValuesReply{} })
	register(OpGetIcValues, 0, func() body { return &GetIcValues{} })
	register(OpGetIcValuesReply, 0, func() body { return &GetIcValuesReply{} })
	register(OpSetIcFocus, 0, func() body { return &SetIcFocus{} })
	register(OpUnsetIcFocus, 0, func() body { return &UnsetIcFocus{} })
	register(OpSyncIc, 0, func() body { return &SyncIc{} })
	register(OpSyncIcReply, 0, func() body { return &SyncIcReply{} })
	register(OpSync, 0, func() body { return &Sync{} })
	register(OpSyncReply, 0, func() body { return &SyncReply{} })
	register(OpResetIc, 0, func() body { return &ResetIc{} })
	register(OpResetIcReply, 0, func() body { return &ResetIcReply{} })
}

// CreateIc creates an input context under an already-open input method.
type CreateIc struct {
	ImID         uint16
	IcAttributes []AttributeValue
}

func (m *CreateIc) Opcode() (uint8, uint8) { return OpCreateIc, 0 }

func (m *CreateIc) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	writeList(w, m.IcAttributes, func(w *Writer, a AttributeValue) { a.WriteTo(w) })
}

func (m *CreateIc) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcAttributes, err = readList(r, ReadAttributeValue)
	return err
}

// CreateIcReply hands back the freshly assigned ic_id.
type CreateIcReply struct {
	ImID uint16
	IcID uint16
}

func (m *CreateIcReply) Opcode() (uint8, uint8) { return OpCreateIcReply, 0 }
func (m *CreateIcReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *CreateIcReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// DestroyIc tears an input context down.
type DestroyIc struct {
	ImID uint16
	IcID uint16
}

func (m *DestroyIc) Opcode() (uint8, uint8) { return OpDestroyIc, 0 }
func (m *DestroyIc) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *DestroyIc) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// DestroyIcReply acknowledges DestroyIc.
type DestroyIcReply struct {
	ImID uint16
	IcID uint16
}

func (m *DestroyIcReply) Opcode() (uint8, uint8) { return OpDestroyIcReply, 0 }
func (m *DestroyIcReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *DestroyIcReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// SetIcValues updates input-context-scoped attributes (focus window,
// preedit/status attribute sub-lists, spot location, and so on).
type SetIcValues struct {
	ImID   uint16
	IcID   uint16
	Values []AttributeValue
}

func (m *SetIcValues) Opcode() (uint8, uint8) { return OpSetIcValues, 0 }

func (m *SetIcValues) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	writeList(w, m.Values, func(w *Writer, a AttributeValue) { a.WriteTo(w) })
}

func (m *SetIcValues) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.Values, err = readList(r, ReadAttributeValue)
	return err
}

// SetIcValuesReply acknowledges SetIcValues.
type SetIcValuesReply struct {
	ImID uint16
	IcID uint16
}

func (m *SetIcValuesReply) Opcode() (uint8, uint8) { return OpSetIcValuesReply, 0 }
func (m *SetIcValuesReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *SetIcValuesReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// GetIcValues requests the current values of the named ic attribute ids.
type GetIcValues struct {
	ImID         uint16
	IcID         uint16
	RequestedIDs []uint16
}

func (m *GetIcValues) Opcode() (uint8, uint8) { return OpGetIcValues, 0 }

func (m *GetIcValues) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	writeU16List(w, m.RequestedIDs)
}

func (m *GetIcValues) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.RequestedIDs, err = readU16List(r)
	return err
}

// GetIcValuesReply answers GetIcValues.
type GetIcValuesReply struct {
	ImID   uint16
	IcID   uint16
	Values []AttributeValue
}

func (m *GetIcValuesReply) Opcode() (uint8, uint8) { return OpGetIcValuesReply, 0 }

func (m *GetIcValuesReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	writeList(w, m.Values, func(w *Writer, a AttributeValue) { a.WriteTo(w) })
}

func (m *GetIcValuesReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.Values, err = readList(r, ReadAttributeValue)
	return err
}

// SetIcFocus marks an input context as having input focus.
type SetIcFocus struct {
	ImID uint16
	IcID uint16
}

func (m *SetIcFocus) Opcode() (uint8, uint8) { return OpSetIcFocus, 0 }
func (m *SetIcFocus) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *SetIcFocus) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// UnsetIcFocus marks an input context as having lost input focus.
type UnsetIcFocus struct {
	ImID uint16
	IcID uint16
}

func (m *UnsetIcFocus) Opcode() (uint8, uint8) { return OpUnsetIcFocus, 0 }
func (m *UnsetIcFocus) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *UnsetIcFocus) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// SyncIc asks the peer to confirm it has processed everything sent so
// far on this input context.
type SyncIc struct {
	ImID uint16
	IcID uint16
}

func (m *SyncIc) Opcode() (uint8, uint8) { return OpSyncIc, 0 }
func (m *SyncIc) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *SyncIc) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// SyncIcReply acknowledges SyncIc.
type SyncIcReply struct {
	ImID uint16
	IcID uint16
}

func (m *SyncIcReply) Opcode() (uint8, uint8) { return OpSyncIcReply, 0 }
func (m *SyncIcReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *SyncIcReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// Sync asks the peer to confirm it has processed everything sent so far
// on the whole input method, across every input context.
type Sync struct {
	ImID uint16
	IcID uint16
}

func (m *Sync) Opcode() (uint8, uint8) { return OpSync, 0 }
func (m *Sync) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *Sync) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// SyncReply acknowledges Sync.
type SyncReply struct {
	ImID uint16
	IcID uint16
}

func (m *SyncReply) Opcode() (uint8, uint8) { return OpSyncReply, 0 }
func (m *SyncReply) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *SyncReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// ResetIc clears an input context's preedit state and returns whatever
// text was left in composition, uncommitted.
type ResetIc struct {
	ImID uint16
	IcID uint16
}

func (m *ResetIc) Opcode() (uint8, uint8) { return OpResetIc, 0 }
func (m *ResetIc) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *ResetIc) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// ResetIcReply carries the preedit string that was left in composition
// at the time of the reset, if any.
type ResetIcReply struct {
	ImID          uint16
	IcID          uint16
	PreeditString XimString
}

func (m *ResetIcReply) Opcode() (uint8, uint8) { return OpResetIcReply, 0 }

func (m *ResetIcReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	WriteSTR(w, m.PreeditString)
}

func (m *ResetIcReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.PreeditString, err = ReadSTR(r)
	return err
}
