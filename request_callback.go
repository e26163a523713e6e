package xim

func init() {
	register(OpPreeditStart, 0, func() body { return &PreeditStart{} })
	register(OpPreeditStartReply, 0, func() body { return &PreeditStartReply{} })
	register(OpPreeditDraw, 0, func() body { return &PreeditDraw{} })
	register(OpPreeditCaret, 0, func() body { return &PreeditCaret{} })
	register(OpPreeditCaretReply, 0, func() body { return &PreeditCaretReply{} })
	register(OpPreeditDone, 0, func() body { return &PreeditDone{} })
	register(OpStatusStart, 0, func() body { return &StatusStart{} })
	register(OpStatusDraw, 0, func() body { return &StatusDraw{} })
	register(OpStatusDone, 0, func() body { return &StatusDone{} })
	register(OpStrConversion, 0, func() body { return &StrConversion{} })
	register(OpStrConversionReply, 0, func() body { return &StrConversionReply{} })
}

// PreeditStart asks the client to prepare an on-the-spot preedit area.
type PreeditStart struct {
	ImID uint16
	IcID uint16
}

func (m *PreeditStart) Opcode() (uint8, uint8) { return OpPreeditStart, 0 }
func (m *PreeditStart) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *PreeditStart) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// PreeditStartReply answers PreeditStart with the maximum number of
// preedit bytes the client is willing to accept (-1 means unlimited).
type PreeditStartReply struct {
	ImID        uint16
	IcID        uint16
	ReturnValue int32
}

func (m *PreeditStartReply) Opcode() (uint8, uint8) { return OpPreeditStartReply, 0 }

func (m *PreeditStartReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteI32(m.ReturnValue)
}

func (m *PreeditStartReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.ReturnValue, err = r.I32()
	return err
}

// PreeditDraw replaces a span of the preedit string and its per-rune
// feedback (underline, reverse video, and so on).
type PreeditDraw struct {
	ImID          uint16
	IcID          uint16
	Caret         int32
	ChgFirst      int32
	ChgLength     int32
	Status        int32
	PreeditString XimString
	Feedback      []uint32
}

func (m *PreeditDraw) Opcode() (uint8, uint8) { return OpPreeditDraw, 0 }

func (m *PreeditDraw) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteI32(m.Caret)
	w.WriteI32(m.ChgFirst)
	w.WriteI32(m.ChgLength)
	w.WriteI32(m.Status)
	WriteSTRINGPadded(w, m.PreeditString)
	writeU32List(w, m.Feedback)
}

func (m *PreeditDraw) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Caret, err = r.I32(); err != nil {
		return err
	}
	if m.ChgFirst, err = r.I32(); err != nil {
		return err
	}
	if m.ChgLength, err = r.I32(); err != nil {
		return err
	}
	if m.Status, err = r.I32(); err != nil {
		return err
	}
	if m.PreeditString, err = ReadSTRINGPadded(r); err != nil {
		return err
	}
	m.Feedback, err = readU32List(r)
	return err
}

// PreeditCaret moves (or queries) the preedit caret position.
type PreeditCaret struct {
	ImID      uint16
	IcID      uint16
	Position  int32
	Direction uint32
	Style     uint32
}

func (m *PreeditCaret) Opcode() (uint8, uint8) { return OpPreeditCaret, 0 }

func (m *PreeditCaret) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteI32(m.Position)
	w.WriteU32(m.Direction)
	w.WriteU32(m.Style)
}

func (m *PreeditCaret) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Position, err = r.I32(); err != nil {
		return err
	}
	if m.Direction, err = r.U32(); err != nil {
		return err
	}
	m.Style, err = r.U32()
	return err
}

// PreeditCaretReply answers PreeditCaret with the caret's resulting
// position.
type PreeditCaretReply struct {
	ImID     uint16
	IcID     uint16
	Position int32
}

func (m *PreeditCaretReply) Opcode() (uint8, uint8) { return OpPreeditCaretReply, 0 }

func (m *PreeditCaretReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteI32(m.Position)
}

func (m *PreeditCaretReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.Position, err = r.I32()
	return err
}

// PreeditDone tells the client the server has finished with the preedit
// area.
type PreeditDone struct {
	ImID uint16
	IcID uint16
}

func (m *PreeditDone) Opcode() (uint8, uint8) { return OpPreeditDone, 0 }
func (m *PreeditDone) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *PreeditDone) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// StatusStart asks the client to prepare its status area.
type StatusStart struct {
	ImID uint16
	IcID uint16
}

func (m *StatusStart) Opcode() (uint8, uint8) { return OpStatusStart, 0 }
func (m *StatusStart) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *StatusStart) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// StatusDraw carries the status text (and per-rune feedback) to show in
// the status area, unless Type indicates a bitmap is being drawn
// instead, in which case StatusString/Feedback are empty.
type StatusDraw struct {
	ImID         uint16
	IcID         uint16
	Type         uint32
	StatusString XimString
	Feedback     []uint32
}

func (m *StatusDraw) Opcode() (uint8, uint8) { return OpStatusDraw, 0 }

func (m *StatusDraw) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU32(m.Type)
	WriteSTRINGPadded(w, m.StatusString)
	writeU32List(w, m.Feedback)
}

func (m *StatusDraw) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Type, err = r.U32(); err != nil {
		return err
	}
	if m.StatusString, err = ReadSTRINGPadded(r); err != nil {
		return err
	}
	m.Feedback, err = readU32List(r)
	return err
}

// StatusDone tells the client the server has finished with the status
// area.
type StatusDone struct {
	ImID uint16
	IcID uint16
}

func (m *StatusDone) Opcode() (uint8, uint8) { return OpStatusDone, 0 }
func (m *StatusDone) WriteBody(w *Writer)    { w.WriteU16(m.ImID); w.WriteU16(m.IcID) }
func (m *StatusDone) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	m.IcID, err = r.U16()
	return err
}

// StrConversion asks the client to hand over a span of text surrounding
// the edit point for the server to convert (used by over-the-spot
// reconversion).
type StrConversion struct {
	ImID      uint16
	IcID      uint16
	Position  int32
	Direction uint32
	Operation uint16
	Factor    uint16
	TextType  uint16
}

func (m *StrConversion) Opcode() (uint8, uint8) { return OpStrConversion, 0 }

func (m *StrConversion) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteI32(m.Position)
	w.WriteU32(m.Direction)
	w.WriteU16(m.Operation)
	w.WriteU16(m.Factor)
	w.WriteU16(m.TextType)
	w.WriteU16(0) // pad
}

func (m *StrConversion) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Position, err = r.I32(); err != nil {
		return err
	}
	if m.Direction, err = r.U32(); err != nil {
		return err
	}
	if m.Operation, err = r.U16(); err != nil {
		return err
	}
	if m.Factor, err = r.U16(); err != nil {
		return err
	}
	if m.TextType, err = r.U16(); err != nil {
		return err
	}
	_, err = r.U16() // pad
	return err
}

// StrConversionReply carries the converted text back to the client.
type StrConversionReply struct {
	ImID uint16
	IcID uint16
	Text XimString
}

func (m *StrConversionReply) Opcode() (uint8, uint8) { return OpStrConversionReply, 0 }

func (m *StrConversionReply) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	WriteSTRINGPadded(w, m.Text)
}

func (m *StrConversionReply) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	m.Text, err = ReadSTRINGPadded(r)
	return err
}
