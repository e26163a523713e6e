package xim

func init() {
	register(OpError, 0, func() body { return &Error{} })
	register(OpForwardEvent, 0, func() body { return &ForwardEvent{} })
	register(OpCommit, 0, func() body { return &Commit{} })
}

// Error reports a failure of the operation identified by ImID/IcID/Type;
// the engine surfaces it to the host without tearing the session down.
type Error struct {
	ImID   uint16
	IcID   uint16
	Flag   uint16
	Code   uint16
	Type   uint16
	Detail XimString
}

func (m *Error) Opcode() (uint8, uint8) { return OpError, 0 }

func (m *Error) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU16(m.Flag)
	w.WriteU16(m.Code)
	w.WriteU16(uint16(len(m.Detail)))
	w.WriteU16(m.Type)
	w.WriteRaw(m.Detail)
	w.WritePad4()
}

func (m *Error) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Flag, err = r.U16(); err != nil {
		return err
	}
	if m.Code, err = r.U16(); err != nil {
		return err
	}
	n, err := r.U16()
	if err != nil {
		return err
	}
	if m.Type, err = r.U16(); err != nil {
		return err
	}

	b, err := r.Consume(int(n))
	if err != nil {
		return err
	}
	m.Detail = XimString(append([]byte(nil), b...))

	return r.Pad4()
}

// ForwardEvent relays a raw X KeyPress/KeyRelease event (32 bytes,
// verbatim) between client and server, tagged with a serial number the
// sender increments on every call.
type ForwardEvent struct {
	ImID   uint16
	IcID   uint16
	Flag   uint16
	Serial uint16
	XEvent [32]byte
}

func (m *ForwardEvent) Opcode() (uint8, uint8) { return OpForwardEvent, 0 }

func (m *ForwardEvent) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU16(m.Flag)
	w.WriteU16(m.Serial)
	w.WriteRaw(m.XEvent[:])
}

func (m *ForwardEvent) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Flag, err = r.U16(); err != nil {
		return err
	}
	if m.Serial, err = r.U16(); err != nil {
		return err
	}

	b, err := r.Consume(32)
	if err != nil {
		return err
	}
	copy(m.XEvent[:], b)

	return nil
}

// Commit delivers finalized text or a composed keysym to the
// application. Data's concrete type is selected by Flags: bit 0 means a
// keysym is present, bit 2 means committed bytes are present, and both
// may be set together.
type Commit struct {
	ImID  uint16
	IcID  uint16
	Flags uint16
	Data  CommitData
}

func (m *Commit) Opcode() (uint8, uint8) { return OpCommit, 0 }

func (m *Commit) WriteBody(w *Writer) {
	w.WriteU16(m.ImID)
	w.WriteU16(m.IcID)
	w.WriteU16(m.Flags)
	w.WriteU16(0) // pad
	if m.Data != nil {
		m.Data.WriteTo(w)
	}
}

func (m *Commit) ReadBody(r *Reader) error {
	var err error
	if m.ImID, err = r.U16(); err != nil {
		return err
	}
	if m.IcID, err = r.U16(); err != nil {
		return err
	}
	if m.Flags, err = r.U16(); err != nil {
		return err
	}
	if _, err = r.U16(); err != nil { // pad
		return err
	}

	m.Data, err = ReadCommitData(r, m.Flags)
	return err
}
