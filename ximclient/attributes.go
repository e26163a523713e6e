package ximclient

import (
	"fmt"

	"github.com/netrack/xim"
)

// AttributeBuilder accumulates typed attribute pushes against a
// dictionary (ic_attrs, or a nested list's own ic_attrs subset) and
// emits a wire-ready list<AttributeValue>.
type AttributeBuilder struct {
	dict   map[string]xim.Attr
	values []xim.AttributeValue
	err    error
}

// Push encodes raw bytes under the attribute named name, looked up in
// the builder's dictionary.
func (b *AttributeBuilder) Push(name string, raw []byte) *AttributeBuilder {
	if b.err != nil {
		return b
	}

	attr, ok := b.dict[name]
	if !ok {
		b.err = fmt.Errorf("ximclient: unknown attribute %q", name)
		return b
	}

	b.values = append(b.values, xim.AttributeValue{ID: attr.ID, Value: raw})
	return b
}

// PushUint32 encodes a native-endian uint32 value (window ids, input
// style masks, and similar fixed-width attributes).
func (b *AttributeBuilder) PushUint32(name string, v uint32) *AttributeBuilder {
	w := xim.NewWriter(0)
	w.WriteU32(v)
	return b.Push(name, w.Bytes())
}

// PushUint16 encodes a native-endian uint16 value.
func (b *AttributeBuilder) PushUint16(name string, v uint16) *AttributeBuilder {
	w := xim.NewWriter(0)
	w.WriteU16(v)
	return b.Push(name, w.Bytes())
}

// PushString encodes a raw byte string with no length prefix of its own
// (the enclosing AttributeValue already carries one).
func (b *AttributeBuilder) PushString(name string, s string) *AttributeBuilder {
	return b.Push(name, []byte(s))
}

// NestedList opens a sub-builder sharing the same dictionary, lets f
// populate it, and encodes its resulting list<AttributeValue> as the
// value of the named nested-list attribute. Per the wire format, a
// nested list's bytes are themselves a u16 byte-length prefix followed
// by the sequence of attribute values, mirroring every other
// length-prefixed list in the codec.
func (b *AttributeBuilder) NestedList(name string, f func(*AttributeBuilder)) *AttributeBuilder {
	if b.err != nil {
		return b
	}

	nested := &AttributeBuilder{dict: b.dict}
	f(nested)
	if nested.err != nil {
		b.err = nested.err
		return b
	}

	body := xim.NewWriter(2)
	for _, v := range nested.values {
		v.WriteTo(body)
	}

	w := xim.NewWriter(0)
	w.WriteU16(uint16(body.Len()))
	w.WriteRaw(body.Bytes())

	return b.Push(name, w.Bytes())
}

// Build returns the accumulated attribute values, or an error if any
// push referenced an attribute name absent from the dictionary.
func (b *AttributeBuilder) Build() ([]xim.AttributeValue, error) {
	return b.values, b.err
}
