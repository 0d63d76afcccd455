package uci

import "fmt"

/*
ParamDef declares the length policy for one TLV tag:

  - len(Lengths) == 1: a single fixed length.
  - len(Lengths) == 2: two alternative lengths, disambiguated at decode
    time by the wire length byte (e.g. a 16-byte vs. 32-byte session key,
    or an 11-byte vs. 13-byte packed anchor location).

A zero Lengths slice means "variable tail" — the whole remaining payload,
length inferred from the outer frame rather than declared here.
*/
type ParamDef struct {
	Tag     byte
	Name    string
	Lengths []int
}

// ParamTable is an ordered declaration of every tag a message family knows
// about. Tables are built once at init and extended by addins (addin.go).
type ParamTable struct {
	Name  string
	defs  map[byte]ParamDef
	order []byte
}

// NewParamTable builds an empty, named table.
func NewParamTable(name string) *ParamTable {
	return &ParamTable{Name: name, defs: make(map[byte]ParamDef)}
}

// Add registers one tag definition, preserving declaration order for
// documentation/introspection purposes.
func (t *ParamTable) Add(d ParamDef) {
	if _, exists := t.defs[d.Tag]; !exists {
		t.order = append(t.order, d.Tag)
	}
	t.defs[d.Tag] = d
}

// Lookup returns the declared def for a tag, if any.
func (t *ParamTable) Lookup(tag byte) (ParamDef, bool) {
	d, ok := t.defs[tag]
	return d, ok
}

// Extend merges another table's tags into this one, addin-style.
func (t *ParamTable) Extend(other *ParamTable) {
	for _, tag := range other.order {
		t.Add(other.defs[tag])
	}
}

// elementLength picks the length to use when encoding a scalar of byte
// length n, applying the "length" vs "length[1] if len(v)==32"
// alternative-length disambiguation rule (ground truth: core.py
// tvs_to_bytes: `lengths[1] if len(v) == 32 else lengths[0]`).
func elementLength(lengths []int, valueByteLen int) int {
	if len(lengths) == 2 && valueByteLen == 32 {
		return lengths[1]
	}
	return lengths[0]
}

// TLVItem is one decoded (or to-be-encoded) tag/length/value triple.
// Exactly one of Value, List, or Bytes carries the payload: Value for a
// scalar no wider than 8 bytes, List for a variable-element list of such
// scalars, Bytes for wide opaque values (keys, packed locations).
type TLVItem struct {
	Tag     byte
	Length  int
	Value   uint64
	List    []uint64
	Bytes   []byte
	IsList  bool
	Unknown bool
}

// NewScalarTLV builds a scalar item ready for EncodeTVs.
func NewScalarTLV(tag byte, value uint64) TLVItem {
	return TLVItem{Tag: tag, Value: value}
}

// NewListTLV builds a variable-element list item.
func NewListTLV(tag byte, values []uint64) TLVItem {
	return TLVItem{Tag: tag, List: values, IsList: true}
}

// NewBytesTLV builds an opaque byte-string item, for tags wider than 8
// bytes (session keys, packed anchor locations). The byte length must
// match one of the tag's declared lengths exactly.
func NewBytesTLV(tag byte, value []byte) TLVItem {
	return TLVItem{Tag: tag, Bytes: value}
}

// EncodeTVs implements tvs_to_bytes: a 1-byte count followed by
// (tag, length, value) triples, little-endian values, grounded on
// original_source/new_python_script/uci/core.py's tvs_to_bytes.
func EncodeTVs(defs *ParamTable, items []TLVItem) ([]byte, error) {
	if len(items) > 0xff {
		return nil, NewParameterError("too many TLV items for a 1-byte count")
	}
	out := []byte{byte(len(items))}
	for _, item := range items {
		def, ok := defs.Lookup(item.Tag)
		if !ok {
			return nil, NewParameterError(fmt.Sprintf("unknown tag 0x%02x in table %s", item.Tag, defs.Name))
		}
		if len(def.Lengths) == 0 {
			return nil, NewParameterError(fmt.Sprintf("tag 0x%02x is variable-tail, cannot encode as a TLV element", item.Tag))
		}
		out = append(out, item.Tag)
		switch {
		case item.Bytes != nil:
			if !lengthDeclared(def.Lengths, len(item.Bytes)) {
				return nil, NewParameterError(fmt.Sprintf(
					"tag 0x%02x: byte value length %d does not match declared lengths %v", item.Tag, len(item.Bytes), def.Lengths))
			}
			out = append(out, byte(len(item.Bytes)))
			out = append(out, item.Bytes...)
		case item.IsList:
			elemLen := def.Lengths[0]
			total := len(item.List) * elemLen
			if total > 0xff {
				return nil, NewParameterError(fmt.Sprintf("tag 0x%02x list too long to encode", item.Tag))
			}
			out = append(out, byte(total))
			for _, v := range item.List {
				b := make([]byte, elemLen)
				littleEndianPutUint(b, v)
				out = append(out, b...)
			}
		default:
			length := elementLength(def.Lengths, byteLenOf(item.Value))
			if length > 0xff {
				return nil, NewParameterError(fmt.Sprintf("tag 0x%02x declared length %d too large", item.Tag, length))
			}
			out = append(out, byte(length))
			b := make([]byte, length)
			littleEndianPutUint(b, item.Value)
			out = append(out, b...)
		}
	}
	return out, nil
}

func lengthDeclared(lengths []int, n int) bool {
	for _, l := range lengths {
		if l == n {
			return true
		}
	}
	return false
}

func byteLenOf(v uint64) int {
	n := 0
	for v > 0 {
		n++
		v >>= 8
	}
	if n == 0 {
		return 1
	}
	return n
}

// DecodeTLVs implements tlvs_from_bytes: unknown tags are preserved at
// their wire length (a scalar, or Bytes when wider than 8 bytes) rather
// than rejected — every item is returned,
// the unknown ones flagged, and decoding never raises on an unrecognized
// tag.
func DecodeTLVs(defs *ParamTable, payload []byte) ([]TLVItem, error) {
	buf := NewBuffer(payload)
	count, err := buf.PopUint(1)
	if err != nil {
		return nil, NewParameterError("short TLV payload: missing item count")
	}
	items := make([]TLVItem, 0, count)
	for i := uint64(0); i < count; i++ {
		tag, err := buf.PopUint(1)
		if err != nil {
			return nil, NewParameterError("short TLV payload: missing tag")
		}
		wireLen, err := buf.PopUint(1)
		if err != nil {
			return nil, NewParameterError("short TLV payload: missing length")
		}
		def, known := defs.Lookup(byte(tag))
		declaredLen := int(wireLen)
		if known && len(def.Lengths) > 0 {
			if len(def.Lengths) == 1 {
				declaredLen = def.Lengths[0]
			} else {
				declaredLen = int(wireLen)
				for _, alt := range def.Lengths {
					if alt == int(wireLen) {
						declaredLen = alt
						break
					}
				}
			}
		}
		raw, err := buf.Pop(int(wireLen))
		if err != nil {
			return nil, NewParameterError(fmt.Sprintf("short TLV payload for tag 0x%02x", tag))
		}
		item := TLVItem{Tag: byte(tag), Length: declaredLen, Unknown: !known}
		switch {
		case declaredLen == int(wireLen):
			if declaredLen > 8 {
				item.Bytes = append([]byte{}, raw...)
			} else {
				item.Value = decodeLEUint(raw)
			}
		case int(wireLen)%declaredLen == 0 && declaredLen > 0:
			n := int(wireLen) / declaredLen
			item.IsList = true
			item.List = make([]uint64, n)
			for j := 0; j < n; j++ {
				item.List[j] = decodeLEUint(raw[j*declaredLen : (j+1)*declaredLen])
			}
		default:
			return nil, NewParameterError(fmt.Sprintf("tag 0x%02x: wire length %d not a multiple of declared length %d", tag, wireLen, declaredLen))
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeLEUint(raw []byte) uint64 {
	var v uint64
	for i := len(raw) - 1; i >= 0; i-- {
		v = v<<8 | uint64(raw[i])
	}
	return v
}
