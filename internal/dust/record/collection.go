package record

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// Encoding is the form an embedded collection takes inside its record.
type Encoding int

const (
	// EncodingInline stores entries as plain JSON values.
	EncodingInline Encoding = iota
	// EncodingString stores entries as a JSON document inside a string.
	EncodingString
)

// Collection is an embedded list of input or output entries. It remembers whether it
// was a string or inline value and a single object or an array, and writes itself back
// the same way.
type Collection struct {
	items    []interface{}
	encoding Encoding
	single   bool
}

// NewCollection builds a collection in the given form.
func NewCollection(encoding Encoding, single bool, entries ...Entry) *Collection {
	items := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.m)
	}
	return &Collection{items: items, encoding: encoding, single: single}
}

// ParseCollection decodes a collection member value.
func ParseCollection(v interface{}) (*Collection, error) {
	switch t := v.(type) {
	case nil:
		return &Collection{encoding: EncodingInline}, nil
	case string:
		return parseEncodedCollection(t)
	case *orderedmap.OrderedMap:
		return &Collection{items: []interface{}{t}, encoding: EncodingInline, single: true}, nil
	case orderedmap.OrderedMap:
		return &Collection{items: []interface{}{normalize(t)}, encoding: EncodingInline, single: true}, nil
	case []interface{}:
		return &Collection{items: normalize(t).([]interface{}), encoding: EncodingInline}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedCollection, v)
	}
}

func parseEncodedCollection(s string) (*Collection, error) {
	data := bytes.TrimSpace([]byte(s))
	if len(data) == 0 {
		return &Collection{encoding: EncodingString}, nil
	}
	switch data[0] {
	case '{':
		m, err := decodeObject(data)
		if err != nil {
			return nil, fmt.Errorf("decode embedded entry: %w", err)
		}
		return &Collection{items: []interface{}{m}, encoding: EncodingString, single: true}, nil
	case '[':
		items, err := decodeArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode embedded entries: %w", err)
		}
		return &Collection{items: items, encoding: EncodingString}, nil
	default:
		return nil, fmt.Errorf("%w: embedded value starts with %q", ErrUnsupportedCollection, data[0])
	}
}

// Encoding returns the collection's storage form.
func (c *Collection) Encoding() Encoding {
	return c.encoding
}

// Entries returns the object entries in order.
func (c *Collection) Entries() []Entry {
	entries := make([]Entry, 0, len(c.items))
	for _, item := range c.items {
		if m, ok := item.(*orderedmap.OrderedMap); ok {
			entries = append(entries, Entry{object{m: m}})
		}
	}
	return entries
}

// Value renders the collection into the member value to store in the record.
func (c *Collection) Value() (interface{}, error) {
	var v interface{} = c.items
	if c.single {
		if len(c.items) == 0 {
			v = []interface{}{}
		} else {
			v = c.items[0]
		}
	} else if c.items == nil {
		v = []interface{}{}
	}
	if c.encoding == EncodingInline {
		return v, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode embedded entries: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Entry is one input or output inside an embedded collection.
type Entry struct {
	object
}

// NewEntry returns an empty entry.
func NewEntry() Entry {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return Entry{object{m: m}}
}

// IsInput reports whether the entry describes a spent input.
func (e Entry) IsInput() bool {
	return e.Has(FieldInputHash)
}

// IsOutput reports whether the entry describes a created output.
func (e Entry) IsOutput() bool {
	return e.Has(FieldOutputHash)
}

// Address returns the entry's address from inputHash, outputHash or address, in that order.
func (e Entry) Address() string {
	for _, key := range []string{FieldInputHash, FieldOutputHash, FieldAddress} {
		if s, ok := e.String(key); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	if spk, ok := e.Object(FieldScriptPubKey); ok {
		if s, ok := spk.String(FieldAddress); ok {
			return s
		}
	}
	return ""
}

// ScriptPubKey returns the locking script hex and asm. scriptPubKey may be an object
// or a bare hex string.
func (e Entry) ScriptPubKey() (hexScript, asm string) {
	v, ok := e.Get(FieldScriptPubKey)
	if !ok {
		return "", ""
	}
	if s, ok := v.(string); ok {
		return s, ""
	}
	if spk, ok := e.Object(FieldScriptPubKey); ok {
		hexScript, _ = spk.String(FieldHex)
		asm, _ = spk.String(FieldAsm)
	}
	return hexScript, asm
}

// ScriptSig returns the unlocking script hex and asm of an input.
func (e Entry) ScriptSig() (hexScript, asm string) {
	sig, ok := e.Object(FieldScriptSig)
	if !ok {
		return "", ""
	}
	hexScript, _ = sig.String(FieldHex)
	asm, _ = sig.String(FieldAsm)
	return hexScript, asm
}

// Witness decodes the txinwitness stack. A missing or empty stack returns nil.
func (e Entry) Witness() ([][]byte, error) {
	v, ok := e.Get(FieldWitness)
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: unexpected %T", FieldWitness, v)
	}
	stack := make([][]byte, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: unexpected %T", FieldWitness, i, item)
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", FieldWitness, i, err)
		}
		stack = append(stack, b)
	}
	if len(stack) == 0 {
		return nil, nil
	}
	return stack, nil
}
