// Package record reads and rewrites the JSON transaction snapshots analysed by the dust tools.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

const maxExactInteger = 1 << 53

var (
	// ErrUnsupportedDocument is returned when a file holds neither an object nor an array.
	ErrUnsupportedDocument = errors.New("record: unsupported document")
	// ErrUnsupportedCollection is returned when an embedded collection is not an entry or entry list.
	ErrUnsupportedCollection = errors.New("record: unsupported collection")
)

// Document is a decoded JSON file: a single transaction record or an array of them.
type Document struct {
	items []interface{}
	array bool
}

// Decode parses a document. Array elements that are not objects are kept verbatim
// and are not exposed as records.
func Decode(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUnsupportedDocument)
	}

	switch data[0] {
	case '{':
		m, err := decodeObject(data)
		if err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return &Document{items: []interface{}{m}}, nil
	case '[':
		items, err := decodeArray(data)
		if err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		return &Document{items: items, array: true}, nil
	default:
		return nil, fmt.Errorf("%w: starts with %q", ErrUnsupportedDocument, data[0])
	}
}

// decodeObject decodes a JSON object keeping member order. orderedmap reads every
// number as float64, so integers beyond 2^53 are restored from a json.Number decode.
func decodeObject(data []byte) (*orderedmap.OrderedMap, error) {
	m := orderedmap.New()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}
	normalizeMap(m)
	if !hasLongDigitRun(data) {
		return m, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var exact interface{}
	if err := dec.Decode(&exact); err != nil {
		return nil, err
	}
	keepLargeIntegers(m, exact)
	return m, nil
}

func keepLargeIntegers(v, exact interface{}) interface{} {
	switch t := v.(type) {
	case *orderedmap.OrderedMap:
		members, ok := exact.(map[string]interface{})
		if !ok {
			return v
		}
		for _, k := range t.Keys() {
			cur, _ := t.Get(k)
			t.Set(k, keepLargeIntegers(cur, members[k]))
		}
	case []interface{}:
		items, ok := exact.([]interface{})
		if !ok || len(items) != len(t) {
			return v
		}
		for i := range t {
			t[i] = keepLargeIntegers(t[i], items[i])
		}
	case float64:
		if n, ok := exact.(json.Number); ok && isLargeInteger(n) {
			return n
		}
	}
	return v
}

func isLargeInteger(n json.Number) bool {
	if strings.ContainsAny(string(n), ".eE") {
		return false
	}
	i, err := n.Int64()
	return err != nil || i > maxExactInteger || i < -maxExactInteger
}

// hasLongDigitRun reports whether data contains 16 or more consecutive digits, the
// shortest literal that can exceed 2^53.
func hasLongDigitRun(data []byte) bool {
	run := 0
	for _, b := range data {
		if b >= '0' && b <= '9' {
			run++
			if run >= 16 {
				return true
			}
			continue
		}
		run = 0
	}
	return false
}

func decodeArray(data []byte) ([]interface{}, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]interface{}, 0, len(raw))
	for i, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) == 0 || r[0] != '{' {
			items = append(items, r)
			continue
		}
		m, err := decodeObject(r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, m)
	}
	return items, nil
}

// IsArray reports whether the document was an array of records.
func (d *Document) IsArray() bool {
	return d.array
}

// Records returns the transaction records in document order.
func (d *Document) Records() []Record {
	records := make([]Record, 0, len(d.items))
	for _, item := range d.items {
		if m, ok := item.(*orderedmap.OrderedMap); ok {
			records = append(records, Record{object{m: m}})
		}
	}
	return records
}

// Encode renders the document with two-space indentation, keeping member order and
// the array/object shape it was decoded with.
func (d *Document) Encode() ([]byte, error) {
	var v interface{} = d.items
	if !d.array {
		if len(d.items) == 0 {
			return nil, fmt.Errorf("%w: no record", ErrUnsupportedDocument)
		}
		v = d.items[0]
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Record is a single transaction record.
type Record struct {
	object
}

// NewRecord returns an empty record.
func NewRecord() Record {
	m := orderedmap.New()
	m.SetEscapeHTML(false)
	return Record{object{m: m}}
}

// Collection decodes the embedded entry collection stored under key. The boolean is
// false when the member is absent.
func (r Record) Collection(key string) (*Collection, bool, error) {
	v, ok := r.m.Get(key)
	if !ok {
		return nil, false, nil
	}
	c, err := ParseCollection(v)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", key, err)
	}
	return c, true, nil
}

// SetCollection stores c under key in the encoding form it was read with.
func (r Record) SetCollection(key string, c *Collection) error {
	v, err := c.Value()
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	r.Set(key, v)
	return nil
}

// SubTransactions returns the attacker sub-transactions listed in sent_utxo_uxns.
func (r Record) SubTransactions() []Record {
	v, ok := r.m.Get(FieldSentUTXOs)
	if !ok {
		return nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}
	subs := make([]Record, 0, len(list))
	for _, item := range list {
		if m, ok := item.(*orderedmap.OrderedMap); ok {
			subs = append(subs, Record{object{m: m}})
		}
	}
	return subs
}

// HasSubTransactions reports whether sent_utxo_uxns is present as a list.
func (r Record) HasSubTransactions() bool {
	v, ok := r.m.Get(FieldSentUTXOs)
	if !ok {
		return false
	}
	_, ok = v.([]interface{})
	return ok
}

// IsDustAttack reports whether the record was kept by the fee rate filtration.
func (r Record) IsDustAttack() bool {
	v, _ := r.String(FieldDustAttacker)
	return v == DustAttackerYes
}

// AsEntry views the record itself as an entry, for snapshots that list UTXOs at the top level.
func (r Record) AsEntry() Entry {
	return Entry(r)
}
