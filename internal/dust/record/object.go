package record

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/dustinsight7000/pkg/safe"
	"github.com/iancoleman/orderedmap"
)

// object is a JSON object whose member order survives a decode/encode round trip.
type object struct {
	m *orderedmap.OrderedMap
}

// Has reports whether the member exists.
func (o object) Has(key string) bool {
	_, ok := o.m.Get(key)
	return ok
}

// Get returns the raw member value.
func (o object) Get(key string) (interface{}, bool) {
	return o.m.Get(key)
}

// Set adds or replaces a member; new members are appended.
func (o object) Set(key string, value interface{}) {
	o.m.Set(key, normalize(value))
}

// Keys returns the member names in document order.
func (o object) Keys() []string {
	return o.m.Keys()
}

// String returns a string member.
func (o object) String(key string) (string, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Float returns a numeric member given either as a JSON number or a numeric string.
func (o object) Float(key string) (float64, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// Int returns an integral numeric member.
func (o object) Int(key string) (int, bool) {
	f, ok := o.Float(key)
	if !ok {
		return 0, false
	}
	n, err := safe.Int(f)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Object returns a nested object member.
func (o object) Object(key string) (Entry, bool) {
	v, ok := o.m.Get(key)
	if !ok {
		return Entry{}, false
	}
	m, ok := v.(*orderedmap.OrderedMap)
	if !ok {
		return Entry{}, false
	}
	return Entry{object{m: m}}, true
}

// InsertAfter sets key to value and moves it directly after anchor. When anchor is
// missing the member is appended.
func (o object) InsertAfter(anchor, key string, value interface{}) {
	o.Set(key, value)
	if _, ok := o.m.Get(anchor); !ok || anchor == key {
		return
	}
	o.m.SortKeys(func(keys []string) {
		reordered := make([]string, 0, len(keys))
		for _, k := range keys {
			if k == key {
				continue
			}
			reordered = append(reordered, k)
			if k == anchor {
				reordered = append(reordered, key)
			}
		}
		copy(keys, reordered)
	})
}

// Clone returns a deep copy of the object as an Entry.
func (o object) Clone() Entry {
	return Entry{object{m: cloneMap(o.m)}}
}

func cloneMap(m *orderedmap.OrderedMap) *orderedmap.OrderedMap {
	c := orderedmap.New()
	c.SetEscapeHTML(false)
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		c.Set(k, cloneValue(v))
	}
	return c
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case *orderedmap.OrderedMap:
		return cloneMap(t)
	case []interface{}:
		c := make([]interface{}, len(t))
		for i := range t {
			c[i] = cloneValue(t[i])
		}
		return c
	default:
		return v
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// normalize turns nested orderedmap values into pointers so that mutations made
// through accessors are visible to the enclosing document.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case orderedmap.OrderedMap:
		m := t
		normalizeMap(&m)
		return &m
	case *orderedmap.OrderedMap:
		normalizeMap(t)
		return t
	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		return v
	}
}

func normalizeMap(m *orderedmap.OrderedMap) {
	m.SetEscapeHTML(false)
	for _, k := range m.Keys() {
		v, _ := m.Get(k)
		m.Set(k, normalize(v))
	}
}
