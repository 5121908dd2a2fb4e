package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Message is the reflection surface a DAO needs from a record: its
// descriptor plus field access by name.
type Message interface {
	Descriptor() *MessageDescriptor
	// Has reports whether the field was explicitly set.
	Has(name string) bool
	// Get returns the field value, or Zero for an unset field.
	Get(name string) any
	// Set assigns a field. It fails for unknown fields.
	Set(name string, value any) error
	// Clear unsets a field.
	Clear(name string)
}

// Record is a dynamic Message backed by a map.
type Record struct {
	desc   *MessageDescriptor
	values map[string]any
}

// NewRecord returns an empty record of type desc.
func NewRecord(desc *MessageDescriptor) *Record {
	return &Record{desc: desc, values: make(map[string]any)}
}

func (r *Record) Descriptor() *MessageDescriptor { return r.desc }

func (r *Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r *Record) Get(name string) any {
	if v, ok := r.values[name]; ok {
		return v
	}
	fd, ok := r.desc.Field(name)
	if !ok {
		return nil
	}
	return Zero(fd)
}

func (r *Record) Set(name string, value any) error {
	if _, ok := r.desc.Field(name); !ok {
		return fmt.Errorf("message %s has no field %q", r.desc.Name, name)
	}
	r.values[name] = value
	return nil
}

func (r *Record) Clear(name string) {
	delete(r.values, name)
}

// MustSet is like Set but panics on an unknown field. It returns r for
// chaining.
func (r *Record) MustSet(name string, value any) *Record {
	if err := r.Set(name, value); err != nil {
		panic(err)
	}
	return r
}

// MarshalJSON writes the set fields in field-number order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for _, fd := range r.desc.Fields {
		v, ok := r.values[fd.Name]
		if !ok {
			continue
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		key, err := json.Marshal(fd.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(jsonValue(v))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.FullName(), err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%s{<%v>}", r.desc.Name, err)
	}
	return r.desc.Name + string(b)
}

// jsonValue renders enums by name and map entries as ordered pairs.
func jsonValue(v any) any {
	switch val := v.(type) {
	case EnumValue:
		return val.String()
	case []MapEntry:
		pairs := make([][2]any, len(val))
		for i, e := range val {
			pairs[i] = [2]any{jsonValue(e.Key), jsonValue(e.Value)}
		}
		return pairs
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = jsonValue(e)
		}
		return out
	default:
		return v
	}
}
