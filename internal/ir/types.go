package ir

import (
	"fmt"
	"slices"
)

// FieldType is the semantic type of a message field.
type FieldType int

const (
	TypeInvalid FieldType = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeFloat
	TypeDouble
	TypeString
	TypeBytes
	TypeEnum
	TypeMessage
	TypeMap
)

var fieldTypeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeInt32:   "int32",
	TypeInt64:   "int64",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeEnum:    "enum",
	TypeMessage: "message",
	TypeMap:     "map",
}

func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
	return fieldTypeNames[t]
}

// ParseFieldType maps a schema type name to its FieldType.
func ParseFieldType(name string) (FieldType, bool) {
	for t, n := range fieldTypeNames {
		if n == name && FieldType(t) != TypeInvalid {
			return FieldType(t), true
		}
	}
	return TypeInvalid, false
}

// Scalar reports whether values of t fit in a single column without
// encoding.
func (t FieldType) Scalar() bool {
	switch t {
	case TypeBool, TypeInt32, TypeInt64, TypeFloat, TypeDouble, TypeString, TypeBytes, TypeEnum:
		return true
	default:
		return false
	}
}

func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FieldType) UnmarshalText(text []byte) error {
	ft, ok := ParseFieldType(string(text))
	if !ok {
		return fmt.Errorf("unknown field type %q", text)
	}
	*t = ft
	return nil
}

// EnumValueDescriptor is one named number of an enum.
type EnumValueDescriptor struct {
	Name   string `json:"name"`
	Number int32  `json:"number"`
}

// EnumDescriptor is a named, closed set of numbers. Values are ordered by
// number.
type EnumDescriptor struct {
	Name   string                `json:"name"`
	Values []EnumValueDescriptor `json:"values"`
}

// ByNumber finds the value with number n.
func (e *EnumDescriptor) ByNumber(n int32) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Number == n {
			return EnumValue{Name: v.Name, Number: v.Number}, true
		}
	}
	return EnumValue{}, false
}

// ByName finds the value called name.
func (e *EnumDescriptor) ByName(name string) (EnumValue, bool) {
	for _, v := range e.Values {
		if v.Name == name {
			return EnumValue{Name: v.Name, Number: v.Number}, true
		}
	}
	return EnumValue{}, false
}

// Default returns the value with the lowest number.
func (e *EnumDescriptor) Default() EnumValue {
	if len(e.Values) == 0 {
		return EnumValue{}
	}
	v := e.Values[0]
	return EnumValue{Name: v.Name, Number: v.Number}
}

// FieldDescriptor describes one field of a message.
type FieldDescriptor struct {
	Name       string    `json:"name"`
	Number     int32     `json:"number"`
	Type       FieldType `json:"type"`
	Repeated   bool      `json:"repeated,omitempty"`
	PrimaryKey bool      `json:"primary_key,omitempty"`

	// EnumType is set for TypeEnum fields and map keys/values of enum type.
	EnumType *EnumDescriptor `json:"-"`
	EnumName string          `json:"enum,omitempty"`

	// MessageName names the nested record type of a TypeMessage field.
	MessageName string `json:"message,omitempty"`

	// MapKey and MapValue are set for TypeMap fields.
	MapKey   *FieldDescriptor `json:"key,omitempty"`
	MapValue *FieldDescriptor `json:"value,omitempty"`

	// Parent is the full name of the owning message.
	Parent string `json:"-"`
}

// IsMap reports whether the field is a key/value map.
func (f *FieldDescriptor) IsMap() bool { return f.Type == TypeMap }

// FullName returns Message.field, or the bare name when the field has no
// parent.
func (f *FieldDescriptor) FullName() string {
	if f.Parent == "" {
		return f.Name
	}
	return f.Parent + "." + f.Name
}

// MessageDescriptor describes a record type and the table it maps to.
type MessageDescriptor struct {
	Name   string             `json:"name"`
	Table  string             `json:"table"`
	Fields []*FieldDescriptor `json:"fields"`

	byName map[string]*FieldDescriptor
}

// NewMessageDescriptor orders fields by number and indexes them by name. A
// blank table selects TableName(name). Duplicate names or numbers fail.
func NewMessageDescriptor(name, table string, fields []*FieldDescriptor) (*MessageDescriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("message name is empty")
	}
	if table == "" {
		table = TableName(name)
	}
	sorted := slices.Clone(fields)
	slices.SortFunc(sorted, func(a, b *FieldDescriptor) int { return int(a.Number) - int(b.Number) })

	md := &MessageDescriptor{
		Name:   name,
		Table:  table,
		Fields: sorted,
		byName: make(map[string]*FieldDescriptor, len(sorted)),
	}
	var pk *FieldDescriptor
	for i, fd := range sorted {
		if fd.Name == "" {
			return nil, fmt.Errorf("message %s: field %d has no name", name, fd.Number)
		}
		if fd.Number <= 0 {
			return nil, fmt.Errorf("message %s: field %s: number must be positive, got %d", name, fd.Name, fd.Number)
		}
		if _, dup := md.byName[fd.Name]; dup {
			return nil, fmt.Errorf("message %s: duplicate field name %q", name, fd.Name)
		}
		if i > 0 && sorted[i-1].Number == fd.Number {
			return nil, fmt.Errorf("message %s: fields %s and %s share number %d", name, sorted[i-1].Name, fd.Name, fd.Number)
		}
		if fd.PrimaryKey {
			if pk != nil {
				return nil, fmt.Errorf("message %s: both %s and %s are marked primary_key", name, pk.Name, fd.Name)
			}
			pk = fd
		}
		fd.Parent = name
		md.byName[fd.Name] = fd
	}
	return md, nil
}

// Field looks up a field by name.
func (m *MessageDescriptor) Field(name string) (*FieldDescriptor, bool) {
	fd, ok := m.byName[name]
	return fd, ok
}

// PrimaryKey returns the primary key field, or nil.
func (m *MessageDescriptor) PrimaryKey() *FieldDescriptor {
	for _, fd := range m.Fields {
		if fd.PrimaryKey {
			return fd
		}
	}
	return nil
}

// FieldNames returns column names in field-number order.
func (m *MessageDescriptor) FieldNames() []string {
	names := make([]string, len(m.Fields))
	for i, fd := range m.Fields {
		names[i] = fd.Name
	}
	return names
}
