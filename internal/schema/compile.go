package schema

import (
	"fmt"
	"math"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/protosql/internal/ir"
)

// Schema is a compiled set of enums and messages, in declaration order.
type Schema struct {
	Enums    []*ir.EnumDescriptor    `json:"enums"`
	Messages []*ir.MessageDescriptor `json:"messages"`
}

// Message looks up a message by name.
func (s *Schema) Message(name string) (*ir.MessageDescriptor, bool) {
	for _, md := range s.Messages {
		if md.Name == name {
			return md, true
		}
	}
	return nil, false
}

// Enum looks up an enum by name.
func (s *Schema) Enum(name string) (*ir.EnumDescriptor, bool) {
	for _, ed := range s.Enums {
		if ed.Name == name {
			return ed, true
		}
	}
	return nil, false
}

// CompileString compiles CUE source text.
func CompileString(src string) (*Schema, error) {
	v := cuecontext.New().CompileString(src)
	return Compile(v)
}

// Compile reads the enum and message structs of v.
func Compile(v cue.Value) (*Schema, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	s := &Schema{}

	enums := v.LookupPath(cue.ParsePath("enum"))
	if enums.Exists() {
		iter, err := enums.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			ed, err := compileEnum(iter.Label(), iter.Value())
			if err != nil {
				return nil, err
			}
			s.Enums = append(s.Enums, ed)
		}
	}

	messages := v.LookupPath(cue.ParsePath("message"))
	if !messages.Exists() {
		return nil, &CompileError{Field: "message", Message: "at least one message is required", Pos: v.Pos()}
	}
	iter, err := messages.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		md, err := s.compileMessage(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		s.Messages = append(s.Messages, md)
	}
	if len(s.Messages) == 0 {
		return nil, &CompileError{Field: "message", Message: "at least one message is required", Pos: messages.Pos()}
	}
	return s, nil
}

func compileEnum(name string, v cue.Value) (*ir.EnumDescriptor, error) {
	path := "enum." + name
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	ed := &ir.EnumDescriptor{Name: name}
	seen := map[int32]string{}
	for iter.Next() {
		n, err := int32Value(iter.Value(), path+"."+iter.Label())
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[n]; dup {
			return nil, &CompileError{
				Field:   path,
				Message: fmt.Sprintf("%s and %s share number %d", prev, iter.Label(), n),
				Pos:     iter.Value().Pos(),
			}
		}
		seen[n] = iter.Label()
		ed.Values = append(ed.Values, ir.EnumValueDescriptor{Name: iter.Label(), Number: n})
	}
	if len(ed.Values) == 0 {
		return nil, &CompileError{Field: path, Message: "enum has no values", Pos: v.Pos()}
	}
	slices.SortFunc(ed.Values, func(a, b ir.EnumValueDescriptor) int { return int(a.Number) - int(b.Number) })
	return ed, nil
}

func (s *Schema) compileMessage(name string, v cue.Value) (*ir.MessageDescriptor, error) {
	path := "message." + name

	var table string
	if tv := v.LookupPath(cue.ParsePath("table")); tv.Exists() {
		t, err := tv.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		table = t
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{Field: path + ".fields", Message: "fields are required", Pos: v.Pos()}
	}
	iter, err := fieldsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var fields []*ir.FieldDescriptor
	for iter.Next() {
		fd, err := s.compileField(path+".fields."+iter.Label(), iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		fields = append(fields, fd)
	}
	if len(fields) == 0 {
		return nil, &CompileError{Field: path + ".fields", Message: "message has no fields", Pos: fieldsVal.Pos()}
	}

	md, err := ir.NewMessageDescriptor(name, table, fields)
	if err != nil {
		return nil, &CompileError{Field: path, Message: err.Error(), Pos: v.Pos()}
	}
	return md, nil
}

func (s *Schema) compileField(path, name string, v cue.Value) (*ir.FieldDescriptor, error) {
	numVal := v.LookupPath(cue.ParsePath("number"))
	if !numVal.Exists() {
		return nil, &CompileError{Field: path + ".number", Message: "field number is required", Pos: v.Pos()}
	}
	number, err := int32Value(numVal, path+".number")
	if err != nil {
		return nil, err
	}
	if number <= 0 {
		return nil, &CompileError{Field: path + ".number", Message: "field number must be positive", Pos: numVal.Pos()}
	}

	typeName, err := stringField(v, "type", path)
	if err != nil {
		return nil, err
	}
	fd := &ir.FieldDescriptor{Name: name, Number: number}
	if fd.Repeated, err = boolField(v, "repeated", path); err != nil {
		return nil, err
	}
	if fd.PrimaryKey, err = boolField(v, "primary_key", path); err != nil {
		return nil, err
	}

	ft, ok := ir.ParseFieldType(typeName)
	if !ok {
		return nil, &CompileError{Field: path + ".type", Message: fmt.Sprintf("unknown type %q", typeName), Pos: v.Pos()}
	}
	fd.Type = ft

	switch ft {
	case ir.TypeEnum:
		enumName, err := stringField(v, "enum", path)
		if err != nil {
			return nil, err
		}
		ed, ok := s.Enum(enumName)
		if !ok {
			return nil, &CompileError{Field: path + ".enum", Message: fmt.Sprintf("unknown enum %q", enumName), Pos: v.Pos()}
		}
		fd.EnumType, fd.EnumName = ed, ed.Name
	case ir.TypeMap:
		if fd.Repeated {
			return nil, &CompileError{Field: path + ".repeated", Message: "map fields cannot be repeated", Pos: v.Pos()}
		}
		if fd.MapKey, err = s.mapElement(v, "key", 1, path); err != nil {
			return nil, err
		}
		if fd.MapValue, err = s.mapElement(v, "value", 2, path); err != nil {
			return nil, err
		}
	case ir.TypeMessage:
		return nil, &CompileError{Field: path + ".type", Message: "nested message fields have no column mapping", Pos: v.Pos()}
	}

	if fd.PrimaryKey && (fd.Repeated || (ft != ir.TypeInt64 && ft != ir.TypeInt32)) {
		return nil, &CompileError{Field: path + ".primary_key", Message: "primary key must be a single int32 or int64 field", Pos: v.Pos()}
	}
	if fd.Repeated && ft == ir.TypeBytes {
		return nil, &CompileError{Field: path + ".repeated", Message: "repeated bytes fields are not supported", Pos: v.Pos()}
	}
	return fd, nil
}

// mapElement resolves a map key or value type: a scalar type name or an
// enum name.
func (s *Schema) mapElement(v cue.Value, role string, number int32, path string) (*ir.FieldDescriptor, error) {
	typeName, err := stringField(v, role, path)
	if err != nil {
		return nil, err
	}
	elem := &ir.FieldDescriptor{Name: role, Number: number}
	if ed, ok := s.Enum(typeName); ok {
		elem.Type, elem.EnumType, elem.EnumName = ir.TypeEnum, ed, ed.Name
		return elem, nil
	}
	ft, ok := ir.ParseFieldType(typeName)
	switch {
	case ok && ft == ir.TypeMessage, !ok && s.isMessageName(typeName):
		return nil, &CompileError{
			Field:   path + "." + role,
			Message: "map values of message type are not supported",
			Pos:     v.Pos(),
		}
	case !ok || !ft.Scalar() || ft == ir.TypeEnum || ft == ir.TypeBytes:
		return nil, &CompileError{
			Field:   path + "." + role,
			Message: fmt.Sprintf("map %s type %q must be a scalar type or an enum name", role, typeName),
			Pos:     v.Pos(),
		}
	}
	elem.Type = ft
	return elem, nil
}

func (s *Schema) isMessageName(name string) bool {
	_, ok := s.Message(name)
	return ok
}

func stringField(v cue.Value, name, path string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return "", &CompileError{Field: path + "." + name, Message: name + " is required", Pos: v.Pos()}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func boolField(v cue.Value, name, path string) (bool, error) {
	fv := v.LookupPath(cue.ParsePath(name))
	if !fv.Exists() {
		return false, nil
	}
	b, err := fv.Bool()
	if err != nil {
		return false, formatCUEError(err)
	}
	return b, nil
}

func int32Value(v cue.Value, path string) (int32, error) {
	n, err := v.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &CompileError{Field: path, Message: fmt.Sprintf("%d does not fit in int32", n), Pos: v.Pos()}
	}
	return int32(n), nil
}
