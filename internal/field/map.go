package field

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/roach88/protosql/internal/ir"
)

// MapConverter stores a map field as a JSON object in a TEXT column,
// preserving entry order.
//
// Keys and values are converted by the scalar converters of the map's key
// and value types before encoding. On read each key and value text is
// parsed for its declared type and converted back through the same scalar
// converters, so the result is a []ir.MapEntry in document order.
type MapConverter struct {
	fd       *ir.FieldDescriptor
	key      Converter
	value    Converter
	keyText  textParser
	valText  textParser
	keyField *ir.FieldDescriptor
	valField *ir.FieldDescriptor
}

// NewMapConverter builds the converter for a map field. Map values of
// message type, and keys or values with no text form, are rejected.
func NewMapConverter(fd *ir.FieldDescriptor) (*MapConverter, error) {
	if !fd.IsMap() || fd.MapKey == nil || fd.MapValue == nil {
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: "not a map field with key and value types",
		}
	}
	if fd.MapValue.Type == ir.TypeMessage {
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: fmt.Sprintf("map values of message type %s are not supported", fd.MapValue.MessageName),
		}
	}
	c := &MapConverter{fd: fd, keyField: fd.MapKey, valField: fd.MapValue}
	var err error
	if c.key, err = mapElementConverter(fd, fd.MapKey); err != nil {
		return nil, err
	}
	if c.value, err = mapElementConverter(fd, fd.MapValue); err != nil {
		return nil, err
	}
	var ok bool
	if c.keyText, ok = lookupTextParser(fd.MapKey); !ok {
		return nil, unsupportedElement(fd, "key", fd.MapKey)
	}
	if c.valText, ok = lookupTextParser(fd.MapValue); !ok {
		return nil, unsupportedElement(fd, "value", fd.MapValue)
	}
	return c, nil
}

func mapElementConverter(parent, elem *ir.FieldDescriptor) (Converter, error) {
	named := *elem
	if named.Parent == "" {
		named.Parent = parent.FullName()
	}
	return NewScalarConverter(&named)
}

func unsupportedElement(fd *ir.FieldDescriptor, role string, elem *ir.FieldDescriptor) error {
	return &ConversionError{
		Code:    ErrCodeUnsupportedType,
		Field:   fd.FullName(),
		Type:    fd.Type,
		Message: fmt.Sprintf("map %s type %s has no text form", role, elem.Type),
	}
}

func (c *MapConverter) SQLValueType() reflect.Type { return typeString }

// ToSQL accepts []ir.MapEntry, kept in order, or any Go map, whose entries
// are sorted by key.
func (c *MapConverter) ToSQL(v any) (any, error) {
	entries, err := c.sqlEntries(v)
	if err != nil {
		return nil, err
	}
	b := []byte{'{'}
	for i, e := range entries {
		if i > 0 {
			b = append(b, ',')
		}
		key, err := sqlText(e.Key)
		if err != nil {
			return nil, c.encodeError(v, err)
		}
		if b, err = appendJSONString(b, key); err != nil {
			return nil, c.encodeError(v, err)
		}
		b = append(b, ':')
		if b, err = appendJSONValue(b, e.Value); err != nil {
			return nil, c.encodeError(v, err)
		}
	}
	return string(append(b, '}')), nil
}

// sqlEntries converts every key and value to its SQL form. A repeated key
// keeps its first position and its last value.
func (c *MapConverter) sqlEntries(v any) ([]ir.MapEntry, error) {
	var in []ir.MapEntry
	sorted := false
	switch m := v.(type) {
	case []ir.MapEntry:
		in = m
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return nil, incompatible(c.fd, ir.TypeMap, v, typeString.String())
		}
		in = make([]ir.MapEntry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			in = append(in, ir.MapEntry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
		}
		sorted = true
	}

	out := make([]ir.MapEntry, 0, len(in))
	index := make(map[string]int, len(in))
	for _, e := range in {
		k, err := c.key.ToSQL(e.Key)
		if err != nil {
			return nil, c.wrapElement(v, "key", err)
		}
		val, err := c.value.ToSQL(e.Value)
		if err != nil {
			return nil, c.wrapElement(v, "value", err)
		}
		text, err := sqlText(k)
		if err != nil {
			return nil, c.encodeError(v, err)
		}
		if i, dup := index[text]; dup {
			out[i].Value = val
			continue
		}
		index[text] = len(out)
		out = append(out, ir.MapEntry{Key: k, Value: val})
	}
	if sorted {
		slices.SortFunc(out, func(a, b ir.MapEntry) int { return compareSQLKeys(a.Key, b.Key) })
	}
	return out, nil
}

// compareSQLKeys orders integer keys numerically and everything else by
// text.
func compareSQLKeys(a, b any) int {
	ai, aok := asInt64(a)
	bi, bok := asInt64(b)
	if aok && bok {
		return cmp.Compare(ai, bi)
	}
	at, _ := sqlText(a)
	bt, _ := sqlText(b)
	return strings.Compare(at, bt)
}

// FromSQL decodes the JSON object text. nil yields an empty list.
func (c *MapConverter) FromSQL(v any) (any, error) {
	if v == nil {
		return []ir.MapEntry{}, nil
	}
	text, ok := payloadText(v)
	if !ok {
		return nil, incompatible(c.fd, ir.TypeMap, v, "")
	}
	entries, err := c.decode(text)
	if err != nil {
		return nil, &ConversionError{
			Code:  ErrCodeMalformedPayload,
			Field: c.fd.FullName(),
			Type:  ir.TypeMap,
			Value: ValueText(v),
			Message: fmt.Sprintf("key type %s, value type %s",
				c.keyField.Type, c.valField.Type),
			Err: err,
		}
	}
	return entries, nil
}

func (c *MapConverter) decode(text string) ([]ir.MapEntry, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	entries := []ir.MapEntry{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keyText, _ := tok.(string)
		valText, present, err := jsonScalarText(dec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyText, err)
		}
		key, err := c.parse(c.keyText, c.key, keyText, true)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyText, err)
		}
		val, err := c.parse(c.valText, c.value, valText, present)
		if err != nil {
			return nil, fmt.Errorf("value of key %q: %w", keyText, err)
		}
		if i, dup := index[keyText]; dup {
			entries[i].Value = val
			continue
		}
		index[keyText] = len(entries)
		entries = append(entries, ir.MapEntry{Key: key, Value: val})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if err := expectEnd(dec); err != nil {
		return nil, err
	}
	return entries, nil
}

// parse turns element text into a field value: text parser first, then the
// scalar converter. A JSON null reads as the zero value.
func (c *MapConverter) parse(p textParser, conv Converter, text string, present bool) (any, error) {
	if !present {
		return conv.FromSQL(nil)
	}
	sqlValue, err := p(text)
	if err != nil {
		return nil, err
	}
	return conv.FromSQL(sqlValue)
}

func (c *MapConverter) wrapElement(v any, role string, err error) error {
	return &ConversionError{
		Code:    ErrCodeIncompatibleValue,
		Field:   c.fd.FullName(),
		Type:    ir.TypeMap,
		Value:   ValueText(v),
		Message: "map " + role,
		Err:     err,
	}
}

func (c *MapConverter) encodeError(v any, err error) error {
	return &ConversionError{
		Code:  ErrCodeIncompatibleValue,
		Field: c.fd.FullName(),
		Type:  ir.TypeMap,
		Value: ValueText(v),
		Err:   err,
	}
}
