package field

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/protosql/internal/ir"
)

// RepeatedConverter stores a repeated scalar field as a JSON array in a
// TEXT column. Elements go through the scalar converter of the field type.
type RepeatedConverter struct {
	fd   *ir.FieldDescriptor
	elem Converter
	text textParser
}

// NewRepeatedConverter builds the converter for a repeated field whose
// element type has a text form.
func NewRepeatedConverter(fd *ir.FieldDescriptor) (*RepeatedConverter, error) {
	if !fd.Repeated || fd.IsMap() {
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: "not a repeated scalar field",
		}
	}
	text, ok := lookupTextParser(fd)
	if !ok {
		return nil, &ConversionError{
			Code:    ErrCodeUnsupportedType,
			Field:   fd.FullName(),
			Type:    fd.Type,
			Message: fmt.Sprintf("repeated %s elements have no text form", fd.Type),
		}
	}
	single := *fd
	single.Repeated = false
	elem, err := NewScalarConverter(&single)
	if err != nil {
		return nil, err
	}
	return &RepeatedConverter{fd: fd, elem: elem, text: text}, nil
}

func (c *RepeatedConverter) SQLValueType() reflect.Type { return typeString }

// ToSQL accepts any Go slice or array.
func (c *RepeatedConverter) ToSQL(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, incompatible(c.fd, c.fd.Type, v, typeString.String())
	}
	b := []byte{'['}
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b = append(b, ',')
		}
		sv, err := c.elem.ToSQL(rv.Index(i).Interface())
		if err != nil {
			return nil, c.elementError(v, i, err)
		}
		if b, err = appendJSONValue(b, sv); err != nil {
			return nil, c.elementError(v, i, err)
		}
	}
	return string(append(b, ']')), nil
}

// FromSQL decodes the JSON array text into []any. nil yields an empty
// slice.
func (c *RepeatedConverter) FromSQL(v any) (any, error) {
	if v == nil {
		return []any{}, nil
	}
	text, ok := payloadText(v)
	if !ok {
		return nil, incompatible(c.fd, c.fd.Type, v, "")
	}
	out, err := c.decode(text)
	if err != nil {
		return nil, &ConversionError{
			Code:  ErrCodeMalformedPayload,
			Field: c.fd.FullName(),
			Type:  c.fd.Type,
			Value: ValueText(v),
			Err:   err,
		}
	}
	return out, nil
}

func (c *RepeatedConverter) decode(text string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	out := []any{}
	for dec.More() {
		elemText, present, err := jsonScalarText(dec)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(out), err)
		}
		var sv any
		if present {
			if sv, err = c.text(elemText); err != nil {
				return nil, fmt.Errorf("element %d: %w", len(out), err)
			}
		}
		fv, err := c.elem.FromSQL(sv)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", len(out), err)
		}
		out = append(out, fv)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}
	if err := expectEnd(dec); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RepeatedConverter) elementError(v any, i int, err error) error {
	return &ConversionError{
		Code:    ErrCodeIncompatibleValue,
		Field:   c.fd.FullName(),
		Type:    c.fd.Type,
		Value:   ValueText(v),
		Message: fmt.Sprintf("element %d", i),
		Err:     err,
	}
}
