package field

import (
	"reflect"
	"sync"

	"github.com/roach88/protosql/internal/ir"
)

// Handler resolves the converter of each field and caches it. It is safe
// for concurrent use.
type Handler struct {
	mu    sync.RWMutex
	cache map[*ir.FieldDescriptor]Converter
}

// NewHandler returns an empty handler.
func NewHandler() *Handler {
	return &Handler{cache: make(map[*ir.FieldDescriptor]Converter)}
}

// Converter returns the converter for fd: MapConverter for map fields,
// RepeatedConverter for repeated fields and a scalar converter otherwise.
func (h *Handler) Converter(fd *ir.FieldDescriptor) (Converter, error) {
	h.mu.RLock()
	c, ok := h.cache[fd]
	h.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := resolve(fd)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.cache[fd] = c
	h.mu.Unlock()
	return c, nil
}

func resolve(fd *ir.FieldDescriptor) (Converter, error) {
	switch {
	case fd.IsMap():
		return NewMapConverter(fd)
	case fd.Repeated:
		return NewRepeatedConverter(fd)
	default:
		return NewScalarConverter(fd)
	}
}

// ToSQL converts the value of field fd to its column value.
func (h *Handler) ToSQL(fd *ir.FieldDescriptor, value any) (any, error) {
	c, err := h.Converter(fd)
	if err != nil {
		return nil, err
	}
	return c.ToSQL(value)
}

// FromSQL converts a column value back to the value of field fd.
func (h *Handler) FromSQL(fd *ir.FieldDescriptor, sqlValue any) (any, error) {
	c, err := h.Converter(fd)
	if err != nil {
		return nil, err
	}
	return c.FromSQL(sqlValue)
}

// SQLValueType returns the Go type fd's column values have.
func (h *Handler) SQLValueType(fd *ir.FieldDescriptor) (reflect.Type, error) {
	c, err := h.Converter(fd)
	if err != nil {
		return nil, err
	}
	return c.SQLValueType(), nil
}

// ColumnType maps fd to a SQLite column type: INTEGER, REAL, TEXT or BLOB.
func (h *Handler) ColumnType(fd *ir.FieldDescriptor) (string, error) {
	t, err := h.SQLValueType(fd)
	if err != nil {
		return "", err
	}
	switch t {
	case typeInt32, typeInt64:
		return "INTEGER", nil
	case typeFloat32, typeFloat64:
		return "REAL", nil
	case typeBytes:
		return "BLOB", nil
	default:
		return "TEXT", nil
	}
}
