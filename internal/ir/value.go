package ir

import "fmt"

// EnumValue is the value of an enum field.
type EnumValue struct {
	Name   string `json:"name"`
	Number int32  `json:"number"`
}

func (e EnumValue) String() string {
	if e.Name == "" {
		return fmt.Sprintf("%d", e.Number)
	}
	return e.Name
}

// MapEntry is one key/value pair of a map field.
type MapEntry struct {
	Key   any `json:"key"`
	Value any `json:"value"`
}

// Zero returns the value an unset field reads as.
func Zero(fd *FieldDescriptor) any {
	if fd.Repeated {
		return []any{}
	}
	switch fd.Type {
	case TypeBool:
		return false
	case TypeInt32:
		return int32(0)
	case TypeInt64:
		return int64(0)
	case TypeFloat:
		return float32(0)
	case TypeDouble:
		return float64(0)
	case TypeString:
		return ""
	case TypeBytes:
		return []byte{}
	case TypeEnum:
		if fd.EnumType != nil {
			return fd.EnumType.Default()
		}
		return EnumValue{}
	case TypeMap:
		return []MapEntry{}
	default:
		return nil
	}
}
