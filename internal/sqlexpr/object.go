package sqlexpr

// Object is the capability set shared by every expression, clause and
// statement.
//
// Each method appends to and returns the caller's buffer so that renderings
// compose without intermediate strings.
type Object interface {
	// AppendTemplate appends the rendering with a ? placeholder for every
	// bound value. It fails with ErrInvalidState when the node has no valid
	// SQL form (an empty select list, for example).
	AppendTemplate(b []byte) ([]byte, error)

	// AppendSolid appends the rendering with bound values inlined. It is
	// meant for logs and diagnostics and never fails; never execute it.
	AppendSolid(b []byte) []byte

	// CollectValues appends one Value per placeholder, in the order the
	// placeholders appear in AppendTemplate's output.
	CollectValues(vals []Value) []Value
}

// Template renders o as a parameterized SQL string.
func Template(o Object) (string, error) {
	b, err := o.AppendTemplate(nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Solid renders o with literal values inlined.
func Solid(o Object) string {
	return string(o.AppendSolid(nil))
}

// Values returns the ordered bound values of o.
func Values(o Object) []Value {
	return o.CollectValues(nil)
}

// Args returns the ordered bound values of o as driver arguments.
func Args(o Object) []any {
	return ValuesToArgs(o.CollectValues(nil))
}
