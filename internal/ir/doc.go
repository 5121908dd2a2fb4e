// Package ir holds the record-schema model shared by every other package:
// field types, enum/field/message descriptors, the dynamic Record that
// implements the Message reflection interface, and the table naming
// convention.
//
// This package contains type definitions only. ir imports nothing internal.
//
// Field values carried by a Message use these Go types:
//
//	bool      bool
//	int32     int32
//	int64     int64
//	float     float32
//	double    float64
//	string    string
//	bytes     []byte
//	enum      EnumValue
//	map       []MapEntry (document order)
//	repeated  []any
package ir
