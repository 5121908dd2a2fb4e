// Package dao reads and writes ir messages in SQLite tables.
//
// A MessageDao is bound to one message descriptor and its table. Every
// statement it runs is built from sqlclause objects: the template form is
// executed with the collected values as arguments, and the solid form is
// written to the statement log together with the cost and outcome.
//
// Field values cross the boundary through a field.Handler, so enums, maps
// and repeated fields are stored in their column encoding and read back as
// the Go types listed in package ir.
package dao
