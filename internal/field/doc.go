// Package field converts between message field values and SQL column
// values.
//
// Every field type has a Converter. Scalars map one-to-one onto a driver
// type. Map fields are stored as a JSON object in a TEXT column, keeping
// entry order; repeated scalar fields are stored as a JSON array. Reading
// either back parses each text element with the parser for its declared
// type and then runs it through the scalar converter again, so a map read
// from the database holds exactly the Go types a freshly built record would.
//
// Handler resolves and caches converters per field descriptor.
package field
