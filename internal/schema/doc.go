// Package schema compiles CUE record definitions into ir descriptors and
// renders the matching CREATE TABLE statements.
//
// A schema is a CUE instance with two top-level structs:
//
//	enum: Status: {UNKNOWN: 0, ACTIVE: 1}
//
//	message: UserProfile: {
//		table: "user_profile" // optional, defaults to snake_case of the name
//		fields: {
//			id:     {number: 1, type: "int64", primary_key: true}
//			status: {number: 2, type: "enum", enum: "Status"}
//			scores: {number: 3, type: "map", key: "string", value: "int32"}
//			tags:   {number: 4, type: "string", repeated: true}
//		}
//	}
//
// Map keys and values name a scalar type or an enum. Fields are ordered by
// number. Every error carries the CUE position it was found at.
package schema
