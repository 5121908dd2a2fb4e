// Package querydoc reads SQL statements written as YAML documents.
//
//	statement: select
//	table: user_profile
//	select: [id, name, {expr: {add: [age, 1]}, as: next_age}]
//	where:
//	  cond: {and: [{eq: [status, 1]}, {gt: [age, 18]}]}
//	  order_by: [{asc: name}, {desc: id}]
//	  limit: 10
//
// Expressions: a bare string is a column, any other scalar is a literal,
// {value: x} is a literal of any scalar type, {<op>: [operands]} applies an
// operator by name (add, sub, mul, div, div_round, mod, eq, ne, lt, lte,
// gt, gte, like, not_like, and, or, xor, not) and {func: NAME, args: [...]}
// calls a function.
package querydoc
