// Package sqlclause assembles sqlexpr expressions into clauses and full
// statements.
//
// Clauses follow the same Object contract as expressions: a parameterized
// template, a solid rendering for logs, and the ordered bound values.
//
//	w := sqlclause.Where().SetCond(sqlexpr.FieldEq("a", 1))
//	w.OrderBy().Asc("b")
//	w.GroupBy().By("c")
//	_ = w.Limit(10)
//	// WHERE a=? ORDER BY b ASC GROUP BY c LIMIT 10 OFFSET 0
//
// Container clauses (select, order by, group by, set) grow through fluent
// methods that return the same instance; they are not safe for concurrent
// mutation. An empty container renders as the empty string and never leaves
// a stray keyword or space behind in the enclosing clause. The exceptions are
// SELECT and SET lists: they have no valid empty form, so their template
// rendering fails with sqlexpr.ErrInvalidState while the solid rendering
// still writes the bare keyword for diagnostics.
package sqlclause
