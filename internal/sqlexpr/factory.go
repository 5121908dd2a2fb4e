package sqlexpr

// The factories below come in four shapes per operator:
//
//	Eq(left, right Expression)       two expressions
//	ColumnEq(column, right)          a column name and an expression
//	FieldEq(column, value)           a column name and a literal value
//	FieldsEq(left, right string)     two column names
//
// All of them panic with ErrInvalidArgument on a blank name or nil operand.

// Arithmetic.

// Add returns left+right.
func Add(left, right Expression) *Arithmetic { return must(NewArithmetic(OpAdd, left, right)) }

// Subtract returns left-right.
func Subtract(left, right Expression) *Arithmetic { return must(NewArithmetic(OpSub, left, right)) }

// Multiply returns left*right.
func Multiply(left, right Expression) *Arithmetic { return must(NewArithmetic(OpMul, left, right)) }

// Divide returns left/right.
func Divide(left, right Expression) *Arithmetic { return must(NewArithmetic(OpDiv, left, right)) }

// DivRound returns left DIV right.
func DivRound(left, right Expression) *Arithmetic { return must(NewArithmetic(OpDivRound, left, right)) }

// Mod returns left%right.
func Mod(left, right Expression) *Arithmetic { return must(NewArithmetic(OpMod, left, right)) }

// Eq returns left=right.
func Eq(left, right Expression) *Relational { return must(NewRelational(OpEq, left, right)) }

// Ne returns left<>right.
func Ne(left, right Expression) *Relational { return must(NewRelational(OpNe, left, right)) }

// Lt returns left<right.
func Lt(left, right Expression) *Relational { return must(NewRelational(OpLt, left, right)) }

// Lte returns left<=right.
func Lte(left, right Expression) *Relational { return must(NewRelational(OpLte, left, right)) }

// Gt returns left>right.
func Gt(left, right Expression) *Relational { return must(NewRelational(OpGt, left, right)) }

// Gte returns left>=right.
func Gte(left, right Expression) *Relational { return must(NewRelational(OpGte, left, right)) }

// Like returns left LIKE right.
func Like(left, right Expression) *Relational { return must(NewRelational(OpLike, left, right)) }

// NotLike returns left NOT LIKE right.
func NotLike(left, right Expression) *Relational { return must(NewRelational(OpNotLike, left, right)) }

// And joins operands with AND.
func And(operands ...Expression) *Logical { return must(NewLogical(OpAnd, operands...)) }

// Or joins operands with OR.
func Or(operands ...Expression) *Logical { return must(NewLogical(OpOr, operands...)) }

// Xor joins operands with XOR.
func Xor(operands ...Expression) *Logical { return must(NewLogical(OpXor, operands...)) }

// Not returns NOT operand.
func Not(operand Expression) *Negation { return must(NewNegation(operand)) }

// Count returns COUNT(args...); with no args it counts rows as COUNT(*).
func Count(args ...Expression) *Call {
	if len(args) == 0 {
		args = []Expression{Col("*")}
	}
	return must(NewCall("COUNT", args...))
}

// Sum returns SUM(arg).
func Sum(arg Expression) *Call { return must(NewCall("SUM", arg)) }

// Func returns name(args...).
func Func(name string, args ...Expression) *Call { return must(NewCall(name, args...)) }

// Column and expression.

// ColumnAdd returns column+right.
func ColumnAdd(column string, right Expression) *Arithmetic { return Add(Col(column), right) }

// ColumnSubtract returns column-right.
func ColumnSubtract(column string, right Expression) *Arithmetic { return Subtract(Col(column), right) }

// ColumnMultiply returns column*right.
func ColumnMultiply(column string, right Expression) *Arithmetic { return Multiply(Col(column), right) }

// ColumnDivide returns column/right.
func ColumnDivide(column string, right Expression) *Arithmetic { return Divide(Col(column), right) }

// ColumnDivRound returns column DIV right.
func ColumnDivRound(column string, right Expression) *Arithmetic { return DivRound(Col(column), right) }

// ColumnMod returns column%right.
func ColumnMod(column string, right Expression) *Arithmetic { return Mod(Col(column), right) }

// ColumnEq returns column=right.
func ColumnEq(column string, right Expression) *Relational { return Eq(Col(column), right) }

// ColumnNe returns column<>right.
func ColumnNe(column string, right Expression) *Relational { return Ne(Col(column), right) }

// ColumnLt returns column<right.
func ColumnLt(column string, right Expression) *Relational { return Lt(Col(column), right) }

// ColumnLte returns column<=right.
func ColumnLte(column string, right Expression) *Relational { return Lte(Col(column), right) }

// ColumnGt returns column>right.
func ColumnGt(column string, right Expression) *Relational { return Gt(Col(column), right) }

// ColumnGte returns column>=right.
func ColumnGte(column string, right Expression) *Relational { return Gte(Col(column), right) }

// ColumnLike returns column LIKE right.
func ColumnLike(column string, right Expression) *Relational { return Like(Col(column), right) }

// ColumnNotLike returns column NOT LIKE right.
func ColumnNotLike(column string, right Expression) *Relational { return NotLike(Col(column), right) }

// ColumnAnd returns column AND right.
func ColumnAnd(column string, right Expression) *Logical { return And(Col(column), right) }

// ColumnOr returns column OR right.
func ColumnOr(column string, right Expression) *Logical { return Or(Col(column), right) }

// ColumnXor returns column XOR right.
func ColumnXor(column string, right Expression) *Logical { return Xor(Col(column), right) }

// Column and literal value.

// FieldAdd returns column+value.
func FieldAdd(column string, value any) *Arithmetic { return Add(Col(column), Lit(value)) }

// FieldSubtract returns column-value.
func FieldSubtract(column string, value any) *Arithmetic { return Subtract(Col(column), Lit(value)) }

// FieldMultiply returns column*value.
func FieldMultiply(column string, value any) *Arithmetic { return Multiply(Col(column), Lit(value)) }

// FieldDivide returns column/value.
func FieldDivide(column string, value any) *Arithmetic { return Divide(Col(column), Lit(value)) }

// FieldDivRound returns column DIV value.
func FieldDivRound(column string, value any) *Arithmetic { return DivRound(Col(column), Lit(value)) }

// FieldMod returns column%value.
func FieldMod(column string, value any) *Arithmetic { return Mod(Col(column), Lit(value)) }

// FieldEq returns column=value.
func FieldEq(column string, value any) *Relational { return Eq(Col(column), Lit(value)) }

// FieldNe returns column<>value.
func FieldNe(column string, value any) *Relational { return Ne(Col(column), Lit(value)) }

// FieldLt returns column<value.
func FieldLt(column string, value any) *Relational { return Lt(Col(column), Lit(value)) }

// FieldLte returns column<=value.
func FieldLte(column string, value any) *Relational { return Lte(Col(column), Lit(value)) }

// FieldGt returns column>value.
func FieldGt(column string, value any) *Relational { return Gt(Col(column), Lit(value)) }

// FieldGte returns column>=value.
func FieldGte(column string, value any) *Relational { return Gte(Col(column), Lit(value)) }

// FieldLike returns column LIKE value.
func FieldLike(column string, value any) *Relational { return Like(Col(column), Lit(value)) }

// FieldNotLike returns column NOT LIKE value.
func FieldNotLike(column string, value any) *Relational { return NotLike(Col(column), Lit(value)) }

// Column and column.

// FieldsAdd returns left+right.
func FieldsAdd(left, right string) *Arithmetic { return Add(Col(left), Col(right)) }

// FieldsSubtract returns left-right.
func FieldsSubtract(left, right string) *Arithmetic { return Subtract(Col(left), Col(right)) }

// FieldsMultiply returns left*right.
func FieldsMultiply(left, right string) *Arithmetic { return Multiply(Col(left), Col(right)) }

// FieldsDivide returns left/right.
func FieldsDivide(left, right string) *Arithmetic { return Divide(Col(left), Col(right)) }

// FieldsDivRound returns left DIV right.
func FieldsDivRound(left, right string) *Arithmetic { return DivRound(Col(left), Col(right)) }

// FieldsMod returns left%right.
func FieldsMod(left, right string) *Arithmetic { return Mod(Col(left), Col(right)) }

// FieldsEq returns left=right.
func FieldsEq(left, right string) *Relational { return Eq(Col(left), Col(right)) }

// FieldsNe returns left<>right.
func FieldsNe(left, right string) *Relational { return Ne(Col(left), Col(right)) }

// FieldsLt returns left<right.
func FieldsLt(left, right string) *Relational { return Lt(Col(left), Col(right)) }

// FieldsLte returns left<=right.
func FieldsLte(left, right string) *Relational { return Lte(Col(left), Col(right)) }

// FieldsGt returns left>right.
func FieldsGt(left, right string) *Relational { return Gt(Col(left), Col(right)) }

// FieldsGte returns left>=right.
func FieldsGte(left, right string) *Relational { return Gte(Col(left), Col(right)) }

// FieldsLike returns left LIKE right.
func FieldsLike(left, right string) *Relational { return Like(Col(left), Col(right)) }

// FieldsNotLike returns left NOT LIKE right.
func FieldsNotLike(left, right string) *Relational { return NotLike(Col(left), Col(right)) }

// FieldsAnd returns left AND right.
func FieldsAnd(left, right string) *Logical { return And(Col(left), Col(right)) }

// FieldsOr returns left OR right.
func FieldsOr(left, right string) *Logical { return Or(Col(left), Col(right)) }

// FieldsXor returns left XOR right.
func FieldsXor(left, right string) *Logical { return Xor(Col(left), Col(right)) }

// FieldNot returns NOT column.
func FieldNot(column string) *Negation { return Not(Col(column)) }
