package queryir

import "github.com/offerlens/offerql/internal/vocab"

// Constructors for the expression union. Each sets the discriminator and
// the matching variant field together, so a hand-built node can only
// disagree with its tag by bypassing these helpers - and Validate catches
// that too.

// Col returns an unqualified column reference.
func Col(c vocab.Column) ColumnRef {
	return ColumnRef{Column: c}
}

// QualCol returns a column reference qualified by a table alias.
func QualCol(alias string, c vocab.Column) ColumnRef {
	return ColumnRef{TableAlias: alias, Column: c}
}

// ColumnExpr wraps a column reference as an expression.
func ColumnExpr(ref ColumnRef) Expression {
	return Expression{Type: ExprColumn, Column: &ref}
}

// BinaryExpr wraps a binary arithmetic node as an expression.
func BinaryExpr(b BinaryArith) Expression {
	return Expression{Type: ExprBinaryArith, Binary: &b}
}

// CompoundExpr wraps a compound arithmetic node as an expression.
func CompoundExpr(c CompoundArith) Expression {
	return Expression{Type: ExprCompoundArith, Compound: &c}
}

// AggregateExpr wraps an aggregate call as an expression.
func AggregateExpr(a AggregateCall) Expression {
	return Expression{Type: ExprAggregate, Aggregate: &a}
}

// WindowExpr wraps a window call as an expression.
func WindowExpr(w WindowCall) Expression {
	return Expression{Type: ExprWindow, Window: &w}
}

// CaseExpression wraps a case node as an expression.
func CaseExpression(c CaseExpr) Expression {
	return Expression{Type: ExprCase, Case: &c}
}

// ColOperand returns an arithmetic operand referencing a column.
func ColOperand(ref ColumnRef) Operand {
	return Operand{Column: &ref}
}

// NumOperand returns an arithmetic operand holding a numeric literal.
func NumOperand(n float64) Operand {
	lit := Number(n)
	return Operand{Literal: &lit}
}

// TableSource returns a plain-table source with an optional alias.
func TableSource(t vocab.Table, alias string) Source {
	return Source{Table: &t, Alias: alias}
}

// DerivedSource returns a derived-table source.
func DerivedSource(d DerivedTable) Source {
	return Source{Derived: &d}
}

// CompareValue returns a column-to-literal condition.
func CompareValue(col ColumnRef, op vocab.CompareOp, value Literal) Condition {
	return Condition{Column: col, Op: op, Value: &value}
}

// CompareColumns returns a column-to-column condition.
func CompareColumns(col ColumnRef, op vocab.CompareOp, other ColumnRef) Condition {
	return Condition{Column: col, Op: op, CompareTo: &other}
}

// AllOf returns a condition group combined with AND.
func AllOf(conds ...Condition) ConditionGroup {
	return ConditionGroup{Op: vocab.BoolAnd, Conditions: conds}
}

// AnyOf returns a condition group combined with OR.
func AnyOf(conds ...Condition) ConditionGroup {
	return ConditionGroup{Op: vocab.BoolOr, Conditions: conds}
}

// Where lifts a depth-0 filter shape into the top-level depth-1 type.
func Where(op vocab.BoolOp, groups ...ConditionGroup) *FilterWithSubqueries {
	return &FilterWithSubqueries{Op: op, Groups: groups}
}

// OrderByColumn returns an ordering term over a column.
func OrderByColumn(ref ColumnRef, dir vocab.SortDir) OrderTerm {
	return OrderTerm{Column: &ref, Dir: dir}
}

// OrderByAlias returns an ordering term over a select-list alias.
func OrderByAlias(alias string, dir vocab.SortDir) OrderTerm {
	return OrderTerm{SelectAlias: alias, Dir: dir}
}

// Percentile is a convenience for AggregateCall.Percentile.
func Percentile(p float64) *float64 { return &p }
