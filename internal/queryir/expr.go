package queryir

import (
	"math"

	"github.com/offerlens/offerql/internal/vocab"
)

// ExprType discriminates the Expression union. The discriminator value
// and the populated variant field must agree; Validate rejects any
// mismatch.
type ExprType string

// The expression variants.
const (
	ExprColumn        ExprType = "column"
	ExprBinaryArith   ExprType = "binary_arithmetic"
	ExprCompoundArith ExprType = "compound_arithmetic"
	ExprAggregate     ExprType = "aggregate"
	ExprWindow        ExprType = "window"
	ExprCase          ExprType = "case"
)

// Expression is the tagged union of everything that may appear in a
// select list. Exactly one variant field is populated per node, named by
// Type.
type Expression struct {
	Type ExprType `json:"expr_type"`

	Column    *ColumnRef     `json:"column,omitempty"`
	Binary    *BinaryArith   `json:"binary_arithmetic,omitempty"`
	Compound  *CompoundArith `json:"compound_arithmetic,omitempty"`
	Aggregate *AggregateCall `json:"aggregate,omitempty"`
	Window    *WindowCall    `json:"window,omitempty"`
	Case      *CaseExpr      `json:"case,omitempty"`
}

// Validate checks discriminator/field agreement and recurses into the
// populated variant.
func (e *Expression) Validate() error {
	variants := []struct {
		typ ExprType
		set bool
		sub interface{ Validate() error }
	}{
		{ExprColumn, e.Column != nil, e.Column},
		{ExprBinaryArith, e.Binary != nil, e.Binary},
		{ExprCompoundArith, e.Compound != nil, e.Compound},
		{ExprAggregate, e.Aggregate != nil, e.Aggregate},
		{ExprWindow, e.Window != nil, e.Window},
		{ExprCase, e.Case != nil, e.Case},
	}

	var matched interface{ Validate() error }
	known := false
	for _, v := range variants {
		if v.typ == e.Type {
			known = true
			if !v.set {
				return errf("Expression", string(v.typ), "discriminator is %q but the %s field is not populated", e.Type, v.typ)
			}
			matched = v.sub
			continue
		}
		if v.set {
			return errf("Expression", string(v.typ), "field %s is populated but discriminator is %q", v.typ, e.Type)
		}
	}
	if !known {
		return errf("Expression", "expr_type", "unknown expression type %q", e.Type)
	}
	return matched.Validate()
}

// ColumnRef names a column, optionally qualified by the table alias that
// binds it. An unqualified reference is valid whenever the query has a
// single unaliased source.
type ColumnRef struct {
	TableAlias string       `json:"table_alias,omitempty"`
	Column     vocab.Column `json:"column"`
}

// Validate checks the column is a vocabulary member.
func (c *ColumnRef) Validate() error {
	if !c.Column.Valid() {
		return errf("ColumnRef", "column", "unknown column %q", string(c.Column))
	}
	return nil
}

// LiteralKind discriminates the Literal union.
type LiteralKind string

// The literal kinds.
const (
	LiteralString LiteralKind = "string"
	LiteralNumber LiteralKind = "number"
	LiteralBool   LiteralKind = "bool"
	LiteralNull   LiteralKind = "null"
)

// Literal is a constant value. Kind names the populated payload field;
// the other payload fields stay at their zero values.
type Literal struct {
	Kind LiteralKind `json:"kind"`

	Str  string  `json:"str,omitempty"`
	Num  float64 `json:"num,omitempty"`
	Bool bool    `json:"bool,omitempty"`
}

// Validate checks the kind is known and the payload is representable.
func (l *Literal) Validate() error {
	switch l.Kind {
	case LiteralString, LiteralBool, LiteralNull:
		return nil
	case LiteralNumber:
		if math.IsNaN(l.Num) || math.IsInf(l.Num, 0) {
			return errf("Literal", "num", "number %v has no SQL representation", l.Num)
		}
		return nil
	}
	return errf("Literal", "kind", "unknown literal kind %q", string(l.Kind))
}

// String returns a string literal.
func String(s string) Literal { return Literal{Kind: LiteralString, Str: s} }

// Number returns a numeric literal.
func Number(n float64) Literal { return Literal{Kind: LiteralNumber, Num: n} }

// Bool returns a boolean literal.
func Bool(b bool) Literal { return Literal{Kind: LiteralBool, Bool: b} }

// Null returns the null literal.
func Null() Literal { return Literal{Kind: LiteralNull} }

// Operand is one side of an arithmetic expression: exclusively a column
// reference or a numeric literal, never both and never neither.
type Operand struct {
	Column  *ColumnRef `json:"column,omitempty"`
	Literal *Literal   `json:"literal,omitempty"`
}

// Validate enforces the column-or-literal exclusivity and restricts
// literal operands to numbers.
func (o *Operand) Validate() error {
	switch {
	case o.Column == nil && o.Literal == nil:
		return errf("Operand", "", "neither column nor literal is populated")
	case o.Column != nil && o.Literal != nil:
		return errf("Operand", "", "both column and literal are populated")
	case o.Column != nil:
		return o.Column.Validate()
	default:
		if err := o.Literal.Validate(); err != nil {
			return err
		}
		if o.Literal.Kind != LiteralNumber {
			return errf("Operand", "literal", "arithmetic operand literal must be a number, got %s", o.Literal.Kind)
		}
		return nil
	}
}

// BinaryArith is one arithmetic step: operand OP operand.
type BinaryArith struct {
	Left  Operand       `json:"left"`
	Op    vocab.ArithOp `json:"op"`
	Right Operand       `json:"right"`
}

// Validate checks both operands and the operator.
func (b *BinaryArith) Validate() error {
	if !b.Op.Valid() {
		return errf("BinaryArith", "op", "unknown arithmetic operator %q", string(b.Op))
	}
	if err := b.Left.Validate(); err != nil {
		return wrapf("left", err)
	}
	if err := b.Right.Validate(); err != nil {
		return wrapf("right", err)
	}
	return nil
}

// CompoundArith applies one more operator to a binary result: exactly two
// arithmetic levels. The inner result is computed first regardless of
// operator precedence; the explicit structure is the precedence.
type CompoundArith struct {
	Base    BinaryArith   `json:"base"`
	Op      vocab.ArithOp `json:"op"`
	Operand Operand       `json:"operand"`
}

// Validate checks the inner binary step, the outer operator, and the
// trailing operand.
func (c *CompoundArith) Validate() error {
	if !c.Op.Valid() {
		return errf("CompoundArith", "op", "unknown arithmetic operator %q", string(c.Op))
	}
	if err := c.Base.Validate(); err != nil {
		return wrapf("base", err)
	}
	if err := c.Operand.Validate(); err != nil {
		return wrapf("operand", err)
	}
	return nil
}

// AggregateCall applies an aggregate function. The target is one of:
// nothing (COUNT(*) only), a column, a DISTINCT column, or a nested
// binary-arithmetic input. The arithmetic input exists so that
// "average of a difference" is expressible as a single aggregate, which
// is not the same quantity as a difference of averages.
type AggregateCall struct {
	Func       vocab.AggFunc `json:"func"`
	Column     *ColumnRef    `json:"column,omitempty"`
	Input      *BinaryArith  `json:"input,omitempty"`
	Distinct   bool          `json:"distinct,omitempty"`
	Percentile *float64      `json:"percentile,omitempty"`
}

// Validate enforces the per-function target shape.
func (a *AggregateCall) Validate() error {
	if !a.Func.Valid() {
		return errf("AggregateCall", "func", "unknown aggregate function %q", string(a.Func))
	}
	if a.Column != nil && a.Input != nil {
		return errf("AggregateCall", "input", "column and arithmetic input are mutually exclusive")
	}
	if a.Column == nil && a.Input == nil && a.Func != vocab.AggCount {
		return errf("AggregateCall", "column", "%s requires a column or arithmetic input", a.Func.SQL())
	}
	if a.Distinct && a.Column == nil {
		return errf("AggregateCall", "distinct", "distinct requires a target column")
	}
	if a.Func.TakesPercentile() {
		if a.Percentile == nil {
			return errf("AggregateCall", "percentile", "%s requires a percentile parameter", a.Func.SQL())
		}
		if *a.Percentile <= 0 || *a.Percentile > 1 {
			return errf("AggregateCall", "percentile", "percentile %v is outside (0, 1]", *a.Percentile)
		}
		if a.Input != nil {
			return errf("AggregateCall", "input", "%s takes a column, not an arithmetic input", a.Func.SQL())
		}
		if a.Distinct {
			return errf("AggregateCall", "distinct", "%s does not take a distinct flag", a.Func.SQL())
		}
	} else if a.Percentile != nil {
		return errf("AggregateCall", "percentile", "%s does not take a percentile parameter", a.Func.SQL())
	}
	if a.Column != nil {
		if err := a.Column.Validate(); err != nil {
			return wrapf("column", err)
		}
	}
	if a.Input != nil {
		if err := a.Input.Validate(); err != nil {
			return wrapf("input", err)
		}
	}
	return nil
}

// WindowCall applies a window function over a partition/order frame. The
// frame is rendered verbatim from the partition and order lists; no frame
// bounds beyond the basic running frame are modeled.
type WindowCall struct {
	Func        vocab.WindowFunc `json:"func"`
	Column      *ColumnRef       `json:"column,omitempty"`
	PartitionBy []ColumnRef      `json:"partition_by,omitempty"`
	OrderBy     []OrderTerm      `json:"order_by,omitempty"`

	// Offset is the row offset for LAG/LEAD. Zero means the SQL default
	// of one row.
	Offset int64 `json:"offset,omitempty"`
}

// Validate enforces the per-function argument shape and checks the frame
// lists.
func (w *WindowCall) Validate() error {
	if !w.Func.Valid() {
		return errf("WindowCall", "func", "unknown window function %q", string(w.Func))
	}
	if w.Func.TakesColumn() && w.Column == nil {
		return errf("WindowCall", "column", "%s requires a target column", w.Func.SQL())
	}
	if !w.Func.TakesColumn() && w.Column != nil {
		return errf("WindowCall", "column", "%s takes no target column", w.Func.SQL())
	}
	if w.Offset != 0 && !w.Func.TakesOffset() {
		return errf("WindowCall", "offset", "%s does not take a row offset", w.Func.SQL())
	}
	if w.Offset < 0 {
		return errf("WindowCall", "offset", "row offset must not be negative")
	}
	if w.Column != nil {
		if err := w.Column.Validate(); err != nil {
			return wrapf("column", err)
		}
	}
	for i := range w.PartitionBy {
		if err := w.PartitionBy[i].Validate(); err != nil {
			return wrapf(indexed("partition_by", i), err)
		}
	}
	for i := range w.OrderBy {
		term := &w.OrderBy[i]
		if term.Column == nil {
			return errf("WindowCall", indexed("order_by", i), "window ordering terms must reference a column")
		}
		if err := term.Validate(); err != nil {
			return wrapf(indexed("order_by", i), err)
		}
	}
	return nil
}

// CaseBranch is one WHEN arm: a single simple comparison guarding a
// literal result. Branches may not nest cases or boolean groups.
type CaseBranch struct {
	When Condition `json:"when"`
	Then Literal   `json:"then"`
}

// CaseExpr is an ordered list of branches evaluated first-match-wins,
// matching SQL's WHEN short-circuit, plus an optional default.
type CaseExpr struct {
	Branches []CaseBranch `json:"branches"`
	Else     *Literal     `json:"else,omitempty"`
}

// Validate checks each branch in order and the optional default.
func (c *CaseExpr) Validate() error {
	if len(c.Branches) == 0 {
		return errf("CaseExpr", "branches", "at least one branch is required")
	}
	for i := range c.Branches {
		b := &c.Branches[i]
		if err := b.When.Validate(); err != nil {
			return wrapf(indexed("branches", i)+".when", err)
		}
		if err := b.Then.Validate(); err != nil {
			return wrapf(indexed("branches", i)+".then", err)
		}
	}
	if c.Else != nil {
		if err := c.Else.Validate(); err != nil {
			return wrapf("else", err)
		}
	}
	return nil
}
