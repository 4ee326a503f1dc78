package querysql

import (
	"strconv"
	"strings"

	"github.com/offerlens/offerql/internal/queryir"
)

// expression dispatches over the discriminator. The default arm is
// unreachable after validation.
func (r *Renderer) expression(e *queryir.Expression) string {
	switch e.Type {
	case queryir.ExprColumn:
		return r.columnRef(e.Column)
	case queryir.ExprBinaryArith:
		return r.binaryArith(e.Binary)
	case queryir.ExprCompoundArith:
		return r.compoundArith(e.Compound)
	case queryir.ExprAggregate:
		return r.aggregate(e.Aggregate)
	case queryir.ExprWindow:
		return r.window(e.Window)
	case queryir.ExprCase:
		return r.caseExpr(e.Case)
	default:
		return ""
	}
}

func (r *Renderer) columnRef(c *queryir.ColumnRef) string {
	if c.TableAlias != "" {
		return r.d.QuoteIdent(c.TableAlias) + "." + r.d.QuoteIdent(c.Column.SQL())
	}
	return r.d.QuoteIdent(c.Column.SQL())
}

func (r *Renderer) operand(o *queryir.Operand) string {
	if o.Column != nil {
		return r.columnRef(o.Column)
	}
	return r.literal(o.Literal)
}

// binaryArith renders one arithmetic step fully parenthesized.
func (r *Renderer) binaryArith(b *queryir.BinaryArith) string {
	return "(" + r.operand(&b.Left) + " " + b.Op.SQL() + " " + r.operand(&b.Right) + ")"
}

// compoundArith renders the inner binary result first, then applies the
// outer operator. The explicit two-level structure is the precedence;
// there is no reordering.
func (r *Renderer) compoundArith(c *queryir.CompoundArith) string {
	return "(" + r.binaryArith(&c.Base) + " " + c.Op.SQL() + " " + r.operand(&c.Operand) + ")"
}

func (r *Renderer) aggregate(a *queryir.AggregateCall) string {
	name := r.d.FuncName(a.Func.SQL())
	switch {
	case a.Func.TakesPercentile():
		// PERCENTILE_CONT(0.9) WITHIN GROUP (ORDER BY rating)
		return name + "(" + formatNumber(*a.Percentile) + ") WITHIN GROUP (ORDER BY " + r.columnRef(a.Column) + ")"
	case a.Input != nil:
		// The parenthesized arithmetic input stays intact inside the
		// call: AVG((a - b)) aggregates the row-level difference.
		return name + "(" + r.binaryArith(a.Input) + ")"
	case a.Column == nil:
		return name + "(*)"
	case a.Distinct:
		return name + "(DISTINCT " + r.columnRef(a.Column) + ")"
	default:
		return name + "(" + r.columnRef(a.Column) + ")"
	}
}

func (r *Renderer) window(w *queryir.WindowCall) string {
	name := r.d.FuncName(w.Func.SQL())

	var args string
	switch {
	case !w.Func.TakesColumn():
		args = ""
	case w.Func.TakesOffset():
		offset := w.Offset
		if offset == 0 {
			offset = 1
		}
		args = r.columnRef(w.Column) + ", " + strconv.FormatInt(offset, 10)
	default:
		args = r.columnRef(w.Column)
	}

	var frame []string
	if len(w.PartitionBy) > 0 {
		cols := make([]string, len(w.PartitionBy))
		for i := range w.PartitionBy {
			cols[i] = r.columnRef(&w.PartitionBy[i])
		}
		frame = append(frame, "PARTITION BY "+strings.Join(cols, ", "))
	}
	if len(w.OrderBy) > 0 {
		terms := make([]string, len(w.OrderBy))
		for i := range w.OrderBy {
			terms[i] = r.orderTerm(&w.OrderBy[i])
		}
		frame = append(frame, "ORDER BY "+strings.Join(terms, ", "))
	}

	return name + "(" + args + ") OVER (" + strings.Join(frame, " ") + ")"
}

// caseExpr renders branches in list order; SQL's WHEN evaluation is
// first-match-wins, which is exactly the branch-list semantics.
func (r *Renderer) caseExpr(c *queryir.CaseExpr) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for i := range c.Branches {
		b := &c.Branches[i]
		sb.WriteString(" WHEN ")
		sb.WriteString(r.condition(&b.When))
		sb.WriteString(" THEN ")
		sb.WriteString(r.literal(&b.Then))
	}
	if c.Else != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(r.literal(c.Else))
	}
	sb.WriteString(" END")
	return sb.String()
}

func (r *Renderer) literal(l *queryir.Literal) string {
	switch l.Kind {
	case queryir.LiteralString:
		return r.d.QuoteString(l.Str)
	case queryir.LiteralNumber:
		return formatNumber(l.Num)
	case queryir.LiteralBool:
		if l.Bool {
			return r.d.BoolTrue
		}
		return r.d.BoolFalse
	case queryir.LiteralNull:
		return "NULL"
	default:
		return ""
	}
}

// formatNumber emits the shortest decimal form without an exponent, so
// 19.99 stays 19.99 and 5 stays 5.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
