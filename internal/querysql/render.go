// Package querysql renders a validated queryir tree to SQL text.
//
// Render is a pure single-pass walk: clauses are emitted in fixed SQL
// order (SELECT, FROM with joins, WHERE, GROUP BY, HAVING, ORDER BY,
// LIMIT/OFFSET), absent optional clauses emit nothing, and every node is
// rendered by one exhaustive dispatch over its discriminator. Given the
// same tree the output is byte-identical; the renderer performs no I/O,
// mutates nothing, and never invents or alters an alias.
//
// A malformed tree is unconstructible through queryir validation, so the
// walk itself has no failure path: Render validates and then emits.
package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/offerlens/offerql/internal/dialect"
	"github.com/offerlens/offerql/internal/queryir"
	"github.com/offerlens/offerql/internal/vocab"
)

// Renderer turns queryir trees into SQL text for one dialect.
type Renderer struct {
	d *dialect.Dialect
}

// NewRenderer returns a renderer for the given dialect.
func NewRenderer(d *dialect.Dialect) *Renderer {
	return &Renderer{d: d}
}

// Render validates q and renders it with the default dialect.
func Render(q *queryir.Query) (string, error) {
	return NewRenderer(dialect.Default()).Render(q)
}

// Render validates q and emits one complete SQL statement. The only
// error path is validation; emission cannot fail for a valid tree.
func (r *Renderer) Render(q *queryir.Query) (string, error) {
	if q == nil {
		return "", fmt.Errorf("render: nil query")
	}
	if err := q.Validate(); err != nil {
		return "", fmt.Errorf("render: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(r.selectList(q.Select))
	sb.WriteString(" FROM ")
	sb.WriteString(r.source(&q.From))
	for i := range q.Joins {
		sb.WriteString(" ")
		sb.WriteString(r.join(&q.Joins[i]))
	}
	if q.Where != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.whereFilter(q.Where))
	}
	if q.GroupBy != nil {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(r.grouping(q.GroupBy))
	}
	if q.Having != nil {
		sb.WriteString(" HAVING ")
		sb.WriteString(r.having(q.Having))
	}
	if q.OrderBy != nil {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(r.ordering(q.OrderBy))
	}
	if q.Pagination != nil {
		sb.WriteString(" ")
		sb.WriteString(r.pagination(q.Pagination))
	}
	return sb.String(), nil
}

func (r *Renderer) selectList(items []queryir.SelectItem) string {
	parts := make([]string, len(items))
	for i := range items {
		parts[i] = r.selectItem(&items[i])
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) selectItem(item *queryir.SelectItem) string {
	sql := r.expression(&item.Expr)
	if item.Alias != "" {
		return sql + " AS " + r.d.QuoteIdent(item.Alias)
	}
	return sql
}

func (r *Renderer) source(s *queryir.Source) string {
	if s.Derived != nil {
		return r.derivedTable(s.Derived)
	}
	sql := r.d.QuoteIdent(s.Table.SQL())
	if s.Alias != "" {
		sql += " AS " + r.d.QuoteIdent(s.Alias)
	}
	return sql
}

func (r *Renderer) derivedTable(d *queryir.DerivedTable) string {
	var sb strings.Builder
	sb.WriteString("(SELECT ")
	sb.WriteString(r.selectList(d.Select))
	sb.WriteString(" FROM ")
	sb.WriteString(r.d.QuoteIdent(d.Table.SQL()))
	if d.TableAlias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(r.d.QuoteIdent(d.TableAlias))
	}
	for i := range d.Joins {
		sb.WriteString(" ")
		sb.WriteString(r.join(&d.Joins[i]))
	}
	if d.Filter != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.filter(d.Filter))
	}
	if d.GroupBy != nil {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(r.grouping(d.GroupBy))
	}
	sb.WriteString(") AS ")
	sb.WriteString(r.d.QuoteIdent(d.Alias))
	return sb.String()
}

func (r *Renderer) join(j *queryir.Join) string {
	var sb strings.Builder
	sb.WriteString(j.Kind.SQL())
	sb.WriteString(" JOIN ")
	sb.WriteString(r.d.QuoteIdent(j.Table.SQL()))
	if j.Alias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(r.d.QuoteIdent(j.Alias))
	}
	sb.WriteString(" ON ")
	conds := make([]string, len(j.On))
	for i := range j.On {
		c := &j.On[i]
		conds[i] = fmt.Sprintf("%s.%s = %s.%s",
			r.d.QuoteIdent(c.LeftAlias), r.d.QuoteIdent(c.LeftColumn.SQL()),
			r.d.QuoteIdent(c.RightAlias), r.d.QuoteIdent(c.RightColumn.SQL()))
	}
	sb.WriteString(strings.Join(conds, " AND "))
	return sb.String()
}

// filter renders a depth-0 filter. A single-condition group emits its
// condition bare; multi-condition groups are parenthesized so the outer
// combinator can never re-associate them.
func (r *Renderer) filter(f *queryir.Filter) string {
	parts := make([]string, len(f.Groups))
	for i := range f.Groups {
		parts[i] = r.conditionGroup(&f.Groups[i])
	}
	return strings.Join(parts, " "+f.Op.SQL()+" ")
}

// whereFilter renders the top-level depth-1 filter: condition groups
// first, then subquery comparisons, all joined by the outer combinator.
func (r *Renderer) whereFilter(f *queryir.FilterWithSubqueries) string {
	parts := make([]string, 0, len(f.Groups)+len(f.SubqueryConditions))
	for i := range f.Groups {
		parts = append(parts, r.conditionGroup(&f.Groups[i]))
	}
	for i := range f.SubqueryConditions {
		parts = append(parts, r.subqueryCondition(&f.SubqueryConditions[i]))
	}
	return strings.Join(parts, " "+f.Op.SQL()+" ")
}

func (r *Renderer) conditionGroup(g *queryir.ConditionGroup) string {
	if len(g.Conditions) == 1 {
		return r.condition(&g.Conditions[0])
	}
	parts := make([]string, len(g.Conditions))
	for i := range g.Conditions {
		parts[i] = r.condition(&g.Conditions[i])
	}
	return "(" + strings.Join(parts, " "+g.Op.SQL()+" ") + ")"
}

func (r *Renderer) condition(c *queryir.Condition) string {
	left := r.columnRef(&c.Column)
	if c.CompareTo != nil {
		return left + " " + c.Op.SQL() + " " + r.columnRef(c.CompareTo)
	}
	// Null comparisons use the IS forms; = NULL never matches in SQL.
	if c.Value.Kind == queryir.LiteralNull {
		if c.Op == vocab.CompareNeq {
			return left + " IS NOT NULL"
		}
		return left + " IS NULL"
	}
	return left + " " + c.Op.SQL() + " " + r.literal(c.Value)
}

// subqueryCondition renders the scalar subquery fully parenthesized as a
// single comparison operand.
func (r *Renderer) subqueryCondition(s *queryir.SubqueryCondition) string {
	return r.columnRef(&s.Column) + " " + s.Op.SQL() + " " + r.scalarSubquery(&s.Subquery)
}

func (r *Renderer) scalarSubquery(s *queryir.ScalarSubquery) string {
	var sb strings.Builder
	sb.WriteString("(SELECT ")
	sb.WriteString(r.aggregate(&s.Aggregate))
	sb.WriteString(" FROM ")
	sb.WriteString(r.d.QuoteIdent(s.Table.SQL()))
	if s.TableAlias != "" {
		sb.WriteString(" AS ")
		sb.WriteString(r.d.QuoteIdent(s.TableAlias))
	}
	if s.Filter != nil {
		sb.WriteString(" WHERE ")
		sb.WriteString(r.filter(s.Filter))
	}
	sb.WriteString(")")
	return sb.String()
}

func (r *Renderer) grouping(g *queryir.Grouping) string {
	parts := make([]string, len(g.Columns))
	for i := range g.Columns {
		parts[i] = r.columnRef(&g.Columns[i])
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) having(h *queryir.Having) string {
	parts := make([]string, len(h.Conditions))
	for i := range h.Conditions {
		c := &h.Conditions[i]
		parts[i] = r.aggregate(&c.Aggregate) + " " + c.Op.SQL() + " " + r.literal(&c.Value)
	}
	return strings.Join(parts, " "+h.Op.SQL()+" ")
}

func (r *Renderer) ordering(o *queryir.Ordering) string {
	parts := make([]string, len(o.Terms))
	for i := range o.Terms {
		parts[i] = r.orderTerm(&o.Terms[i])
	}
	return strings.Join(parts, ", ")
}

func (r *Renderer) orderTerm(t *queryir.OrderTerm) string {
	if t.SelectAlias != "" {
		return r.d.QuoteIdent(t.SelectAlias) + " " + t.Dir.SQL()
	}
	return r.columnRef(t.Column) + " " + t.Dir.SQL()
}

func (r *Renderer) pagination(p *queryir.Pagination) string {
	sql := "LIMIT " + strconv.FormatInt(p.Limit, 10)
	if p.Offset > 0 {
		sql += " OFFSET " + strconv.FormatInt(p.Offset, 10)
	}
	return sql
}
