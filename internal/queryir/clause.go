package queryir

import "github.com/offerlens/offerql/internal/vocab"

// SelectItem is one select-list entry: an expression and an optional
// output alias. Arithmetic, aggregate, window, and case expressions are
// conventionally aliased so later clauses can reference them by name.
type SelectItem struct {
	Expr  Expression `json:"expr"`
	Alias string     `json:"alias,omitempty"`
}

// Validate checks the expression.
func (s *SelectItem) Validate() error {
	if err := s.Expr.Validate(); err != nil {
		return wrapf("expr", err)
	}
	return nil
}

// JoinCondition is one column-to-column equality in a join's ON clause.
// Joins never compare a column to a literal; literal filtering belongs in
// WHERE.
type JoinCondition struct {
	LeftAlias   string       `json:"left_alias"`
	LeftColumn  vocab.Column `json:"left_column"`
	RightAlias  string       `json:"right_alias"`
	RightColumn vocab.Column `json:"right_column"`
}

// Validate checks both columns and requires both aliases.
func (j *JoinCondition) Validate() error {
	if j.LeftAlias == "" {
		return errf("JoinCondition", "left_alias", "join conditions must qualify both sides with an alias")
	}
	if j.RightAlias == "" {
		return errf("JoinCondition", "right_alias", "join conditions must qualify both sides with an alias")
	}
	if !j.LeftColumn.Valid() {
		return errf("JoinCondition", "left_column", "unknown column %q", string(j.LeftColumn))
	}
	if !j.RightColumn.Valid() {
		return errf("JoinCondition", "right_column", "unknown column %q", string(j.RightColumn))
	}
	return nil
}

// Join brings one more table into the source with one or more equality
// conditions.
type Join struct {
	Kind  vocab.JoinKind  `json:"kind"`
	Table vocab.Table     `json:"table"`
	Alias string          `json:"alias,omitempty"`
	On    []JoinCondition `json:"on"`
}

// Validate checks the kind, table, and conditions.
func (j *Join) Validate() error {
	if !j.Kind.Valid() {
		return errf("Join", "kind", "unknown join kind %q", string(j.Kind))
	}
	if !j.Table.Valid() {
		return errf("Join", "table", "unknown table %q", string(j.Table))
	}
	if len(j.On) == 0 {
		return errf("Join", "on", "at least one join condition is required")
	}
	for i := range j.On {
		if err := j.On[i].Validate(); err != nil {
			return wrapf(indexed("on", i), err)
		}
	}
	return nil
}

// DerivedTable is a nested select used in place of a plain table in the
// source position. Its filter field is the depth-0 Filter type: a derived
// table cannot host a subquery-bearing filter.
type DerivedTable struct {
	Select     []SelectItem `json:"select"`
	Table      vocab.Table  `json:"table"`
	TableAlias string       `json:"table_alias,omitempty"`
	Joins      []Join       `json:"joins,omitempty"`
	Filter     *Filter      `json:"filter,omitempty"`
	GroupBy    *Grouping    `json:"group_by,omitempty"`

	// Alias names the derived table in the outer query. Required.
	Alias string `json:"alias"`
}

// Validate checks the inner select list, source, joins, depth-0 filter,
// and grouping, and requires the outer alias.
func (d *DerivedTable) Validate() error {
	if d.Alias == "" {
		return errf("DerivedTable", "alias", "derived tables must be aliased")
	}
	if !d.Table.Valid() {
		return errf("DerivedTable", "table", "unknown table %q", string(d.Table))
	}
	if len(d.Select) == 0 {
		return errf("DerivedTable", "select", "at least one select item is required")
	}
	for i := range d.Select {
		if err := d.Select[i].Validate(); err != nil {
			return wrapf(indexed("select", i), err)
		}
	}
	for i := range d.Joins {
		if err := d.Joins[i].Validate(); err != nil {
			return wrapf(indexed("joins", i), err)
		}
	}
	if d.Filter != nil {
		if err := d.Filter.Validate(); err != nil {
			return wrapf("filter", err)
		}
	}
	if d.GroupBy != nil {
		if err := d.GroupBy.Validate(); err != nil {
			return wrapf("group_by", err)
		}
	}
	return nil
}

// Source is the FROM position: exclusively a plain table (with optional
// alias) or a derived table.
type Source struct {
	Table   *vocab.Table  `json:"table,omitempty"`
	Alias   string        `json:"alias,omitempty"`
	Derived *DerivedTable `json:"derived,omitempty"`
}

// Validate enforces the table-or-derived exclusivity.
func (s *Source) Validate() error {
	switch {
	case s.Table == nil && s.Derived == nil:
		return errf("Source", "", "neither table nor derived is populated")
	case s.Table != nil && s.Derived != nil:
		return errf("Source", "", "both table and derived are populated")
	case s.Table != nil:
		if !s.Table.Valid() {
			return errf("Source", "table", "unknown table %q", string(*s.Table))
		}
		return nil
	default:
		if s.Alias != "" {
			return errf("Source", "alias", "a derived source carries its own alias")
		}
		return wrapOK("derived", s.Derived.Validate())
	}
}

// SourceAlias returns the alias the source is addressable by: the
// explicit alias, the derived table's alias, or the bare table name.
func (s *Source) SourceAlias() string {
	if s.Derived != nil {
		return s.Derived.Alias
	}
	if s.Alias != "" {
		return s.Alias
	}
	if s.Table != nil {
		return s.Table.SQL()
	}
	return ""
}

// Grouping lists the GROUP BY keys.
type Grouping struct {
	Columns []ColumnRef `json:"columns"`
}

// Validate requires at least one key and checks each.
func (g *Grouping) Validate() error {
	if len(g.Columns) == 0 {
		return errf("Grouping", "columns", "at least one grouping column is required")
	}
	for i := range g.Columns {
		if err := g.Columns[i].Validate(); err != nil {
			return wrapf(indexed("columns", i), err)
		}
	}
	return nil
}

// HavingCondition compares an aggregate result against a literal.
type HavingCondition struct {
	Aggregate AggregateCall   `json:"aggregate"`
	Op        vocab.CompareOp `json:"op"`
	Value     Literal         `json:"value"`
}

// Validate checks the aggregate, operator, and literal.
func (h *HavingCondition) Validate() error {
	if !h.Op.Valid() {
		return errf("HavingCondition", "op", "unknown comparison operator %q", string(h.Op))
	}
	if err := h.Aggregate.Validate(); err != nil {
		return wrapf("aggregate", err)
	}
	if err := h.Value.Validate(); err != nil {
		return wrapf("value", err)
	}
	// Comparing an aggregate against NULL never matches; there is no IS
	// form for aggregate results in this shape, so reject it outright.
	if h.Value.Kind == LiteralNull {
		return errf("HavingCondition", "value", "having comparisons require a non-null literal")
	}
	return nil
}

// Having is the post-aggregation filter: aggregate comparisons combined
// by a single boolean operator.
type Having struct {
	Op         vocab.BoolOp      `json:"bool_op"`
	Conditions []HavingCondition `json:"conditions"`
}

// Validate checks the combinator and each condition.
func (h *Having) Validate() error {
	if !h.Op.Valid() {
		return errf("Having", "bool_op", "unknown boolean operator %q", string(h.Op))
	}
	if len(h.Conditions) == 0 {
		return errf("Having", "conditions", "at least one having condition is required")
	}
	for i := range h.Conditions {
		if err := h.Conditions[i].Validate(); err != nil {
			return wrapf(indexed("conditions", i), err)
		}
	}
	return nil
}

// OrderTerm is one ordering key: exclusively a column reference or a
// select-list alias.
type OrderTerm struct {
	Column      *ColumnRef    `json:"column,omitempty"`
	SelectAlias string        `json:"select_alias,omitempty"`
	Dir         vocab.SortDir `json:"dir"`
}

// Validate enforces the column-or-alias exclusivity and checks the
// direction. Whether a select alias actually exists is checked by the
// owning Query, which is the scope that knows the select list.
func (o *OrderTerm) Validate() error {
	if !o.Dir.Valid() {
		return errf("OrderTerm", "dir", "unknown sort direction %q", string(o.Dir))
	}
	switch {
	case o.Column == nil && o.SelectAlias == "":
		return errf("OrderTerm", "", "neither column nor select_alias is populated")
	case o.Column != nil && o.SelectAlias != "":
		return errf("OrderTerm", "", "both column and select_alias are populated")
	case o.Column != nil:
		return wrapOK("column", o.Column.Validate())
	}
	return nil
}

// Ordering lists the ORDER BY terms.
type Ordering struct {
	Terms []OrderTerm `json:"terms"`
}

// Validate requires at least one term and checks each.
func (o *Ordering) Validate() error {
	if len(o.Terms) == 0 {
		return errf("Ordering", "terms", "at least one ordering term is required")
	}
	for i := range o.Terms {
		if err := o.Terms[i].Validate(); err != nil {
			return wrapf(indexed("terms", i), err)
		}
	}
	return nil
}

// Pagination is the LIMIT/OFFSET pair.
type Pagination struct {
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset,omitempty"`
}

// Validate requires a positive limit and a non-negative offset.
func (p *Pagination) Validate() error {
	if p.Limit <= 0 {
		return errf("Pagination", "limit", "limit must be positive, got %d", p.Limit)
	}
	if p.Offset < 0 {
		return errf("Pagination", "offset", "offset must not be negative, got %d", p.Offset)
	}
	return nil
}
