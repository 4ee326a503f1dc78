package queryir

import "github.com/offerlens/offerql/internal/vocab"

// Condition is a single simple comparison: a column against either a
// literal or another column. Exactly one of Value and CompareTo is
// populated.
type Condition struct {
	Column ColumnRef       `json:"column"`
	Op     vocab.CompareOp `json:"op"`

	Value     *Literal   `json:"value,omitempty"`
	CompareTo *ColumnRef `json:"compare_to,omitempty"`
}

// Validate enforces the value-or-column exclusivity and per-operator
// literal shape.
func (c *Condition) Validate() error {
	if !c.Op.Valid() {
		return errf("Condition", "op", "unknown comparison operator %q", string(c.Op))
	}
	if err := c.Column.Validate(); err != nil {
		return wrapf("column", err)
	}
	switch {
	case c.Value == nil && c.CompareTo == nil:
		return errf("Condition", "", "neither value nor compare_to is populated")
	case c.Value != nil && c.CompareTo != nil:
		return errf("Condition", "", "both value and compare_to are populated")
	case c.CompareTo != nil:
		return wrapOK("compare_to", c.CompareTo.Validate())
	}
	if err := c.Value.Validate(); err != nil {
		return wrapf("value", err)
	}
	if c.Op == vocab.CompareLike && c.Value.Kind != LiteralString {
		return errf("Condition", "value", "LIKE requires a string literal, got %s", c.Value.Kind)
	}
	if c.Value.Kind == LiteralNull && c.Op != vocab.CompareEq && c.Op != vocab.CompareNeq {
		return errf("Condition", "op", "null may only be compared with eq or neq")
	}
	return nil
}

// wrapOK wraps err with path context when non-nil.
func wrapOK(path string, err error) error {
	if err == nil {
		return nil
	}
	return wrapf(path, err)
}

// ConditionGroup combines one or more conditions under a single boolean
// operator. Groups are the inner of the two fixed boolean levels.
type ConditionGroup struct {
	Op         vocab.BoolOp `json:"bool_op"`
	Conditions []Condition  `json:"conditions"`
}

// Validate checks the combinator and each condition.
func (g *ConditionGroup) Validate() error {
	if !g.Op.Valid() {
		return errf("ConditionGroup", "bool_op", "unknown boolean operator %q", string(g.Op))
	}
	if len(g.Conditions) == 0 {
		return errf("ConditionGroup", "conditions", "at least one condition is required")
	}
	for i := range g.Conditions {
		if err := g.Conditions[i].Validate(); err != nil {
			return wrapf(indexed("conditions", i), err)
		}
	}
	return nil
}

// Filter is the depth-0 predicate: condition groups combined by one outer
// boolean operator. Boolean nesting is exactly two levels, and no
// subquery can appear anywhere beneath it. Filter is the terminal type
// for derived-table filters and subquery bodies.
type Filter struct {
	Op     vocab.BoolOp     `json:"bool_op"`
	Groups []ConditionGroup `json:"groups"`
}

// Validate checks the combinator and each group.
func (f *Filter) Validate() error {
	if !f.Op.Valid() {
		return errf("Filter", "bool_op", "unknown boolean operator %q", string(f.Op))
	}
	if len(f.Groups) == 0 {
		return errf("Filter", "groups", "at least one condition group is required")
	}
	for i := range f.Groups {
		if err := f.Groups[i].Validate(); err != nil {
			return wrapf(indexed("groups", i), err)
		}
	}
	return nil
}

// ScalarSubquery is the body of a scalar subquery comparison: one
// aggregate over one table, optionally filtered. The filter field is the
// depth-0 Filter type, which is what makes a subquery inside a subquery
// unconstructible rather than merely disallowed.
type ScalarSubquery struct {
	Table      vocab.Table   `json:"table"`
	TableAlias string        `json:"table_alias,omitempty"`
	Aggregate  AggregateCall `json:"aggregate"`
	Filter     *Filter       `json:"filter,omitempty"`
}

// Validate checks the source table, the aggregate, and the optional
// depth-0 filter.
func (s *ScalarSubquery) Validate() error {
	if !s.Table.Valid() {
		return errf("ScalarSubquery", "table", "unknown table %q", string(s.Table))
	}
	if err := s.Aggregate.Validate(); err != nil {
		return wrapf("aggregate", err)
	}
	if s.Filter != nil {
		if err := s.Filter.Validate(); err != nil {
			return wrapf("filter", err)
		}
	}
	return nil
}

// SubqueryCondition compares a column against the scalar result of a
// depth-0 subquery, e.g. markdown_price < (SELECT AVG(...) ...).
type SubqueryCondition struct {
	Column   ColumnRef       `json:"column"`
	Op       vocab.CompareOp `json:"op"`
	Subquery ScalarSubquery  `json:"subquery"`
}

// Validate checks the compared column, the operator, and the subquery
// body.
func (s *SubqueryCondition) Validate() error {
	if !s.Op.Valid() {
		return errf("SubqueryCondition", "op", "unknown comparison operator %q", string(s.Op))
	}
	if s.Op == vocab.CompareLike {
		return errf("SubqueryCondition", "op", "LIKE cannot compare against a scalar subquery")
	}
	if err := s.Column.Validate(); err != nil {
		return wrapf("column", err)
	}
	if err := s.Subquery.Validate(); err != nil {
		return wrapf("subquery", err)
	}
	return nil
}

// FilterWithSubqueries is the depth-1 predicate: everything Filter offers
// plus scalar subquery comparisons pinned to depth-0 bodies. It is only
// reachable at the top-level query's own WHERE clause; derived tables and
// subquery bodies use Filter, so there is no path from depth 1 back into
// another depth 1.
type FilterWithSubqueries struct {
	Op                 vocab.BoolOp        `json:"bool_op"`
	Groups             []ConditionGroup    `json:"groups,omitempty"`
	SubqueryConditions []SubqueryCondition `json:"subquery_conditions,omitempty"`
}

// Validate checks the combinator and requires at least one group or
// subquery comparison.
func (f *FilterWithSubqueries) Validate() error {
	if !f.Op.Valid() {
		return errf("FilterWithSubqueries", "bool_op", "unknown boolean operator %q", string(f.Op))
	}
	if len(f.Groups) == 0 && len(f.SubqueryConditions) == 0 {
		return errf("FilterWithSubqueries", "", "at least one condition group or subquery condition is required")
	}
	for i := range f.Groups {
		if err := f.Groups[i].Validate(); err != nil {
			return wrapf(indexed("groups", i), err)
		}
	}
	for i := range f.SubqueryConditions {
		if err := f.SubqueryConditions[i].Validate(); err != nil {
			return wrapf(indexed("subquery_conditions", i), err)
		}
	}
	return nil
}
