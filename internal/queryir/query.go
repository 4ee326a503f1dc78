package queryir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Query is the root of the IR tree: exactly one select list and source,
// and at most one of each optional clause. A Query is constructed once,
// validated, rendered, and discarded; nothing mutates it afterwards.
type Query struct {
	Select     []SelectItem          `json:"select"`
	From       Source                `json:"from"`
	Joins      []Join                `json:"joins,omitempty"`
	Where      *FilterWithSubqueries `json:"where,omitempty"`
	GroupBy    *Grouping             `json:"group_by,omitempty"`
	Having     *Having               `json:"having,omitempty"`
	OrderBy    *Ordering             `json:"order_by,omitempty"`
	Pagination *Pagination           `json:"pagination,omitempty"`
}

// Validate walks the whole tree, failing on the first offending node.
// Beyond per-node checks it enforces the cross-clause rules that only the
// root can see: HAVING requires GROUP BY, select aliases must be unique,
// and ordering terms that name a select alias must name one that exists.
func (q *Query) Validate() error {
	if len(q.Select) == 0 {
		return errf("Query", "select", "at least one select item is required")
	}
	aliases := make(map[string]bool, len(q.Select))
	for i := range q.Select {
		item := &q.Select[i]
		if err := item.Validate(); err != nil {
			return wrapf(indexed("select", i), err)
		}
		if item.Alias != "" {
			if aliases[item.Alias] {
				return errf("Query", indexed("select", i), "duplicate select alias %q", item.Alias)
			}
			aliases[item.Alias] = true
		}
	}
	if err := q.From.Validate(); err != nil {
		return wrapf("from", err)
	}
	for i := range q.Joins {
		if err := q.Joins[i].Validate(); err != nil {
			return wrapf(indexed("joins", i), err)
		}
	}
	if q.Where != nil {
		if err := q.Where.Validate(); err != nil {
			return wrapf("where", err)
		}
	}
	if q.GroupBy != nil {
		if err := q.GroupBy.Validate(); err != nil {
			return wrapf("group_by", err)
		}
	}
	if q.Having != nil {
		if q.GroupBy == nil {
			return errf("Query", "having", "having requires a grouping clause")
		}
		if err := q.Having.Validate(); err != nil {
			return wrapf("having", err)
		}
	}
	if q.OrderBy != nil {
		if err := q.OrderBy.Validate(); err != nil {
			return wrapf("order_by", err)
		}
		for i := range q.OrderBy.Terms {
			term := &q.OrderBy.Terms[i]
			if term.SelectAlias != "" && !aliases[term.SelectAlias] {
				return errf("Query", indexed("order_by.terms", i), "ordering references unknown select alias %q", term.SelectAlias)
			}
		}
	}
	if q.Pagination != nil {
		if err := q.Pagination.Validate(); err != nil {
			return wrapf("pagination", err)
		}
	}
	return nil
}

// Encode serializes the query as its wire-format JSON document. The
// output decodes back to an equal tree; canonical bytes for fingerprints
// are the canon package's concern.
func Encode(q *Query) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses a wire-format JSON document and validates the resulting
// tree. Unknown fields are rejected: the wire contract is closed, like
// the vocabulary.
func Decode(data []byte) (*Query, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var q Query
	if err := dec.Decode(&q); err != nil {
		return nil, fmt.Errorf("decode query: %w", err)
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("validate query: %w", err)
	}
	return &q, nil
}
