package vocab

import "fmt"

// CompareOp is a comparison operator usable in filter conditions,
// having conditions, case branches, and subquery comparisons.
type CompareOp string

// The comparison operators.
const (
	CompareEq   CompareOp = "eq"
	CompareNeq  CompareOp = "neq"
	CompareLt   CompareOp = "lt"
	CompareLte  CompareOp = "lte"
	CompareGt   CompareOp = "gt"
	CompareGte  CompareOp = "gte"
	CompareLike CompareOp = "like"
)

var compareTokens = map[CompareOp]string{
	CompareEq:   "=",
	CompareNeq:  "!=",
	CompareLt:   "<",
	CompareLte:  "<=",
	CompareGt:   ">",
	CompareGte:  ">=",
	CompareLike: "LIKE",
}

// CompareOps returns all comparison operators in declaration order.
func CompareOps() []CompareOp {
	return []CompareOp{CompareEq, CompareNeq, CompareLt, CompareLte, CompareGt, CompareGte, CompareLike}
}

// ParseCompareOp returns the CompareOp for s, or an error if s is not in
// the vocabulary.
func ParseCompareOp(s string) (CompareOp, error) {
	op := CompareOp(s)
	if _, ok := compareTokens[op]; !ok {
		return "", fmt.Errorf("unknown comparison operator %q", s)
	}
	return op, nil
}

// SQL returns the SQL token for the operator.
func (op CompareOp) SQL() string { return compareTokens[op] }

// Valid reports whether op is a vocabulary member.
func (op CompareOp) Valid() bool {
	_, ok := compareTokens[op]
	return ok
}

// ArithOp is a binary arithmetic operator.
type ArithOp string

// The arithmetic operators.
const (
	ArithAdd ArithOp = "add"
	ArithSub ArithOp = "sub"
	ArithMul ArithOp = "mul"
	ArithDiv ArithOp = "div"
)

var arithTokens = map[ArithOp]string{
	ArithAdd: "+",
	ArithSub: "-",
	ArithMul: "*",
	ArithDiv: "/",
}

// ArithOps returns all arithmetic operators in declaration order.
func ArithOps() []ArithOp {
	return []ArithOp{ArithAdd, ArithSub, ArithMul, ArithDiv}
}

// ParseArithOp returns the ArithOp for s, or an error if s is not in the
// vocabulary.
func ParseArithOp(s string) (ArithOp, error) {
	op := ArithOp(s)
	if _, ok := arithTokens[op]; !ok {
		return "", fmt.Errorf("unknown arithmetic operator %q", s)
	}
	return op, nil
}

// SQL returns the SQL token for the operator.
func (op ArithOp) SQL() string { return arithTokens[op] }

// Valid reports whether op is a vocabulary member.
func (op ArithOp) Valid() bool {
	_, ok := arithTokens[op]
	return ok
}

// BoolOp combines conditions or condition groups.
type BoolOp string

// The boolean combinators.
const (
	BoolAnd BoolOp = "and"
	BoolOr  BoolOp = "or"
)

// ParseBoolOp returns the BoolOp for s, or an error if s is not in the
// vocabulary.
func ParseBoolOp(s string) (BoolOp, error) {
	switch op := BoolOp(s); op {
	case BoolAnd, BoolOr:
		return op, nil
	}
	return "", fmt.Errorf("unknown boolean operator %q", s)
}

// SQL returns the SQL token for the combinator.
func (op BoolOp) SQL() string {
	if op == BoolOr {
		return "OR"
	}
	return "AND"
}

// Valid reports whether op is a vocabulary member.
func (op BoolOp) Valid() bool { return op == BoolAnd || op == BoolOr }

// JoinKind is the kind of a join clause.
type JoinKind string

// The join kinds. Only inner and left joins are representable.
const (
	JoinInner JoinKind = "inner"
	JoinLeft  JoinKind = "left"
)

// ParseJoinKind returns the JoinKind for s, or an error if s is not in
// the vocabulary.
func ParseJoinKind(s string) (JoinKind, error) {
	switch k := JoinKind(s); k {
	case JoinInner, JoinLeft:
		return k, nil
	}
	return "", fmt.Errorf("unknown join kind %q", s)
}

// SQL returns the SQL token for the join kind.
func (k JoinKind) SQL() string {
	if k == JoinLeft {
		return "LEFT"
	}
	return "INNER"
}

// Valid reports whether k is a vocabulary member.
func (k JoinKind) Valid() bool { return k == JoinInner || k == JoinLeft }

// SortDir is an ordering direction.
type SortDir string

// The ordering directions.
const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ParseSortDir returns the SortDir for s, or an error if s is not in the
// vocabulary.
func ParseSortDir(s string) (SortDir, error) {
	switch d := SortDir(s); d {
	case SortAsc, SortDesc:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// SQL returns the SQL token for the direction.
func (d SortDir) SQL() string {
	if d == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// Valid reports whether d is a vocabulary member.
func (d SortDir) Valid() bool { return d == SortAsc || d == SortDesc }
