package vocab

import "fmt"

// AggFunc is an aggregate function.
type AggFunc string

// The aggregate functions.
const (
	AggCount          AggFunc = "count"
	AggSum            AggFunc = "sum"
	AggAvg            AggFunc = "avg"
	AggMin            AggFunc = "min"
	AggMax            AggFunc = "max"
	AggPercentileCont AggFunc = "percentile_cont"
)

var aggTokens = map[AggFunc]string{
	AggCount:          "COUNT",
	AggSum:            "SUM",
	AggAvg:            "AVG",
	AggMin:            "MIN",
	AggMax:            "MAX",
	AggPercentileCont: "PERCENTILE_CONT",
}

// AggFuncs returns all aggregate functions in declaration order.
func AggFuncs() []AggFunc {
	return []AggFunc{AggCount, AggSum, AggAvg, AggMin, AggMax, AggPercentileCont}
}

// ParseAggFunc returns the AggFunc for s, or an error if s is not in the
// vocabulary.
func ParseAggFunc(s string) (AggFunc, error) {
	f := AggFunc(s)
	if _, ok := aggTokens[f]; !ok {
		return "", fmt.Errorf("unknown aggregate function %q", s)
	}
	return f, nil
}

// SQL returns the SQL token for the function.
func (f AggFunc) SQL() string { return aggTokens[f] }

// Valid reports whether f is a vocabulary member.
func (f AggFunc) Valid() bool {
	_, ok := aggTokens[f]
	return ok
}

// TakesPercentile reports whether f requires a percentile parameter.
func (f AggFunc) TakesPercentile() bool { return f == AggPercentileCont }

// WindowFunc is a window function.
type WindowFunc string

// The window functions.
const (
	WindowRowNumber  WindowFunc = "row_number"
	WindowRank       WindowFunc = "rank"
	WindowDenseRank  WindowFunc = "dense_rank"
	WindowLag        WindowFunc = "lag"
	WindowLead       WindowFunc = "lead"
	WindowFirstValue WindowFunc = "first_value"
	WindowLastValue  WindowFunc = "last_value"
)

var windowTokens = map[WindowFunc]string{
	WindowRowNumber:  "ROW_NUMBER",
	WindowRank:       "RANK",
	WindowDenseRank:  "DENSE_RANK",
	WindowLag:        "LAG",
	WindowLead:       "LEAD",
	WindowFirstValue: "FIRST_VALUE",
	WindowLastValue:  "LAST_VALUE",
}

// WindowFuncs returns all window functions in declaration order.
func WindowFuncs() []WindowFunc {
	return []WindowFunc{
		WindowRowNumber, WindowRank, WindowDenseRank,
		WindowLag, WindowLead, WindowFirstValue, WindowLastValue,
	}
}

// ParseWindowFunc returns the WindowFunc for s, or an error if s is not
// in the vocabulary.
func ParseWindowFunc(s string) (WindowFunc, error) {
	f := WindowFunc(s)
	if _, ok := windowTokens[f]; !ok {
		return "", fmt.Errorf("unknown window function %q", s)
	}
	return f, nil
}

// SQL returns the SQL token for the function.
func (f WindowFunc) SQL() string { return windowTokens[f] }

// Valid reports whether f is a vocabulary member.
func (f WindowFunc) Valid() bool {
	_, ok := windowTokens[f]
	return ok
}

// TakesOffset reports whether f accepts a row offset argument.
func (f WindowFunc) TakesOffset() bool { return f == WindowLag || f == WindowLead }

// TakesColumn reports whether f requires a target column. Ranking
// functions take no argument; value functions require one.
func (f WindowFunc) TakesColumn() bool {
	switch f {
	case WindowRowNumber, WindowRank, WindowDenseRank:
		return false
	}
	return true
}
