package queryir

import "fmt"

// ValidationError reports a node whose populated fields disagree with its
// discriminator, whose required peer field is missing, or that violates a
// depth or vocabulary invariant.
//
// Validation fails fast and local: the error is always attributable to
// one specific node, and enclosing nodes wrap it with path context
// (e.g. "select[2]: expression: ...").
type ValidationError struct {
	// Node is the IR node type, e.g. "AggregateCall".
	Node string

	// Field is the offending field within the node, if one can be named.
	Field string

	// Message describes the violation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Node, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Node, e.Message)
}

// errf builds a ValidationError for node/field with a formatted message.
func errf(node, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Node:    node,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapf prefixes a nested validation error with path context. The
// underlying ValidationError stays reachable via errors.As.
func wrapf(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}

// indexed formats a list element path, e.g. "groups[2]".
func indexed(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
