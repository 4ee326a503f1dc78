// Package dialect holds the per-dialect configuration the renderer
// consults at the leaves: identifier quoting, boolean tokens, and
// function-name overrides. The rendering algorithm itself is
// dialect-independent; everything a dialect may change lives here.
package dialect

import "strings"

// Dialect configures leaf-level SQL formatting.
type Dialect struct {
	// Name identifies the dialect in the registry.
	Name string

	// IdentQuote wraps identifiers. Empty means no quoting; the
	// vocabulary only contains lower_snake identifiers, so quoting is a
	// style choice, not an escaping necessity.
	IdentQuote string

	// BoolTrue and BoolFalse are the boolean literal tokens.
	BoolTrue  string
	BoolFalse string

	// FuncNames overrides function tokens, keyed by the vocabulary's
	// default token. Functions not present render under their default.
	FuncNames map[string]string
}

// QuoteIdent quotes an identifier per the dialect.
func (d *Dialect) QuoteIdent(ident string) string {
	if d.IdentQuote == "" {
		return ident
	}
	return d.IdentQuote + ident + d.IdentQuote
}

// FuncName resolves a function token through the override map.
func (d *Dialect) FuncName(token string) string {
	if d.FuncNames != nil {
		if name, ok := d.FuncNames[token]; ok {
			return name
		}
	}
	return token
}

// QuoteString renders a string literal, single-quoted with embedded
// quotes doubled. This is uniform across the dialect family.
func (d *Dialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
