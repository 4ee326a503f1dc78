// Package schema validates serialized query documents against the
// embedded CUE wire-format schema before they are decoded.
//
// Schema validation is the front door, not the invariant keeper: a
// document that passes here still goes through queryir validation after
// decoding. What the schema adds is early, positional rejection of
// malformed documents - unknown fields, out-of-vocabulary tokens, wrong
// shapes - with CUE's path-annotated errors.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed query.cue
var schemaSrc string

var (
	compileOnce sync.Once
	cueCtx      *cue.Context
	queryDef    cue.Value
	compileErr  error
)

// compile builds the schema value once. The schema is embedded source;
// a compile failure is a build defect, surfaced as an error rather than
// a panic so callers can report it.
func compile() {
	cueCtx = cuecontext.New()
	v := cueCtx.CompileString(schemaSrc, cue.Filename("query.cue"))
	if err := v.Err(); err != nil {
		compileErr = fmt.Errorf("compile wire schema: %w", err)
		return
	}
	queryDef = v.LookupPath(cue.ParsePath("#Query"))
	if err := queryDef.Err(); err != nil {
		compileErr = fmt.Errorf("lookup #Query: %w", err)
	}
}

// ValidateDocument checks a JSON query document against the wire schema.
// The unified value is validated for concreteness, so a missing required
// field fails here rather than unifying into an incomplete value.
func ValidateDocument(data []byte) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}
	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return fmt.Errorf("wire schema: %w", err)
	}
	doc := cueCtx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("wire schema: %w", err)
	}
	unified := queryDef.Unify(doc)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return fmt.Errorf("wire schema: %w", err)
	}
	return nil
}
