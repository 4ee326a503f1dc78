// Package canon produces canonical JSON bytes and content-addressed
// fingerprints for query documents.
//
// Wire-format encoding (queryir.Encode) preserves whatever field order
// the encoder picks; canonical bytes additionally sort object keys by
// UTF-16 code units (RFC 8785 order), NFC-normalize strings, and disable
// HTML escaping, so two documents describing the same tree always
// canonicalize to the same bytes regardless of the key order they
// arrived in.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical serializes v to canonical JSON. v is anything
// encoding/json can marshal; numbers pass through as their JSON text, so
// canonicalization never reformats a numeric value.
func MarshalCanonical(v any) ([]byte, error) {
	plain, err := encodeJSON(v)
	if err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(plain))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, doc); err != nil {
		return nil, fmt.Errorf("canonical marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeJSON marshals without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func writeCanonical(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
		return nil
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case json.Number:
		buf.WriteString(val.String())
		return nil
	case string:
		return writeCanonicalString(buf, val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case map[string]any:
		buf.WriteByte('{')
		for i, k := range sortedKeys(val) {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonicalString(buf, k); err != nil {
				return fmt.Errorf("key %q: %w", k, err)
			}
			buf.WriteByte(':')
			if err := writeCanonical(buf, val[k]); err != nil {
				return fmt.Errorf("[%q]: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
}

// writeCanonicalString emits an NFC-normalized JSON string without HTML
// escaping.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	encoded, err := encodeJSON(norm.NFC.String(s))
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

// sortedKeys returns keys in UTF-16 code unit order. Go's sort.Strings
// compares UTF-8 bytes, which orders supplementary-plane characters
// differently.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	if !hasSupplementary(a) && !hasSupplementary(b) {
		return strings.Compare(a, b)
	}
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}

// hasSupplementary reports whether s contains characters outside the
// Basic Multilingual Plane, the only case where UTF-8 and UTF-16 code
// unit order diverge.
func hasSupplementary(s string) bool {
	for _, r := range s {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}
