package vocab

import "encoding/json"

// JSON unmarshalling for every enumeration routes through its parser, so
// decoding a serialized query document rejects unknown tokens at the
// field where they appear. Marshalling is the default string encoding.

func unmarshalVia[T ~string](data []byte, parse func(string) (T, error), dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Table) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseTable, t)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Column) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseColumn, c)
}

// UnmarshalJSON implements json.Unmarshaler.
func (op *CompareOp) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseCompareOp, op)
}

// UnmarshalJSON implements json.Unmarshaler.
func (op *ArithOp) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseArithOp, op)
}

// UnmarshalJSON implements json.Unmarshaler.
func (op *BoolOp) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseBoolOp, op)
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *JoinKind) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseJoinKind, k)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *SortDir) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseSortDir, d)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *AggFunc) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseAggFunc, f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *WindowFunc) UnmarshalJSON(data []byte) error {
	return unmarshalVia(data, ParseWindowFunc, f)
}
