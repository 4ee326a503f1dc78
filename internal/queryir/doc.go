// Package queryir defines the structured query intermediate
// representation: a finite, depth-bounded, tag-discriminated tree that
// describes one analytical SELECT statement over the closed vocabulary.
//
// ARCHITECTURE:
//
// The IR sits between query authors (programmatic builders, or systems
// that can only emit flat tagged objects) and the SQL renderer:
//
//	[author] → [queryir tree] → [querysql renderer] → SQL text
//
// SQL's naturally recursive grammar is deliberately unrolled into a small
// number of explicit nesting levels. Every construct that is recursive in
// SQL appears here as two concrete types at most:
//
//   - Arithmetic: BinaryArith (one level) and CompoundArith (exactly two
//     levels, never three).
//   - Boolean predicates: Condition lists inside ConditionGroup lists -
//     two boolean levels, fixed.
//   - Subqueries: Filter (depth 0, no subqueries) and
//     FilterWithSubqueries (depth 1, whose embedded subquery bodies are
//     the depth-0 type). A subquery inside a subquery is not a rejected
//     state; it is an unconstructible one, because the body field's type
//     has no subquery capability.
//
// TAGGED UNIONS:
//
// Expression is a struct carrying an explicit discriminator (ExprType)
// plus one optional field per variant. Exactly one variant field may be
// populated, and it must be the one the discriminator names. The same
// shape is the wire contract: a serialized tree is a tree of tagged JSON
// objects, and encode/decode round-trips losslessly.
//
// VALIDATION:
//
// Every node validates at construction scope via Validate. A node whose
// populated fields disagree with its discriminator, whose required peer
// field is missing, or that names a token outside the vocabulary is
// rejected with a ValidationError naming the node type and field. If
// validation succeeds, rendering cannot fail; there is no
// translation-time error category.
//
// OWNERSHIP:
//
// The Query tree owns all descendants top-down. There are no
// back-references and no shared nodes. A tree is built once, validated,
// rendered, and discarded; nothing mutates it after construction, so
// independent trees may be rendered concurrently with no coordination.
package queryir
