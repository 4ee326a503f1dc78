// Package vocab defines the closed vocabulary of the query IR.
//
// Every SQL entity a query may name - tables, columns, comparison and
// arithmetic operators, aggregate and window functions - is a member of
// one of the enumerations in this package. There is no raw-string escape
// hatch: a query can only reference what the vocabulary enumerates, which
// is what gives the renderer its correctness-by-construction guarantee.
//
// Each enumeration member maps to exactly one SQL token via SQL(), and no
// two members of the same enumeration render identically. Parse functions
// are the only way to obtain a member from untrusted text; they reject
// anything outside the closed set. JSON unmarshalling routes through the
// parsers, so a serialized query document can never smuggle an unknown
// token past construction.
package vocab

import "fmt"

// Table identifies a queryable table.
type Table string

// The queryable tables.
const (
	TableProductOffers Table = "product_offers"
	TableExactMatches  Table = "exact_matches"
	TablePriceHistory  Table = "price_history"
	TableVendors       Table = "vendors"
)

var allTables = []Table{
	TableProductOffers,
	TableExactMatches,
	TablePriceHistory,
	TableVendors,
}

// Tables returns all tables in declaration order.
func Tables() []Table {
	out := make([]Table, len(allTables))
	copy(out, allTables)
	return out
}

// ParseTable returns the Table for s, or an error if s is not in the
// vocabulary.
func ParseTable(s string) (Table, error) {
	for _, t := range allTables {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table %q", s)
}

// SQL returns the SQL token for the table.
func (t Table) SQL() string { return string(t) }

// Valid reports whether t is a vocabulary member.
func (t Table) Valid() bool {
	_, err := ParseTable(string(t))
	return err == nil
}

// Columns returns the columns of the table in schema order.
func (t Table) Columns() []Column {
	switch t {
	case TableProductOffers:
		return []Column{
			ColumnID, ColumnProductName, ColumnVendor, ColumnCategory,
			ColumnBrand, ColumnListPrice, ColumnMarkdownPrice,
			ColumnStockQty, ColumnRating, ColumnUpdatedAt,
		}
	case TableExactMatches:
		return []Column{ColumnID, ColumnSourceID, ColumnMatchedID, ColumnConfidence}
	case TablePriceHistory:
		return []Column{ColumnID, ColumnOfferID, ColumnRecordedAt, ColumnPrice}
	case TableVendors:
		return []Column{ColumnID, ColumnVendorName, ColumnRegion}
	default:
		return nil
	}
}

// Column identifies a column. Columns are a single flat enumeration; the
// table that owns a column is established by the alias a query binds it
// under, not by the column value itself.
type Column string

// The queryable columns.
const (
	ColumnID            Column = "id"
	ColumnProductName   Column = "product_name"
	ColumnVendor        Column = "vendor"
	ColumnCategory      Column = "category"
	ColumnBrand         Column = "brand"
	ColumnListPrice     Column = "list_price"
	ColumnMarkdownPrice Column = "markdown_price"
	ColumnStockQty      Column = "stock_qty"
	ColumnRating        Column = "rating"
	ColumnUpdatedAt     Column = "updated_at"
	ColumnSourceID      Column = "source_id"
	ColumnMatchedID     Column = "matched_id"
	ColumnConfidence    Column = "confidence"
	ColumnOfferID       Column = "offer_id"
	ColumnRecordedAt    Column = "recorded_at"
	ColumnPrice         Column = "price"
	ColumnVendorName    Column = "vendor_name"
	ColumnRegion        Column = "region"
)

var allColumns = []Column{
	ColumnID, ColumnProductName, ColumnVendor, ColumnCategory, ColumnBrand,
	ColumnListPrice, ColumnMarkdownPrice, ColumnStockQty, ColumnRating,
	ColumnUpdatedAt, ColumnSourceID, ColumnMatchedID, ColumnConfidence,
	ColumnOfferID, ColumnRecordedAt, ColumnPrice, ColumnVendorName,
	ColumnRegion,
}

// Columns returns all columns in declaration order.
func Columns() []Column {
	out := make([]Column, len(allColumns))
	copy(out, allColumns)
	return out
}

// ParseColumn returns the Column for s, or an error if s is not in the
// vocabulary.
func ParseColumn(s string) (Column, error) {
	for _, c := range allColumns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q", s)
}

// SQL returns the SQL token for the column.
func (c Column) SQL() string { return string(c) }

// Valid reports whether c is a vocabulary member.
func (c Column) Valid() bool {
	_, err := ParseColumn(string(c))
	return err == nil
}
