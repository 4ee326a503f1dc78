// Package execcheck proves rendered SQL against a real engine.
//
// A Checker opens an in-memory SQLite database, creates the vocabulary
// tables, and prepares (never executes) statements. Preparation exercises
// the engine's full parser and name resolution, so a passing check means
// the emitted text is a syntactically valid statement over tables and
// columns that exist.
package execcheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/offerlens/offerql/internal/vocab"
)

// ErrEngineUnsupported marks SQL that is well-formed renderer output but
// uses a construct the checking engine lacks (SQLite has no ordered-set
// aggregates, so PERCENTILE_CONT cannot prepare). It is distinct from an
// IR defect: the statement may be valid for other engines in the dialect
// family.
var ErrEngineUnsupported = errors.New("construct not supported by checking engine")

// Checker prepares statements against an in-memory vocabulary database.
type Checker struct {
	db      *sql.DB
	session string
}

// Open creates a Checker with the vocabulary schema applied.
func Open() (*Checker, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open check database: %w", err)
	}

	// A shared in-memory database disappears when its last connection
	// closes; pin a single connection so the schema survives.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect check database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	c := &Checker{db: db, session: uuid.NewString()}
	if err := c.applySchema(); err != nil {
		db.Close()
		return nil, err
	}
	slog.Debug("check database ready", "session", c.session, "tables", len(vocab.Tables()))
	return c, nil
}

// Session returns the checker's session id, used to correlate log lines.
func (c *Checker) Session() string { return c.session }

// Close releases the database.
func (c *Checker) Close() error {
	return c.db.Close()
}

// Check prepares sqlText and reports whether the engine accepts it. The
// statement is never executed; no rows are read or written.
func (c *Checker) Check(ctx context.Context, sqlText string) error {
	// The renderer emits WITHIN GROUP only for ordered-set aggregates,
	// which SQLite rejects at the parser before function lookup. Report
	// it as unsupported rather than as a syntax defect.
	if strings.Contains(sqlText, " WITHIN GROUP (") {
		return fmt.Errorf("%w: ordered-set aggregate", ErrEngineUnsupported)
	}

	stmt, err := c.db.PrepareContext(ctx, sqlText)
	if err != nil {
		if strings.Contains(err.Error(), "no such function") {
			return fmt.Errorf("%w: %v", ErrEngineUnsupported, err)
		}
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()
	slog.Debug("statement prepared", "session", c.session)
	return nil
}

// applySchema creates one table per vocabulary table. The DDL is
// generated from the vocabulary rather than embedded, so the check
// database can never drift from what queries are allowed to name.
func (c *Checker) applySchema() error {
	for _, t := range vocab.Tables() {
		ddl := tableDDL(t)
		if _, err := c.db.Exec(ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t, err)
		}
	}
	return nil
}

func tableDDL(t vocab.Table) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(t.SQL())
	sb.WriteString(" (")
	for i, col := range t.Columns() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col.SQL())
		sb.WriteString(" ")
		sb.WriteString(columnType(col))
		if col == vocab.ColumnID {
			sb.WriteString(" PRIMARY KEY")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// columnType assigns SQLite affinities by column role.
func columnType(c vocab.Column) string {
	switch c {
	case vocab.ColumnID, vocab.ColumnSourceID, vocab.ColumnMatchedID,
		vocab.ColumnOfferID, vocab.ColumnStockQty:
		return "INTEGER"
	case vocab.ColumnListPrice, vocab.ColumnMarkdownPrice,
		vocab.ColumnPrice, vocab.ColumnRating, vocab.ColumnConfidence:
		return "REAL"
	default:
		return "TEXT"
	}
}
