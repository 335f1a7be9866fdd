package datastore

import (
	"context"
	"fmt"
	"strings"
)

// Snapshot renders the dataset schema as prompt context: every table, every
// column name and type, and each table's row count. Row-count failures are
// reported inline rather than failing the whole snapshot.
func Snapshot(ctx context.Context, s SchemaExtractor) (string, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot tables: %w", err)
	}

	var b strings.Builder
	b.WriteString("Database Schema (All tables available):\n")

	for _, table := range tables {
		fmt.Fprintf(&b, "\nTable: %s\n", table)

		columns, err := s.Columns(ctx, table)
		if err != nil {
			return "", fmt.Errorf("snapshot columns for %s: %w", table, err)
		}
		for _, col := range columns {
			fmt.Fprintf(&b, "  - %s (%s)\n", col.Name, col.DataType)
		}

		if count, err := s.RowCount(ctx, table); err == nil {
			fmt.Fprintf(&b, "  Total rows: %d\n", count)
		} else {
			b.WriteString("  Could not count rows\n")
		}
	}

	return b.String(), nil
}
