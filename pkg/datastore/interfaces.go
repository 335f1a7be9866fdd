// Package datastore provides access to the fixed retail dataset that
// study participants query. Two backends are supported: a file-backed
// SQLite database (the default, matching the study's superstore.db) and
// PostgreSQL.
package datastore

import "context"

// Column describes one dataset column.
type Column struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
}

// SchemaExtractor enumerates the dataset's tables, columns and row counts.
// The translator injects this information as prompt context.
type SchemaExtractor interface {
	// Tables returns all user table names.
	Tables(ctx context.Context) ([]string, error)

	// Columns returns the columns of a table.
	Columns(ctx context.Context, table string) ([]Column, error)

	// RowCount returns the number of rows in a table.
	RowCount(ctx context.Context, table string) (int64, error)
}

// RunResult holds the outcome of running one statement.
type RunResult struct {
	Columns      []string         `json:"columns,omitempty"`
	Rows         []map[string]any `json:"rows,omitempty"`
	RowsAffected int64            `json:"rows_affected"`
}

// QueryRunner executes a SQL statement against the dataset. Any statement
// type is permitted here; restrictions, if configured, are applied by the
// query guard before execution.
type QueryRunner interface {
	// Run executes the statement and returns rows for row-returning
	// statements, or the affected-row count otherwise.
	Run(ctx context.Context, sqlText string) (*RunResult, error)
}

// Store combines schema extraction and query execution for one dataset.
// Implementations own their connection and must be closed when done.
type Store interface {
	SchemaExtractor
	QueryRunner
	Close() error
}
