package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is the default dataset backend, reading the study's
// file-backed superstore database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens the SQLite dataset at path.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite dataset: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite dataset: %w", err)
	}

	// A single connection per process is plenty for the synchronous
	// per-request model, and avoids writer lock contention.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db, logger: logger.Named("dataset")}, nil
}

// Tables implements SchemaExtractor.
func (s *SQLiteStore) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// Columns implements SchemaExtractor.
func (s *SQLiteStore) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdentifier(table)))
	if err != nil {
		return nil, fmt.Errorf("table info for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var (
			cid        int
			name       string
			dataType   string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scan column info: %w", err)
		}
		columns = append(columns, Column{Name: name, DataType: dataType})
	}
	return columns, rows.Err()
}

// RowCount implements SchemaExtractor.
func (s *SQLiteStore) RowCount(ctx context.Context, table string) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteIdentifier(table))
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count rows in %s: %w", table, err)
	}
	return count, nil
}

// Run implements QueryRunner.
func (s *SQLiteStore) Run(ctx context.Context, sqlText string) (*RunResult, error) {
	if isRowReturning(sqlText) {
		return s.runQuery(ctx, sqlText)
	}

	res, err := s.db.ExecContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute statement: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		affected = 0
	}
	return &RunResult{RowsAffected: affected}, nil
}

func (s *SQLiteStore) runQuery(ctx context.Context, sqlText string) (*RunResult, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &RunResult{
		Columns: columns,
		Rows:    make([]map[string]any, 0),
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rowMap := make(map[string]any, len(columns))
		for i, col := range columns {
			rowMap[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, rowMap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// Close releases the dataset connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isRowReturning reports whether the statement produces a result set.
func isRowReturning(sqlText string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(sqlText))
	return strings.HasPrefix(normalized, "SELECT") ||
		strings.HasPrefix(normalized, "WITH") ||
		strings.HasPrefix(normalized, "PRAGMA") ||
		strings.Contains(normalized, "RETURNING")
}

// normalizeValue converts driver byte slices to strings so results encode
// cleanly as JSON.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// quoteIdentifier quotes a table name for interpolation into PRAGMA and
// COUNT statements, which cannot be parameterized.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var _ Store = (*SQLiteStore)(nil)
