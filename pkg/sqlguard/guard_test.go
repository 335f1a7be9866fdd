package sqlguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
)

func TestDetectStatementType(t *testing.T) {
	tests := []struct {
		sql      string
		expected StatementType
	}{
		{"SELECT * FROM t", StatementSelect},
		{"  select 1", StatementSelect},
		{"WITH x AS (SELECT 1) SELECT * FROM x", StatementSelect},
		{"WITH gone AS (DELETE FROM t RETURNING *) SELECT * FROM gone", StatementUnknown},
		{"INSERT INTO t VALUES (1)", StatementInsert},
		{"UPDATE t SET a = 1", StatementUpdate},
		{"DELETE FROM t", StatementDelete},
		{"CREATE TABLE t (a int)", StatementDDL},
		{"DROP TABLE t", StatementDDL},
		{"TRUNCATE t", StatementDDL},
		{"EXPLAIN SELECT 1", StatementUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectStatementType(tt.sql))
		})
	}
}

func TestGuard_Disabled(t *testing.T) {
	guard := New(false, false, zap.NewNop())

	// With both switches off every statement type passes.
	for _, sql := range []string{
		"SELECT * FROM t",
		"DELETE FROM t",
		"DROP TABLE t",
		"UPDATE t SET name = 'x'' OR 1=1 --'",
	} {
		assert.NoError(t, guard.Check(sql), sql)
	}
}

func TestGuard_ReadOnly(t *testing.T) {
	guard := New(true, false, zap.NewNop())

	assert.NoError(t, guard.Check("SELECT * FROM t"))
	assert.NoError(t, guard.Check("WITH x AS (SELECT 1) SELECT * FROM x"))

	for _, sql := range []string{
		"DELETE FROM t",
		"INSERT INTO t VALUES (1)",
		"DROP TABLE t",
		"WITH gone AS (DELETE FROM t RETURNING *) SELECT * FROM gone",
	} {
		err := guard.Check(sql)
		assert.ErrorIs(t, err, apperrors.ErrStatementBlocked, sql)
	}
}

func TestGuard_InjectionCheck(t *testing.T) {
	guard := New(false, true, zap.NewNop())

	assert.NoError(t, guard.Check("SELECT * FROM customers WHERE region = 'West'"))
	assert.NoError(t, guard.Check("SELECT * FROM t WHERE name = 'O''Brien'"))
	assert.NoError(t, guard.Check("SELECT COUNT(*) FROM orders"))

	err := guard.Check("SELECT * FROM t WHERE name = '1'' OR ''1''=''1'")
	assert.ErrorIs(t, err, apperrors.ErrStatementBlocked)
}

func TestStringLiterals(t *testing.T) {
	literals := stringLiterals("SELECT 'a', 'b''c' FROM t WHERE x = 'd'")
	assert.Equal(t, []string{"a", "b'c", "d"}, literals)

	assert.Empty(t, stringLiterals("SELECT 1"))
}
