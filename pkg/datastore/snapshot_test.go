package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	store := newTestStore(t)

	snapshot, err := Snapshot(context.Background(), store)
	require.NoError(t, err)

	assert.Contains(t, snapshot, "Table: superstore")
	assert.Contains(t, snapshot, "- order_id (TEXT)")
	assert.Contains(t, snapshot, "- sales (REAL)")
	assert.Contains(t, snapshot, "Total rows: 2")
}
