package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM schedules"))
	assert.Equal(t, "insert", operation("\n\tINSERT INTO tenant_usage ..."))
	assert.Equal(t, "unknown", operation("   "))
}

func TestGetExecutor_PrefersTransactionFromContext(t *testing.T) {
	db := Wrap(&sql.DB{}, nil)
	tx := fakeTx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))

	ctx := WithTx(context.Background(), tx)
	got, ok := TxFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, tx, got)
	assert.Equal(t, tx, GetExecutor(ctx, db))
}
