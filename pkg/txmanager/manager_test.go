package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberSlots/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs   []*fakeTx
	opts  []*sql.TxOptions
	begin error
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	if b.begin != nil {
		return nil, b.begin
	}
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDo_CommitsAndExposesTx(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		_, ok := dbmetrics.TxFromContext(ctx)
		assert.True(t, ok)
		return nil
	})

	require.NoError(t, err)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.False(t, db.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	calls := 0

	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("insert: %w", &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
}

func TestDoSerializable_RetriesStatementFailureThroughWraps(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	errExecQuery := errors.New("repository: failed to execute query")
	errInternal := errors.New("usecase: internal error")
	calls := 0

	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		stmtErr := fmt.Errorf("%w: Create - execute insert: %w", errExecQuery, &pq.Error{Code: "40001"})
		return fmt.Errorf("%w: failed to create appointment: %w", errInternal, stmtErr)
	})

	assert.Equal(t, defaultMaxAttempts, calls)
	assert.True(t, IsSerializationFailure(err))
	assert.ErrorIs(t, err, errInternal)
	assert.ErrorIs(t, err, errExecQuery)
	require.Len(t, db.txs, defaultMaxAttempts)
	for _, tx := range db.txs {
		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
	}
}

func TestDoSerializable_OtherErrorsAreNotRetried(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	calls := 0

	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})
	})

	assert.Error(t, err)
	assert.False(t, IsSerializationFailure(err))
	assert.Equal(t, 1, calls)
}

func TestDoReadOnly_NestedReusesOuterTx(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoReadOnly(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
	assert.True(t, db.opts[0].ReadOnly)
}

func TestDo_BeginError(t *testing.T) {
	m := NewTransactionManager(&fakeBeginner{begin: errors.New("no conn")})

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrTransaction)
}
