package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ctxKey struct{ name string }

// fakeUnitOfWork records the lifecycle calls it receives.
type fakeUnitOfWork struct {
	beginErr    error
	commitErr   error
	began       bool
	committed   bool
	rolledBack  bool
	commitCtx   context.Context
	rollbackCtx context.Context
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.began = true
	return context.WithValue(ctx, ctxKey{"tx"}, "tx"), nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	f.committed = true
	f.commitCtx = ctx
	return f.commitErr
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.rolledBack = true
	f.rollbackCtx = ctx
	return nil
}

func TestWithUnitOfWork_CommitsOnSuccess(t *testing.T) {
	uow := &fakeUnitOfWork{}

	var fnCtx context.Context
	err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
		fnCtx = ctx
		return nil
	})

	require.NoError(t, err)
	assert.True(t, uow.began)
	assert.True(t, uow.committed)
	assert.False(t, uow.rolledBack)
	// The function and the commit both see the transactional context.
	assert.Equal(t, "tx", fnCtx.Value(ctxKey{"tx"}))
	assert.Equal(t, fnCtx, uow.commitCtx)
}

func TestWithUnitOfWork_RollsBackOnError(t *testing.T) {
	uow := &fakeUnitOfWork{}
	fnErr := errors.New("domain rule violated")

	err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.True(t, uow.rolledBack)
	assert.False(t, uow.committed)
}

func TestWithUnitOfWork_BeginFailure(t *testing.T) {
	beginErr := errors.New("no connection")
	uow := &fakeUnitOfWork{beginErr: beginErr}

	called := false
	err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, beginErr)
	assert.False(t, called)
	assert.False(t, uow.rolledBack)
}

func TestWithUnitOfWork_CommitFailure(t *testing.T) {
	commitErr := errors.New("serialization conflict")
	uow := &fakeUnitOfWork{commitErr: commitErr}

	err := WithUnitOfWork(context.Background(), uow, func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, commitErr)
}
