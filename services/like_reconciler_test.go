package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLikeRepository struct {
	fixed int64
	err   error
	calls int
}

func (f *fakeLikeRepository) Toggle(context.Context, uint, uint) (int, bool, error) {
	return 0, false, nil
}

func (f *fakeLikeRepository) LikedBy(context.Context, uint) ([]uint, error) {
	return nil, nil
}

func (f *fakeLikeRepository) Reconcile(context.Context) (int64, error) {
	f.calls++
	return f.fixed, f.err
}

func TestLikeReconcilerRun(t *testing.T) {
	repo := &fakeLikeRepository{fixed: 3}
	fixed, err := NewLikeReconciler(repo).Run(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, fixed)
	assert.Equal(t, 1, repo.calls)
}

func TestLikeReconcilerRunError(t *testing.T) {
	repo := &fakeLikeRepository{err: errors.New("connection reset")}
	_, err := NewLikeReconciler(repo).Run(context.Background())
	assert.ErrorIs(t, err, repo.err)
}

func TestLikeReconcilerStartRejectsBadSchedule(t *testing.T) {
	reconciler := NewLikeReconciler(&fakeLikeRepository{})
	assert.Error(t, reconciler.Start("every now and then"))
	reconciler.Stop()
}

func TestLikeReconcilerStartStop(t *testing.T) {
	reconciler := NewLikeReconciler(&fakeLikeRepository{})
	require.NoError(t, reconciler.Start("@every 1h"))
	reconciler.Stop()
}
