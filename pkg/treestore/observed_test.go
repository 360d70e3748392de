package treestore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu   sync.Mutex
	ops  []string
	errs []error
}

func (r *recordingObserver) ObserveStoreOp(op string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.errs = append(r.errs, err)
}

func TestObservedReportsOperations(t *testing.T) {
	obs := &recordingObserver{}
	s := WithObserver(NewMemory(), obs)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a/b", 1))
	var v int
	assert.ErrorIs(t, s.Get(ctx, "a/missing", &v), ErrNotFound)
	assert.ErrorIs(t, s.Set(ctx, "a.b", 1), ErrInvalidPath)

	assert.Equal(t, []string{"set", "get", "set"}, obs.ops)
	assert.NoError(t, obs.errs[0])
	assert.NoError(t, obs.errs[1])
	assert.ErrorIs(t, obs.errs[2], ErrInvalidPath)
}

func TestWithNilObserver(t *testing.T) {
	m := NewMemory()
	assert.Same(t, m, WithObserver(m, nil))
}
