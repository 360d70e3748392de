package treestore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	p, err := Clean("/seo_pages/home/")
	require.NoError(t, err)
	assert.Equal(t, "seo_pages/home", p)

	for _, bad := range []string{"", "/", "a//b", "user/a.b", "x/#1", "$x", "a[0]"} {
		_, err := Clean(bad)
		assert.ErrorIs(t, err, ErrInvalidPath, bad)
	}
}

func TestSafeKey(t *testing.T) {
	assert.Equal(t, "www_google_com", SafeKey("www.google.com"))
	assert.Equal(t, "https:__x_y", SafeKey("https://x.y"))
	assert.Equal(t, "_", SafeKey(""))
	_, err := Clean(SafeKey("a.b#c$d[e]/f"))
	assert.NoError(t, err)
}

func TestAssembleExactWins(t *testing.T) {
	raw, found, err := assemble("a", []entry{
		{Path: "a/b", Value: []byte(`1`)},
		{Path: "a", Value: []byte(`{"x":true}`)},
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"x":true}`, string(raw))
}

func TestAssembleNestsDescendants(t *testing.T) {
	raw, found, err := assemble("analytics", []entry{
		{Path: "analytics/pages/home", Value: []byte(`3`)},
		{Path: "analytics/daily/2026-01-02/home", Value: []byte(`2`)},
		{Path: "analytics/devices/mobile", Value: []byte(`1`)},
	})
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"pages":{"home":3},"daily":{"2026-01-02":{"home":2}},"devices":{"mobile":1}}`, string(raw))
}

func TestMergeObjectRemovesNilFields(t *testing.T) {
	out, err := mergeObject([]byte(`{"a":1,"b":2}`), map[string]interface{}{"b": nil, "c": "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1,"c":"x"}`, string(out))

	_, err = mergeObject([]byte(`5`), map[string]interface{}{"a": 1})
	assert.Error(t, err)
}

type doc struct {
	Title string `json:"title"`
	Order int    `json:"order"`
}

// runStoreSuite exercises behaviour every backend must share.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		s := newStore(t)
		var d doc
		assert.ErrorIs(t, s.Get(ctx, "pages/none", &d), ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "pages/home", doc{Title: "Home", Order: 1}))
		var d doc
		require.NoError(t, s.Get(ctx, "pages/home", &d))
		assert.Equal(t, doc{Title: "Home", Order: 1}, d)
	})

	t.Run("ancestor read assembles children", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "pages/home", doc{Title: "Home"}))
		require.NoError(t, s.Set(ctx, "pages/about", doc{Title: "About"}))
		var all map[string]doc
		require.NoError(t, s.Get(ctx, "pages", &all))
		assert.Len(t, all, 2)
		assert.Equal(t, "About", all["about"].Title)
	})

	t.Run("set replaces subtree", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "counters/a", 1))
		require.NoError(t, s.Set(ctx, "counters/b", 2))
		require.NoError(t, s.Set(ctx, "counters", map[string]int{"c": 3}))
		var got map[string]int
		require.NoError(t, s.Get(ctx, "counters", &got))
		assert.Equal(t, map[string]int{"c": 3}, got)
		ok, err := s.Exists(ctx, "counters/a")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update merges shallowly", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "pages/home", map[string]interface{}{"title": "Home", "order": 1}))
		require.NoError(t, s.Update(ctx, "pages/home", map[string]interface{}{"order": 4}))
		var d doc
		require.NoError(t, s.Get(ctx, "pages/home", &d))
		assert.Equal(t, doc{Title: "Home", Order: 4}, d)

		require.NoError(t, s.Update(ctx, "pages/fresh", map[string]interface{}{"title": "New"}))
		require.NoError(t, s.Get(ctx, "pages/fresh", &d))
		assert.Equal(t, "New", d.Title)

		assert.ErrorIs(t, s.Update(ctx, "pages/home", map[string]interface{}{"a.b": 1}), ErrInvalidPath)
	})

	t.Run("remove subtree", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "events/e1", doc{Title: "One"}))
		require.NoError(t, s.Set(ctx, "events/e2", doc{Title: "Two"}))
		require.NoError(t, s.Remove(ctx, "events"))
		ok, err := s.Exists(ctx, "events")
		require.NoError(t, err)
		assert.False(t, ok)
		require.NoError(t, s.Remove(ctx, "events/none"))
	})

	t.Run("increment counts from zero", func(t *testing.T) {
		s := newStore(t)
		n, err := s.Increment(ctx, "analytics/pages/home", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		n, err = s.Increment(ctx, "analytics/pages/home", 2)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		var got int64
		require.NoError(t, s.Get(ctx, "analytics/pages/home", &got))
		assert.EqualValues(t, 3, got)

		require.NoError(t, s.Set(ctx, "analytics/label", "text"))
		_, err = s.Increment(ctx, "analytics/label", 1)
		assert.ErrorIs(t, err, ErrNotCounter)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		s := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = s.Increment(ctx, "analytics/devices/mobile", 1)
			}()
		}
		wg.Wait()
		var got int64
		require.NoError(t, s.Get(ctx, "analytics/devices/mobile", &got))
		assert.EqualValues(t, 20, got)
	})

	t.Run("set if absent", func(t *testing.T) {
		s := newStore(t)
		ok, err := s.SetIfAbsent(ctx, "analytics/visitors/2026-01-02/home/abc", true)
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = s.SetIfAbsent(ctx, "analytics/visitors/2026-01-02/home/abc", true)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalid path", func(t *testing.T) {
		s := newStore(t)
		assert.ErrorIs(t, s.Set(ctx, "user/a.b", 1), ErrInvalidPath)
		_, err := s.Increment(ctx, "", 1)
		assert.ErrorIs(t, err, ErrInvalidPath)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(*testing.T) Store { return NewMemory() })
}
