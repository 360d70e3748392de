package treestore

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newMiniRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, "test")
}

func TestRedisStore(t *testing.T) {
	runStoreSuite(t, newMiniRedisStore)
}

func TestGlobEscape(t *testing.T) {
	assert.Equal(t, `a\*b\?c\\d`, globEscape(`a*b?c\d`))
	assert.Equal(t, "tree:seo_pages/home", globEscape("tree:seo_pages/home"))
}
