package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewRedisCache("redis://"+mr.Addr(), "shipbot")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCache_Key(t *testing.T) {
	c, _ := newTestCache(t)
	assert.Equal(t, "shipbot:prefixes", c.Key("prefixes"))
	assert.Equal(t, "shipbot:a:b", c.Key("a", "b"))

	bare := &Cache{}
	assert.Equal(t, "a:b", bare.Key("a", "b"))
}

func TestCache_ReplaceHash(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.HSet("h", "stale", "x")
	require.NoError(t, c.ReplaceHash(ctx, "h", map[string]string{"1": "!", "2": "?"}))

	got, err := c.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "!", "2": "?"}, got)
	assert.Equal(t, "!", mr.HGet("h", "1"))

	require.NoError(t, c.ReplaceHash(ctx, "h", map[string]string{}))
	assert.False(t, mr.Exists("h"))
}

func TestNewRedisCache_BadURL(t *testing.T) {
	_, err := NewRedisCache("not a url", "")
	assert.Error(t, err)
}
