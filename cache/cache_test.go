package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocket-lite/models"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "page=1&tag=", Key(1, ""))
	assert.Equal(t, "page=3&tag=go", Key(3, "go"))
	assert.NotEqual(t, Key(1, "go"), Key(1, ""))
}

func TestGetSetRoundtrip(t *testing.T) {
	c := New()
	page := models.Page{
		Data:        []models.Entry{{ID: "1", Title: "A"}},
		TotalPages:  1,
		CurrentPage: 1,
	}

	_, ok := c.Get(Key(1, ""))
	assert.False(t, ok, "fresh cache must miss")

	c.Set(Key(1, ""), page, TTL)

	got, ok := c.Get(Key(1, ""))
	require.True(t, ok)
	assert.Equal(t, page, got)

	_, ok = c.Get(Key(2, ""))
	assert.False(t, ok, "other keys stay misses")
}

func TestExpiry(t *testing.T) {
	c := New()
	c.Set("k", models.Page{CurrentPage: 1}, 30*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "entry must expire after its TTL")
}
