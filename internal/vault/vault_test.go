package vault

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	path, key, err := ParseRef("vault:secret/institute/db#password")
	require.NoError(t, err)
	assert.Equal(t, "secret/institute/db", path)
	assert.Equal(t, "password", key)

	for _, bad := range []string{"vault:", "vault:secret/db", "vault:#k", "vault:secret#"} {
		_, _, err := ParseRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestResolvePassesPlainValues(t *testing.T) {
	var c *Client
	got, err := c.Resolve(context.Background(), "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", got)
}

func TestResolveRefWithoutClient(t *testing.T) {
	var c *Client
	_, err := c.Resolve(context.Background(), "vault:secret/db#password")
	assert.ErrorIs(t, err, ErrNoClient)
}

func TestGetKVServesFromCache(t *testing.T) {
	c := &Client{cache: map[string]cached{
		"secret/db#password": {val: "cached", exp: time.Now().Add(time.Minute)},
	}}
	got, err := c.GetKV(context.Background(), "secret/db", "password", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "cached", got)
}

func TestSplitMount(t *testing.T) {
	m, r := splitMount("secret/institute/db")
	assert.Equal(t, "secret", m)
	assert.Equal(t, "institute/db", r)

	m, r = splitMount("secret")
	assert.Equal(t, "secret", m)
	assert.Equal(t, "", r)
}
