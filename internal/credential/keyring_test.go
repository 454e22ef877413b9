package credential

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersEnvironment(t *testing.T) {
	r := Resolver{
		Getenv: func(string) string { return "from-env" },
		Keyring: func(string) (string, error) {
			t.Fatal("keyring should not be consulted")
			return "", nil
		},
	}

	v, err := r.Resolve("TASKTRACKER_REDIS_PASSWORD", "redis-password")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
}

func TestResolveFallsBackToKeyring(t *testing.T) {
	var asked string
	r := Resolver{
		Getenv: func(string) string { return "" },
		Keyring: func(key string) (string, error) {
			asked = key
			return "from-keyring", nil
		},
	}

	v, err := r.Resolve("TASKTRACKER_REDIS_PASSWORD", "redis-password")
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", v)
	assert.Equal(t, "redis-password", asked)
}

func TestResolveEmptyKey(t *testing.T) {
	r := Resolver{Getenv: func(string) string { return "" }}

	v, err := r.Resolve("TASKTRACKER_REDIS_PASSWORD", "")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestResolveKeyringError(t *testing.T) {
	r := Resolver{
		Getenv:  func(string) string { return "" },
		Keyring: func(string) (string, error) { return "", ErrNotFound },
	}

	_, err := r.Resolve("", "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
