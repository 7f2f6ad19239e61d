package utils

import (
	"context"
	"testing"

	"ledger_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("alice", "secret")
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("alice"), claims.Account)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("alice", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	require.Error(t, err)
}

func TestCacheHelpersWithoutRedis(t *testing.T) {
	var dest string
	found, err := GetCache(context.Background(), nil, RolesCacheKey("alice"), &dest)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, SetCache(context.Background(), nil, RolesCacheKey("alice"), "1", 0))
	require.NoError(t, DeleteCache(context.Background(), nil, RolesCacheKey("alice")))
}
