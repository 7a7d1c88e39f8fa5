package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *SessionStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewSessionStore(client)
}

func TestSessionStore_RevokeAndCheck(t *testing.T) {
	mr, store := setupTestRedis(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, mr.Exists("session:revoked:jti-1"))

	mr.FastForward(2 * time.Minute)

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestSessionStore_RevokeExpiredTokenIsNoop(t *testing.T) {
	mr, store := setupTestRedis(t)

	require.NoError(t, store.Revoke(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists("session:revoked:jti-2"))
}

func TestSessionStore_RevokeRequiresID(t *testing.T) {
	_, store := setupTestRedis(t)
	assert.Error(t, store.Revoke(context.Background(), "", time.Minute))
}

func TestSessionStore_HealthCheck(t *testing.T) {
	mr, store := setupTestRedis(t)
	assert.NoError(t, store.HealthCheck(context.Background()))

	mr.Close()
	assert.Error(t, store.HealthCheck(context.Background()))
}

func TestParseKey(t *testing.T) {
	entity, kt, value, ok := ParseKey(GenerateKey(EntitySession, KeyRevoked, "a:b"))
	require.True(t, ok)
	assert.Equal(t, EntitySession, entity)
	assert.Equal(t, KeyRevoked, kt)
	assert.Equal(t, "a:b", value)

	_, _, _, ok = ParseKey("nope")
	assert.False(t, ok)
}
