package redis_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goredis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-shards/internal/redis"
)

func TestNewClient(t *testing.T) {
	t.Run("requires endpoint", func(t *testing.T) {
		client, err := redis.NewClient("", nil)
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("connects to single instance", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := redis.NewClient(mr.Addr(), nil)
		require.NoError(t, err)
		defer func() { _ = client.Close() }()

		require.NoError(t, client.Set(t.Context(), "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})
}

func TestNewFromAddress(t *testing.T) {
	t.Run("empty address", func(t *testing.T) {
		_, err := redis.NewFromAddress(" , ", nil)
		assert.Error(t, err)
	})

	t.Run("single address is a plain client", func(t *testing.T) {
		client, err := redis.NewFromAddress("localhost:6379", nil)
		require.NoError(t, err)
		_, ok := client.(*goredis.Client)
		assert.True(t, ok)
	})

	t.Run("multiple addresses build a cluster client", func(t *testing.T) {
		client, err := redis.NewFromAddress("a:7000, b:7001", nil)
		require.NoError(t, err)
		_, ok := client.(*goredis.ClusterClient)
		assert.True(t, ok)
	})
}
