package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/piresc/pickups/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisClient_ConnectionError(t *testing.T) {
	config := models.RedisConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Password: "",
		DB:       0,
		PoolSize: 10,
	}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	ctx := context.Background()
	key := "pickups:snapshot:v1:17"
	value := `{"hour":17}`
	expiration := time.Hour

	mock.ExpectSet(key, value, expiration).SetVal("OK")

	err := client.Set(ctx, key, value, expiration)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectSet("key", "value", time.Minute).SetErr(assert.AnError)

	err := client.Set(context.Background(), "key", "value", time.Minute)

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := &RedisClient{Client: db}

		mock.ExpectGet("key").SetVal("value")

		val, err := client.Get(context.Background(), "key")

		assert.NoError(t, err)
		assert.Equal(t, "value", val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing key", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		client := &RedisClient{Client: db}

		mock.ExpectGet("key").RedisNil()

		_, err := client.Get(context.Background(), "key")

		assert.ErrorIs(t, err, redis.Nil)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisClient_DeleteMatching(t *testing.T) {
	mr := miniredis.RunT(t)
	db := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	client := &RedisClient{Client: db}
	defer client.Close()

	for hour := 0; hour < 24; hour++ {
		mr.Set(fmt.Sprintf("pickups:snapshot:v1:%d", hour), "{}")
	}
	mr.Set("pickups:snapshot:v2:0", "{}")
	mr.Set("pickups:rate:ip:/charts/hours.png:127.0.0.1", "3")

	deleted, err := client.DeleteMatching(context.Background(), "pickups:snapshot:v1:*")

	assert.NoError(t, err)
	assert.Equal(t, int64(24), deleted)
	assert.False(t, mr.Exists("pickups:snapshot:v1:0"))
	assert.True(t, mr.Exists("pickups:snapshot:v2:0"))
	assert.True(t, mr.Exists("pickups:rate:ip:/charts/hours.png:127.0.0.1"))
}

func TestRedisClient_DeleteMatching_NoKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()

	deleted, err := client.DeleteMatching(context.Background(), "pickups:snapshot:missing:*")

	assert.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRedisClient_DeleteMatching_Error(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer client.Close()
	mr.Close()

	_, err := client.DeleteMatching(context.Background(), "pickups:snapshot:v1:*")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan keys")
}

func TestRedisClient_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectPing().SetErr(assert.AnError)

	assert.Error(t, client.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
