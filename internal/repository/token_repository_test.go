package repository_test

import (
	"context"
	"testing"
	"time"

	"tierra_admin/internal/repository"
	redisapp "tierra_admin/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockTokenRepo(t *testing.T) (*repository.RedisTokenRepo, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	repo := repository.NewRedisTokenRepo(&redisapp.Client{Client: client})

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	return repo, mock
}

func TestRedisTokenRepo_SaveRefreshToken(t *testing.T) {
	repo, mock := newMockTokenRepo(t)

	mock.ExpectSet("refresh:user-1:tok-abc", "1", time.Hour).SetVal("OK")

	err := repo.SaveRefreshToken(context.Background(), "user-1", "tok-abc", time.Hour)
	require.NoError(t, err)
}

func TestRedisTokenRepo_GetRefreshToken(t *testing.T) {
	t.Run("stored token", func(t *testing.T) {
		repo, mock := newMockTokenRepo(t)
		mock.ExpectGet("refresh:user-1:tok-abc").SetVal("1")

		found, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-abc")
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("missing token reads as absent, not as an error", func(t *testing.T) {
		repo, mock := newMockTokenRepo(t)
		mock.ExpectGet("refresh:user-1:tok-gone").RedisNil()

		found, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-gone")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("connection failure surfaces", func(t *testing.T) {
		repo, mock := newMockTokenRepo(t)
		mock.ExpectGet("refresh:user-1:tok-abc").SetErr(assert.AnError)

		_, err := repo.GetRefreshToken(context.Background(), "user-1", "tok-abc")
		assert.Error(t, err)
	})
}

func TestRedisTokenRepo_DeleteRefreshToken(t *testing.T) {
	repo, mock := newMockTokenRepo(t)

	mock.ExpectDel("refresh:user-1:tok-abc").SetVal(1)

	err := repo.DeleteRefreshToken(context.Background(), "user-1", "tok-abc")
	require.NoError(t, err)
}

func TestRedisTokenRepo_DeleteAllUserTokens(t *testing.T) {
	t.Run("deletes every key for the user", func(t *testing.T) {
		repo, mock := newMockTokenRepo(t)
		mock.ExpectKeys("refresh:user-1:*").SetVal([]string{
			"refresh:user-1:tok-a",
			"refresh:user-1:tok-b",
		})
		mock.ExpectDel("refresh:user-1:tok-a", "refresh:user-1:tok-b").SetVal(2)

		err := repo.DeleteAllUserTokens(context.Background(), "user-1")
		require.NoError(t, err)
	})

	t.Run("no tokens means no delete call", func(t *testing.T) {
		repo, mock := newMockTokenRepo(t)
		mock.ExpectKeys("refresh:user-1:*").SetVal([]string{})

		err := repo.DeleteAllUserTokens(context.Background(), "user-1")
		require.NoError(t, err)
	})
}
