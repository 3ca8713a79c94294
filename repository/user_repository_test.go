package repository

import (
	"context"
	"testing"
	"time"

	"casino/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, "alice", "hunter2", 10, "10.0.0.1")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "hunter2", user.Password)
		assert.Equal(t, int64(10), user.Balance)
		assert.False(t, user.Banned)
		assert.False(t, user.LuckyMode)
		assert.Equal(t, "10.0.0.1", user.IPAddress)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("duplicate usernames are accepted", func(t *testing.T) {
		first, err := repo.Create(ctx, "dupe", "pw1", 10, "10.0.0.2")
		require.NoError(t, err)

		second, err := repo.Create(ctx, "dupe", "pw2", 10, "10.0.0.3")
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestUserRepository_CountByIP(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	count, err := repo.CountByIP(ctx, "192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, "user", "pw", 10, "192.168.1.1")
		require.NoError(t, err)
	}
	_, err = repo.Create(ctx, "elsewhere", "pw", 10, "192.168.1.2")
	require.NoError(t, err)

	count, err = repo.CountByIP(ctx, "192.168.1.1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found returns nil", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "ghost")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("newest row wins for duplicate usernames", func(t *testing.T) {
		_, err := repo.Create(ctx, "alice", "old-pw", 10, "10.0.0.1")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = repo.Create(ctx, "alice", "new-pw", 25, "10.0.0.1")
		require.NoError(t, err)

		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "new-pw", user.Password)
		assert.Equal(t, int64(25), user.Balance)
	})
}

func TestUserRepository_BalanceMutations(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "pw", 3, "10.0.0.1")
	require.NoError(t, err)

	balance := func() int64 {
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		return user.Balance
	}

	t.Run("clamped deduction floors at zero", func(t *testing.T) {
		require.NoError(t, repo.AddBalanceClamped(ctx, "alice", -5))
		assert.Equal(t, int64(0), balance())
	})

	t.Run("unclamped delta is additive", func(t *testing.T) {
		require.NoError(t, repo.UpdateBalance(ctx, "alice", 3))
		require.NoError(t, repo.AddBalance(ctx, "alice", 5))
		assert.Equal(t, int64(8), balance())
	})

	t.Run("unclamped delta may go negative", func(t *testing.T) {
		require.NoError(t, repo.UpdateBalance(ctx, "alice", 3))
		require.NoError(t, repo.AddBalance(ctx, "alice", -25))
		assert.Equal(t, int64(-22), balance())
	})

	t.Run("overwrite accepts negative values", func(t *testing.T) {
		require.NoError(t, repo.UpdateBalance(ctx, "alice", -50))
		assert.Equal(t, int64(-50), balance())
	})

	t.Run("mutating a nonexistent user is a no-op", func(t *testing.T) {
		require.NoError(t, repo.AddBalance(ctx, "ghost", 100))
		require.NoError(t, repo.UpdateBalance(ctx, "ghost", 100))
	})
}

func TestUserRepository_BanAndLuckyMode(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "mallory", "pw", 10, "10.0.0.1")
	require.NoError(t, err)

	require.NoError(t, repo.Ban(ctx, "mallory"))
	require.NoError(t, repo.SetLuckyMode(ctx, "mallory"))

	user, err := repo.GetByUsername(ctx, "mallory")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.Banned)
	assert.True(t, user.LuckyMode)
}

func TestUserRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = repo.Create(ctx, "first", "pw1", 10, "10.0.0.1")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = repo.Create(ctx, "second", "pw2", 10, "10.0.0.1")
	require.NoError(t, err)

	users, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	// Most recently created first.
	assert.Equal(t, "second", users[0].Username)
	assert.Equal(t, "first", users[1].Username)
	// The stored credential comes back with the row.
	assert.Equal(t, "pw2", users[0].Password)
}
