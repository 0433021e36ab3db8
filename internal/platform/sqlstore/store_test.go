package sqlstore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/store"
)

func openSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), SQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testUser(email string) *domain.User {
	birth := time.Date(1985, 12, 1, 0, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    "Grace",
		LastName:     "Hopper",
		BirthDate:    &birth,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), "oracle", "", nil)
	assert.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(context.Background(), SQLite, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(context.Background(), SQLite, path, nil)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()
	assert.Equal(t, SQLite, second.Dialect())
}

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "data", "twitter.db")

	db, err := Open(context.Background(), SQLite, path, nil)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.FileExists(t, path)
}

func TestEnsureSQLiteDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	require.NoError(t, ensureSQLiteDir("file:"+filepath.Join(dir, "nested", "x.db")+"?_busy_timeout=5000"))
	assert.DirExists(t, filepath.Join(dir, "nested"))
	require.NoError(t, ensureSQLiteDir(":memory:"))
}

func TestUserStore_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create get list", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)
		first := testUser("grace@example.com")
		second := testUser("ada@example.com")
		second.BirthDate = nil

		require.NoError(t, s.Create(ctx, first))
		require.NoError(t, s.Create(ctx, second))

		got, err := s.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)

		got, err = s.GetByEmail(ctx, "ADA@example.com")
		require.NoError(t, err)
		assert.Equal(t, second, got)

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})

	t.Run("seq is assigned by the database and unique", func(t *testing.T) {
		t.Parallel()
		db := openSQLite(t)
		s := NewUserStore(db, nil)
		a := testUser("a@example.com")
		require.NoError(t, s.Create(ctx, a))

		var seq int64
		require.NoError(t, db.QueryRowContext(ctx, `SELECT seq FROM users WHERE id = ?`, a.ID.String()).Scan(&seq))
		assert.Positive(t, seq)

		_, err := db.ExecContext(ctx,
			`INSERT INTO users (seq, id, email, first_name, last_name, password_hash) VALUES (?, ?, ?, ?, ?, ?)`,
			seq, uuid.NewString(), "b@example.com", "B", "B", "hash")
		assert.Error(t, err)
	})

	t.Run("list order survives deletes", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)
		a := testUser("a@example.com")
		b := testUser("b@example.com")
		require.NoError(t, s.Create(ctx, a))
		require.NoError(t, s.Create(ctx, b))

		_, err := s.Delete(ctx, b.ID)
		require.NoError(t, err)
		c := testUser("c@example.com")
		require.NoError(t, s.Create(ctx, c))
		require.NoError(t, s.Create(ctx, b))

		all, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []uuid.UUID{a.ID, c.ID, b.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("duplicates", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)
		u := testUser("grace@example.com")
		require.NoError(t, s.Create(ctx, u))

		assert.ErrorIs(t, s.Create(ctx, testUser("GRACE@example.com")), store.ErrEmailExists)

		sameID := testUser("other@example.com")
		sameID.ID = u.ID
		assert.ErrorIs(t, s.Create(ctx, sameID), store.ErrUserIDExists)

		other := testUser("other@example.com")
		require.NoError(t, s.Create(ctx, other))
		other.Email = "grace@example.com"
		assert.ErrorIs(t, s.Update(ctx, other), store.ErrEmailExists)
	})

	t.Run("update and delete", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)
		u := testUser("grace@example.com")
		require.NoError(t, s.Create(ctx, u))

		u.LastName = "Murray"
		require.NoError(t, s.Update(ctx, u))

		removed, err := s.Delete(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Murray", removed.LastName)

		_, err = s.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		_, err = s.Delete(ctx, u.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.ErrorIs(t, s.Update(ctx, u), store.ErrUserNotFound)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)
		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})

	t.Run("concurrent creates", func(t *testing.T) {
		t.Parallel()
		s := NewUserStore(openSQLite(t), nil)

		const n = 20
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, s.Create(ctx, testUser(uuid.NewString()+"@example.com")))
			}()
		}
		wg.Wait()

		all, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, n)
	})
}

func TestTweetStore_SQLite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	author := testUser("grace@example.com").Author()
	now := time.Date(2024, 2, 29, 8, 0, 0, 500, time.UTC)

	s := NewTweetStore(openSQLite(t), nil)
	tw, err := domain.NewTweet(uuid.Nil, "hello", author, now)
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, tw))
	assert.ErrorIs(t, s.Create(ctx, tw), store.ErrTweetIDExists)

	got, err := s.GetByID(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, tw, got)

	require.NoError(t, tw.Edit("hello again", now.Add(time.Minute)))
	require.NoError(t, s.Update(ctx, tw))

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hello again", all[0].Content)
	assert.True(t, all[0].CreatedAt.Equal(now))
	require.NotNil(t, all[0].UpdatedAt)

	removed, err := s.Delete(ctx, tw.ID)
	require.NoError(t, err)
	assert.Equal(t, tw.ID, removed.ID)

	_, err = s.GetByID(ctx, tw.ID)
	assert.ErrorIs(t, err, store.ErrTweetNotFound)

	missing, err := domain.NewTweet(uuid.Nil, "ghost", author, now)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Update(ctx, missing), store.ErrTweetNotFound)
}
