package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errItemNotFound = errors.New("item not found")
	errItemExists   = errors.New("item exists")
	errNameExists   = errors.New("name exists")
)

func newItems(t *testing.T) *Collection[item] {
	t.Helper()
	c, err := NewCollection(filepath.Join(t.TempDir(), "items.json"), Options[item]{
		ErrNotFound: errItemNotFound,
		ErrIDExists: errItemExists,
		Keys: []UniqueKey[item]{{
			Name:  "name",
			Value: func(i item) string { return i.Name },
			Err:   errNameExists,
		}},
	})
	require.NoError(t, err)
	return c
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestNewCollection_RequiresErrors(t *testing.T) {
	t.Parallel()
	_, err := NewCollection(filepath.Join(t.TempDir(), "items.json"), Options[item]{})
	assert.Error(t, err)
}

func TestCollection_InsertFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newItems(t)

	want := item{ID: "1", Name: "one"}
	require.NoError(t, c.Insert(ctx, want))

	got, err := c.Find(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = c.Find(ctx, "2")
	assert.ErrorIs(t, err, errItemNotFound)
}

func TestCollection_InsertDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name    string
		rec     item
		wantErr error
	}{
		{name: "same id", rec: item{ID: "1", Name: "other"}, wantErr: errItemExists},
		{name: "same unique key", rec: item{ID: "2", Name: "one"}, wantErr: errNameExists},
		{name: "unique key differs only in case", rec: item{ID: "2", Name: "ONE"}, wantErr: errNameExists},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newItems(t)
			require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
			before := readFile(t, c.Path())

			err := c.Insert(ctx, tt.rec)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, readFile(t, c.Path()))
		})
	}
}

func TestCollection_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces in place", func(t *testing.T) {
		t.Parallel()
		c := newItems(t)
		require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
		require.NoError(t, c.Insert(ctx, item{ID: "2", Name: "two"}))

		require.NoError(t, c.Update(ctx, "1", item{ID: "1", Name: "uno"}))

		all, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []item{{ID: "1", Name: "uno"}, {ID: "2", Name: "two"}}, all)
	})

	t.Run("keeping its own unique key is not a conflict", func(t *testing.T) {
		t.Parallel()
		c := newItems(t)
		require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))

		assert.NoError(t, c.Update(ctx, "1", item{ID: "1", Name: "One"}))
	})

	t.Run("missing id leaves file unchanged", func(t *testing.T) {
		t.Parallel()
		c := newItems(t)
		require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
		before := readFile(t, c.Path())

		err := c.Update(ctx, "9", item{ID: "9", Name: "nine"})

		assert.ErrorIs(t, err, errItemNotFound)
		assert.Equal(t, before, readFile(t, c.Path()))
	})

	t.Run("collision with another record leaves file unchanged", func(t *testing.T) {
		t.Parallel()
		c := newItems(t)
		require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
		require.NoError(t, c.Insert(ctx, item{ID: "2", Name: "two"}))
		before := readFile(t, c.Path())

		err := c.Update(ctx, "2", item{ID: "2", Name: "one"})

		assert.ErrorIs(t, err, errNameExists)
		assert.Equal(t, before, readFile(t, c.Path()))
	})
}

func TestCollection_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newItems(t)
	require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
	require.NoError(t, c.Insert(ctx, item{ID: "2", Name: "two"}))

	removed, err := c.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, item{ID: "1", Name: "one"}, removed)

	_, err = c.Find(ctx, "1")
	assert.ErrorIs(t, err, errItemNotFound)

	_, err = c.Delete(ctx, "1")
	assert.ErrorIs(t, err, errItemNotFound)

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "2", Name: "two"}}, all)
}

func TestCollection_FindBy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newItems(t)
	require.NoError(t, c.Insert(ctx, item{ID: "1", Name: "one"}))
	require.NoError(t, c.Insert(ctx, item{ID: "2", Name: "two"}))

	got, err := c.FindBy(ctx, func(i item) bool { return i.Name == "two" })
	require.NoError(t, err)
	assert.Equal(t, "2", got.ID)

	_, err = c.FindBy(ctx, func(i item) bool { return false })
	assert.ErrorIs(t, err, errItemNotFound)
}

func TestCollection_CanceledContext(t *testing.T) {
	t.Parallel()
	c := newItems(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Insert(ctx, item{ID: "1", Name: "one"}), context.Canceled)
	_, err := c.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	all, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCollection_ConcurrentInserts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c := newItems(t)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- c.Insert(ctx, item{ID: fmt.Sprint(i), Name: fmt.Sprintf("name-%d", i)})
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	all, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}
