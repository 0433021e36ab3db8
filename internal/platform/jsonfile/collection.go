package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Record is implemented by the on-disk representation of each record kind.
type Record interface {
	RecordID() string
}

// UniqueKey declares a field that must be unique across a collection besides
// the record ID. Values are compared case-insensitively.
type UniqueKey[T Record] struct {
	Name  string
	Value func(T) string
	// Err is returned (wrapped) when an insert or update would duplicate the key.
	Err error
}

// Options configures a Collection.
type Options[T Record] struct {
	// ErrNotFound is returned (wrapped) when no record has the requested ID.
	ErrNotFound error
	// ErrIDExists is returned (wrapped) when inserting an ID that is already stored.
	ErrIDExists error
	// Keys lists additional unique keys.
	Keys []UniqueKey[T]
}

// Collection is a set of records of one kind persisted as a JSON array file.
// Every method decodes the file; mutating methods rewrite it. Methods are safe
// for concurrent use within one process.
type Collection[T Record] struct {
	path string
	opts Options[T]
	mu   sync.Mutex
}

// NewCollection opens the collection stored at path, creating an empty file if
// none exists.
func NewCollection[T Record](path string, opts Options[T]) (*Collection[T], error) {
	if opts.ErrNotFound == nil || opts.ErrIDExists == nil {
		return nil, fmt.Errorf("collection %s: ErrNotFound and ErrIDExists are required", path)
	}
	if err := Ensure(path); err != nil {
		return nil, err
	}
	return &Collection[T]{path: path, opts: opts}, nil
}

// Path returns the file backing the collection.
func (c *Collection[T]) Path() string {
	return c.path
}

// List returns all records in file order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Decode[T](c.path)
}

// Find returns the first record whose ID is id.
func (c *Collection[T]) Find(ctx context.Context, id string) (T, error) {
	return c.FindBy(ctx, func(r T) bool { return r.RecordID() == id })
}

// FindBy returns the first record for which match is true.
func (c *Collection[T]) FindBy(ctx context.Context, match func(T) bool) (T, error) {
	var zero T
	records, err := c.List(ctx)
	if err != nil {
		return zero, err
	}
	for _, r := range records {
		if match(r) {
			return r, nil
		}
	}
	return zero, c.opts.ErrNotFound
}

// Insert appends rec. It fails without touching the file if rec's ID or any
// unique key is already present.
func (c *Collection[T]) Insert(ctx context.Context, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := Decode[T](c.path)
	if err != nil {
		return err
	}
	if err := c.checkUnique(records, rec, -1); err != nil {
		return err
	}

	return Encode(c.path, append(records, rec))
}

// Update replaces the first record whose ID is id with rec. The file is left
// unchanged if no record matches or rec collides with another record's keys.
func (c *Collection[T]) Update(ctx context.Context, id string, rec T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := Decode[T](c.path)
	if err != nil {
		return err
	}

	i := indexOf(records, id)
	if i < 0 {
		return c.opts.ErrNotFound
	}
	if err := c.checkUnique(records, rec, i); err != nil {
		return err
	}

	records[i] = rec
	return Encode(c.path, records)
}

// Delete removes and returns the first record whose ID is id.
func (c *Collection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := Decode[T](c.path)
	if err != nil {
		return zero, err
	}

	i := indexOf(records, id)
	if i < 0 {
		return zero, c.opts.ErrNotFound
	}

	removed := records[i]
	records = append(records[:i], records[i+1:]...)
	if err := Encode(c.path, records); err != nil {
		return zero, err
	}
	return removed, nil
}

// checkUnique reports a conflict between rec and any record other than the one at skip.
func (c *Collection[T]) checkUnique(records []T, rec T, skip int) error {
	for i, existing := range records {
		if i == skip {
			continue
		}
		if existing.RecordID() == rec.RecordID() {
			return fmt.Errorf("%w: %s", c.opts.ErrIDExists, rec.RecordID())
		}
		for _, key := range c.opts.Keys {
			if strings.EqualFold(key.Value(existing), key.Value(rec)) {
				return fmt.Errorf("%w: duplicate %s", key.Err, key.Name)
			}
		}
	}
	return nil
}

func indexOf[T Record](records []T, id string) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}
