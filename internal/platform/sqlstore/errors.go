package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/twitterclone/twitter-api/internal/store"
)

// uniqueKey maps a constraint whose name contains match to a store error.
type uniqueKey struct {
	match string
	err   error
}

// mapError translates a driver error into the store error family.
// sql.ErrNoRows becomes notFound; a unique violation becomes the error of the
// first key whose match appears in the constraint name, or the last key.
func (d dialect) mapError(err, notFound error, keys ...uniqueKey) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	if name, ok := d.uniqueName(err); ok {
		for _, k := range keys {
			if strings.Contains(name, k.match) {
				return fmt.Errorf("%w: %v", k.err, err)
			}
		}
		if len(keys) > 0 {
			return fmt.Errorf("%w: %v", keys[len(keys)-1].err, err)
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}

	return err
}

// checkRowsAffected returns notFound when a statement touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
