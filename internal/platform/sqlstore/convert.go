package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/twitterclone/twitter-api/internal/domain"
	"github.com/twitterclone/twitter-api/internal/store"
)

func parseID(column, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q: %v", store.ErrDecode, column, s, err)
	}
	return id, nil
}

func parseTime(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", store.ErrDecode, column, s, err)
	}
	return t, nil
}

func parseDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(domain.BirthDateLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date %q: %v", store.ErrDecode, s.String, err)
	}
	return &t, nil
}
