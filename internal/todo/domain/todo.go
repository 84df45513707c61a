package domain

import "time"

type Todo struct {
	ID string
	// Text is nil when the stored value is NULL.
	Text      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DeleteResult is the store's acknowledgment of a delete. Deleted is nil and
// RowsAffected is zero when no row matched.
type DeleteResult struct {
	Deleted      *Todo
	RowsAffected int64
}
