package incidents

import (
	"errors"
	"fmt"
)

// ErrIncidentNotFound matches any not-found failure via errors.Is.
var ErrIncidentNotFound = errors.New("incident not found")

// ErrUnitOfWorkDone is returned when Commit or Rollback is called on a unit
// of work that has already been committed or rolled back.
var ErrUnitOfWorkDone = errors.New("unit of work is already done")

// NotFoundError reports which incident id was requested. It unwraps to
// ErrIncidentNotFound so callers can match it without the id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("incident with id %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrIncidentNotFound
}
