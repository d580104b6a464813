package incidents

import (
	"context"

	"github.com/bissquit/incident-desk/internal/domain"
)

// Repository defines the data operations for incidents. Implementations are
// bound to a single storage transaction via a UnitOfWork.
type Repository interface {
	// Create inserts a new incident and returns it with the
	// storage-assigned id. The returned id is visible within the enclosing
	// transaction immediately, before commit.
	Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error)

	// GetAll returns incidents ordered by creation time descending,
	// optionally filtered. No rows is an empty slice, not an error.
	GetAll(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)

	// GetByID returns the incident or a *NotFoundError.
	GetByID(ctx context.Context, id int64) (*domain.Incident, error)

	// UpdateStatus overwrites the stored status under a row-level exclusive
	// lock held until the enclosing transaction ends, so concurrent updates
	// to the same incident serialize instead of losing writes. Returns a
	// fresh snapshot, or a *NotFoundError if no such incident exists.
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) (*domain.Incident, error)
}

// IncidentFilter represents filter criteria for listing incidents.
type IncidentFilter struct {
	Status *domain.IncidentStatus
}

// UnitOfWork scopes one storage transaction. It exposes exactly one
// repository bound to that transaction and must resolve to either Commit or
// Rollback. A unit of work is single-use: both methods return
// ErrUnitOfWorkDone once it has been committed or rolled back.
type UnitOfWork interface {
	Incidents() Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkStarter begins new units of work, one per logical operation.
type UnitOfWorkStarter interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
