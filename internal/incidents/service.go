// Package incidents provides the incident tracking feature: the repository
// and unit-of-work contracts, the use-case service, and the HTTP handler.
package incidents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bissquit/incident-desk/internal/domain"
	"github.com/bissquit/incident-desk/internal/pkg/ctxlog"
)

// Service implements the incident use cases. Each use case runs inside its
// own unit of work: the transaction commits on success and rolls back on any
// error or panic leaving the closure.
type Service struct {
	uow UnitOfWorkStarter
	now func() time.Time
}

// NewService creates a new incident service.
func NewService(uow UnitOfWorkStarter) *Service {
	return &Service{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateIncidentInput holds data for creating an incident.
type CreateIncidentInput struct {
	Description string
	Status      domain.IncidentStatus
	Source      domain.IncidentSource
}

// CreateIncident validates and persists a new incident, returning it with
// the storage-assigned id. Validation failures surface before any storage
// interaction.
func (s *Service) CreateIncident(ctx context.Context, input CreateIncidentInput) (*domain.Incident, error) {
	incident, err := domain.NewIncident(input.Description, input.Status, input.Source, s.now())
	if err != nil {
		return nil, err
	}

	var created *domain.Incident
	err = s.inUnitOfWork(ctx, func(repo Repository) error {
		created, err = repo.Create(ctx, incident)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordIncidentCreated(string(created.Source))
	return created, nil
}

// ListIncidents returns all incidents, optionally filtered by status,
// ordered by creation time descending.
func (s *Service) ListIncidents(ctx context.Context, status *domain.IncidentStatus) ([]domain.Incident, error) {
	var incidents []domain.Incident
	err := s.inUnitOfWork(ctx, func(repo Repository) error {
		var err error
		incidents, err = repo.GetAll(ctx, IncidentFilter{Status: status})
		return err
	})
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncidentByID returns a single incident. A missing incident surfaces as
// a *NotFoundError carrying the requested id.
func (s *Service) GetIncidentByID(ctx context.Context, id int64) (*domain.Incident, error) {
	var incident *domain.Incident
	err := s.inUnitOfWork(ctx, func(repo Repository) error {
		var err error
		incident, err = repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// UpdateIncidentStatus moves an incident to the given status and returns the
// updated snapshot. Concurrent updates to the same incident serialize on the
// repository's row lock; no transition graph is enforced, any status may
// move to any other.
func (s *Service) UpdateIncidentStatus(ctx context.Context, id int64, status domain.IncidentStatus) (*domain.Incident, error) {
	var incident *domain.Incident
	err := s.inUnitOfWork(ctx, func(repo Repository) error {
		var err error
		incident, err = repo.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	recordStatusUpdate(string(status))
	return incident, nil
}

// inUnitOfWork runs fn inside a fresh unit of work. The deferred rollback
// guarantees the transaction resolves on every exit path; after a commit it
// degrades to a no-op signalled by ErrUnitOfWorkDone.
func (s *Service) inUnitOfWork(ctx context.Context, fn func(repo Repository) error) error {
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		if err := uow.Rollback(ctx); err != nil && !errors.Is(err, ErrUnitOfWorkDone) {
			ctxlog.FromContext(ctx).Error("failed to rollback unit of work", "error", err)
		}
	}()

	if err := fn(uow.Incidents()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit unit of work: %w", err)
	}
	return nil
}
