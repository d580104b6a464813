package postgres

import (
	"context"
	"fmt"

	"github.com/bissquit/incident-desk/internal/incidents"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWorkStarter begins PostgreSQL-backed units of work, one transaction
// each, from a shared connection pool.
type UnitOfWorkStarter struct {
	db *pgxpool.Pool
}

// NewUnitOfWorkStarter creates a new starter over the given pool.
func NewUnitOfWorkStarter(db *pgxpool.Pool) *UnitOfWorkStarter {
	return &UnitOfWorkStarter{db: db}
}

// Begin opens a transaction and returns an active unit of work bound to it.
func (s *UnitOfWorkStarter) Begin(ctx context.Context) (incidents.UnitOfWork, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &UnitOfWork{
		tx:        tx,
		incidents: newRepository(tx),
		state:     stateActive,
	}, nil
}

type uowState int

const (
	stateActive uowState = iota
	stateCommitted
	stateRolledBack
)

// UnitOfWork implements incidents.UnitOfWork over a single pgx transaction.
// It owns exactly one repository, bound to that transaction, and is
// single-use: once committed or rolled back it refuses further work with
// incidents.ErrUnitOfWorkDone. Row locks taken by the repository are
// released when the transaction ends.
type UnitOfWork struct {
	tx        pgx.Tx
	incidents *Repository
	state     uowState
}

// Incidents returns the repository bound to this unit of work's transaction.
func (u *UnitOfWork) Incidents() incidents.Repository {
	return u.incidents
}

// Commit makes all changes durable and finishes the unit of work.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.state != stateActive {
		return incidents.ErrUnitOfWorkDone
	}

	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	u.state = stateCommitted
	return nil
}

// Rollback discards all changes made since the unit of work became active.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.state != stateActive {
		return incidents.ErrUnitOfWorkDone
	}

	if err := u.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback transaction: %w", err)
	}
	u.state = stateRolledBack
	return nil
}
