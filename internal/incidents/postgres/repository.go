// Package postgres provides the PostgreSQL implementation of the incidents
// repository and unit of work.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/incident-desk/internal/domain"
	"github.com/bissquit/incident-desk/internal/incidents"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// querier is the subset of database operations that both *pgxpool.Pool and
// pgx.Tx implement. Repositories created by a unit of work run over pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements incidents.Repository using PostgreSQL.
type Repository struct {
	db querier
}

// newRepository creates a repository bound to the given transaction or pool.
func newRepository(db querier) *Repository {
	return &Repository{db: db}
}

// Create inserts a new incident. The generated id is returned by the insert
// itself, so it is visible to the caller inside the open transaction without
// waiting for commit.
func (r *Repository) Create(ctx context.Context, incident *domain.Incident) (*domain.Incident, error) {
	query := `
		INSERT INTO incidents (description, status, source, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	created := *incident
	err := r.db.QueryRow(ctx, query,
		incident.Description,
		string(incident.Status),
		string(incident.Source),
		incident.CreatedAt,
	).Scan(&created.ID)

	if err != nil {
		return nil, fmt.Errorf("create incident: %w", err)
	}
	return &created, nil
}

// GetAll retrieves incidents ordered by creation time descending, optionally
// filtered by exact status value.
func (r *Repository) GetAll(ctx context.Context, filter incidents.IncidentFilter) ([]domain.Incident, error) {
	query := `
		SELECT id, description, status, source, created_at
		FROM incidents
	`
	var args []any

	if filter.Status != nil {
		query += " WHERE status = $1"
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		result = append(result, *incident)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incidents: %w", err)
	}

	return result, nil
}

// GetByID retrieves an incident by primary key.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Incident, error) {
	query := `
		SELECT id, description, status, source, created_at
		FROM incidents
		WHERE id = $1
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &incidents.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("get incident by id: %w", err)
	}

	return incident, nil
}

// UpdateStatus reads the row under an exclusive row-level lock, overwrites
// the status, and returns the fresh snapshot. The lock is held until the
// enclosing transaction commits or rolls back, which serializes concurrent
// updates to the same incident and prevents lost updates.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) (*domain.Incident, error) {
	query := `
		SELECT id, description, status, source, created_at
		FROM incidents
		WHERE id = $1
		FOR UPDATE
	`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &incidents.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("lock incident for update: %w", err)
	}

	if _, err := r.db.Exec(ctx,
		`UPDATE incidents SET status = $2 WHERE id = $1`,
		id, string(status),
	); err != nil {
		return nil, fmt.Errorf("update incident status: %w", err)
	}

	incident.Status = status
	return incident, nil
}

// scanIncident maps one row onto the entity. The mapping is total: every
// persisted column corresponds to exactly one entity field, with enum values
// round-tripping through their string representation unchanged.
func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var (
		incident domain.Incident
		status   string
		source   string
	)
	if err := row.Scan(
		&incident.ID,
		&incident.Description,
		&status,
		&source,
		&incident.CreatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if incident.Status, err = domain.ParseIncidentStatus(status); err != nil {
		return nil, fmt.Errorf("stored status: %w", err)
	}
	if incident.Source, err = domain.ParseIncidentSource(source); err != nil {
		return nil, fmt.Errorf("stored source: %w", err)
	}

	return &incident, nil
}
