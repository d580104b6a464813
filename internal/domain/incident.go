// Package domain contains the incident entity and its value vocabularies.
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// IncidentStatus is the stored and wire representation of an incident's
// status. The values are an external contract: they are persisted as-is and
// transmitted byte-for-byte, so renaming a member is a breaking change.
type IncidentStatus string

const (
	IncidentStatusOpen       IncidentStatus = "открыт"
	IncidentStatusInProgress IncidentStatus = "в работе"
	IncidentStatusClosed     IncidentStatus = "закрыт"
)

// IncidentSource identifies where an incident was reported from.
// Immutable after creation.
type IncidentSource string

const (
	IncidentSourceOperator   IncidentSource = "operator"
	IncidentSourceMonitoring IncidentSource = "monitoring"
	IncidentSourcePartner    IncidentSource = "partner"
)

var (
	// ErrEmptyDescription is returned when an incident is constructed with
	// an empty or whitespace-only description.
	ErrEmptyDescription = errors.New("incident description cannot be empty")

	// ErrInvalidStatus is returned when a string does not match any known
	// incident status value exactly.
	ErrInvalidStatus = errors.New("invalid incident status")

	// ErrInvalidSource is returned when a string does not match any known
	// incident source value exactly.
	ErrInvalidSource = errors.New("invalid incident source")
)

// ParseIncidentStatus converts a wire string into an IncidentStatus.
// Matching is exact; unknown values fail instead of defaulting.
func ParseIncidentStatus(s string) (IncidentStatus, error) {
	switch IncidentStatus(s) {
	case IncidentStatusOpen, IncidentStatusInProgress, IncidentStatusClosed:
		return IncidentStatus(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ParseIncidentSource converts a wire string into an IncidentSource.
func ParseIncidentSource(s string) (IncidentSource, error) {
	switch IncidentSource(s) {
	case IncidentSourceOperator, IncidentSourceMonitoring, IncidentSourcePartner:
		return IncidentSource(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSource, s)
}

// Incident is the aggregate root for one tracked operational issue.
// ID is zero until the incident is persisted; storage assigns it on create
// and it never changes afterwards. Instances returned from the repository
// are snapshots: mutating one does not affect stored state.
type Incident struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Status      IncidentStatus `json:"status"`
	Source      IncidentSource `json:"source"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewIncident builds an unpersisted incident, enforcing the description
// invariant at construction time. Enum validity is the parse functions'
// responsibility; callers holding an IncidentStatus/IncidentSource have
// already passed through them.
func NewIncident(description string, status IncidentStatus, source IncidentSource, createdAt time.Time) (*Incident, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}

	return &Incident{
		Description: description,
		Status:      status,
		Source:      source,
		CreatedAt:   createdAt,
	}, nil
}
