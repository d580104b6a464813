package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIncident(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	incident, err := NewIncident("database is down", IncidentStatusOpen, IncidentSourceMonitoring, createdAt)

	require.NoError(t, err)
	assert.Equal(t, int64(0), incident.ID)
	assert.Equal(t, "database is down", incident.Description)
	assert.Equal(t, IncidentStatusOpen, incident.Status)
	assert.Equal(t, IncidentSourceMonitoring, incident.Source)
	assert.Equal(t, createdAt, incident.CreatedAt)
}

func TestNewIncident_EmptyDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
	}{
		{"empty string", ""},
		{"spaces only", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incident, err := NewIncident(tt.description, IncidentStatusOpen, IncidentSourceOperator, time.Now())

			assert.Nil(t, incident)
			assert.ErrorIs(t, err, ErrEmptyDescription)
		})
	}
}

func TestParseIncidentStatus(t *testing.T) {
	for _, status := range []IncidentStatus{IncidentStatusOpen, IncidentStatusInProgress, IncidentStatusClosed} {
		parsed, err := ParseIncidentStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseIncidentStatus_Unknown(t *testing.T) {
	tests := []string{"", "open", "ОТКРЫТ", "открыт ", "resolved"}

	for _, raw := range tests {
		_, err := ParseIncidentStatus(raw)
		assert.ErrorIs(t, err, ErrInvalidStatus, "value %q", raw)
	}
}

func TestParseIncidentSource(t *testing.T) {
	for _, source := range []IncidentSource{IncidentSourceOperator, IncidentSourceMonitoring, IncidentSourcePartner} {
		parsed, err := ParseIncidentSource(string(source))
		require.NoError(t, err)
		assert.Equal(t, source, parsed)
	}
}

func TestParseIncidentSource_Unknown(t *testing.T) {
	tests := []string{"", "Operator", "monitoring ", "user"}

	for _, raw := range tests {
		_, err := ParseIncidentSource(raw)
		assert.ErrorIs(t, err, ErrInvalidSource, "value %q", raw)
	}
}
