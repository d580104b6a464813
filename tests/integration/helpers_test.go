//go:build integration

package integration

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/bissquit/incident-desk/internal/testutil"
	"github.com/stretchr/testify/require"
)

// incidentResponse mirrors the wire shape of an incident.
type incidentResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

type incidentOption func(map[string]interface{})

func withStatus(status string) incidentOption {
	return func(m map[string]interface{}) {
		m["status"] = status
	}
}

func withSource(source string) incidentOption {
	return func(m map[string]interface{}) {
		m["source"] = source
	}
}

// createTestIncident creates an incident with a unique description and
// returns the decoded response.
func createTestIncident(t *testing.T, client *testutil.Client, descriptionPrefix string, opts ...incidentOption) incidentResponse {
	t.Helper()

	payload := map[string]interface{}{
		"description": testutil.RandomDescription(descriptionPrefix),
		"status":      "открыт",
		"source":      "operator",
	}

	for _, opt := range opts {
		opt(payload)
	}

	resp, err := client.POST("/incidents", payload)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var incident incidentResponse
	testutil.DecodeJSON(t, resp, &incident)
	require.NotZero(t, incident.ID)
	return incident
}

// getIncident fetches a single incident by id.
func getIncident(t *testing.T, client *testutil.Client, id int64) incidentResponse {
	t.Helper()

	resp, err := client.GET(incidentPath(id))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var incident incidentResponse
	testutil.DecodeJSON(t, resp, &incident)
	return incident
}

// updateIncidentStatus patches the incident status and returns the response.
func updateIncidentStatus(t *testing.T, client *testutil.Client, id int64, status string) incidentResponse {
	t.Helper()

	resp, err := client.PATCH(incidentPath(id)+"/status", map[string]interface{}{
		"status": status,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var incident incidentResponse
	testutil.DecodeJSON(t, resp, &incident)
	return incident
}

// listIncidents fetches incidents, optionally filtered by status.
func listIncidents(t *testing.T, client *testutil.Client, status string) []incidentResponse {
	t.Helper()

	path := "/incidents"
	if status != "" {
		path += "?status=" + status
	}

	resp, err := client.GET(path)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var incidents []incidentResponse
	testutil.DecodeJSON(t, resp, &incidents)
	return incidents
}

func incidentPath(id int64) string {
	return "/incidents/" + strconv.FormatInt(id, 10)
}
