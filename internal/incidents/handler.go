package incidents

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/bissquit/incident-desk/internal/domain"
	"github.com/bissquit/incident-desk/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler handles HTTP requests for incidents.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new incident handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterRoutes registers all HTTP routes for the incidents module.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Post("/", h.CreateIncident)
		r.Get("/", h.ListIncidents)
		r.Get("/{id}", h.GetIncident)
		r.Patch("/{id}/status", h.UpdateIncidentStatus)
	})
}

// CreateIncidentRequest represents the request body for creating an incident.
type CreateIncidentRequest struct {
	Description string `json:"description" validate:"required"`
	Status      string `json:"status" validate:"required"`
	Source      string `json:"source" validate:"required"`
}

// UpdateIncidentStatusRequest represents the request body for a status update.
type UpdateIncidentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateIncident handles POST /incidents.
func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	var req CreateIncidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	status, err := domain.ParseIncidentStatus(req.Status)
	if err != nil {
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	source, err := domain.ParseIncidentSource(req.Source)
	if err != nil {
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	incident, err := h.service.CreateIncident(r.Context(), CreateIncidentInput{
		Description: req.Description,
		Status:      status,
		Source:      source,
	})
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, incident)
}

// ListIncidents handles GET /incidents. The optional status query parameter
// filters by exact status value.
func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	var statusFilter *domain.IncidentStatus

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseIncidentStatus(raw)
		if err != nil {
			httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		statusFilter = &status
	}

	incidents, err := h.service.ListIncidents(r.Context(), statusFilter)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, incidents)
}

// GetIncident handles GET /incidents/{id}.
func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	incident, err := h.service.GetIncidentByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, incident)
}

// UpdateIncidentStatus handles PATCH /incidents/{id}/status.
func (h *Handler) UpdateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	var req UpdateIncidentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	status, err := domain.ParseIncidentStatus(req.Status)
	if err != nil {
		httputil.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	incident, err := h.service.UpdateIncidentStatus(r.Context(), id, status)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, incident)
}

// incidentID parses the {id} path parameter. A non-integer id is a
// validation failure, matching the contract for typed path parameters.
func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.Error(w, http.StatusUnprocessableEntity, "incident id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrIncidentNotFound, Status: http.StatusNotFound},
		{Error: domain.ErrEmptyDescription, Status: http.StatusUnprocessableEntity},
		{Error: domain.ErrInvalidStatus, Status: http.StatusUnprocessableEntity},
		{Error: domain.ErrInvalidSource, Status: http.StatusUnprocessableEntity},
	})
}
