package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/usecase"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// FlightHandler exposes the flight record and enrichment operations
// over HTTP. All error-to-status mapping happens in writeError.
type FlightHandler struct {
	flights *usecase.FlightService
	details *usecase.DetailService
	logger  logger.Logger
}

// NewFlightHandler creates a new flight handler.
func NewFlightHandler(flights *usecase.FlightService, details *usecase.DetailService, logger logger.Logger) *FlightHandler {
	return &FlightHandler{
		flights: flights,
		details: details,
		logger:  logger,
	}
}

// Routes mounts the flight endpoints.
func (h *FlightHandler) Routes(r chi.Router) {
	r.Post("/flights", h.Create)
	r.Get("/flights", h.List)
	r.Patch("/flights/{id}/program", h.UpdateProgram)
	r.Patch("/flights/{id}/availability", h.PatchAvailability)
	r.Delete("/flights/{id}", h.Delete)
	r.Post("/flights/details", h.Details)
}

type createFlightRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Airline     string `json:"airline"`
}

func (h *FlightHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createFlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, entity.ValidationError("invalid request body"))
		return
	}

	record, err := h.flights.Create(r.Context(), req.Origin, req.Destination, req.Airline)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.flights.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

type updateProgramRequest struct {
	Program *string `json:"program"`
}

func (h *FlightHandler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	var req updateProgramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, entity.ValidationError("invalid request body"))
		return
	}

	record, err := h.flights.UpdateProgram(r.Context(), chi.URLParam(r, "id"), req.Program)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *FlightHandler) PatchAvailability(w http.ResponseWriter, r *http.Request) {
	var patch entity.AvailabilityPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, h.logger, entity.ValidationError("invalid availability patch"))
		return
	}

	record, err := h.flights.PatchAvailability(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *FlightHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.flights.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "flight deleted"})
}

// flexInt accepts JSON numbers and numeric strings; callers send both.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", s)
	}
	*n = flexInt(v)
	return nil
}

type flightDetailsRequest struct {
	Airline      string  `json:"airline"`
	FlightNumber flexInt `json:"flightNumber"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	Day          flexInt `json:"day"`
	Month        flexInt `json:"month"`
	Year         flexInt `json:"year"`
}

func (h *FlightHandler) Details(w http.ResponseWriter, r *http.Request) {
	var req flightDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, entity.ValidationError("invalid request body"))
		return
	}

	detail, err := h.details.Lookup(r.Context(), entity.DetailQuery{
		Airline:      req.Airline,
		FlightNumber: int(req.FlightNumber),
		Origin:       req.Origin,
		Destination:  req.Destination,
		Day:          int(req.Day),
		Month:        int(req.Month),
		Year:         int(req.Year),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
