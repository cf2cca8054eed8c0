package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"
	"github.com/jemis-lakhani/points-go-backend/internal/usecase"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
	"github.com/jemis-lakhani/points-go-backend/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testLogger  = logger.NewLogger("error")
	testMetrics = metrics.NewMetrics("handlertest")
)

// memFlightRepo is an in-memory FlightRepository for handler tests.
type memFlightRepo struct {
	records map[string]*entity.FlightRecord
	seq     int
}

func newMemFlightRepo() *memFlightRepo {
	return &memFlightRepo{records: make(map[string]*entity.FlightRecord)}
}

func (r *memFlightRepo) Create(ctx context.Context, record *entity.FlightRecord) error {
	r.seq++
	record.ID = "f" + strconv.Itoa(r.seq)
	r.records[record.ID] = record
	return nil
}

func (r *memFlightRepo) FindByID(ctx context.Context, id string) (*entity.FlightRecord, error) {
	return r.records[id], nil
}

func (r *memFlightRepo) FindAll(ctx context.Context) ([]*entity.FlightRecord, error) {
	all := make([]*entity.FlightRecord, 0, len(r.records))
	for _, record := range r.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (r *memFlightRepo) UpdateProgram(ctx context.Context, id string, program *string, now time.Time) (*entity.FlightRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	record.Program = program
	record.LastUpdated = now
	return record, nil
}

func (r *memFlightRepo) PatchAvailability(ctx context.Context, id string, patch entity.AvailabilityPatch, ensure []string, now time.Time) (bool, error) {
	record, ok := r.records[id]
	if !ok {
		return false, nil
	}
	record.ApplyAvailability(patch, now)
	return true, nil
}

func (r *memFlightRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

// providerFunc adapts a function to ScheduleProvider.
type providerFunc func(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error)

func (f providerFunc) QueryFlight(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error) {
	return f(ctx, query)
}

func newTestServer(t *testing.T, provider repository.ScheduleProvider) (*httptest.Server, *memFlightRepo) {
	t.Helper()
	repo := newMemFlightRepo()
	flights := usecase.NewFlightService(repo, testLogger, testMetrics)
	details := usecase.NewDetailService(provider, nil, nil, testLogger, testMetrics)
	router := NewRouter(NewFlightHandler(flights, details, testLogger), testLogger)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, repo
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestCreateFlight(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/flights",
		`{"origin": "JFK", "destination": "LAX", "airline": "AA"}`)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "JFK", body["origin"])
	assert.Nil(t, body["program"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, body["createdAt"], body["lastUpdated"])
}

func TestCreateFlightMissingField(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/flights",
		`{"origin": "JFK"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["message"], "required")
}

func TestListFlightsNewestFirst(t *testing.T) {
	server, repo := newTestServer(t, nil)

	old := entity.NewFlightRecord("JFK", "LAX", "AA", time.Now().UTC().Add(-time.Hour))
	require.NoError(t, repo.Create(context.Background(), old))
	recent := entity.NewFlightRecord("SFO", "NRT", "UA", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), recent))

	resp, err := http.Get(server.URL + "/api/flights")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var records []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, "SFO", records[0]["origin"])
}

func TestUpdateProgram(t *testing.T) {
	server, repo := newTestServer(t, nil)
	record := entity.NewFlightRecord("JFK", "LAX", "AA", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), record))

	resp, body := doJSON(t, http.MethodPatch, server.URL+"/api/flights/"+record.ID+"/program",
		`{"program": "AAdvantage"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "AAdvantage", body["program"])
}

func TestPatchAvailabilityMergesWithoutClobber(t *testing.T) {
	server, repo := newTestServer(t, nil)
	record := entity.NewFlightRecord("JFK", "LAX", "AA", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), record))

	resp, _ := doJSON(t, http.MethodPatch, server.URL+"/api/flights/"+record.ID+"/availability",
		`{"2024-03-01": {"business": false}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPatch, server.URL+"/api/flights/"+record.ID+"/availability",
		`{"2024-03-01": {"economy": true}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	availability := body["availability"].(map[string]interface{})
	entry := availability["2024-03-01"].(map[string]interface{})
	assert.Equal(t, true, entry["economy"])
	assert.Equal(t, false, entry["business"])
}

func TestPatchAvailabilityUnknownFlight(t *testing.T) {
	server, _ := newTestServer(t, nil)

	resp, body := doJSON(t, http.MethodPatch, server.URL+"/api/flights/missing/availability",
		`{"2024-03-01": {"economy": true}}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "flight not found", body["message"])
}

func TestDeleteFlight(t *testing.T) {
	server, repo := newTestServer(t, nil)
	record := entity.NewFlightRecord("JFK", "LAX", "AA", time.Now().UTC())
	require.NoError(t, repo.Create(context.Background(), record))

	resp, _ := doJSON(t, http.MethodDelete, server.URL+"/api/flights/"+record.ID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodDelete, server.URL+"/api/flights/"+record.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "flight not found", body["message"])
}

func TestFlightDetails(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error) {
		assert.Equal(t, "2024-03-05", query.Date)
		assert.Equal(t, "AA100", query.Designator)
		return &entity.FlightSchedule{
			ScheduledDeparture: "2024-03-05T08:00:00Z",
			ScheduledArrival:   "2024-03-05T11:15:00Z",
			Aircraft:           "A321",
		}, nil
	})
	server, _ := newTestServer(t, provider)

	// day and month arrive as strings and must be coerced.
	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/flights/details",
		`{"airline": "AA", "flightNumber": 100, "origin": "JFK", "destination": "LAX", "day": "05", "month": "3", "year": 2024}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "08:00", body["departureTime"])
	assert.Equal(t, "11:15", body["arrivalTime"])
	assert.Equal(t, "195", body["durationMinutes"])
	assert.Equal(t, float64(5), body["day"])
	assert.Equal(t, "A321", body["aircraft"])
}

func TestFlightDetailsNoMatch(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error) {
		return nil, nil
	})
	server, _ := newTestServer(t, provider)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/flights/details",
		`{"airline": "AA", "flightNumber": 100, "origin": "JFK", "destination": "LAX", "day": 1, "month": 3, "year": 2024}`)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "flight not found", body["message"])
}

func TestFlightDetailsUpstreamFailureIsGeneric(t *testing.T) {
	provider := providerFunc(func(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	server, _ := newTestServer(t, provider)

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/flights/details",
		`{"airline": "AA", "flightNumber": 100, "origin": "JFK", "destination": "LAX", "day": 1, "month": 3, "year": 2024}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "flight lookup failed", body["message"], "upstream detail must not leak")
}
