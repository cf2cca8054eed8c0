package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
	"github.com/jemis-lakhani/points-go-backend/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// promauto registers on the default registry, so the package shares
// one instance across tests.
var testMetrics = metrics.NewMetrics("test")

var testLogger = logger.NewLogger("error")

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, record *entity.FlightRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFlightRepository) FindByID(ctx context.Context, id string) (*entity.FlightRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlightRecord), args.Error(1)
}

func (m *MockFlightRepository) FindAll(ctx context.Context) ([]*entity.FlightRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FlightRecord), args.Error(1)
}

func (m *MockFlightRepository) UpdateProgram(ctx context.Context, id string, program *string, now time.Time) (*entity.FlightRecord, error) {
	args := m.Called(ctx, id, program, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlightRecord), args.Error(1)
}

func (m *MockFlightRepository) PatchAvailability(ctx context.Context, id string, patch entity.AvailabilityPatch, ensure []string, now time.Time) (bool, error) {
	args := m.Called(ctx, id, patch, ensure, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockFlightRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func newFlightService(repo *MockFlightRepository) *FlightService {
	return NewFlightService(repo, testLogger, testMetrics)
}

func mustPatch(t *testing.T, body string) entity.AvailabilityPatch {
	t.Helper()
	var patch entity.AvailabilityPatch
	require.NoError(t, json.Unmarshal([]byte(body), &patch))
	return patch
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := new(MockFlightRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newFlightService(repo)
	record, err := svc.Create(context.Background(), "JFK", "LAX", "AA")

	require.NoError(t, err)
	assert.Nil(t, record.Program)
	assert.Empty(t, record.Availability)
	assert.Equal(t, record.CreatedAt, record.LastUpdated)
	repo.AssertExpectations(t)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	svc := newFlightService(new(MockFlightRepository))

	_, err := svc.Create(context.Background(), "", "LAX", "AA")
	require.Error(t, err)
	assert.Equal(t, entity.KindValidation, entity.KindOf(err))
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	repo := new(MockFlightRepository)
	repo.On("DeleteByID", mock.Anything, "missing").Return(false, nil)

	err := newFlightService(repo).Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
}

func TestDeleteStoreFailure(t *testing.T) {
	repo := new(MockFlightRepository)
	repo.On("DeleteByID", mock.Anything, "abc").Return(false, errors.New("connection reset"))

	err := newFlightService(repo).Delete(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, entity.KindStore, entity.KindOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPatchAvailabilityMergesAndEnsures(t *testing.T) {
	now := time.Now().UTC()
	stored := entity.NewFlightRecord("JFK", "LAX", "AA", now)
	stored.ID = "f1"
	stored.Availability["2024-03-01"] = entity.AvailabilityEntry{Business: entity.TriNo}

	repo := new(MockFlightRepository)
	repo.On("FindByID", mock.Anything, "f1").Return(stored, nil)
	repo.On("PatchAvailability", mock.Anything, "f1", mock.Anything, []string{"2024-03-02"}, mock.Anything).
		Return(true, nil)

	patch := mustPatch(t, `{"2024-03-01": {"economy": true}, "2024-03-02": {}}`)
	record, err := newFlightService(repo).PatchAvailability(context.Background(), "f1", patch)

	require.NoError(t, err)
	assert.Equal(t, entity.TriYes, record.Availability["2024-03-01"].Economy)
	assert.Equal(t, entity.TriNo, record.Availability["2024-03-01"].Business, "partial patch must not clobber business")
	assert.Contains(t, record.Availability, "2024-03-02")
	repo.AssertExpectations(t)
}

func TestPatchAvailabilityUnknownID(t *testing.T) {
	repo := new(MockFlightRepository)
	repo.On("FindByID", mock.Anything, "missing").Return(nil, nil)

	_, err := newFlightService(repo).PatchAvailability(context.Background(), "missing", entity.AvailabilityPatch{})
	require.Error(t, err)
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
}

func TestUpdateProgramUnknownID(t *testing.T) {
	repo := new(MockFlightRepository)
	repo.On("UpdateProgram", mock.Anything, "missing", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := newFlightService(repo).UpdateProgram(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.Equal(t, entity.KindNotFound, entity.KindOf(err))
}
