package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jemis-lakhani/points-go-backend/internal/domain/entity"
	"github.com/jemis-lakhani/points-go-backend/internal/domain/repository"
	"github.com/jemis-lakhani/points-go-backend/pkg/logger"
)

// AviationClient queries the schedules endpoint of an
// aviationstack-style API. One GET per lookup, no retries; the
// http.Client timeout bounds the call.
type AviationClient struct {
	logger  logger.Logger
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewAviationClient creates a new schedules provider client. The API
// key comes from configuration only.
func NewAviationClient(baseURL, apiKey string, timeout time.Duration, logger logger.Logger) repository.ScheduleProvider {
	return &AviationClient{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// timetableResponse mirrors the provider's response envelope. Only the
// fields the enrichment consumes are mapped.
type timetableResponse struct {
	Data []timetableEntry `json:"data"`
}

type timetableEntry struct {
	Departure struct {
		Scheduled string `json:"scheduled"`
	} `json:"departure"`
	Arrival struct {
		Scheduled string `json:"scheduled"`
	} `json:"arrival"`
	Aircraft *struct {
		IATA  string `json:"iata"`
		Model string `json:"model"`
	} `json:"aircraft"`
}

// QueryFlight performs the single provider lookup. A payload with no
// entries returns (nil, nil).
func (c *AviationClient) QueryFlight(ctx context.Context, query repository.ScheduleQuery) (*entity.FlightSchedule, error) {
	params := url.Values{}
	params.Set("access_key", c.apiKey)
	params.Set("flight_date", query.Date)
	params.Set("dep_iata", query.DepAirport)
	params.Set("arr_iata", query.ArrAirport)
	params.Set("flight_iata", query.Designator)

	reqURL := fmt.Sprintf("%s/timetable?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Provider returned non-200",
			"status", resp.StatusCode,
			"designator", query.Designator)
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var payload timetableResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}

	if len(payload.Data) == 0 {
		return nil, nil
	}

	entry := payload.Data[0]
	schedule := &entity.FlightSchedule{
		ScheduledDeparture: entry.Departure.Scheduled,
		ScheduledArrival:   entry.Arrival.Scheduled,
	}
	if entry.Aircraft != nil {
		if entry.Aircraft.IATA != "" {
			schedule.Aircraft = entry.Aircraft.IATA
		} else {
			schedule.Aircraft = entry.Aircraft.Model
		}
	}
	return schedule, nil
}
