// Package ephemeris wraps the Swiss Ephemeris sidecar service. The backend
// treats it as a black box: given a date-time and coordinates it returns
// sidereal planetary longitudes and the ascendant.
package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"jyotish/backend/internal/model"
)

// Engine computes a chart from validated inputs.
type Engine interface {
	Chart(ctx context.Context, req model.ChartRequest) (model.Chart, error)
	Health(ctx context.Context) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates an Engine backed by the sidecar at baseURL. Calls are
// throttled client-side so a burst of admitted requests cannot overwhelm
// the single-threaded ephemeris process.
func NewClient(baseURL string, httpClient *http.Client) Engine {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(50), 10),
	}
}

type chartResponse struct {
	JulianDayUT  float64            `json:"julian_day_ut"`
	AscendantDeg float64            `json:"ascendant_deg"`
	PlanetsDeg   map[string]float64 `json:"planets_deg"`
}

func (c *client) Chart(ctx context.Context, req model.ChartRequest) (model.Chart, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return model.Chart{}, err
	}

	query := url.Values{}
	query.Set("year", strconv.Itoa(req.Year))
	query.Set("month", strconv.Itoa(req.Month))
	query.Set("day", strconv.Itoa(req.Day))
	query.Set("hour", strconv.FormatFloat(req.Hour, 'f', -1, 64))
	query.Set("lat", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(req.Longitude, 'f', -1, 64))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chart?"+query.Encode(), nil)
	if err != nil {
		return model.Chart{}, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return model.Chart{}, fmt.Errorf("ephemeris request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return model.Chart{}, fmt.Errorf("ephemeris status %d: %s", resp.StatusCode, body)
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.Chart{}, fmt.Errorf("decode ephemeris response: %w", err)
	}

	return model.Chart{
		JulianDayUT:  parsed.JulianDayUT,
		AscendantDeg: parsed.AscendantDeg,
		PlanetsDeg:   parsed.PlanetsDeg,
	}, nil
}

func (c *client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ephemeris health status %d", resp.StatusCode)
	}
	return nil
}
