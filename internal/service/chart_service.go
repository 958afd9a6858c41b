//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/singleflight"

	"jyotish/backend/internal/ephemeris"
	"jyotish/backend/internal/model"
	"jyotish/backend/pkg/logger"
)

// ChartService validates chart inputs and delegates the astronomy to the
// ephemeris engine.
type ChartService interface {
	Calculate(ctx context.Context, req model.ChartRequest) (model.Chart, error)
	Healthy(ctx context.Context) error
}

type chartService struct {
	engine ephemeris.Engine
	group  singleflight.Group
}

// NewChartService creates the chart service.
func NewChartService(engine ephemeris.Engine) ChartService {
	return &chartService{engine: engine}
}

func validateChartRequest(req model.ChartRequest) error {
	switch {
	case req.Month < 1 || req.Month > 12:
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalid)
	case req.Day < 1 || req.Day > 31:
		return fmt.Errorf("%w: day must be between 1 and 31", ErrInvalid)
	case req.Hour < 0 || req.Hour >= 24:
		return fmt.Errorf("%w: hour must be between 0 and 24", ErrInvalid)
	case req.Latitude < -90 || req.Latitude > 90:
		return fmt.Errorf("%w: latitude must be between -90 and 90 degrees", ErrInvalid)
	case req.Longitude < -180 || req.Longitude > 180:
		return fmt.Errorf("%w: longitude must be between -180 and 180 degrees", ErrInvalid)
	}
	return nil
}

// Calculate runs one chart computation. Identical concurrent requests are
// deduplicated into a single engine call.
func (s *chartService) Calculate(ctx context.Context, req model.ChartRequest) (model.Chart, error) {
	if err := validateChartRequest(req); err != nil {
		return model.Chart{}, err
	}

	key := fmt.Sprintf("%d-%d-%d-%v-%v-%v", req.Year, req.Month, req.Day, req.Hour, req.Latitude, req.Longitude)
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		chart, err := s.engine.Chart(ctx, req)
		if err != nil {
			logger.Error("ephemeris calculation failed", "error", err)
			return nil, ErrChartUpstream
		}
		return finishChart(chart), nil
	})
	if err != nil {
		return model.Chart{}, err
	}
	return result.(model.Chart), nil
}

func (s *chartService) Healthy(ctx context.Context) error {
	if err := s.engine.Health(ctx); err != nil {
		return ErrChartUpstream
	}
	return nil
}

// finishChart derives Ketu (always opposite Rahu) and rounds longitudes to
// two decimals the way the calculator always presented them.
func finishChart(chart model.Chart) model.Chart {
	planets := make(map[string]float64, len(chart.PlanetsDeg)+1)
	for name, deg := range chart.PlanetsDeg {
		planets[name] = round2(deg)
	}
	if rahu, ok := planets["Rahu"]; ok {
		if _, present := planets["Ketu"]; !present {
			planets["Ketu"] = round2(math.Mod(rahu+180, 360))
		}
	}
	return model.Chart{
		JulianDayUT:  chart.JulianDayUT,
		AscendantDeg: round2(chart.AscendantDeg),
		PlanetsDeg:   planets,
	}
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
