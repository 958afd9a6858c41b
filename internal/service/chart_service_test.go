package service_test

import (
	"context"
	"errors"
	"testing"

	"jyotish/backend/internal/model"
	"jyotish/backend/internal/service"

	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	chart     model.Chart
	chartErr  error
	healthErr error
	calls     int
}

func (s *stubEngine) Chart(ctx context.Context, req model.ChartRequest) (model.Chart, error) {
	s.calls++
	return s.chart, s.chartErr
}

func (s *stubEngine) Health(ctx context.Context) error {
	return s.healthErr
}

func validRequest() model.ChartRequest {
	return model.ChartRequest{
		Year:      1990,
		Month:     5,
		Day:       15,
		Hour:      14.5,
		Latitude:  28.6139,
		Longitude: 77.2090,
	}
}

func TestChartService_Calculate(t *testing.T) {
	engine := &stubEngine{
		chart: model.Chart{
			JulianDayUT:  2448027.1041666665,
			AscendantDeg: 143.256789,
			PlanetsDeg: map[string]float64{
				"Sun":  30.123456,
				"Rahu": 290.5512,
			},
		},
	}
	svc := service.NewChartService(engine)

	chart, err := svc.Calculate(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, 143.26, chart.AscendantDeg)
	require.Equal(t, 30.12, chart.PlanetsDeg["Sun"])
	require.Equal(t, 290.55, chart.PlanetsDeg["Rahu"])
}

func TestChartService_Calculate_DerivesKetu(t *testing.T) {
	engine := &stubEngine{
		chart: model.Chart{
			PlanetsDeg: map[string]float64{"Rahu": 290.55},
		},
	}
	svc := service.NewChartService(engine)

	chart, err := svc.Calculate(context.Background(), validRequest())
	require.NoError(t, err)
	// Ketu sits opposite Rahu on the ecliptic.
	require.Equal(t, 110.55, chart.PlanetsDeg["Ketu"])
}

func TestChartService_Calculate_KeepsEngineKetu(t *testing.T) {
	engine := &stubEngine{
		chart: model.Chart{
			PlanetsDeg: map[string]float64{"Rahu": 290.55, "Ketu": 110.551},
		},
	}
	svc := service.NewChartService(engine)

	chart, err := svc.Calculate(context.Background(), validRequest())
	require.NoError(t, err)
	require.Equal(t, 110.55, chart.PlanetsDeg["Ketu"])
}

func TestChartService_Calculate_Validation(t *testing.T) {
	svc := service.NewChartService(&stubEngine{})

	tests := []struct {
		name   string
		mutate func(*model.ChartRequest)
	}{
		{name: "month too small", mutate: func(r *model.ChartRequest) { r.Month = 0 }},
		{name: "month too large", mutate: func(r *model.ChartRequest) { r.Month = 13 }},
		{name: "day too small", mutate: func(r *model.ChartRequest) { r.Day = 0 }},
		{name: "day too large", mutate: func(r *model.ChartRequest) { r.Day = 32 }},
		{name: "hour negative", mutate: func(r *model.ChartRequest) { r.Hour = -0.5 }},
		{name: "hour at 24", mutate: func(r *model.ChartRequest) { r.Hour = 24 }},
		{name: "latitude south of pole", mutate: func(r *model.ChartRequest) { r.Latitude = -90.1 }},
		{name: "latitude north of pole", mutate: func(r *model.ChartRequest) { r.Latitude = 90.1 }},
		{name: "longitude too west", mutate: func(r *model.ChartRequest) { r.Longitude = -180.1 }},
		{name: "longitude too east", mutate: func(r *model.ChartRequest) { r.Longitude = 180.1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Calculate(context.Background(), req)
			require.ErrorIs(t, err, service.ErrInvalid)
		})
	}
}

func TestChartService_Calculate_UpstreamError(t *testing.T) {
	engine := &stubEngine{chartErr: errors.New("swisseph: file not found")}
	svc := service.NewChartService(engine)

	_, err := svc.Calculate(context.Background(), validRequest())
	require.ErrorIs(t, err, service.ErrChartUpstream)
	// The engine's internal error never reaches the caller.
	require.NotContains(t, err.Error(), "swisseph")
}

func TestChartService_Healthy(t *testing.T) {
	svc := service.NewChartService(&stubEngine{})
	require.NoError(t, svc.Healthy(context.Background()))

	svc = service.NewChartService(&stubEngine{healthErr: errors.New("connection refused")})
	require.ErrorIs(t, svc.Healthy(context.Background()), service.ErrChartUpstream)
}
