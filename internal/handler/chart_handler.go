package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jyotish/backend/internal/model"
	"jyotish/backend/internal/service"
)

type ChartHandler struct {
	service service.ChartService
}

type chartResponse struct {
	JulianDayUT  float64            `json:"julian_day_ut"`
	AscendantDeg float64            `json:"ascendant_deg"`
	PlanetsDeg   map[string]float64 `json:"planets_deg"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func NewChartHandler(service service.ChartService) *ChartHandler {
	return &ChartHandler{service: service}
}

func (h *ChartHandler) Calculate(c echo.Context) error {
	year, err := parseIntQuery(c, "year")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	month, err := parseIntQuery(c, "month")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	day, err := parseIntQuery(c, "day")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	hour, err := parseFloatQuery(c, "hour")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	lat, err := parseFloatQuery(c, "lat")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	lon, err := parseFloatQuery(c, "lon")
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	chart, err := h.service.Calculate(c.Request().Context(), model.ChartRequest{
		Year:      year,
		Month:     month,
		Day:       day,
		Hour:      hour,
		Latitude:  lat,
		Longitude: lon,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, chartResponse{
		JulianDayUT:  chart.JulianDayUT,
		AscendantDeg: chart.AscendantDeg,
		PlanetsDeg:   chart.PlanetsDeg,
	})
}

func (h *ChartHandler) Health(c echo.Context) error {
	if err := h.service.Healthy(c.Request().Context()); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
