package model

// ChartRequest carries the validated inputs for a chart calculation.
// Hour is UT in decimal form (15.5 means 15:30 UT).
type ChartRequest struct {
	Year      int
	Month     int
	Day       int
	Hour      float64
	Latitude  float64
	Longitude float64
}

// Chart is the calculation result: sidereal planetary longitudes plus the
// ascendant, all in degrees.
type Chart struct {
	JulianDayUT  float64
	AscendantDeg float64
	PlanetsDeg   map[string]float64
}
