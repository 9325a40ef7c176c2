package domain

// Location is a resolved geographic position
type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// LocationResult is the geolocation endpoint payload.
// When Success is true Lat and Lon are set.
type LocationResult struct {
	Success bool     `json:"success"`
	City    string   `json:"city,omitempty"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NewLocationResult builds a successful result from a resolved location
func NewLocationResult(loc Location) LocationResult {
	lat, lon := loc.Lat, loc.Lon
	return LocationResult{
		Success: true,
		City:    loc.City,
		Country: loc.Country,
		Lat:     &lat,
		Lon:     &lon,
	}
}
