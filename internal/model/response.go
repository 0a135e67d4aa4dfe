package model

// LocationResponse is returned by /api/location on success.
type LocationResponse struct {
	Success bool    `json:"success"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// WeatherResponse is returned by /api/weather on success.
type WeatherResponse struct {
	Success bool        `json:"success"`
	Data    WeatherData `json:"data"`
}

// ErrorResponse is returned by every API endpoint on failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func NewLocationResponse(loc Location) LocationResponse {
	return LocationResponse{
		Success: true,
		City:    loc.City,
		Country: loc.Country,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
	}
}

func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}
