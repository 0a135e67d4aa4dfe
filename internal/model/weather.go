package model

// Location is an approximate position resolved from an IP address or a city name.
type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// WeatherData is the normalized current weather for a location.
// WindDirection and Emoji are filled in by the API layer.
type WeatherData struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feels_like"`
	Humidity      int     `json:"humidity"`
	Pressure      int     `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDeg       float64 `json:"wind_deg"`
	Description   string  `json:"description"`
	Main          string  `json:"main"`
	Icon          string  `json:"icon"`
	City          string  `json:"city"`
	Country       string  `json:"country"`
	Visibility    float64 `json:"visibility"`
	Clouds        int     `json:"clouds"`
	WindDirection string  `json:"wind_direction"`
	Emoji         string  `json:"emoji"`
}
