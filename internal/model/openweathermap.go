package model

// OpenWeatherMapResponse is the payload of the OpenWeatherMap /weather endpoint.
// Required fields are pointers so a 2xx response missing them can be told apart from zero values.
type OpenWeatherMapResponse struct {
	Name  string `json:"name"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  *int     `json:"pressure"`
		Humidity  *int     `json:"humidity"`
		SeaLevel  int      `json:"sea_level"`
		GrndLevel int      `json:"grnd_level"`
	} `json:"main"`
	Weather []struct {
		ID          int     `json:"id"`
		Main        *string `json:"main"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds *struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Sys *struct {
		Country string `json:"country"`
	} `json:"sys"`
	Visibility *float64 `json:"visibility"`
}
