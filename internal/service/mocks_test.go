package service

import (
	"context"
	"encoding/json"

	"github.com/fakhrymubarak/geo-weather-api/internal/model"
)

// Mock repositories for testing

type mockIPRepository struct {
	data  *model.IPAPIResponse
	err   error
	calls []string
}

func (m *mockIPRepository) Lookup(ctx context.Context, ip string) (*model.IPAPIResponse, error) {
	m.calls = append(m.calls, ip)
	if m.err != nil {
		return nil, m.err
	}
	return m.data, nil
}

type mockWeatherRepository struct {
	body  string
	err   error
	calls []string
}

func (m *mockWeatherRepository) respond(call string) (*model.OpenWeatherMapResponse, error) {
	m.calls = append(m.calls, call)
	if m.err != nil {
		return nil, m.err
	}
	var data model.OpenWeatherMapResponse
	if err := json.Unmarshal([]byte(m.body), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (m *mockWeatherRepository) ByCoordinates(ctx context.Context, lat, lon float64) (*model.OpenWeatherMapResponse, error) {
	return m.respond("coordinates")
}

func (m *mockWeatherRepository) ByCity(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error) {
	return m.respond("city:" + city)
}

func (m *mockWeatherRepository) Geocode(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error) {
	return m.respond("geocode:" + city)
}

const londonPayload = `{
	"coord": {"lon": -0.1257, "lat": 51.5085},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
	"main": {"temp": 14.56, "feels_like": 14.04, "temp_min": 13.1, "temp_max": 15.9, "pressure": 1012, "humidity": 82},
	"visibility": 10000,
	"wind": {"speed": 4.12, "deg": 230},
	"clouds": {"all": 75},
	"sys": {"country": "GB"},
	"name": "London"
}`
