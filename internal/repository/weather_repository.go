package repository

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/geo-weather-api/internal/config"
	"github.com/fakhrymubarak/geo-weather-api/internal/model"
)

// WeatherRepository reads current conditions from OpenWeatherMap.
type WeatherRepository interface {
	// ByCoordinates fetches metric current weather at lat, lon.
	ByCoordinates(ctx context.Context, lat, lon float64) (*model.OpenWeatherMapResponse, error)
	// ByCity fetches metric current weather for a city name.
	ByCity(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error)
	// Geocode looks a city name up without requesting metric units; only its coordinates are of interest.
	Geocode(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error)
}

// weatherRepository implements WeatherRepository
type weatherRepository struct {
	fetcher JSONFetcher
	baseURL string
	apiKey  string
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(fetcher JSONFetcher, cfg config.OpenWeatherMapConfig) WeatherRepository {
	return &weatherRepository{
		fetcher: fetcher,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

func (r *weatherRepository) ByCoordinates(ctx context.Context, lat, lon float64) (*model.OpenWeatherMapResponse, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	return r.current(ctx, q)
}

func (r *weatherRepository) ByCity(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", "metric")
	return r.current(ctx, q)
}

func (r *weatherRepository) Geocode(ctx context.Context, city string) (*model.OpenWeatherMapResponse, error) {
	q := url.Values{}
	q.Set("q", city)
	return r.current(ctx, q)
}

// current calls the /weather endpoint with the API key appended to q.
func (r *weatherRepository) current(ctx context.Context, q url.Values) (*model.OpenWeatherMapResponse, error) {
	q.Set("appid", r.apiKey)
	var data model.OpenWeatherMapResponse
	if err := r.fetcher.GetJSON(ctx, r.baseURL+"/weather", q, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
