package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/display"
	"github.com/fakhrymubarak/geo-weather-api/internal/model"
	"github.com/fakhrymubarak/geo-weather-api/internal/repository"
)

var errIncompleteWeather = errors.New("weather payload is missing required fields")

type WeatherServiceInterface interface {
	ByCoordinates(ctx context.Context, lat, lon float64) (*model.WeatherData, error)
	ByCity(ctx context.Context, city string) (*model.WeatherData, error)
}

// WeatherService fetches and normalizes current weather conditions.
type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	logger      *zap.SugaredLogger
}

func NewWeatherService(repo repository.WeatherRepository, logger *zap.SugaredLogger) *WeatherService {
	return &WeatherService{
		WeatherRepo: repo,
		logger:      nopIfNil(logger),
	}
}

func (s *WeatherService) ByCoordinates(ctx context.Context, lat, lon float64) (*model.WeatherData, error) {
	ctx, span := tracer.Start(ctx, "WeatherService.ByCoordinates")
	defer span.End()
	span.SetAttributes(attribute.Float64("lat", lat), attribute.Float64("lon", lon))

	data, err := s.WeatherRepo.ByCoordinates(ctx, lat, lon)
	if err != nil {
		s.logger.Warnw("weather by coordinates failed", "lat", lat, "lon", lon, "error", err)
		return nil, fail(span, fetchError(err, "", msgWeatherFetch))
	}
	weather, err := normalizeWeather(data)
	if err != nil {
		s.logger.Warnw("invalid weather payload", "lat", lat, "lon", lon, "error", err)
		return nil, fail(span, model.NewResolveError(model.ErrMalformedResponse, msgInvalidWeather, err))
	}
	return weather, nil
}

// ByCity looks the city up and normalizes the returned conditions with the same rules as
// ByCoordinates. The lookup response already holds the conditions at the resolved coordinates,
// so no second upstream call is made.
func (s *WeatherService) ByCity(ctx context.Context, city string) (*model.WeatherData, error) {
	ctx, span := tracer.Start(ctx, "WeatherService.ByCity")
	defer span.End()
	span.SetAttributes(attribute.String("city", city))

	data, err := s.WeatherRepo.ByCity(ctx, city)
	if err != nil {
		s.logger.Warnw("weather by city failed", "city", city, "error", err)
		return nil, fail(span, fetchError(err, msgCityNotFound, msgWeatherFetch))
	}
	if data.Coord == nil {
		s.logger.Warnw("weather by city returned no coordinates", "city", city)
		return nil, fail(span, model.NewResolveError(model.ErrMalformedResponse, msgInvalidWeather, errIncompleteWeather))
	}
	span.SetAttributes(attribute.Float64("lat", data.Coord.Lat), attribute.Float64("lon", data.Coord.Lon))

	weather, err := normalizeWeather(data)
	if err != nil {
		s.logger.Warnw("invalid weather payload", "city", city, "error", err)
		return nil, fail(span, model.NewResolveError(model.ErrMalformedResponse, msgInvalidWeather, err))
	}
	return weather, nil
}

// normalizeWeather maps an OpenWeatherMap payload to WeatherData.
// Temperatures and wind speed are rounded to one decimal, visibility is converted to km.
func normalizeWeather(data *model.OpenWeatherMapResponse) (*model.WeatherData, error) {
	if data.Main == nil || data.Main.Temp == nil || data.Main.FeelsLike == nil ||
		data.Main.Humidity == nil || data.Main.Pressure == nil ||
		data.Wind == nil || data.Wind.Speed == nil ||
		len(data.Weather) == 0 || data.Sys == nil ||
		data.Clouds == nil || data.Clouds.All == nil {
		return nil, errIncompleteWeather
	}
	cond := data.Weather[0]
	if cond.Main == nil || cond.Description == nil || cond.Icon == nil {
		return nil, errIncompleteWeather
	}

	weather := &model.WeatherData{
		Temperature: display.Round(*data.Main.Temp, 1),
		FeelsLike:   display.Round(*data.Main.FeelsLike, 1),
		Humidity:    *data.Main.Humidity,
		Pressure:    *data.Main.Pressure,
		WindSpeed:   display.Round(*data.Wind.Speed, 1),
		Description: display.Capitalize(*cond.Description),
		Main:        *cond.Main,
		Icon:        *cond.Icon,
		City:        data.Name,
		Country:     data.Sys.Country,
		Clouds:      *data.Clouds.All,
	}
	if data.Wind.Deg != nil {
		weather.WindDeg = *data.Wind.Deg
	}
	if data.Visibility != nil {
		weather.Visibility = *data.Visibility / 1000
	}
	return weather, nil
}
