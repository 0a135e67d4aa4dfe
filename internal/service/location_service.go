package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/model"
	"github.com/fakhrymubarak/geo-weather-api/internal/repository"
)

type LocationServiceInterface interface {
	LocateByIP(ctx context.Context, ip string) (*model.Location, error)
	GeocodeCity(ctx context.Context, city string) (*model.Location, error)
}

// LocationService resolves approximate locations from IP addresses and city names.
type LocationService struct {
	IPRepo      repository.IPLocationRepository
	WeatherRepo repository.WeatherRepository
	logger      *zap.SugaredLogger
}

func NewLocationService(ipRepo repository.IPLocationRepository, weatherRepo repository.WeatherRepository, logger *zap.SugaredLogger) *LocationService {
	return &LocationService{
		IPRepo:      ipRepo,
		WeatherRepo: weatherRepo,
		logger:      nopIfNil(logger),
	}
}

// LocateByIP geolocates ip. An empty ip lets the geolocation service use the caller's
// own public address, i.e. this server's.
func (s *LocationService) LocateByIP(ctx context.Context, ip string) (*model.Location, error) {
	ctx, span := tracer.Start(ctx, "LocationService.LocateByIP")
	defer span.End()
	span.SetAttributes(attribute.String("client.ip", ip))

	data, err := s.IPRepo.Lookup(ctx, ip)
	if err != nil {
		s.logger.Warnw("ip geolocation failed", "ip", ip, "error", err)
		if errors.Is(err, repository.ErrDecode) {
			return nil, fail(span, model.NewResolveError(model.ErrMalformedResponse, unexpectedPrefix+err.Error(), err))
		}
		return nil, fail(span, model.NewResolveError(model.ErrNetwork, networkErrorPrefix+err.Error(), err))
	}

	switch data.Status {
	case model.IPAPIStatusSuccess:
		return &model.Location{
			City:    data.City,
			Country: data.Country,
			Lat:     data.Lat,
			Lon:     data.Lon,
		}, nil
	case model.IPAPIStatusFail:
		msg := data.Message
		if msg == "" {
			msg = msgPrivateIPFallback
		}
		s.logger.Infow("ip geolocation refused", "ip", ip, "message", data.Message)
		return nil, fail(span, model.NewResolveError(model.ErrUpstream, msg+msgEnterManually, nil))
	default:
		s.logger.Warnw("unknown ip geolocation status", "ip", ip, "status", data.Status)
		return nil, fail(span, model.NewResolveError(model.ErrUpstream, msgNoLocation, nil))
	}
}

// GeocodeCity resolves a city name to coordinates through the weather provider.
func (s *LocationService) GeocodeCity(ctx context.Context, city string) (*model.Location, error) {
	ctx, span := tracer.Start(ctx, "LocationService.GeocodeCity")
	defer span.End()
	span.SetAttributes(attribute.String("city", city))

	data, err := s.WeatherRepo.Geocode(ctx, city)
	if err != nil {
		s.logger.Warnw("geocoding failed", "city", city, "error", err)
		return nil, fail(span, fetchError(err, msgCityNotFound, msgCityFetch))
	}
	if data.Coord == nil || data.Sys == nil {
		return nil, fail(span, model.NewResolveError(model.ErrMalformedResponse, msgInvalidWeather, nil))
	}
	return &model.Location{
		City:    data.Name,
		Country: data.Sys.Country,
		Lat:     data.Coord.Lat,
		Lon:     data.Coord.Lon,
	}, nil
}
