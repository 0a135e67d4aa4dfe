package service

import (
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/model"
	"github.com/fakhrymubarak/geo-weather-api/internal/repository"
)

const (
	msgCityNotFound      = "City not found"
	msgWeatherFetch      = "Failed to fetch weather data"
	msgCityFetch         = "Failed to fetch city data"
	msgInvalidWeather    = "Invalid response from weather API"
	msgNoLocation        = "Could not detect location"
	msgPrivateIPFallback = "Cannot detect location from private IP"
	msgEnterManually     = ". Please enter your city manually."
	networkErrorPrefix   = "Network error: "
	unexpectedPrefix     = "Unexpected error: "
)

var tracer = otel.Tracer("github.com/fakhrymubarak/geo-weather-api/internal/service")

func nopIfNil(logger *zap.SugaredLogger) *zap.SugaredLogger {
	if logger == nil {
		return zap.NewNop().Sugar()
	}
	return logger
}

// fetchError classifies an OpenWeatherMap repository error into the message shown to the client.
// notFound is used for a 404, httpFailure for any other non-2xx status.
func fetchError(err error, notFound, httpFailure string) *model.ResolveError {
	var statusErr *repository.StatusError
	switch {
	case errors.Is(err, repository.ErrDecode):
		return model.NewResolveError(model.ErrMalformedResponse, msgInvalidWeather, err)
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound && notFound != "" {
			return model.NewResolveError(model.ErrUpstream, notFound, err)
		}
		return model.NewResolveError(model.ErrUpstream, httpFailure, err)
	default:
		return model.NewResolveError(model.ErrNetwork, networkErrorPrefix+err.Error(), err)
	}
}

// fail records err on span and returns it.
func fail(span trace.Span, err *model.ResolveError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Message)
	return err
}
