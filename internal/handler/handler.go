package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/geo-weather-api/internal/display"
	"github.com/fakhrymubarak/geo-weather-api/internal/middleware"
	"github.com/fakhrymubarak/geo-weather-api/internal/model"
	"github.com/fakhrymubarak/geo-weather-api/internal/service"
	"github.com/fakhrymubarak/geo-weather-api/internal/web"
)

const (
	msgMissingLocation    = "Missing location parameters"
	msgInvalidCoordinates = "Invalid coordinates"
)

type Handler struct {
	LocationService service.LocationServiceInterface
	WeatherService  service.WeatherServiceInterface
	logger          *zap.SugaredLogger
}

func NewHandler(locations service.LocationServiceInterface, weather service.WeatherServiceInterface, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		LocationService: locations,
		WeatherService:  weather,
		logger:          logger,
	}
}

func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorw("could not encode json", "error", err)
	}
}

// writeError reports any resolver failure as 400 with the error envelope.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	h.writeJSONResponse(w, http.StatusBadRequest, model.NewErrorResponse(model.ErrorMessage(err)))
}

// HandleLocation geolocates the requester. Private or loopback client addresses cannot be
// geolocated, so the lookup falls back to the server's own public address.
func (h *Handler) HandleLocation(w http.ResponseWriter, r *http.Request) {
	ip, ok := middleware.ClientIPFromContext(r.Context())
	if !ok {
		ip = middleware.ResolveClientIP(r.Header, r.RemoteAddr)
	}

	lookup := ip
	if middleware.IsPrivateIP(ip) {
		h.logger.Infow("private client ip, geolocating server address", "client_ip", ip)
		lookup = ""
	} else {
		h.logger.Infow("geolocating client ip", "client_ip", ip)
	}

	loc, err := h.LocationService.LocateByIP(r.Context(), lookup)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSONResponse(w, http.StatusOK, model.NewLocationResponse(*loc))
}

// weatherQuery holds the validated location parameters of a weather request.
// Coordinates are set when HasCoordinates, City otherwise.
type weatherQuery struct {
	HasCoordinates bool
	Lat, Lon       float64
	City           string
}

// parseWeatherQuery prefers lat+lon over city. Failures are ErrInvalidInput resolve errors.
func parseWeatherQuery(q url.Values) (weatherQuery, error) {
	lat, lon, city := q.Get("lat"), q.Get("lon"), q.Get("city")
	switch {
	case lat != "" && lon != "":
		latF, lonF, ok := parseCoordinates(lat, lon)
		if !ok {
			return weatherQuery{}, model.NewResolveError(model.ErrInvalidInput, msgInvalidCoordinates, nil)
		}
		return weatherQuery{HasCoordinates: true, Lat: latF, Lon: lonF}, nil
	case city != "":
		return weatherQuery{City: city}, nil
	default:
		return weatherQuery{}, model.NewResolveError(model.ErrInvalidInput, msgMissingLocation, nil)
	}
}

// HandleWeather serves current weather for lat+lon or, failing that, for city.
func (h *Handler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	query, err := parseWeatherQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	var data *model.WeatherData
	if query.HasCoordinates {
		data, err = h.WeatherService.ByCoordinates(r.Context(), query.Lat, query.Lon)
	} else {
		data, err = h.WeatherService.ByCity(r.Context(), query.City)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	data.WindDirection = display.WindDirection(data.WindDeg)
	data.Emoji = display.WeatherEmoji(data.Main)
	h.writeJSONResponse(w, http.StatusOK, model.WeatherResponse{Success: true, Data: *data})
}

func parseCoordinates(lat, lon string) (float64, float64, bool) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil || math.IsNaN(latF) || math.IsInf(latF, 0) {
		return 0, 0, false
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil || math.IsNaN(lonF) || math.IsInf(lonF, 0) {
		return 0, 0, false
	}
	return latF, lonF, true
}

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, web.Static(), "index.html")
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
