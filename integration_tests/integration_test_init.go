package integrationtest

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/fakhrymubarak/geo-weather-api/internal/config"
	"github.com/fakhrymubarak/geo-weather-api/internal/handler"
	"github.com/fakhrymubarak/geo-weather-api/internal/repository"
	"github.com/fakhrymubarak/geo-weather-api/internal/service"
)

const testAPIKey = "test_api_key"

// requestLog records the paths and queries an upstream stub has been asked for.
type requestLog struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, r.Clone(r.Context()))
}

func (l *requestLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = nil
}

func (l *requestLog) paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.requests))
	for _, r := range l.requests {
		out = append(out, r.URL.Path)
	}
	return out
}

func (l *requestLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.requests)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// mockOWMApi serves /weather the way OpenWeatherMap does for the cities the suite uses.
func mockOWMApi(log *requestLog) *httptest.Server {
	london, err := os.ReadFile("testdata/openweathermap_london.json")
	if err != nil {
		panic(err)
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		q := r.URL.Query()
		if q.Get("appid") != testAPIKey {
			writeJSON(w, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`)
			return
		}
		if r.URL.Path != "/weather" {
			writeJSON(w, http.StatusNotFound, `{"cod":"404","message":"Internal error"}`)
			return
		}

		switch city := q.Get("q"); {
		case q.Get("lat") != "" && q.Get("lon") != "":
			_, _ = w.Write(london)
		case city == "London":
			_, _ = w.Write(london)
		case city == "Garbled":
			writeJSON(w, http.StatusOK, `<html>maintenance</html>`)
		case city == "Partial":
			writeJSON(w, http.StatusOK, `{"coord":{"lon":1,"lat":2},"name":"Partial"}`)
		case city == "Busy":
			writeJSON(w, http.StatusTooManyRequests, `{"cod":429}`)
		default:
			writeJSON(w, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
		}
	}))
}

// mockIPAPI mimics ip-api.com: /json geolocates the caller, /json/{ip} a given address.
func mockIPAPI(log *requestLog) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.add(r)
		switch r.URL.Path {
		case "/json":
			writeJSON(w, http.StatusOK,
				`{"status":"success","country":"Germany","city":"Berlin","lat":52.52,"lon":13.405,"query":"93.184.216.34"}`)
		case "/json/8.8.8.8":
			writeJSON(w, http.StatusOK,
				`{"status":"success","country":"United States","city":"Mountain View","lat":37.4056,"lon":-122.0775,"query":"8.8.8.8"}`)
		case "/json/203.0.113.9":
			writeJSON(w, http.StatusOK, `{"status":"fail","message":"reserved range","query":"203.0.113.9"}`)
		default:
			writeJSON(w, http.StatusServiceUnavailable, `{}`)
		}
	}))
}

// setupIntegrationTestServer wires the full application stack against the given upstream stubs.
func setupIntegrationTestServer(owmURL, ipAPIURL string) *httptest.Server {
	cfg := config.Config{
		OpenWeatherMap: config.OpenWeatherMapConfig{APIKey: testAPIKey, BaseURL: owmURL},
		IPAPI:          config.IPAPIConfig{BaseURL: ipAPIURL + "/json"},
		Upstream:       config.UpstreamConfig{Timeout: 2 * time.Second},
	}

	client := repository.NewHTTPClient(cfg.Upstream.Timeout)
	weatherRepo := repository.NewWeatherRepository(client, cfg.OpenWeatherMap)
	ipRepo := repository.NewIPLocationRepository(client, cfg.IPAPI)

	h := handler.NewHandler(
		service.NewLocationService(ipRepo, weatherRepo, nil),
		service.NewWeatherService(weatherRepo, nil),
		nil,
	)
	return httptest.NewServer(handler.NewRouter(h, nil))
}
