package integrationtest

import (
	"encoding/json"
	"net/http"

	"github.com/fakhrymubarak/geo-weather-api/internal/model"
)

func (suite *GeoWeatherAPITestSuite) TestLocationEndpoint() {
	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantPaths  []string
		wantBody   any
	}{
		{
			name:       "Success - Loopback client uses server address",
			wantStatus: http.StatusOK,
			wantPaths:  []string{"/json"},
			wantBody: model.LocationResponse{
				Success: true, City: "Berlin", Country: "Germany", Lat: 52.52, Lon: 13.405,
			},
		},
		{
			name:       "Success - Private forwarded address uses server address",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.5"},
			wantStatus: http.StatusOK,
			wantPaths:  []string{"/json"},
			wantBody: model.LocationResponse{
				Success: true, City: "Berlin", Country: "Germany", Lat: 52.52, Lon: 13.405,
			},
		},
		{
			name:       "Success - Public forwarded address",
			headers:    map[string]string{"X-Forwarded-For": "8.8.8.8, 10.0.0.2"},
			wantStatus: http.StatusOK,
			wantPaths:  []string{"/json/8.8.8.8"},
			wantBody: model.LocationResponse{
				Success: true, City: "Mountain View", Country: "United States", Lat: 37.4056, Lon: -122.0775,
			},
		},
		{
			name:       "Failed - Geolocation refused",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			wantStatus: http.StatusBadRequest,
			wantPaths:  []string{"/json/203.0.113.9"},
			wantBody: model.ErrorResponse{
				Success: false, Error: "reserved range. Please enter your city manually.",
			},
		},
		{
			name:       "Failed - Geolocation service unavailable",
			headers:    map[string]string{"True-Client-IP": "1.2.3.4"},
			wantStatus: http.StatusBadRequest,
			wantPaths:  []string{"/json/1.2.3.4"},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.ipAPILog.reset()

			resp := suite.get("/api/location", tt.headers)
			defer resp.Body.Close()

			suite.Equal(tt.wantStatus, resp.StatusCode)
			suite.Equal(tt.wantPaths, suite.ipAPILog.paths())

			switch want := tt.wantBody.(type) {
			case model.LocationResponse:
				var got model.LocationResponse
				suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&got))
				suite.Equal(want, got)
			case model.ErrorResponse:
				suite.Equal(want, decodeError(suite.T(), resp))
			default:
				got := decodeError(suite.T(), resp)
				suite.False(got.Success)
				suite.Contains(got.Error, "Network error: ")
			}
		})
	}
}

func (suite *GeoWeatherAPITestSuite) TestLandingPageAndHealth() {
	index := suite.get("/", nil)
	defer index.Body.Close()
	suite.Equal(http.StatusOK, index.StatusCode)
	suite.Contains(index.Header.Get("Content-Type"), "text/html")

	health := suite.get("/health", nil)
	defer health.Body.Close()
	suite.Equal(http.StatusOK, health.StatusCode)

	suite.Zero(suite.ipAPILog.len())
	suite.Zero(suite.owmLog.len())
}
