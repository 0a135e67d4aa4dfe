package integrationtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fakhrymubarak/geo-weather-api/internal/model"
)

type GeoWeatherAPITestSuite struct {
	suite.Suite
	httpServer *httptest.Server
	owm        *httptest.Server
	ipAPI      *httptest.Server
	owmLog     *requestLog
	ipAPILog   *requestLog
}

func (suite *GeoWeatherAPITestSuite) SetupSuite() {
	suite.owmLog = &requestLog{}
	suite.ipAPILog = &requestLog{}
	suite.owm = mockOWMApi(suite.owmLog)
	suite.ipAPI = mockIPAPI(suite.ipAPILog)
	suite.httpServer = setupIntegrationTestServer(suite.owm.URL, suite.ipAPI.URL)
}

func (suite *GeoWeatherAPITestSuite) SetupTest() {
	suite.owmLog.reset()
	suite.ipAPILog.reset()
}

func (suite *GeoWeatherAPITestSuite) TearDownSuite() {
	for _, srv := range []*httptest.Server{suite.httpServer, suite.owm, suite.ipAPI} {
		if srv != nil {
			srv.Close()
		}
	}
}

func TestGeoWeatherAPITestSuite(t *testing.T) {
	suite.Run(t, new(GeoWeatherAPITestSuite))
}

func (suite *GeoWeatherAPITestSuite) get(path string, headers map[string]string) *http.Response {
	req, err := http.NewRequest(http.MethodGet, suite.httpServer.URL+path, nil)
	require.NoError(suite.T(), err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := suite.httpServer.Client().Do(req)
	require.NoError(suite.T(), err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) model.ErrorResponse {
	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func decodeWeather(t *testing.T, resp *http.Response) model.WeatherResponse {
	var body model.WeatherResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (suite *GeoWeatherAPITestSuite) TestWeatherEndpoint() {
	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantUpstream int
		validate     func(t *testing.T, resp *http.Response)
	}{
		{
			name:       "Failed - Missing location parameters",
			path:       "/api/weather",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, model.ErrorResponse{Success: false, Error: "Missing location parameters"}, decodeError(t, resp))
			},
		},
		{
			name:       "Failed - Invalid coordinates",
			path:       "/api/weather?lat=abc&lon=-0.1",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "Invalid coordinates", decodeError(t, resp).Error)
			},
		},
		{
			name:         "Failed - Unknown city",
			path:         "/api/weather?city=Atlantis",
			wantStatus:   http.StatusBadRequest,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, model.ErrorResponse{Success: false, Error: "City not found"}, decodeError(t, resp))
			},
		},
		{
			name:         "Failed - Upstream error status",
			path:         "/api/weather?city=Busy",
			wantStatus:   http.StatusBadRequest,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "Failed to fetch weather data", decodeError(t, resp).Error)
			},
		},
		{
			name:         "Failed - Undecodable upstream body",
			path:         "/api/weather?city=Garbled",
			wantStatus:   http.StatusBadRequest,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "Invalid response from weather API", decodeError(t, resp).Error)
			},
		},
		{
			name:         "Failed - Incomplete upstream body",
			path:         "/api/weather?city=Partial",
			wantStatus:   http.StatusBadRequest,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				assert.Equal(t, "Invalid response from weather API", decodeError(t, resp).Error)
			},
		},
		{
			name:         "Success - Coordinates",
			path:         "/api/weather?lat=51.5&lon=-0.1",
			wantStatus:   http.StatusOK,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				body := decodeWeather(t, resp)
				assert.True(t, body.Success)
				assert.Equal(t, model.WeatherData{
					Temperature:   14.6,
					FeelsLike:     14.0,
					Humidity:      82,
					Pressure:      1012,
					WindSpeed:     4.1,
					WindDeg:       230,
					Description:   "Light rain",
					Main:          "Rain",
					Icon:          "10d",
					City:          "London",
					Country:       "GB",
					Visibility:    10.0,
					Clouds:        75,
					WindDirection: "SW",
					Emoji:         "🌧️",
				}, body.Data)
			},
		},
		{
			name:         "Success - City",
			path:         "/api/weather?city=London",
			wantStatus:   http.StatusOK,
			wantUpstream: 1,
			validate: func(t *testing.T, resp *http.Response) {
				body := decodeWeather(t, resp)
				assert.True(t, body.Success)
				assert.Equal(t, "London", body.Data.City)
				assert.Equal(t, "SW", body.Data.WindDirection)
			},
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.owmLog.reset()

			resp := suite.get(tt.path, nil)
			defer resp.Body.Close()

			assert.Equal(suite.T(), tt.wantStatus, resp.StatusCode)
			assert.Equal(suite.T(), "application/json", resp.Header.Get("Content-Type"))
			assert.Equal(suite.T(), tt.wantUpstream, suite.owmLog.len())

			if tt.validate != nil {
				tt.validate(suite.T(), resp)
			}
		})
	}
}

func (suite *GeoWeatherAPITestSuite) TestWeatherEndpoint_CityMatchesCoordinates() {
	byCity := suite.get("/api/weather?city=London", nil)
	defer byCity.Body.Close()
	byCoords := suite.get("/api/weather?lat=51.5085&lon=-0.1257", nil)
	defer byCoords.Body.Close()

	suite.Equal(decodeWeather(suite.T(), byCoords), decodeWeather(suite.T(), byCity))
}

func (suite *GeoWeatherAPITestSuite) TestWeatherEndpoint_UpstreamQuery() {
	resp := suite.get("/api/weather?lat=51.5&lon=-0.1", nil)
	defer resp.Body.Close()
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	suite.Require().Len(suite.owmLog.requests, 1)
	q := suite.owmLog.requests[0].URL.Query()
	suite.Equal("51.5", q.Get("lat"))
	suite.Equal("-0.1", q.Get("lon"))
	suite.Equal("metric", q.Get("units"))
	suite.Equal(testAPIKey, q.Get("appid"))
}
