package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultUpstreamTimeout = 5 * time.Second

// Config is built once at startup and passed by value to the components that need it.
type Config struct {
	Server         ServerConfig
	OpenWeatherMap OpenWeatherMapConfig
	IPAPI          IPAPIConfig
	Upstream       UpstreamConfig
	Log            LogConfig
	Tracing        TracingConfig
}

type ServerConfig struct {
	Port              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// Addr is the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

type OpenWeatherMapConfig struct {
	APIKey  string
	BaseURL string
}

type IPAPIConfig struct {
	BaseURL string
}

type UpstreamConfig struct {
	// Timeout bounds every outbound call; expiry is reported as a network error.
	Timeout time.Duration
}

type LogConfig struct {
	Development bool
}

type TracingConfig struct {
	ServiceName string
	// Endpoint of the OTLP gRPC collector. Tracing is disabled when empty.
	Endpoint string
}

// envBindings maps config keys to the environment variables that override them, first match wins.
var envBindings = map[string][]string{
	"server.port":                {"PORT"},
	"openweathermap.api_key":     {"OPENWEATHERMAP_API_KEY", "OPENWEATHER_API_KEY"},
	"openweathermap.api_url":     {"OPENWEATHERMAP_API_URL"},
	"ipapi.api_url":              {"IPAPI_API_URL"},
	"upstream.timeout":           {"UPSTREAM_TIMEOUT"},
	"log.development":            {"LOG_DEVELOPMENT"},
	"tracing.service_name":       {"OTEL_SERVICE_NAME"},
	"tracing.otlp_endpoint":      {"OTEL_EXPORTER_OTLP_ENDPOINT"},
	"server.read_header_timeout": {"SERVER_READ_HEADER_TIMEOUT"},
	"server.shutdown_timeout":    {"SERVER_SHUTDOWN_TIMEOUT"},
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", "15s")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("openweathermap.api_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("ipapi.api_url", "http://ip-api.com/json")
	v.SetDefault("upstream.timeout", defaultUpstreamTimeout.String())
	v.SetDefault("log.development", false)
	v.SetDefault("tracing.service_name", "geo-weather-api")
	v.SetDefault("tracing.otlp_endpoint", "")
}

// Load reads config.yaml from the project root (merged with config_test.yaml under go test),
// applies .env and environment overrides and returns the resulting Config.
// A missing config file is not an error; defaults apply.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	root, err := getProjectRoot()
	if err != nil {
		root = "."
	}
	_ = godotenv.Load(filepath.Join(root, ".env"))

	v.SetConfigType("yaml")
	v.SetConfigName("config")
	v.AddConfigPath(root)
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if isTestRun() {
		v.SetConfigName("config_test")
		if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("merge test config: %w", err)
		}
	}

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	cfg := Config{
		Server: ServerConfig{
			Port:              strings.TrimPrefix(v.GetString("server.port"), ":"),
			ReadHeaderTimeout: v.GetDuration("server.read_header_timeout"),
			ReadTimeout:       v.GetDuration("server.read_timeout"),
			WriteTimeout:      v.GetDuration("server.write_timeout"),
			IdleTimeout:       v.GetDuration("server.idle_timeout"),
			ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		},
		OpenWeatherMap: OpenWeatherMapConfig{
			APIKey:  v.GetString("openweathermap.api_key"),
			BaseURL: v.GetString("openweathermap.api_url"),
		},
		IPAPI: IPAPIConfig{
			BaseURL: v.GetString("ipapi.api_url"),
		},
		Upstream: UpstreamConfig{
			Timeout: v.GetDuration("upstream.timeout"),
		},
		Log: LogConfig{
			Development: v.GetBool("log.development"),
		},
		Tracing: TracingConfig{
			ServiceName: v.GetString("tracing.service_name"),
			Endpoint:    v.GetString("tracing.otlp_endpoint"),
		},
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = defaultUpstreamTimeout
	}
	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// NewLogger builds the process logger: human-readable in development, JSON otherwise.
func NewLogger(cfg LogConfig) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if cfg.Development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}
