package repository

import (
	"context"
	"net/url"
	"strings"

	"github.com/fakhrymubarak/geo-weather-api/internal/config"
	"github.com/fakhrymubarak/geo-weather-api/internal/model"
)

// IPLocationRepository geolocates IP addresses with ip-api.com.
type IPLocationRepository interface {
	// Lookup geolocates ip, or the caller's own public address when ip is empty.
	Lookup(ctx context.Context, ip string) (*model.IPAPIResponse, error)
}

type ipAPIRepository struct {
	fetcher JSONFetcher
	baseURL string
}

func NewIPLocationRepository(fetcher JSONFetcher, cfg config.IPAPIConfig) IPLocationRepository {
	return &ipAPIRepository{
		fetcher: fetcher,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

func (r *ipAPIRepository) Lookup(ctx context.Context, ip string) (*model.IPAPIResponse, error) {
	target := r.baseURL
	if ip != "" {
		target += "/" + url.PathEscape(ip)
	}
	var data model.IPAPIResponse
	if err := r.fetcher.GetJSON(ctx, target, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
