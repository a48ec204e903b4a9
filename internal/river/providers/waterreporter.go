package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/river-conditions/internal/river"
)

// WaterReporterURLTemplate is the station supplement document on Water Reporter.
const WaterReporterURLTemplate = "https://stations.waterreporter.org/{id}/supplement.json"

// WaterReporterProvider implements river.Upstream for Water Reporter stations.
type WaterReporterProvider struct {
	urlTemplate string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewWaterReporterProvider creates a Water Reporter upstream. An empty
// urlTemplate selects WaterReporterURLTemplate.
func NewWaterReporterProvider(client *http.Client, userAgent, urlTemplate string) *WaterReporterProvider {
	if urlTemplate == "" {
		urlTemplate = WaterReporterURLTemplate
	}
	return &WaterReporterProvider{
		urlTemplate: urlTemplate,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newBreaker("waterreporter"),
	}
}

func (p *WaterReporterProvider) Provider() river.Provider {
	return river.ProviderWR
}

// URL returns the supplement URL for a station.
func (p *WaterReporterProvider) URL(stationID string) string {
	return expand(p.urlTemplate, stationID)
}

func (p *WaterReporterProvider) Fetch(ctx context.Context, stationID string) ([]byte, error) {
	return doRequest(ctx, p.httpCfg, p.circuit, river.ProviderWR, stationID, p.URL(stationID))
}
