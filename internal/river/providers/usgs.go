package providers

import (
	"context"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/river-conditions/internal/river"
)

// USGSURLTemplate is the NWIS instantaneous values query for discharge (00060)
// and gauge height (00065).
const USGSURLTemplate = "https://waterservices.usgs.gov/nwis/iv/?format=json&variable=00060,00065&sites={id}"

// USGSProvider implements river.Upstream for the USGS water services API.
type USGSProvider struct {
	urlTemplate string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

// NewUSGSProvider creates a USGS upstream. An empty urlTemplate selects USGSURLTemplate.
func NewUSGSProvider(client *http.Client, userAgent, urlTemplate string) *USGSProvider {
	if urlTemplate == "" {
		urlTemplate = USGSURLTemplate
	}
	return &USGSProvider{
		urlTemplate: urlTemplate,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newBreaker("usgs"),
	}
}

func (p *USGSProvider) Provider() river.Provider {
	return river.ProviderUSGS
}

// URL returns the request URL for a site number.
func (p *USGSProvider) URL(stationID string) string {
	return expand(p.urlTemplate, stationID)
}

func (p *USGSProvider) Fetch(ctx context.Context, stationID string) ([]byte, error) {
	return doRequest(ctx, p.httpCfg, p.circuit, river.ProviderUSGS, stationID, p.URL(stationID))
}
