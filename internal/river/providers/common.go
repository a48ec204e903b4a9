package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/river-conditions/internal/common"
	"github.com/i474232898/river-conditions/internal/metrics"
	"github.com/i474232898/river-conditions/internal/river"
)

// DefaultUserAgent is sent on every upstream request unless overridden.
const DefaultUserAgent = "river-conditions/1.0"

// HTTPClientConfig bundles the HTTP client and request settings shared by providers.
type HTTPClientConfig struct {
	Client    *http.Client
	UserAgent string
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError carries a non-200 status through the circuit breaker.
type statusError struct {
	code int
}

func (e statusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.code)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// A 4xx is about the station, not the upstream's health.
		IsSuccessful: func(err error) bool {
			var se statusError
			if errors.As(err, &se) {
				return se.code < 500
			}
			return err == nil
		},
	})
}

// expand fills the {id} placeholder of a URL template.
func expand(template, stationID string) string {
	return strings.ReplaceAll(template, "{id}", stationID)
}

// doRequest performs a single GET through the circuit breaker and returns the
// body of a 200 response. There are no retries: any failure is reported as a
// *river.UpstreamError.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	provider river.Provider,
	stationID string,
	url string,
) ([]byte, error) {
	fail := func(code int, err error) error {
		return &river.UpstreamError{Provider: provider, StationID: stationID, StatusCode: code, Err: err}
	}

	if cfg.Client == nil {
		return nil, fail(0, errNoHTTPClient)
	}

	start := time.Now()
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", common.FirstNonEmpty(cfg.UserAgent, DefaultUserAgent))

		resp, err := cfg.Client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			// Drain so the connection can be reused.
			io.Copy(io.Discard, resp.Body)
			return nil, statusError{code: resp.StatusCode}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return body, nil
	})
	metrics.UpstreamLatency.WithLabelValues(string(provider)).Observe(time.Since(start).Seconds())

	if err != nil {
		var se statusError
		switch {
		case errors.As(err, &se):
			metrics.UpstreamRequests.WithLabelValues(string(provider), strconv.Itoa(se.code)).Inc()
			return nil, fail(se.code, err)
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.UpstreamRequests.WithLabelValues(string(provider), "circuit_open").Inc()
			return nil, fail(0, fmt.Errorf("%w: %v", errCircuitOpen, err))
		default:
			metrics.UpstreamRequests.WithLabelValues(string(provider), "transport_error").Inc()
			return nil, fail(0, err)
		}
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fail(0, fmt.Errorf("unexpected result type from circuit breaker"))
	}
	metrics.UpstreamRequests.WithLabelValues(string(provider), "200").Inc()
	return body, nil
}
