package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/i474232898/river-conditions/internal/river"
)

func TestUSGSProvider_Fetch(t *testing.T) {
	var gotUA, gotSites string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotSites = r.URL.Query().Get("sites")
		w.Write([]byte(`{"value":{"timeSeries":[]}}`))
	}))
	defer srv.Close()

	p := NewUSGSProvider(srv.Client(), "", srv.URL+"/nwis/iv/?format=json&sites={id}")
	body, err := p.Fetch(context.Background(), "02029000")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != `{"value":{"timeSeries":[]}}` {
		t.Errorf("body = %s", body)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
	if gotSites != "02029000" {
		t.Errorf("sites = %q", gotSites)
	}
}

func TestWaterReporterProvider_CustomUserAgent(t *testing.T) {
	var gotUA, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewWaterReporterProvider(srv.Client(), "display-node/2", srv.URL+"/{id}/supplement.json")
	if _, err := p.Fetch(context.Background(), "19656"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "display-node/2" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if gotPath != "/19656/supplement.json" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewWaterReporterProvider(srv.Client(), "", srv.URL+"/{id}")
	_, err := p.Fetch(context.Background(), "19656")

	var ue *river.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("err = %v, want *river.UpstreamError", err)
	}
	if ue.StatusCode != http.StatusNotFound || ue.Provider != river.ProviderWR || ue.StationID != "19656" {
		t.Errorf("upstream error = %+v", ue)
	}
	if !errors.Is(err, river.ErrUpstream) {
		t.Error("expected errors.Is(err, river.ErrUpstream)")
	}
}

func TestFetch_ServerErrorsOpenCircuit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewUSGSProvider(srv.Client(), "", srv.URL+"/{id}")
	// gobreaker's default ReadyToTrip opens after more than 5 consecutive failures.
	for i := 0; i < 6; i++ {
		p.Fetch(context.Background(), "02029000")
	}
	before := calls

	_, err := p.Fetch(context.Background(), "02029000")
	if !errors.Is(err, river.ErrUpstream) || !errors.Is(err, errCircuitOpen) {
		t.Fatalf("err = %v, want open circuit", err)
	}
	if calls != before {
		t.Error("open circuit must not reach the upstream")
	}
}

func TestFetch_ClientErrorsKeepCircuitClosed(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewUSGSProvider(srv.Client(), "", srv.URL+"/{id}")
	for i := 0; i < 10; i++ {
		p.Fetch(context.Background(), "02029000")
	}
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 20 * time.Millisecond}
	p := NewUSGSProvider(client, "", srv.URL+"/{id}")
	_, err := p.Fetch(context.Background(), "02029000")

	var ue *river.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != 0 {
		t.Fatalf("err = %v, want transport UpstreamError", err)
	}
}

func TestFetch_NoClient(t *testing.T) {
	p := NewUSGSProvider(nil, "", "")
	if _, err := p.Fetch(context.Background(), "02029000"); !errors.Is(err, river.ErrUpstream) {
		t.Fatalf("err = %v", err)
	}
}

func TestDefaultURLs(t *testing.T) {
	if got := NewUSGSProvider(nil, "", "").URL("02029000"); got != "https://waterservices.usgs.gov/nwis/iv/?format=json&variable=00060,00065&sites=02029000" {
		t.Errorf("USGS URL = %s", got)
	}
	if got := NewWaterReporterProvider(nil, "", "").URL("19656"); got != "https://stations.waterreporter.org/19656/supplement.json" {
		t.Errorf("WR URL = %s", got)
	}
}
