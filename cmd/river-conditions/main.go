package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	httpapi "github.com/i474232898/river-conditions/internal/api/http"
	"github.com/i474232898/river-conditions/internal/config"
	"github.com/i474232898/river-conditions/internal/river"
	"github.com/i474232898/river-conditions/internal/river/providers"
	"github.com/i474232898/river-conditions/internal/scheduler"
	"github.com/i474232898/river-conditions/internal/stations"
	"github.com/i474232898/river-conditions/internal/store"
)

var cli struct {
	Serve ServeCmd `cmd:"" default:"1" help:"Run the HTTP API (default)."`
	Fetch FetchCmd `cmd:"" help:"Assemble conditions once and print the JSON document."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("river-conditions"),
		kong.Description("Merged USGS and Water Reporter river conditions."),
		kong.UsageOnError(),
	)

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx.FatalIfErrorf(ctx.Run(cfg))
}

// app holds the wired dependencies shared by every command.
type app struct {
	service  *river.Service
	registry *stations.Registry
}

func build(cfg *config.AppConfig) (*app, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	var payloads river.PayloadStore
	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		payloads = store.NewMemoryStore()
	default:
		fs, err := store.NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		payloads = fs
	}

	cache := river.NewStationCache(payloads, cfg.CacheTTL,
		providers.NewUSGSProvider(httpClient, cfg.UpstreamUserAgent, cfg.USGSURLTemplate),
		providers.NewWaterReporterProvider(httpClient, cfg.UpstreamUserAgent, cfg.WRURLTemplate),
	)
	log.Printf("INFO: station cache backend=%s ttl=%s", cfg.CacheBackend, cache.TTL())

	// Identity enrichment is only on when a stations file is configured.
	var directory river.StationDirectory
	if cfg.StationsFile != "" {
		d, err := stations.LoadDirectory(cfg.StationsFile)
		if err != nil {
			return nil, err
		}
		log.Printf("INFO: loaded %d stations from %s", len(d.Stations), cfg.StationsFile)
		directory = d
	}

	var registry *stations.Registry
	if cfg.LocationsFile != "" {
		r, err := stations.LoadRegistry(cfg.LocationsFile)
		if err != nil {
			return nil, err
		}
		log.Printf("INFO: loaded %d locations from %s", len(r.Locations), cfg.LocationsFile)
		registry = r
	}

	return &app{
		service:  river.NewService(cache, directory),
		registry: registry,
	}, nil
}

type ServeCmd struct{}

func (c *ServeCmd) Run(cfg *config.AppConfig) error {
	a, err := build(cfg)
	if err != nil {
		return err
	}

	// Scheduler that keeps configured stations warm in the cache.
	sched := scheduler.New(a.registry.StationIDs(), cfg.WarmInterval, cfg.UpstreamTimeout*2, a.service)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	server := httpapi.NewApp()
	httpapi.RegisterRoutes(server, a.service, a.registry)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.ShutdownWithContext(shutdownCtx)
}

type FetchCmd struct {
	USGS string `name:"usgs" help:"USGS site number (8 digits)."`
	WR   string `name:"wr" help:"Water Reporter station id."`
}

func (c *FetchCmd) Run(cfg *config.AppConfig) error {
	a, err := build(cfg)
	if err != nil {
		return err
	}

	var ids []string
	for _, id := range []string{c.USGS, c.WR} {
		if id != "" {
			ids = append(ids, id)
		}
	}
	req, err := river.RequestFromIDs(ids...)
	if err != nil {
		return err
	}
	if req.USGSID != c.USGS || req.WRID != c.WR {
		return fmt.Errorf("%w: --usgs takes an 8 digit id, --wr any other", river.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.UpstreamTimeout)
	defer cancel()

	doc, err := a.service.Assemble(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
