package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"obedio-core/internal/api"
	"obedio-core/internal/broadcast"
	"obedio-core/internal/cache"
	"obedio-core/internal/clock"
	"obedio-core/internal/config"
	"obedio-core/internal/db"
	"obedio-core/internal/dedup"
	"obedio-core/internal/devices"
	"obedio-core/internal/dnd"
	k "obedio-core/internal/kafka"
	"obedio-core/internal/lifecycle"
	"obedio-core/internal/memstore"
	"obedio-core/internal/metrics"
	"obedio-core/internal/model"
	"obedio-core/internal/processors/ingestor"
	"obedio-core/internal/processors/journal"
	"obedio-core/internal/processors/mirror"
	"obedio-core/internal/processors/watchrelay"
	"obedio-core/internal/redisstate"
	"obedio-core/internal/resolver"
	"obedio-core/internal/transport"
	"obedio-core/internal/worker"
)

// store is satisfied by both the Postgres and in-memory backends.
type store interface {
	PutLocation(ctx context.Context, l model.Location) (bool, error)
	GetLocation(ctx context.Context, id string) (model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	SetLocationDND(ctx context.Context, id string, status bool) (model.Location, error)
	PutGuest(ctx context.Context, g model.Guest) (bool, error)
	GetGuest(ctx context.Context, id string) (model.Guest, error)
	DeleteGuest(ctx context.Context, id string) (model.Guest, error)
	ListGuests(ctx context.Context) ([]model.Guest, error)
	ListGuestsByLocation(ctx context.Context, locationID string) ([]model.Guest, error)
	SetGuestDND(ctx context.Context, id string, status bool) (model.Guest, error)
	CreateServiceRequest(ctx context.Context, r model.ServiceRequest) error
	GetServiceRequest(ctx context.Context, id string) (model.ServiceRequest, error)
	UpdateServiceRequest(ctx context.Context, r model.ServiceRequest) error
	ListServiceRequests(ctx context.Context) ([]model.ServiceRequest, error)
	UpsertDevice(ctx context.Context, d model.Device) error
	GetDevice(ctx context.Context, id string) (model.Device, error)
	ListDevices(ctx context.Context) ([]model.Device, error)
	AppendActivity(ctx context.Context, e model.ActivityEntry) error
	ListActivity(ctx context.Context, limit int) ([]model.ActivityEntry, error)
}

type sequenceGuard interface {
	Advance(ctx context.Context, deviceID string, seq int64, at time.Time) (bool, error)
}

type deduplicator interface {
	Seen(ctx context.Context, key string) (bool, error)
}

func main() {
	configPath := flag.String("config", os.Getenv("OBEDIO_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	slog.InfoContext(ctx, "Starting service...", "env", cfg.Env)

	m := metrics.New()
	hub := broadcast.New(broadcast.Config{
		Buffer:  cfg.Broadcast.SubscriberBuffer,
		OnEvict: m.BroadcastEviction,
	})

	var (
		st     store
		health interface{ Ping(context.Context) error }
	)
	if cfg.Postgres.ConnString != "" {
		pg, err := db.Init(ctx, db.Config{
			ConnString:     cfg.Postgres.ConnString,
			MigrationsPath: cfg.Postgres.MigrationsPath,
			MaxConns:       cfg.Postgres.MaxConns,
			ConnectTimeout: cfg.Postgres.ConnectTimeout,
		})
		if err != nil {
			panic(err)
		}
		defer pg.Close()
		st, health = pg, pg
	} else {
		slog.WarnContext(ctx, "No postgres configured, state is kept in memory")
		st = memstore.New()
	}

	var (
		sequences sequenceGuard
		dedupe    deduplicator
	)
	if cfg.Redis.Enabled {
		rs := redisstate.New(redisstate.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Window:   cfg.Ingest.DedupWindow,
		})
		if err := rs.Ping(ctx); err != nil {
			panic(err)
		}
		defer rs.Close()
		sequences, dedupe = rs, rs
	} else {
		var brokers []string
		if cfg.Kafka.Enabled {
			brokers = cfg.Kafka.Brokers
		}
		sc := cache.New(cache.Config{
			Brokers: brokers,
			Topic:   cfg.Kafka.JournalTopic,
		})
		hydrateCtx, hydrateCancel := context.WithTimeout(ctx, cfg.Kafka.HydrateTimeout)
		if err := sc.Hydrate(hydrateCtx); err != nil {
			slog.ErrorContext(ctx, "Cache hydration failed, starting with partial sequences", "error", err)
		}
		hydrateCancel()
		sequences = sc
		dedupe = dedup.New(clock.Real(), cfg.Ingest.DedupWindow)
	}

	guests := resolver.New(st)
	dndEngine := dnd.New(dnd.Config{Store: st, Hub: hub, Metrics: m})
	requests := lifecycle.New(lifecycle.Config{Store: st, Hub: hub, Metrics: m})
	registry := devices.New(devices.Config{Store: st, Hub: hub})

	wg := sync.WaitGroup{}

	var (
		wJournal *journal.Journal
		wMirror  *mirror.Mirror
	)
	if cfg.Kafka.Enabled {
		wJournal = journal.New(journal.Config{
			Writer: k.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.JournalTopic),
		})
		wMirror = mirror.New(mirror.Config{
			Hub:    hub,
			Writer: k.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.BroadcastTopic),
		})
		wg.Go(func() { wJournal.Run(ctx) })
		wg.Go(func() { wMirror.Run(ctx) })
	}

	retryQueue := ingestor.NewRetryQueue(cfg.Ingest.RetryBuffer, m)
	ingestCfg := ingestor.Config{
		Sequences:             sequences,
		Dedup:                 dedupe,
		Resolver:              guests,
		Records:               st,
		DND:                   dndEngine,
		Requests:              requests,
		Retry:                 retryQueue,
		BackpressureThreshold: cfg.Ingest.BackpressureThreshold,
		Metrics:               m,
	}
	if wJournal != nil {
		ingestCfg.Journal = wJournal
	}
	ing := ingestor.New(ingestCfg)
	pipeline := ingestor.NewPipeline(ing, ingestor.PipelineConfig{
		Shards: cfg.Ingest.Shards,
		Buffer: cfg.Ingest.ShardBuffer,
	})
	wRetrier := worker.New(worker.Config{
		Name: "retry-worker",
		Processor: ingestor.NewRetrier(retryQueue, ing, ingestor.RetryConfig{
			Initial: cfg.Ingest.RetryInitial,
			Max:     cfg.Ingest.RetryMax,
		}),
	})
	var (
		client *transport.Client
		relay  *watchrelay.Relay
	)
	if cfg.MQTT.Enabled {
		router := transport.NewRouter(transport.RouterConfig{
			Presses:  pipeline,
			Devices:  registry,
			Requests: requests,
			Metrics:  m,
		})
		client = transport.New(transport.Config{
			Broker:         cfg.MQTT.Broker,
			ClientID:       cfg.MQTT.ClientID,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			QoS:            byte(cfg.MQTT.QoS),
			ConnectTimeout: cfg.MQTT.ConnectTimeout,
			BackoffInitial: cfg.MQTT.BackoffInitial,
			BackoffMax:     cfg.MQTT.BackoffMax,
			OutboxSize:     cfg.MQTT.OutboxSize,
			Metrics:        m,
		}, router)
		ing.SetAcker(client)
		relay = watchrelay.New(watchrelay.Config{
			Hub:       hub,
			Transport: client,
			Locations: st,
		})
		wg.Go(func() {
			if err := client.Connect(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.ErrorContext(ctx, "MQTT connect failed", "error", err)
			}
		})
		wg.Go(func() { relay.Run(ctx) })
	}

	wg.Go(func() { pipeline.Run(ctx) })
	wg.Go(func() { wRetrier.Run(ctx) })

	apiCfg := api.Config{
		Repo:      st,
		DND:       dndEngine,
		Requests:  requests,
		Ingestor:  pipeline,
		Resolver:  guests,
		Hub:       hub,
		Metrics:   m.Handler(),
		Heartbeat: cfg.Broadcast.Heartbeat,
	}
	if health != nil {
		apiCfg.Health = health
	}
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: api.New(apiCfg).Routes(),
	}
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			cancel()
		}
	}()

	go func() {
		<-sigs
		cancel()
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	// Closing the hub ends open SSE streams so Shutdown does not wait on them.
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}

	wg.Wait()

	if relay != nil {
		relay.Close(shutdownCtx)
	}
	if client != nil {
		client.Disconnect()
	}
	if wJournal != nil {
		wJournal.Close(shutdownCtx)
	}
	if wMirror != nil {
		wMirror.Close(shutdownCtx)
	}
	slog.Info("Shutdown complete", "retry_pending", retryQueue.Depth())
}
