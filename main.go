package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/availability"
	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/config"
	"github.com/SoMedNinja/padel-app-sub001/internal/database"
	server "github.com/SoMedNinja/padel-app-sub001/internal/http"
	"github.com/SoMedNinja/padel-app-sub001/internal/metrics"
	"github.com/SoMedNinja/padel-app-sub001/internal/notifier/slack"
	"github.com/SoMedNinja/padel-app-sub001/internal/playtomic"
	"github.com/SoMedNinja/padel-app-sub001/internal/processor"
	"github.com/SoMedNinja/padel-app-sub001/internal/pubsub"
	"github.com/SoMedNinja/padel-app-sub001/internal/ranking"
	"github.com/SoMedNinja/padel-app-sub001/internal/scheduler"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/charmbracelet/log"
)

var topics = []pubsub.EventType{
	pubsub.EventMatchRecorded,
	pubsub.EventRecapRequested,
	pubsub.EventRoundProposed,
}

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	loc, err := timeutil.LoadLocation(cfg.ClubTimezone)
	if err != nil {
		log.Fatalf("Failed to load club time zone: %s", err)
	}

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	counters := metrics.New(db)
	rankings := ranking.New(clubStore, metricsSvc, loc)
	playtomicClient := playtomic.NewClient(cfg.PlaytomicRPS)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	var (
		ps    pubsub.PubSubClient
		local pubsub.LocalClient
	)
	if cfg.ProjectID != "" {
		ps, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to create pubsub client: %s", err)
		}
	} else {
		log.Info("No GCP project configured, delivering events in-process")
		local = pubsub.NewLocal()
		ps = local
	}
	defer ps.Close()

	proc := processor.New(processor.Deps{
		Store:     clubStore,
		Ranking:   rankings,
		Notifier:  notifier,
		Metrics:   metricsSvc,
		Counters:  counters,
		PubSub:    ps,
		Playtomic: playtomicClient,
		TenantID:  cfg.TenantID,
	})
	if local != nil {
		for _, topic := range topics {
			local.Subscribe(topic, func(topic pubsub.EventType, data []byte) error {
				return proc.HandleEvent(ctx, topic, data)
			})
		}
	}

	s := server.NewServer(server.Deps{
		Store:          clubStore,
		Polls:          availability.NewStore(db),
		Rankings:       rankings,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      proc,
		PubSub:         ps,
	})

	if cfg.SchedulerEnabled {
		sched, err := scheduler.New(proc, scheduler.Config{ImportCron: cfg.ImportCron, RecapCron: cfg.RecapCron}, loc)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %s", err)
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Error("Scheduler shutdown failed", "error", err)
			}
		}()
		log.Info("Scheduler started", "jobs", sched.JobNames())
	}

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port, "timezone", loc.String())
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
