package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	adminpkg "github.com/lucky-arya/CSIxMKITOS/internal/admin"
	"github.com/lucky-arya/CSIxMKITOS/internal/audit"
	authhandler "github.com/lucky-arya/CSIxMKITOS/internal/auth/handler"
	authservice "github.com/lucky-arya/CSIxMKITOS/internal/auth/service"
	sessionstore "github.com/lucky-arya/CSIxMKITOS/internal/auth/store/session"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/token"
	"github.com/lucky-arya/CSIxMKITOS/internal/auth/workers/cleanup"
	certhandler "github.com/lucky-arya/CSIxMKITOS/internal/certificate/handler"
	certservice "github.com/lucky-arya/CSIxMKITOS/internal/certificate/service"
	certstore "github.com/lucky-arya/CSIxMKITOS/internal/certificate/store"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/config"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/health"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/httpserver"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/logger"
	"github.com/lucky-arya/CSIxMKITOS/internal/platform/metrics"
	redisplatform "github.com/lucky-arya/CSIxMKITOS/internal/platform/redis"
	rosterhandler "github.com/lucky-arya/CSIxMKITOS/internal/roster/handler"
	rosterservice "github.com/lucky-arya/CSIxMKITOS/internal/roster/service"
	rosterstore "github.com/lucky-arya/CSIxMKITOS/internal/roster/store"
	"github.com/lucky-arya/CSIxMKITOS/internal/seeder"
	"github.com/lucky-arya/CSIxMKITOS/internal/store/tracer"
	httptransport "github.com/lucky-arya/CSIxMKITOS/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing certificate portal",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"students_file", cfg.StudentsFile,
		"references_file", cfg.ReferencesFile,
	)

	for _, dir := range []string{filepath.Dir(cfg.StudentsFile), filepath.Dir(cfg.ReferencesFile)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("data directory setup failed", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	m := metrics.New()

	var storeTracer tracer.Tracer = tracer.NewNoop()
	if cfg.TracingEnabled {
		storeTracer = tracer.NewOTel()
	}

	rosterStore := rosterstore.NewFile(cfg.StudentsFile, rosterstore.WithTracer(storeTracer))
	referenceStore := certstore.NewFile(cfg.ReferencesFile, certstore.WithTracer(storeTracer))

	auditPublisher := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer auditPublisher.Close()

	var sessions authservice.SessionStore = sessionstore.New()
	var redisClient *redisplatform.Client
	if cfg.SessionRedisAddr != "" {
		var err error
		redisClient, err = redisplatform.New(cfg.SessionRedisAddr)
		if err != nil {
			log.Error("redis connection failed", "addr", cfg.SessionRedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		sessions = sessionstore.NewRedis(redisClient.Client)
		log.Info("using redis session store", "addr", cfg.SessionRedisAddr)
	}

	authSvc := authservice.NewService(
		sessions,
		token.NewService(cfg.SessionSigningKey, cfg.SessionTTL),
		authservice.Credentials{
			Username:     cfg.AdminUsername,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		},
		authservice.WithLogger(log),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithMetrics(m),
		authservice.WithSessionTTL(cfg.SessionTTL),
	)

	rosterSvc := rosterservice.NewService(rosterStore,
		rosterservice.WithLogger(log),
		rosterservice.WithAuditPublisher(auditPublisher),
		rosterservice.WithMetrics(m),
	)

	certSvc := certservice.NewService(referenceStore, rosterStore,
		certservice.WithLogger(log),
		certservice.WithAuditPublisher(auditPublisher),
		certservice.WithMetrics(m),
	)

	adminSvc := adminpkg.NewService(rosterSvc, certSvc, auditPublisher,
		adminpkg.WithLogger(log),
		adminpkg.WithAuditPublisher(auditPublisher),
	)

	if cfg.SeedDemoData {
		if err := seeder.New(rosterStore, log).Seed(context.Background()); err != nil {
			log.Error("demo data seed failed", "error", err)
			os.Exit(1)
		}
	}

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("data_dir", func() error {
		probe, err := os.CreateTemp(filepath.Dir(cfg.StudentsFile), ".probe-*")
		if err != nil {
			return fmt.Errorf("data directory not writable: %w", err)
		}
		probe.Close()           //nolint:errcheck // empty probe file
		os.Remove(probe.Name()) //nolint:errcheck // best effort
		return nil
	})
	healthHandler.RegisterCheck("roster_store", func() error {
		_, err := rosterStore.List(context.Background())
		return err
	})
	healthHandler.RegisterCheck("reference_store", func() error {
		_, err := referenceStore.All(context.Background())
		return err
	})
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", func() error {
			return redisClient.Health(context.Background())
		})
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        m,
		Sessions:       authSvc,
		Auth:           authhandler.New(authSvc, log, cfg.SessionCookieSecure),
		Certificates:   certhandler.New(certSvc, log),
		Roster:         rosterhandler.New(rosterSvc, log),
		Admin:          adminpkg.NewHandler(adminSvc, log),
		Health:         healthHandler,
		RequestTimeout: cfg.RequestTimeout,
	})

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	sweeper, err := cleanup.New(sessions, cleanup.WithLogger(log))
	if err != nil {
		log.Error("session sweeper setup failed", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := sweeper.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("session sweeper stopped", "error", err)
		}
	}()

	if redisClient != nil {
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					redisClient.RecordPoolStats()
				case <-workerCtx.Done():
					return
				}
			}
		}()
	}

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
