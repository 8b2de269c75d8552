package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/synaptica-ai/diagnostics/pkg/common/config"
	"github.com/synaptica-ai/diagnostics/pkg/common/database"
	"github.com/synaptica-ai/diagnostics/pkg/common/kafka"
	"github.com/synaptica-ai/diagnostics/pkg/common/logger"
	"github.com/synaptica-ai/diagnostics/pkg/common/middleware"
	"github.com/synaptica-ai/diagnostics/pkg/common/models"
	"github.com/synaptica-ai/diagnostics/pkg/diagnosis"
	"github.com/synaptica-ai/diagnostics/pkg/observability/metrics"
	"gorm.io/gorm"
)

const serviceName = "diagnosis-service"

func main() {
	logger.Init()
	cfg := config.Load()

	eng := diagnosis.NewEngineFromConfig(cfg)
	opts := diagnosis.Options{Redactor: diagnosis.NewRedactorFromConfig(cfg)}

	var (
		db   *gorm.DB
		repo *diagnosis.Repository
	)
	if cfg.AuditLogEnabled {
		var err error
		db, err = database.OpenPostgres(cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("Audit log disabled")
		} else {
			repo = diagnosis.NewRepository(db)
			if err := repo.AutoMigrate(); err != nil {
				logger.Log.WithError(err).Fatal("failed to migrate diagnosis tables")
			}
			opts.Audit = repo
			defer database.ClosePostgres(db)
		}
	}

	var rdb *redis.Client
	if cfg.ReportCacheTTL > 0 {
		client, err := database.OpenRedis(context.Background(), cfg)
		if err != nil {
			logger.Log.WithError(err).Warn("Report cache unavailable at startup")
		}
		rdb = client
		opts.Cache = diagnosis.NewRedisCache(client, cfg.ReportCacheTTL)
		defer database.CloseRedis(client)
	}

	var consumer *kafka.Consumer
	if cfg.KafkaEnabled {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.DiagnosisEventTopic)
		defer producer.Close()
		opts.Publisher = producer

		consumer = kafka.NewConsumer(cfg.KafkaBrokers, cfg.FeatureEventsTopic, cfg.KafkaGroupID)
		defer consumer.Close()
	}

	svc := diagnosis.NewService(eng, opts)
	handler := diagnosis.NewHTTPHandler(svc, cfg.MaxRequestBody)

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	router.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		status := models.HealthStatus{
			Status:    "ready",
			Service:   serviceName,
			Checks:    map[string]string{},
			Timestamp: time.Now().UTC(),
		}
		code := http.StatusOK
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
				status.Checks["postgres"] = "unavailable"
				status.Status = "degraded"
				code = http.StatusServiceUnavailable
			} else {
				status.Checks["postgres"] = "ok"
			}
		}
		if rdb != nil {
			if err := rdb.Ping(r.Context()).Err(); err != nil {
				// reports are recomputed on a cache miss
				status.Checks["redis"] = "unavailable"
			} else {
				status.Checks["redis"] = "ok"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(status)
	}).Methods(http.MethodGet)

	router.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w)
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	handler.Register(api)

	var root http.Handler = router
	root = middleware.BodyLimit(cfg.MaxRequestBody)(root)
	root = middleware.RateLimit(100, 200)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(root)
	root = middleware.Recovery(root)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      root,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Diagnosis Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("failed to start server")
		}
	}()

	if consumer != nil {
		go func() {
			logger.Log.WithField("topic", cfg.FeatureEventsTopic).Info("Consuming feature events")
			if err := consumer.Consume(ctx, svc.HandleEvent); err != nil && ctx.Err() == nil {
				logger.Log.WithError(err).Error("feature consumer stopped")
			}
		}()
	}

	if repo != nil && cfg.AuditRetention > 0 {
		go func() {
			ticker := time.NewTicker(12 * time.Hour)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := repo.CleanupExpired(ctx, cfg.AuditRetention); err != nil {
						logger.Log.WithError(err).Warn("audit cleanup failed")
					}
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Diagnosis Service...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("server forced to shutdown")
	}

	logger.Log.Info("Diagnosis Service stopped")
}
