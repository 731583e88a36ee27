// main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/inngest/inngestgo"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/ido-cryptoson/geo-platform/internal/config"
	"github.com/ido-cryptoson/geo-platform/internal/models"
	"github.com/ido-cryptoson/geo-platform/internal/scheduler"
	"github.com/ido-cryptoson/geo-platform/internal/storage"
	"github.com/ido-cryptoson/geo-platform/workflows"
)

func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sqlx.ConnectContext(ctx, "postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	return db, nil
}

// trackedBusiness builds the configured business with a stable ID so repeated
// runs land in the same metrics series
func trackedBusiness(cfg *config.Config) models.Business {
	name := cfg.Business.Name
	if name == "" {
		name = "Mario's Italian Kitchen"
	}
	return models.Business{
		ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("geo-platform/business/"+name)),
		Name:         name,
		Aliases:      cfg.Business.Aliases,
		CuisineType:  cfg.Business.CuisineType,
		City:         cfg.Business.City,
		Neighborhood: cfg.Business.Neighborhood,
		WebsiteURL:   cfg.Business.WebsiteURL,
	}
}

func trackedCompetitors(cfg *config.Config) []models.Competitor {
	competitors := make([]models.Competitor, len(cfg.Business.Competitors))
	for i, name := range cfg.Business.Competitors {
		competitors[i] = models.Competitor{
			ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("geo-platform/competitor/"+name)),
			Name: name,
		}
	}
	return competitors
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("dev.env"); err == nil {
			logrus.Info("Loaded dev.env file for local development")
		}
	} else {
		logrus.Info("Loaded .env file")
	}

	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Environment == "development" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	logrus.Infof("Environment: %s", cfg.Environment)
	logrus.Infof("Port: %s", cfg.Port)
	logrus.Infof("Mock responses: %v", cfg.UseMockResponses)
	logrus.Infof("Tracking platforms: %v", cfg.Tracking.Platforms)

	if !cfg.UseMockResponses {
		if cfg.OpenAIAPIKey == "" {
			logrus.Warn("OpenAI API key not loaded")
		}
		if cfg.AnthropicAPIKey == "" {
			logrus.Warn("Anthropic API key not loaded")
		}
		if cfg.PerplexityAPIKey == "" {
			logrus.Warn("Perplexity API key not loaded")
		}
	}

	ctx := context.Background()

	// Persistence is optional: the pipeline still runs (and returns results to
	// workflow callers) when no database is reachable.
	var store storage.Store
	db, err := connectDatabase(ctx, cfg.Database)
	if err != nil {
		logrus.Warnf("Running without persistence: %v", err)
	} else {
		defer db.Close()
		pgStore := storage.NewPostgresStore(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			logrus.Fatalf("Failed to ensure database schema: %v", err)
		}
		store = pgStore
		logrus.Info("Connected to database")
	}

	client, err := inngestgo.NewClient(inngestgo.ClientOpts{
		AppID:    "geo-platform",
		EventKey: inngestgo.StrPtr(cfg.InngestEventKey),
		Env:      inngestgo.StrPtr(cfg.Environment),
	})
	if err != nil {
		logrus.Fatalf("Failed to create Inngest client: %v", err)
	}

	trackingProcessor := workflows.NewTrackingProcessor(cfg, store)
	trackingProcessor.SetClient(client)
	trackingProcessor.TrackBusiness()
	logrus.Info("Tracking workflow registered")

	business := trackedBusiness(cfg)
	competitors := trackedCompetitors(cfg)

	sendTrackEvent := func(triggeredBy string) error {
		_, err := client.Send(ctx, inngestgo.Event{
			Name: "business.track",
			Data: map[string]interface{}{
				"business":     business,
				"competitors":  competitors,
				"triggered_by": triggeredBy,
			},
		})
		return err
	}

	schedulerService := scheduler.NewService(cfg.ReportSchedule, func() error {
		return sendTrackEvent("scheduler")
	})
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	}).Methods("GET")

	router.HandleFunc("/api/track", func(w http.ResponseWriter, r *http.Request) {
		if err := sendTrackEvent("manual"); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status":        "queued",
			"business_name": business.Name,
		})
	}).Methods("POST")

	router.HandleFunc("/api/metrics/latest", func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
			return
		}
		m, err := store.LatestMetrics(r.Context(), business.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if m == nil {
			http.Error(w, "no metrics yet", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(m)
	}).Methods("GET")

	router.HandleFunc("/api/metrics/trend", func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "persistence not configured", http.StatusServiceUnavailable)
			return
		}
		trend, err := store.Trend(r.Context(), business.ID, 30)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(trend)
	}).Methods("GET")

	router.Handle("/api/inngest", client.Serve())

	logrus.Infof("geo-platform listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.Fatalf("Server failed: %v", err)
	}
}
