//	@title			Cutout API
//	@version		1.0
//	@description	Background-removal service: upload an image, the remove.bg
//	@description	API strips its background, the result is mirror-flipped and
//	@description	persisted to object storage for viewing, download, and deletion.
//
//	@host		localhost:8080
//	@BasePath	/api

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/cutout/service/internal/config"
	"github.com/cutout/service/internal/history"
	"github.com/cutout/service/internal/images"
	appMiddleware "github.com/cutout/service/internal/middleware"
	"github.com/cutout/service/internal/removebg"
	"github.com/cutout/service/internal/storage"

	_ "github.com/cutout/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	// Object storage is optional at boot: absent credentials are reported
	// per request by the pipelines, not here.
	var store storage.Storage
	if cfg.StorageConfigured() {
		s, err := storage.NewMinioStorage(
			cfg.StorageEndpoint,
			cfg.StorageAccessKey,
			cfg.StorageSecretKey,
			cfg.StorageBucket,
			cfg.StoragePublicBase,
			cfg.StorageUseSSL,
		)
		if err != nil {
			log.Fatalf("object storage init failed: %v", err)
		}
		store = s
	} else {
		log.Println("object storage credentials absent; persistence disabled")
	}

	// Processed-image history is optional; without a database the service
	// stays fully stateless.
	var recorder images.Recorder
	var historyHandler *history.Handler
	if cfg.HistoryEnabled() {
		pool, err := history.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("history database connection failed: %v", err)
		}
		defer pool.Close()

		if err := history.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatalf("history migration failed: %v", err)
		}

		repo := history.NewRepository(pool)
		recorder = repo
		historyHandler = history.NewHandler(repo)
	}

	remover := removebg.NewClient(cfg.RemoveBGKey, cfg.RemoveBGURL)

	// Wire dependencies: adapters → service → handler
	imagesSvc := images.NewService(remover, store, recorder)
	imagesHandler := images.NewHandler(imagesSvc, cfg)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Static web client
	r.Handle("/*", http.FileServer(http.Dir(cfg.WebDir)))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Get("/remove-bg", imagesHandler.Health)
		r.Post("/remove-bg", imagesHandler.RemoveBackground)
		r.Post("/upload", imagesHandler.Upload)
		r.Delete("/delete", imagesHandler.Delete)
		if historyHandler != nil {
			r.Get("/images", historyHandler.List)
		}
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
