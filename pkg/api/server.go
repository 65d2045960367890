// Package api PolyParser REST API
//
// @title           PolyParser REST API
// @version         1.0.0
// @description     Converts PolyBridge layout and save-slot files and keeps an archive of uploaded layouts.
// @host            localhost:9300
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in              header
// @name            X-API-Key
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

// DefaultMaxBodyBytes bounds uploads when the config sets no limit.
const DefaultMaxBodyBytes = 64 << 20

const archiveStatsInterval = 30 * time.Second

// Server holds the API server state
type Server struct {
	archive Archiver
	config  ServerConfig
	metrics *Metrics
	log     *slog.Logger
}

// NewServer creates a new API server. archive may be nil.
func NewServer(archive Archiver, config ServerConfig, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		archive: archive,
		config:  config,
		metrics: metrics,
		log:     logger.With("component", "api"),
	}
}

// Routes builds the router. gatherer backs the /metrics endpoint.
func (s *Server) Routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	m := s.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		// Conversions
		r.Post("/layouts/decode", m.InstrumentHandler("POST", "/api/v1/layouts/decode", s.handleDecodeLayout))
		r.Post("/layouts/encode", m.InstrumentHandler("POST", "/api/v1/layouts/encode", s.handleEncodeLayout))
		r.Post("/slots/decode", m.InstrumentHandler("POST", "/api/v1/slots/decode", s.handleDecodeSlot))

		// Archive
		r.Post("/archive", m.InstrumentHandler("POST", "/api/v1/archive", s.handleArchivePut))
		r.Get("/archive", m.InstrumentHandler("GET", "/api/v1/archive", s.handleArchiveList))
		r.Get("/archive/{id}", m.InstrumentHandler("GET", "/api/v1/archive/{id}", s.handleArchiveGet))
		r.Get("/archive/{id}/raw", m.InstrumentHandler("GET", "/api/v1/archive/{id}/raw", s.handleArchiveRaw))
		r.Delete("/archive/{id}", m.InstrumentHandler("DELETE", "/api/v1/archive/{id}", s.handleArchiveDelete))
	})

	// Swagger documentation (unprotected)
	r.Get("/swagger/*", s.handleSwagger)

	return r
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/swagger/", "/swagger/index.html":
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerUI))
	case "/swagger/swagger.json", "/swagger/doc.json":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			s.log.Error("generating swagger doc", "error", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	case "/swagger/swagger.yaml":
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		var tree any
		if err == nil {
			err = json.Unmarshal([]byte(doc), &tree)
		}
		var out []byte
		if err == nil {
			out, err = yaml.Marshal(tree)
		}
		if err != nil {
			s.log.Error("generating swagger doc", "error", err)
			http.Error(w, "Failed to generate Swagger documentation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(out)
	default:
		http.NotFound(w, r)
	}
}

const swaggerUI = `<!DOCTYPE html>
<html>
<head>
	 <title>PolyParser API Documentation</title>
	 <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui.css" />
</head>
<body>
	 <div id="swagger-ui"></div>
	 <script src="https://unpkg.com/swagger-ui-dist@3.25.0/swagger-ui-bundle.js"></script>
	 <script>
	   window.onload = function() {
	     SwaggerUIBundle({
	       url: '/swagger/swagger.json',
	       dom_id: '#swagger-ui',
	       presets: [
	         SwaggerUIBundle.presets.apis,
	         SwaggerUIBundle.presets.standalone
	       ]
	     });
	   };
	 </script>
</body>
</html>`

// startMetricsUpdater refreshes the archive size gauge until ctx ends.
func (s *Server) startMetricsUpdater(ctx context.Context) {
	if s.archive == nil {
		return
	}
	ticker := time.NewTicker(archiveStatsInterval)
	defer ticker.Stop()

	for {
		if list, err := s.archive.List(); err == nil {
			s.metrics.SetArchiveEntries(len(list))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully.
func StartServer(ctx context.Context, archive Archiver, config ServerConfig, reg *prometheus.Registry, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if SwaggerInfo != nil {
		SwaggerInfo.Host = fmt.Sprintf("localhost:%d", config.Port)
	}

	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	server := NewServer(archive, config, NewMetrics(reg), logger)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go server.startMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting PolyParser REST API server", "addr", addr, "metrics", "/metrics")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	logger.Info("shutting down REST API server")
	return httpServer.Shutdown(shutdownCtx)
}
