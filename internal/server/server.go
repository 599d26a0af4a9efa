package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FissureBot_Go/internal/fissure"
	"github.com/osse101/FissureBot_Go/internal/handler"
	"github.com/osse101/FissureBot_Go/internal/logger"
	"github.com/osse101/FissureBot_Go/internal/metrics"
	"github.com/osse101/FissureBot_Go/internal/simulation"
	"github.com/osse101/FissureBot_Go/internal/sse"
)

// Deps are the services the HTTP API exposes.
type Deps struct {
	APIKey         string
	TrustedProxies []string
	Version        string
	Detector       DetectorConfig
	Simulation     simulation.Service
	Fissures       fissure.Service
	Readiness      []handler.ReadinessCheck
	// Stream is optional; without it the live fissure feed is not mounted.
	Stream *sse.Hub
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
			WriteTimeout:      WriteTimeout,
		},
	}
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(deps.Detector)

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(RateLimitMiddleware(deps.TrustedProxies, detector))
	r.Use(AuthMiddleware(deps.APIKey, deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz(deps.Version))
	r.Get("/readyz", handler.HandleReadyz(deps.Readiness...))
	r.Get("/version", handler.HandleVersion(deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	relics := handler.NewRelicHandler(deps.Simulation)
	fissures := handler.NewFissureHandler(deps.Fissures)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/relics", func(r chi.Router) {
			r.Post("/simulate", relics.HandleSimulate)
			r.Post("/priority", relics.HandleResolvePriority)
			r.Put("/priority/override", relics.HandleSaveOverride)
			r.Delete("/priority/override", relics.HandleDeleteOverride)
			r.Get("/config", relics.HandleGetSimConfig)
			r.Put("/config", relics.HandleSaveSimConfig)
		})

		r.Route("/fissures", func(r chi.Router) {
			r.Get("/", fissures.HandleListFissures)
			if deps.Stream != nil {
				r.Get("/stream", sse.Handler(deps.Stream))
			}
			r.Route("/subscriptions", func(r chi.Router) {
				r.Post("/", fissures.HandleCreateSubscription)
				r.Get("/", fissures.HandleListSubscriptions)
				r.Delete("/", fissures.HandleDeleteSubscriptions)
				r.Delete("/{id}", fissures.HandleDeleteSubscription)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") ||
			strings.HasPrefix(r.URL.Path, "/version") {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldRemoteAddr, r.RemoteAddr,
			LogFieldUserAgent, r.UserAgent())
		log.Debug(LogMsgRequestHeaders, LogFieldHeaders, redactHeaders(r.Header))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		log.Info(LogMsgRequestCompleted,
			LogFieldMethod, r.Method,
			LogFieldPath, r.URL.Path,
			LogFieldStatus, rw.statusCode,
			LogFieldDurationMS, time.Since(start).Milliseconds())
	})
}

func redactHeaders(h http.Header) http.Header {
	out := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			out[k] = []string{RedactedValue}
		} else {
			out[k] = v
		}
	}
	return out
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, LogFieldAddr, s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping, LogFieldAddr, s.httpServer.Addr)
	return s.httpServer.Shutdown(ctx)
}
