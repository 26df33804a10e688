package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/core"
)

type contextKey string

const loggerContextKey = contextKey("logger")

const (
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_http_request_duration_seconds",
		Help:    "Duration of API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

type Server struct {
	server *http.Server

	// ids of requesters already stored as users
	known sync.Map

	Logger  *slog.Logger
	Config  *config.Config
	Backend *Backend
	Tokens  *auth.Tokens
	Users   core.UserRepository
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.Logger.Error("failed to shut down API server", "error", err)
		}
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	s.server = &http.Server{
		Handler:           s.routes(),
		Addr:              s.Config.ListenAddr,
		ReadHeaderTimeout: time.Second,
		WriteTimeout:      10 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       time.Minute,
	}
	return nil
}

// Handler returns the router. Available after Init.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewMux()

	r.Use(
		// json content type
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		},

		// Logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger := s.Logger.With("method", r.Method, "path", r.URL.Path)
				ctx := context.WithValue(r.Context(), loggerContextKey, logger)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},

		// Logging and metrics
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

				next.ServeHTTP(sw, r)

				duration := time.Since(start)
				logger(r.Context()).Info("request", "duration", duration, "status", sw.status)

				route := chi.RouteContext(r.Context()).RoutePattern()
				if route == "" {
					route = "unmatched"
				}
				requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Observe(duration.Seconds())
			})
		},

		// Recovering panics and logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if err := recover(); err != nil {
						logger(r.Context()).Error("panic recovered", "error", err)
						writeJSON(w, http.StatusInternalServerError, errorBody(kindStoreFailure, internalErrorMessage))
					}
				}()
				next.ServeHTTP(w, r)
			})
		},

		s.authenticate,

		// Request body limit, applied before the validator reads the body
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
				next.ServeHTTP(w, r)
			})
		},

		requestValidator(),
	)

	b := s.Backend

	r.Get("/api/openapi", b.GetOpenapi)

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", b.ListPosts)
		r.Post("/", b.CreatePost)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", b.GetPost)
			r.Put("/", b.UpdatePost)
			r.Delete("/", b.DeletePost)
			r.Put("/like", b.ToggleLike)
			r.Get("/comments", b.ListComments)
			r.Post("/comments", b.CreateComment)
		})
	})

	r.Put("/api/comments/{id}", b.UpdateComment)
	r.Delete("/api/comments/{id}", b.DeleteComment)

	r.Get("/api/dashboard", b.GetDashboard)
	r.Get("/api/activity", b.GetActivity)

	return r
}

// authenticate puts the requester of a request with a valid bearer token into the
// context. Requests without a token stay anonymous, the engine rejects them on
// protected operations.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorBody(kindUnauthenticated, "bearer token expected"))
			return
		}

		claims, err := s.Tokens.Verify(token)
		if err != nil {
			logger(r.Context()).Debug("rejected token", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorBody(kindUnauthenticated, "invalid token"))
			return
		}

		s.rememberRequester(r.Context(), claims)

		next.ServeHTTP(w, r.WithContext(auth.WithRequester(r.Context(), claims.Subject)))
	})
}

// bearerToken extracts the token of a "Bearer" authorization header. The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// rememberRequester stores the token's user so authors resolve on stores that did
// not issue the token. Failures are logged, the request proceeds.
func (s *Server) rememberRequester(ctx context.Context, claims *auth.Claims) {
	if claims.Name == "" {
		return
	}
	if _, ok := s.known.Load(claims.Subject); ok {
		return
	}

	if err := s.Users.Ensure(ctx, claims.Subject, claims.Name); err != nil {
		logger(ctx).Warn("failed to store requester", "user", claims.Subject, "error", err)
		return
	}
	s.known.Store(claims.Subject, struct{}{})
}

func logger(ctx context.Context) *slog.Logger {
	return ctx.Value(loggerContextKey).(*slog.Logger)
}
