package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/cors"

	handler "github.com/mrinalgaur2005/hintr-active-jobs/api/handlers"
	"github.com/mrinalgaur2005/hintr-active-jobs/model"
	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

const invocationHeader = "X-Invocation-Id"

// Store is what the routes need from the backing queue store.
type Store interface {
	handler.Counter
	handler.Pinger
}

type Options struct {
	Store          Store
	Strategy       queue.Strategy
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(invocationID)
	r.Use(recoverJSON(logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		}).Handler)
	}

	jobs := handler.NewActiveJobsHandler(opts.Store, opts.Strategy, logger)
	r.Method(http.MethodGet, "/api/getActiveJobs", jobs)
	r.Method(http.MethodPost, "/api/getActiveJobs", jobs)

	r.Get("/monitor/health", handler.HealthCheck(opts.Store, logger))

	return r
}

// invocationID reuses the caller's X-Invocation-Id or mints one.
func invocationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(invocationHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(invocationHeader, id)
		next.ServeHTTP(w, r.WithContext(handler.WithInvocationID(r.Context(), id)))
	})
}

func recoverJSON(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Error processing request",
					"invocation_id", handler.InvocationID(r.Context()),
					"panic", rec,
				)
				msg := fmt.Sprint(rec)
				if msg == "" {
					msg = "Unknown error"
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: "Internal server error", Message: msg})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
