package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mrinalgaur2005/hintr-active-jobs/model"
	"github.com/mrinalgaur2005/hintr-active-jobs/queue"
)

const (
	msgQueueRequired = "Queue name is required. Please provide 'queue' query parameter."
	msgInternal      = "Internal server error"
	msgUnknown       = "Unknown error"
)

// Counter counts active jobs for a queue. *queue.RedisQueue satisfies it.
type Counter interface {
	ActiveJobs(ctx context.Context, name string, strategy queue.Strategy) (int64, error)
}

type ActiveJobsHandler struct {
	Counter  Counter
	Strategy queue.Strategy
	Logger   *slog.Logger
}

func NewActiveJobsHandler(counter Counter, strategy queue.Strategy, logger *slog.Logger) *ActiveJobsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActiveJobsHandler{Counter: counter, Strategy: strategy, Logger: logger}
}

// ServeHTTP answers GET and POST alike; the queue name always comes from
// the query string.
func (h *ActiveJobsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("queue")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: msgQueueRequired})
		return
	}

	count, err := h.Counter.ActiveJobs(r.Context(), name, h.Strategy)
	if err != nil {
		h.Logger.Error("Error processing request",
			"invocation_id", InvocationID(r.Context()),
			"queue", name,
			"strategy", h.Strategy.String(),
			"error", err,
		)
		msg := err.Error()
		if msg == "" {
			msg = msgUnknown
		}
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: msgInternal, Message: msg})
		return
	}

	if h.Strategy == queue.StrategySimple {
		writeJSON(w, http.StatusOK, count)
		return
	}
	writeJSON(w, http.StatusOK, model.ActiveJobs{ActiveJobs: count})
}
