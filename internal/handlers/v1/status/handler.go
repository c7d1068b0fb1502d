package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/claritybank/badge-server/internal/logging"
)

const pingTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB pinger
}

func NewHandler(db pinger) Handler {
	return Handler{DB: db}
}

// Handler answers 200 while the database responds and 503 otherwise.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(req.Context(), pingTimeout)
		defer cancel()

		endTimer := logData.AddTiming("pingMs")
		err := h.DB.Ping(ctx)
		endTimer()
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return err
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
