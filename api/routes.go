package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/claritybank/badge-server/internal/handlers/v1/account"
	"github.com/claritybank/badge-server/internal/handlers/v1/badge"
	"github.com/claritybank/badge-server/internal/handlers/v1/status"
	"github.com/claritybank/badge-server/internal/handlers/v1/transaction"
	"github.com/claritybank/badge-server/internal/handlers/v1/user"
	"github.com/claritybank/badge-server/internal/logging"
	"github.com/claritybank/badge-server/internal/service"
	"github.com/claritybank/badge-server/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type registerer interface {
	Register(api huma.API)
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
}

// Handler builds the full route table: /status on the plain mux and every
// /v1 operation through huma.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("ClarityBank Badge API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	handlers := []registerer{
		user.NewCreateUserHandler(svc.User),
		user.NewGetUserHandler(svc.User),
		user.NewListBadgesHandler(svc.Badge),
		account.NewCreateAccountHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewMoveFundsHandler(svc.Account),
		account.NewSummaryHandler(svc.Summary),
		transaction.NewListTransactionsHandler(svc.Transaction),
		badge.NewCatalogHandler(svc.Badge),
		badge.NewBadgeHandler(svc.Badge),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return mux
}

// Serve blocks until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
