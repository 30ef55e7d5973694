// Package server exposes the transfer registry over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
)

// Service is what the HTTP layer needs from the transfer registry.
type Service interface {
	Create(ctx context.Context, req models.CreateTransferRequest) (models.TransferDetails, error)
	Get(ctx context.Context, id string) (models.TransferDetails, error)
	List(ctx context.Context) ([]models.TransferDetails, error)
	ListAccounts(ctx context.Context) ([]models.LedgerAccount, error)
}

// Handler serves the transfer API.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a Handler backed by service.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Router mounts all routes on a chi router.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Post("/create_transfer", h.CreateTransfer)
	r.Get("/transfers", h.ListTransfers)
	r.Get("/transfer/{transferID}", h.GetTransfer)
	r.Get("/bank_accounts", h.ListBankAccounts)
	r.Get("/api/health", h.Health)
	return r
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}
