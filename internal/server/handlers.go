package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/wire-transfer-simulator/internal/models"
	"github.com/sheikh-saqib/wire-transfer-simulator/internal/registry"
)

const healthMessage = "Wire Transfer Simulator API is running"

// CreateTransfer accepts a transfer request and starts its clearing run.
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, createResponse{
		Message:    "Transfer created successfully",
		TransferID: details.ID,
		Transfer:   newTransferView(details),
	})
}

// ListTransfers returns every transfer in creation order.
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	all, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	views := make([]transferView, 0, len(all))
	for _, d := range all {
		views = append(views, newTransferView(d))
	}
	sendJSON(w, http.StatusOK, transferListResponse{Transfers: views, Count: len(views)})
}

// GetTransfer returns one transfer by id.
func (h *Handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	details, err := h.service.Get(r.Context(), chi.URLParam(r, "transferID"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, newTransferView(details))
}

// ListBankAccounts returns every simulated account in creation order.
func (h *Handler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, accountListResponse{Accounts: accounts, Count: len(accounts)})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, healthResponse{Status: "healthy", Message: healthMessage})
}

// handleError maps domain errors to HTTP responses.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		sendError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, registry.ErrTransferNotFound):
		sendError(w, http.StatusNotFound, "Transfer not found")
	default:
		h.logger.Error("request failed", zap.Error(err))
		sendError(w, http.StatusInternalServerError, err.Error())
	}
}

func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, errorResponse{Error: message})
}
