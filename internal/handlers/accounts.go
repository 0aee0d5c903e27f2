package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/money"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

type openAccountRequest struct {
	Name      string `json:"name"`
	IsSavings bool   `json:"is_savings"`
}

func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req openAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	account := store.Account{
		ID:        uuid.NewString(),
		IBAN:      generateIBAN(),
		Name:      req.Name,
		OwnerID:   userID,
		IsSavings: req.IsSavings,
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.accounts.Create(r.Context(), tx, account); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, userID, "open_account", "account", account.ID, "{}")
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to open account")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":         account.ID,
		"iban":       account.IBAN,
		"name":       account.Name,
		"is_savings": account.IsSavings,
	})
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, err := h.accounts.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	normalized := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		balance, err := h.operations.Balance(r.Context(), account.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to derive balance")
			return
		}
		normalized = append(normalized, map[string]any{
			"id":         account.ID,
			"iban":       account.IBAN,
			"name":       account.Name,
			"is_savings": account.IsSavings,
			"balance":    money.Format(balance),
			"created_at": account.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID := chi.URLParam(r, "id")
	account, err := h.accounts.GetByID(r.Context(), accountID)
	if err != nil || account.OwnerID != userID {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	balance, err := h.operations.Balance(r.Context(), account.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to derive balance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"account_id": account.ID,
		"balance":    money.Format(balance),
	})
}

func (h *Handler) AccountHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID := chi.URLParam(r, "id")
	operations, err := h.operations.History(r.Context(), userID, accountID)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			respondError(w, http.StatusNotFound, "account not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to load history")
		return
	}
	normalized := make([]map[string]any, 0, len(operations))
	for _, op := range operations {
		normalized = append(normalized, map[string]any{
			"id":          op.ID,
			"amount":      money.Format(op.Amount),
			"type":        op.Type,
			"source":      op.SourceID,
			"destination": op.DestinationID,
			"created_at":  op.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accountID := chi.URLParam(r, "id")
	if err := h.operations.CloseAccount(r.Context(), userID, accountID); err != nil {
		switch {
		case errors.Is(err, services.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "account not found")
		case errors.Is(err, services.ErrAccountNotEmpty):
			respondError(w, http.StatusBadRequest, "account_not_empty")
		default:
			respondError(w, http.StatusInternalServerError, "unable to close account")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func generateIBAN() string {
	digits := make([]byte, 23)
	for i := range digits {
		digits[i] = '0' + byte(rand.Intn(10))
	}
	return "FR76" + string(digits)
}
