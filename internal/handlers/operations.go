package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/money"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
)

type moveMoneyRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveMoney(w, r, h.operations.Deposit)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveMoney(w, r, h.operations.Withdraw)
}

type moveFunc func(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error)

func (h *Handler) moveMoney(w http.ResponseWriter, r *http.Request, move moveFunc) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req moveMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	op, err := move(r.Context(), userID, req.AccountID, amount)
	if err != nil {
		respondOperationError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, operationPayload(op))
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !amount.IsPositive() {
		respondError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	op, err := h.operations.Transfer(r.Context(), userID, req.FromAccountID, req.ToAccountID, amount)
	if err != nil {
		respondOperationError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, operationPayload(op))
}

func respondOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, ledger.ErrInvalidAccount), errors.Is(err, ledger.ErrInvalidOperationType):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "operation failed")
	}
}

func operationPayload(op ledger.Operation) map[string]any {
	return map[string]any{
		"id":          op.ID,
		"amount":      money.Format(op.Amount),
		"type":        op.Type,
		"source":      op.SourceID,
		"destination": op.DestinationID,
		"created_at":  op.CreatedAt,
	}
}
