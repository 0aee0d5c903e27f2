package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/money"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
)

type createCreditRequest struct {
	Amount           string `json:"amount"`
	InterestPercent  string `json:"interest_percent"`
	InsurancePercent string `json:"insurance_percent"`
	DurationMonths   int64  `json:"duration_months"`
	AccountID        string `json:"account_id"`
	OwnerID          string `json:"owner_id"`
}

// CreateCredit is advisor-only: the advisor grants a credit on behalf of a
// client and becomes its recorded grantor.
func (h *Handler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	advisorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	interest, err := money.Parse(req.InterestPercent)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	insurance, err := money.Parse(req.InsurancePercent)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	granted, err := h.credits.Create(r.Context(), services.CreateCreditRequest{
		Amount:           amount,
		InterestPercent:  interest,
		InsurancePercent: insurance,
		DurationMonths:   req.DurationMonths,
		AccountID:        req.AccountID,
		AdvisorID:        advisorID,
		OwnerID:          req.OwnerID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredit) {
			respondError(w, http.StatusBadRequest, "invalid credit terms")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to grant credit")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"id":                granted.ID,
		"amount":            money.Format(granted.Amount),
		"interest_percent":  granted.InterestPercent.String(),
		"insurance_percent": granted.InsurancePercent.String(),
		"duration_months":   granted.DurationMonths,
		"status":            granted.Status,
		"account_id":        granted.AccountID,
		"owner_id":          granted.OwnerID,
	})
}

func (h *Handler) ListCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	summaries, err := h.credits.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load credits")
		return
	}
	normalized := make([]map[string]any, 0, len(summaries))
	for _, s := range summaries {
		normalized = append(normalized, map[string]any{
			"id":                s.Credit.ID,
			"amount":            money.Format(s.Credit.Amount),
			"interest_percent":  s.Credit.InterestPercent.String(),
			"insurance_percent": s.Credit.InsurancePercent.String(),
			"duration_months":   s.Credit.DurationMonths,
			"status":            s.Credit.Status,
			"remaining":         money.Format(s.Remaining),
			"installment":       money.Format(s.Installment),
			"created_at":        s.Credit.CreatedAt,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

// RunClaims triggers an out-of-schedule installment collection run.
func (h *Handler) RunClaims(w http.ResponseWriter, r *http.Request) {
	if err := h.credits.RunClaims(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "claim run failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "done"})
}
