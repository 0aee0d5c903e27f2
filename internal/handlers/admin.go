package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.All(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

type updateSettingRequest struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

var knownSettings = map[string]bool{
	store.SettingSavingPercent: true,
	store.SettingPurchaseFee:   true,
	store.SettingSaleFee:       true,
}

// UpdateSetting is director-only. Values are validated up front so a broken
// rate can never reach the batch engines.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if !knownSettings[req.Code] {
		respondError(w, http.StatusBadRequest, "unknown setting")
		return
	}
	value, err := decimal.NewFromString(strings.TrimSpace(req.Value))
	if err != nil || value.IsNegative() {
		respondError(w, http.StatusBadRequest, "value must be a non-negative number")
		return
	}
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.settings.Set(r.Context(), tx, req.Code, value.String()); err != nil {
			return err
		}
		return h.audit.Log(r.Context(), tx, actorID, "update_setting", "setting", req.Code, `{"value":"`+value.String()+`"}`)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update setting")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{req.Code: value.String()})
}

func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	logs, err := h.audit.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load audit logs")
		return
	}
	respondJSON(w, http.StatusOK, logs)
}
