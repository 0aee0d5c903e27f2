package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/auth"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/config"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/websocket"
)

type Handler struct {
	cfg        config.Config
	txRunner   db.TxRunner
	users      UserStore
	accounts   AccountStore
	orders     OrderStore
	stocks     StockStore
	securities SecurityStore
	settings   SettingStore
	audit      AuditStore
	operations OperationService
	credits    CreditService
	market     MarketService
	hub        *websocket.Hub
}

func New(cfg config.Config, txRunner db.TxRunner, users UserStore, accounts AccountStore, orders OrderStore, stocks StockStore, securities SecurityStore, settings SettingStore, audit AuditStore, operations OperationService, credits CreditService, market MarketService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:        cfg,
		txRunner:   txRunner,
		users:      users,
		accounts:   accounts,
		orders:     orders,
		stocks:     stocks,
		securities: securities,
		settings:   settings,
		audit:      audit,
		operations: operations,
		credits:    credits,
		market:     market,
		hub:        hub,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// WSBalances upgrades to a websocket pushing derived-balance updates. The
// token rides in the query string because browsers cannot set headers on
// websocket dials.
func (h *Handler) WSBalances(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	claims, err := auth.ParseToken(h.cfg.JWTSecret, token)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub, claims.UserID)
}
