package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})
	router.Route("/accounts", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Post("/", h.OpenAccount)
		r.Get("/", h.ListAccounts)
		r.Get("/{id}/balance", h.GetBalance)
		r.Get("/{id}/operations", h.AccountHistory)
		r.Delete("/{id}", h.CloseAccount)
	})
	router.Route("/operations", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Post("/deposit", h.Deposit)
		r.Post("/withdraw", h.Withdraw)
		r.Post("/transfer", h.Transfer)
	})
	router.Route("/credits", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/", h.ListCredits)
		r.With(middleware.RequireRole(h.users, store.RoleAdvisor, store.RoleDirector)).Post("/", h.CreateCredit)
		r.With(middleware.RequireRole(h.users, store.RoleAdvisor, store.RoleDirector)).Post("/claims/run", h.RunClaims)
	})
	router.Route("/market", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Get("/stocks", h.ListStocks)
		r.Get("/orders", h.ListOrders)
		r.Post("/orders", h.PlaceOrder)
		r.Post("/orders/settle", h.SettleOrders)
		r.Post("/purchase", h.PurchaseBase)
		r.Get("/securities", h.ListSecurities)
	})
	router.Get("/ws/balances", h.WSBalances)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireRole(h.users, store.RoleDirector))
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSetting)
		r.Get("/audit", h.ListAuditLogs)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
