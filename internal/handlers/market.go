package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/middleware"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/money"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.stocks.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load stocks")
		return
	}
	normalized := make([]map[string]any, 0, len(stocks))
	for _, stock := range stocks {
		normalized = append(normalized, map[string]any{
			"id":            stock.ID,
			"name":          stock.Name,
			"base_price":    money.Format(stock.BasePrice),
			"base_quantity": stock.BaseQuantity,
			"enabled":       stock.Enabled,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

type placeOrderRequest struct {
	StockID string `json:"stock_id"`
	Type    string `json:"type"`
	Amount  string `json:"amount"`
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req placeOrderRequest
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
	order, err := h.market.PlaceOrder(r.Context(), userID, req.StockID, req.Type, amount)
	if err != nil {
		respondMarketError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, orderPayload(order))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	orders, err := h.orders.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load orders")
		return
	}
	normalized := make([]map[string]any, 0, len(orders))
	for _, order := range orders {
		normalized = append(normalized, orderPayload(order))
	}
	respondJSON(w, http.StatusOK, normalized)
}

type settleRequest struct {
	FromOrderID string `json:"from_order_id"`
	ToOrderID   string `json:"to_order_id"`
}

func (h *Handler) SettleOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	security, err := h.market.Settle(r.Context(), userID, req.FromOrderID, req.ToOrderID)
	if err != nil {
		respondMarketError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, securityPayload(security))
}

type purchaseBaseRequest struct {
	AccountID string `json:"account_id"`
	StockID   string `json:"stock_id"`
}

func (h *Handler) PurchaseBase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req purchaseBaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	security, err := h.market.PurchaseBase(r.Context(), userID, req.AccountID, req.StockID)
	if err != nil {
		respondMarketError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, securityPayload(security))
}

func (h *Handler) ListSecurities(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	securities, err := h.securities.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load securities")
		return
	}
	normalized := make([]map[string]any, 0, len(securities))
	for _, security := range securities {
		normalized = append(normalized, securityPayload(security))
	}
	respondJSON(w, http.StatusOK, normalized)
}

func respondMarketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrStockOrderNotFound):
		respondError(w, http.StatusNotFound, "stock order not found")
	case errors.Is(err, services.ErrAccountNotFound):
		respondError(w, http.StatusNotFound, "account not found")
	case errors.Is(err, services.ErrFinancialSecurityNotFound):
		respondError(w, http.StatusNotFound, "financial security not found")
	case errors.Is(err, services.ErrInvalidStock):
		respondError(w, http.StatusBadRequest, "invalid_stock")
	case errors.Is(err, services.ErrInvalidStatus):
		respondError(w, http.StatusConflict, "order_not_pending")
	case errors.Is(err, services.ErrInvalidType):
		respondError(w, http.StatusBadRequest, "invalid_order_type")
	case errors.Is(err, services.ErrDisabledStock):
		respondError(w, http.StatusBadRequest, "stock_disabled")
	case errors.Is(err, services.ErrInsufficientBaseQuantity):
		respondError(w, http.StatusConflict, "no_base_supply")
	case errors.Is(err, services.ErrInsufficientFunds):
		respondError(w, http.StatusBadRequest, "insufficient_funds")
	case errors.Is(err, services.ErrInvalidSettingValue):
		respondError(w, http.StatusInternalServerError, "fee settings misconfigured")
	default:
		respondError(w, http.StatusInternalServerError, "market operation failed")
	}
}

func orderPayload(order store.StockOrder) map[string]any {
	return map[string]any{
		"id":         order.ID,
		"amount":     money.Format(order.Amount),
		"type":       order.Type,
		"status":     order.Status,
		"stock_id":   order.StockID,
		"created_at": order.CreatedAt,
	}
}

func securityPayload(security store.FinancialSecurity) map[string]any {
	return map[string]any{
		"id":         security.ID,
		"price":      money.Format(security.Price),
		"owner_id":   security.OwnerID,
		"stock_id":   security.StockID,
		"created_at": security.CreatedAt,
	}
}
