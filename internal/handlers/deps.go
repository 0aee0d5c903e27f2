package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, user store.User) error
	GetByID(ctx context.Context, userID string) (store.User, error)
	GetByEmail(ctx context.Context, email string) (store.User, error)
	GetRole(ctx context.Context, userID string) (string, error)
}

type AccountStore interface {
	Create(ctx context.Context, tx store.Execer, account store.Account) error
	GetByID(ctx context.Context, accountID string) (store.Account, error)
	ListByOwner(ctx context.Context, ownerID string) ([]store.Account, error)
}

type OrderStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]store.StockOrder, error)
}

type StockStore interface {
	List(ctx context.Context) ([]store.Stock, error)
}

type SecurityStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]store.FinancialSecurity, error)
}

type SettingStore interface {
	All(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, tx store.Execer, code, value string) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

type OperationService interface {
	Deposit(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error)
	Withdraw(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error)
	Transfer(ctx context.Context, ownerID, fromAccountID, toAccountID string, amount decimal.Decimal) (ledger.Operation, error)
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
	History(ctx context.Context, ownerID, accountID string) ([]ledger.Operation, error)
	CloseAccount(ctx context.Context, ownerID, accountID string) error
}

type CreditService interface {
	Create(ctx context.Context, req services.CreateCreditRequest) (credit.Credit, error)
	RunClaims(ctx context.Context) error
	ListByOwner(ctx context.Context, ownerID string) ([]services.CreditSummary, error)
}

type MarketService interface {
	Settle(ctx context.Context, ownerID, fromOrderID, toOrderID string) (store.FinancialSecurity, error)
	PurchaseBase(ctx context.Context, ownerID, accountID, stockID string) (store.FinancialSecurity, error)
	PlaceOrder(ctx context.Context, ownerID, stockID, orderType string, amount decimal.Decimal) (store.StockOrder, error)
}
