package services

import (
	"context"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/money"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/websocket"
)

type AccountStore interface {
	GetByID(ctx context.Context, accountID string) (store.Account, error)
	GetPrimaryByOwner(ctx context.Context, tx store.Getter, ownerID string) (store.Account, error)
	ListSavings(ctx context.Context) ([]store.Account, error)
	Delete(ctx context.Context, tx store.Execer, accountID string) error
}

type OperationStore interface {
	Insert(ctx context.Context, tx store.Execer, op ledger.Operation) error
	ListByAccount(ctx context.Context, accountID string) ([]ledger.Operation, error)
	ListByAccountTx(ctx context.Context, tx store.Selecter, accountID string) ([]ledger.Operation, error)
}

type CreditStore interface {
	Create(ctx context.Context, tx store.Execer, c credit.Credit) error
	GetByID(ctx context.Context, creditID string) (credit.Credit, error)
	ListApproved(ctx context.Context) ([]credit.Credit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]credit.Credit, error)
	SetStatus(ctx context.Context, tx store.Execer, creditID string, status credit.Status) error
	InsertPayment(ctx context.Context, tx store.Execer, payment credit.Payment) error
	ListPaymentsByCredit(ctx context.Context, creditID string) ([]credit.Payment, error)
}

type OrderStore interface {
	Create(ctx context.Context, tx store.Execer, order store.StockOrder) error
	GetForUpdate(ctx context.Context, tx store.Getter, orderID string) (store.StockOrder, error)
	SetStatus(ctx context.Context, tx store.Execer, orderID, status string) error
}

type StockStore interface {
	GetByID(ctx context.Context, stockID string) (store.Stock, error)
}

type SecurityStore interface {
	Create(ctx context.Context, tx store.Execer, security store.FinancialSecurity) error
	GetByOwnerAndStock(ctx context.Context, tx store.Getter, ownerID, stockID string) (store.FinancialSecurity, error)
	CountByStock(ctx context.Context, stockID string) (int64, error)
	Delete(ctx context.Context, tx store.Execer, securityID string) (int64, error)
}

type SettingStore interface {
	Get(ctx context.Context, code string) (string, error)
}

type BalanceHub interface {
	BroadcastBalance(userID string, update websocket.BalanceUpdate)
}

func pushBalance(ctx context.Context, operations OperationStore, hub BalanceHub, ownerID, accountID string) {
	ops, err := operations.ListByAccount(ctx, accountID)
	if err != nil {
		return
	}
	hub.BroadcastBalance(ownerID, websocket.BalanceUpdate{
		AccountID: accountID,
		Balance:   money.Format(ledger.DeriveBalance(accountID, ops)),
	})
}
