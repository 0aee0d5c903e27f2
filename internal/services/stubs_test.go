package services

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/websocket"
)

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubAccountStore struct {
	getByIDFn           func(ctx context.Context, accountID string) (store.Account, error)
	getPrimaryByOwnerFn func(ctx context.Context, tx store.Getter, ownerID string) (store.Account, error)
	listSavingsFn       func(ctx context.Context) ([]store.Account, error)
	deleteFn            func(ctx context.Context, tx store.Execer, accountID string) error
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID string) (store.Account, error) {
	if s.getByIDFn == nil {
		return store.Account{}, nil
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) GetPrimaryByOwner(ctx context.Context, tx store.Getter, ownerID string) (store.Account, error) {
	if s.getPrimaryByOwnerFn == nil {
		return store.Account{}, nil
	}
	return s.getPrimaryByOwnerFn(ctx, tx, ownerID)
}

func (s stubAccountStore) ListSavings(ctx context.Context) ([]store.Account, error) {
	if s.listSavingsFn == nil {
		return nil, nil
	}
	return s.listSavingsFn(ctx)
}

func (s stubAccountStore) Delete(ctx context.Context, tx store.Execer, accountID string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, accountID)
}

type stubOperationStore struct {
	insertFn          func(ctx context.Context, tx store.Execer, op ledger.Operation) error
	listByAccountFn   func(ctx context.Context, accountID string) ([]ledger.Operation, error)
	listByAccountTxFn func(ctx context.Context, tx store.Selecter, accountID string) ([]ledger.Operation, error)
}

func (s stubOperationStore) Insert(ctx context.Context, tx store.Execer, op ledger.Operation) error {
	if s.insertFn == nil {
		return nil
	}
	return s.insertFn(ctx, tx, op)
}

func (s stubOperationStore) ListByAccount(ctx context.Context, accountID string) ([]ledger.Operation, error) {
	if s.listByAccountFn == nil {
		return nil, nil
	}
	return s.listByAccountFn(ctx, accountID)
}

func (s stubOperationStore) ListByAccountTx(ctx context.Context, tx store.Selecter, accountID string) ([]ledger.Operation, error) {
	if s.listByAccountTxFn == nil {
		if s.listByAccountFn != nil {
			return s.listByAccountFn(ctx, accountID)
		}
		return nil, nil
	}
	return s.listByAccountTxFn(ctx, tx, accountID)
}

type stubCreditStore struct {
	createFn               func(ctx context.Context, tx store.Execer, c credit.Credit) error
	getByIDFn              func(ctx context.Context, creditID string) (credit.Credit, error)
	listApprovedFn         func(ctx context.Context) ([]credit.Credit, error)
	listByOwnerFn          func(ctx context.Context, ownerID string) ([]credit.Credit, error)
	setStatusFn            func(ctx context.Context, tx store.Execer, creditID string, status credit.Status) error
	insertPaymentFn        func(ctx context.Context, tx store.Execer, payment credit.Payment) error
	listPaymentsByCreditFn func(ctx context.Context, creditID string) ([]credit.Payment, error)
}

func (s stubCreditStore) Create(ctx context.Context, tx store.Execer, c credit.Credit) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, c)
}

func (s stubCreditStore) GetByID(ctx context.Context, creditID string) (credit.Credit, error) {
	return s.getByIDFn(ctx, creditID)
}

func (s stubCreditStore) ListApproved(ctx context.Context) ([]credit.Credit, error) {
	if s.listApprovedFn == nil {
		return nil, nil
	}
	return s.listApprovedFn(ctx)
}

func (s stubCreditStore) ListByOwner(ctx context.Context, ownerID string) ([]credit.Credit, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

func (s stubCreditStore) SetStatus(ctx context.Context, tx store.Execer, creditID string, status credit.Status) error {
	if s.setStatusFn == nil {
		return nil
	}
	return s.setStatusFn(ctx, tx, creditID, status)
}

func (s stubCreditStore) InsertPayment(ctx context.Context, tx store.Execer, payment credit.Payment) error {
	if s.insertPaymentFn == nil {
		return nil
	}
	return s.insertPaymentFn(ctx, tx, payment)
}

func (s stubCreditStore) ListPaymentsByCredit(ctx context.Context, creditID string) ([]credit.Payment, error) {
	if s.listPaymentsByCreditFn == nil {
		return nil, nil
	}
	return s.listPaymentsByCreditFn(ctx, creditID)
}

type stubOrderStore struct {
	createFn       func(ctx context.Context, tx store.Execer, order store.StockOrder) error
	getForUpdateFn func(ctx context.Context, tx store.Getter, orderID string) (store.StockOrder, error)
	setStatusFn    func(ctx context.Context, tx store.Execer, orderID, status string) error
}

func (s stubOrderStore) Create(ctx context.Context, tx store.Execer, order store.StockOrder) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, order)
}

func (s stubOrderStore) GetForUpdate(ctx context.Context, tx store.Getter, orderID string) (store.StockOrder, error) {
	return s.getForUpdateFn(ctx, tx, orderID)
}

func (s stubOrderStore) SetStatus(ctx context.Context, tx store.Execer, orderID, status string) error {
	if s.setStatusFn == nil {
		return nil
	}
	return s.setStatusFn(ctx, tx, orderID, status)
}

type stubStockStore struct {
	getByIDFn func(ctx context.Context, stockID string) (store.Stock, error)
}

func (s stubStockStore) GetByID(ctx context.Context, stockID string) (store.Stock, error) {
	return s.getByIDFn(ctx, stockID)
}

type stubSecurityStore struct {
	createFn             func(ctx context.Context, tx store.Execer, security store.FinancialSecurity) error
	getByOwnerAndStockFn func(ctx context.Context, tx store.Getter, ownerID, stockID string) (store.FinancialSecurity, error)
	countByStockFn       func(ctx context.Context, stockID string) (int64, error)
	deleteFn             func(ctx context.Context, tx store.Execer, securityID string) (int64, error)
}

func (s stubSecurityStore) Create(ctx context.Context, tx store.Execer, security store.FinancialSecurity) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, security)
}

func (s stubSecurityStore) GetByOwnerAndStock(ctx context.Context, tx store.Getter, ownerID, stockID string) (store.FinancialSecurity, error) {
	return s.getByOwnerAndStockFn(ctx, tx, ownerID, stockID)
}

func (s stubSecurityStore) CountByStock(ctx context.Context, stockID string) (int64, error) {
	if s.countByStockFn == nil {
		return 0, nil
	}
	return s.countByStockFn(ctx, stockID)
}

func (s stubSecurityStore) Delete(ctx context.Context, tx store.Execer, securityID string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, securityID)
}

type stubSettingStore struct {
	values map[string]string
	getFn  func(ctx context.Context, code string) (string, error)
}

func (s stubSettingStore) Get(ctx context.Context, code string) (string, error) {
	if s.getFn != nil {
		return s.getFn(ctx, code)
	}
	return s.values[code], nil
}

type stubHub struct {
	calls []websocket.BalanceUpdate
}

func (s *stubHub) BroadcastBalance(_ string, update websocket.BalanceUpdate) {
	s.calls = append(s.calls, update)
}
