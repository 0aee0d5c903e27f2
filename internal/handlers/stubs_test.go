package handlers

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/config"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/services"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/websocket"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
}

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn     func(ctx context.Context, tx store.Execer, user store.User) error
	getByIDFn    func(ctx context.Context, userID string) (store.User, error)
	getByEmailFn func(ctx context.Context, email string) (store.User, error)
	getRoleFn    func(ctx context.Context, userID string) (string, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, user store.User) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, user)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (store.User, error) {
	if s.getByIDFn == nil {
		return store.User{ID: userID}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (store.User, error) {
	if s.getByEmailFn == nil {
		return store.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetRole(ctx context.Context, userID string) (string, error) {
	if s.getRoleFn == nil {
		return store.RoleClient, nil
	}
	return s.getRoleFn(ctx, userID)
}

type stubAccountStore struct {
	createFn      func(ctx context.Context, tx store.Execer, account store.Account) error
	getByIDFn     func(ctx context.Context, accountID string) (store.Account, error)
	listByOwnerFn func(ctx context.Context, ownerID string) ([]store.Account, error)
}

func (s stubAccountStore) Create(ctx context.Context, tx store.Execer, account store.Account) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, account)
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID string) (store.Account, error) {
	if s.getByIDFn == nil {
		return store.Account{ID: accountID}, nil
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) ListByOwner(ctx context.Context, ownerID string) ([]store.Account, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

type stubOrderStore struct {
	listByOwnerFn func(ctx context.Context, ownerID string) ([]store.StockOrder, error)
}

func (s stubOrderStore) ListByOwner(ctx context.Context, ownerID string) ([]store.StockOrder, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

type stubStockStore struct {
	listFn func(ctx context.Context) ([]store.Stock, error)
}

func (s stubStockStore) List(ctx context.Context) ([]store.Stock, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

type stubSecurityStore struct {
	listByOwnerFn func(ctx context.Context, ownerID string) ([]store.FinancialSecurity, error)
}

func (s stubSecurityStore) ListByOwner(ctx context.Context, ownerID string) ([]store.FinancialSecurity, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

type stubSettingStore struct {
	allFn func(ctx context.Context) (map[string]string, error)
	setFn func(ctx context.Context, tx store.Execer, code, value string) error
}

func (s stubSettingStore) All(ctx context.Context) (map[string]string, error) {
	if s.allFn == nil {
		return map[string]string{}, nil
	}
	return s.allFn(ctx)
}

func (s stubSettingStore) Set(ctx context.Context, tx store.Execer, code, value string) error {
	if s.setFn == nil {
		return nil
	}
	return s.setFn(ctx, tx, code, value)
}

type stubAuditStore struct {
	logFn  func(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error
	listFn func(ctx context.Context, limit, offset int) ([]map[string]any, error)
}

func (s stubAuditStore) Log(ctx context.Context, tx store.Execer, actorID, action, entityType, entityID, data string) error {
	if s.logFn == nil {
		return nil
	}
	return s.logFn(ctx, tx, actorID, action, entityType, entityID, data)
}

func (s stubAuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, limit, offset)
}

type stubOperationService struct {
	depositFn      func(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error)
	withdrawFn     func(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error)
	transferFn     func(ctx context.Context, ownerID, fromAccountID, toAccountID string, amount decimal.Decimal) (ledger.Operation, error)
	balanceFn      func(ctx context.Context, accountID string) (decimal.Decimal, error)
	historyFn      func(ctx context.Context, ownerID, accountID string) ([]ledger.Operation, error)
	closeAccountFn func(ctx context.Context, ownerID, accountID string) error
}

func (s stubOperationService) Deposit(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error) {
	return s.depositFn(ctx, ownerID, accountID, amount)
}

func (s stubOperationService) Withdraw(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error) {
	return s.withdrawFn(ctx, ownerID, accountID, amount)
}

func (s stubOperationService) Transfer(ctx context.Context, ownerID, fromAccountID, toAccountID string, amount decimal.Decimal) (ledger.Operation, error) {
	return s.transferFn(ctx, ownerID, fromAccountID, toAccountID, amount)
}

func (s stubOperationService) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if s.balanceFn == nil {
		return decimal.Zero, nil
	}
	return s.balanceFn(ctx, accountID)
}

func (s stubOperationService) History(ctx context.Context, ownerID, accountID string) ([]ledger.Operation, error) {
	if s.historyFn == nil {
		return nil, nil
	}
	return s.historyFn(ctx, ownerID, accountID)
}

func (s stubOperationService) CloseAccount(ctx context.Context, ownerID, accountID string) error {
	if s.closeAccountFn == nil {
		return nil
	}
	return s.closeAccountFn(ctx, ownerID, accountID)
}

type stubCreditService struct {
	createFn      func(ctx context.Context, req services.CreateCreditRequest) (credit.Credit, error)
	runClaimsFn   func(ctx context.Context) error
	listByOwnerFn func(ctx context.Context, ownerID string) ([]services.CreditSummary, error)
}

func (s stubCreditService) Create(ctx context.Context, req services.CreateCreditRequest) (credit.Credit, error) {
	return s.createFn(ctx, req)
}

func (s stubCreditService) RunClaims(ctx context.Context) error {
	if s.runClaimsFn == nil {
		return nil
	}
	return s.runClaimsFn(ctx)
}

func (s stubCreditService) ListByOwner(ctx context.Context, ownerID string) ([]services.CreditSummary, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

type stubMarketService struct {
	settleFn       func(ctx context.Context, ownerID, fromOrderID, toOrderID string) (store.FinancialSecurity, error)
	purchaseBaseFn func(ctx context.Context, ownerID, accountID, stockID string) (store.FinancialSecurity, error)
	placeOrderFn   func(ctx context.Context, ownerID, stockID, orderType string, amount decimal.Decimal) (store.StockOrder, error)
}

func (s stubMarketService) Settle(ctx context.Context, ownerID, fromOrderID, toOrderID string) (store.FinancialSecurity, error) {
	return s.settleFn(ctx, ownerID, fromOrderID, toOrderID)
}

func (s stubMarketService) PurchaseBase(ctx context.Context, ownerID, accountID, stockID string) (store.FinancialSecurity, error) {
	return s.purchaseBaseFn(ctx, ownerID, accountID, stockID)
}

func (s stubMarketService) PlaceOrder(ctx context.Context, ownerID, stockID, orderType string, amount decimal.Decimal) (store.StockOrder, error) {
	return s.placeOrderFn(ctx, ownerID, stockID, orderType, amount)
}

type testDeps struct {
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
}

func newTestHandler(deps testDeps) *Handler {
	if deps.users == nil {
		deps.users = stubUserStore{}
	}
	if deps.accounts == nil {
		deps.accounts = stubAccountStore{}
	}
	if deps.orders == nil {
		deps.orders = stubOrderStore{}
	}
	if deps.stocks == nil {
		deps.stocks = stubStockStore{}
	}
	if deps.securities == nil {
		deps.securities = stubSecurityStore{}
	}
	if deps.settings == nil {
		deps.settings = stubSettingStore{}
	}
	if deps.audit == nil {
		deps.audit = stubAuditStore{}
	}
	if deps.operations == nil {
		deps.operations = stubOperationService{}
	}
	if deps.credits == nil {
		deps.credits = stubCreditService{}
	}
	if deps.market == nil {
		deps.market = stubMarketService{}
	}
	return New(testConfig(), fakeTxRunner{}, deps.users, deps.accounts, deps.orders, deps.stocks, deps.securities, deps.settings, deps.audit, deps.operations, deps.credits, deps.market, websocket.NewHub())
}
