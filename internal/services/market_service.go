package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

var (
	ErrStockOrderNotFound        = errors.New("stock order not found")
	ErrInvalidStock              = errors.New("orders reference different stocks")
	ErrInvalidStatus             = errors.New("order is not pending")
	ErrFinancialSecurityNotFound = errors.New("financial security not found")
	ErrInvalidType               = errors.New("invalid order type")
	ErrDisabledStock             = errors.New("stock is disabled")
	ErrInsufficientBaseQuantity  = errors.New("no base supply left for stock")
)

// MarketService matches opposing stock orders and settles them: money moves
// through ledger operations, ownership moves by replacing the financial
// security row. The whole effect sequence runs in one serializable
// transaction so a partial settlement can never be observed.
type MarketService struct {
	txRunner   db.TxRunner
	accounts   AccountStore
	operations OperationStore
	orders     OrderStore
	stocks     StockStore
	securities SecurityStore
	settings   SettingStore
	hub        BalanceHub
}

func NewMarketService(txRunner db.TxRunner, accounts AccountStore, operations OperationStore, orders OrderStore, stocks StockStore, securities SecurityStore, settings SettingStore, hub BalanceHub) *MarketService {
	return &MarketService{
		txRunner:   txRunner,
		accounts:   accounts,
		operations: operations,
		orders:     orders,
		stocks:     stocks,
		securities: securities,
		settings:   settings,
		hub:        hub,
	}
}

// transaction is the resolved money leg of a settlement: which account
// pays, which receives, and the negotiated price (the to-order's amount).
type transaction struct {
	payer  store.Account
	payee  store.Account
	amount decimal.Decimal
}

// Settle matches the caller's pending order against an opposing pending
// order on the same stock. On success both orders are COMPLETED, a TRANSFER
// for the principal plus a FEE on each side are in the ledger, and the
// to-owner's security has been replaced by one held by the from-owner at
// the negotiated price. The security delete runs strictly before the
// create: a duplicate security must never exist, even transiently.
func (s *MarketService) Settle(ctx context.Context, ownerID, fromOrderID, toOrderID string) (store.FinancialSecurity, error) {
	var created store.FinancialSecurity
	var payerAccount, payeeAccount store.Account
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		fromOrder, toOrder, err := s.lockOrders(ctx, tx, fromOrderID, toOrderID)
		if err != nil {
			return err
		}
		// A found-but-foreign order reads as not found.
		if fromOrder.OwnerID != ownerID {
			return ErrStockOrderNotFound
		}
		if fromOrder.StockID != toOrder.StockID {
			return ErrInvalidStock
		}
		if fromOrder.Status != store.OrderStatusPending || toOrder.Status != store.OrderStatusPending {
			return ErrInvalidStatus
		}
		security, err := s.securities.GetByOwnerAndStock(ctx, tx, toOrder.OwnerID, toOrder.StockID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFinancialSecurityNotFound
			}
			return err
		}
		purchaseFee, err := s.feeSetting(ctx, store.SettingPurchaseFee)
		if err != nil {
			return err
		}
		saleFee, err := s.feeSetting(ctx, store.SettingSaleFee)
		if err != nil {
			return err
		}
		txn, err := s.resolveTransaction(ctx, tx, fromOrder, toOrder)
		if err != nil {
			return err
		}
		payerAccount, payeeAccount = txn.payer, txn.payee

		payerOps, err := s.operations.ListByAccountTx(ctx, tx, txn.payer.ID)
		if err != nil {
			return err
		}
		payerBalance := ledger.DeriveBalance(txn.payer.ID, payerOps)
		if payerBalance.LessThan(txn.amount.Add(purchaseFee)) {
			return ErrInsufficientFunds
		}
		payeeOps, err := s.operations.ListByAccountTx(ctx, tx, txn.payee.ID)
		if err != nil {
			return err
		}
		payeeBalance := ledger.DeriveBalance(txn.payee.ID, payeeOps)
		// The sale fee may be covered by the payee's balance or by the
		// settlement proceeds themselves.
		if payeeBalance.LessThan(saleFee) && txn.amount.LessThan(saleFee) {
			return ErrInsufficientFunds
		}

		if err := s.orders.SetStatus(ctx, tx, fromOrder.ID, store.OrderStatusCompleted); err != nil {
			return err
		}
		if err := s.orders.SetStatus(ctx, tx, toOrder.ID, store.OrderStatusCompleted); err != nil {
			return err
		}
		principal, err := ledger.New(txn.amount, ledger.TypeTransfer, &txn.payer.ID, &txn.payee.ID)
		if err != nil {
			return err
		}
		purchaseFeeOp, err := ledger.New(purchaseFee, ledger.TypeFee, &txn.payer.ID, nil)
		if err != nil {
			return err
		}
		saleFeeOp, err := ledger.New(saleFee, ledger.TypeFee, &txn.payee.ID, nil)
		if err != nil {
			return err
		}
		for _, op := range []ledger.Operation{principal, purchaseFeeOp, saleFeeOp} {
			if err := s.operations.Insert(ctx, tx, op); err != nil {
				return err
			}
		}
		deleted, err := s.securities.Delete(ctx, tx, security.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return ErrFinancialSecurityNotFound
		}
		created = store.FinancialSecurity{
			ID:      uuid.NewString(),
			Price:   txn.amount,
			OwnerID: fromOrder.OwnerID,
			StockID: fromOrder.StockID,
		}
		return s.securities.Create(ctx, tx, created)
	})
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	pushBalance(ctx, s.operations, s.hub, payerAccount.OwnerID, payerAccount.ID)
	pushBalance(ctx, s.operations, s.hub, payeeAccount.OwnerID, payeeAccount.ID)
	return created, nil
}

// resolveTransaction applies the direction rule. A BUY from-order pays the
// to-order's owner; a SELL from-order collects from it. Either way the
// price is the to-order's amount.
func (s *MarketService) resolveTransaction(ctx context.Context, tx store.Tx, fromOrder, toOrder store.StockOrder) (transaction, error) {
	fromAccount, err := s.primaryAccount(ctx, tx, fromOrder.OwnerID)
	if err != nil {
		return transaction{}, err
	}
	toAccount, err := s.primaryAccount(ctx, tx, toOrder.OwnerID)
	if err != nil {
		return transaction{}, err
	}
	switch fromOrder.Type {
	case store.OrderTypeBuy:
		return transaction{payer: fromAccount, payee: toAccount, amount: toOrder.Amount}, nil
	case store.OrderTypeSell:
		return transaction{payer: toAccount, payee: fromAccount, amount: toOrder.Amount}, nil
	default:
		return transaction{}, ErrInvalidType
	}
}

func (s *MarketService) primaryAccount(ctx context.Context, tx store.Getter, ownerID string) (store.Account, error) {
	account, err := s.accounts.GetPrimaryByOwner(ctx, tx, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Account{}, ErrAccountNotFound
		}
		return store.Account{}, err
	}
	return account, nil
}

// lockOrders takes both row locks in lexicographic id order so two
// settlements touching the same orders cannot deadlock.
func (s *MarketService) lockOrders(ctx context.Context, tx store.Getter, fromOrderID, toOrderID string) (store.StockOrder, store.StockOrder, error) {
	firstID, secondID := fromOrderID, toOrderID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := s.orders.GetForUpdate(ctx, tx, firstID)
	if err != nil {
		return store.StockOrder{}, store.StockOrder{}, orderLookupError(err)
	}
	second, err := s.orders.GetForUpdate(ctx, tx, secondID)
	if err != nil {
		return store.StockOrder{}, store.StockOrder{}, orderLookupError(err)
	}
	if firstID == fromOrderID {
		return first, second, nil
	}
	return second, first, nil
}

func orderLookupError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStockOrderNotFound
	}
	return err
}

// PurchaseBase issues a brand-new security from the stock's base pool, the
// primary-market path with no counterpart order.
func (s *MarketService) PurchaseBase(ctx context.Context, ownerID, accountID, stockID string) (store.FinancialSecurity, error) {
	account, err := s.ownedAccount(ctx, ownerID, accountID)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	stock, err := s.stocks.GetByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.FinancialSecurity{}, ErrInvalidStock
		}
		return store.FinancialSecurity{}, err
	}
	if !stock.Enabled {
		return store.FinancialSecurity{}, ErrDisabledStock
	}
	existing, err := s.securities.CountByStock(ctx, stock.ID)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	if existing >= stock.BaseQuantity {
		return store.FinancialSecurity{}, ErrInsufficientBaseQuantity
	}
	fee, err := s.feeSetting(ctx, store.SettingPurchaseFee)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	operations, err := s.operations.ListByAccount(ctx, account.ID)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	balance := ledger.DeriveBalance(account.ID, operations)
	if balance.LessThan(stock.BasePrice.Add(fee)) {
		return store.FinancialSecurity{}, ErrInsufficientFunds
	}
	price, err := ledger.New(stock.BasePrice, ledger.TypeToBank, &account.ID, nil)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	feeOp, err := ledger.New(fee, ledger.TypeFee, &account.ID, nil)
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	created := store.FinancialSecurity{
		ID:      uuid.NewString(),
		Price:   stock.BasePrice,
		OwnerID: ownerID,
		StockID: stock.ID,
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.operations.Insert(ctx, tx, price); err != nil {
			return err
		}
		if err := s.operations.Insert(ctx, tx, feeOp); err != nil {
			return err
		}
		return s.securities.Create(ctx, tx, created)
	})
	if err != nil {
		return store.FinancialSecurity{}, err
	}
	pushBalance(ctx, s.operations, s.hub, ownerID, account.ID)
	return created, nil
}

// PlaceOrder records a pending order; nothing moves until settlement.
func (s *MarketService) PlaceOrder(ctx context.Context, ownerID, stockID, orderType string, amount decimal.Decimal) (store.StockOrder, error) {
	if orderType != store.OrderTypeBuy && orderType != store.OrderTypeSell {
		return store.StockOrder{}, ErrInvalidType
	}
	stock, err := s.stocks.GetByID(ctx, stockID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.StockOrder{}, ErrInvalidStock
		}
		return store.StockOrder{}, err
	}
	if !stock.Enabled {
		return store.StockOrder{}, ErrDisabledStock
	}
	order := store.StockOrder{
		ID:      uuid.NewString(),
		Amount:  amount,
		Type:    orderType,
		Status:  store.OrderStatusPending,
		OwnerID: ownerID,
		StockID: stock.ID,
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		return store.StockOrder{}, err
	}
	return order, nil
}

func (s *MarketService) ownedAccount(ctx context.Context, ownerID, accountID string) (store.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Account{}, ErrAccountNotFound
		}
		return store.Account{}, err
	}
	if account.OwnerID != ownerID {
		return store.Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (s *MarketService) feeSetting(ctx context.Context, code string) (decimal.Decimal, error) {
	raw, err := s.settings.Get(ctx, code)
	if err != nil {
		return decimal.Zero, err
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidSettingValue
	}
	return fee, nil
}
