package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountNotEmpty   = errors.New("account balance must be zero")
)

// OperationService posts customer-initiated ledger operations and exposes
// derived balances. It never mutates an operation: corrections are new
// operations.
type OperationService struct {
	txRunner   db.TxRunner
	accounts   AccountStore
	operations OperationStore
	hub        BalanceHub
}

func NewOperationService(txRunner db.TxRunner, accounts AccountStore, operations OperationStore, hub BalanceHub) *OperationService {
	return &OperationService{
		txRunner:   txRunner,
		accounts:   accounts,
		operations: operations,
		hub:        hub,
	}
}

func (s *OperationService) Deposit(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error) {
	account, err := s.ownedAccount(ctx, ownerID, accountID)
	if err != nil {
		return ledger.Operation{}, err
	}
	op, err := ledger.New(amount, ledger.TypeDeposit, nil, &account.ID)
	if err != nil {
		return ledger.Operation{}, err
	}
	if err := s.insert(ctx, op); err != nil {
		return ledger.Operation{}, err
	}
	pushBalance(ctx, s.operations, s.hub, ownerID, account.ID)
	return op, nil
}

func (s *OperationService) Withdraw(ctx context.Context, ownerID, accountID string, amount decimal.Decimal) (ledger.Operation, error) {
	account, err := s.ownedAccount(ctx, ownerID, accountID)
	if err != nil {
		return ledger.Operation{}, err
	}
	balance, err := s.Balance(ctx, account.ID)
	if err != nil {
		return ledger.Operation{}, err
	}
	if balance.LessThan(amount) {
		return ledger.Operation{}, ErrInsufficientFunds
	}
	op, err := ledger.New(amount, ledger.TypeWithdrawal, &account.ID, nil)
	if err != nil {
		return ledger.Operation{}, err
	}
	if err := s.insert(ctx, op); err != nil {
		return ledger.Operation{}, err
	}
	pushBalance(ctx, s.operations, s.hub, ownerID, account.ID)
	return op, nil
}

func (s *OperationService) Transfer(ctx context.Context, ownerID, fromAccountID, toAccountID string, amount decimal.Decimal) (ledger.Operation, error) {
	from, err := s.ownedAccount(ctx, ownerID, fromAccountID)
	if err != nil {
		return ledger.Operation{}, err
	}
	to, err := s.accounts.GetByID(ctx, toAccountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ledger.Operation{}, ErrAccountNotFound
		}
		return ledger.Operation{}, err
	}
	if from.ID != to.ID {
		balance, err := s.Balance(ctx, from.ID)
		if err != nil {
			return ledger.Operation{}, err
		}
		if balance.LessThan(amount) {
			return ledger.Operation{}, ErrInsufficientFunds
		}
	}
	op, err := ledger.New(amount, ledger.TypeTransfer, &from.ID, &to.ID)
	if err != nil {
		return ledger.Operation{}, err
	}
	if err := s.insert(ctx, op); err != nil {
		return ledger.Operation{}, err
	}
	pushBalance(ctx, s.operations, s.hub, ownerID, from.ID)
	if to.OwnerID != ownerID {
		pushBalance(ctx, s.operations, s.hub, to.OwnerID, to.ID)
	}
	return op, nil
}

// Balance replays the account's full operation history. Nothing is stored.
func (s *OperationService) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	operations, err := s.operations.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.DeriveBalance(accountID, operations), nil
}

func (s *OperationService) History(ctx context.Context, ownerID, accountID string) ([]ledger.Operation, error) {
	account, err := s.ownedAccount(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}
	return s.operations.ListByAccount(ctx, account.ID)
}

// CloseAccount removes an account, which is only allowed once its derived
// balance is exactly zero.
func (s *OperationService) CloseAccount(ctx context.Context, ownerID, accountID string) error {
	account, err := s.ownedAccount(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	balance, err := s.Balance(ctx, account.ID)
	if err != nil {
		return err
	}
	if !balance.IsZero() {
		return ErrAccountNotEmpty
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.accounts.Delete(ctx, tx, account.ID)
	})
}

func (s *OperationService) insert(ctx context.Context, op ledger.Operation) error {
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.operations.Insert(ctx, tx, op)
	})
}

// A found-but-foreign account reads as not found so the API never confirms
// another customer's account exists.
func (s *OperationService) ownedAccount(ctx context.Context, ownerID, accountID string) (store.Account, error) {
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
