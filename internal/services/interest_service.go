package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/store"
)

var ErrInvalidSettingValue = errors.New("invalid setting value")

var hundred = decimal.NewFromInt(100)

// InterestService credits savings accounts with interest computed from
// their derived balance and the configured savings rate.
type InterestService struct {
	txRunner   db.TxRunner
	accounts   AccountStore
	operations OperationStore
	settings   SettingStore
	hub        BalanceHub
}

func NewInterestService(txRunner db.TxRunner, accounts AccountStore, operations OperationStore, settings SettingStore, hub BalanceHub) *InterestService {
	return &InterestService{
		txRunner:   txRunner,
		accounts:   accounts,
		operations: operations,
		settings:   settings,
		hub:        hub,
	}
}

// RunAccruals walks every savings account one after another. A failing
// account is logged and skipped; it never stops the batch.
func (s *InterestService) RunAccruals(ctx context.Context) error {
	accounts, err := s.accounts.ListSavings(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if err := s.accrue(ctx, account); err != nil {
			log.Printf("interest accrual skipped: account=%s error=%v", account.ID, err)
		}
	}
	return nil
}

func (s *InterestService) accrue(ctx context.Context, account store.Account) error {
	operations, err := s.operations.ListByAccount(ctx, account.ID)
	if err != nil {
		return err
	}
	balance := ledger.DeriveBalance(account.ID, operations)
	rate, err := s.rate(ctx)
	if err != nil {
		return err
	}
	interest := balance.Mul(rate).Div(hundred).RoundDown(2)
	if !interest.IsPositive() {
		return nil
	}
	op, err := ledger.New(interest, ledger.TypeInterest, nil, &account.ID)
	if err != nil {
		return err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.operations.Insert(ctx, tx, op)
	})
	if err != nil {
		return err
	}
	pushBalance(ctx, s.operations, s.hub, account.OwnerID, account.ID)
	return nil
}

// The savings rate setting may be stored as a bare number or a string
// encoded one; both parse the same way.
func (s *InterestService) rate(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.settings.Get(ctx, store.SettingSavingPercent)
	if err != nil {
		return decimal.Zero, err
	}
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, ErrInvalidSettingValue
	}
	return rate, nil
}
