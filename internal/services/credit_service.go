package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/db"
	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
)

var (
	ErrBankCreditNotFound = errors.New("bank credit not found")
	ErrInvalidCredit      = errors.New("invalid credit terms")
)

// CreditService owns the loan lifecycle: granting a credit funds the
// account, and the recurring claim run collects installments until the
// remaining balance hits zero.
type CreditService struct {
	txRunner   db.TxRunner
	credits    CreditStore
	operations OperationStore
}

func NewCreditService(txRunner db.TxRunner, credits CreditStore, operations OperationStore) *CreditService {
	return &CreditService{
		txRunner:   txRunner,
		credits:    credits,
		operations: operations,
	}
}

type CreateCreditRequest struct {
	Amount           decimal.Decimal
	InterestPercent  decimal.Decimal
	InsurancePercent decimal.Decimal
	DurationMonths   int64
	AccountID        string
	AdvisorID        string
	OwnerID          string
}

// Create grants a credit and posts the FROM_BANK operation that puts the
// principal on the funding account.
func (s *CreditService) Create(ctx context.Context, req CreateCreditRequest) (credit.Credit, error) {
	if !req.Amount.IsPositive() || req.DurationMonths <= 0 {
		return credit.Credit{}, ErrInvalidCredit
	}
	if req.InterestPercent.IsNegative() || req.InsurancePercent.IsNegative() {
		return credit.Credit{}, ErrInvalidCredit
	}
	granted := credit.Credit{
		ID:               uuid.NewString(),
		Amount:           req.Amount,
		InterestPercent:  req.InterestPercent,
		InsurancePercent: req.InsurancePercent,
		DurationMonths:   req.DurationMonths,
		Status:           credit.StatusApproved,
		AccountID:        req.AccountID,
		AdvisorID:        req.AdvisorID,
		OwnerID:          req.OwnerID,
	}
	funding, err := ledger.New(req.Amount, ledger.TypeFromBank, nil, &req.AccountID)
	if err != nil {
		return credit.Credit{}, err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.credits.Create(ctx, tx, granted); err != nil {
			return err
		}
		return s.operations.Insert(ctx, tx, funding)
	})
	if err != nil {
		return credit.Credit{}, err
	}
	return granted, nil
}

// RunClaims collects the next installment of every approved credit. The
// batch is best-effort: one broken credit is logged and skipped, the rest
// still run. Credits are processed one after another.
func (s *CreditService) RunClaims(ctx context.Context) error {
	credits, err := s.credits.ListApproved(ctx)
	if err != nil {
		return err
	}
	for _, c := range credits {
		if err := s.Claim(ctx, c.ID); err != nil {
			log.Printf("credit claim skipped: credit=%s error=%v", c.ID, err)
		}
	}
	return nil
}

// Claim posts one installment for a credit. The installment is the nominal
// monthly amount capped at the remaining balance, so the last claim settles
// the credit exactly and flips it to COMPLETED.
func (s *CreditService) Claim(ctx context.Context, creditID string) error {
	c, err := s.credits.GetByID(ctx, creditID)
	if err != nil {
		return ErrBankCreditNotFound
	}
	payments, err := s.credits.ListPaymentsByCredit(ctx, c.ID)
	if err != nil {
		return err
	}
	remaining := credit.Remaining(c, payments)
	if !remaining.IsPositive() {
		// Already repaid in full; make sure the status caught up.
		return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
			return s.credits.SetStatus(ctx, tx, c.ID, credit.StatusCompleted)
		})
	}
	installment := decimal.Min(credit.Installment(c), remaining)
	debit, err := ledger.New(installment, ledger.TypeToBank, &c.AccountID, nil)
	if err != nil {
		return err
	}
	payment := credit.Payment{
		ID:        uuid.NewString(),
		Amount:    installment,
		CreditID:  c.ID,
		CreatedAt: time.Now().UTC(),
	}
	return s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.credits.InsertPayment(ctx, tx, payment); err != nil {
			return err
		}
		if err := s.operations.Insert(ctx, tx, debit); err != nil {
			return err
		}
		if installment.Equal(remaining) {
			return s.credits.SetStatus(ctx, tx, c.ID, credit.StatusCompleted)
		}
		return nil
	})
}

type CreditSummary struct {
	Credit      credit.Credit
	Remaining   decimal.Decimal
	Installment decimal.Decimal
}

func (s *CreditService) ListByOwner(ctx context.Context, ownerID string) ([]CreditSummary, error) {
	credits, err := s.credits.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	summaries := make([]CreditSummary, 0, len(credits))
	for _, c := range credits {
		payments, err := s.credits.ListPaymentsByCredit(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, CreditSummary{
			Credit:      c,
			Remaining:   credit.Remaining(c, payments),
			Installment: credit.Installment(c),
		})
	}
	return summaries, nil
}
