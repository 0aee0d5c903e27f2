package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
)

type CreditStore struct {
	db DB
}

type creditRow struct {
	ID               string          `db:"id"`
	Amount           decimal.Decimal `db:"amount"`
	InterestPercent  decimal.Decimal `db:"interest_percent"`
	InsurancePercent decimal.Decimal `db:"insurance_percent"`
	DurationMonths   int64           `db:"duration_months"`
	Status           string          `db:"status"`
	AccountID        string          `db:"account_id"`
	AdvisorID        string          `db:"advisor_id"`
	OwnerID          string          `db:"owner_id"`
	CreatedAt        time.Time       `db:"created_at"`
}

type paymentRow struct {
	ID        string          `db:"id"`
	Amount    decimal.Decimal `db:"amount"`
	CreditID  string          `db:"credit_id"`
	CreatedAt time.Time       `db:"created_at"`
}

func NewCreditStore(db DB) *CreditStore {
	return &CreditStore{db: db}
}

func (s *CreditStore) Create(ctx context.Context, tx Execer, c credit.Credit) error {
	query := `
		INSERT INTO credits (id, amount, interest_percent, insurance_percent, duration_months, status, account_id, advisor_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := tx.ExecContext(ctx, query, c.ID, c.Amount, c.InterestPercent, c.InsurancePercent,
		c.DurationMonths, string(c.Status), c.AccountID, c.AdvisorID, c.OwnerID)
	return err
}

func (s *CreditStore) GetByID(ctx context.Context, creditID string) (credit.Credit, error) {
	var row creditRow
	err := s.db.GetContext(ctx, &row, creditSelect+` WHERE id = $1`, creditID)
	if err != nil {
		return credit.Credit{}, err
	}
	return row.toDomain(), nil
}

func (s *CreditStore) ListApproved(ctx context.Context) ([]credit.Credit, error) {
	var rows []creditRow
	err := s.db.SelectContext(ctx, &rows, creditSelect+` WHERE status = 'APPROVED' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return toCredits(rows), nil
}

func (s *CreditStore) ListByOwner(ctx context.Context, ownerID string) ([]credit.Credit, error) {
	var rows []creditRow
	err := s.db.SelectContext(ctx, &rows, creditSelect+` WHERE owner_id = $1 ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	return toCredits(rows), nil
}

func (s *CreditStore) SetStatus(ctx context.Context, tx Execer, creditID string, status credit.Status) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE credits
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, string(status), creditID)
	return err
}

func (s *CreditStore) InsertPayment(ctx context.Context, tx Execer, payment credit.Payment) error {
	query := `
		INSERT INTO monthly_payments (id, amount, credit_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, payment.ID, payment.Amount, payment.CreditID, payment.CreatedAt)
	return err
}

func (s *CreditStore) ListPaymentsByCredit(ctx context.Context, creditID string) ([]credit.Payment, error) {
	var rows []paymentRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, credit_id, created_at
		FROM monthly_payments
		WHERE credit_id = $1
		ORDER BY created_at
	`, creditID)
	if err != nil {
		return nil, err
	}
	payments := make([]credit.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, credit.Payment{
			ID:        row.ID,
			Amount:    row.Amount,
			CreditID:  row.CreditID,
			CreatedAt: row.CreatedAt,
		})
	}
	return payments, nil
}

const creditSelect = `
	SELECT id, amount, interest_percent, insurance_percent, duration_months, status, account_id, advisor_id, owner_id, created_at
	FROM credits`

func (row creditRow) toDomain() credit.Credit {
	return credit.Credit{
		ID:               row.ID,
		Amount:           row.Amount,
		InterestPercent:  row.InterestPercent,
		InsurancePercent: row.InsurancePercent,
		DurationMonths:   row.DurationMonths,
		Status:           credit.Status(row.Status),
		AccountID:        row.AccountID,
		AdvisorID:        row.AdvisorID,
		OwnerID:          row.OwnerID,
		CreatedAt:        row.CreatedAt,
	}
}

func toCredits(rows []creditRow) []credit.Credit {
	credits := make([]credit.Credit, 0, len(rows))
	for _, row := range rows {
		credits = append(credits, row.toDomain())
	}
	return credits
}
