package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SecurityStore struct {
	db DB
}

// FinancialSecurity represents ownership of one unit of a stock. At
// settlement the seller's row is deleted and a new one created for the
// buyer; a duplicate must never exist, even transiently.
type FinancialSecurity struct {
	ID        string          `db:"id"`
	Price     decimal.Decimal `db:"price"`
	OwnerID   string          `db:"owner_id"`
	StockID   string          `db:"stock_id"`
	CreatedAt time.Time       `db:"created_at"`
}

func NewSecurityStore(db DB) *SecurityStore {
	return &SecurityStore{db: db}
}

func (s *SecurityStore) Create(ctx context.Context, tx Execer, security FinancialSecurity) error {
	query := `
		INSERT INTO financial_securities (id, price, owner_id, stock_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, security.ID, security.Price, security.OwnerID, security.StockID)
	return err
}

func (s *SecurityStore) GetByOwnerAndStock(ctx context.Context, tx Getter, ownerID, stockID string) (FinancialSecurity, error) {
	var row FinancialSecurity
	err := tx.GetContext(ctx, &row, `
		SELECT id, price, owner_id, stock_id, created_at
		FROM financial_securities
		WHERE owner_id = $1 AND stock_id = $2
		LIMIT 1
	`, ownerID, stockID)
	if err != nil {
		return FinancialSecurity{}, err
	}
	return row, nil
}

func (s *SecurityStore) ListByOwner(ctx context.Context, ownerID string) ([]FinancialSecurity, error) {
	var rows []FinancialSecurity
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, price, owner_id, stock_id, created_at
		FROM financial_securities
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SecurityStore) CountByStock(ctx context.Context, stockID string) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM financial_securities
		WHERE stock_id = $1
	`, stockID)
	return count, err
}

// Delete reports how many rows went away so callers can tell a vanished
// security from a successful removal.
func (s *SecurityStore) Delete(ctx context.Context, tx Execer, securityID string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM financial_securities
		WHERE id = $1
	`, securityID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
