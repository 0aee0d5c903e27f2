package store

import (
	"context"
	"time"
)

type AccountStore struct {
	db DB
}

// Account carries no balance column. Balances are always derived from the
// operation ledger.
type Account struct {
	ID        string    `db:"id"`
	IBAN      string    `db:"iban"`
	Name      string    `db:"name"`
	OwnerID   string    `db:"owner_id"`
	IsSavings bool      `db:"is_savings"`
	CreatedAt time.Time `db:"created_at"`
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, tx Execer, account Account) error {
	query := `
		INSERT INTO accounts (id, iban, name, owner_id, is_savings)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, account.ID, account.IBAN, account.Name, account.OwnerID, account.IsSavings)
	return err
}

func (s *AccountStore) GetByID(ctx context.Context, accountID string) (Account, error) {
	var row Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, iban, name, owner_id, is_savings, created_at
		FROM accounts
		WHERE id = $1
	`, accountID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) ListByOwner(ctx context.Context, ownerID string) ([]Account, error) {
	var rows []Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, iban, name, owner_id, is_savings, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetPrimaryByOwner resolves the account a settlement debits or credits:
// the owner's oldest current account.
func (s *AccountStore) GetPrimaryByOwner(ctx context.Context, tx Getter, ownerID string) (Account, error) {
	var row Account
	err := tx.GetContext(ctx, &row, `
		SELECT id, iban, name, owner_id, is_savings, created_at
		FROM accounts
		WHERE owner_id = $1 AND is_savings = FALSE
		ORDER BY created_at
		LIMIT 1
	`, ownerID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) ListSavings(ctx context.Context) ([]Account, error) {
	var rows []Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, iban, name, owner_id, is_savings, created_at
		FROM accounts
		WHERE is_savings = TRUE
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) Delete(ctx context.Context, tx Execer, accountID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM accounts
		WHERE id = $1
	`, accountID)
	return err
}
