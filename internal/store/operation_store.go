package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
)

type OperationStore struct {
	db DB
}

type operationRow struct {
	ID            string          `db:"id"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type"`
	SourceID      *string         `db:"source_account_id"`
	DestinationID *string         `db:"destination_account_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

func NewOperationStore(db DB) *OperationStore {
	return &OperationStore{db: db}
}

func (s *OperationStore) Insert(ctx context.Context, tx Execer, op ledger.Operation) error {
	query := `
		INSERT INTO operations (id, amount, type, source_account_id, destination_account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, op.ID, op.Amount, string(op.Type), op.SourceID, op.DestinationID, op.CreatedAt)
	return err
}

func (s *OperationStore) ListByAccount(ctx context.Context, accountID string) ([]ledger.Operation, error) {
	return s.listByAccount(ctx, s.db, accountID)
}

// ListByAccountTx reads the account history through an open transaction so
// funds checks see the same snapshot the settlement writes into.
func (s *OperationStore) ListByAccountTx(ctx context.Context, tx Selecter, accountID string) ([]ledger.Operation, error) {
	return s.listByAccount(ctx, tx, accountID)
}

func (s *OperationStore) listByAccount(ctx context.Context, q Selecter, accountID string) ([]ledger.Operation, error) {
	var rows []operationRow
	err := q.SelectContext(ctx, &rows, `
		SELECT id, amount, type, source_account_id, destination_account_id, created_at
		FROM operations
		WHERE source_account_id = $1 OR destination_account_id = $1
		ORDER BY created_at
	`, accountID)
	if err != nil {
		return nil, err
	}
	operations := make([]ledger.Operation, 0, len(rows))
	for _, row := range rows {
		operations = append(operations, ledger.Operation{
			ID:            row.ID,
			Amount:        row.Amount,
			Type:          ledger.Type(row.Type),
			SourceID:      row.SourceID,
			DestinationID: row.DestinationID,
			CreatedAt:     row.CreatedAt,
		})
	}
	return operations, nil
}
