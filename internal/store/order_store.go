package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStore struct {
	db DB
}

const (
	OrderTypeBuy  = "BUY"
	OrderTypeSell = "SELL"

	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
)

// StockOrder moves PENDING to COMPLETED exactly once, at settlement.
type StockOrder struct {
	ID        string          `db:"id"`
	Amount    decimal.Decimal `db:"amount"`
	Type      string          `db:"type"`
	Status    string          `db:"status"`
	OwnerID   string          `db:"owner_id"`
	StockID   string          `db:"stock_id"`
	CreatedAt time.Time       `db:"created_at"`
}

func NewOrderStore(db DB) *OrderStore {
	return &OrderStore{db: db}
}

func (s *OrderStore) Create(ctx context.Context, tx Execer, order StockOrder) error {
	query := `
		INSERT INTO stock_orders (id, amount, type, status, owner_id, stock_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, order.ID, order.Amount, order.Type, order.Status, order.OwnerID, order.StockID)
	return err
}

func (s *OrderStore) GetByID(ctx context.Context, orderID string) (StockOrder, error) {
	var row StockOrder
	err := s.db.GetContext(ctx, &row, `
		SELECT id, amount, type, status, owner_id, stock_id, created_at
		FROM stock_orders
		WHERE id = $1
	`, orderID)
	if err != nil {
		return StockOrder{}, err
	}
	return row, nil
}

func (s *OrderStore) GetForUpdate(ctx context.Context, tx Getter, orderID string) (StockOrder, error) {
	var row StockOrder
	err := tx.GetContext(ctx, &row, `
		SELECT id, amount, type, status, owner_id, stock_id, created_at
		FROM stock_orders
		WHERE id = $1
		FOR UPDATE
	`, orderID)
	if err != nil {
		return StockOrder{}, err
	}
	return row, nil
}

func (s *OrderStore) ListByOwner(ctx context.Context, ownerID string) ([]StockOrder, error) {
	var rows []StockOrder
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, type, status, owner_id, stock_id, created_at
		FROM stock_orders
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *OrderStore) ListPendingByStock(ctx context.Context, stockID string) ([]StockOrder, error) {
	var rows []StockOrder
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, amount, type, status, owner_id, stock_id, created_at
		FROM stock_orders
		WHERE stock_id = $1 AND status = 'PENDING'
		ORDER BY created_at
	`, stockID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *OrderStore) SetStatus(ctx context.Context, tx Execer, orderID, status string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE stock_orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	return err
}
