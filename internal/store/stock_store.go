package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type StockStore struct {
	db DB
}

type Stock struct {
	ID           string          `db:"id"`
	Name         string          `db:"name"`
	BasePrice    decimal.Decimal `db:"base_price"`
	BaseQuantity int64           `db:"base_quantity"`
	Enabled      bool            `db:"enabled"`
	CreatedAt    time.Time       `db:"created_at"`
}

func NewStockStore(db DB) *StockStore {
	return &StockStore{db: db}
}

func (s *StockStore) GetByID(ctx context.Context, stockID string) (Stock, error) {
	var row Stock
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, base_price, base_quantity, enabled, created_at
		FROM stocks
		WHERE id = $1
	`, stockID)
	if err != nil {
		return Stock{}, err
	}
	return row, nil
}

func (s *StockStore) List(ctx context.Context) ([]Stock, error) {
	var rows []Stock
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, base_price, base_quantity, enabled, created_at
		FROM stocks
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
