package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/ledger"
)

func TestOperationStoreInsert(t *testing.T) {
	ctx := context.Background()
	source := "acc-1"
	op := ledger.Operation{
		ID:        "op-1",
		Amount:    decimal.NewFromInt(50),
		Type:      ledger.TypeWithdrawal,
		SourceID:  &source,
		CreatedAt: time.Now().UTC(),
	}
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO operations") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 6 {
				t.Fatalf("expected 6 args, got %d", len(args))
			}
			if args[0] != "op-1" || args[2] != "WITHDRAWAL" {
				t.Fatalf("unexpected args: %#v", args)
			}
			if args[4] != (*string)(nil) {
				t.Fatalf("expected nil destination, got %#v", args[4])
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewOperationStore(stubDB{})
	if err := store.Insert(ctx, execer, op); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOperationStoreListByAccount(t *testing.T) {
	ctx := context.Background()
	store := NewOperationStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "source_account_id = $1 OR destination_account_id = $1") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "acc-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]operationRow) = []operationRow{{ID: "op-1", Type: "DEPOSIT"}}
			return nil
		},
	})
	rows, err := store.ListByAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "op-1" || rows[0].Type != ledger.TypeDeposit {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestOperationStoreListByAccountTx(t *testing.T) {
	ctx := context.Background()
	selecter := stubSelecter{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM operations") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*[]operationRow) = []operationRow{{ID: "op-2"}}
			return nil
		},
	}
	store := NewOperationStore(stubDB{})
	rows, err := store.ListByAccountTx(ctx, selecter, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "op-2" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
