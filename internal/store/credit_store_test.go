package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/BatMaxou/esgi-avenir-sub001/internal/credit"
)

func TestCreditStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO credits") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 9 {
				t.Fatalf("expected 9 args, got %d", len(args))
			}
			if args[5] != "APPROVED" {
				t.Fatalf("unexpected status arg: %#v", args[5])
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewCreditStore(stubDB{})
	err := store.Create(ctx, execer, credit.Credit{
		ID:             "credit-1",
		Amount:         decimal.NewFromInt(1000),
		DurationMonths: 12,
		Status:         credit.StatusApproved,
		AccountID:      "acc-1",
		AdvisorID:      "advisor-1",
		OwnerID:        "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreditStoreListApproved(t *testing.T) {
	ctx := context.Background()
	store := NewCreditStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "WHERE status = 'APPROVED'") {
				t.Fatalf("unexpected query: %s", query)
			}
			*dest.(*[]creditRow) = []creditRow{{ID: "credit-1", Status: "APPROVED"}}
			return nil
		},
	})
	rows, err := store.ListApproved(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != credit.StatusApproved {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestCreditStoreSetStatus(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "UPDATE credits") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 2 || args[0] != "COMPLETED" || args[1] != "credit-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewCreditStore(stubDB{})
	if err := store.SetStatus(ctx, execer, "credit-1", credit.StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreditStoreListPaymentsByCredit(t *testing.T) {
	ctx := context.Background()
	store := NewCreditStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM monthly_payments") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "credit-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]paymentRow) = []paymentRow{{ID: "pay-1", CreditID: "credit-1"}}
			return nil
		},
	})
	payments, err := store.ListPaymentsByCredit(ctx, "credit-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(payments) != 1 || payments[0].ID != "pay-1" {
		t.Fatalf("unexpected payments: %#v", payments)
	}
}
