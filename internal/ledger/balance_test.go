package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func mustOp(t *testing.T, amount string, typ Type, source, destination *string) Operation {
	t.Helper()
	op, err := New(decimal.RequireFromString(amount), typ, source, destination)
	if err != nil {
		t.Fatalf("failed to build operation: %v", err)
	}
	return op
}

func TestDeriveBalanceMixedHistory(t *testing.T) {
	account := "acc-1"
	other := "acc-2"
	operations := []Operation{
		mustOp(t, "100.00", TypeDeposit, nil, &account),
		mustOp(t, "30.50", TypeWithdrawal, &account, nil),
		mustOp(t, "10.00", TypeTransfer, &account, &other),
		mustOp(t, "5.25", TypeTransfer, &other, &account),
		mustOp(t, "1.50", TypeInterest, nil, &account),
		mustOp(t, "2.00", TypeFee, &account, nil),
		mustOp(t, "500.00", TypeFromBank, nil, &account),
		mustOp(t, "50.00", TypeToBank, &account, nil),
	}
	balance := DeriveBalance(account, operations)
	if got := balance.StringFixed(2); got != "514.25" {
		t.Fatalf("expected 514.25, got %s", got)
	}
}

func TestDeriveBalanceOrderIndependent(t *testing.T) {
	account := "acc-1"
	other := "acc-2"
	operations := []Operation{
		mustOp(t, "100.00", TypeDeposit, nil, &account),
		mustOp(t, "25.00", TypeWithdrawal, &account, nil),
		mustOp(t, "12.34", TypeTransfer, &other, &account),
		mustOp(t, "0.99", TypeFee, &account, nil),
	}
	want := DeriveBalance(account, operations)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]Operation, len(operations))
		copy(shuffled, operations)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := DeriveBalance(account, shuffled); !got.Equal(want) {
			t.Fatalf("balance changed under reordering: %s vs %s", got, want)
		}
	}
}

func TestDeriveBalanceSelfTransferIsNoop(t *testing.T) {
	account := "acc-1"
	operations := []Operation{
		mustOp(t, "100.00", TypeDeposit, nil, &account),
		mustOp(t, "40.00", TypeTransfer, &account, &account),
	}
	if got := DeriveBalance(account, operations).StringFixed(2); got != "100.00" {
		t.Fatalf("expected 100.00, got %s", got)
	}
}

func TestDeriveBalanceIgnoresForeignTransfer(t *testing.T) {
	account := "acc-1"
	a := "acc-2"
	b := "acc-3"
	operations := []Operation{
		mustOp(t, "100.00", TypeDeposit, nil, &account),
		mustOp(t, "40.00", TypeTransfer, &a, &b),
	}
	if got := DeriveBalance(account, operations).StringFixed(2); got != "100.00" {
		t.Fatalf("expected 100.00, got %s", got)
	}
}

func TestDeriveBalanceEmptyHistory(t *testing.T) {
	if got := DeriveBalance("acc-1", nil); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestDeriveBalanceCentPrecision(t *testing.T) {
	account := "acc-1"
	operations := []Operation{
		mustOp(t, "0.10", TypeDeposit, nil, &account),
		mustOp(t, "0.20", TypeDeposit, nil, &account),
		mustOp(t, "0.30", TypeWithdrawal, &account, nil),
	}
	if got := DeriveBalance(account, operations); !got.IsZero() {
		t.Fatalf("expected exact zero, got %s", got)
	}
}
