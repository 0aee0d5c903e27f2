package ledger

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// DeriveBalance folds a set of operations into the net balance of one
// account. The fold accumulates integer minor units (amount x 100) so the
// result carries no floating-point drift, and it is commutative: the order
// of the operations never changes the outcome. The caller supplies the full
// operation history for the account; no I/O happens here.
func DeriveBalance(accountID string, operations []Operation) decimal.Decimal {
	var total int64
	for _, op := range operations {
		minor := op.Amount.Mul(hundred).IntPart()
		switch op.Type {
		case TypeDeposit, TypeInterest, TypeFromBank:
			total += minor
		case TypeWithdrawal, TypeFee, TypeToBank:
			total -= minor
		case TypeTransfer:
			source := deref(op.SourceID)
			destination := deref(op.DestinationID)
			if source == destination {
				continue
			}
			if destination == accountID {
				total += minor
			} else if source == accountID {
				total -= minor
			}
		}
	}
	return decimal.NewFromInt(total).Div(hundred)
}

func deref(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
