package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAccount       = errors.New("invalid account reference for operation type")
	ErrInvalidOperationType = errors.New("invalid operation type")
)

type Type string

const (
	TypeDeposit    Type = "DEPOSIT"
	TypeWithdrawal Type = "WITHDRAWAL"
	TypeTransfer   Type = "TRANSFER"
	TypeInterest   Type = "INTEREST"
	TypeFee        Type = "FEE"
	TypeToBank     Type = "TO_BANK"
	TypeFromBank   Type = "FROM_BANK"
)

// Operation is one immutable ledger record. The ledger is append-only:
// operations are never edited or deleted once written.
type Operation struct {
	ID            string
	Amount        decimal.Decimal
	Type          Type
	SourceID      *string
	DestinationID *string
	CreatedAt     time.Time
}

// New builds an operation and enforces the per-type reference rules.
// DEPOSIT needs only a destination, WITHDRAWAL only a source, TRANSFER both.
// INTEREST and FROM_BANK credit an account through their destination; FEE
// and TO_BANK debit one through their source. The amount sign is not
// validated here; callers supply positive major-unit amounts.
func New(amount decimal.Decimal, typ Type, sourceID, destinationID *string) (Operation, error) {
	switch typ {
	case TypeDeposit:
		if destinationID == nil || sourceID != nil {
			return Operation{}, ErrInvalidAccount
		}
	case TypeWithdrawal:
		if sourceID == nil || destinationID != nil {
			return Operation{}, ErrInvalidAccount
		}
	case TypeTransfer:
		if sourceID == nil || destinationID == nil {
			return Operation{}, ErrInvalidAccount
		}
	case TypeInterest, TypeFromBank:
		if destinationID == nil {
			return Operation{}, ErrInvalidAccount
		}
	case TypeFee, TypeToBank:
		if sourceID == nil {
			return Operation{}, ErrInvalidAccount
		}
	default:
		return Operation{}, ErrInvalidOperationType
	}
	return Operation{
		ID:            uuid.NewString(),
		Amount:        amount,
		Type:          typ,
		SourceID:      sourceID,
		DestinationID: destinationID,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
