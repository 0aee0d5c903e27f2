package credit

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusApproved  Status = "APPROVED"
	StatusCompleted Status = "COMPLETED"
)

// Credit is an amortized loan. Amount, percentages and duration are fixed
// at creation; only the status moves, APPROVED to COMPLETED.
type Credit struct {
	ID               string
	Amount           decimal.Decimal
	InterestPercent  decimal.Decimal
	InsurancePercent decimal.Decimal
	DurationMonths   int64
	Status           Status
	AccountID        string
	AdvisorID        string
	OwnerID          string
	CreatedAt        time.Time
}

// Payment is one installment actually collected against a credit.
// Append-only, never mutated.
type Payment struct {
	ID        string
	Amount    decimal.Decimal
	CreditID  string
	CreatedAt time.Time
}

var hundred = decimal.NewFromInt(100)

// Remaining folds a credit's payment history into the amount still owed.
// Payments belonging to other credits are ignored, so the caller does not
// have to pre-filter. Pure and order-independent.
func Remaining(c Credit, payments []Payment) decimal.Decimal {
	remaining := c.Amount
	for _, payment := range payments {
		if payment.CreditID != c.ID {
			continue
		}
		remaining = remaining.Sub(payment.Amount)
	}
	return remaining
}

// Installment computes the nominal monthly installment:
// floor((principal + interest + insurance) / duration).
func Installment(c Credit) decimal.Decimal {
	interest := c.Amount.Mul(c.InterestPercent).Div(hundred)
	insurance := c.Amount.Mul(c.InsurancePercent).Div(hundred)
	total := c.Amount.Add(interest).Add(insurance)
	return total.Div(decimal.NewFromInt(c.DurationMonths)).Floor()
}
