package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus indicates the lifecycle state of a single installment.
type InstallmentStatus string

const (
	InstallmentOpen InstallmentStatus = "OPEN"
	InstallmentPaid InstallmentStatus = "PAID"
	// InstallmentLiquidated marks an installment absorbed into a new contract
	// by a renegotiation.
	InstallmentLiquidated InstallmentStatus = "LIQUIDATED_RENEGOTIATION"
	InstallmentCancelled  InstallmentStatus = "CANCELLED"
)

// Installment is one line of a contract's amortization schedule.
//
// Invariant: numbers are contiguous 1..N and immutable after creation;
// PaymentDate and PaidAmount are set exactly once, when the installment
// leaves OPEN.
type Installment struct {
	InstallmentID string            `json:"installmentID"`
	ContractID    string            `json:"contractID"`
	Number        int               `json:"number"`
	DueDate       time.Time         `json:"dueDate"`
	Amount        decimal.Decimal   `json:"amount"` // nominal schedule value
	Status        InstallmentStatus `json:"status"`
	PaymentDate   *time.Time        `json:"paymentDate,omitempty"`
	PaidAmount    *decimal.Decimal  `json:"paidAmount,omitempty"`
	AuditFields
}

// AccruedDue is the result of the time-dependent due computation for an
// installment. Penalty and Interest are zero unless the installment is OPEN
// and past due.
type AccruedDue struct {
	Nominal  decimal.Decimal `json:"nominal"`
	Penalty  decimal.Decimal `json:"penalty"`
	Interest decimal.Decimal `json:"interest"`
	DaysLate int             `json:"daysLate"`
	Total    decimal.Decimal `json:"total"`
}

// Accrue computes the amount currently owed on the installment. It is pure and
// must be recomputed on every read; the result is only ever frozen into
// PaidAmount at the moment of payment.
//
// Late penalty is a flat percentage of the nominal value; moratory interest is
// simple interest at 1/30 of the contract's monthly rate per day late. Each
// component is rounded to 2 decimals before summing.
func (i *Installment) Accrue(contract *LoanContract, today time.Time) AccruedDue {
	nominal := i.Amount.Round(2)
	due := AccruedDue{
		Nominal:  nominal,
		Penalty:  decimal.Zero,
		Interest: decimal.Zero,
		Total:    nominal,
	}

	day := DateOnly(today)
	dueDate := DateOnly(i.DueDate)
	if i.Status != InstallmentOpen || !dueDate.Before(day) {
		return due
	}

	due.DaysLate = int(day.Sub(dueDate).Hours() / 24)

	hundred := decimal.NewFromInt(100)
	if contract.HasLateFee && contract.LateFeePercent.IsPositive() {
		due.Penalty = nominal.Mul(contract.LateFeePercent).Div(hundred).Round(2)
	}
	if contract.MoratoryMonthlyPercent.IsPositive() {
		dailyRate := contract.MoratoryMonthlyPercent.Div(hundred).Div(decimal.NewFromInt(30))
		due.Interest = nominal.Mul(dailyRate).Mul(decimal.NewFromInt(int64(due.DaysLate))).Round(2)
	}

	due.Total = nominal.Add(due.Penalty).Add(due.Interest)
	return due
}
