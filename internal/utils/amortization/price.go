// Package amortization implements the Price (French) amortization table used
// to build loan schedules. It is pure: no persistence, no clock.
package amortization

import (
	"fmt"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MaxInstallments bounds the schedule length accepted by the simulator.
const MaxInstallments = 360

var hundred = decimal.NewFromInt(100)

// ScheduleLine is one generated installment of a simulation.
type ScheduleLine struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
}

// Schedule is the result of a simulation. AppliedInstallment is the raw Price
// installment ceiled to the next multiple of 100 currency units; the
// difference over the whole contract is recorded in Adjustment and never
// silently dropped.
type Schedule struct {
	RawInstallment     decimal.Decimal `json:"rawInstallment"`
	AppliedInstallment decimal.Decimal `json:"appliedInstallment"`
	TotalRaw           decimal.Decimal `json:"totalRaw"`
	TotalApplied       decimal.Decimal `json:"totalApplied"`
	Adjustment         decimal.Decimal `json:"adjustment"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	Installments       []ScheduleLine  `json:"installments"`
}

// RoundUpToHundred rounds a currency value up to the next multiple of 100.
// Exact multiples are kept as-is: 1789.00 -> 1800.00, 1800.00 -> 1800.00,
// 1801.00 -> 1900.00.
func RoundUpToHundred(value decimal.Decimal) decimal.Decimal {
	v := value.Round(2)
	return v.Div(hundred).Ceil().Mul(hundred)
}

// PriceInstallment computes the raw Price-table installment
//
//	PMT = PV * i(1+i)^n / ((1+i)^n - 1)
//
// with ratePercent expressed per period (e.g. 5.00 = 5%/month), rounded
// half-up to 2 decimals. A zero rate degenerates to a straight division.
func PriceInstallment(principal decimal.Decimal, ratePercent decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, fmt.Errorf("%w: installment count must be >= 1, got %d", apperrors.ErrValidation, n)
	}

	pv := principal.Round(2)
	i := ratePercent.Div(hundred).Round(7)

	if i.IsZero() {
		return pv.Div(decimal.NewFromInt(int64(n))).Round(2), nil
	}

	factor := decimal.NewFromInt(1).Add(i).Pow(decimal.NewFromInt(int64(n)))
	pmt := pv.Mul(i.Mul(factor)).Div(factor.Sub(decimal.NewFromInt(1)))
	return pmt.Round(2), nil
}

// Simulate builds the full schedule for a contract: raw and applied
// installment values, totals, rounding adjustment, and one line per
// installment dated firstDue + k months (k = 0..n-1).
func Simulate(principal decimal.Decimal, ratePercent decimal.Decimal, n int, firstDue time.Time) (*Schedule, error) {
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrValidation, principal)
	}
	if ratePercent.IsNegative() {
		return nil, fmt.Errorf("%w: rate must not be negative, got %s", apperrors.ErrValidation, ratePercent)
	}
	if n > MaxInstallments {
		return nil, fmt.Errorf("%w: installment count must be <= %d, got %d", apperrors.ErrValidation, MaxInstallments, n)
	}

	raw, err := PriceInstallment(principal, ratePercent, n)
	if err != nil {
		return nil, err
	}
	applied := RoundUpToHundred(raw)

	count := decimal.NewFromInt(int64(n))
	totalRaw := raw.Mul(count).Round(2)
	totalApplied := applied.Mul(count).Round(2)

	s := &Schedule{
		RawInstallment:     raw,
		AppliedInstallment: applied,
		TotalRaw:           totalRaw,
		TotalApplied:       totalApplied,
		Adjustment:         totalApplied.Sub(totalRaw).Round(2),
		TotalInterest:      totalApplied.Sub(principal.Round(2)).Round(2),
		Installments:       make([]ScheduleLine, n),
	}
	for k := 0; k < n; k++ {
		s.Installments[k] = ScheduleLine{
			Number:  k + 1,
			DueDate: AddMonths(firstDue, k),
			Amount:  applied,
		}
	}
	return s, nil
}

// AddMonths advances a date by whole months, clamping the day to the target
// month's length (Jan 31 + 1 month = Feb 28/29), unlike time.AddDate which
// normalizes overflow into the following month.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
