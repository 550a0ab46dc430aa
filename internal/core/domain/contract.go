package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus indicates the lifecycle state of a loan contract.
type ContractStatus string

const (
	ContractActive       ContractStatus = "ACTIVE"
	ContractOverdue      ContractStatus = "OVERDUE"
	ContractSettled      ContractStatus = "SETTLED"
	ContractRenegotiated ContractStatus = "RENEGOTIATED"
	ContractCancelled    ContractStatus = "CANCELLED"
)

// Contract code prefixes. Sequences are scoped per prefix per year.
const (
	ContractPrefixDefault       = "CTR"
	ContractPrefixRenegotiation = "RNG"
)

// Cancellation holds the audit metadata stamped when a contract is cancelled.
// It is cleared again on reopen.
type Cancellation struct {
	CancelledAt time.Time `json:"cancelledAt"`
	CancelledBy string    `json:"cancelledBy"`
	Reason      string    `json:"reason"`
	Notes       string    `json:"notes"`
}

// LoanContract is the root aggregate of the lending engine. It owns a fixed
// schedule of installments and derives its status from their states.
//
// Invariant: TotalContract = AppliedInstallment * InstallmentCount, with the
// difference against the raw Price-table value recorded in RoundingAdjustment.
type LoanContract struct {
	ContractID       string `json:"contractID"`
	ContractCode     string `json:"contractCode"` // e.g. CTR-2026-000001, unique
	ClientID         string `json:"clientID"`
	InstallmentCount int    `json:"installmentCount"`

	// OriginatingContractID links a renegotiated contract back to its source.
	// It is a one-directional history pointer, never a cycle.
	OriginatingContractID *string `json:"originatingContractID,omitempty"`

	// Optional referring partner who earns a cut of every installment collected.
	PartnerID         *string         `json:"partnerID,omitempty"`
	CommissionPercent decimal.Decimal `json:"commissionPercent"` // 0..100

	Principal          decimal.Decimal `json:"principal"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	FirstDueDate       time.Time       `json:"firstDueDate"`

	AppliedInstallment decimal.Decimal `json:"appliedInstallment"`
	TotalContract      decimal.Decimal `json:"totalContract"`
	TotalInterest      decimal.Decimal `json:"totalInterest"`
	RoundingAdjustment decimal.Decimal `json:"roundingAdjustment"`

	HasLateFee             bool            `json:"hasLateFee"`
	LateFeePercent         decimal.Decimal `json:"lateFeePercent"`
	MoratoryMonthlyPercent decimal.Decimal `json:"moratoryMonthlyPercent"`

	Status       ContractStatus `json:"status"`
	Notes        string         `json:"notes"`
	Cancellation *Cancellation  `json:"cancellation,omitempty"`
	AuditFields
}

// DeriveStatus recomputes the contract status from its installments.
// Cancellation is sticky: a CANCELLED contract only leaves that state through
// an explicit reopen, never through recomputation.
func (c *LoanContract) DeriveStatus(installments []Installment, today time.Time) ContractStatus {
	if c.Status == ContractCancelled {
		return ContractCancelled
	}
	if c.Status == ContractRenegotiated {
		return ContractRenegotiated
	}
	if len(installments) == 0 {
		return ContractActive
	}

	open := 0
	overdue := false
	day := DateOnly(today)
	for _, inst := range installments {
		if inst.Status != InstallmentOpen {
			continue
		}
		open++
		if DateOnly(inst.DueDate).Before(day) {
			overdue = true
		}
	}

	switch {
	case open == 0:
		return ContractSettled
	case overdue:
		return ContractOverdue
	default:
		return ContractActive
	}
}

// Renegotiable reports whether the contract may be used as the source of a
// renegotiation.
func (c *LoanContract) Renegotiable() bool {
	return c.Status == ContractActive || c.Status == ContractOverdue
}

// CommissionFor returns the partner's cut of a collected amount, rounded to
// 2 decimals. Zero when the contract has no partner.
func (c *LoanContract) CommissionFor(paidAmount decimal.Decimal) decimal.Decimal {
	if c.PartnerID == nil || c.CommissionPercent.IsZero() {
		return decimal.Zero
	}
	return paidAmount.Mul(c.CommissionPercent).Div(decimal.NewFromInt(100)).Round(2)
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
