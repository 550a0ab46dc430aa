package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus mirrors domain.ContractStatus at the persistence layer.
type ContractStatus string

// LoanContract is the row model for the loan_contracts table.
type LoanContract struct {
	ContractID       string `db:"contract_id"`
	ContractCode     string `db:"contract_code"`
	ClientID         string `db:"client_id"`
	InstallmentCount int    `db:"installment_count"`

	OriginatingContractID *string `db:"originating_contract_id"`
	PartnerID             *string `db:"partner_id"`

	CommissionPercent  decimal.Decimal `db:"commission_percent"`
	Principal          decimal.Decimal `db:"principal"`
	MonthlyRatePercent decimal.Decimal `db:"monthly_rate_percent"`
	FirstDueDate       time.Time       `db:"first_due_date"`

	AppliedInstallment decimal.Decimal `db:"applied_installment"`
	TotalContract      decimal.Decimal `db:"total_contract"`
	TotalInterest      decimal.Decimal `db:"total_interest"`
	RoundingAdjustment decimal.Decimal `db:"rounding_adjustment"`

	HasLateFee             bool            `db:"has_late_fee"`
	LateFeePercent         decimal.Decimal `db:"late_fee_percent"`
	MoratoryMonthlyPercent decimal.Decimal `db:"moratory_monthly_percent"`

	Status ContractStatus `db:"status"`
	Notes  string         `db:"notes"`

	CancelledAt        *time.Time `db:"cancelled_at"`
	CancelledBy        *string    `db:"cancelled_by"`
	CancellationReason *string    `db:"cancellation_reason"`
	CancellationNotes  *string    `db:"cancellation_notes"`

	AuditFields
}

// InstallmentStatus mirrors domain.InstallmentStatus at the persistence layer.
type InstallmentStatus string

// Installment is the row model for the installments table.
type Installment struct {
	InstallmentID string            `db:"installment_id"`
	ContractID    string            `db:"contract_id"`
	Number        int               `db:"number"`
	DueDate       time.Time         `db:"due_date"`
	Amount        decimal.Decimal   `db:"amount"`
	Status        InstallmentStatus `db:"status"`
	PaymentDate   *time.Time        `db:"payment_date"`
	PaidAmount    *decimal.Decimal  `db:"paid_amount"`
	AuditFields
}

// ContractLog is the row model for the contract_logs table.
type ContractLog struct {
	LogID      string    `db:"log_id"`
	ContractID string    `db:"contract_id"`
	Action     string    `db:"action"`
	ActorID    string    `db:"actor_id"`
	Reason     string    `db:"reason"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}
