package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// CreateContractRequest defines the data needed to open a new loan contract.
type CreateContractRequest struct {
	ClientID           string          `json:"clientID" binding:"required"`
	Principal          decimal.Decimal `json:"principal" binding:"required"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	InstallmentCount   int             `json:"installmentCount" binding:"required,min=1,max=360"`
	FirstDueDate       time.Time       `json:"firstDueDate" binding:"required"`

	PartnerID         *string         `json:"partnerID"` // Optional referring partner
	CommissionPercent decimal.Decimal `json:"commissionPercent"`

	HasLateFee             bool            `json:"hasLateFee"`
	LateFeePercent         decimal.Decimal `json:"lateFeePercent"`
	MoratoryMonthlyPercent decimal.Decimal `json:"moratoryMonthlyPercent"`

	// CashOut is the amount the client takes home in cash at signing. The
	// principal itself is credited to the client's ledger account; only the
	// cash-out leaves the company cash book.
	CashOut decimal.Decimal `json:"cashOut"`

	Notes string `json:"notes"`
}

// InstallmentResponse defines the data returned for a schedule line. The
// accrual fields reflect the amount owed as of the request date and are
// recomputed on every read.
type InstallmentResponse struct {
	InstallmentID string                   `json:"installmentID"`
	Number        int                      `json:"number"`
	DueDate       time.Time                `json:"dueDate"`
	Amount        decimal.Decimal          `json:"amount"`
	Status        domain.InstallmentStatus `json:"status"`
	PaymentDate   *time.Time               `json:"paymentDate,omitempty"`
	PaidAmount    *decimal.Decimal         `json:"paidAmount,omitempty"`

	Penalty  decimal.Decimal `json:"penalty"`
	Interest decimal.Decimal `json:"interest"`
	DaysLate int             `json:"daysLate"`
	TotalDue decimal.Decimal `json:"totalDue"`
}

// ContractResponse defines the data returned for a loan contract.
type ContractResponse struct {
	ContractID       string                `json:"contractID"`
	ContractCode     string                `json:"contractCode"`
	ClientID         string                `json:"clientID"`
	Status           domain.ContractStatus `json:"status"`
	InstallmentCount int                   `json:"installmentCount"`

	OriginatingContractID *string `json:"originatingContractID,omitempty"`
	PartnerID             *string `json:"partnerID,omitempty"`

	CommissionPercent  decimal.Decimal `json:"commissionPercent"`
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

	Notes        string               `json:"notes"`
	Cancellation *domain.Cancellation `json:"cancellation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`

	Installments []InstallmentResponse `json:"installments,omitempty"`
}

// PayInstallmentRequest defines the data for a full installment payment.
// PaidAmount and PaymentDate default to the accrued due and today; an
// explicit override freezes the given values instead.
type PayInstallmentRequest struct {
	PaidAmount  *decimal.Decimal `json:"paidAmount"`
	PaymentDate *time.Time       `json:"paymentDate"`
	Description string           `json:"description"`
}

// PayPartialRequest defines a partial payment that extends the installment's
// due date instead of settling it.
type PayPartialRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	NewDueDate time.Time       `json:"newDueDate" binding:"required"`
}

// PaymentResponse defines the data returned after collecting an installment.
type PaymentResponse struct {
	Installment InstallmentResponse `json:"installment"`
	PaidAmount  decimal.Decimal     `json:"paidAmount"`
	Commission  decimal.Decimal     `json:"commission"`
	Contract    ContractResponse    `json:"contract"`
}

// CancelContractRequest defines the data for the privileged cancel operation.
type CancelContractRequest struct {
	Reason      string `json:"reason" binding:"required,notblank"`
	Notes       string `json:"notes"`
	AdminSecret string `json:"adminSecret" binding:"required"`
}

// ReopenContractRequest defines the data for the privileged reopen operation.
type ReopenContractRequest struct {
	AdminSecret string `json:"adminSecret" binding:"required"`
}

// RenegotiateContractRequest defines the terms of a renegotiation.
type RenegotiateContractRequest struct {
	DownPayment        decimal.Decimal `json:"downPayment"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	InstallmentCount   int             `json:"installmentCount" binding:"required,min=1,max=360"`
	FirstDueDate       time.Time       `json:"firstDueDate" binding:"required"`
	Notes              string          `json:"notes"`
}

// RenegotiationResponse returns both sides of a completed renegotiation.
type RenegotiationResponse struct {
	OriginalContract ContractResponse `json:"originalContract"`
	NewContract      ContractResponse `json:"newContract"`
	OpenBalance      decimal.Decimal  `json:"openBalance"`
	DownPayment      decimal.Decimal  `json:"downPayment"`
	NewPrincipal     decimal.Decimal  `json:"newPrincipal"`
}

// ContractLogResponse defines the data returned for an audit trail entry.
type ContractLogResponse struct {
	LogID      string           `json:"logID"`
	ContractID string           `json:"contractID"`
	Action     domain.LogAction `json:"action"`
	ActorID    string           `json:"actorID"`
	Reason     string           `json:"reason,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ListDueInstallmentsParams defines query parameters for the collection feed.
type ListDueInstallmentsParams struct {
	// Until defaults to today when absent.
	Until       *time.Time `form:"until" time_format:"2006-01-02"`
	OverdueOnly bool       `form:"overdueOnly"`
}

// DueInstallmentResponse is one line of the collection feed: an open
// installment due for collection, with its contract identification.
type DueInstallmentResponse struct {
	ContractID   string `json:"contractID"`
	ContractCode string `json:"contractCode"`
	ClientID     string `json:"clientID"`
	InstallmentResponse
}

// ListDueInstallmentsResponse wraps the collection feed.
type ListDueInstallmentsResponse struct {
	ReferenceDate time.Time                `json:"referenceDate"`
	Installments  []DueInstallmentResponse `json:"installments"`
}

// ListContractsParams defines query parameters for listing contracts.
type ListContractsParams struct {
	ClientID string `form:"clientID"`
	Status   string `form:"status"`
	Limit    int    `form:"limit,default=20"`
	Offset   int    `form:"offset,default=0"`
}

// ListContractsResponse wraps the list of contracts.
type ListContractsResponse struct {
	Contracts []ContractResponse `json:"contracts"`
}

// ToInstallmentResponse converts a domain.Installment plus its accrual to the DTO.
func ToInstallmentResponse(inst *domain.Installment, due domain.AccruedDue) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		Number:        inst.Number,
		DueDate:       inst.DueDate,
		Amount:        inst.Amount,
		Status:        inst.Status,
		PaymentDate:   inst.PaymentDate,
		PaidAmount:    inst.PaidAmount,
		Penalty:       due.Penalty,
		Interest:      due.Interest,
		DaysLate:      due.DaysLate,
		TotalDue:      due.Total,
	}
}

// ToContractResponse converts a domain.LoanContract to ContractResponse. The
// installments slice may be nil for list views.
func ToContractResponse(c *domain.LoanContract, installments []InstallmentResponse) ContractResponse {
	return ContractResponse{
		ContractID:             c.ContractID,
		ContractCode:           c.ContractCode,
		ClientID:               c.ClientID,
		Status:                 c.Status,
		InstallmentCount:       c.InstallmentCount,
		OriginatingContractID:  c.OriginatingContractID,
		PartnerID:              c.PartnerID,
		CommissionPercent:      c.CommissionPercent,
		Principal:              c.Principal,
		MonthlyRatePercent:     c.MonthlyRatePercent,
		FirstDueDate:           c.FirstDueDate,
		AppliedInstallment:     c.AppliedInstallment,
		TotalContract:          c.TotalContract,
		TotalInterest:          c.TotalInterest,
		RoundingAdjustment:     c.RoundingAdjustment,
		HasLateFee:             c.HasLateFee,
		LateFeePercent:         c.LateFeePercent,
		MoratoryMonthlyPercent: c.MoratoryMonthlyPercent,
		Notes:                  c.Notes,
		Cancellation:           c.Cancellation,
		CreatedAt:              c.CreatedAt,
		CreatedBy:              c.CreatedBy,
		Installments:           installments,
	}
}

// ToContractLogResponses converts a slice of domain.ContractLog to DTOs.
func ToContractLogResponses(logs []domain.ContractLog) []ContractLogResponse {
	out := make([]ContractLogResponse, len(logs))
	for i, l := range logs {
		out[i] = ContractLogResponse{
			LogID:      l.LogID,
			ContractID: l.ContractID,
			Action:     l.Action,
			ActorID:    l.ActorID,
			Reason:     l.Reason,
			Notes:      l.Notes,
			CreatedAt:  l.CreatedAt,
		}
	}
	return out
}
