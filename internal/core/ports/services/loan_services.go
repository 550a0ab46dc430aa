package services

import (
	"context"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// SimulatorSvc defines the pure amortization simulation operation.
type SimulatorSvc interface {
	// Simulate builds a Price-table schedule without persisting anything.
	Simulate(ctx context.Context, req dto.SimulateLoanRequest) (*dto.SimulationResponse, error)
}

// LoanReaderSvc defines read operations for loan contracts
type LoanReaderSvc interface {
	// GetContract retrieves a contract with its schedule and current accruals.
	GetContract(ctx context.Context, contractID string, today time.Time) (*dto.ContractResponse, error)

	// ListContracts retrieves contracts matching the filter.
	ListContracts(ctx context.Context, params dto.ListContractsParams) (*dto.ListContractsResponse, error)

	// ListContractLogs retrieves a contract's audit trail.
	ListContractLogs(ctx context.Context, contractID string) ([]dto.ContractLogResponse, error)

	// ListDueInstallments retrieves the collection feed: OPEN installments
	// due on or before the reference date, with their current accruals.
	ListDueInstallments(ctx context.Context, params dto.ListDueInstallmentsParams, today time.Time) (*dto.ListDueInstallmentsResponse, error)
}

// LoanWriterSvc defines write operations for loan contracts
type LoanWriterSvc interface {
	// CreateContract opens a new contract, persisting the schedule, the
	// disbursement cash-book entry and the audit log atomically.
	CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*dto.ContractResponse, error)

	// PayInstallment collects the accrued due of an installment, freezing the
	// paid amount and splitting the partner commission when one exists.
	PayInstallment(ctx context.Context, installmentID string, req dto.PayInstallmentRequest, actorID string, today time.Time) (*dto.PaymentResponse, error)

	// PayPartial records a partial payment and extends the installment's due
	// date without settling it.
	PayPartial(ctx context.Context, installmentID string, req dto.PayPartialRequest, actorID string, today time.Time) (*dto.ContractResponse, error)

	// CancelContract cancels a contract and all of its open installments.
	// Requires an admin capability.
	CancelContract(ctx context.Context, contractID string, reason string, notes string, admin domain.AdminCapability) (*dto.ContractResponse, error)

	// ReopenContract reverts a cancellation, restoring cancelled installments
	// to OPEN. Requires an admin capability.
	ReopenContract(ctx context.Context, contractID string, admin domain.AdminCapability, today time.Time) (*dto.ContractResponse, error)
}

// LoanSvcFacade combines all loan-related service interfaces
// This is a facade for clients that need access to all operations
type LoanSvcFacade interface {
	SimulatorSvc
	LoanReaderSvc
	LoanWriterSvc
}
