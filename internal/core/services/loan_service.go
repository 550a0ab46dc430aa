package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/amortization"
)

var (
	ErrEarlierInstallmentOpen = fmt.Errorf("%w: an earlier installment is still open", apperrors.ErrConflict)
	ErrContractNotCancellable = fmt.Errorf("%w: contract cannot be cancelled in its current state", apperrors.ErrConflict)
	ErrContractNotCancelled   = fmt.Errorf("%w: contract is not cancelled", apperrors.ErrConflict)
	ErrDueDatePastNext        = fmt.Errorf("%w: new due date must precede the next installment's due date", apperrors.ErrValidation)
)

// loanService implements the contract aggregate operations: simulation,
// creation, payment collection and the privileged lifecycle changes.
type loanService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	cashRepo     portsrepo.CashBookRepositoryFacade
	logRepo      portsrepo.ContractLogRepositoryFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(contractRepo portsrepo.ContractRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, cashRepo portsrepo.CashBookRepositoryFacade, logRepo portsrepo.ContractLogRepositoryFacade) portssvc.LoanSvcFacade {
	return &loanService{
		contractRepo: contractRepo,
		ledgerRepo:   ledgerRepo,
		cashRepo:     cashRepo,
		logRepo:      logRepo,
	}
}

// Ensure loanService implements the portssvc.LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// Simulate builds a Price-table schedule without persisting anything.
func (s *loanService) Simulate(ctx context.Context, req dto.SimulateLoanRequest) (*dto.SimulationResponse, error) {
	schedule, err := amortization.Simulate(req.Principal, req.MonthlyRatePercent, req.InstallmentCount, req.FirstDueDate)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSimulationResponse(req, schedule)
	return &resp, nil
}

// CreateContract opens a new contract: it simulates the schedule, credits the
// principal to the client's ledger account and persists contract, schedule,
// ledger legs and audit log in one transaction. The company cash book is only
// touched when the client takes an immediate cash-out, and that amount must
// be covered by the cash balance.
func (s *loanService) CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*dto.ContractResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CommissionPercent.IsNegative() || req.CommissionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: commission percent must be between 0 and 100", apperrors.ErrValidation)
	}
	if req.PartnerID == nil && req.CommissionPercent.IsPositive() {
		return nil, fmt.Errorf("%w: commission requires a partner", apperrors.ErrValidation)
	}
	cashOut := req.CashOut.Round(2)
	if cashOut.IsNegative() {
		return nil, fmt.Errorf("%w: cash-out must not be negative", apperrors.ErrValidation)
	}
	if cashOut.GreaterThan(req.Principal) {
		return nil, fmt.Errorf("%w: cash-out %s exceeds principal %s", apperrors.ErrValidation, cashOut, req.Principal)
	}

	schedule, err := amortization.Simulate(req.Principal, req.MonthlyRatePercent, req.InstallmentCount, req.FirstDueDate)
	if err != nil {
		return nil, err
	}

	if cashOut.IsPositive() {
		cashBalance, err := s.cashRepo.CurrentBalance(ctx)
		if err != nil {
			logger.Error("Failed to read cash balance for cash-out check", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to read cash balance: %w", err)
		}
		if cashBalance.LessThan(cashOut) {
			logger.Warn("Cash-out rejected for insufficient cash", slog.String("cash_out", cashOut.String()), slog.String("cash_balance", cashBalance.String()))
			return nil, fmt.Errorf("%w: cash balance %s does not cover cash-out %s", apperrors.ErrInsufficientFunds, cashBalance, cashOut)
		}
	}

	now := time.Now()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID}

	contract := domain.LoanContract{
		ContractID:             uuid.New().String(),
		ClientID:               req.ClientID,
		InstallmentCount:       req.InstallmentCount,
		PartnerID:              req.PartnerID,
		CommissionPercent:      req.CommissionPercent,
		Principal:              req.Principal.Round(2),
		MonthlyRatePercent:     req.MonthlyRatePercent,
		FirstDueDate:           domain.DateOnly(req.FirstDueDate),
		AppliedInstallment:     schedule.AppliedInstallment,
		TotalContract:          schedule.TotalApplied,
		TotalInterest:          schedule.TotalInterest,
		RoundingAdjustment:     schedule.Adjustment,
		HasLateFee:             req.HasLateFee,
		LateFeePercent:         req.LateFeePercent,
		MoratoryMonthlyPercent: req.MoratoryMonthlyPercent,
		Status:                 domain.ContractActive,
		Notes:                  req.Notes,
		AuditFields:            audit,
	}

	installments := make([]domain.Installment, len(schedule.Installments))
	for i, line := range schedule.Installments {
		installments[i] = domain.Installment{
			InstallmentID: uuid.New().String(),
			ContractID:    contract.ContractID,
			Number:        line.Number,
			DueDate:       line.DueDate,
			Amount:        line.Amount,
			Status:        domain.InstallmentOpen,
			AuditFields:   audit,
		}
	}

	account, err := ensureAccount(ctx, s.ledgerRepo, req.ClientID, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	contractRef := contract.ContractID
	creation := portsrepo.ContractCreation{
		CodePrefix:   domain.ContractPrefixDefault,
		Contract:     contract,
		Installments: installments,
		ClientCredit: domain.LedgerMovement{
			MovementID:  uuid.New().String(),
			AccountID:   account.AccountID,
			Direction:   domain.MovementCredit,
			Origin:      domain.OriginLoanDisbursement,
			Amount:      contract.Principal,
			Description: fmt.Sprintf("Loan principal credit to client %s", req.ClientID),
			OccurredAt:  now,
			ContractID:  &contractRef,
			AuditFields: audit,
		},
		Log: domain.ContractLog{
			LogID:      uuid.New().String(),
			ContractID: contract.ContractID,
			Action:     domain.LogCreated,
			ActorID:    creatorUserID,
			CreatedAt:  now,
		},
	}

	if cashOut.IsPositive() {
		creation.CashOutDebit = &domain.LedgerMovement{
			MovementID:  uuid.New().String(),
			AccountID:   account.AccountID,
			Direction:   domain.MovementDebit,
			Origin:      domain.OriginWithdrawal,
			Amount:      cashOut,
			Description: fmt.Sprintf("Cash-out at signing for client %s", req.ClientID),
			OccurredAt:  now,
			ContractID:  &contractRef,
			AuditFields: audit,
		}
		creation.CashOutEntry = &domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashLoanDisbursement,
			Amount:      domain.SignedCashAmount(domain.CashLoanDisbursement, cashOut),
			Description: fmt.Sprintf("Cash-out at signing for client %s", req.ClientID),
			OccurredAt:  now,
			ContractID:  &contractRef,
			ActorID:     creatorUserID,
			CreatedAt:   now,
		}
	}

	persisted, err := s.contractRepo.CreateContract(ctx, creation)
	if err != nil {
		logger.Error("Failed to create contract", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to create contract: %w", err)
	}

	logger.Info("Contract created", slog.String("contract_id", persisted.ContractID), slog.String("contract_code", persisted.ContractCode))
	return s.buildContractResponse(persisted, installments, now), nil
}

// GetContract retrieves a contract with its schedule and current accruals.
// The contract status is re-derived from the installments on every read;
// drift against the stored status is persisted opportunistically.
func (s *loanService) GetContract(ctx context.Context, contractID string, today time.Time) (*dto.ContractResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	installments, err := s.contractRepo.FindInstallmentsByContractID(ctx, contractID)
	if err != nil {
		logger.Error("Failed to fetch installments", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}

	derived := contract.DeriveStatus(installments, today)
	if derived != contract.Status {
		if err := s.contractRepo.UpdateContractStatus(ctx, contractID, derived, contract.LastUpdatedBy, time.Now()); err != nil {
			// Display still uses the derived status; the stored value catches
			// up on the next successful write.
			logger.Warn("Failed to persist derived contract status", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		}
		contract.Status = derived
	}

	return s.buildContractResponse(contract, installments, today), nil
}

// ListContracts retrieves contracts matching the filter.
func (s *loanService) ListContracts(ctx context.Context, params dto.ListContractsParams) (*dto.ListContractsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	contracts, err := s.contractRepo.ListContracts(ctx, params.ClientID, params.Status, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	out := make([]dto.ContractResponse, len(contracts))
	for i := range contracts {
		out[i] = dto.ToContractResponse(&contracts[i], nil)
	}
	return &dto.ListContractsResponse{Contracts: out}, nil
}

// ListContractLogs retrieves a contract's audit trail.
func (s *loanService) ListContractLogs(ctx context.Context, contractID string) ([]dto.ContractLogResponse, error) {
	if _, err := s.contractRepo.FindContractByID(ctx, contractID); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListLogsByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contract logs: %w", err)
	}
	return dto.ToContractLogResponses(logs), nil
}

// ListDueInstallments builds the collection feed: OPEN installments due on or
// before the reference date, with their accruals as of today. Contracts that
// were cancelled or renegotiated never appear in the feed.
func (s *loanService) ListDueInstallments(ctx context.Context, params dto.ListDueInstallmentsParams, today time.Time) (*dto.ListDueInstallmentsResponse, error) {
	refDate := domain.DateOnly(today)
	if params.Until != nil {
		refDate = domain.DateOnly(*params.Until)
	}

	due, err := s.contractRepo.ListDueInstallments(ctx, refDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list due installments: %w", err)
	}

	day := domain.DateOnly(today)
	contracts := make(map[string]*domain.LoanContract)
	items := make([]dto.DueInstallmentResponse, 0, len(due))
	for _, inst := range due {
		if params.OverdueOnly && !domain.DateOnly(inst.DueDate).Before(day) {
			continue
		}
		contract, ok := contracts[inst.ContractID]
		if !ok {
			contract, err = s.contractRepo.FindContractByID(ctx, inst.ContractID)
			if err != nil {
				return nil, err
			}
			contracts[inst.ContractID] = contract
		}
		items = append(items, dto.DueInstallmentResponse{
			ContractID:          contract.ContractID,
			ContractCode:        contract.ContractCode,
			ClientID:            contract.ClientID,
			InstallmentResponse: dto.ToInstallmentResponse(&inst, inst.Accrue(contract, today)),
		})
	}

	return &dto.ListDueInstallmentsResponse{ReferenceDate: refDate, Installments: items}, nil
}

// PayInstallment collects the accrued due of an installment. The amount is
// computed server-side and frozen into the installment; the cash book takes
// the full inflow and, when the contract has a partner, the commission leaves
// as a cash outflow and enters the partner's ledger account as a credit.
func (s *loanService) PayInstallment(ctx context.Context, installmentID string, req dto.PayInstallmentRequest, actorID string, today time.Time) (*dto.PaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	installment, err := s.contractRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.Status != domain.InstallmentOpen {
		return nil, fmt.Errorf("%w: installment %d is %s", apperrors.ErrConflict, installment.Number, installment.Status)
	}

	contract, err := s.contractRepo.FindContractByID(ctx, installment.ContractID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.contractRepo.FindInstallmentsByContractID(ctx, contract.ContractID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}
	for _, sib := range siblings {
		if sib.Number < installment.Number && sib.Status == domain.InstallmentOpen {
			return nil, fmt.Errorf("%w: installment %d", ErrEarlierInstallmentOpen, sib.Number)
		}
	}

	due := installment.Accrue(contract, today)
	paidAmount := due.Total
	if req.PaidAmount != nil {
		if !req.PaidAmount.IsPositive() {
			return nil, fmt.Errorf("%w: paid amount must be positive", apperrors.ErrValidation)
		}
		paidAmount = req.PaidAmount.Round(2)
	}
	commission := contract.CommissionFor(paidAmount)

	now := time.Now()
	paymentDate := domain.DateOnly(today)
	if req.PaymentDate != nil {
		paymentDate = domain.DateOnly(*req.PaymentDate)
	}

	paid := *installment
	paid.Status = domain.InstallmentPaid
	paid.PaymentDate = &paymentDate
	paid.PaidAmount = &paidAmount
	paid.LastUpdatedAt = now
	paid.LastUpdatedBy = actorID

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Payment installment %d/%d - %s", installment.Number, contract.InstallmentCount, contract.ContractCode)
	}

	contractRef := contract.ContractID
	installmentRef := installment.InstallmentID
	persist := portsrepo.PaymentPersist{
		Installment: paid,
		CashInflow: domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashInstallmentPayment,
			Amount:      domain.SignedCashAmount(domain.CashInstallmentPayment, paidAmount),
			Description: description,
			OccurredAt:  now,
			ContractID:  &contractRef,
			ActorID:     actorID,
			CreatedAt:   now,
		},
		Log: domain.ContractLog{
			LogID:      uuid.New().String(),
			ContractID: contract.ContractID,
			Action:     domain.LogPaid,
			ActorID:    actorID,
			Reason:     fmt.Sprintf("Installment %d paid: %s", installment.Number, paidAmount),
			CreatedAt:  now,
		},
	}

	if commission.IsPositive() {
		partnerAccount, err := ensureAccount(ctx, s.ledgerRepo, *contract.PartnerID, actorID, now)
		if err != nil {
			return nil, err
		}
		persist.CommissionOut = &domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashPartnerCommission,
			Amount:      domain.SignedCashAmount(domain.CashPartnerCommission, commission),
			Description: fmt.Sprintf("Commission %s%% installment %d - %s", contract.CommissionPercent, installment.Number, contract.ContractCode),
			OccurredAt:  now,
			ContractID:  &contractRef,
			ActorID:     actorID,
			CreatedAt:   now,
		}
		persist.PartnerCredit = &domain.LedgerMovement{
			MovementID:    uuid.New().String(),
			AccountID:     partnerAccount.AccountID,
			Direction:     domain.MovementCredit,
			Origin:        domain.OriginPartnerCommission,
			Amount:        commission,
			Description:   fmt.Sprintf("Commission installment %d - %s", installment.Number, contract.ContractCode),
			OccurredAt:    now,
			ContractID:    &contractRef,
			InstallmentID: &installmentRef,
			AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
		}
	}

	if err := s.contractRepo.SavePayment(ctx, persist); err != nil {
		logger.Error("Failed to persist payment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}

	// Refresh the aggregate and settle the contract when this was the last
	// open installment.
	for i := range siblings {
		if siblings[i].InstallmentID == installmentID {
			siblings[i] = paid
		}
	}
	derived := contract.DeriveStatus(siblings, today)
	if derived != contract.Status {
		if err := s.contractRepo.UpdateContractStatus(ctx, contract.ContractID, derived, actorID, now); err != nil {
			logger.Warn("Failed to persist derived contract status after payment", slog.String("error", err.Error()), slog.String("contract_id", contract.ContractID))
		}
		contract.Status = derived
	}

	logger.Info("Installment paid",
		slog.String("installment_id", installmentID),
		slog.String("contract_id", contract.ContractID),
		slog.String("paid_amount", paidAmount.String()),
		slog.String("commission", commission.String()),
	)

	settled := paid.Accrue(contract, today)
	return &dto.PaymentResponse{
		Installment: dto.ToInstallmentResponse(&paid, settled),
		PaidAmount:  paidAmount,
		Commission:  commission,
		Contract:    *s.buildContractResponse(contract, siblings, today),
	}, nil
}

// PayPartial records a partial payment against an open installment: the
// amount enters the cash book and the due date is pushed forward, but the
// installment stays open at its full nominal value. The new date must fall
// before the next installment's due date.
func (s *loanService) PayPartial(ctx context.Context, installmentID string, req dto.PayPartialRequest, actorID string, today time.Time) (*dto.ContractResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: partial amount must be positive", apperrors.ErrValidation)
	}

	installment, err := s.contractRepo.FindInstallmentByID(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	if installment.Status != domain.InstallmentOpen {
		return nil, fmt.Errorf("%w: installment %d is %s", apperrors.ErrConflict, installment.Number, installment.Status)
	}

	contract, err := s.contractRepo.FindContractByID(ctx, installment.ContractID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.contractRepo.FindInstallmentsByContractID(ctx, contract.ContractID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}
	newDue := domain.DateOnly(req.NewDueDate)
	for _, sib := range siblings {
		if sib.Number == installment.Number+1 && !newDue.Before(domain.DateOnly(sib.DueDate)) {
			return nil, fmt.Errorf("%w: next due %s", ErrDueDatePastNext, sib.DueDate.Format(time.DateOnly))
		}
	}

	now := time.Now()
	oldDue := installment.DueDate

	extended := *installment
	extended.DueDate = newDue
	extended.LastUpdatedAt = now
	extended.LastUpdatedBy = actorID

	contractRef := contract.ContractID
	persist := portsrepo.PartialPaymentPersist{
		Installment: extended,
		CashInflow: domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashInstallmentPayment,
			Amount:      domain.SignedCashAmount(domain.CashInstallmentPayment, req.Amount),
			Description: fmt.Sprintf("Partial payment installment %d - %s", installment.Number, contract.ContractCode),
			OccurredAt:  now,
			ContractID:  &contractRef,
			ActorID:     actorID,
			CreatedAt:   now,
		},
		Log: domain.ContractLog{
			LogID:      uuid.New().String(),
			ContractID: contract.ContractID,
			Action:     domain.LogPartialPaid,
			ActorID:    actorID,
			Reason:     fmt.Sprintf("Partial payment of %s. Due date moved from %s to %s", req.Amount, oldDue.Format(time.DateOnly), newDue.Format(time.DateOnly)),
			CreatedAt:  now,
		},
	}

	if err := s.contractRepo.SavePartialPayment(ctx, persist); err != nil {
		logger.Error("Failed to persist partial payment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to persist partial payment: %w", err)
	}

	logger.Info("Partial payment recorded", slog.String("installment_id", installmentID), slog.String("amount", req.Amount.String()))

	for i := range siblings {
		if siblings[i].InstallmentID == installmentID {
			siblings[i] = extended
		}
	}
	return s.buildContractResponse(contract, siblings, today), nil
}

// CancelContract cancels a contract and flips all of its open installments to
// CANCELLED. Cancellation is sticky: only ReopenContract reverts it.
func (s *loanService) CancelContract(ctx context.Context, contractID string, reason string, notes string, admin domain.AdminCapability) (*dto.ContractResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !admin.Valid() {
		return nil, apperrors.ErrForbidden
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", apperrors.ErrValidation)
	}

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status == domain.ContractCancelled || contract.Status == domain.ContractRenegotiated {
		return nil, fmt.Errorf("%w: contract is %s", ErrContractNotCancellable, contract.Status)
	}

	installments, err := s.contractRepo.FindInstallmentsByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}

	now := time.Now()
	actorID := admin.GrantedTo()

	cancelled := *contract
	cancelled.Status = domain.ContractCancelled
	cancelled.Cancellation = &domain.Cancellation{
		CancelledAt: now,
		CancelledBy: actorID,
		Reason:      reason,
		Notes:       notes,
	}
	cancelled.LastUpdatedAt = now
	cancelled.LastUpdatedBy = actorID

	var flipped []domain.Installment
	for _, inst := range installments {
		if inst.Status != domain.InstallmentOpen {
			continue
		}
		inst.Status = domain.InstallmentCancelled
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = actorID
		flipped = append(flipped, inst)
	}

	change := portsrepo.LifecycleChange{
		Contract:     cancelled,
		Installments: flipped,
		Log: domain.ContractLog{
			LogID:      uuid.New().String(),
			ContractID: contractID,
			Action:     domain.LogCancelled,
			ActorID:    actorID,
			Reason:     reason,
			Notes:      notes,
			CreatedAt:  now,
		},
	}
	if err := s.contractRepo.UpdateLifecycle(ctx, change); err != nil {
		logger.Error("Failed to cancel contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to cancel contract: %w", err)
	}

	logger.Info("Contract cancelled", slog.String("contract_id", contractID), slog.String("reason", reason))

	refreshed, err := s.contractRepo.FindInstallmentsByContractID(ctx, contractID)
	if err != nil {
		refreshed = installments
	}
	return s.buildContractResponse(&cancelled, refreshed, now), nil
}

// ReopenContract reverts a cancellation: cancelled installments return to
// OPEN and the status is re-derived from the restored schedule.
func (s *loanService) ReopenContract(ctx context.Context, contractID string, admin domain.AdminCapability, today time.Time) (*dto.ContractResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !admin.Valid() {
		return nil, apperrors.ErrForbidden
	}

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractCancelled {
		return nil, fmt.Errorf("%w: contract is %s", ErrContractNotCancelled, contract.Status)
	}

	installments, err := s.contractRepo.FindInstallmentsByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}

	now := time.Now()
	actorID := admin.GrantedTo()

	var restored []domain.Installment
	all := make([]domain.Installment, len(installments))
	copy(all, installments)
	for i, inst := range all {
		if inst.Status != domain.InstallmentCancelled {
			continue
		}
		inst.Status = domain.InstallmentOpen
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = actorID
		all[i] = inst
		restored = append(restored, inst)
	}

	reopened := *contract
	reopened.Cancellation = nil
	reopened.Status = domain.ContractActive
	reopened.Status = reopened.DeriveStatus(all, today)
	reopened.LastUpdatedAt = now
	reopened.LastUpdatedBy = actorID

	change := portsrepo.LifecycleChange{
		Contract:     reopened,
		Installments: restored,
		Log: domain.ContractLog{
			LogID:      uuid.New().String(),
			ContractID: contractID,
			Action:     domain.LogReopened,
			ActorID:    actorID,
			CreatedAt:  now,
		},
	}
	if err := s.contractRepo.UpdateLifecycle(ctx, change); err != nil {
		logger.Error("Failed to reopen contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to reopen contract: %w", err)
	}

	logger.Info("Contract reopened", slog.String("contract_id", contractID))
	return s.buildContractResponse(&reopened, all, today), nil
}

// ensureAccount returns the owner's ledger account, creating it with a zero
// balance on first use. Partners are client-like ledger holders, so the same
// helper serves both.
func ensureAccount(ctx context.Context, ledgerRepo portsrepo.LedgerRepositoryFacade, ownerID string, actorID string, now time.Time) (*domain.LedgerAccount, error) {
	account, err := ledgerRepo.FindAccountByClientID(ctx, ownerID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account of %s: %w", ownerID, err)
	}

	created := domain.LedgerAccount{
		AccountID:   uuid.New().String(),
		ClientID:    ownerID,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := ledgerRepo.CreateAccount(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create account of %s: %w", ownerID, err)
	}
	return &created, nil
}

func (s *loanService) buildContractResponse(contract *domain.LoanContract, installments []domain.Installment, today time.Time) *dto.ContractResponse {
	lines := make([]dto.InstallmentResponse, len(installments))
	for i := range installments {
		due := installments[i].Accrue(contract, today)
		lines[i] = dto.ToInstallmentResponse(&installments[i], due)
	}
	resp := dto.ToContractResponse(contract, lines)
	return &resp
}
