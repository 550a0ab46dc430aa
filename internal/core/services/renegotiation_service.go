package services

import (
	"context"
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
	ErrNotRenegotiable      = fmt.Errorf("%w: contract cannot be renegotiated in its current state", apperrors.ErrConflict)
	ErrNothingToRenegotiate = fmt.Errorf("%w: contract has no open installments", apperrors.ErrConflict)
	ErrDownPaymentTooLarge  = fmt.Errorf("%w: down payment must be smaller than the open balance", apperrors.ErrValidation)
)

// renegotiationService implements the renegotiation protocol: the open
// balance of a contract is absorbed into a replacement contract, net of an
// optional down payment.
type renegotiationService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
}

// NewRenegotiationService creates a new RenegotiationService.
func NewRenegotiationService(contractRepo portsrepo.ContractRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.RenegotiationSvc {
	return &renegotiationService{
		contractRepo: contractRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Ensure renegotiationService implements the portssvc.RenegotiationSvc interface
var _ portssvc.RenegotiationSvc = (*renegotiationService)(nil)

// Renegotiate liquidates the source contract's open installments at their
// nominal value and opens the replacement contract in one transaction.
//
// Money flow: the open balance enters the cash book as an absorption inflow,
// the new principal leaves as a disbursement outflow, so the net cash effect
// equals the down payment received.
func (s *renegotiationService) Renegotiate(ctx context.Context, contractID string, req dto.RenegotiateContractRequest, actorID string, today time.Time) (*dto.RenegotiationResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.DownPayment.IsNegative() {
		return nil, fmt.Errorf("%w: down payment must not be negative", apperrors.ErrValidation)
	}

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	installments, err := s.contractRepo.FindInstallmentsByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch installments: %w", err)
	}

	contract.Status = contract.DeriveStatus(installments, today)
	if !contract.Renegotiable() {
		return nil, fmt.Errorf("%w: contract is %s", ErrNotRenegotiable, contract.Status)
	}

	openBalance := decimal.Zero
	var open []domain.Installment
	for _, inst := range installments {
		if inst.Status == domain.InstallmentOpen {
			openBalance = openBalance.Add(inst.Amount)
			open = append(open, inst)
		}
	}
	if len(open) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNothingToRenegotiate, contract.ContractCode)
	}

	newPrincipal := openBalance.Sub(req.DownPayment).Round(2)
	if !newPrincipal.IsPositive() {
		return nil, fmt.Errorf("%w: open balance %s, down payment %s", ErrDownPaymentTooLarge, openBalance, req.DownPayment)
	}

	schedule, err := amortization.Simulate(newPrincipal, req.MonthlyRatePercent, req.InstallmentCount, req.FirstDueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account, err := ensureAccount(ctx, s.ledgerRepo, contract.ClientID, actorID, now)
	if err != nil {
		return nil, err
	}
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID}
	paymentDate := domain.DateOnly(today)
	oldRef := contract.ContractID

	// Source side: contract flips to RENEGOTIATED and every open installment
	// is liquidated at its nominal value, frozen as the paid amount.
	original := *contract
	original.Status = domain.ContractRenegotiated
	original.LastUpdatedAt = now
	original.LastUpdatedBy = actorID

	liquidated := make([]domain.Installment, len(open))
	var movements []domain.LedgerMovement
	for i, inst := range open {
		nominal := inst.Amount
		inst.Status = domain.InstallmentLiquidated
		inst.PaymentDate = &paymentDate
		inst.PaidAmount = &nominal
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = actorID
		liquidated[i] = inst

		instRef := inst.InstallmentID
		movements = append(movements, domain.LedgerMovement{
			MovementID:    uuid.New().String(),
			AccountID:     account.AccountID,
			Direction:     domain.MovementDebit,
			Origin:        domain.OriginRenegotiationSettlement,
			Amount:        nominal,
			Description:   fmt.Sprintf("Renegotiation settlement installment %d - %s", inst.Number, contract.ContractCode),
			OccurredAt:    now,
			ContractID:    &oldRef,
			InstallmentID: &instRef,
			AuditFields:   audit,
		})
	}

	// Replacement side.
	newContract := domain.LoanContract{
		ContractID:             uuid.New().String(),
		ClientID:               contract.ClientID,
		InstallmentCount:       req.InstallmentCount,
		OriginatingContractID:  &oldRef,
		PartnerID:              contract.PartnerID,
		CommissionPercent:      contract.CommissionPercent,
		Principal:              newPrincipal,
		MonthlyRatePercent:     req.MonthlyRatePercent,
		FirstDueDate:           domain.DateOnly(req.FirstDueDate),
		AppliedInstallment:     schedule.AppliedInstallment,
		TotalContract:          schedule.TotalApplied,
		TotalInterest:          schedule.TotalInterest,
		RoundingAdjustment:     schedule.Adjustment,
		HasLateFee:             contract.HasLateFee,
		LateFeePercent:         contract.LateFeePercent,
		MoratoryMonthlyPercent: contract.MoratoryMonthlyPercent,
		Status:                 domain.ContractActive,
		Notes:                  req.Notes,
		AuditFields:            audit,
	}

	newInstallments := make([]domain.Installment, len(schedule.Installments))
	for i, line := range schedule.Installments {
		newInstallments[i] = domain.Installment{
			InstallmentID: uuid.New().String(),
			ContractID:    newContract.ContractID,
			Number:        line.Number,
			DueDate:       line.DueDate,
			Amount:        line.Amount,
			Status:        domain.InstallmentOpen,
			AuditFields:   audit,
		}
	}

	newRef := newContract.ContractID
	persist := portsrepo.RenegotiationPersist{
		Original:               original,
		LiquidatedInstallments: liquidated,
		SettlementMovements:    movements,
		PrincipalCredit: domain.LedgerMovement{
			MovementID:  uuid.New().String(),
			AccountID:   account.AccountID,
			Direction:   domain.MovementCredit,
			Origin:      domain.OriginLoanDisbursement,
			Amount:      newPrincipal,
			Description: fmt.Sprintf("Renegotiation credit - replaces %s", contract.ContractCode),
			OccurredAt:  now,
			ContractID:  &newRef,
			AuditFields: audit,
		},
		NewCodePrefix:   domain.ContractPrefixRenegotiation,
		NewContract:     newContract,
		NewInstallments: newInstallments,
		CashEntries: []domain.CashBookEntry{
			{
				EntryID:     uuid.New().String(),
				Category:    domain.CashRenegotiationAbsorption,
				Amount:      domain.SignedCashAmount(domain.CashRenegotiationAbsorption, openBalance),
				Description: fmt.Sprintf("Renegotiation absorption - %s", contract.ContractCode),
				OccurredAt:  now,
				ContractID:  &oldRef,
				ActorID:     actorID,
				CreatedAt:   now,
			},
			{
				EntryID:     uuid.New().String(),
				Category:    domain.CashLoanDisbursement,
				Amount:      domain.SignedCashAmount(domain.CashLoanDisbursement, newPrincipal),
				Description: fmt.Sprintf("Renegotiation disbursement - replaces %s", contract.ContractCode),
				OccurredAt:  now,
				ContractID:  &newRef,
				ActorID:     actorID,
				CreatedAt:   now,
			},
		},
		Logs: []domain.ContractLog{
			{
				LogID:      uuid.New().String(),
				ContractID: contract.ContractID,
				Action:     domain.LogRenegotiated,
				ActorID:    actorID,
				Reason:     fmt.Sprintf("Open balance %s absorbed, down payment %s", openBalance, req.DownPayment),
				CreatedAt:  now,
			},
			{
				LogID:      uuid.New().String(),
				ContractID: newContract.ContractID,
				Action:     domain.LogCreated,
				ActorID:    actorID,
				Reason:     fmt.Sprintf("Created by renegotiation of %s", contract.ContractCode),
				CreatedAt:  now,
			},
		},
	}

	persisted, err := s.contractRepo.SaveRenegotiation(ctx, persist)
	if err != nil {
		logger.Error("Failed to persist renegotiation", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to persist renegotiation: %w", err)
	}

	logger.Info("Contract renegotiated",
		slog.String("contract_id", contractID),
		slog.String("new_contract_id", persisted.ContractID),
		slog.String("open_balance", openBalance.String()),
		slog.String("new_principal", newPrincipal.String()),
	)

	newLines := make([]dto.InstallmentResponse, len(newInstallments))
	for i := range newInstallments {
		newLines[i] = dto.ToInstallmentResponse(&newInstallments[i], newInstallments[i].Accrue(persisted, today))
	}
	return &dto.RenegotiationResponse{
		OriginalContract: dto.ToContractResponse(&original, nil),
		NewContract:      dto.ToContractResponse(persisted, newLines),
		OpenBalance:      openBalance,
		DownPayment:      req.DownPayment,
		NewPrincipal:     newPrincipal,
	}, nil
}
