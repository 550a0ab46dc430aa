package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
)

// autoDebitService runs the batch collection of due installments against
// client account balances. Contracts are processed concurrently on a bounded
// worker pool; installments of one contract stay sequential so the
// payment-order rule holds.
type autoDebitService struct {
	contractRepo portsrepo.ContractRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	poolSize     int
}

// NewAutoDebitService creates a new AutoDebitService. poolSize bounds the
// number of contracts processed concurrently.
func NewAutoDebitService(contractRepo portsrepo.ContractRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, poolSize int) portssvc.AutoDebitSvc {
	if poolSize <= 0 {
		poolSize = 4
	}
	return &autoDebitService{
		contractRepo: contractRepo,
		ledgerRepo:   ledgerRepo,
		poolSize:     poolSize,
	}
}

// Ensure autoDebitService implements the portssvc.AutoDebitSvc interface
var _ portssvc.AutoDebitSvc = (*autoDebitService)(nil)

// Run debits every OPEN installment due on or before the reference date whose
// client account covers the accrued due. Insufficient balance skips the
// installment and, because collection is sequential per contract, all later
// installments of that contract in the same run.
func (s *autoDebitService) Run(ctx context.Context, req dto.RunAutoDebitRequest, admin domain.AdminCapability) (*dto.AutoDebitRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !admin.Valid() {
		return nil, apperrors.ErrForbidden
	}

	refDate := req.ReferenceDate
	if refDate.IsZero() {
		refDate = time.Now()
	}
	refDate = domain.DateOnly(refDate)

	due, err := s.contractRepo.ListDueInstallments(ctx, refDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list due installments: %w", err)
	}

	byContract := make(map[string][]domain.Installment)
	for _, inst := range due {
		byContract[inst.ContractID] = append(byContract[inst.ContractID], inst)
	}
	for id := range byContract {
		batch := byContract[id]
		sort.Slice(batch, func(i, j int) bool { return batch[i].Number < batch[j].Number })
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		items   []dto.AutoDebitItemResult
		debited int
		skipped int
		failed  int
		total   = decimal.Zero
	)

	actorID := admin.GrantedTo()
	for contractID := range byContract {
		batch := byContract[contractID]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results := s.processContract(ctx, contractID, batch, refDate, actorID)
			mu.Lock()
			defer mu.Unlock()
			for _, r := range results {
				items = append(items, r)
				switch {
				case r.Debited:
					debited++
					total = total.Add(r.AmountDue)
				case r.Reason == reasonInsufficientBalance || r.Reason == reasonEarlierSkipped:
					skipped++
				default:
					failed++
				}
			}
		})
		if submitErr != nil {
			wg.Done()
			logger.Error("Failed to submit auto-debit task", slog.String("error", submitErr.Error()), slog.String("contract_id", contractID))
		}
	}
	wg.Wait()

	logger.Info("Auto-debit run completed",
		slog.Time("reference_date", refDate),
		slog.Int("candidates", len(due)),
		slog.Int("debited", debited),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)

	return &dto.AutoDebitRunResponse{
		ReferenceDate: refDate,
		Candidates:    len(due),
		Debited:       debited,
		Skipped:       skipped,
		Failed:        failed,
		TotalDebited:  total,
		Items:         items,
	}, nil
}

const (
	reasonInsufficientBalance = "insufficient account balance"
	reasonEarlierSkipped      = "earlier installment not collected"
	reasonNoAccount           = "client has no account"
)

// processContract collects one contract's due installments in schedule order,
// stopping at the first one the account cannot cover.
func (s *autoDebitService) processContract(ctx context.Context, contractID string, batch []domain.Installment, refDate time.Time, actorID string) []dto.AutoDebitItemResult {
	logger := middleware.GetLoggerFromCtx(ctx)
	results := make([]dto.AutoDebitItemResult, 0, len(batch))

	contract, err := s.contractRepo.FindContractByID(ctx, contractID)
	if err != nil {
		for _, inst := range batch {
			results = append(results, itemResult(inst, decimal.Zero, false, err.Error()))
		}
		return results
	}

	account, err := s.ledgerRepo.FindAccountByClientID(ctx, contract.ClientID)
	if err != nil {
		for _, inst := range batch {
			due := inst.Accrue(contract, refDate)
			results = append(results, itemResult(inst, due.Total, false, reasonNoAccount))
		}
		return results
	}

	remaining := account.Balance
	blocked := false
	collected := 0
	for _, inst := range batch {
		due := inst.Accrue(contract, refDate)
		if blocked {
			results = append(results, itemResult(inst, due.Total, false, reasonEarlierSkipped))
			continue
		}
		if remaining.LessThan(due.Total) {
			blocked = true
			results = append(results, itemResult(inst, due.Total, false, reasonInsufficientBalance))
			continue
		}

		now := time.Now()
		paymentDate := domain.DateOnly(refDate)
		paidAmount := due.Total

		paid := inst
		paid.Status = domain.InstallmentPaid
		paid.PaymentDate = &paymentDate
		paid.PaidAmount = &paidAmount
		paid.LastUpdatedAt = now
		paid.LastUpdatedBy = actorID

		contractRef := contract.ContractID
		instRef := inst.InstallmentID
		persist := portsrepo.AutoDebitPersist{
			Installment: paid,
			ClientDebit: domain.LedgerMovement{
				MovementID:    uuid.New().String(),
				AccountID:     account.AccountID,
				Direction:     domain.MovementDebit,
				Origin:        domain.OriginInstallmentPayment,
				Amount:        paidAmount,
				Description:   fmt.Sprintf("Auto-debit installment %d/%d - %s", inst.Number, contract.InstallmentCount, contract.ContractCode),
				OccurredAt:    now,
				ContractID:    &contractRef,
				InstallmentID: &instRef,
				AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
			},
			Log: domain.ContractLog{
				LogID:      uuid.New().String(),
				ContractID: contract.ContractID,
				Action:     domain.LogPaid,
				ActorID:    actorID,
				Reason:     fmt.Sprintf("Auto-debit installment %d: %s", inst.Number, paidAmount),
				CreatedAt:  now,
			},
		}
		if err := s.contractRepo.SaveAutoDebit(ctx, persist); err != nil {
			logger.Error("Auto-debit failed", slog.String("error", err.Error()), slog.String("installment_id", inst.InstallmentID))
			blocked = true
			results = append(results, itemResult(inst, due.Total, false, err.Error()))
			continue
		}

		remaining = remaining.Sub(paidAmount)
		collected++
		results = append(results, itemResult(inst, paidAmount, true, ""))
	}

	if collected > 0 {
		s.refreshContractStatus(ctx, contract, refDate, actorID)
	}

	return results
}

// refreshContractStatus re-derives the contract status from the full schedule
// after the batch settled installments, so a fully collected contract flips
// to SETTLED the same way a manual payment does.
func (s *autoDebitService) refreshContractStatus(ctx context.Context, contract *domain.LoanContract, refDate time.Time, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	all, err := s.contractRepo.FindInstallmentsByContractID(ctx, contract.ContractID)
	if err != nil {
		logger.Warn("Failed to refresh schedule after auto-debit", slog.String("error", err.Error()), slog.String("contract_id", contract.ContractID))
		return
	}
	derived := contract.DeriveStatus(all, refDate)
	if derived == contract.Status {
		return
	}
	if err := s.contractRepo.UpdateContractStatus(ctx, contract.ContractID, derived, actorID, time.Now()); err != nil {
		logger.Warn("Failed to persist derived contract status after auto-debit", slog.String("error", err.Error()), slog.String("contract_id", contract.ContractID))
	}
}

func itemResult(inst domain.Installment, amount decimal.Decimal, debited bool, reason string) dto.AutoDebitItemResult {
	return dto.AutoDebitItemResult{
		ContractID:    inst.ContractID,
		InstallmentID: inst.InstallmentID,
		Number:        inst.Number,
		AmountDue:     amount,
		Debited:       debited,
		Reason:        reason,
	}
}
