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
)

// ledgerService implements the client account operations: deposits,
// withdrawals and statements.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	cashRepo   portsrepo.CashBookRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, cashRepo portsrepo.CashBookRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		cashRepo:   cashRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetAccountByClientID retrieves a client's account.
func (s *ledgerService) GetAccountByClientID(ctx context.Context, clientID string) (*dto.LedgerAccountResponse, error) {
	account, err := s.ledgerRepo.FindAccountByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToLedgerAccountResponse(account)
	return &resp, nil
}

// GetStatement retrieves an account with a page of its movements.
func (s *ledgerService) GetStatement(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.StatementResponse, error) {
	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	movements, nextToken, err := s.ledgerRepo.ListMovementsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return &dto.StatementResponse{
		Account:   dto.ToLedgerAccountResponse(account),
		Movements: dto.ToLedgerMovementResponses(movements),
		NextToken: nextToken,
	}, nil
}

// EnsureAccount returns the client's account, creating it on first use.
func (s *ledgerService) EnsureAccount(ctx context.Context, clientID string, actorID string) (*dto.LedgerAccountResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.ledgerRepo.FindAccountByClientID(ctx, clientID)
	if err == nil {
		resp := dto.ToLedgerAccountResponse(account)
		return &resp, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	now := time.Now()
	created := domain.LedgerAccount{
		AccountID:   uuid.New().String(),
		ClientID:    clientID,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
	}
	if err := s.ledgerRepo.CreateAccount(ctx, created); err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", created.AccountID), slog.String("client_id", clientID))
	resp := dto.ToLedgerAccountResponse(&created)
	return &resp, nil
}

// Deposit credits the client account and records the cash inflow.
func (s *ledgerService) Deposit(ctx context.Context, accountID string, req dto.DepositRequest, actorID string) (*dto.LedgerMovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Deposit to account of client %s", account.ClientID)
	}

	amount := req.Amount.Round(2)
	persist := portsrepo.MovementWithCashEntry{
		Movement: domain.LedgerMovement{
			MovementID:  uuid.New().String(),
			AccountID:   accountID,
			Direction:   domain.MovementCredit,
			Origin:      domain.OriginDeposit,
			Amount:      amount,
			Description: description,
			OccurredAt:  now,
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
		},
		CashEntry: domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashClientDeposit,
			Amount:      domain.SignedCashAmount(domain.CashClientDeposit, amount),
			Description: description,
			OccurredAt:  now,
			ActorID:     actorID,
			CreatedAt:   now,
		},
	}
	persisted, err := s.ledgerRepo.SaveMovementWithCashEntry(ctx, persist)
	if err != nil {
		logger.Error("Failed to save deposit", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save deposit: %w", err)
	}

	logger.Info("Deposit recorded", slog.String("account_id", accountID), slog.String("amount", amount.String()))
	resp := dto.ToLedgerMovementResponse(persisted)
	return &resp, nil
}

// Withdraw debits the client account. The payout is rejected when either the
// account balance or the company cash balance does not cover it.
func (s *ledgerService) Withdraw(ctx context.Context, accountID string, req dto.WithdrawRequest, actorID string) (*dto.LedgerMovementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}
	amount := req.Amount.Round(2)

	account, err := s.ledgerRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.Balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: account balance %s does not cover %s", apperrors.ErrInsufficientFunds, account.Balance, amount)
	}

	cashBalance, err := s.cashRepo.CurrentBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cash balance: %w", err)
	}
	if cashBalance.LessThan(amount) {
		logger.Warn("Withdrawal rejected for insufficient cash", slog.String("amount", amount.String()), slog.String("cash_balance", cashBalance.String()))
		return nil, fmt.Errorf("%w: cash balance %s does not cover %s", apperrors.ErrInsufficientFunds, cashBalance, amount)
	}

	now := time.Now()
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Withdrawal from account of client %s", account.ClientID)
	}

	persist := portsrepo.MovementWithCashEntry{
		Movement: domain.LedgerMovement{
			MovementID:  uuid.New().String(),
			AccountID:   accountID,
			Direction:   domain.MovementDebit,
			Origin:      domain.OriginWithdrawal,
			Amount:      amount,
			Description: description,
			OccurredAt:  now,
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actorID, LastUpdatedAt: now, LastUpdatedBy: actorID},
		},
		CashEntry: domain.CashBookEntry{
			EntryID:     uuid.New().String(),
			Category:    domain.CashClientWithdrawal,
			Amount:      domain.SignedCashAmount(domain.CashClientWithdrawal, amount),
			Description: description,
			OccurredAt:  now,
			ActorID:     actorID,
			CreatedAt:   now,
		},
	}
	persisted, err := s.ledgerRepo.SaveMovementWithCashEntry(ctx, persist)
	if err != nil {
		logger.Error("Failed to save withdrawal", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to save withdrawal: %w", err)
	}

	logger.Info("Withdrawal recorded", slog.String("account_id", accountID), slog.String("amount", amount.String()))
	resp := dto.ToLedgerMovementResponse(persisted)
	return &resp, nil
}
