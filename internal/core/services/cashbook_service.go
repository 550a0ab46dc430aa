package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
)

var (
	ErrUnknownCashCategory = fmt.Errorf("%w: unknown cash book category", apperrors.ErrValidation)
	ErrReversalOfReversal  = fmt.Errorf("%w: reversal entries cannot be reversed", apperrors.ErrConflict)
)

// cashBookService implements the company cash book operations.
type cashBookService struct {
	cashRepo portsrepo.CashBookRepositoryFacade
}

// NewCashBookService creates a new CashBookService.
func NewCashBookService(cashRepo portsrepo.CashBookRepositoryFacade) portssvc.CashBookSvcFacade {
	return &cashBookService{cashRepo: cashRepo}
}

// Ensure cashBookService implements the portssvc.CashBookSvcFacade interface
var _ portssvc.CashBookSvcFacade = (*cashBookService)(nil)

// GetBalance computes the current company cash balance.
func (s *cashBookService) GetBalance(ctx context.Context) (*dto.CashBalanceResponse, error) {
	balance, err := s.cashRepo.CurrentBalance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	return &dto.CashBalanceResponse{Balance: balance, AsOf: time.Now()}, nil
}

// ListEntries retrieves cash book entries matching the filter.
func (s *cashBookService) ListEntries(ctx context.Context, params dto.ListCashEntriesParams) (*dto.ListCashEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	entries, err := s.cashRepo.ListEntries(ctx, portsrepo.CashEntryFilter{
		From:     params.From,
		To:       params.To,
		Category: params.Category,
		Limit:    limit,
		Offset:   params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cash entries: %w", err)
	}
	return &dto.ListCashEntriesResponse{Entries: dto.ToCashEntryResponses(entries)}, nil
}

// CreateEntry appends a manual cash book entry. The category alone decides
// the persisted sign; an outflow larger than the current balance is rejected.
func (s *cashBookService) CreateEntry(ctx context.Context, req dto.CreateCashEntryRequest, actorID string, sourceIP string) (*dto.CashEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.KnownCashCategory(req.Category) || req.Category == domain.CashReversal {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCashCategory, req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be a positive magnitude", apperrors.ErrValidation)
	}

	amount := domain.SignedCashAmount(req.Category, req.Amount)
	if req.Category.IsOutflow() {
		balance, err := s.cashRepo.CurrentBalance(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read cash balance: %w", err)
		}
		if balance.LessThan(amount.Neg()) {
			logger.Warn("Cash outflow rejected", slog.String("category", string(req.Category)), slog.String("amount", amount.String()), slog.String("balance", balance.String()))
			return nil, fmt.Errorf("%w: balance %s does not cover %s", apperrors.ErrInsufficientFunds, balance, amount.Neg())
		}
	}

	now := time.Now()
	occurredAt := req.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	entry := domain.CashBookEntry{
		EntryID:     uuid.New().String(),
		Category:    req.Category,
		Amount:      amount,
		Description: req.Description,
		OccurredAt:  occurredAt,
		ContractID:  req.ContractID,
		ActorID:     actorID,
		SourceIP:    sourceIP,
		CreatedAt:   now,
	}
	if err := s.cashRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save cash entry", slog.String("error", err.Error()), slog.String("category", string(req.Category)))
		return nil, fmt.Errorf("failed to save cash entry: %w", err)
	}

	logger.Info("Cash entry recorded", slog.String("entry_id", entry.EntryID), slog.String("category", string(req.Category)), slog.String("amount", amount.String()))
	resp := dto.ToCashEntryResponse(&entry)
	return &resp, nil
}

// ReverseEntry appends a sign-inverted entry linked to the original. Entries
// are never edited in place; correction is always a new linked entry.
func (s *cashBookService) ReverseEntry(ctx context.Context, entryID string, reason string, admin domain.AdminCapability, sourceIP string) (*dto.CashEntryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !admin.Valid() {
		return nil, apperrors.ErrForbidden
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.cashRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Category == domain.CashReversal {
		return nil, fmt.Errorf("%w: %s", ErrReversalOfReversal, entryID)
	}

	now := time.Now()
	originalRef := original.EntryID
	reversal := domain.CashBookEntry{
		EntryID:         uuid.New().String(),
		Category:        domain.CashReversal,
		Amount:          original.Amount.Neg(),
		Description:     fmt.Sprintf("Reversal of %s: %s", original.Description, reason),
		OccurredAt:      now,
		ContractID:      original.ContractID,
		ReversesEntryID: &originalRef,
		ActorID:         admin.GrantedTo(),
		SourceIP:        sourceIP,
		CreatedAt:       now,
	}
	if err := s.cashRepo.SaveReversal(ctx, *original, reversal); err != nil {
		logger.Error("Failed to save reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversal: %w", err)
	}

	logger.Info("Cash entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	resp := dto.ToCashEntryResponse(&reversal)
	return &resp, nil
}
