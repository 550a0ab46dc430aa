package services

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// CashBookReaderSvc defines read operations for the company cash book
type CashBookReaderSvc interface {
	// GetBalance computes the current company cash balance.
	GetBalance(ctx context.Context) (*dto.CashBalanceResponse, error)

	// ListEntries retrieves cash book entries matching the filter.
	ListEntries(ctx context.Context, params dto.ListCashEntriesParams) (*dto.ListCashEntriesResponse, error)
}

// CashBookWriterSvc defines write operations for the company cash book
type CashBookWriterSvc interface {
	// CreateEntry appends a manual cash book entry. The category determines
	// the persisted sign; outflows are rejected when they would require more
	// cash than the book holds.
	CreateEntry(ctx context.Context, req dto.CreateCashEntryRequest, actorID string, sourceIP string) (*dto.CashEntryResponse, error)

	// ReverseEntry appends a sign-inverted entry linked to the original.
	// Requires an admin capability.
	ReverseEntry(ctx context.Context, entryID string, reason string, admin domain.AdminCapability, sourceIP string) (*dto.CashEntryResponse, error)
}

// CashBookSvcFacade combines all cash-book service interfaces
// This is a facade for clients that need access to all operations
type CashBookSvcFacade interface {
	CashBookReaderSvc
	CashBookWriterSvc
}
