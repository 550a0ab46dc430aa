package services

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// LedgerReaderSvc defines read operations for client accounts
type LedgerReaderSvc interface {
	// GetAccountByClientID retrieves a client's account.
	GetAccountByClientID(ctx context.Context, clientID string) (*dto.LedgerAccountResponse, error)

	// GetStatement retrieves an account with a page of its movements.
	GetStatement(ctx context.Context, accountID string, params dto.ListMovementsParams) (*dto.StatementResponse, error)
}

// LedgerWriterSvc defines write operations for client accounts
type LedgerWriterSvc interface {
	// EnsureAccount returns the client's account, creating it on first use.
	EnsureAccount(ctx context.Context, clientID string, actorID string) (*dto.LedgerAccountResponse, error)

	// Deposit credits the client account and records the cash inflow.
	Deposit(ctx context.Context, accountID string, req dto.DepositRequest, actorID string) (*dto.LedgerMovementResponse, error)

	// Withdraw debits the client account after checking both the account
	// balance and the company cash balance, and records the cash outflow.
	Withdraw(ctx context.Context, accountID string, req dto.WithdrawRequest, actorID string) (*dto.LedgerMovementResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
