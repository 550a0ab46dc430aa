package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// MovementWithCashEntry pairs a client-account movement with the cash-book
// entry that mirrors it on the company side. Deposits and withdrawals are the
// same business event seen from both ledgers, so both rows commit together.
type MovementWithCashEntry struct {
	Movement  domain.LedgerMovement
	CashEntry domain.CashBookEntry
}

// LedgerReader defines read operations for client account data
type LedgerReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindAccountByClientID retrieves the account owned by a client.
	FindAccountByClientID(ctx context.Context, clientID string) (*domain.LedgerAccount, error)

	// ListMovementsByAccountID retrieves a paginated statement for an account
	// using token-based pagination, newest first. It returns the movements, a
	// token for the next page, and an error.
	ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error)
}

// LedgerWriter defines write operations for client account data
type LedgerWriter interface {
	// CreateAccount persists a new client account with a zero balance.
	CreateAccount(ctx context.Context, account domain.LedgerAccount) error

	// SaveMovementWithCashEntry appends a movement, updates the account
	// balance and writes the mirroring cash-book entry in one transaction.
	// The account row is locked, the new balance and the movement's running
	// balance are computed under the lock, and all three writes commit
	// together. Debits that would take the balance negative are rejected with
	// apperrors.ErrInsufficientFunds. Returns the persisted movement.
	SaveMovementWithCashEntry(ctx context.Context, persist MovementWithCashEntry) (*domain.LedgerMovement, error)

	// FindAccountByIDForUpdate retrieves and locks an account row within an
	// existing transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.LedgerAccount, error)

	// UpdateAccountBalanceInTx sets an account's balance within an existing
	// transaction. The caller must hold the row lock.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// InsertMovementInTx appends a movement row within an existing
	// transaction. RunningBalance must already be set by the caller.
	InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
// This is a facade for clients that need access to all operations
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
