package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// CashEntryFilter narrows cash book listings.
type CashEntryFilter struct {
	From     *time.Time
	To       *time.Time
	Category string
	Limit    int
	Offset   int
}

// CashBookReader defines read operations for the company cash book
type CashBookReader interface {
	// FindEntryByID retrieves a cash book entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.CashBookEntry, error)

	// ListEntries retrieves cash book entries matching the filter, newest first.
	ListEntries(ctx context.Context, filter CashEntryFilter) ([]domain.CashBookEntry, error)

	// CurrentBalance computes the running sum of all entries.
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)
}

// CashBookWriter defines write operations for the company cash book
type CashBookWriter interface {
	// SaveEntry appends one cash book entry. Entries are never updated.
	SaveEntry(ctx context.Context, entry domain.CashBookEntry) error

	// SaveReversal appends a reversal entry linked to the original,
	// verifying under lock that the original was not already reversed.
	SaveReversal(ctx context.Context, original domain.CashBookEntry, reversal domain.CashBookEntry) error

	// InsertEntryInTx appends an entry row within an existing transaction.
	InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.CashBookEntry) error
}

// CashBookRepositoryFacade combines all cash-book repository interfaces
// This is a facade for clients that need access to all operations
type CashBookRepositoryFacade interface {
	CashBookReader
	CashBookWriter
}

// CashBookRepositoryWithTx extends CashBookRepositoryFacade with transaction capabilities
type CashBookRepositoryWithTx interface {
	CashBookRepositoryFacade
	TransactionManager
}
