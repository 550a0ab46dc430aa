package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// ContractLogReader defines read operations for the contract audit trail
type ContractLogReader interface {
	// ListLogsByContractID retrieves a contract's audit trail, oldest first.
	ListLogsByContractID(ctx context.Context, contractID string) ([]domain.ContractLog, error)
}

// ContractLogWriter defines write operations for the contract audit trail
type ContractLogWriter interface {
	// SaveLog appends one audit trail entry. Logs are never updated or deleted.
	SaveLog(ctx context.Context, log domain.ContractLog) error

	// InsertLogInTx appends a log row within an existing transaction.
	InsertLogInTx(ctx context.Context, tx pgx.Tx, log domain.ContractLog) error
}

// ContractLogRepositoryFacade combines the audit trail repository interfaces
type ContractLogRepositoryFacade interface {
	ContractLogReader
	ContractLogWriter
}
