package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	cashBookRepo := newPgxCashBookRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, cashBookRepo)
	contractLogRepo := newPgxContractLogRepository(dbPool)
	contractRepo := newPgxContractRepository(dbPool, ledgerRepo, cashBookRepo, contractLogRepo)
	proposalRepo := newPgxProposalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ContractRepo:    contractRepo,
		LedgerRepo:      ledgerRepo,
		CashBookRepo:    cashBookRepo,
		ContractLogRepo: contractLogRepo,
		ProposalRepo:    proposalRepo,
	}
}
