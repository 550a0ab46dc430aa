package services

import (
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/platform/config"
)

// NewServiceContainer wires the application services with their repository
// dependencies and returns the container handed to the HTTP layer.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Authorization = NewAuthorizationService(cfg.AdminSecretHash)

	// The loan service is wired first since the proposal workflow opens
	// contracts through it.
	container.Loan = NewLoanService(repos.ContractRepo, repos.LedgerRepo, repos.CashBookRepo, repos.ContractLogRepo)
	container.Renegotiation = NewRenegotiationService(repos.ContractRepo, repos.LedgerRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.CashBookRepo)
	container.CashBook = NewCashBookService(repos.CashBookRepo)
	container.Proposal = NewProposalService(repos.ProposalRepo, container.Loan)
	container.AutoDebit = NewAutoDebitService(repos.ContractRepo, repos.LedgerRepo, cfg.AutoDebitPoolSize)

	return container
}
