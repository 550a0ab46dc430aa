package repositories

import (
	"context"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// ContractCreation is the atomic unit persisted when a contract is opened:
// the contract row, its full schedule, the principal credited to the client's
// ledger account and the audit log. When an immediate cash-out was requested
// the debit and the negative cash-book entry commit in the same transaction.
// ContractCode is assigned by the repository from the per-prefix yearly
// sequence.
type ContractCreation struct {
	CodePrefix   string
	Contract     domain.LoanContract
	Installments []domain.Installment
	ClientCredit domain.LedgerMovement
	CashOutDebit *domain.LedgerMovement
	CashOutEntry *domain.CashBookEntry
	Log          domain.ContractLog
}

// PaymentPersist is the atomic unit of a full installment payment: the
// settled installment, the cash inflow, and when the contract has a partner
// the commission cash outflow plus the partner ledger credit.
type PaymentPersist struct {
	Installment   domain.Installment
	CashInflow    domain.CashBookEntry
	CommissionOut *domain.CashBookEntry
	PartnerCredit *domain.LedgerMovement
	Log           domain.ContractLog
}

// PartialPaymentPersist is the atomic unit of a partial payment: the
// installment stays open with a pushed due date, the received amount enters
// the cash book, and the event is logged.
type PartialPaymentPersist struct {
	Installment domain.Installment
	CashInflow  domain.CashBookEntry
	Log         domain.ContractLog
}

// RenegotiationPersist is the atomic unit of a renegotiation: the source
// contract flips to RENEGOTIATED with its open installments liquidated, the
// replacement contract is created with its schedule, the settlement debits and
// the new-principal credit hit the client ledger, and the cash book records
// the absorption inflow and the new disbursement outflow. The settlement
// debits may take the account balance negative transiently; the credit
// restores it within the same transaction.
type RenegotiationPersist struct {
	Original               domain.LoanContract
	LiquidatedInstallments []domain.Installment
	SettlementMovements    []domain.LedgerMovement
	PrincipalCredit        domain.LedgerMovement

	NewCodePrefix   string
	NewContract     domain.LoanContract
	NewInstallments []domain.Installment

	CashEntries []domain.CashBookEntry
	Logs        []domain.ContractLog
}

// AutoDebitPersist is the atomic unit of one batch collection: the settled
// installment and the debit on the client's ledger account. No cash book
// entry is written; the money never leaves the client's sub-ledger.
type AutoDebitPersist struct {
	Installment domain.Installment
	ClientDebit domain.LedgerMovement
	Log         domain.ContractLog
}

// LifecycleChange is the atomic unit of a cancel or reopen: the contract row
// with its new status and cancellation stamp, the installments whose status
// flips with it, and the audit log.
type LifecycleChange struct {
	Contract     domain.LoanContract
	Installments []domain.Installment
	Log          domain.ContractLog
}

// ContractReader defines read operations for contract data
type ContractReader interface {
	// FindContractByID retrieves a contract by its unique identifier.
	FindContractByID(ctx context.Context, contractID string) (*domain.LoanContract, error)

	// FindContractByCode retrieves a contract by its human-facing code.
	FindContractByCode(ctx context.Context, contractCode string) (*domain.LoanContract, error)

	// ListContracts retrieves contracts filtered by client and/or status.
	ListContracts(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanContract, error)

	// FindInstallmentsByContractID retrieves a contract's full schedule ordered by number.
	FindInstallmentsByContractID(ctx context.Context, contractID string) ([]domain.Installment, error)

	// FindInstallmentByID retrieves a single installment.
	FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error)

	// ListDueInstallments retrieves OPEN installments due on or before the
	// reference date, joined with their contracts, for batch collection.
	ListDueInstallments(ctx context.Context, refDate time.Time) ([]domain.Installment, error)
}

// ContractWriter defines write operations for contract data
type ContractWriter interface {
	// CreateContract persists a new contract with its schedule, disbursement
	// and log in one transaction, assigning the contract code from the
	// per-prefix yearly sequence. Returns the persisted contract.
	CreateContract(ctx context.Context, creation ContractCreation) (*domain.LoanContract, error)

	// SavePayment persists a full installment payment atomically. It re-checks
	// under lock that the installment is still OPEN and that no earlier OPEN
	// installment exists on the same contract.
	SavePayment(ctx context.Context, persist PaymentPersist) error

	// SavePartialPayment persists a partial payment atomically. The
	// installment must still be OPEN under lock.
	SavePartialPayment(ctx context.Context, persist PartialPaymentPersist) error

	// SaveRenegotiation persists a full renegotiation atomically, assigning
	// the new contract's code from the renegotiation sequence. Returns the
	// persisted replacement contract.
	SaveRenegotiation(ctx context.Context, persist RenegotiationPersist) (*domain.LoanContract, error)

	// SaveAutoDebit persists one batch collection atomically: the installment
	// settles and the client account is debited under lock. Returns
	// apperrors.ErrInsufficientFunds when the balance no longer covers the
	// amount at commit time.
	SaveAutoDebit(ctx context.Context, persist AutoDebitPersist) error

	// UpdateLifecycle persists a cancel or reopen atomically.
	UpdateLifecycle(ctx context.Context, change LifecycleChange) error

	// UpdateContractStatus persists a derived status change (ACTIVE, OVERDUE,
	// SETTLED) without touching installments.
	UpdateContractStatus(ctx context.Context, contractID string, status domain.ContractStatus, updatedBy string, updatedAt time.Time) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
// This is a facade for clients that need access to all operations
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}

// ContractRepositoryWithTx extends ContractRepositoryFacade with transaction capabilities
type ContractRepositoryWithTx interface {
	ContractRepositoryFacade
	TransactionManager
}
