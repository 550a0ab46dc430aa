package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
)

// MockContractRepository is a mock type for the ContractRepositoryFacade interface
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.LoanContract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanContract), args.Error(1)
}

func (m *MockContractRepository) FindContractByCode(ctx context.Context, contractCode string) (*domain.LoanContract, error) {
	args := m.Called(ctx, contractCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanContract), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanContract, error) {
	args := m.Called(ctx, clientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanContract), args.Error(1)
}

func (m *MockContractRepository) FindInstallmentsByContractID(ctx context.Context, contractID string) ([]domain.Installment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockContractRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Installment), args.Error(1)
}

func (m *MockContractRepository) ListDueInstallments(ctx context.Context, refDate time.Time) ([]domain.Installment, error) {
	args := m.Called(ctx, refDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockContractRepository) CreateContract(ctx context.Context, creation portsrepo.ContractCreation) (*domain.LoanContract, error) {
	args := m.Called(ctx, creation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanContract), args.Error(1)
}

func (m *MockContractRepository) SavePayment(ctx context.Context, persist portsrepo.PaymentPersist) error {
	args := m.Called(ctx, persist)
	return args.Error(0)
}

func (m *MockContractRepository) SavePartialPayment(ctx context.Context, persist portsrepo.PartialPaymentPersist) error {
	args := m.Called(ctx, persist)
	return args.Error(0)
}

func (m *MockContractRepository) SaveRenegotiation(ctx context.Context, persist portsrepo.RenegotiationPersist) (*domain.LoanContract, error) {
	args := m.Called(ctx, persist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanContract), args.Error(1)
}

func (m *MockContractRepository) SaveAutoDebit(ctx context.Context, persist portsrepo.AutoDebitPersist) error {
	args := m.Called(ctx, persist)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateLifecycle(ctx context.Context, change portsrepo.LifecycleChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateContractStatus(ctx context.Context, contractID string, status domain.ContractStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, contractID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByClientID(ctx context.Context, clientID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	var movements []domain.LedgerMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.LedgerMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

func (m *MockLedgerRepository) CreateAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerRepository) SaveMovementWithCashEntry(ctx context.Context, persist portsrepo.MovementWithCashEntry) (*domain.LedgerMovement, error) {
	args := m.Called(ctx, persist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerMovement), args.Error(1)
}

func (m *MockLedgerRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, accountID, newBalance, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	args := m.Called(ctx, tx, movement)
	return args.Error(0)
}

// MockCashBookRepository is a mock type for the CashBookRepositoryFacade interface
type MockCashBookRepository struct {
	mock.Mock
}

func (m *MockCashBookRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashBookEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashBookEntry), args.Error(1)
}

func (m *MockCashBookRepository) ListEntries(ctx context.Context, filter portsrepo.CashEntryFilter) ([]domain.CashBookEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashBookEntry), args.Error(1)
}

func (m *MockCashBookRepository) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCashBookRepository) SaveEntry(ctx context.Context, entry domain.CashBookEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCashBookRepository) SaveReversal(ctx context.Context, original domain.CashBookEntry, reversal domain.CashBookEntry) error {
	args := m.Called(ctx, original, reversal)
	return args.Error(0)
}

func (m *MockCashBookRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.CashBookEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

// MockContractLogRepository is a mock type for the ContractLogRepositoryFacade interface
type MockContractLogRepository struct {
	mock.Mock
}

func (m *MockContractLogRepository) ListLogsByContractID(ctx context.Context, contractID string) ([]domain.ContractLog, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContractLog), args.Error(1)
}

func (m *MockContractLogRepository) SaveLog(ctx context.Context, log domain.ContractLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockContractLogRepository) InsertLogInTx(ctx context.Context, tx pgx.Tx, log domain.ContractLog) error {
	args := m.Called(ctx, tx, log)
	return args.Error(0)
}

// MockProposalRepository is a mock type for the ProposalRepositoryFacade interface
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.LoanProposal, error) {
	args := m.Called(ctx, proposalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanProposal), args.Error(1)
}

func (m *MockProposalRepository) ListProposals(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanProposal, error) {
	args := m.Called(ctx, clientID, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LoanProposal), args.Error(1)
}

func (m *MockProposalRepository) SaveProposal(ctx context.Context, proposal domain.LoanProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *MockProposalRepository) UpdateProposalVerdict(ctx context.Context, proposal domain.LoanProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}
