package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Test Suite Setup ---

type LoanServiceTestSuite struct {
	suite.Suite
	mockContractRepo *MockContractRepository
	mockLedgerRepo   *MockLedgerRepository
	mockCashRepo     *MockCashBookRepository
	mockLogRepo      *MockContractLogRepository
	service          portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockCashRepo = new(MockCashBookRepository)
	suite.mockLogRepo = new(MockContractLogRepository)
	suite.service = services.NewLoanService(suite.mockContractRepo, suite.mockLedgerRepo, suite.mockCashRepo, suite.mockLogRepo)
}

func (suite *LoanServiceTestSuite) buildContract(installmentCount int) *domain.LoanContract {
	return &domain.LoanContract{
		ContractID:         uuid.NewString(),
		ContractCode:       "CTR-2026-000001",
		ClientID:           uuid.NewString(),
		InstallmentCount:   installmentCount,
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		FirstDueDate:       date(2026, time.October, 1),
		AppliedInstallment: dec("400"),
		TotalContract:      dec("1200"),
		TotalInterest:      dec("200"),
		RoundingAdjustment: dec("98.37"),
		Status:             domain.ContractActive,
	}
}

func (suite *LoanServiceTestSuite) buildInstallment(contractID string, number int, dueDate time.Time, amount string) domain.Installment {
	return domain.Installment{
		InstallmentID: uuid.NewString(),
		ContractID:    contractID,
		Number:        number,
		DueDate:       dueDate,
		Amount:        dec(amount),
		Status:        domain.InstallmentOpen,
	}
}

// --- Simulation ---

func (suite *LoanServiceTestSuite) TestSimulate_PriceTableValues() {
	ctx := context.Background()
	resp, err := suite.service.Simulate(ctx, dto.SimulateLoanRequest{
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.RawInstallment.Equal(dec("367.21")), "raw installment %s", resp.RawInstallment)
	suite.True(resp.AppliedInstallment.Equal(dec("400")), "applied installment %s", resp.AppliedInstallment)
	suite.True(resp.TotalContract.Equal(dec("1200")), "total contract %s", resp.TotalContract)
	suite.True(resp.RoundingAdjustment.Equal(dec("98.37")), "adjustment %s", resp.RoundingAdjustment)
	suite.Require().Len(resp.Schedule, 3)
	suite.Equal(date(2026, time.October, 1), resp.Schedule[0].DueDate)
	suite.Equal(date(2026, time.November, 1), resp.Schedule[1].DueDate)
	suite.Equal(date(2026, time.December, 1), resp.Schedule[2].DueDate)
	for _, line := range resp.Schedule {
		suite.True(line.Amount.Equal(dec("400")))
	}
}

func (suite *LoanServiceTestSuite) TestSimulate_ZeroRate() {
	ctx := context.Background()
	resp, err := suite.service.Simulate(ctx, dto.SimulateLoanRequest{
		Principal:          dec("1200"),
		MonthlyRatePercent: decimal.Zero,
		InstallmentCount:   12,
		FirstDueDate:       date(2026, time.October, 15),
	})

	suite.Require().NoError(err)
	suite.True(resp.RawInstallment.Equal(dec("100")))
	suite.True(resp.AppliedInstallment.Equal(dec("100")))
	suite.True(resp.RoundingAdjustment.IsZero())
	suite.True(resp.TotalInterest.IsZero())
}

func (suite *LoanServiceTestSuite) TestSimulate_DayClampAcrossMonths() {
	ctx := context.Background()
	resp, err := suite.service.Simulate(ctx, dto.SimulateLoanRequest{
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.January, 31),
	})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Schedule, 3)
	suite.Equal(date(2026, time.January, 31), resp.Schedule[0].DueDate)
	suite.Equal(date(2026, time.February, 28), resp.Schedule[1].DueDate)
	suite.Equal(date(2026, time.March, 31), resp.Schedule[2].DueDate)
}

func (suite *LoanServiceTestSuite) TestSimulate_TooManyInstallments() {
	ctx := context.Background()
	_, err := suite.service.Simulate(ctx, dto.SimulateLoanRequest{
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   361,
		FirstDueDate:       date(2026, time.October, 1),
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

// --- Contract creation ---

func (suite *LoanServiceTestSuite) TestCreateContract_CreditsPrincipalToClientAccount() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
	}
	account := &domain.LedgerAccount{
		AccountID: uuid.NewString(),
		ClientID:  req.ClientID,
		Balance:   dec("0"),
	}

	suite.mockLedgerRepo.On("FindAccountByClientID", ctx, req.ClientID).Return(account, nil).Once()

	persisted := suite.buildContract(3)
	suite.mockContractRepo.On("CreateContract", ctx, mock.MatchedBy(func(c portsrepo.ContractCreation) bool {
		return c.CodePrefix == domain.ContractPrefixDefault &&
			len(c.Installments) == 3 &&
			c.Contract.AppliedInstallment.Equal(dec("400")) &&
			c.ClientCredit.AccountID == account.AccountID &&
			c.ClientCredit.Direction == domain.MovementCredit &&
			c.ClientCredit.Origin == domain.OriginLoanDisbursement &&
			c.ClientCredit.Amount.Equal(dec("1000")) &&
			c.CashOutDebit == nil &&
			c.CashOutEntry == nil &&
			c.Log.Action == domain.LogCreated
	})).Return(persisted, nil).Once()

	resp, err := suite.service.CreateContract(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Equal("CTR-2026-000001", resp.ContractCode)
	suite.Require().Len(resp.Installments, 3)
	suite.Equal(1, resp.Installments[0].Number)
	suite.True(resp.Installments[0].Amount.Equal(dec("400")))
	suite.Equal(domain.InstallmentOpen, resp.Installments[0].Status)
	suite.mockContractRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	// Without a cash-out the company cash book never gates creation.
	suite.mockCashRepo.AssertNotCalled(suite.T(), "CurrentBalance", mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateContract_CashOutDebitsAccountAndCashBook() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
		CashOut:            dec("400"),
	}
	account := &domain.LedgerAccount{
		AccountID: uuid.NewString(),
		ClientID:  req.ClientID,
		Balance:   dec("0"),
	}

	suite.mockCashRepo.On("CurrentBalance", ctx).Return(dec("5000"), nil).Once()
	suite.mockLedgerRepo.On("FindAccountByClientID", ctx, req.ClientID).Return(account, nil).Once()

	persisted := suite.buildContract(3)
	suite.mockContractRepo.On("CreateContract", ctx, mock.MatchedBy(func(c portsrepo.ContractCreation) bool {
		return c.ClientCredit.Amount.Equal(dec("1000")) &&
			c.CashOutDebit != nil &&
			c.CashOutDebit.AccountID == account.AccountID &&
			c.CashOutDebit.Direction == domain.MovementDebit &&
			c.CashOutDebit.Amount.Equal(dec("400")) &&
			c.CashOutEntry != nil &&
			c.CashOutEntry.Category == domain.CashLoanDisbursement &&
			c.CashOutEntry.Amount.Equal(dec("-400"))
	})).Return(persisted, nil).Once()

	_, err := suite.service.CreateContract(ctx, req, creatorID)

	suite.Require().NoError(err)
	suite.mockContractRepo.AssertExpectations(suite.T())
	suite.mockCashRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCreateContract_CashOutExceedsPrincipal() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
		CashOut:            dec("1500"),
	}

	_, err := suite.service.CreateContract(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockCashRepo.AssertNotCalled(suite.T(), "CurrentBalance", mock.Anything)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "CreateContract", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateContract_CommissionWithoutPartner() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
		CommissionPercent:  dec("10"),
	}

	_, err := suite.service.CreateContract(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "CreateContract", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCreateContract_CommissionOutOfRange() {
	ctx := context.Background()
	partnerID := uuid.NewString()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
		PartnerID:          &partnerID,
		CommissionPercent:  dec("101"),
	}

	_, err := suite.service.CreateContract(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LoanServiceTestSuite) TestCreateContract_InsufficientCashForCashOut() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		ClientID:           uuid.NewString(),
		Principal:          dec("1000"),
		MonthlyRatePercent: dec("5"),
		InstallmentCount:   3,
		FirstDueDate:       date(2026, time.October, 1),
		CashOut:            dec("800"),
	}

	suite.mockCashRepo.On("CurrentBalance", ctx).Return(dec("500"), nil).Once()

	_, err := suite.service.CreateContract(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrInsufficientFunds))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "CreateContract", mock.Anything, mock.Anything)
	suite.mockCashRepo.AssertExpectations(suite.T())
}

// --- Reads ---

func (suite *LoanServiceTestSuite) TestGetContract_DerivesOverdueStatus() {
	ctx := context.Background()
	contract := suite.buildContract(3)
	today := date(2026, time.October, 20)
	installments := []domain.Installment{
		suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400"),
		suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400"),
		suite.buildInstallment(contract.ContractID, 3, date(2026, time.December, 1), "400"),
	}

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return(installments, nil).Once()
	suite.mockContractRepo.On("UpdateContractStatus", ctx, contract.ContractID, domain.ContractOverdue, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := suite.service.GetContract(ctx, contract.ContractID, today)

	suite.Require().NoError(err)
	suite.Equal(domain.ContractOverdue, resp.Status)
	suite.Require().Len(resp.Installments, 3)
	suite.Equal(19, resp.Installments[0].DaysLate)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestGetContract_NotFound() {
	ctx := context.Background()
	contractID := uuid.NewString()
	suite.mockContractRepo.On("FindContractByID", ctx, contractID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetContract(ctx, contractID, time.Now())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrNotFound))
}

func (suite *LoanServiceTestSuite) TestListContracts_ClampsLimit() {
	ctx := context.Background()
	suite.mockContractRepo.On("ListContracts", ctx, "", "", 20, 0).Return([]domain.LoanContract{}, nil).Once()

	_, err := suite.service.ListContracts(ctx, dto.ListContractsParams{Limit: 500})

	suite.Require().NoError(err)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListDueInstallments_AccruesPerLine() {
	ctx := context.Background()
	contract := suite.buildContract(3)
	contract.HasLateFee = true
	contract.LateFeePercent = dec("2")
	contract.MoratoryMonthlyPercent = dec("1")
	today := date(2026, time.October, 11)

	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.October, 11), "400")

	suite.mockContractRepo.On("ListDueInstallments", ctx, today).Return([]domain.Installment{inst1, inst2}, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()

	resp, err := suite.service.ListDueInstallments(ctx, dto.ListDueInstallmentsParams{}, today)

	suite.Require().NoError(err)
	suite.Equal(today, resp.ReferenceDate)
	suite.Require().Len(resp.Installments, 2)
	suite.Equal(contract.ContractCode, resp.Installments[0].ContractCode)
	suite.Equal(10, resp.Installments[0].DaysLate)
	suite.True(resp.Installments[0].TotalDue.Equal(dec("409.33")), "total due %s", resp.Installments[0].TotalDue)
	suite.Equal(0, resp.Installments[1].DaysLate)
	suite.True(resp.Installments[1].TotalDue.Equal(dec("400")))
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListDueInstallments_OverdueOnly() {
	ctx := context.Background()
	contract := suite.buildContract(3)
	today := date(2026, time.October, 11)

	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.October, 11), "400")

	suite.mockContractRepo.On("ListDueInstallments", ctx, today).Return([]domain.Installment{inst1, inst2}, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()

	resp, err := suite.service.ListDueInstallments(ctx, dto.ListDueInstallmentsParams{OverdueOnly: true}, today)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Installments, 1)
	suite.Equal(1, resp.Installments[0].Number)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListDueInstallments_UntilOverridesToday() {
	ctx := context.Background()
	today := date(2026, time.October, 11)
	until := date(2026, time.November, 30)

	suite.mockContractRepo.On("ListDueInstallments", ctx, until).Return([]domain.Installment{}, nil).Once()

	resp, err := suite.service.ListDueInstallments(ctx, dto.ListDueInstallmentsParams{Until: &until}, today)

	suite.Require().NoError(err)
	suite.Equal(until, resp.ReferenceDate)
	suite.Empty(resp.Installments)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

// --- Payment ---

func (suite *LoanServiceTestSuite) TestPayInstallment_OnTimeNoCommission() {
	ctx := context.Background()
	actorID := uuid.NewString()
	contract := suite.buildContract(3)
	today := date(2026, time.October, 1)

	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")
	inst3 := suite.buildInstallment(contract.ContractID, 3, date(2026, time.December, 1), "400")
	siblings := []domain.Installment{inst1, inst2, inst3}

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst1.InstallmentID).Return(&inst1, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return(siblings, nil).Once()
	suite.mockContractRepo.On("SavePayment", ctx, mock.MatchedBy(func(p portsrepo.PaymentPersist) bool {
		return p.Installment.Status == domain.InstallmentPaid &&
			p.Installment.PaidAmount != nil && p.Installment.PaidAmount.Equal(dec("400")) &&
			p.CashInflow.Category == domain.CashInstallmentPayment &&
			p.CashInflow.Amount.Equal(dec("400")) &&
			p.CommissionOut == nil && p.PartnerCredit == nil &&
			p.Log.Action == domain.LogPaid
	})).Return(nil).Once()

	resp, err := suite.service.PayInstallment(ctx, inst1.InstallmentID, dto.PayInstallmentRequest{}, actorID, today)

	suite.Require().NoError(err)
	suite.True(resp.PaidAmount.Equal(dec("400")))
	suite.True(resp.Commission.IsZero())
	suite.Equal(domain.InstallmentPaid, resp.Installment.Status)
	suite.Equal(domain.ContractActive, resp.Contract.Status)
	suite.mockContractRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "FindAccountByClientID", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestPayInstallment_LateAccrual() {
	ctx := context.Background()
	actorID := uuid.NewString()
	contract := suite.buildContract(1)
	contract.HasLateFee = true
	contract.LateFeePercent = dec("2")
	contract.MoratoryMonthlyPercent = dec("1")

	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	today := date(2026, time.October, 11) // 10 days late

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst}, nil).Once()
	suite.mockContractRepo.On("SavePayment", ctx, mock.MatchedBy(func(p portsrepo.PaymentPersist) bool {
		return p.Installment.PaidAmount != nil && p.Installment.PaidAmount.Equal(dec("409.33")) &&
			p.CashInflow.Amount.Equal(dec("409.33"))
	})).Return(nil).Once()
	suite.mockContractRepo.On("UpdateContractStatus", ctx, contract.ContractID, domain.ContractSettled, actorID, mock.Anything).Return(nil).Once()

	resp, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{}, actorID, today)

	suite.Require().NoError(err)
	suite.True(resp.PaidAmount.Equal(dec("409.33")), "paid %s", resp.PaidAmount)
	suite.Equal(domain.ContractSettled, resp.Contract.Status)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestPayInstallment_OverridesAmountAndDate() {
	ctx := context.Background()
	actorID := uuid.NewString()
	contract := suite.buildContract(1)
	contract.HasLateFee = true
	contract.LateFeePercent = dec("2")
	contract.MoratoryMonthlyPercent = dec("1")

	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	today := date(2026, time.October, 11)
	negotiated := dec("380")
	agreedDate := date(2026, time.October, 5)

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst}, nil).Once()
	suite.mockContractRepo.On("SavePayment", ctx, mock.MatchedBy(func(p portsrepo.PaymentPersist) bool {
		return p.Installment.PaidAmount != nil && p.Installment.PaidAmount.Equal(negotiated) &&
			p.Installment.PaymentDate != nil && p.Installment.PaymentDate.Equal(agreedDate) &&
			p.CashInflow.Amount.Equal(negotiated)
	})).Return(nil).Once()
	suite.mockContractRepo.On("UpdateContractStatus", ctx, contract.ContractID, domain.ContractSettled, actorID, mock.Anything).Return(nil).Once()

	resp, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{
		PaidAmount:  &negotiated,
		PaymentDate: &agreedDate,
	}, actorID, today)

	suite.Require().NoError(err)
	suite.True(resp.PaidAmount.Equal(negotiated), "paid %s", resp.PaidAmount)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestPayInstallment_RejectsNonPositiveOverride() {
	ctx := context.Background()
	contract := suite.buildContract(1)
	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	zero := decimal.Zero

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst}, nil).Once()

	_, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{PaidAmount: &zero}, uuid.NewString(), date(2026, time.October, 1))

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestPayInstallment_CommissionSplit() {
	ctx := context.Background()
	actorID := uuid.NewString()
	partnerID := uuid.NewString()
	contract := suite.buildContract(1)
	contract.PartnerID = &partnerID
	contract.CommissionPercent = dec("10")

	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "1000")
	today := date(2026, time.October, 1)
	partnerAccount := &domain.LedgerAccount{
		AccountID: uuid.NewString(),
		ClientID:  partnerID,
		Balance:   dec("50"),
	}

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst}, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByClientID", ctx, partnerID).Return(partnerAccount, nil).Once()
	suite.mockContractRepo.On("SavePayment", ctx, mock.MatchedBy(func(p portsrepo.PaymentPersist) bool {
		return p.CashInflow.Amount.Equal(dec("1000")) &&
			p.CommissionOut != nil &&
			p.CommissionOut.Category == domain.CashPartnerCommission &&
			p.CommissionOut.Amount.Equal(dec("-100")) &&
			p.PartnerCredit != nil &&
			p.PartnerCredit.AccountID == partnerAccount.AccountID &&
			p.PartnerCredit.Direction == domain.MovementCredit &&
			p.PartnerCredit.Amount.Equal(dec("100"))
	})).Return(nil).Once()
	suite.mockContractRepo.On("UpdateContractStatus", ctx, contract.ContractID, domain.ContractSettled, actorID, mock.Anything).Return(nil).Once()

	resp, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{}, actorID, today)

	suite.Require().NoError(err)
	suite.True(resp.Commission.Equal(dec("100")), "commission %s", resp.Commission)
	suite.mockContractRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestPayInstallment_CreatesPartnerAccountOnFirstCommission() {
	ctx := context.Background()
	actorID := uuid.NewString()
	partnerID := uuid.NewString()
	contract := suite.buildContract(1)
	contract.PartnerID = &partnerID
	contract.CommissionPercent = dec("10")

	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "1000")
	today := date(2026, time.October, 1)

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst}, nil).Once()
	suite.mockLedgerRepo.On("FindAccountByClientID", ctx, partnerID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockLedgerRepo.On("CreateAccount", ctx, mock.MatchedBy(func(a domain.LedgerAccount) bool {
		return a.ClientID == partnerID && a.Balance.IsZero()
	})).Return(nil).Once()
	suite.mockContractRepo.On("SavePayment", ctx, mock.AnythingOfType("repositories.PaymentPersist")).Return(nil).Once()
	suite.mockContractRepo.On("UpdateContractStatus", ctx, contract.ContractID, domain.ContractSettled, actorID, mock.Anything).Return(nil).Once()

	_, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{}, actorID, today)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestPayInstallment_BlockedByEarlierOpen() {
	ctx := context.Background()
	contract := suite.buildContract(3)
	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst2.InstallmentID).Return(&inst2, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst1, inst2}, nil).Once()

	_, err := suite.service.PayInstallment(ctx, inst2.InstallmentID, dto.PayInstallmentRequest{}, uuid.NewString(), date(2026, time.November, 1))

	suite.Require().Error(err)
	suite.True(errors.Is(err, services.ErrEarlierInstallmentOpen))
	suite.True(errors.Is(err, apperrors.ErrConflict))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestPayInstallment_AlreadyPaid() {
	ctx := context.Background()
	contract := suite.buildContract(1)
	inst := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst.Status = domain.InstallmentPaid

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst.InstallmentID).Return(&inst, nil).Once()

	_, err := suite.service.PayInstallment(ctx, inst.InstallmentID, dto.PayInstallmentRequest{}, uuid.NewString(), time.Now())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrConflict))
}

// --- Partial payment ---

func (suite *LoanServiceTestSuite) TestPayPartial_PushesDueDate() {
	ctx := context.Background()
	actorID := uuid.NewString()
	contract := suite.buildContract(3)
	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")
	newDue := date(2026, time.October, 20)

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst1.InstallmentID).Return(&inst1, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst1, inst2}, nil).Once()
	suite.mockContractRepo.On("SavePartialPayment", ctx, mock.MatchedBy(func(p portsrepo.PartialPaymentPersist) bool {
		return p.Installment.Status == domain.InstallmentOpen &&
			p.Installment.DueDate.Equal(newDue) &&
			p.Installment.PaidAmount == nil &&
			p.CashInflow.Amount.Equal(dec("150")) &&
			p.Log.Action == domain.LogPartialPaid
	})).Return(nil).Once()

	resp, err := suite.service.PayPartial(ctx, inst1.InstallmentID, dto.PayPartialRequest{
		Amount:     dec("150"),
		NewDueDate: newDue,
	}, actorID, date(2026, time.October, 5))

	suite.Require().NoError(err)
	suite.Require().Len(resp.Installments, 2)
	suite.Equal(newDue, resp.Installments[0].DueDate)
	suite.Equal(domain.InstallmentOpen, resp.Installments[0].Status)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestPayPartial_NewDueDateMustPrecedeNext() {
	ctx := context.Background()
	contract := suite.buildContract(3)
	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")

	suite.mockContractRepo.On("FindInstallmentByID", ctx, inst1.InstallmentID).Return(&inst1, nil).Once()
	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst1, inst2}, nil).Once()

	_, err := suite.service.PayPartial(ctx, inst1.InstallmentID, dto.PayPartialRequest{
		Amount:     dec("150"),
		NewDueDate: date(2026, time.November, 1),
	}, uuid.NewString(), date(2026, time.October, 5))

	suite.Require().Error(err)
	suite.True(errors.Is(err, services.ErrDueDatePastNext))
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SavePartialPayment", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestPayPartial_NonPositiveAmount() {
	ctx := context.Background()
	_, err := suite.service.PayPartial(ctx, uuid.NewString(), dto.PayPartialRequest{
		Amount:     decimal.Zero,
		NewDueDate: date(2026, time.October, 20),
	}, uuid.NewString(), time.Now())

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

// --- Cancel / reopen ---

func (suite *LoanServiceTestSuite) TestCancelContract_Success() {
	ctx := context.Background()
	admin := domain.NewAdminCapability(uuid.NewString())
	contract := suite.buildContract(3)
	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")
	inst2.Status = domain.InstallmentPaid

	cancelledList := []domain.Installment{inst1, inst2}
	cancelledList[0].Status = domain.InstallmentCancelled

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst1, inst2}, nil).Once()
	suite.mockContractRepo.On("UpdateLifecycle", ctx, mock.MatchedBy(func(c portsrepo.LifecycleChange) bool {
		return c.Contract.Status == domain.ContractCancelled &&
			c.Contract.Cancellation != nil &&
			c.Contract.Cancellation.Reason == "fraud investigation" &&
			len(c.Installments) == 1 && // only the open one flips
			c.Installments[0].Status == domain.InstallmentCancelled &&
			c.Log.Action == domain.LogCancelled
	})).Return(nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return(cancelledList, nil).Once()

	resp, err := suite.service.CancelContract(ctx, contract.ContractID, "fraud investigation", "", admin)

	suite.Require().NoError(err)
	suite.Equal(domain.ContractCancelled, resp.Status)
	suite.Require().NotNil(resp.Cancellation)
	suite.Equal(admin.GrantedTo(), resp.Cancellation.CancelledBy)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCancelContract_RequiresCapability() {
	ctx := context.Background()
	_, err := suite.service.CancelContract(ctx, uuid.NewString(), "reason", "", domain.AdminCapability{})

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrForbidden))
	suite.mockContractRepo.AssertNotCalled(suite.T(), "FindContractByID", mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCancelContract_RequiresReason() {
	ctx := context.Background()
	admin := domain.NewAdminCapability(uuid.NewString())
	_, err := suite.service.CancelContract(ctx, uuid.NewString(), "", "", admin)

	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
}

func (suite *LoanServiceTestSuite) TestCancelContract_AlreadyCancelled() {
	ctx := context.Background()
	admin := domain.NewAdminCapability(uuid.NewString())
	contract := suite.buildContract(3)
	contract.Status = domain.ContractCancelled

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()

	_, err := suite.service.CancelContract(ctx, contract.ContractID, "reason", "", admin)

	suite.Require().Error(err)
	suite.True(errors.Is(err, services.ErrContractNotCancellable))
	suite.True(errors.Is(err, apperrors.ErrConflict))
}

func (suite *LoanServiceTestSuite) TestReopenContract_RestoresCancelledInstallments() {
	ctx := context.Background()
	admin := domain.NewAdminCapability(uuid.NewString())
	today := date(2026, time.September, 1)
	contract := suite.buildContract(2)
	contract.Status = domain.ContractCancelled
	contract.Cancellation = &domain.Cancellation{CancelledBy: admin.GrantedTo(), Reason: "mistake"}

	inst1 := suite.buildInstallment(contract.ContractID, 1, date(2026, time.October, 1), "400")
	inst1.Status = domain.InstallmentCancelled
	inst2 := suite.buildInstallment(contract.ContractID, 2, date(2026, time.November, 1), "400")
	inst2.Status = domain.InstallmentPaid

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()
	suite.mockContractRepo.On("FindInstallmentsByContractID", ctx, contract.ContractID).Return([]domain.Installment{inst1, inst2}, nil).Once()
	suite.mockContractRepo.On("UpdateLifecycle", ctx, mock.MatchedBy(func(c portsrepo.LifecycleChange) bool {
		return c.Contract.Status == domain.ContractActive &&
			c.Contract.Cancellation == nil &&
			len(c.Installments) == 1 &&
			c.Installments[0].Status == domain.InstallmentOpen &&
			c.Log.Action == domain.LogReopened
	})).Return(nil).Once()

	resp, err := suite.service.ReopenContract(ctx, contract.ContractID, admin, today)

	suite.Require().NoError(err)
	suite.Equal(domain.ContractActive, resp.Status)
	suite.Nil(resp.Cancellation)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestReopenContract_NotCancelled() {
	ctx := context.Background()
	admin := domain.NewAdminCapability(uuid.NewString())
	contract := suite.buildContract(2)

	suite.mockContractRepo.On("FindContractByID", ctx, contract.ContractID).Return(contract, nil).Once()

	_, err := suite.service.ReopenContract(ctx, contract.ContractID, admin, time.Now())

	suite.Require().Error(err)
	suite.True(errors.Is(err, services.ErrContractNotCancelled))
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
