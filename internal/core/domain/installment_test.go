package domain_test

import (
	"testing"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func lateFeeContract() *domain.LoanContract {
	return &domain.LoanContract{
		ContractID:             "c1",
		Status:                 domain.ContractActive,
		HasLateFee:             true,
		LateFeePercent:         d("2.00"),
		MoratoryMonthlyPercent: d("1.00"),
	}
}

func TestAccrueOverdueInstallment(t *testing.T) {
	// 400.00 nominal, 10 days late, 2% late fee, 1%/month moratory interest.
	inst := domain.Installment{
		Number:  1,
		DueDate: date(2024, time.March, 1),
		Amount:  d("400.00"),
		Status:  domain.InstallmentOpen,
	}
	due := inst.Accrue(lateFeeContract(), date(2024, time.March, 11))

	assert.Equal(t, 10, due.DaysLate)
	assert.True(t, due.Penalty.Equal(d("8.00")), "penalty %s", due.Penalty)
	assert.True(t, due.Interest.Equal(d("1.33")), "interest %s", due.Interest)
	assert.True(t, due.Total.Equal(d("409.33")), "total %s", due.Total)
}

func TestAccrueNotYetDue(t *testing.T) {
	inst := domain.Installment{
		DueDate: date(2024, time.March, 1),
		Amount:  d("400.00"),
		Status:  domain.InstallmentOpen,
	}

	for _, today := range []time.Time{
		date(2024, time.February, 20),
		date(2024, time.March, 1), // due today is not late
	} {
		due := inst.Accrue(lateFeeContract(), today)
		assert.Equal(t, 0, due.DaysLate)
		assert.True(t, due.Total.Equal(d("400.00")))
		assert.True(t, due.Penalty.IsZero())
		assert.True(t, due.Interest.IsZero())
	}
}

func TestAccrueIgnoresNonOpenInstallments(t *testing.T) {
	for _, status := range []domain.InstallmentStatus{
		domain.InstallmentPaid,
		domain.InstallmentLiquidated,
		domain.InstallmentCancelled,
	} {
		inst := domain.Installment{
			DueDate: date(2024, time.January, 1),
			Amount:  d("400.00"),
			Status:  status,
		}
		due := inst.Accrue(lateFeeContract(), date(2024, time.June, 1))
		assert.True(t, due.Total.Equal(d("400.00")), "status %s", status)
	}
}

func TestAccrueMonotonicInToday(t *testing.T) {
	inst := domain.Installment{
		DueDate: date(2024, time.January, 15),
		Amount:  d("1300.00"),
		Status:  domain.InstallmentOpen,
	}
	contract := lateFeeContract()

	prev := decimal.Zero
	for day := 0; day < 90; day++ {
		today := date(2024, time.January, 15).AddDate(0, 0, day)
		total := inst.Accrue(contract, today).Total
		assert.True(t, total.GreaterThanOrEqual(prev), "due decreased at day %d: %s < %s", day, total, prev)
		prev = total
	}
}

func TestAccrueWithoutLateFeeFlag(t *testing.T) {
	contract := lateFeeContract()
	contract.HasLateFee = false

	inst := domain.Installment{
		DueDate: date(2024, time.March, 1),
		Amount:  d("400.00"),
		Status:  domain.InstallmentOpen,
	}
	due := inst.Accrue(contract, date(2024, time.March, 11))
	assert.True(t, due.Penalty.IsZero())
	assert.True(t, due.Total.Equal(d("401.33")), "total %s", due.Total)
}

func TestDeriveStatus(t *testing.T) {
	today := date(2024, time.May, 10)

	open := func(due time.Time) domain.Installment {
		return domain.Installment{Status: domain.InstallmentOpen, DueDate: due, Amount: d("100.00")}
	}
	paid := domain.Installment{Status: domain.InstallmentPaid, DueDate: date(2024, time.April, 10), Amount: d("100.00")}

	t.Run("no installments means active", func(t *testing.T) {
		c := &domain.LoanContract{Status: domain.ContractActive}
		assert.Equal(t, domain.ContractActive, c.DeriveStatus(nil, today))
	})

	t.Run("no open installments means settled", func(t *testing.T) {
		c := &domain.LoanContract{Status: domain.ContractActive}
		assert.Equal(t, domain.ContractSettled, c.DeriveStatus([]domain.Installment{paid}, today))
	})

	t.Run("past-due open installment means overdue", func(t *testing.T) {
		c := &domain.LoanContract{Status: domain.ContractActive}
		insts := []domain.Installment{paid, open(date(2024, time.May, 9))}
		assert.Equal(t, domain.ContractOverdue, c.DeriveStatus(insts, today))
	})

	t.Run("future open installments mean active", func(t *testing.T) {
		c := &domain.LoanContract{Status: domain.ContractActive}
		insts := []domain.Installment{open(date(2024, time.May, 10)), open(date(2024, time.June, 10))}
		assert.Equal(t, domain.ContractActive, c.DeriveStatus(insts, today))
	})

	t.Run("cancellation is sticky", func(t *testing.T) {
		c := &domain.LoanContract{Status: domain.ContractCancelled}
		insts := []domain.Installment{open(date(2024, time.January, 1))}
		assert.Equal(t, domain.ContractCancelled, c.DeriveStatus(insts, today))
	})
}

func TestCommissionFor(t *testing.T) {
	partner := "p1"
	c := &domain.LoanContract{PartnerID: &partner, CommissionPercent: d("10.00")}
	assert.True(t, c.CommissionFor(d("1000.00")).Equal(d("100.00")))

	c.CommissionPercent = d("12.50")
	assert.True(t, c.CommissionFor(d("409.33")).Equal(d("51.17")))

	noPartner := &domain.LoanContract{CommissionPercent: d("10.00")}
	assert.True(t, noPartner.CommissionFor(d("1000.00")).IsZero())
}
