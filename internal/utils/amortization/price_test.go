package amortization_test

import (
	"testing"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/amortization"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestRoundUpToHundred(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1789.00", "1800"},
		{"1800.00", "1800"},
		{"1801.00", "1900"},
		{"367.21", "400"},
		{"0.01", "100"},
		{"100.00", "100"},
	}
	for _, tc := range cases {
		got := amortization.RoundUpToHundred(d(tc.in))
		assert.True(t, got.Equal(d(tc.want)), "RoundUpToHundred(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestPriceInstallment(t *testing.T) {
	t.Run("standard rate", func(t *testing.T) {
		pmt, err := amortization.PriceInstallment(d("1000.00"), d("5.00"), 3)
		require.NoError(t, err)
		assert.True(t, pmt.Equal(d("367.21")), "got %s", pmt)
	})

	t.Run("zero rate divides evenly", func(t *testing.T) {
		pmt, err := amortization.PriceInstallment(d("1200.00"), d("0.00"), 4)
		require.NoError(t, err)
		assert.True(t, pmt.Equal(d("300.00")), "got %s", pmt)
	})

	t.Run("non-positive count rejected", func(t *testing.T) {
		_, err := amortization.PriceInstallment(d("1000.00"), d("5.00"), 0)
		require.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestSimulateScenario(t *testing.T) {
	// 1000.00 at 5%/month over 3 months starting 2024-01-10.
	s, err := amortization.Simulate(d("1000.00"), d("5.00"), 3, date(2024, time.January, 10))
	require.NoError(t, err)

	assert.True(t, s.RawInstallment.Equal(d("367.21")), "raw %s", s.RawInstallment)
	assert.True(t, s.AppliedInstallment.Equal(d("400")), "applied %s", s.AppliedInstallment)
	assert.True(t, s.TotalApplied.Equal(d("1200")), "total %s", s.TotalApplied)
	assert.True(t, s.Adjustment.Equal(d("98.37")), "adjustment %s", s.Adjustment)

	require.Len(t, s.Installments, 3)
	assert.Equal(t, date(2024, time.January, 10), s.Installments[0].DueDate)
	assert.Equal(t, date(2024, time.February, 10), s.Installments[1].DueDate)
	assert.Equal(t, date(2024, time.March, 10), s.Installments[2].DueDate)
	for _, line := range s.Installments {
		assert.True(t, line.Amount.Equal(d("400")))
	}
}

func TestSimulateProperties(t *testing.T) {
	cases := []struct {
		principal string
		rate      string
		n         int
	}{
		{"1000.00", "5.00", 3},
		{"30000.00", "10.00", 12},
		{"500.00", "0.00", 7},
		{"99999.99", "3.75", 48},
		{"250.00", "15.00", 1},
	}
	for _, tc := range cases {
		s, err := amortization.Simulate(d(tc.principal), d(tc.rate), tc.n, date(2024, time.June, 15))
		require.NoError(t, err)

		// Applied installment is a whole multiple of 100 and never below raw.
		assert.True(t, s.AppliedInstallment.Mod(decimal.NewFromInt(100)).IsZero(),
			"applied %s not a multiple of 100", s.AppliedInstallment)
		assert.True(t, s.AppliedInstallment.GreaterThanOrEqual(s.RawInstallment))

		// Schedule lines sum back to the applied total.
		sum := decimal.Zero
		for _, line := range s.Installments {
			sum = sum.Add(line.Amount)
		}
		assert.True(t, sum.Equal(s.TotalApplied), "n=%d sum=%s total=%s", tc.n, sum, s.TotalApplied)
		assert.True(t, s.TotalApplied.Sub(s.TotalRaw).Equal(s.Adjustment))
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	_, err := amortization.Simulate(d("0.00"), d("5.00"), 3, date(2024, time.January, 1))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = amortization.Simulate(d("1000.00"), d("-1.00"), 3, date(2024, time.January, 1))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = amortization.Simulate(d("1000.00"), d("5.00"), 361, date(2024, time.January, 1))
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAddMonthsClampsDay(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), amortization.AddMonths(date(2025, time.January, 31), 1))
	assert.Equal(t, date(2024, time.February, 29), amortization.AddMonths(date(2024, time.January, 31), 1))
	assert.Equal(t, date(2025, time.March, 31), amortization.AddMonths(date(2025, time.January, 31), 2))
	assert.Equal(t, date(2025, time.April, 30), amortization.AddMonths(date(2025, time.March, 31), 1))
	assert.Equal(t, date(2026, time.January, 15), amortization.AddMonths(date(2025, time.December, 15), 1))
}

func TestSimulateDueDatesOnClampedSchedule(t *testing.T) {
	s, err := amortization.Simulate(d("3000.00"), d("4.00"), 3, date(2025, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 31), s.Installments[0].DueDate)
	assert.Equal(t, date(2025, time.February, 28), s.Installments[1].DueDate)
	assert.Equal(t, date(2025, time.March, 31), s.Installments[2].DueDate)
}
