package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/utils/amortization"
)

// SimulateLoanRequest defines the inputs of a Price-table simulation.
type SimulateLoanRequest struct {
	Principal          decimal.Decimal `json:"principal" binding:"required"`
	MonthlyRatePercent decimal.Decimal `json:"monthlyRatePercent"`
	InstallmentCount   int             `json:"installmentCount" binding:"required,min=1,max=360"`
	FirstDueDate       time.Time       `json:"firstDueDate" binding:"required"`
}

// ScheduleLineResponse is one line of a simulated amortization schedule.
type ScheduleLineResponse struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
}

// SimulationResponse defines the data returned for a loan simulation.
type SimulationResponse struct {
	Principal          decimal.Decimal        `json:"principal"`
	MonthlyRatePercent decimal.Decimal        `json:"monthlyRatePercent"`
	InstallmentCount   int                    `json:"installmentCount"`
	RawInstallment     decimal.Decimal        `json:"rawInstallment"`
	AppliedInstallment decimal.Decimal        `json:"appliedInstallment"`
	TotalContract      decimal.Decimal        `json:"totalContract"`
	TotalInterest      decimal.Decimal        `json:"totalInterest"`
	RoundingAdjustment decimal.Decimal        `json:"roundingAdjustment"`
	Schedule           []ScheduleLineResponse `json:"schedule"`
}

// ToSimulationResponse converts an amortization.Schedule to its DTO, echoing
// back the inputs the schedule was built from.
func ToSimulationResponse(req SimulateLoanRequest, s *amortization.Schedule) SimulationResponse {
	lines := make([]ScheduleLineResponse, len(s.Installments))
	for i, l := range s.Installments {
		lines[i] = ScheduleLineResponse{
			Number:  l.Number,
			DueDate: l.DueDate,
			Amount:  l.Amount,
		}
	}
	return SimulationResponse{
		Principal:          req.Principal,
		MonthlyRatePercent: req.MonthlyRatePercent,
		InstallmentCount:   req.InstallmentCount,
		RawInstallment:     s.RawInstallment,
		AppliedInstallment: s.AppliedInstallment,
		TotalContract:      s.TotalApplied,
		TotalInterest:      s.TotalInterest,
		RoundingAdjustment: s.Adjustment,
		Schedule:           lines,
	}
}
