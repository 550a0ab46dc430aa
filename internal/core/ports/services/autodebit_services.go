package services

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// AutoDebitSvc defines the batch collection of due installments from client
// account balances. Requires an admin capability.
type AutoDebitSvc interface {
	// Run debits every OPEN installment due on or before the reference date
	// whose client account covers the accrued due, and reports per-item
	// outcomes. Items with insufficient balance are skipped, not failed.
	Run(ctx context.Context, req dto.RunAutoDebitRequest, admin domain.AdminCapability) (*dto.AutoDebitRunResponse, error)
}
