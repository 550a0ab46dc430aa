package services

import (
	"context"
	"time"

	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// RenegotiationSvc defines the renegotiation protocol: the open balance of an
// active or overdue contract is absorbed into a replacement contract, net of
// an optional down payment.
type RenegotiationSvc interface {
	// Renegotiate liquidates the source contract's open installments and
	// opens the replacement contract atomically.
	Renegotiate(ctx context.Context, contractID string, req dto.RenegotiateContractRequest, actorID string, today time.Time) (*dto.RenegotiationResponse, error)
}
