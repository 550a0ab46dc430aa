package services

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// AuthorizationSvc issues admin capabilities for privileged operations. The
// secret is verified here, once, against the configured hash; business logic
// downstream only ever sees the resulting capability.
type AuthorizationSvc interface {
	// GrantAdmin verifies the administrative secret and issues a capability
	// bound to the acting user. Returns apperrors.ErrForbidden on mismatch.
	GrantAdmin(ctx context.Context, secret string, actorID string) (domain.AdminCapability, error)
}
