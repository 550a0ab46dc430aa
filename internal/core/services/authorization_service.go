package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils"
)

// authorizationService verifies the administrative secret against its
// configured bcrypt hash and issues capabilities for privileged operations.
type authorizationService struct {
	adminSecretHash string
}

// NewAuthorizationService creates a new AuthorizationService.
func NewAuthorizationService(adminSecretHash string) portssvc.AuthorizationSvc {
	return &authorizationService{adminSecretHash: adminSecretHash}
}

// Ensure authorizationService implements the portssvc.AuthorizationSvc interface
var _ portssvc.AuthorizationSvc = (*authorizationService)(nil)

// GrantAdmin verifies the administrative secret and issues a capability bound
// to the acting user.
func (s *authorizationService) GrantAdmin(ctx context.Context, secret string, actorID string) (domain.AdminCapability, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actorID == "" {
		return domain.AdminCapability{}, fmt.Errorf("%w: acting user is required", apperrors.ErrValidation)
	}
	if s.adminSecretHash == "" || !utils.CheckSecretHash(secret, s.adminSecretHash) {
		logger.Warn("Admin secret verification failed", slog.String("actor_id", actorID))
		return domain.AdminCapability{}, apperrors.ErrForbidden
	}

	return domain.NewAdminCapability(actorID), nil
}
