package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
)

// autoDebitHandler handles the batch collection trigger.
type autoDebitHandler struct {
	autoDebitService portssvc.AutoDebitSvc
	authService      portssvc.AuthorizationSvc
}

// newAutoDebitHandler creates a new autoDebitHandler.
func newAutoDebitHandler(ads portssvc.AutoDebitSvc, as portssvc.AuthorizationSvc) *autoDebitHandler {
	return &autoDebitHandler{
		autoDebitService: ads,
		authService:      as,
	}
}

// registerAutoDebitRoutes registers the batch collection route.
func registerAutoDebitRoutes(rg *gin.RouterGroup, autoDebitService portssvc.AutoDebitSvc, authService portssvc.AuthorizationSvc) {
	h := newAutoDebitHandler(autoDebitService, authService)

	rg.POST("/auto-debit/runs", h.runAutoDebit)
}

// runAutoDebit godoc
// @Summary Run a batch collection of due installments
// @Description Debits every OPEN installment due on or before the reference date from client accounts with sufficient balance. Requires the administrative secret.
// @Tags auto-debit
// @Accept  json
// @Produce  json
// @Param   run body dto.RunAutoDebitRequest true "Run parameters"
// @Success 200 {object} dto.AutoDebitRunResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Invalid administrative secret"
// @Security BearerAuth
// @Router /auto-debit/runs [post]
func (h *autoDebitHandler) runAutoDebit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RunAutoDebitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RunAutoDebit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	admin, err := h.authService.GrantAdmin(c.Request.Context(), req.AdminSecret, actorID)
	if err != nil {
		logger.Warn("Admin grant refused for auto-debit run", slog.String("actor_id", actorID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid administrative secret"})
		return
	}

	logger = logger.With(slog.String("actor_id", actorID))
	logger.Info("Received request to run auto-debit")

	result, err := h.autoDebitService.Run(c.Request.Context(), req, admin)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		} else {
			logger.Error("Auto-debit run failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Auto-debit run failed"})
		}
		return
	}

	logger.Info("Auto-debit run completed",
		slog.Int("candidates", result.Candidates),
		slog.Int("debited", result.Debited),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed))
	c.JSON(http.StatusOK, result)
}
