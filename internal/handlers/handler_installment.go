package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
)

// installmentHandler handles HTTP requests related to installment payments.
type installmentHandler struct {
	loanService portssvc.LoanSvcFacade
}

// newInstallmentHandler creates a new installmentHandler.
func newInstallmentHandler(ls portssvc.LoanSvcFacade) *installmentHandler {
	return &installmentHandler{loanService: ls}
}

// registerInstallmentRoutes registers routes related to installment payments.
func registerInstallmentRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := newInstallmentHandler(loanService)

	installments := rg.Group("/installments")
	{
		installments.GET("/due", h.listDueInstallments)
		installments.POST("/:id/pay", h.payInstallment)
		installments.POST("/:id/partial-payment", h.payPartial)
	}
}

// listDueInstallments godoc
// @Summary List installments due for collection
// @Description Retrieves OPEN installments due on or before the reference date, with their accrued dues. Cancelled and renegotiated contracts are excluded.
// @Tags installments
// @Produce  json
// @Param   until query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param   overdueOnly query bool false "Only installments already past due"
// @Success 200 {object} dto.ListDueInstallmentsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /installments/due [get]
func (h *installmentHandler) listDueInstallments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDueInstallmentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for due installments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.loanService.ListDueInstallments(c.Request.Context(), params, time.Now())
	if err != nil {
		logger.Error("Failed to list due installments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list due installments"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// payInstallment godoc
// @Summary Pay an installment in full
// @Description Collects the accrued due of an OPEN installment. The amount is computed server-side; any partner commission is split in the same transaction.
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path string true "Installment ID"
// @Param   payment body dto.PayInstallmentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Installment not found"
// @Failure 409 {object} ErrorResponse "Installment is not open or an earlier installment is still open"
// @Security BearerAuth
// @Router /installments/{id}/pay [post]
func (h *installmentHandler) payInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	var req dto.PayInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayInstallment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("installment_id", installmentID), slog.String("actor_id", actorID))
	logger.Info("Received request to pay installment")

	result, err := h.loanService.PayInstallment(c.Request.Context(), installmentID, req, actorID, time.Now())
	if err != nil {
		h.respondPaymentError(c, logger, err, "pay installment")
		return
	}

	logger.Info("Installment paid",
		slog.String("contract_id", result.Contract.ContractID),
		slog.String("paid_amount", result.PaidAmount.String()))
	c.JSON(http.StatusOK, result)
}

// payPartial godoc
// @Summary Record a partial payment
// @Description Records a cash inflow and pushes the installment's due date without settling it. The nominal amount is unchanged.
// @Tags installments
// @Accept  json
// @Produce  json
// @Param   id path string true "Installment ID"
// @Param   payment body dto.PayPartialRequest true "Partial payment details"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Invalid input, or the new due date does not precede the next installment's"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Installment not found"
// @Failure 409 {object} ErrorResponse "Installment is not open"
// @Security BearerAuth
// @Router /installments/{id}/partial-payment [post]
func (h *installmentHandler) payPartial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	installmentID := c.Param("id")

	var req dto.PayPartialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayPartial", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("installment_id", installmentID), slog.String("actor_id", actorID))
	logger.Info("Received request for partial payment", slog.String("amount", req.Amount.String()))

	result, err := h.loanService.PayPartial(c.Request.Context(), installmentID, req, actorID, time.Now())
	if err != nil {
		h.respondPaymentError(c, logger, err, "record partial payment")
		return
	}

	logger.Info("Partial payment recorded")
	c.JSON(http.StatusOK, result)
}

func (h *installmentHandler) respondPaymentError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Installment not found for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Installment not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + op})
	}
}
