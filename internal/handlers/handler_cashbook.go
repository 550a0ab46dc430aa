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

// cashBookHandler handles HTTP requests related to the company cash book.
type cashBookHandler struct {
	cashBookService portssvc.CashBookSvcFacade
	authService     portssvc.AuthorizationSvc
}

// newCashBookHandler creates a new cashBookHandler.
func newCashBookHandler(cs portssvc.CashBookSvcFacade, as portssvc.AuthorizationSvc) *cashBookHandler {
	return &cashBookHandler{
		cashBookService: cs,
		authService:     as,
	}
}

// registerCashBookRoutes registers routes related to the company cash book.
func registerCashBookRoutes(rg *gin.RouterGroup, cashBookService portssvc.CashBookSvcFacade, authService portssvc.AuthorizationSvc) {
	h := newCashBookHandler(cashBookService, authService)

	cashbook := rg.Group("/cashbook")
	{
		cashbook.GET("/balance", h.getBalance)
		cashbook.GET("/entries", h.listEntries)
		cashbook.POST("/entries", h.createEntry)
		cashbook.POST("/entries/:id/reverse", h.reverseEntry)
	}
}

// getBalance godoc
// @Summary Get the company cash balance
// @Description Computes the running sum of all cash book entries
// @Tags cashbook
// @Produce  json
// @Success 200 {object} dto.CashBalanceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute balance"
// @Security BearerAuth
// @Router /cashbook/balance [get]
func (h *cashBookHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.cashBookService.GetBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute cash balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// listEntries godoc
// @Summary List cash book entries
// @Description Retrieves cash book entries matching the filter, newest first
// @Tags cashbook
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Param   category query string false "Filter by entry category"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCashEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /cashbook/entries [get]
func (h *cashBookHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.cashBookService.ListEntries(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list cash entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list cash entries"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// createEntry godoc
// @Summary Create a manual cash book entry
// @Description Appends an entry. The amount is a positive magnitude; the category determines the persisted sign.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateCashEntryRequest true "Entry details"
// @Success 201 {object} dto.CashEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or unknown category"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 422 {object} ErrorResponse "Outflow exceeds the cash balance"
// @Security BearerAuth
// @Router /cashbook/entries [post]
func (h *cashBookHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.cashBookService.CreateEntry(c.Request.Context(), req, actorID, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating cash entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Warn("Cash balance does not cover outflow", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to create cash entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create cash entry"})
		}
		return
	}

	logger.Info("Cash entry created", slog.String("entry_id", entry.EntryID), slog.String("category", string(entry.Category)))
	c.JSON(http.StatusCreated, entry)
}

// reverseEntry godoc
// @Summary Reverse a cash book entry
// @Description Appends a sign-inverted entry linked to the original. Requires the administrative secret.
// @Tags cashbook
// @Accept  json
// @Produce  json
// @Param   id path string true "Entry ID"
// @Param   reversal body dto.ReverseCashEntryRequest true "Reversal details"
// @Success 201 {object} dto.CashEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Invalid administrative secret"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry already reversed or is itself a reversal"
// @Security BearerAuth
// @Router /cashbook/entries/{id}/reverse [post]
func (h *cashBookHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.ReverseCashEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseEntry", slog.String("error", err.Error()))
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
		logger.Warn("Admin grant refused for reversal", slog.String("entry_id", entryID), slog.String("actor_id", actorID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid administrative secret"})
		return
	}

	reversal, err := h.cashBookService.ReverseEntry(c.Request.Context(), entryID, req.Reason, admin, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Cash entry not found for reversal", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error reversing cash entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Conflict reversing cash entry", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		default:
			logger.Error("Failed to reverse cash entry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to reverse cash entry"})
		}
		return
	}

	logger.Info("Cash entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", reversal.EntryID))
	c.JSON(http.StatusCreated, reversal)
}
