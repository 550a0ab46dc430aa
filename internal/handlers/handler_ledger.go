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

// ledgerHandler handles HTTP requests related to client accounts.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to client accounts.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	clients := rg.Group("/clients")
	{
		clients.POST("/:clientID/account", h.ensureAccount)
		clients.GET("/:clientID/account", h.getAccountByClient)
	}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id/statement", h.getStatement)
		accounts.POST("/:id/deposit", h.deposit)
		accounts.POST("/:id/withdraw", h.withdraw)
	}
}

// ensureAccount godoc
// @Summary Ensure a client account exists
// @Description Returns the client's account, creating it with a zero balance on first use
// @Tags ledger
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to ensure account"
// @Security BearerAuth
// @Router /clients/{clientID}/account [post]
func (h *ledgerHandler) ensureAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.ledgerService.EnsureAccount(c.Request.Context(), clientID, actorID)
	if err != nil {
		logger.Error("Failed to ensure account", slog.String("client_id", clientID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to ensure account"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// getAccountByClient godoc
// @Summary Get a client's account
// @Description Retrieves the account owned by the client
// @Tags ledger
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.LedgerAccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /clients/{clientID}/account [get]
func (h *ledgerHandler) getAccountByClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	account, err := h.ledgerService.GetAccountByClientID(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found", slog.String("client_id", clientID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else {
			logger.Error("Failed to get account", slog.String("client_id", clientID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, account)
}

// getStatement godoc
// @Summary Get an account statement
// @Description Retrieves the account with a page of its movements, newest first, using token-based pagination
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/statement [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for GetStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.ledgerService.GetStatement(c.Request.Context(), accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for statement", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid statement parameters", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to get statement", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve statement"})
		}
		return
	}

	c.JSON(http.StatusOK, statement)
}

// deposit godoc
// @Summary Deposit into a client account
// @Description Credits the client account and records the cash inflow
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.LedgerMovementResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.ledgerService.Deposit(c.Request.Context(), accountID, req, actorID)
	if err != nil {
		h.respondMovementError(c, logger, err, "deposit")
		return
	}

	logger.Info("Deposit recorded", slog.String("account_id", accountID), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusCreated, movement)
}

// withdraw godoc
// @Summary Withdraw from a client account
// @Description Debits the client account after checking both the account balance and the company cash, and records the cash outflow
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.LedgerMovementResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 422 {object} ErrorResponse "Insufficient account balance or company cash"
// @Security BearerAuth
// @Router /accounts/{id}/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	movement, err := h.ledgerService.Withdraw(c.Request.Context(), accountID, req, actorID)
	if err != nil {
		h.respondMovementError(c, logger, err, "withdraw")
		return
	}

	logger.Info("Withdrawal recorded", slog.String("account_id", accountID), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusCreated, movement)
}

func (h *ledgerHandler) respondMovementError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient funds on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + op})
	}
}
