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

// contractHandler handles HTTP requests related to loan contracts.
type contractHandler struct {
	loanService          portssvc.LoanSvcFacade
	renegotiationService portssvc.RenegotiationSvc
	authService          portssvc.AuthorizationSvc
}

// newContractHandler creates a new contractHandler.
func newContractHandler(ls portssvc.LoanSvcFacade, rs portssvc.RenegotiationSvc, as portssvc.AuthorizationSvc) *contractHandler {
	return &contractHandler{
		loanService:          ls,
		renegotiationService: rs,
		authService:          as,
	}
}

// registerContractRoutes registers routes related to loan contracts.
func registerContractRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, renegotiationService portssvc.RenegotiationSvc, authService portssvc.AuthorizationSvc) {
	h := newContractHandler(loanService, renegotiationService, authService)

	rg.POST("/simulations", h.simulate)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)
		contracts.GET("/:id", h.getContract)
		contracts.GET("/:id/logs", h.listContractLogs)
		contracts.POST("/:id/cancel", h.cancelContract)
		contracts.POST("/:id/reopen", h.reopenContract)
		contracts.POST("/:id/renegotiate", h.renegotiateContract)
	}
}

// simulate godoc
// @Summary Simulate a loan schedule
// @Description Builds a Price-table amortization schedule without persisting anything
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   simulation body dto.SimulateLoanRequest true "Simulation parameters"
// @Success 200 {object} dto.SimulationResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /simulations [post]
func (h *contractHandler) simulate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SimulateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Simulate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.loanService.Simulate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error simulating loan", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to simulate loan", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to simulate loan"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// createContract godoc
// @Summary Create a new loan contract
// @Description Opens a contract, persisting the schedule, the disbursement and the audit log atomically
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 422 {object} ErrorResponse "Cash balance does not cover the principal"
// @Failure 500 {object} ErrorResponse "Failed to create contract"
// @Security BearerAuth
// @Router /contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID), slog.String("client_id", req.ClientID))
	logger.Info("Received request to create contract")

	contract, err := h.loanService.CreateContract(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating contract", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else if errors.Is(err, apperrors.ErrInsufficientFunds) {
			logger.Warn("Insufficient cash to disburse contract", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create contract in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create contract"})
		}
		return
	}

	logger.Info("Contract created successfully", slog.String("contract_id", contract.ContractID), slog.String("contract_code", contract.ContractCode))
	c.JSON(http.StatusCreated, contract)
}

// getContract godoc
// @Summary Get a contract by ID
// @Description Retrieves a contract with its schedule and the accruals as of today
// @Tags contracts
// @Produce  json
// @Param   id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contract not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve contract"
// @Security BearerAuth
// @Router /contracts/{id} [get]
func (h *contractHandler) getContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	contract, err := h.loanService.GetContract(c.Request.Context(), contractID, time.Now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Contract not found", slog.String("contract_id", contractID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Contract not found"})
		} else {
			logger.Error("Failed to get contract from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve contract"})
		}
		return
	}

	c.JSON(http.StatusOK, contract)
}

// listContracts godoc
// @Summary List contracts
// @Description Retrieves contracts filtered by client and/or status
// @Tags contracts
// @Produce  json
// @Param   clientID query string false "Filter by client ID"
// @Param   status query string false "Filter by contract status"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListContractsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list contracts"
// @Security BearerAuth
// @Router /contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListContractsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListContracts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.loanService.ListContracts(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list contracts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list contracts"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// listContractLogs godoc
// @Summary List a contract's audit trail
// @Description Retrieves the contract's audit trail, oldest first
// @Tags contracts
// @Produce  json
// @Param   id path string true "Contract ID"
// @Success 200 {array} dto.ContractLogResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contract not found"
// @Failure 500 {object} ErrorResponse "Failed to list contract logs"
// @Security BearerAuth
// @Router /contracts/{id}/logs [get]
func (h *contractHandler) listContractLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	logs, err := h.loanService.ListContractLogs(c.Request.Context(), contractID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Contract not found for logs", slog.String("contract_id", contractID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Contract not found"})
		} else {
			logger.Error("Failed to list contract logs from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list contract logs"})
		}
		return
	}

	c.JSON(http.StatusOK, logs)
}

// cancelContract godoc
// @Summary Cancel a contract
// @Description Cancels a contract and its open installments. Requires the administrative secret.
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   id path string true "Contract ID"
// @Param   cancellation body dto.CancelContractRequest true "Cancellation details"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Invalid administrative secret"
// @Failure 404 {object} ErrorResponse "Contract not found"
// @Failure 409 {object} ErrorResponse "Contract cannot be cancelled in its current state"
// @Security BearerAuth
// @Router /contracts/{id}/cancel [post]
func (h *contractHandler) cancelContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	var req dto.CancelContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelContract", slog.String("error", err.Error()))
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
		logger.Warn("Admin grant refused for cancel", slog.String("contract_id", contractID), slog.String("actor_id", actorID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid administrative secret"})
		return
	}

	contract, err := h.loanService.CancelContract(c.Request.Context(), contractID, req.Reason, req.Notes, admin)
	if err != nil {
		h.respondContractError(c, logger, err, "cancel contract")
		return
	}

	logger.Info("Contract cancelled", slog.String("contract_id", contractID), slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, contract)
}

// reopenContract godoc
// @Summary Reopen a cancelled contract
// @Description Reverts a cancellation, restoring cancelled installments to OPEN. Requires the administrative secret.
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   id path string true "Contract ID"
// @Param   reopen body dto.ReopenContractRequest true "Reopen details"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Invalid administrative secret"
// @Failure 404 {object} ErrorResponse "Contract not found"
// @Failure 409 {object} ErrorResponse "Contract is not cancelled"
// @Security BearerAuth
// @Router /contracts/{id}/reopen [post]
func (h *contractHandler) reopenContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	var req dto.ReopenContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReopenContract", slog.String("error", err.Error()))
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
		logger.Warn("Admin grant refused for reopen", slog.String("contract_id", contractID), slog.String("actor_id", actorID))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Invalid administrative secret"})
		return
	}

	contract, err := h.loanService.ReopenContract(c.Request.Context(), contractID, admin, time.Now())
	if err != nil {
		h.respondContractError(c, logger, err, "reopen contract")
		return
	}

	logger.Info("Contract reopened", slog.String("contract_id", contractID), slog.String("actor_id", actorID))
	c.JSON(http.StatusOK, contract)
}

// renegotiateContract godoc
// @Summary Renegotiate a contract
// @Description Liquidates the open installments and opens a replacement contract for the open balance net of the down payment
// @Tags contracts
// @Accept  json
// @Produce  json
// @Param   id path string true "Contract ID"
// @Param   renegotiation body dto.RenegotiateContractRequest true "Renegotiation terms"
// @Success 201 {object} dto.RenegotiationResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Contract not found"
// @Failure 409 {object} ErrorResponse "Contract cannot be renegotiated in its current state"
// @Security BearerAuth
// @Router /contracts/{id}/renegotiate [post]
func (h *contractHandler) renegotiateContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("id")

	var req dto.RenegotiateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RenegotiateContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("contract_id", contractID), slog.String("actor_id", actorID))
	logger.Info("Received request to renegotiate contract")

	result, err := h.renegotiationService.Renegotiate(c.Request.Context(), contractID, req, actorID, time.Now())
	if err != nil {
		h.respondContractError(c, logger, err, "renegotiate contract")
		return
	}

	logger.Info("Contract renegotiated", slog.String("new_contract_id", result.NewContract.ContractID))
	c.JSON(http.StatusCreated, result)
}

// respondContractError maps service errors from lifecycle operations to HTTP responses.
func (h *contractHandler) respondContractError(c *gin.Context, logger *slog.Logger, err error, op string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Contract not found for "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Contract not found"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Conflict on "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	default:
		logger.Error("Failed to "+op, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + op})
	}
}
