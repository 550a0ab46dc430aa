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

// proposalHandler handles HTTP requests related to loan proposals.
type proposalHandler struct {
	proposalService portssvc.ProposalSvcFacade
}

// newProposalHandler creates a new proposalHandler.
func newProposalHandler(ps portssvc.ProposalSvcFacade) *proposalHandler {
	return &proposalHandler{proposalService: ps}
}

// registerProposalRoutes registers routes related to loan proposals.
func registerProposalRoutes(rg *gin.RouterGroup, proposalService portssvc.ProposalSvcFacade) {
	h := newProposalHandler(proposalService)

	proposals := rg.Group("/proposals")
	{
		proposals.POST("", h.createProposal)
		proposals.GET("", h.listProposals)
		proposals.GET("/:id", h.getProposal)
		proposals.POST("/:id/analyze", h.analyzeProposal)
	}
}

// createProposal godoc
// @Summary Submit a loan proposal
// @Description Submits a proposal for analysis. The terms are validated against the simulator.
// @Tags proposals
// @Accept  json
// @Produce  json
// @Param   proposal body dto.CreateProposalRequest true "Proposal details"
// @Success 201 {object} dto.ProposalResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /proposals [post]
func (h *proposalHandler) createProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	proposal, err := h.proposalService.CreateProposal(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to create proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create proposal"})
		}
		return
	}

	logger.Info("Proposal created", slog.String("proposal_id", proposal.ProposalID), slog.String("client_id", proposal.ClientID))
	c.JSON(http.StatusCreated, proposal)
}

// getProposal godoc
// @Summary Get a proposal by ID
// @Tags proposals
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Success 200 {object} dto.ProposalResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Proposal not found"
// @Security BearerAuth
// @Router /proposals/{id} [get]
func (h *proposalHandler) getProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("id")

	proposal, err := h.proposalService.GetProposal(c.Request.Context(), proposalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Proposal not found", slog.String("proposal_id", proposalID))
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Proposal not found"})
		} else {
			logger.Error("Failed to get proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve proposal"})
		}
		return
	}

	c.JSON(http.StatusOK, proposal)
}

// listProposals godoc
// @Summary List proposals
// @Tags proposals
// @Produce  json
// @Param   clientID query string false "Filter by client ID"
// @Param   status query string false "Filter by proposal status"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListProposalsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /proposals [get]
func (h *proposalHandler) listProposals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListProposalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListProposals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	result, err := h.proposalService.ListProposals(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list proposals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list proposals"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// analyzeProposal godoc
// @Summary Record the analyst verdict on a proposal
// @Description Records APPROVED or DENIED. Approval opens the contract through the normal creation path and links it back.
// @Tags proposals
// @Accept  json
// @Produce  json
// @Param   id path string true "Proposal ID"
// @Param   verdict body dto.AnalyzeProposalRequest true "Analysis verdict"
// @Success 200 {object} dto.ProposalResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Proposal not found"
// @Failure 409 {object} ErrorResponse "Proposal has already been analyzed"
// @Failure 422 {object} ErrorResponse "Cash balance does not cover the approved principal"
// @Security BearerAuth
// @Router /proposals/{id}/analyze [post]
func (h *proposalHandler) analyzeProposal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	proposalID := c.Param("id")

	var req dto.AnalyzeProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AnalyzeProposal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	analystID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Analyst user ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("proposal_id", proposalID), slog.String("analyst_id", analystID))
	logger.Info("Received request to analyze proposal", slog.String("verdict", req.Verdict))

	proposal, err := h.proposalService.AnalyzeProposal(c.Request.Context(), proposalID, req, analystID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Proposal not found for analysis")
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Proposal not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error analyzing proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Proposal no longer pending", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			logger.Warn("Insufficient cash to disburse approved proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to analyze proposal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to analyze proposal"})
		}
		return
	}

	logger.Info("Proposal analyzed", slog.String("status", string(proposal.Status)))
	c.JSON(http.StatusOK, proposal)
}
