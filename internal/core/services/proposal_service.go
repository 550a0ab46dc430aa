package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	portssvc "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/services"
	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
	"github.com/andreprog02/saas-gestao-financeira/internal/middleware"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/amortization"
)

var ErrProposalNotPending = fmt.Errorf("%w: proposal has already been analyzed", apperrors.ErrConflict)

// proposalService implements the credit-analysis workflow. An approved
// proposal opens the contract through the loan service so the full
// disbursement invariants apply.
type proposalService struct {
	proposalRepo portsrepo.ProposalRepositoryFacade
	loanSvc      portssvc.LoanSvcFacade
}

// NewProposalService creates a new ProposalService.
func NewProposalService(proposalRepo portsrepo.ProposalRepositoryFacade, loanSvc portssvc.LoanSvcFacade) portssvc.ProposalSvcFacade {
	return &proposalService{
		proposalRepo: proposalRepo,
		loanSvc:      loanSvc,
	}
}

// Ensure proposalService implements the portssvc.ProposalSvcFacade interface
var _ portssvc.ProposalSvcFacade = (*proposalService)(nil)

// GetProposal retrieves a proposal by ID.
func (s *proposalService) GetProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error) {
	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToProposalResponse(proposal)
	return &resp, nil
}

// ListProposals retrieves proposals matching the filter.
func (s *proposalService) ListProposals(ctx context.Context, params dto.ListProposalsParams) (*dto.ListProposalsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	proposals, err := s.proposalRepo.ListProposals(ctx, params.ClientID, params.Status, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return &dto.ListProposalsResponse{Proposals: dto.ToProposalResponses(proposals)}, nil
}

// CreateProposal submits a new proposal for analysis. The requested terms are
// validated through the simulator so an unschedulable proposal is rejected
// before it ever reaches an analyst.
func (s *proposalService) CreateProposal(ctx context.Context, req dto.CreateProposalRequest, creatorUserID string) (*dto.ProposalResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := amortization.Simulate(req.RequestedAmount, req.MonthlyRatePercent, req.InstallmentCount, req.FirstDueDate); err != nil {
		return nil, err
	}

	now := time.Now()
	proposal := domain.LoanProposal{
		ProposalID:         uuid.New().String(),
		ClientID:           req.ClientID,
		RequestedAmount:    req.RequestedAmount.Round(2),
		InstallmentCount:   req.InstallmentCount,
		MonthlyRatePercent: req.MonthlyRatePercent,
		FirstDueDate:       domain.DateOnly(req.FirstDueDate),
		PartnerID:          req.PartnerID,
		CommissionPercent:  req.CommissionPercent,
		Status:             domain.ProposalPending,
		Notes:              req.Notes,
		AuditFields:        domain.AuditFields{CreatedAt: now, CreatedBy: creatorUserID, LastUpdatedAt: now, LastUpdatedBy: creatorUserID},
	}
	if err := s.proposalRepo.SaveProposal(ctx, proposal); err != nil {
		logger.Error("Failed to save proposal", slog.String("error", err.Error()), slog.String("client_id", req.ClientID))
		return nil, fmt.Errorf("failed to save proposal: %w", err)
	}

	logger.Info("Proposal created", slog.String("proposal_id", proposal.ProposalID), slog.String("client_id", req.ClientID))
	resp := dto.ToProposalResponse(&proposal)
	return &resp, nil
}

// AnalyzeProposal records the analyst verdict. On approval the contract is
// opened with the proposed terms and linked back to the proposal.
func (s *proposalService) AnalyzeProposal(ctx context.Context, proposalID string, req dto.AnalyzeProposalRequest, analystID string) (*dto.ProposalResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	proposal, err := s.proposalRepo.FindProposalByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Status != domain.ProposalPending {
		return nil, fmt.Errorf("%w: proposal is %s", ErrProposalNotPending, proposal.Status)
	}

	now := time.Now()
	analyzed := *proposal
	analyzed.AnalyzedAt = &now
	analyzed.AnalystID = analystID
	analyzed.Verdict = req.Verdict
	analyzed.LastUpdatedAt = now
	analyzed.LastUpdatedBy = analystID
	if req.Notes != "" {
		analyzed.Notes = req.Notes
	}

	switch req.Verdict {
	case string(domain.ProposalApproved):
		contract, err := s.loanSvc.CreateContract(ctx, dto.CreateContractRequest{
			ClientID:           proposal.ClientID,
			Principal:          proposal.RequestedAmount,
			MonthlyRatePercent: proposal.MonthlyRatePercent,
			InstallmentCount:   proposal.InstallmentCount,
			FirstDueDate:       proposal.FirstDueDate,
			PartnerID:          proposal.PartnerID,
			CommissionPercent:  proposal.CommissionPercent,
			Notes:              proposal.Notes,
		}, analystID)
		if err != nil {
			logger.Error("Failed to open contract for approved proposal", slog.String("error", err.Error()), slog.String("proposal_id", proposalID))
			return nil, err
		}
		analyzed.Status = domain.ProposalApproved
		analyzed.ContractID = &contract.ContractID
	case string(domain.ProposalDenied):
		analyzed.Status = domain.ProposalDenied
	default:
		return nil, fmt.Errorf("%w: verdict must be APPROVED or DENIED", apperrors.ErrValidation)
	}

	if err := s.proposalRepo.UpdateProposalVerdict(ctx, analyzed); err != nil {
		logger.Error("Failed to record proposal verdict", slog.String("error", err.Error()), slog.String("proposal_id", proposalID))
		return nil, fmt.Errorf("failed to record proposal verdict: %w", err)
	}

	logger.Info("Proposal analyzed", slog.String("proposal_id", proposalID), slog.String("verdict", req.Verdict))
	resp := dto.ToProposalResponse(&analyzed)
	return &resp, nil
}
