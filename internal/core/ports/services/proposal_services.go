package services

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/dto"
)

// ProposalReaderSvc defines read operations for loan proposals
type ProposalReaderSvc interface {
	// GetProposal retrieves a proposal by ID.
	GetProposal(ctx context.Context, proposalID string) (*dto.ProposalResponse, error)

	// ListProposals retrieves proposals matching the filter.
	ListProposals(ctx context.Context, params dto.ListProposalsParams) (*dto.ListProposalsResponse, error)
}

// ProposalWriterSvc defines write operations for loan proposals
type ProposalWriterSvc interface {
	// CreateProposal submits a new proposal for analysis.
	CreateProposal(ctx context.Context, req dto.CreateProposalRequest, creatorUserID string) (*dto.ProposalResponse, error)

	// AnalyzeProposal records the analyst verdict; approval opens the
	// contract through the normal creation path and links it back.
	AnalyzeProposal(ctx context.Context, proposalID string, req dto.AnalyzeProposalRequest, analystID string) (*dto.ProposalResponse, error)
}

// ProposalSvcFacade combines all proposal-related service interfaces
type ProposalSvcFacade interface {
	ProposalReaderSvc
	ProposalWriterSvc
}
