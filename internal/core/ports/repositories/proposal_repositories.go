package repositories

import (
	"context"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

// ProposalReader defines read operations for loan proposal data
type ProposalReader interface {
	// FindProposalByID retrieves a proposal by its unique identifier.
	FindProposalByID(ctx context.Context, proposalID string) (*domain.LoanProposal, error)

	// ListProposals retrieves proposals filtered by client and/or status.
	ListProposals(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanProposal, error)
}

// ProposalWriter defines write operations for loan proposal data
type ProposalWriter interface {
	// SaveProposal persists a new proposal.
	SaveProposal(ctx context.Context, proposal domain.LoanProposal) error

	// UpdateProposalVerdict records the analyst verdict. It re-checks under
	// lock that the proposal is still PENDING.
	UpdateProposalVerdict(ctx context.Context, proposal domain.LoanProposal) error
}

// ProposalRepositoryFacade combines all proposal-related repository interfaces
type ProposalRepositoryFacade interface {
	ProposalReader
	ProposalWriter
}
