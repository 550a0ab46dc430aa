package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/mapping"
)

const proposalColumns = `proposal_id, client_id, requested_amount, installment_count, monthly_rate_percent,
	first_due_date, partner_id, commission_percent, status, notes, analyzed_at, analyst_id, verdict, contract_id,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxProposalRepository struct {
	BaseRepository
}

// newPgxProposalRepository creates a new repository for loan proposals.
func newPgxProposalRepository(pool DBPool) portsrepo.ProposalRepositoryFacade {
	return &PgxProposalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProposalRepository implements portsrepo.ProposalRepositoryFacade
var _ portsrepo.ProposalRepositoryFacade = (*PgxProposalRepository)(nil)

// SaveProposal persists a new proposal.
func (r *PgxProposalRepository) SaveProposal(ctx context.Context, proposal domain.LoanProposal) error {
	model := mapping.ToModelProposal(proposal)
	query := `
		INSERT INTO loan_proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		model.ProposalID,
		model.ClientID,
		model.RequestedAmount,
		model.InstallmentCount,
		model.MonthlyRatePercent,
		model.FirstDueDate,
		model.PartnerID,
		model.CommissionPercent,
		model.Status,
		model.Notes,
		model.AnalyzedAt,
		model.AnalystID,
		model.Verdict,
		model.ContractID,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert proposal %s: %w", model.ProposalID, err)
	}
	return nil
}

// UpdateProposalVerdict records the analyst verdict. The row is re-checked to
// still be PENDING so concurrent analysts cannot both decide it.
func (r *PgxProposalRepository) UpdateProposalVerdict(ctx context.Context, proposal domain.LoanProposal) error {
	model := mapping.ToModelProposal(proposal)
	query := `
		UPDATE loan_proposals
		SET status = $2, notes = $3, analyzed_at = $4, analyst_id = $5, verdict = $6, contract_id = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE proposal_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query,
		model.ProposalID,
		model.Status,
		model.Notes,
		model.AnalyzedAt,
		model.AnalystID,
		model.Verdict,
		model.ContractID,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update proposal %s: %w", model.ProposalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: proposal %s is no longer pending", apperrors.ErrConflict, model.ProposalID)
	}
	return nil
}

// FindProposalByID retrieves a proposal by its ID.
func (r *PgxProposalRepository) FindProposalByID(ctx context.Context, proposalID string) (*domain.LoanProposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM loan_proposals
		WHERE proposal_id = $1;
	`
	var m models.LoanProposal
	err := r.Pool.QueryRow(ctx, query, proposalID).Scan(
		&m.ProposalID,
		&m.ClientID,
		&m.RequestedAmount,
		&m.InstallmentCount,
		&m.MonthlyRatePercent,
		&m.FirstDueDate,
		&m.PartnerID,
		&m.CommissionPercent,
		&m.Status,
		&m.Notes,
		&m.AnalyzedAt,
		&m.AnalystID,
		&m.Verdict,
		&m.ContractID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find proposal %s: %w", proposalID, err)
	}

	proposal := mapping.ToDomainProposal(m)
	return &proposal, nil
}

// ListProposals retrieves proposals filtered by client and/or status.
func (r *PgxProposalRepository) ListProposals(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanProposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM loan_proposals
		WHERE 1=1
	`
	args := []interface{}{}

	if clientID != "" {
		args = append(args, clientID)
		query += " AND client_id = $" + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status)
		query += " AND status = $" + strconv.Itoa(len(args))
	}

	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query proposals: %w", err)
	}
	defer rows.Close()

	proposals := []models.LoanProposal{}
	for rows.Next() {
		var m models.LoanProposal
		err := rows.Scan(
			&m.ProposalID,
			&m.ClientID,
			&m.RequestedAmount,
			&m.InstallmentCount,
			&m.MonthlyRatePercent,
			&m.FirstDueDate,
			&m.PartnerID,
			&m.CommissionPercent,
			&m.Status,
			&m.Notes,
			&m.AnalyzedAt,
			&m.AnalystID,
			&m.Verdict,
			&m.ContractID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal row: %w", err)
		}
		proposals = append(proposals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating proposal rows: %w", err)
	}

	return mapping.ToDomainProposalSlice(proposals), nil
}
