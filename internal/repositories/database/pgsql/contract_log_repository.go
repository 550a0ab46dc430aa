package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/mapping"
)

type PgxContractLogRepository struct {
	BaseRepository
}

// newPgxContractLogRepository creates a new repository for the contract audit trail.
func newPgxContractLogRepository(pool DBPool) portsrepo.ContractLogRepositoryFacade {
	return &PgxContractLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxContractLogRepository implements portsrepo.ContractLogRepositoryFacade
var _ portsrepo.ContractLogRepositoryFacade = (*PgxContractLogRepository)(nil)

// SaveLog appends one audit trail entry.
func (r *PgxContractLogRepository) SaveLog(ctx context.Context, log domain.ContractLog) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.InsertLogInTx(ctx, tx, log); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// InsertLogInTx appends a log row within an existing transaction.
func (r *PgxContractLogRepository) InsertLogInTx(ctx context.Context, tx pgx.Tx, log domain.ContractLog) error {
	model := mapping.ToModelContractLog(log)
	query := `
		INSERT INTO contract_logs (log_id, contract_id, action, actor_id, reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := tx.Exec(ctx, query,
		model.LogID,
		model.ContractID,
		model.Action,
		model.ActorID,
		model.Reason,
		model.Notes,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract log %s: %w", model.LogID, err)
	}
	return nil
}

// ListLogsByContractID retrieves a contract's audit trail, oldest first.
func (r *PgxContractLogRepository) ListLogsByContractID(ctx context.Context, contractID string) ([]domain.ContractLog, error) {
	query := `
		SELECT log_id, contract_id, action, actor_id, reason, notes, created_at
		FROM contract_logs
		WHERE contract_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs for contract %s: %w", contractID, err)
	}
	defer rows.Close()

	logs := []models.ContractLog{}
	for rows.Next() {
		var m models.ContractLog
		err := rows.Scan(
			&m.LogID,
			&m.ContractID,
			&m.Action,
			&m.ActorID,
			&m.Reason,
			&m.Notes,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract log row: %w", err)
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract log rows: %w", err)
	}

	out := make([]domain.ContractLog, len(logs))
	for i, m := range logs {
		out[i] = mapping.ToDomainContractLog(m)
	}
	return out, nil
}
