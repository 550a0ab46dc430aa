package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/mapping"
)

const cashEntryColumns = `entry_id, category, amount, description, occurred_at,
	contract_id, reverses_entry_id, actor_id, source_ip, created_at`

type PgxCashBookRepository struct {
	BaseRepository
}

// newPgxCashBookRepository creates a new repository for the company cash book.
func newPgxCashBookRepository(pool DBPool) portsrepo.CashBookRepositoryWithTx {
	return &PgxCashBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCashBookRepository implements portsrepo.CashBookRepositoryWithTx
var _ portsrepo.CashBookRepositoryWithTx = (*PgxCashBookRepository)(nil)

// SaveEntry appends one cash book entry.
func (r *PgxCashBookRepository) SaveEntry(ctx context.Context, entry domain.CashBookEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.InsertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// InsertEntryInTx appends an entry row within an existing transaction.
func (r *PgxCashBookRepository) InsertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.CashBookEntry) error {
	model := mapping.ToModelCashBookEntry(entry)
	query := `
		INSERT INTO cash_book_entries (` + cashEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		model.EntryID,
		model.Category,
		model.Amount,
		model.Description,
		model.OccurredAt,
		model.ContractID,
		model.ReversesEntryID,
		model.ActorID,
		model.SourceIP,
		model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash entry %s: %w", model.EntryID, err)
	}
	return nil
}

// SaveReversal appends a reversal entry linked to the original. The original
// row is locked and re-checked so an entry is never reversed twice.
func (r *PgxCashBookRepository) SaveReversal(ctx context.Context, original domain.CashBookEntry, reversal domain.CashBookEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT entry_id FROM cash_book_entries WHERE entry_id = $1 FOR UPDATE;`
	var lockedID string
	if err := tx.QueryRow(ctx, lockQuery, original.EntryID).Scan(&lockedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock cash entry %s: %w", original.EntryID, err)
	}

	var alreadyReversed bool
	existsQuery := `SELECT EXISTS (SELECT 1 FROM cash_book_entries WHERE reverses_entry_id = $1);`
	if err := tx.QueryRow(ctx, existsQuery, original.EntryID).Scan(&alreadyReversed); err != nil {
		return fmt.Errorf("failed to check reversal of cash entry %s: %w", original.EntryID, err)
	}
	if alreadyReversed {
		return fmt.Errorf("%w: cash entry %s already reversed", apperrors.ErrConflict, original.EntryID)
	}

	if err := r.InsertEntryInTx(ctx, tx, reversal); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a cash book entry by its ID.
func (r *PgxCashBookRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashBookEntry, error) {
	query := `
		SELECT ` + cashEntryColumns + `
		FROM cash_book_entries
		WHERE entry_id = $1;
	`
	var model models.CashBookEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&model.EntryID,
		&model.Category,
		&model.Amount,
		&model.Description,
		&model.OccurredAt,
		&model.ContractID,
		&model.ReversesEntryID,
		&model.ActorID,
		&model.SourceIP,
		&model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash entry %s: %w", entryID, err)
	}

	entry := mapping.ToDomainCashBookEntry(model)
	return &entry, nil
}

// ListEntries retrieves cash book entries matching the filter, newest first.
func (r *PgxCashBookRepository) ListEntries(ctx context.Context, filter portsrepo.CashEntryFilter) ([]domain.CashBookEntry, error) {
	query := `
		SELECT ` + cashEntryColumns + `
		FROM cash_book_entries
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += " AND occurred_at >= $" + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += " AND occurred_at <= $" + strconv.Itoa(len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += " ORDER BY occurred_at DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += " OFFSET $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entries: %w", err)
	}
	defer rows.Close()

	entries := []models.CashBookEntry{}
	for rows.Next() {
		var m models.CashBookEntry
		err := rows.Scan(
			&m.EntryID,
			&m.Category,
			&m.Amount,
			&m.Description,
			&m.OccurredAt,
			&m.ContractID,
			&m.ReversesEntryID,
			&m.ActorID,
			&m.SourceIP,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash entry row: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash entry rows: %w", err)
	}

	return mapping.ToDomainCashBookEntrySlice(entries), nil
}

// CurrentBalance computes the running sum of all entries.
func (r *PgxCashBookRepository) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM cash_book_entries;`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute cash balance: %w", err)
	}
	return balance, nil
}
