package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/mapping"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/pagination"
)

const movementColumns = `movement_id, account_id, direction, origin, amount, description, occurred_at,
	contract_id, installment_id, reverses_movement_id, running_balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
	cashRepo portsrepo.CashBookRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for client accounts and
// movements. The cash-book repository is injected so deposits and withdrawals
// can write their mirroring entry inside the same transaction.
func newPgxLedgerRepository(pool DBPool, cashRepo portsrepo.CashBookRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		cashRepo:       cashRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// CreateAccount persists a new client account with a zero balance.
func (r *PgxLedgerRepository) CreateAccount(ctx context.Context, account domain.LedgerAccount) error {
	model := mapping.ToModelLedgerAccount(account)
	query := `
		INSERT INTO ledger_accounts (account_id, client_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		model.AccountID,
		model.ClientID,
		model.Balance,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: account for client %s", apperrors.ErrDuplicate, account.ClientID)
		}
		return fmt.Errorf("failed to insert account %s: %w", model.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxLedgerRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	return r.findAccount(ctx, "account_id", accountID)
}

// FindAccountByClientID retrieves the account owned by a client.
func (r *PgxLedgerRepository) FindAccountByClientID(ctx context.Context, clientID string) (*domain.LedgerAccount, error) {
	return r.findAccount(ctx, "client_id", clientID)
}

func (r *PgxLedgerRepository) findAccount(ctx context.Context, column string, value string) (*domain.LedgerAccount, error) {
	query := `
		SELECT account_id, client_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_accounts
		WHERE ` + column + ` = $1;
	`
	var model models.LedgerAccount
	err := r.Pool.QueryRow(ctx, query, value).Scan(
		&model.AccountID,
		&model.ClientID,
		&model.Balance,
		&model.CreatedAt,
		&model.CreatedBy,
		&model.LastUpdatedAt,
		&model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by %s %s: %w", column, value, err)
	}

	account := mapping.ToDomainLedgerAccount(model)
	return &account, nil
}

// FindAccountByIDForUpdate retrieves and locks an account row within an
// existing transaction.
func (r *PgxLedgerRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.LedgerAccount, error) {
	query := `
		SELECT account_id, client_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_accounts
		WHERE account_id = $1
		FOR UPDATE;
	`
	var model models.LedgerAccount
	err := tx.QueryRow(ctx, query, accountID).Scan(
		&model.AccountID,
		&model.ClientID,
		&model.Balance,
		&model.CreatedAt,
		&model.CreatedBy,
		&model.LastUpdatedAt,
		&model.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	account := mapping.ToDomainLedgerAccount(model)
	return &account, nil
}

// UpdateAccountBalanceInTx sets an account's balance within an existing
// transaction. The caller must hold the row lock.
func (r *PgxLedgerRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE ledger_accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, newBalance, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertMovementInTx appends a movement row within an existing transaction.
func (r *PgxLedgerRepository) InsertMovementInTx(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement) error {
	model := mapping.ToModelLedgerMovement(movement)
	query := `
		INSERT INTO ledger_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		model.MovementID,
		model.AccountID,
		model.Direction,
		model.Origin,
		model.Amount,
		model.Description,
		model.OccurredAt,
		model.ContractID,
		model.InstallmentID,
		model.ReversesMovementID,
		model.RunningBalance,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", model.MovementID, err)
	}
	return nil
}

// SaveMovementWithCashEntry appends a movement, updates the account balance
// and writes the mirroring cash-book entry in one transaction. Debits that
// would take the balance negative are rejected with ErrInsufficientFunds.
func (r *PgxLedgerRepository) SaveMovementWithCashEntry(ctx context.Context, persist portsrepo.MovementWithCashEntry) (*domain.LedgerMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	movement := persist.Movement
	account, err := r.FindAccountByIDForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return nil, err
	}

	newBalance := account.Balance.Add(movement.SignedAmount())
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, movement %s", apperrors.ErrInsufficientFunds, account.Balance, movement.SignedAmount())
	}

	movement.RunningBalance = newBalance
	if err := r.InsertMovementInTx(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := r.UpdateAccountBalanceInTx(ctx, tx, movement.AccountID, newBalance, movement.LastUpdatedBy, movement.LastUpdatedAt); err != nil {
		return nil, err
	}
	if err := r.cashRepo.InsertEntryInTx(ctx, tx, persist.CashEntry); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &movement, nil
}

// ListMovementsByAccountID retrieves a paginated statement for an account
// using token-based pagination, newest first.
func (r *PgxLedgerRepository) ListMovementsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.LedgerMovement, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + movementColumns + `
		FROM ledger_movements
		WHERE account_id = $1
	`
	orderByClause := `ORDER BY occurred_at DESC, created_at DESC`

	args := []interface{}{accountID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastOccurredAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		query += ` AND (occurred_at, created_at) < ($2, $3)`
		args = append(args, lastOccurredAt, lastCreatedAt)
	}

	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query movements for account %s: %w", accountID, err)
	}
	defer rows.Close()

	movements := []models.LedgerMovement{}
	for rows.Next() {
		var m models.LedgerMovement
		if err := scanMovement(rows, &m); err != nil {
			return nil, nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating movement rows: %w", err)
	}

	var token *string
	if len(movements) > limit {
		movements = movements[:limit]
		last := movements[len(movements)-1]
		t := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		token = &t
	}

	return mapping.ToDomainLedgerMovementSlice(movements), token, nil
}

// scanMovement scans one ledger_movements row in movementColumns order.
func scanMovement(row pgx.Row, m *models.LedgerMovement) error {
	return row.Scan(
		&m.MovementID,
		&m.AccountID,
		&m.Direction,
		&m.Origin,
		&m.Amount,
		&m.Description,
		&m.OccurredAt,
		&m.ContractID,
		&m.InstallmentID,
		&m.ReversesMovementID,
		&m.RunningBalance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}
