package pgsql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
)

func newTestContractRepository(pool DBPool) *PgxContractRepository {
	cashRepo := newPgxCashBookRepository(pool)
	ledgerRepo := newPgxLedgerRepository(pool, cashRepo)
	logRepo := newPgxContractLogRepository(pool)
	return newPgxContractRepository(pool, ledgerRepo, cashRepo, logRepo).(*PgxContractRepository)
}

func accountRows(accountID string, clientID string, balance string, now time.Time) *pgxmock.Rows {
	actor := uuid.NewString()
	return pgxmock.NewRows([]string{"account_id", "client_id", "balance", "created_at", "created_by", "last_updated_at", "last_updated_by"}).
		AddRow(accountID, clientID, decimal.RequireFromString(balance), now, actor, now, actor)
}

func TestContractRepository_NextContractCode(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newTestContractRepository(mock)

	query := `
		INSERT INTO contract_sequences \(prefix, year, last_value\)
		VALUES \(\$1, \$2, 1\)
		ON CONFLICT \(prefix, year\)
		DO UPDATE SET last_value = contract_sequences\.last_value \+ 1
		RETURNING last_value;
	`

	t.Run("formats the claimed sequence", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		mock.ExpectQuery(query).
			WithArgs("CTR", 2026).
			WillReturnRows(pgxmock.NewRows([]string{"last_value"}).AddRow(int64(7)))

		code, err := repo.nextContractCode(ctx, tx, "CTR", 2026)
		assert.NoError(t, err)
		assert.Equal(t, "CTR-2026-000007", code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		dbErr := errors.New("sequence error")
		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		mock.ExpectQuery(query).WithArgs("RNG", 2026).WillReturnError(dbErr)

		_, err = repo.nextContractCode(ctx, tx, "RNG", 2026)
		assert.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContractRepository_ApplyMovement(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newTestContractRepository(mock)
	now := time.Now()
	accountID := uuid.NewString()
	clientID := uuid.NewString()

	lockQuery := `
		SELECT account_id, client_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_accounts
		WHERE account_id = \$1
		FOR UPDATE;
	`

	debit := domain.LedgerMovement{
		MovementID: uuid.NewString(),
		AccountID:  accountID,
		Direction:  domain.MovementDebit,
		Origin:     domain.OriginRenegotiationSettlement,
		Amount:     decimal.RequireFromString("30000"),
		OccurredAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt: now, CreatedBy: clientID, LastUpdatedAt: now, LastUpdatedBy: clientID,
		},
	}

	t.Run("unguarded debit may take the balance negative", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		mock.ExpectQuery(lockQuery).
			WithArgs(accountID).
			WillReturnRows(accountRows(accountID, clientID, "10000", now))
		mock.ExpectExec(`INSERT INTO ledger_movements`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(`UPDATE ledger_accounts`).
			WithArgs(accountID, decimal.RequireFromString("-20000"), now, clientID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err = repo.applyMovementTx(ctx, tx, debit, false)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guarded debit rejects overdraft", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := mock.Begin(ctx)
		require.NoError(t, err)

		mock.ExpectQuery(lockQuery).
			WithArgs(accountID).
			WillReturnRows(accountRows(accountID, clientID, "10000", now))

		err = repo.applyMovementTx(ctx, tx, debit, true)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestContractRepository_SavePayment_RechecksUnderLock(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newTestContractRepository(mock)
	now := time.Now()
	paid := decimal.RequireFromString("400")
	inst := domain.Installment{
		InstallmentID: uuid.NewString(),
		ContractID:    uuid.NewString(),
		Number:        1,
		DueDate:       now,
		Amount:        paid,
		Status:        domain.InstallmentPaid,
		PaidAmount:    &paid,
	}
	persist := portsrepo.PaymentPersist{Installment: inst}

	lockQuery := `SELECT status FROM installments WHERE installment_id = \$1 FOR UPDATE;`

	t.Run("already paid at commit time", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(inst.InstallmentID).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow("PAID"))
		mock.ExpectRollback()

		err := repo.SavePayment(ctx, persist)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("installment vanished", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(inst.InstallmentID).
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectRollback()

		err := repo.SavePayment(ctx, persist)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
