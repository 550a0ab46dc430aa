package pgsql

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
)

func TestCashBookRepository_SaveReversal(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := newPgxCashBookRepository(mock)
	now := time.Now()

	original := domain.CashBookEntry{
		EntryID:    uuid.NewString(),
		Category:   domain.CashExpense,
		Amount:     decimal.RequireFromString("-120.50"),
		OccurredAt: now,
		ActorID:    uuid.NewString(),
		CreatedAt:  now,
	}
	reversal := domain.CashBookEntry{
		EntryID:         uuid.NewString(),
		Category:        original.Category,
		Amount:          original.Amount.Neg(),
		OccurredAt:      now,
		ReversesEntryID: &original.EntryID,
		ActorID:         original.ActorID,
		CreatedAt:       now,
	}

	lockQuery := `SELECT entry_id FROM cash_book_entries WHERE entry_id = \$1 FOR UPDATE;`
	existsQuery := `SELECT EXISTS \(SELECT 1 FROM cash_book_entries WHERE reverses_entry_id = \$1\);`

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(original.EntryID).
			WillReturnRows(pgxmock.NewRows([]string{"entry_id"}).AddRow(original.EntryID))
		mock.ExpectQuery(existsQuery).
			WithArgs(original.EntryID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`INSERT INTO cash_book_entries`).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()
		mock.ExpectRollback()

		err := repo.SaveReversal(ctx, original, reversal)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already reversed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(original.EntryID).
			WillReturnRows(pgxmock.NewRows([]string{"entry_id"}).AddRow(original.EntryID))
		mock.ExpectQuery(existsQuery).
			WithArgs(original.EntryID).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.SaveReversal(ctx, original, reversal)
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
