package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/andreprog02/saas-gestao-financeira/internal/apperrors"
	"github.com/andreprog02/saas-gestao-financeira/internal/core/domain"
	portsrepo "github.com/andreprog02/saas-gestao-financeira/internal/core/ports/repositories"
	"github.com/andreprog02/saas-gestao-financeira/internal/models"
	"github.com/andreprog02/saas-gestao-financeira/internal/utils/mapping"
)

const contractColumns = `contract_id, contract_code, client_id, installment_count, originating_contract_id,
	partner_id, commission_percent, principal, monthly_rate_percent, first_due_date,
	applied_installment, total_contract, total_interest, rounding_adjustment,
	has_late_fee, late_fee_percent, moratory_monthly_percent, status, notes,
	cancelled_at, cancelled_by, cancellation_reason, cancellation_notes,
	created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, contract_id, number, due_date, amount, status,
	payment_date, paid_amount, created_at, created_by, last_updated_at, last_updated_by`

type PgxContractRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryFacade
	cashRepo   portsrepo.CashBookRepositoryFacade
	logRepo    portsrepo.ContractLogRepositoryFacade
}

// newPgxContractRepository creates a new repository for contracts and their
// schedules. The sibling repositories are injected so the multi-table atomic
// units can reuse their in-transaction writers.
func newPgxContractRepository(pool DBPool, ledgerRepo portsrepo.LedgerRepositoryFacade, cashRepo portsrepo.CashBookRepositoryFacade, logRepo portsrepo.ContractLogRepositoryFacade) portsrepo.ContractRepositoryWithTx {
	return &PgxContractRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
		cashRepo:       cashRepo,
		logRepo:        logRepo,
	}
}

// Ensure PgxContractRepository implements portsrepo.ContractRepositoryWithTx
var _ portsrepo.ContractRepositoryWithTx = (*PgxContractRepository)(nil)

// nextContractCode claims the next value of the per-prefix yearly sequence
// within the given transaction and formats the contract code.
func (r *PgxContractRepository) nextContractCode(ctx context.Context, tx pgx.Tx, prefix string, year int) (string, error) {
	query := `
		INSERT INTO contract_sequences (prefix, year, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year)
		DO UPDATE SET last_value = contract_sequences.last_value + 1
		RETURNING last_value;
	`
	var seq int64
	if err := tx.QueryRow(ctx, query, prefix, year).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to claim contract sequence %s/%d: %w", prefix, year, err)
	}
	return fmt.Sprintf("%s-%d-%06d", prefix, year, seq), nil
}

// insertContractTx inserts a contract row within the given transaction.
func (r *PgxContractRepository) insertContractTx(ctx context.Context, tx pgx.Tx, contract domain.LoanContract) error {
	model := mapping.ToModelContract(contract)
	query := `
		INSERT INTO loan_contracts (` + contractColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
		        $20, $21, $22, $23, $24, $25, $26, $27);
	`
	_, err := tx.Exec(ctx, query,
		model.ContractID,
		model.ContractCode,
		model.ClientID,
		model.InstallmentCount,
		model.OriginatingContractID,
		model.PartnerID,
		model.CommissionPercent,
		model.Principal,
		model.MonthlyRatePercent,
		model.FirstDueDate,
		model.AppliedInstallment,
		model.TotalContract,
		model.TotalInterest,
		model.RoundingAdjustment,
		model.HasLateFee,
		model.LateFeePercent,
		model.MoratoryMonthlyPercent,
		model.Status,
		model.Notes,
		model.CancelledAt,
		model.CancelledBy,
		model.CancellationReason,
		model.CancellationNotes,
		model.CreatedAt,
		model.CreatedBy,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert contract %s: %w", model.ContractID, err)
	}
	return nil
}

// insertInstallmentsTx batch-inserts schedule lines within the given transaction.
func (r *PgxContractRepository) insertInstallmentsTx(ctx context.Context, tx pgx.Tx, installments []domain.Installment) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, inst := range installments {
		model := mapping.ToModelInstallment(inst)
		batch.Queue(query,
			model.InstallmentID,
			model.ContractID,
			model.Number,
			model.DueDate,
			model.Amount,
			model.Status,
			model.PaymentDate,
			model.PaidAmount,
			model.CreatedAt,
			model.CreatedBy,
			model.LastUpdatedAt,
			model.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute installment batch: %w", err)
	}
	return nil
}

// lockInstallmentStatus locks an installment row and returns its current status.
func (r *PgxContractRepository) lockInstallmentStatus(ctx context.Context, tx pgx.Tx, installmentID string) (domain.InstallmentStatus, error) {
	query := `SELECT status FROM installments WHERE installment_id = $1 FOR UPDATE;`
	var status string
	if err := tx.QueryRow(ctx, query, installmentID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock installment %s: %w", installmentID, err)
	}
	return domain.InstallmentStatus(status), nil
}

// updateInstallmentTx rewrites an installment's mutable fields within the
// given transaction.
func (r *PgxContractRepository) updateInstallmentTx(ctx context.Context, tx pgx.Tx, inst domain.Installment) error {
	model := mapping.ToModelInstallment(inst)
	query := `
		UPDATE installments
		SET due_date = $2, status = $3, payment_date = $4, paid_amount = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE installment_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		model.InstallmentID,
		model.DueDate,
		model.Status,
		model.PaymentDate,
		model.PaidAmount,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update installment %s: %w", model.InstallmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// applyMovementTx locks the target account, inserts the movement with its
// running balance and updates the account balance. Overdrafts are rejected
// only when rejectOverdraft is set: a renegotiation settlement may drive the
// balance negative before its replacement credit lands in the same
// transaction.
func (r *PgxContractRepository) applyMovementTx(ctx context.Context, tx pgx.Tx, movement domain.LedgerMovement, rejectOverdraft bool) error {
	account, err := r.ledgerRepo.FindAccountByIDForUpdate(ctx, tx, movement.AccountID)
	if err != nil {
		return err
	}
	newBalance := account.Balance.Add(movement.SignedAmount())
	if rejectOverdraft && newBalance.IsNegative() {
		return fmt.Errorf("%w: balance %s, movement %s", apperrors.ErrInsufficientFunds, account.Balance, movement.SignedAmount())
	}
	movement.RunningBalance = newBalance
	if err := r.ledgerRepo.InsertMovementInTx(ctx, tx, movement); err != nil {
		return err
	}
	return r.ledgerRepo.UpdateAccountBalanceInTx(ctx, tx, movement.AccountID, newBalance, movement.LastUpdatedBy, movement.LastUpdatedAt)
}

// CreateContract persists a new contract with its schedule, disbursement and
// log in one transaction, assigning the contract code from the per-prefix
// yearly sequence.
func (r *PgxContractRepository) CreateContract(ctx context.Context, creation portsrepo.ContractCreation) (*domain.LoanContract, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	contract := creation.Contract
	code, err := r.nextContractCode(ctx, tx, creation.CodePrefix, contract.CreatedAt.Year())
	if err != nil {
		return nil, err
	}
	contract.ContractCode = code

	if err := r.insertContractTx(ctx, tx, contract); err != nil {
		return nil, err
	}
	if err := r.insertInstallmentsTx(ctx, tx, creation.Installments); err != nil {
		return nil, err
	}
	if err := r.applyMovementTx(ctx, tx, creation.ClientCredit, false); err != nil {
		return nil, err
	}
	if creation.CashOutDebit != nil {
		if err := r.applyMovementTx(ctx, tx, *creation.CashOutDebit, true); err != nil {
			return nil, err
		}
	}
	if creation.CashOutEntry != nil {
		if err := r.cashRepo.InsertEntryInTx(ctx, tx, *creation.CashOutEntry); err != nil {
			return nil, err
		}
	}
	if err := r.logRepo.InsertLogInTx(ctx, tx, creation.Log); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &contract, nil
}

// SavePayment persists a full installment payment atomically. The installment
// is re-checked under lock to still be OPEN and to have no earlier OPEN
// sibling; the cash inflow, the optional commission legs and the audit log
// commit with it.
func (r *PgxContractRepository) SavePayment(ctx context.Context, persist portsrepo.PaymentPersist) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	inst := persist.Installment
	status, err := r.lockInstallmentStatus(ctx, tx, inst.InstallmentID)
	if err != nil {
		return err
	}
	if status != domain.InstallmentOpen {
		return fmt.Errorf("%w: installment %s is %s", apperrors.ErrConflict, inst.InstallmentID, status)
	}

	var earlierOpen bool
	earlierQuery := `
		SELECT EXISTS (
			SELECT 1 FROM installments
			WHERE contract_id = $1 AND number < $2 AND status = 'OPEN'
		);
	`
	if err := tx.QueryRow(ctx, earlierQuery, inst.ContractID, inst.Number).Scan(&earlierOpen); err != nil {
		return fmt.Errorf("failed to check payment order for installment %s: %w", inst.InstallmentID, err)
	}
	if earlierOpen {
		return fmt.Errorf("%w: an earlier installment of contract %s is still open", apperrors.ErrConflict, inst.ContractID)
	}

	if err := r.updateInstallmentTx(ctx, tx, inst); err != nil {
		return err
	}
	if err := r.cashRepo.InsertEntryInTx(ctx, tx, persist.CashInflow); err != nil {
		return err
	}
	if persist.CommissionOut != nil {
		if err := r.cashRepo.InsertEntryInTx(ctx, tx, *persist.CommissionOut); err != nil {
			return err
		}
	}
	if persist.PartnerCredit != nil {
		if err := r.applyMovementTx(ctx, tx, *persist.PartnerCredit, false); err != nil {
			return err
		}
	}
	if err := r.logRepo.InsertLogInTx(ctx, tx, persist.Log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SavePartialPayment persists a partial payment atomically.
func (r *PgxContractRepository) SavePartialPayment(ctx context.Context, persist portsrepo.PartialPaymentPersist) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	inst := persist.Installment
	status, err := r.lockInstallmentStatus(ctx, tx, inst.InstallmentID)
	if err != nil {
		return err
	}
	if status != domain.InstallmentOpen {
		return fmt.Errorf("%w: installment %s is %s", apperrors.ErrConflict, inst.InstallmentID, status)
	}

	if err := r.updateInstallmentTx(ctx, tx, inst); err != nil {
		return err
	}
	if err := r.cashRepo.InsertEntryInTx(ctx, tx, persist.CashInflow); err != nil {
		return err
	}
	if err := r.logRepo.InsertLogInTx(ctx, tx, persist.Log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveAutoDebit persists one batch collection atomically: the installment
// settles and the client account is debited under the same locks.
func (r *PgxContractRepository) SaveAutoDebit(ctx context.Context, persist portsrepo.AutoDebitPersist) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	inst := persist.Installment
	status, err := r.lockInstallmentStatus(ctx, tx, inst.InstallmentID)
	if err != nil {
		return err
	}
	if status != domain.InstallmentOpen {
		return fmt.Errorf("%w: installment %s is %s", apperrors.ErrConflict, inst.InstallmentID, status)
	}

	if err := r.applyMovementTx(ctx, tx, persist.ClientDebit, true); err != nil {
		return err
	}
	if err := r.updateInstallmentTx(ctx, tx, inst); err != nil {
		return err
	}
	if err := r.logRepo.InsertLogInTx(ctx, tx, persist.Log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveRenegotiation persists a full renegotiation atomically.
func (r *PgxContractRepository) SaveRenegotiation(ctx context.Context, persist portsrepo.RenegotiationPersist) (*domain.LoanContract, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// The source contract must still be renegotiable at commit time.
	original := persist.Original
	flipQuery := `
		UPDATE loan_contracts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE contract_id = $1 AND status IN ('ACTIVE', 'OVERDUE');
	`
	tag, err := tx.Exec(ctx, flipQuery, original.ContractID, string(original.Status), original.LastUpdatedAt, original.LastUpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to flip contract %s: %w", original.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: contract %s is no longer renegotiable", apperrors.ErrConflict, original.ContractID)
	}

	for _, inst := range persist.LiquidatedInstallments {
		status, err := r.lockInstallmentStatus(ctx, tx, inst.InstallmentID)
		if err != nil {
			return nil, err
		}
		if status != domain.InstallmentOpen {
			return nil, fmt.Errorf("%w: installment %s is %s", apperrors.ErrConflict, inst.InstallmentID, status)
		}
		if err := r.updateInstallmentTx(ctx, tx, inst); err != nil {
			return nil, err
		}
	}

	for _, movement := range persist.SettlementMovements {
		if err := r.applyMovementTx(ctx, tx, movement, false); err != nil {
			return nil, err
		}
	}

	newContract := persist.NewContract
	code, err := r.nextContractCode(ctx, tx, persist.NewCodePrefix, newContract.CreatedAt.Year())
	if err != nil {
		return nil, err
	}
	newContract.ContractCode = code

	if err := r.insertContractTx(ctx, tx, newContract); err != nil {
		return nil, err
	}
	if err := r.insertInstallmentsTx(ctx, tx, persist.NewInstallments); err != nil {
		return nil, err
	}
	if err := r.applyMovementTx(ctx, tx, persist.PrincipalCredit, false); err != nil {
		return nil, err
	}
	for _, entry := range persist.CashEntries {
		if err := r.cashRepo.InsertEntryInTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}
	for _, log := range persist.Logs {
		if err := r.logRepo.InsertLogInTx(ctx, tx, log); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &newContract, nil
}

// UpdateLifecycle persists a cancel or reopen atomically.
func (r *PgxContractRepository) UpdateLifecycle(ctx context.Context, change portsrepo.LifecycleChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	model := mapping.ToModelContract(change.Contract)
	query := `
		UPDATE loan_contracts
		SET status = $2, cancelled_at = $3, cancelled_by = $4, cancellation_reason = $5, cancellation_notes = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE contract_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		model.ContractID,
		model.Status,
		model.CancelledAt,
		model.CancelledBy,
		model.CancellationReason,
		model.CancellationNotes,
		model.LastUpdatedAt,
		model.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract %s: %w", model.ContractID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	for _, inst := range change.Installments {
		if err := r.updateInstallmentTx(ctx, tx, inst); err != nil {
			return err
		}
	}
	if err := r.logRepo.InsertLogInTx(ctx, tx, change.Log); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateContractStatus persists a derived status change without touching
// installments. Sticky states are never overwritten here.
func (r *PgxContractRepository) UpdateContractStatus(ctx context.Context, contractID string, status domain.ContractStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE loan_contracts
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE contract_id = $1 AND status NOT IN ('CANCELLED', 'RENEGOTIATED');
	`
	_, err := r.Pool.Exec(ctx, query, contractID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of contract %s: %w", contractID, err)
	}
	return nil
}

// FindContractByID retrieves a contract by its ID.
func (r *PgxContractRepository) FindContractByID(ctx context.Context, contractID string) (*domain.LoanContract, error) {
	return r.findContract(ctx, "contract_id", contractID)
}

// FindContractByCode retrieves a contract by its human-facing code.
func (r *PgxContractRepository) FindContractByCode(ctx context.Context, contractCode string) (*domain.LoanContract, error) {
	return r.findContract(ctx, "contract_code", contractCode)
}

func (r *PgxContractRepository) findContract(ctx context.Context, column string, value string) (*domain.LoanContract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM loan_contracts
		WHERE ` + column + ` = $1;
	`
	var m models.LoanContract
	err := scanContract(r.Pool.QueryRow(ctx, query, value), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find contract by %s %s: %w", column, value, err)
	}

	contract := mapping.ToDomainContract(m)
	return &contract, nil
}

// ListContracts retrieves contracts filtered by client and/or status.
func (r *PgxContractRepository) ListContracts(ctx context.Context, clientID string, status string, limit int, offset int) ([]domain.LoanContract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM loan_contracts
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
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	contracts := []domain.LoanContract{}
	for rows.Next() {
		var m models.LoanContract
		if err := scanContract(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		contracts = append(contracts, mapping.ToDomainContract(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contract rows: %w", err)
	}

	return contracts, nil
}

// FindInstallmentsByContractID retrieves a contract's full schedule ordered by number.
func (r *PgxContractRepository) FindInstallmentsByContractID(ctx context.Context, contractID string) ([]domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE contract_id = $1
		ORDER BY number;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for contract %s: %w", contractID, err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		var m models.Installment
		if err := scanInstallment(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}

	return mapping.ToDomainInstallmentSlice(installments), nil
}

// FindInstallmentByID retrieves a single installment.
func (r *PgxContractRepository) FindInstallmentByID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments
		WHERE installment_id = $1;
	`
	var m models.Installment
	err := scanInstallment(r.Pool.QueryRow(ctx, query, installmentID), &m)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment %s: %w", installmentID, err)
	}

	installment := mapping.ToDomainInstallment(m)
	return &installment, nil
}

// ListDueInstallments retrieves OPEN installments due on or before the
// reference date whose contracts are still collectible.
func (r *PgxContractRepository) ListDueInstallments(ctx context.Context, refDate time.Time) ([]domain.Installment, error) {
	query := `
		SELECT i.installment_id, i.contract_id, i.number, i.due_date, i.amount, i.status,
		       i.payment_date, i.paid_amount, i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
		FROM installments i
		JOIN loan_contracts c ON c.contract_id = i.contract_id
		WHERE i.status = 'OPEN'
		  AND i.due_date <= $1
		  AND c.status NOT IN ('CANCELLED', 'RENEGOTIATED')
		ORDER BY i.contract_id, i.number;
	`
	rows, err := r.Pool.Query(ctx, query, refDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query due installments: %w", err)
	}
	defer rows.Close()

	installments := []models.Installment{}
	for rows.Next() {
		var m models.Installment
		if err := scanInstallment(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan due installment row: %w", err)
		}
		installments = append(installments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due installment rows: %w", err)
	}

	return mapping.ToDomainInstallmentSlice(installments), nil
}

// scanContract scans one loan_contracts row in contractColumns order.
func scanContract(row pgx.Row, m *models.LoanContract) error {
	return row.Scan(
		&m.ContractID,
		&m.ContractCode,
		&m.ClientID,
		&m.InstallmentCount,
		&m.OriginatingContractID,
		&m.PartnerID,
		&m.CommissionPercent,
		&m.Principal,
		&m.MonthlyRatePercent,
		&m.FirstDueDate,
		&m.AppliedInstallment,
		&m.TotalContract,
		&m.TotalInterest,
		&m.RoundingAdjustment,
		&m.HasLateFee,
		&m.LateFeePercent,
		&m.MoratoryMonthlyPercent,
		&m.Status,
		&m.Notes,
		&m.CancelledAt,
		&m.CancelledBy,
		&m.CancellationReason,
		&m.CancellationNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}

// scanInstallment scans one installments row in installmentColumns order.
func scanInstallment(row pgx.Row, m *models.Installment) error {
	return row.Scan(
		&m.InstallmentID,
		&m.ContractID,
		&m.Number,
		&m.DueDate,
		&m.Amount,
		&m.Status,
		&m.PaymentDate,
		&m.PaidAmount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
}
