package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки нарушения уникальности PostgreSQL
const pgUniqueViolation = "23505"

// refundRefConstraint частичный уникальный индекс по reference для refund-записей:
// на один booking_ref возможен максимум один возврат
const refundRefConstraint = "ledger_entries_refund_ref_uniq"

var entryColumns = []string{
	"id",
	"member_id",
	"entry_type",
	"amount",
	"unit_price_minor",
	"reference",
	"charge_id",
	"created_at",
}

// Repository репозиторий кредитного леджера
// Таблица append-only: никаких UPDATE и DELETE, корректировки — только
// новыми записями (refund)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория леджера
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в леджер
// Повторный refund по тому же reference нарушает уникальный индекс
// и транслируется в ErrAlreadyRefunded
func (r *Repository) Append(ctx context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ledger_entries").
		Columns(
			"member_id",
			"entry_type",
			"amount",
			"unit_price_minor",
			"reference",
			"charge_id",
		).
		Values(
			e.MemberID,
			e.Type,
			e.Amount,
			e.UnitPriceMinor,
			e.Reference,
			e.ChargeID,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &createdAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == refundRefConstraint {
			return nil, ErrAlreadyRefunded
		}
		return nil, fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	e.CreatedAt = createdAt.Time

	return e, nil
}

// SumByMember вычисляет баланс участника как сумму знаковых amount
// Баланс никогда не хранится — всегда пересчитывается по записям
func (r *Repository) SumByMember(ctx context.Context, memberID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("ledger_entries").
		Where(squirrel.Eq{"member_id": memberID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumByMember - build select query: %v", ErrBuildQuery, err)
	}

	var balance int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&balance); err != nil {
		return 0, fmt.Errorf("%w: SumByMember - scan balance: %w", ErrScanRow, err)
	}

	return balance, nil
}

// ListByMember получает все записи участника, сначала новые
func (r *Repository) ListByMember(ctx context.Context, memberID int64) ([]*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("ledger_entries").
		Where(squirrel.Eq{"member_id": memberID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMember - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetConsumeByReference получает consume-запись по booking_ref
// Используется при возврате, чтобы вернуть ровно списанную сумму
func (r *Repository) GetConsumeByReference(ctx context.Context, reference string) (*domain.LedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("ledger_entries").
		Where(squirrel.Eq{
			"entry_type": domain.EntryConsume,
			"reference":  reference,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConsumeByReference - build select query: %v", ErrBuildQuery, err)
	}

	e, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConsumeByReference - scan entry: %w", ErrScanRow, err)
	}

	return e, nil
}

// HasRefundForReference проверяет, был ли уже возврат по booking_ref
// Предварительная проверка перед Append: даёт чистую ошибку без обращения
// к уникальному индексу (который остаётся последним рубежом)
func (r *Repository) HasRefundForReference(ctx context.Context, reference string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(1)").
		From("ledger_entries").
		Where(squirrel.Eq{
			"entry_type": domain.EntryRefund,
			"reference":  reference,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasRefundForReference - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasRefundForReference - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// scanEntry сканирует одну строку в запись леджера
func (r *Repository) scanEntry(row *sql.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var createdAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.MemberID,
		&e.Type,
		&e.Amount,
		&e.UnitPriceMinor,
		&e.Reference,
		&e.ChargeID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt.Time

	return &e, nil
}

// scanEntries сканирует результаты запроса в слайс записей
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.LedgerEntry, error) {
	entries := make([]*domain.LedgerEntry, 0)

	for rows.Next() {
		var e domain.LedgerEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.MemberID,
			&e.Type,
			&e.Amount,
			&e.UnitPriceMinor,
			&e.Reference,
			&e.ChargeID,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %w", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}
