package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// pgUniqueViolation код ошибки нарушения уникальности PostgreSQL
const pgUniqueViolation = "23505"

// activeSlotConstraint частичный уникальный индекс на (session_date, slot_code)
// по активным статусам — гарантия "не больше одной активной сессии на слот"
const activeSlotConstraint = "sessions_active_slot_uniq"

var sessionColumns = []string{
	"id",
	"member_id",
	"slot_code",
	"session_date",
	"start_time",
	"end_time",
	"credit_cost",
	"booking_ref",
	"status",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичного уникального индекса по активному слоту
// транслируется в ErrSlotTaken — это последний рубеж защиты от двойного
// бронирования при конкурентных запросах
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"member_id",
			"slot_code",
			"session_date",
			"start_time",
			"end_time",
			"credit_cost",
			"booking_ref",
			"status",
		).
		Values(
			s.MemberID,
			s.SlotCode,
			s.SessionDate,
			s.StartTime,
			s.EndTime,
			s.CreditCost,
			s.BookingRef,
			s.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation && pqErr.Constraint == activeSlotConstraint {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку (отмена конкурирует со sweep)
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %w", ErrScanRow, err)
	}

	return s, nil
}

// GetActiveBySlot получает активную сессию на пару (дата, слот)
// Возвращает ErrSessionNotFound, если слот свободен.
// Внутри транзакции добавляет FOR UPDATE — проверка доступности и вставка
// выполняются под блокировкой
func (r *Repository) GetActiveBySlot(ctx context.Context, date time.Time, slotCode string) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{
			"session_date": date,
			"slot_code":    slotCode,
			"status":       statusStrings(domain.ActiveStatuses),
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveBySlot - scan session: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListActiveInRange получает все активные сессии в диапазоне дат [from, to]
// Используется Availability Engine для построения сетки месяца
func (r *Repository) ListActiveInRange(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.GtOrEq{"session_date": from}).
		Where(squirrel.LtOrEq{"session_date": to}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("session_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveInRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// ListUpcoming получает предстоящие сессии участника:
// активные статусы, дата не раньше from, сортировка по дате и времени начала (ASC)
func (r *Repository) ListUpcoming(ctx context.Context, memberID int64, from time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.GtOrEq{"session_date": from}).
		OrderBy("session_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// ListPast получает прошедшие сессии участника:
// финальные статусы, дата строго раньше before, сортировка по дате (DESC)
func (r *Repository) ListPast(ctx context.Context, memberID int64, before time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"member_id": memberID}).
		Where(squirrel.Eq{"status": statusStrings(domain.TerminalStatuses)}).
		Where(squirrel.Lt{"session_date": before}).
		OrderBy("session_date DESC, start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPast - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPast - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSessions(rows)
}

// CancelActive переводит сессию в статус cancelled
// Статусный предикат в WHERE делает операцию идемпотентной по отношению
// к конкурентному sweep: финальную сессию отменить нельзя
func (r *Repository) CancelActive(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": statusStrings(domain.ActiveStatuses),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelActive - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelActive - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNotCancellable
	}

	return nil
}

// CompleteExpired переводит в completed все подтверждённые сессии,
// чьё время окончания уже прошло. Идемпотентна: статусный предикат
// не даёт повторно обработать уже завершённые или отменённые сессии
func (r *Repository) CompleteExpired(ctx context.Context, today time.Time, now types.TimeString) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Or{
			squirrel.Lt{"session_date": today},
			squirrel.And{
				squirrel.Eq{"session_date": today},
				squirrel.Lt{"end_time": now},
			},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteExpired - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanSession сканирует одну строку в сессию
func (r *Repository) scanSession(row *sql.Row) (*domain.Session, error) {
	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.MemberID,
		&s.SlotCode,
		&s.SessionDate,
		&s.StartTime,
		&s.EndTime,
		&s.CreditCost,
		&s.BookingRef,
		&s.Status,
		&s.CancellationReason,
		&s.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func (r *Repository) scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var s domain.Session
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.MemberID,
			&s.SlotCode,
			&s.SessionDate,
			&s.StartTime,
			&s.EndTime,
			&s.CreditCost,
			&s.BookingRef,
			&s.Status,
			&s.CancellationReason,
			&s.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %w", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %w", ErrScanRow, err)
	}

	return sessions, nil
}

// statusStrings конвертирует статусы в строки для squirrel.Eq
func statusStrings(statuses []domain.SessionStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
