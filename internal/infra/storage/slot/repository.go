package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"code",
	"start_time",
	"end_time",
	"weekdays",
	"credit_cost",
	"created_at",
}

// Repository репозиторий конфигурации слотов
// Слоты настраиваются один раз (миграцией либо админ-инструментом)
// и читаются сервисом как неизменяемые
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает все настроенные слоты, отсортированные по времени начала
func (r *Repository) List(ctx context.Context) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		OrderBy("start_time ASC, code ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}

// GetByCode получает слот по стабильному коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	var weekdays pq.Int64Array
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Code,
		&s.StartTime,
		&s.EndTime,
		&weekdays,
		&s.CreditCost,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan slot: %w", ErrScanRow, err)
	}

	s.Weekdays = toIntSlice(weekdays)
	s.CreatedAt = createdAt.Time

	return &s, nil
}

// scanSlot сканирует одну строку результата в слот
func scanSlot(rows *sql.Rows) (*domain.Slot, error) {
	var s domain.Slot
	var weekdays pq.Int64Array
	var createdAt sql.NullTime

	err := rows.Scan(
		&s.ID,
		&s.Code,
		&s.StartTime,
		&s.EndTime,
		&weekdays,
		&s.CreditCost,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	s.Weekdays = toIntSlice(weekdays)
	s.CreatedAt = createdAt.Time

	return &s, nil
}

// toIntSlice конвертирует pq.Int64Array (колонка smallint[]) в []int
func toIntSlice(arr pq.Int64Array) []int {
	out := make([]int, len(arr))
	for i, v := range arr {
		out[i] = int(v)
	}
	return out
}
