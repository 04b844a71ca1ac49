// Package simpletxmanager управление транзакциями поверх обычного *sql.DB
// Используется, когда сбор метрик выключен в конфигурации
package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/GMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/GMS-BookingService/pkg/txmanager"
)

// maxSerializableRetries максимальное число повторов при ошибке сериализации
const maxSerializableRetries = 3

// TransactionManager выполняет функции внутри транзакций *sql.DB
type TransactionManager struct {
	db *sql.DB
}

// NewTransactionManager создает новый transaction manager
func NewTransactionManager(db *sql.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, fn)
}

// DoSerializable выполняет fn в сериализуемой транзакции с повторами
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt < maxSerializableRetries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !txmanager.IsSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("serialization retries exhausted: %w", err)
}

// DoReadOnly выполняет fn в read-only транзакции
func (m *TransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", txmanager.ErrBeginTx, err)
	}

	wrapped := &dbmetrics.SqlTxWrapper{Tx: tx}

	defer func() {
		if p := recover(); p != nil {
			_ = wrapped.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, wrapped)); err != nil {
		_ = wrapped.Rollback()
		return err
	}

	// Цепочка ошибок сохраняется, чтобы IsSerializationFailure
	// распознал 40001/40P01 на COMMIT
	if err := wrapped.Commit(); err != nil {
		return fmt.Errorf("%w: %w", txmanager.ErrCommitTx, err)
	}

	return nil
}
