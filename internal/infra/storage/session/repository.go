package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	"github.com/m04kA/FTM-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FTM-BookingService/pkg/psqlbuilder"
)

const sessionColumns = "id, trainer_id, source_template_id, session_date, start_time, end_time, capacity, confirmed_count, closed, created_at, updated_at"

// upsertConflictClause цель конфликта для материализации сессии из шаблона.
// uq_sessions_template_date - частичный индекс, поэтому предикат WHERE
// обязателен: без него Postgres не выведет индекс для ON CONFLICT (42P10)
const upsertConflictClause = "ON CONFLICT (source_template_id, session_date) WHERE source_template_id IS NOT NULL DO UPDATE SET updated_at = NOW()"

// Repository репозиторий сессий
// Владеет счетчиком confirmed_count: никакой другой код не читает-изменяет
// его вне операций TryOccupy и Release
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает ad hoc сессию (без шаблона)
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"trainer_id",
			"source_template_id",
			"session_date",
			"start_time",
			"end_time",
			"capacity",
		).
		Values(
			s.TrainerID,
			s.SourceTemplateID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Capacity,
		).
		Suffix("RETURNING id, confirmed_count, closed, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ConfirmedCount,
		&s.Closed,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetOrCreateForTemplate материализует сессию из шаблона на дату
// Идемпотентна: повторный вызов для той же пары (шаблон, дата) возвращает
// существующую строку вместо создания дубликата. Реализовано единственным
// INSERT ... ON CONFLICT по уникальному индексу (source_template_id, session_date),
// поэтому конкурентные материализации не создают двойных слотов
func (r *Repository) GetOrCreateForTemplate(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"trainer_id",
			"source_template_id",
			"session_date",
			"start_time",
			"end_time",
			"capacity",
		).
		Values(
			s.TrainerID,
			s.SourceTemplateID,
			s.Date,
			s.StartTime,
			s.EndTime,
			s.Capacity,
		).
		Suffix(upsertConflictClause).
		Suffix("RETURNING " + sessionColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateForTemplate - build upsert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	result, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateForTemplate - execute upsert: %v", ErrExecQuery, err)
	}

	return result, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"trainer_id",
		"source_template_id",
		"session_date",
		"start_time",
		"end_time",
		"capacity",
		"confirmed_count",
		"closed",
		"created_at",
		"updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	result, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetByTrainerAndDate получает сессии тренера на дату
func (r *Repository) GetByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"trainer_id",
		"source_template_id",
		"session_date",
		"start_time",
		"end_time",
		"capacity",
		"confirmed_count",
		"closed",
		"created_at",
		"updated_at",
	).
		From("sessions").
		Where(squirrel.Eq{"trainer_id": trainerID}).
		Where(squirrel.Eq{"session_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTrainerAndDate - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTrainerAndDate - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// TryOccupy атомарно занимает одно место в сессии
// Проверка confirmed_count < capacity и инкремент выполняются одним
// условным UPDATE - это единственная точка, гарантирующая отсутствие
// overbooking при конкурентных запросах на одну сессию. Запросы к разным
// сессиям друг с другом не конкурируют
func (r *Repository) TryOccupy(ctx context.Context, sessionID int64) (*domain.OccupancyToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("confirmed_count", squirrel.Expr("confirmed_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionID}).
		Where(squirrel.Eq{"closed": false}).
		Where(squirrel.Expr("confirmed_count < capacity")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: TryOccupy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TryOccupy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: TryOccupy - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return &domain.OccupancyToken{SessionID: sessionID}, nil
	}

	// Условие не выполнилось: различаем отсутствие сессии, закрытую сессию
	// и исчерпанную вместимость
	s, err := r.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s.Closed {
		return nil, ErrSessionClosed
	}
	return nil, ErrSessionFull
}

// Release возвращает одно место в сессию
// Декремент не опускает счетчик ниже нуля; повторный Release по уже
// отменённому бронированию не выполняется (no-op обеспечивает таблица
// переходов статусов на уровне сервиса)
func (r *Repository) Release(ctx context.Context, sessionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("confirmed_count", squirrel.Expr("confirmed_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sessionID}).
		Where(squirrel.Expr("confirmed_count > 0")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateCapacity обновляет вместимость сессии
// Новая вместимость не может быть меньше текущего количества занятых мест
func (r *Repository) UpdateCapacity(ctx context.Context, id int64, capacity int) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("capacity", capacity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.LtOrEq{"confirmed_count": capacity}).
		Suffix("RETURNING " + sessionColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - build update query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	result, err := scanSession(row)
	if err == sql.ErrNoRows {
		// Либо сессии нет, либо вместимость меньше занятости
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrCapacityBelowOccupancy
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCapacity - scan session: %v", ErrScanRow, err)
	}

	return result, nil
}

// Close мягко закрывает сессию (перестает принимать бронирования)
// Закрытие запрещено, пока в сессии есть занятые места
func (r *Repository) Close(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("closed", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"confirmed_count": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Close - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Close - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Close - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrSessionOccupied
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TrainerID,
		&s.SourceTemplateID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.ConfirmedCount,
		&s.Closed,
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
