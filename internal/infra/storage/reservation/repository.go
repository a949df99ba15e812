package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/pkg/dbmetrics"
	"github.com/jeffjr007/locahubaju-project/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"space_id",
	"user_id",
	"start_at",
	"end_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockSpace берёт транзакционную advisory-блокировку пространства.
// Сериализует check-then-write для одного пространства между всеми инстансами сервиса.
// Блокировка снимается при commit/rollback, поэтому вызов вне транзакции запрещён
func (r *Repository) LockSpace(ctx context.Context, spaceID string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockSpace - requires an active transaction", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", spaceID); err != nil {
		return classify("LockSpace", err)
	}
	return nil
}

// FindActiveForSpace возвращает pending и confirmed бронирования пространства.
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) FindActiveForSpace(ctx context.Context, spaceID string) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"space_id": spaceID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveForSpace - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("FindActiveForSpace - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Insert сохраняет новое бронирование. ID и временные метки задаёт вызывающий
func (r *Repository) Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			res.ID,
			res.SpaceID,
			res.UserID,
			res.Start,
			res.End,
			res.Status,
			res.CreatedAt,
			res.UpdatedAt,
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, classify("Insert - execute insert", errors.Unwrap(err))
		}
		return nil, err
	}

	return created, nil
}

// UpdateInterval меняет интервал активного бронирования
func (r *Repository) UpdateInterval(ctx context.Context, id string, start, end, updatedAt time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_at", start).
		Set("end_at", end).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, classify("UpdateInterval - execute update", errors.Unwrap(err))
		}
		return nil, err
	}

	return updated, nil
}

// UpdateStatus меняет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, classify("UpdateStatus - execute update", errors.Unwrap(err))
		}
		return nil, err
	}

	return updated, nil
}

// FindByID получает бронирование по ID. Внутри транзакции строка блокируется
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByID - build select query: %v", ErrBuildQuery, err)
	}

	found, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrScanRow) {
			return nil, classify("FindByID - execute query", errors.Unwrap(err))
		}
		return nil, err
	}

	return found, nil
}

// FindInRange возвращает бронирования всех статусов, интервал которых пересекает [from, to].
// Нулевая граница не ограничивает выборку
func (r *Repository) FindInRange(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_at ASC", "id ASC")

	if !to.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_at": to})
	}
	if !from.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"end_at": from})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("FindInRange - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// FindByUser получает бронирования пользователя, новые первыми.
// Опционально фильтрует по статусу
func (r *Repository) FindByUser(ctx context.Context, userID string, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC", "id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("FindByUser - execute query", err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует одну строку. sql.ErrNoRows превращается в ErrReservationNotFound,
// остальные ошибки оборачиваются в ErrScanRow с исходной ошибкой внутри
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.SpaceID,
		&res.UserID,
		&res.Start,
		&res.End,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, &scanError{err: err}
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// scanError ошибка сканирования, сохраняющая исходную ошибку драйвера для classify
type scanError struct {
	err error
}

func (e *scanError) Error() string {
	return fmt.Sprintf("%v: %v", ErrScanRow, e.err)
}

func (e *scanError) Is(target error) bool {
	return target == ErrScanRow
}

func (e *scanError) Unwrap() error {
	return e.err
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
