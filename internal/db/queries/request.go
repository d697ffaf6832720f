package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipment-tracker/internal/db"
	"equipment-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jmoiron/sqlx"
)

// RequestQueriesInterface определяет интерфейс для запросов к заявкам на замену
type RequestQueriesInterface interface {
	CreateRequest(ctx context.Context, userID, equipmentID int64) (*models.Request, error)
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) (*models.Request, error)
	Resolve(ctx context.Context, id int64, newInventoryID int64) (*models.Request, error)
	ListActive(ctx context.Context) ([]models.ActiveRequest, error)
}

// RequestQueries содержит методы запросов для работы с заявками
type RequestQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewRequestQueries создает новый экземпляр RequestQueries
func NewRequestQueries(db *db.Database) *RequestQueries {
	return &RequestQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func activeStatusValues() []string {
	values := make([]string, 0, len(models.ActiveStatuses))
	for _, s := range models.ActiveStatuses {
		values = append(values, string(s))
	}
	return values
}

// CreateRequest создает заявку в статусе pending на оборудование пользователя.
// Если по оборудованию уже есть активная заявка, возвращает ErrActiveRequestExists.
func (q *RequestQueries) CreateRequest(ctx context.Context, userID, equipmentID int64) (*models.Request, error) {
	var created *models.Request

	err := q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		equipment, err := getEquipment(ctx, tx, q.sq, equipmentID)
		if err != nil {
			return err
		}
		if equipment.UserID != userID {
			return ErrNotFound
		}

		hasActive, err := q.hasActiveRequest(ctx, tx, equipmentID)
		if err != nil {
			return err
		}
		if hasActive {
			return ErrActiveRequestExists
		}

		now := time.Now().UTC()
		sql, args, err := q.sq.
			Insert("requests").
			Columns("user_id", "equipment_id", "status", "created_at").
			Values(userID, equipmentID, string(models.StatusPending), now).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		var id int64
		if err := tx.QueryRowContext(ctx, sql, args...).Scan(&id); err != nil {
			if db.IsUniqueViolation(err) {
				return ErrActiveRequestExists
			}
			return fmt.Errorf("failed to create request: %w", err)
		}

		created = &models.Request{
			ID:          id,
			UserID:      userID,
			EquipmentID: equipmentID,
			Status:      models.StatusPending,
			CreatedAt:   now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// hasActiveRequest проверяет, есть ли по оборудованию заявка в статусе pending или accepted
func (q *RequestQueries) hasActiveRequest(ctx context.Context, tx *sqlx.Tx, equipmentID int64) (bool, error) {
	qsql, args, err := q.sq.
		Select("1").
		From("requests").
		Where(squirrel.Eq{"equipment_id": equipmentID}).
		Where(squirrel.Eq{"status": activeStatusValues()}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = tx.QueryRowContext(ctx, qsql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check active request: %w", err)
	}

	return true, nil
}

// GetRequest получает заявку по идентификатору
func (q *RequestQueries) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	return q.getRequest(ctx, q.db, id)
}

func (q *RequestQueries) getRequest(ctx context.Context, ext sqlx.QueryerContext, id int64) (*models.Request, error) {
	qsql, args, err := q.sq.
		Select("id", "user_id", "equipment_id", "status", "created_at", "resolved_at").
		From("requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var request models.Request
	err = ext.QueryRowxContext(ctx, qsql, args...).StructScan(&request)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return &request, nil
}

// UpdateStatus переводит заявку в новый статус по таблице переходов.
// Для несуществующей заявки ничего не делает и возвращает (nil, nil).
func (q *RequestQueries) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) (*models.Request, error) {
	var updated *models.Request

	err := q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := q.getRequest(ctx, tx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}

		if !current.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
		}

		resolvedAt, err := q.setStatus(ctx, tx, id, status)
		if err != nil {
			return err
		}

		current.Status = status
		current.ResolvedAt = resolvedAt
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Resolve завершает принятую заявку: записывает новый инвентарный номер оборудования
// и переводит заявку в completed. Обе записи выполняются в одной транзакции.
// Для несуществующей заявки ничего не делает и возвращает (nil, nil).
func (q *RequestQueries) Resolve(ctx context.Context, id int64, newInventoryID int64) (*models.Request, error) {
	var resolved *models.Request

	err := q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err := q.getRequest(ctx, tx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}

		if !current.Status.CanTransitionTo(models.StatusCompleted) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, models.StatusCompleted)
		}

		sql, args, err := q.sq.
			Update("equipment").
			Set("inventory_id", newInventoryID).
			Where(squirrel.Eq{"id": current.EquipmentID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
			if db.IsUniqueViolation(err) {
				return ErrEquipmentExists
			}
			return fmt.Errorf("failed to update inventory id: %w", err)
		}

		resolvedAt, err := q.setStatus(ctx, tx, id, models.StatusCompleted)
		if err != nil {
			return err
		}

		current.Status = models.StatusCompleted
		current.ResolvedAt = resolvedAt
		resolved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resolved, nil
}

// setStatus записывает статус; время решения ставится только для конечных статусов
func (q *RequestQueries) setStatus(ctx context.Context, tx *sqlx.Tx, id int64, status models.RequestStatus) (null.Time, error) {
	var resolvedAt null.Time
	var resolvedValue interface{}
	if status.IsFinal() {
		now := time.Now().UTC()
		resolvedAt = null.TimeFrom(now)
		resolvedValue = now
	}

	sql, args, err := q.sq.
		Update("requests").
		Set("status", string(status)).
		Set("resolved_at", resolvedValue).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return null.Time{}, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, sql, args...); err != nil {
		return null.Time{}, fmt.Errorf("failed to update request status: %w", err)
	}

	return resolvedAt, nil
}

// ListActive возвращает заявки в статусах pending и accepted, самые старые первыми
func (q *RequestQueries) ListActive(ctx context.Context) ([]models.ActiveRequest, error) {
	query := q.sq.
		Select(
			"r.id",
			"u.username",
			"u.full_name",
			"eq.id AS equipment_id",
			"eq.equipment_type",
			"eq.inventory_id",
			"r.status",
			"r.created_at",
		).
		From("requests r").
		Join("users u ON u.id = r.user_id").
		Join("equipment eq ON eq.id = r.equipment_id").
		Where(squirrel.Eq{"r.status": activeStatusValues()}).
		OrderBy("r.created_at ASC", "r.id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	requests := make([]models.ActiveRequest, 0)
	err = q.db.SelectContext(ctx, &requests, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active requests: %w", err)
	}

	return requests, nil
}
