package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"equipment-tracker/internal/db"
	"equipment-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// EquipmentQueriesInterface определяет интерфейс для запросов к оборудованию
type EquipmentQueriesInterface interface {
	AddEquipment(ctx context.Context, userID int64, equipmentType string, inventoryID int64) (*models.Equipment, error)
	GetEquipment(ctx context.Context, id int64) (*models.Equipment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.EquipmentWithStatus, error)
	DeleteEquipment(ctx context.Context, id int64) error
}

// EquipmentQueries содержит методы запросов для работы с оборудованием
type EquipmentQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewEquipmentQueries создает новый экземпляр EquipmentQueries
func NewEquipmentQueries(db *db.Database) *EquipmentQueries {
	return &EquipmentQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// AddEquipment закрепляет оборудование за пользователем.
// Повтор пары (пользователь, инвентарный номер) дает ErrEquipmentExists.
func (q *EquipmentQueries) AddEquipment(ctx context.Context, userID int64, equipmentType string, inventoryID int64) (*models.Equipment, error) {
	query := q.sq.
		Insert("equipment").
		Columns("user_id", "equipment_type", "inventory_id").
		Values(userID, equipmentType, inventoryID).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEquipmentExists
		}
		return nil, fmt.Errorf("failed to add equipment: %w", err)
	}

	return &models.Equipment{
		ID:          id,
		UserID:      userID,
		Type:        equipmentType,
		InventoryID: inventoryID,
	}, nil
}

// GetEquipment получает оборудование по идентификатору
func (q *EquipmentQueries) GetEquipment(ctx context.Context, id int64) (*models.Equipment, error) {
	return getEquipment(ctx, q.db, q.sq, id)
}

func getEquipment(ctx context.Context, ext sqlx.QueryerContext, sb squirrel.StatementBuilderType, id int64) (*models.Equipment, error) {
	query := sb.
		Select("id", "user_id", "equipment_type", "inventory_id").
		From("equipment").
		Where(squirrel.Eq{"id": id})

	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var equipment models.Equipment
	err = ext.QueryRowxContext(ctx, qsql, args...).StructScan(&equipment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	return &equipment, nil
}

// ListByUser возвращает оборудование пользователя со статусом последней заявки, по типу
func (q *EquipmentQueries) ListByUser(ctx context.Context, userID int64) ([]models.EquipmentWithStatus, error) {
	lastStatus := q.sq.
		Select("r.status").
		From("requests r").
		Where("r.equipment_id = eq.id").
		OrderBy("r.id DESC").
		Limit(1)

	query := q.sq.
		Select("eq.id", "eq.user_id", "eq.equipment_type", "eq.inventory_id").
		Column(squirrel.Alias(lastStatus, "last_request_status")).
		From("equipment eq").
		Where(squirrel.Eq{"eq.user_id": userID}).
		OrderBy("eq.equipment_type", "eq.id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	items := make([]models.EquipmentWithStatus, 0)
	err = q.db.SelectContext(ctx, &items, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}

	for i := range items {
		if items[i].LastRequestStatus.Valid {
			items[i].HasActiveRequest = models.RequestStatus(items[i].LastRequestStatus.String).IsActive()
		}
	}

	return items, nil
}

// DeleteEquipment удаляет заявки по оборудованию и само оборудование в одной транзакции
func (q *EquipmentQueries) DeleteEquipment(ctx context.Context, id int64) error {
	deleteRequests, reqArgs, err := q.sq.
		Delete("requests").
		Where(squirrel.Eq{"equipment_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	deleteEquipment, eqArgs, err := q.sq.
		Delete("equipment").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	return q.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteRequests, reqArgs...); err != nil {
			return fmt.Errorf("failed to delete equipment requests: %w", err)
		}
		if _, err := tx.ExecContext(ctx, deleteEquipment, eqArgs...); err != nil {
			return fmt.Errorf("failed to delete equipment: %w", err)
		}
		return nil
	})
}
