package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"equipment-tracker/internal/db"
	"equipment-tracker/internal/models"

	"github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "username", "password", "full_name", "email", "role"}

// UserQueriesInterface определяет интерфейс для запросов к пользователям
type UserQueriesInterface interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UserExists(ctx context.Context, username string) (bool, error)
	ListTechnicians(ctx context.Context, excludeUsername string) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserQueries содержит методы запросов для работы с пользователями
type UserQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewUserQueries создает новый экземпляр UserQueries
func NewUserQueries(db *db.Database) *UserQueries {
	return &UserQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// CreateUser создает нового пользователя. Занятые имя или email дают ErrUserExists.
func (q *UserQueries) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	query := q.sq.
		Insert("users").
		Columns("username", "password", "full_name", "email", "role").
		Values(user.Username, user.Password, user.FullName, user.Email, user.Role).
		Suffix("RETURNING id")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var id int64
	err = q.db.QueryRowContext(ctx, sql, args...).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrUserExists
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// Authenticate ищет пользователя по точному совпадению имени и пароля
func (q *UserQueries) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	query := q.sq.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		Where(squirrel.Eq{"password": password}).
		Limit(1)

	return q.getUser(ctx, query)
}

// GetUserByID получает пользователя по идентификатору
func (q *UserQueries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := q.sq.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id})

	return q.getUser(ctx, query)
}

func (q *UserQueries) getUser(ctx context.Context, query squirrel.SelectBuilder) (*models.User, error) {
	qsql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var user models.User
	err = q.db.QueryRowxContext(ctx, qsql, args...).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// UserExists проверяет, существует ли пользователь с таким именем
func (q *UserQueries) UserExists(ctx context.Context, username string) (bool, error) {
	query := q.sq.
		Select("1").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1)

	qsql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = q.db.QueryRowContext(ctx, qsql, args...).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return true, nil
}

// ListTechnicians возвращает всех техников, кроме учетной записи excludeUsername
func (q *UserQueries) ListTechnicians(ctx context.Context, excludeUsername string) ([]models.User, error) {
	query := q.sq.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role": models.RoleTechnician}).
		Where(squirrel.NotEq{"username": excludeUsername}).
		OrderBy("id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	users := make([]models.User, 0)
	err = q.db.SelectContext(ctx, &users, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}

	return users, nil
}

// DeleteUser удаляет пользователя. Оборудование и заявки удаляются каскадно.
// Отсутствующий пользователь не считается ошибкой.
func (q *UserQueries) DeleteUser(ctx context.Context, id int64) error {
	query := q.sq.
		Delete("users").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.db.ExecContext(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// SeedDefaultTechnician создает техника по умолчанию, если его еще нет
func (q *UserQueries) SeedDefaultTechnician(ctx context.Context, seed models.User) error {
	exists, err := q.UserExists(ctx, seed.Username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	seed.Role = models.RoleTechnician
	if _, err := q.CreateUser(ctx, &seed); err != nil && !errors.Is(err, ErrUserExists) {
		return fmt.Errorf("failed to seed technician: %w", err)
	}

	return nil
}
