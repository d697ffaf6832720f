package queries

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"equipment-tracker/internal/db"
	"equipment-tracker/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDatabase(t *testing.T) (*db.Database, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	return &db.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}, mock
}

func setupUserQueriesTest(t *testing.T) (*UserQueries, sqlmock.Sqlmock) {
	dbInstance, mock := newMockDatabase(t)

	return &UserQueries{
		db: dbInstance,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, mock
}

var userRowColumns = []string{"id", "username", "password", "full_name", "email", "role"}

func TestCreateUser(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`INSERT INTO users (username,password,full_name,email,role) VALUES (?,?,?,?,?) RETURNING id`)

	testCases := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock)
		expectedID  int64
		expectedErr bool
	}{
		{
			name: "Успешное создание пользователя",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(expectedSQL).
					WithArgs("alice", "secret", "Alice Smith", "alice@example.com", models.RoleEmployee).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			expectedID: 7,
		},
		{
			name: "Ошибка базы данных",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(expectedSQL).
					WithArgs("alice", "secret", "Alice Smith", "alice@example.com", models.RoleEmployee).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, mock := setupUserQueriesTest(t)
			tc.mockSetup(mock)

			id, err := q.CreateUser(context.Background(), &models.User{
				Username: "alice",
				Password: "secret",
				FullName: "Alice Smith",
				Email:    "alice@example.com",
				Role:     models.RoleEmployee,
			})

			if tc.expectedErr {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrUserExists)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedID, id)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Остались невыполненные ожидания: %s", err)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`SELECT id, username, password, full_name, email, role FROM users WHERE username = ? AND password = ? LIMIT 1`)

	testCases := []struct {
		name        string
		mockSetup   func(mock sqlmock.Sqlmock)
		expected    *models.User
		expectedErr error
	}{
		{
			name: "Верные учетные данные",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(expectedSQL).
					WithArgs("alice", "secret").
					WillReturnRows(sqlmock.NewRows(userRowColumns).
						AddRow(1, "alice", "secret", "Alice Smith", "alice@example.com", models.RoleEmployee))
			},
			expected: &models.User{ID: 1, Username: "alice", Password: "secret", FullName: "Alice Smith", Email: "alice@example.com", Role: models.RoleEmployee},
		},
		{
			name: "Неверный пароль",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(expectedSQL).
					WithArgs("alice", "secret").
					WillReturnRows(sqlmock.NewRows(userRowColumns))
			},
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q, mock := setupUserQueriesTest(t)
			tc.mockSetup(mock)

			user, err := q.Authenticate(context.Background(), "alice", "secret")

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, user)
			}

			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("Остались невыполненные ожидания: %s", err)
			}
		})
	}
}

func TestUserExists(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`SELECT 1 FROM users WHERE username = ? LIMIT 1`)

	t.Run("Пользователь существует", func(t *testing.T) {
		q, mock := setupUserQueriesTest(t)
		mock.ExpectQuery(expectedSQL).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		exists, err := q.UserExists(context.Background(), "admin")

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Пользователь не существует", func(t *testing.T) {
		q, mock := setupUserQueriesTest(t)
		mock.ExpectQuery(expectedSQL).
			WithArgs("admin").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		exists, err := q.UserExists(context.Background(), "admin")

		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestListTechnicians(t *testing.T) {
	q, mock := setupUserQueriesTest(t)

	expectedSQL := regexp.QuoteMeta(`SELECT id, username, password, full_name, email, role FROM users WHERE role = ? AND username <> ? ORDER BY id`)
	mock.ExpectQuery(expectedSQL).
		WithArgs(models.RoleTechnician, "admin").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(2, "bob", "pw", "Bob", "bob@example.com", models.RoleTechnician).
			AddRow(5, "carol", "pw", "Carol", "carol@example.com", models.RoleTechnician))

	users, err := q.ListTechnicians(context.Background(), "admin")

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "carol", users[1].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUser(t *testing.T) {
	expectedSQL := regexp.QuoteMeta(`DELETE FROM users WHERE id = ?`)

	t.Run("Успешное удаление", func(t *testing.T) {
		q, mock := setupUserQueriesTest(t)
		mock.ExpectExec(expectedSQL).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, q.DeleteUser(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		q, mock := setupUserQueriesTest(t)
		mock.ExpectExec(expectedSQL).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, q.DeleteUser(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
