package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

var userCols = []string{"id", "username", "password_hash", "role", "is_active", "created_at", "updated_at"}

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    *UserRepo
	context context.Context
	now     time.Time
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewUserRepository(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate() {
	u := &entity.User{Username: "bob", PasswordHash: "hash", Role: entity.RoleUser, IsActive: true}
	suite.mock.ExpectQuery(`INSERT INTO users \(username, password_hash, role, is_active\)`).
		WithArgs("bob", "hash", "user", true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), suite.now, suite.now))

	require.NoError(suite.T(), suite.repo.Create(suite.context, u))
	assert.Equal(suite.T(), int64(3), u.ID)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateUsername() {
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("admin", "hash", "admin", true).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := suite.repo.Create(suite.context, &entity.User{Username: "admin", PasswordHash: "hash", Role: entity.RoleAdmin, IsActive: true})
	assert.ErrorIs(suite.T(), err, domain.ErrConflict)
}

func (suite *UserRepoTestSuite) TestGetByUsername() {
	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("admin").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "admin", "hash", "admin", true, suite.now, suite.now))

	u, err := suite.repo.GetByUsername(suite.context, "admin")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), u)
	assert.Equal(suite.T(), entity.RoleAdmin, u.Role)

	suite.mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)
	u, err = suite.repo.GetByUsername(suite.context, "ghost")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), u)
}

func (suite *UserRepoTestSuite) TestUpdate_NotFound() {
	suite.mock.ExpectQuery(`UPDATE users SET username = \$2`).
		WithArgs(int64(8), "x", "hash", "user", false).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, &entity.User{ID: 8, Username: "x", PasswordHash: "hash", Role: entity.RoleUser})
	assert.ErrorIs(suite.T(), err, domain.ErrNotFound)
}

func (suite *UserRepoTestSuite) TestList_OrderedByID() {
	suite.mock.ExpectQuery(`SELECT .+ FROM users ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "admin", "h1", "admin", true, suite.now, suite.now).
			AddRow(int64(2), "user", "h2", "user", true, suite.now, suite.now))

	users, err := suite.repo.List(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), users, 2)
	assert.Equal(suite.T(), "user", users[1].Username)
}

func (suite *UserRepoTestSuite) TestCountActiveAdminsForUpdate() {
	suite.mock.ExpectQuery(`SELECT id FROM users WHERE role = 'admin' AND is_active ORDER BY id FOR UPDATE`).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(4)))

	n, err := suite.repo.CountActiveAdminsForUpdate(suite.context)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, n)
}

func (suite *UserRepoTestSuite) TestCountActiveAdminsForUpdate_Error() {
	suite.mock.ExpectQuery(`FOR UPDATE`).WillReturnError(errors.New("lock timeout"))

	_, err := suite.repo.CountActiveAdminsForUpdate(suite.context)
	assert.Error(suite.T(), err)
}
