package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var movementCols = []string{"id", "product_id", "product_name", "user_id", "username", "operation_type",
	"quantity_change", "old_quantity", "new_quantity", "occurred_at", "details", "is_undone", "original_movement_id"}

var movementWithOriginalCols = append(append([]string{}, movementCols...), "o_id", "o_operation_type", "o_quantity_change")

type MovementRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    *MovementRepo
	context context.Context
	now     time.Time
}

func (suite *MovementRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewMovementRepository(mock)
	suite.context = context.Background()
	suite.now = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
}

func (suite *MovementRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestMovementRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MovementRepoTestSuite))
}

func (suite *MovementRepoTestSuite) TestAppend_AssignsIDAndTimestamp() {
	m := &entity.Movement{
		ProductID: 1, ProductName: "Widget A", UserID: 2, Username: "user",
		OperationType: entity.OperationTake, QuantityChange: -30, OldQuantity: 100, NewQuantity: 70,
	}
	suite.mock.ExpectQuery(`INSERT INTO movements .+ RETURNING id, occurred_at`).
		WithArgs(int64(1), "Widget A", int64(2), "user", "take", -30, 100, 70, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "occurred_at"}).AddRow(int64(11), suite.now))

	require.NoError(suite.T(), suite.repo.Append(suite.context, m))
	assert.Equal(suite.T(), int64(11), m.ID)
	assert.Equal(suite.T(), suite.now, m.Timestamp)
}

func (suite *MovementRepoTestSuite) TestGetByIDForUpdate() {
	suite.mock.ExpectQuery(`SELECT .+ FROM movements m WHERE m.id = \$1 FOR UPDATE`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(movementCols).AddRow(
			int64(4), int64(1), "Widget A", int64(2), "user", "take",
			-30, 100, 70, suite.now, (*string)(nil), false, (*int64)(nil)))

	m, err := suite.repo.GetByIDForUpdate(suite.context, 4)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), m)
	assert.Equal(suite.T(), entity.OperationTake, m.OperationType)
	assert.Equal(suite.T(), m.OldQuantity+m.QuantityChange, m.NewQuantity)
	assert.Nil(suite.T(), m.OriginalMovementID)
}

func (suite *MovementRepoTestSuite) TestGetByID_UndoCarriesOriginal() {
	origID := int64(4)
	origOp := "take"
	origQty := -30
	details := "Undo of take operation (ID: 4)"
	suite.mock.ExpectQuery(`FROM movements m LEFT JOIN movements o ON o.id = m.original_movement_id WHERE m.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(movementWithOriginalCols).AddRow(
			int64(5), int64(1), "Widget A", int64(1), "admin", "undo",
			30, 70, 100, suite.now, &details, false, &origID,
			&origID, &origOp, &origQty))

	m, err := suite.repo.GetByID(suite.context, 5)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), m.Original)
	assert.Equal(suite.T(), entity.OperationTake, m.Original.OperationType)
	assert.Equal(suite.T(), -30, m.Original.QuantityChange)
}

func (suite *MovementRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM movements m LEFT JOIN`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	m, err := suite.repo.GetByID(suite.context, 404)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), m)
}

func (suite *MovementRepoTestSuite) TestMarkUndone_FlipsOnce() {
	suite.mock.ExpectExec(`UPDATE movements SET is_undone = TRUE WHERE id = \$1 AND NOT is_undone`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(suite.T(), suite.repo.MarkUndone(suite.context, 4))
}

func (suite *MovementRepoTestSuite) TestMarkUndone_AlreadyUndone() {
	suite.mock.ExpectExec(`UPDATE movements SET is_undone = TRUE`).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	assert.ErrorIs(suite.T(), suite.repo.MarkUndone(suite.context, 4), domain.ErrConflict)
}

func (suite *MovementRepoTestSuite) TestMarkUndone_Missing() {
	suite.mock.ExpectExec(`UPDATE movements SET is_undone = TRUE`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	suite.mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	assert.ErrorIs(suite.T(), suite.repo.MarkUndone(suite.context, 9), domain.ErrNotFound)
}

func (suite *MovementRepoTestSuite) TestList_Filters() {
	productID := int64(1)
	from := suite.now.Add(-24 * time.Hour)
	filter := repository.MovementFilter{ProductID: &productID, OperationType: entity.OperationTake, From: &from, Search: "bob"}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM movements m WHERE m.product_id = \$1 AND m.operation_type = \$2 AND m.occurred_at >= \$3 AND \(m.details ILIKE \$4 OR m.product_name ILIKE \$4 OR m.username ILIKE \$4\)`).
		WithArgs(productID, "take", from, "%bob%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectQuery(`ORDER BY m.occurred_at DESC, m.id DESC LIMIT \$5 OFFSET \$6`).
		WithArgs(productID, "take", from, "%bob%", 20, 0).
		WillReturnRows(pgxmock.NewRows(movementWithOriginalCols).AddRow(
			int64(3), int64(1), "Widget A", int64(2), "bob", "take",
			-1, 5, 4, suite.now, (*string)(nil), false, (*int64)(nil),
			(*int64)(nil), (*string)(nil), (*int)(nil)))

	items, total, err := suite.repo.List(suite.context, filter,
		repository.Sort{Field: repository.MovementSortTimestamp, Desc: true},
		repository.Page{Number: 1, Limit: 20})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
	require.Len(suite.T(), items, 1)
	assert.Nil(suite.T(), items[0].Original)
}
