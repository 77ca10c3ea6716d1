package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRepo(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("inventory totals", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(quantity\), 0\), COUNT\(\*\) FILTER \(WHERE quantity <= min_quantity\) FROM products WHERE is_active`).
			WillReturnRows(pgxmock.NewRows([]string{"count", "sum", "low"}).AddRow(5, 395, 1))

		totals, err := NewStatsRepository(mock).InventoryTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, totals.TotalProducts)
		assert.Equal(t, 395, totals.TotalQuantity)
		assert.Equal(t, 1, totals.LowStockCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts by type skip undone", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`FROM movements WHERE NOT is_undone AND occurred_at >= \$1 GROUP BY operation_type`).
			WithArgs(since).
			WillReturnRows(pgxmock.NewRows([]string{"operation_type", "count"}).
				AddRow("add", 5).
				AddRow("take", 2))

		counts, err := NewStatsRepository(mock).MovementCountsByType(ctx, since)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"add": 5, "take": 2}, counts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("top movers", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`ORDER BY movement_count DESC, m.product_id ASC LIMIT \$2`).
			WithArgs(since, 5).
			WillReturnRows(pgxmock.NewRows([]string{"product_id", "name", "movement_count"}).
				AddRow(int64(1), "Widget A", 3).
				AddRow(int64(4), "Cable", 3))

		movers, err := NewStatsRepository(mock).TopMovers(ctx, since, 5)
		require.NoError(t, err)
		require.Len(t, movers, 2)
		assert.Equal(t, int64(1), movers[0].ProductID)
		assert.Equal(t, 3, movers[1].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`GROUP BY operation_type`).WithArgs(since).WillReturnError(errors.New("boom"))
		_, err = NewStatsRepository(mock).MovementCountsByType(ctx, since)
		assert.Error(t, err)
	})
}

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS users .+ CREATE TABLE IF NOT EXISTS products .+ CREATE TABLE IF NOT EXISTS movements`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	require.NoError(t, Migrate(context.Background(), mock))

	mock.ExpectExec(`CREATE TABLE`).WillReturnError(errors.New("permission denied"))
	assert.Error(t, Migrate(context.Background(), mock))
	assert.NoError(t, mock.ExpectationsWereMet())
}
