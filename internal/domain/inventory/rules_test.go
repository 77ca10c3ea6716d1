package inventory_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/inventory"
)

func product(qty, min int) *entity.Product {
	return &entity.Product{ID: 1, Name: "Widget A", SKU: "WGT-001", Quantity: qty, MinQuantity: min, IsActive: true}
}

func TestTake_ReducesQuantity(t *testing.T) {
	tr, err := inventory.Take(product(100, 20), 30)
	require.NoError(t, err)
	assert.Equal(t, inventory.Transition{Old: 100, New: 70, Change: -30}, tr)
}

func TestTake_ExactStockReachesZero(t *testing.T) {
	tr, err := inventory.Take(product(5, 0), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.New)
}

func TestTake_Rejections(t *testing.T) {
	inactive := product(100, 0)
	inactive.IsActive = false

	cases := []struct {
		name   string
		p      *entity.Product
		amount int
		kind   error
	}{
		{"zero amount", product(100, 0), 0, domain.ErrInvalidInput},
		{"negative amount", product(100, 0), -3, domain.ErrInvalidInput},
		{"more than stock", product(100, 0), 200, domain.ErrConflict},
		{"inactive product", inactive, 1, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.Take(tc.p, tc.amount)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
}

func TestAdjust(t *testing.T) {
	tr, err := inventory.Adjust(product(10, 0), -10)
	require.NoError(t, err)
	assert.Equal(t, 0, tr.New)

	tr, err = inventory.Adjust(product(10, 0), 15)
	require.NoError(t, err)
	assert.Equal(t, inventory.Transition{Old: 10, New: 25, Change: 15}, tr)

	_, err = inventory.Adjust(product(10, 0), -11)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUndo_UsesCurrentQuantity(t *testing.T) {
	// El take original dejó 70, pero luego hubo otros movimientos: el producto está en 40.
	target := &entity.Movement{ID: 7, ProductID: 1, OperationType: entity.OperationTake, QuantityChange: -30, OldQuantity: 100, NewQuantity: 70}
	tr, err := inventory.Undo(product(40, 0), target)
	require.NoError(t, err)
	assert.Equal(t, inventory.Transition{Old: 40, New: 70, Change: 30}, tr)
}

func TestUndo_Rejections(t *testing.T) {
	undone := &entity.Movement{ProductID: 1, OperationType: entity.OperationTake, QuantityChange: -5, IsUndone: true}
	edit := &entity.Movement{ProductID: 1, OperationType: entity.OperationEdit}
	undo := &entity.Movement{ProductID: 1, OperationType: entity.OperationUndo, QuantityChange: 5}
	add := &entity.Movement{ProductID: 1, OperationType: entity.OperationAdd, QuantityChange: 50}

	_, err := inventory.Undo(product(10, 0), undone)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = inventory.Undo(product(10, 0), edit)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "cannot undo this type")

	_, err = inventory.Undo(product(10, 0), undo)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Revertir un add de 50 con solo 10 en stock dejaría -40.
	_, err = inventory.Undo(product(10, 0), add)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "negative stock")
}

func TestInitial(t *testing.T) {
	tr, err := inventory.Initial(25)
	require.NoError(t, err)
	assert.Equal(t, inventory.Transition{Old: 0, New: 25, Change: 25}, tr)

	_, err = inventory.Initial(-1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsLowStock(t *testing.T) {
	assert.True(t, product(15, 25).IsLowStock())
	assert.True(t, product(20, 20).IsLowStock())
	assert.False(t, product(70, 20).IsLowStock())
}

func TestQuantityBounds(t *testing.T) {
	cases := []struct {
		name string
		run  func() error
		kind error
	}{
		{"initial above max", func() error { _, err := inventory.Initial(inventory.MaxQuantity + 1); return err }, domain.ErrInvalidInput},
		{"take above max", func() error { _, err := inventory.Take(product(100, 0), inventory.MaxQuantity+1); return err }, domain.ErrInvalidInput},
		{"adjust delta above max", func() error { _, err := inventory.Adjust(product(100, 0), math.MaxInt); return err }, domain.ErrInvalidInput},
		{"adjust delta below -max", func() error { _, err := inventory.Adjust(product(100, 0), math.MinInt); return err }, domain.ErrInvalidInput},
		{"adjust delta just above max", func() error { _, err := inventory.Adjust(product(100, 0), inventory.MaxQuantity+1); return err }, domain.ErrInvalidInput},
		{"adjust result overflows column", func() error { _, err := inventory.Adjust(product(100, 0), inventory.MaxQuantity); return err }, domain.ErrConflict},
		{"undo result above max", func() error {
			take := &entity.Movement{ProductID: 1, OperationType: entity.OperationTake, QuantityChange: -5}
			_, err := inventory.Undo(product(inventory.MaxQuantity-1, 0), take)
			return err
		}, domain.ErrConflict},
		{"min quantity above max", func() error { return inventory.ValidateMinQuantity(inventory.MaxQuantity + 1) }, domain.ErrInvalidInput},
		{"min quantity negative", func() error { return inventory.ValidateMinQuantity(-1) }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.run(), tc.kind)
		})
	}
}

func TestAdjust_ReachesMaxExactly(t *testing.T) {
	tr, err := inventory.Adjust(product(100, 0), inventory.MaxQuantity-100)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxQuantity, tr.New)
	assert.NoError(t, inventory.ValidateMinQuantity(inventory.MaxQuantity))
}
