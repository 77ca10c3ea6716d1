package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

func TestDefaultPage(t *testing.T) {
	p := dto.PageRequest{}
	require.NoError(t, p.DefaultPage())
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, dto.DefaultPageLimit, p.Limit)

	p = dto.PageRequest{Page: 2, Limit: 1000}
	require.NoError(t, p.DefaultPage())
	assert.Equal(t, dto.MaxPageLimit, p.Limit)

	p = dto.PageRequest{Page: 922337203685477580, Limit: 20}
	assert.ErrorIs(t, p.DefaultPage(), domain.ErrInvalidInput)

	p = dto.PageRequest{Page: math.MaxInt32/20 + 1, Limit: 20}
	require.NoError(t, p.DefaultPage())
	p = dto.PageRequest{Page: math.MaxInt32/20 + 2, Limit: 20}
	assert.ErrorIs(t, p.DefaultPage(), domain.ErrInvalidInput)
}
