package repository_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

func TestPageOffset(t *testing.T) {
	cases := []struct {
		name string
		page repository.Page
		want int
	}{
		{"primera página", repository.Page{Number: 1, Limit: 20}, 0},
		{"tercera página", repository.Page{Number: 3, Limit: 20}, 40},
		{"número cero", repository.Page{Number: 0, Limit: 20}, 0},
		{"sin límite", repository.Page{Number: 5, Limit: 0}, 0},
		{"desborde satura", repository.Page{Number: 922337203685477580, Limit: 20}, math.MaxInt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.page.Offset())
		})
	}
}
