package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Almacén", "almacen"},
		{"CAFÉ", "cafe"},
		{"azúcar morena", "azucar morena"},
		{"sin-acentos", "sin-acentos"},
		{"", ""},
		{"Ñoño", "nono"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeSearch(tc.in), "entrada %q", tc.in)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key (SQLSTATE 23505)`)))
	assert.False(t, isUniqueViolation(errors.New("conexión perdida")))
}
