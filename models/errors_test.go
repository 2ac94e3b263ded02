package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "Nil", err: nil, expected: false},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, expected: true},
		{name: "Email taken", err: ErrEmailTaken, expected: true},
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, expected: true},
		{name: "pgx other code", err: &pgconn.PgError{Code: "23503"}, expected: false},
		{name: "pq unique violation", err: &pq.Error{Code: "23505"}, expected: true},
		{name: "Wrapped pq violation", err: pkgerrors.Wrap(&pq.Error{Code: "23505"}, "create customers"), expected: true},
		{name: "Wrapped with fmt", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), expected: true},
		{name: "Other error", err: errors.New("connection refused"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsUniqueViolation(tc.err))
		})
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "root@/crm", false)
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}
