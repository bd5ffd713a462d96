package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgDup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_attendance_employee_date"}
	myDup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'EMP001-2024-03-05' for key 'idx_attendance_employee_date'"}

	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{"nil", nil, "", false},
		{"postgres any", pgDup, "", true},
		{"postgres wrapped", fmt.Errorf("insert: %w", pgDup), "idx_attendance_employee_date", true},
		{"postgres other constraint", pgDup, "employees_pkey", false},
		{"postgres not null", &pgconn.PgError{Code: "23502"}, "", false},
		{"mysql duplicate", myDup, "idx_attendance_employee_date", true},
		{"mysql other error", &mysql.MySQLError{Number: 1048}, "", false},
		{"driver text", errors.New(`ERROR: duplicate key value violates unique constraint "employees_pkey"`), "employees_pkey", true},
		{"unrelated", errors.New("connection refused"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueViolation(tt.err, tt.constraint))
		})
	}
}
