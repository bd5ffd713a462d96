package dberr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// IsUniqueViolation reports whether err is a unique constraint failure on
// either supported database. When constraint is not empty the violated
// constraint must match it too.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry && (constraint == "" || strings.Contains(myErr.Message, constraint))
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "duplicate entry") {
		return false
	}
	return constraint == "" || strings.Contains(msg, strings.ToLower(constraint))
}
