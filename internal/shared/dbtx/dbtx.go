package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a gorm session that executes on tx, so gorm repositories and
// raw database/sql repositories (outbox) commit or roll back together.
// gorm skips its implicit per-statement transaction when the pool is a tx.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	// WithContext clones the statement; mutating the shared one would leak
	// the tx into every later query on db.
	session := db.WithContext(context.Background())
	session.Statement.ConnPool = tx
	return session
}
