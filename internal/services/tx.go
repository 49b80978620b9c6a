package services

import (
	"database/sql"

	"lpg_inventory_backend/internal/repositories"
)

// dbTx is the slice of *sql.Tx the services need: statement execution for
// the repositories plus transaction control.
type dbTx interface {
	repositories.SQLExecutor
	Commit() error
	Rollback() error
}

// txBeginner abstracts transaction creation over *sql.DB.
type txBeginner interface {
	BeginTx() (dbTx, error)
}

type sqlTxBeginner struct {
	db *sql.DB
}

func (b sqlTxBeginner) BeginTx() (dbTx, error) {
	return b.db.Begin()
}
