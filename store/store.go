// Package store persists alias registrations in LevelDB so they survive
// between amfctl invocations.
package store

import (
	"amfkit/log"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
)

type TxCb func(tx *leveldb.Transaction) error

var logger = log.WithModule("store")

// Open opens or creates the database at path.
func Open(path string) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "error opening database")
	}
	return db, nil
}

// WithTx runs cb in a transaction. The transaction commits when cb returns
// nil and is discarded otherwise, including when cb panics.
func WithTx(db *leveldb.DB, cb TxCb) (err error) {
	tx, err := db.OpenTransaction()
	if err != nil {
		return errors.Wrap(err, "error opening transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Discard()
			panic(p)
		} else if err != nil {
			tx.Discard()
		} else {
			err = errors.Wrap(tx.Commit(), "error committing transaction")
		}
	}()

	return cb(tx)
}
