package badgerdb

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

// logger routes badger's own logs to the application logger.
type logger struct {
	core.Logger
}

func (l logger) Errorf(format string, args ...interface{}) {
	l.Error("badger: " + fmt.Sprintf(format, args...))
}

func (l logger) Warningf(format string, args ...interface{}) {
	l.Warn("badger: " + fmt.Sprintf(format, args...))
}

// Infof is demoted to debug.
func (l logger) Infof(format string, args ...interface{}) {
	l.Debug("badger: " + fmt.Sprintf(format, args...))
}

func (l logger) Debugf(format string, args ...interface{}) {
	l.Debug("badger: " + fmt.Sprintf(format, args...))
}

// Open opens (creating it if needed) the badger database in conf.Storage.BadgerDir.
// An empty directory opens an in-memory database.
func Open(conf *core.Config, log core.Logger) (*badger.DB, error) {
	opts := badger.DefaultOptions(conf.Storage.BadgerDir).WithLogger(logger{log})
	if conf.Storage.BadgerDir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "opening badger")
	}
	return db, nil
}
