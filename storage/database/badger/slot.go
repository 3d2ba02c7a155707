package badgerdb

import (
	"context"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grade"
)

type slotRepository struct {
	db *badger.DB
}

var _ grade.Repository = (*slotRepository)(nil) // interface compliance check

func NewSlotRepository(db *badger.DB) grade.Repository {
	return &slotRepository{db: db}
}

func (repo *slotRepository) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte
	err := repo.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, grade.ErrSlotEmpty
		}
		return nil, errors.Wrapf(err, "reading slot %q", key)
	}
	return data, nil
}

func (repo *slotRepository) Put(_ context.Context, key string, data []byte) error {
	err := repo.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return errors.Wrapf(err, "writing slot %q", key)
	}
	return nil
}
