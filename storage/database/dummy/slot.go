package dummydb

import (
	"context"

	"github.com/trezcool/gradebook/core/grade"
)

type slotRepository struct {
	db *slotTable
}

var _ grade.Repository = (*slotRepository)(nil) // interface compliance check

func NewSlotRepository(db *DB) grade.Repository {
	return &slotRepository{db: db.slot}
}

func (repo *slotRepository) Get(_ context.Context, key string) ([]byte, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	data, ok := repo.db.table[key]
	if !ok {
		return nil, grade.ErrSlotEmpty
	}
	return append([]byte(nil), data...), nil
}

func (repo *slotRepository) Put(_ context.Context, key string, data []byte) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[key] = append([]byte(nil), data...)
	return nil
}
