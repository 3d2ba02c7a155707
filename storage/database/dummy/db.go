package dummydb

import (
	"sync"
)

type (
	DB struct {
		slot *slotTable
	}

	slotTable struct {
		sync.RWMutex
		table map[string][]byte
	}
)

func Open() (*DB, error) {
	db := &DB{
		slot: &slotTable{table: make(map[string][]byte)},
	}
	return db, nil
}
