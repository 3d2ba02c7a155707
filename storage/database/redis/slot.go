package redisdb

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/gradebook/core/grade"
)

const keyPrefix = "masomo:"

type slotRepository struct {
	client redis.Cmdable
}

var _ grade.Repository = (*slotRepository)(nil) // interface compliance check

func NewSlotRepository(client redis.Cmdable) grade.Repository {
	return &slotRepository{client: client}
}

// key namespaces slots, the redis database being possibly shared.
func key(slot string) string {
	return keyPrefix + slot
}

func (repo *slotRepository) Get(ctx context.Context, slot string) ([]byte, error) {
	data, err := repo.client.Get(ctx, key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, grade.ErrSlotEmpty
		}
		return nil, errors.Wrapf(err, "reading slot %q", slot)
	}
	return data, nil
}

func (repo *slotRepository) Put(ctx context.Context, slot string, data []byte) error {
	if err := repo.client.Set(ctx, key(slot), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "writing slot %q", slot)
	}
	return nil
}
