package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core/grade"
)

const (
	getSlotQuery = `SELECT data FROM slots WHERE name = ?`
	putSlotQuery = `INSERT INTO slots (name, data, updated_at) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
)

type slotRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*slotRepository)(nil) // interface compliance check

// NewSlotRepository stores slots as rows of the "slots" table.
func NewSlotRepository(db *sqlx.DB) grade.Repository {
	return &slotRepository{db: db}
}

func (repo *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var data string
	if err := repo.db.GetContext(ctx, &data, repo.db.Rebind(getSlotQuery), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, grade.ErrSlotEmpty
		}
		return nil, errors.Wrapf(err, "reading slot %q", key)
	}
	return []byte(data), nil
}

func (repo *slotRepository) Put(ctx context.Context, key string, data []byte) error {
	q := repo.db.Rebind(putSlotQuery)
	if _, err := repo.db.ExecContext(ctx, q, key, string(data), time.Now().UTC()); err != nil {
		return errors.Wrapf(err, "writing slot %q", key)
	}
	return nil
}
