package dummydb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core/grade"
)

func TestSlotRepository(t *testing.T) {
	ctx := context.Background()
	db, err := Open()
	require.NoError(t, err)
	repo := NewSlotRepository(db)

	_, err = repo.Get(ctx, "gradebook")
	assert.Equal(t, grade.ErrSlotEmpty, err)

	data := []byte(`{"1ro 1ra": {}}`)
	require.NoError(t, repo.Put(ctx, "gradebook", data))
	data[0] = 'x' // stored bytes are a copy

	got, err := repo.Get(ctx, "gradebook")
	require.NoError(t, err)
	assert.Equal(t, `{"1ro 1ra": {}}`, string(got))

	// last write wins
	require.NoError(t, repo.Put(ctx, "gradebook", []byte("{}")))
	got, _ = repo.Get(ctx, "gradebook")
	assert.Equal(t, "{}", string(got))

	// a second repository over the same DB sees the same slots
	got, err = NewSlotRepository(db).Get(ctx, "gradebook")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}
