package repository

import (
	"context"
	"testing"

	"go-catalog-admin/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedLookupsFillsEmptyTablesOnly(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Lookup(model.KindColor).Create(ctx, &model.Lookup{Name: "Green"}))

	inserted, err := SeedLookups(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted[model.KindCategory])
	assert.Zero(t, inserted[model.KindColor])

	colors, err := store.Lookup(model.KindColor).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "Green", colors[0].Name)

	sizes, err := store.Lookup(model.KindSize).FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "Size 1", sizes[0].Name)

	// a second run is a no-op
	inserted, err = SeedLookups(ctx, store)
	require.NoError(t, err)
	assert.Empty(t, inserted)
}
