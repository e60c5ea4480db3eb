package repository

import (
	"context"
	"fmt"

	"go-catalog-admin/internal/model"
)

// DefaultLookups are the rows the admin UI falls back to when a table is empty.
var DefaultLookups = map[model.LookupKind][]string{
	model.KindCategory: {"Category 1", "Category 2"},
	model.KindMaterial: {"Material 1", "Material 2"},
	model.KindColor:    {"Red", "Blue"},
	model.KindSize:     {"Size 1", "Size 2"},
}

// SeedLookups fills every empty lookup table with its defaults and reports
// how many rows were inserted per kind. Tables that already hold rows are
// left alone.
func SeedLookups(ctx context.Context, store *Store) (map[model.LookupKind]int, error) {
	inserted := make(map[model.LookupKind]int, len(model.LookupKinds))
	for _, kind := range model.LookupKinds {
		repo := store.Lookup(kind)
		existing, err := repo.FindAll(ctx)
		if err != nil {
			return inserted, fmt.Errorf("list %s: %w", kind.Table(), err)
		}
		if len(existing) > 0 {
			continue
		}
		for _, name := range DefaultLookups[kind] {
			if err := repo.Create(ctx, &model.Lookup{Name: name}); err != nil {
				return inserted, fmt.Errorf("seed %s: %w", kind.Table(), err)
			}
			inserted[kind]++
		}
	}
	return inserted, nil
}
