package repository

import (
	"fmt"

	"go-catalog-admin/internal/model"

	"gorm.io/gorm"
)

// NewGormStore wires every table to the same database handle.
func NewGormStore(db *gorm.DB) *Store {
	lookups := make([]LookupRepository, 0, len(model.LookupKinds))
	for _, kind := range model.LookupKinds {
		lookups = append(lookups, NewLookupRepo(db, kind))
	}
	return NewStore(NewProductRepo(db), lookups...)
}

// AutoMigrate creates or updates the product table and the lookup tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	for _, kind := range model.LookupKinds {
		if err := db.Table(kind.Table()).AutoMigrate(&model.Lookup{}); err != nil {
			return fmt.Errorf("migrate %s: %w", kind.Table(), err)
		}
	}
	return nil
}
