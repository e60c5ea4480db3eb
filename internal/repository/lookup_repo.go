package repository

import (
	"context"

	"go-catalog-admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lookupRepo serves one lookup table; all kinds share the model.Lookup shape.
type lookupRepo struct {
	db   *gorm.DB
	kind model.LookupKind
}

func NewLookupRepo(db *gorm.DB, kind model.LookupKind) LookupRepository {
	return &lookupRepo{db: db, kind: kind}
}

func (r *lookupRepo) Kind() model.LookupKind {
	return r.kind
}

func (r *lookupRepo) table(db *gorm.DB) *gorm.DB {
	return db.Table(r.kind.Table())
}

func (r *lookupRepo) Create(ctx context.Context, lookup *model.Lookup) error {
	return r.table(r.db.WithContext(ctx)).Create(lookup).Error
}

func (r *lookupRepo) FindAll(ctx context.Context) ([]model.Lookup, error) {
	rows := []model.Lookup{}
	err := r.table(r.db.WithContext(ctx)).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *lookupRepo) FindByID(ctx context.Context, id uint) (*model.Lookup, error) {
	var lookup model.Lookup
	if err := r.table(r.db.WithContext(ctx)).Where("id = ?", id).First(&lookup).Error; err != nil {
		return nil, notFound(err)
	}
	return &lookup, nil
}

func (r *lookupRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]model.Lookup, error) {
	found := make(map[uint]model.Lookup, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	var rows []model.Lookup
	if err := r.table(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		found[row.ID] = row
	}
	return found, nil
}

// lock selects the row FOR UPDATE inside tx so the following write cannot
// race a concurrent delete.
func (r *lookupRepo) lock(tx *gorm.DB, id uint) (*model.Lookup, error) {
	var lookup model.Lookup
	err := r.table(tx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&lookup).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &lookup, nil
}

func (r *lookupRepo) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := r.lock(tx, id)
		if err != nil {
			return err
		}
		existing.Name = name
		return r.table(tx).Save(existing).Error
	})
}

func (r *lookupRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.lock(tx, id); err != nil {
			return err
		}
		return r.table(tx).Delete(&model.Lookup{}, id).Error
	})
}
