package repository

import (
	"context"
	"errors"

	"go-catalog-admin/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productRepo) filtered(ctx context.Context, f ProductFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Product{})
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	if f.MaterialID != nil {
		db = db.Where("material_id = ?", *f.MaterialID)
	}
	if f.ColorID != nil {
		db = db.Where("color_id = ?", *f.ColorID)
	}
	if f.SizeID != nil {
		db = db.Where("size_id = ?", *f.SizeID)
	}
	if f.MinPrice != nil {
		db = db.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		db = db.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinQuantity != nil {
		db = db.Where("quantity >= ?", *f.MinQuantity)
	}
	if f.MaxQuantity != nil {
		db = db.Where("quantity <= ?", *f.MaxQuantity)
	}
	return db
}

// orderColumn matches the memory store: names sort case-insensitively.
func orderColumn(field SortField) string {
	if field == SortByName {
		return "LOWER(name)"
	}
	return string(field)
}

func (r *productRepo) FindPage(ctx context.Context, q ProductQuery) ([]model.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q.Filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Whitelisted column; id keeps equal keys in insertion order both ways
	field := q.Sort.Field
	if !field.Valid() {
		field = SortByName
	}
	direction := " ASC"
	if q.Sort.Desc {
		direction = " DESC"
	}

	products := []model.Product{}
	err := r.filtered(ctx, q.Filter).
		Order(orderColumn(field) + direction).
		Order("id ASC").
		Offset(q.Page.Offset()).
		Limit(q.Page.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) Update(ctx context.Context, id uint, apply func(*model.Product) error) (*model.Product, error) {
	var updated model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&updated, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := apply(&updated); err != nil {
			return err
		}
		updated.ID = id
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *productRepo) Delete(ctx context.Context, id uint) (*model.Product, error) {
	var existing model.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		return tx.Delete(&model.Product{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &existing, nil
}
