package repository

import (
	"context"
	"errors"
	"math"

	"go-catalog-admin/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the requested id does not exist.
var ErrNotFound = errors.New("record not found")

type LookupRepository interface {
	Kind() model.LookupKind
	Create(ctx context.Context, lookup *model.Lookup) error
	FindAll(ctx context.Context) ([]model.Lookup, error)
	FindByID(ctx context.Context, id uint) (*model.Lookup, error)
	// FindByIDs returns the rows that exist; missing ids are simply absent.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]model.Lookup, error)
	UpdateName(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	// FindPage returns one page of matching rows and the unpaged match count.
	// Rows are ordered by the sort field, names compared case-insensitively,
	// with ties broken by id ascending in both directions.
	FindPage(ctx context.Context, q ProductQuery) ([]model.Product, int64, error)
	// Update loads the row, lets apply mutate it and saves it, atomically.
	// An error from apply aborts the write and is returned unchanged.
	Update(ctx context.Context, id uint, apply func(*model.Product) error) (*model.Product, error)
	// Delete removes the row and returns it as it was.
	Delete(ctx context.Context, id uint) (*model.Product, error)
}

type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByQuantity SortField = "quantity"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByName, SortByPrice, SortByQuantity:
		return true
	}
	return false
}

// ProductFilter holds equality constraints on references and inclusive
// ranges on price and quantity. Nil fields are not applied.
type ProductFilter struct {
	CategoryID *uint
	MaterialID *uint
	ColorID    *uint
	SizeID     *uint

	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	MinQuantity *int
	MaxQuantity *int
}

type ProductSort struct {
	Field SortField
	Desc  bool
}

// Page is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset saturates at math.MaxInt so a huge page number reads past the end
// instead of wrapping around.
func (p Page) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

type ProductQuery struct {
	Filter ProductFilter
	Sort   ProductSort
	Page   Page
}

func sameRef(want *uint, got *uint) bool {
	if want == nil {
		return true
	}
	return got != nil && *got == *want
}

// Matches reports whether p satisfies every constraint in f.
func (f ProductFilter) Matches(p *model.Product) bool {
	if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
		return false
	}
	if !sameRef(f.MaterialID, p.MaterialID) || !sameRef(f.ColorID, p.ColorID) || !sameRef(f.SizeID, p.SizeID) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinQuantity != nil && p.Quantity < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && p.Quantity > *f.MaxQuantity {
		return false
	}
	return true
}

// Store groups the product table with the four lookup tables.
type Store struct {
	Products ProductRepository
	lookups  map[model.LookupKind]LookupRepository
}

func NewStore(products ProductRepository, lookups ...LookupRepository) *Store {
	s := &Store{Products: products, lookups: make(map[model.LookupKind]LookupRepository, len(lookups))}
	for _, l := range lookups {
		s.lookups[l.Kind()] = l
	}
	return s
}

// Lookup returns the repository for kind, or nil if the store has none.
func (s *Store) Lookup(kind model.LookupKind) LookupRepository {
	return s.lookups[kind]
}
