package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go-catalog-admin/internal/model"
)

// NewMemoryStore returns a goroutine-safe store kept in process memory.
// Ids come from per-table counters that never move backwards.
func NewMemoryStore() *Store {
	lookups := make([]LookupRepository, 0, len(model.LookupKinds))
	for _, kind := range model.LookupKinds {
		lookups = append(lookups, NewMemoryLookupRepo(kind))
	}
	return NewStore(NewMemoryProductRepo(), lookups...)
}

type memoryLookupRepo struct {
	kind   model.LookupKind
	mu     sync.RWMutex
	nextID uint
	ids    []uint
	rows   map[uint]model.Lookup
	now    func() time.Time
}

func NewMemoryLookupRepo(kind model.LookupKind) LookupRepository {
	return &memoryLookupRepo{kind: kind, rows: map[uint]model.Lookup{}, now: time.Now}
}

func (r *memoryLookupRepo) Kind() model.LookupKind {
	return r.kind
}

func (r *memoryLookupRepo) Create(_ context.Context, lookup *model.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	lookup.ID = r.nextID
	lookup.Touch(r.now())
	r.rows[lookup.ID] = *lookup
	r.ids = append(r.ids, lookup.ID)
	return nil
}

func (r *memoryLookupRepo) FindAll(_ context.Context) ([]model.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]model.Lookup, 0, len(r.ids))
	for _, id := range r.ids {
		rows = append(rows, r.rows[id])
	}
	return rows, nil
}

func (r *memoryLookupRepo) FindByID(_ context.Context, id uint) (*model.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (r *memoryLookupRepo) FindByIDs(_ context.Context, ids []uint) (map[uint]model.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[uint]model.Lookup, len(ids))
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			found[id] = row
		}
	}
	return found, nil
}

func (r *memoryLookupRepo) UpdateName(_ context.Context, id uint, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	row.Name = name
	row.Touch(r.now())
	r.rows[id] = row
	return nil
}

func (r *memoryLookupRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	r.ids = removeID(r.ids, id)
	return nil
}

type memoryProductRepo struct {
	mu     sync.RWMutex
	nextID uint
	ids    []uint
	rows   map[uint]model.Product
	now    func() time.Time
}

func NewMemoryProductRepo() ProductRepository {
	return &memoryProductRepo{rows: map[uint]model.Product{}, now: time.Now}
}

func (r *memoryProductRepo) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	product.Touch(r.now())
	r.rows[product.ID] = cloneProduct(*product)
	r.ids = append(r.ids, product.ID)
	return nil
}

func (r *memoryProductRepo) FindByID(_ context.Context, id uint) (*model.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	p := cloneProduct(row)
	return &p, nil
}

func (r *memoryProductRepo) FindPage(_ context.Context, q ProductQuery) ([]model.Product, int64, error) {
	r.mu.RLock()
	matched := make([]model.Product, 0, len(r.ids))
	for _, id := range r.ids {
		row := r.rows[id]
		if q.Filter.Matches(&row) {
			matched = append(matched, cloneProduct(row))
		}
	}
	r.mu.RUnlock()

	// ids are iterated in insertion order, so a stable sort keeps ties there
	less := productLess(q.Sort.Field)
	sort.SliceStable(matched, func(i, j int) bool {
		if q.Sort.Desc {
			return less(&matched[j], &matched[i])
		}
		return less(&matched[i], &matched[j])
	})

	total := int64(len(matched))
	start := q.Page.Offset()
	if start < 0 || start >= len(matched) || q.Page.Size <= 0 {
		return []model.Product{}, total, nil
	}
	end := start + q.Page.Size
	if end > len(matched) || end < start {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func productLess(field SortField) func(a, b *model.Product) bool {
	switch field {
	case SortByPrice:
		return func(a, b *model.Product) bool { return a.Price.LessThan(b.Price) }
	case SortByQuantity:
		return func(a, b *model.Product) bool { return a.Quantity < b.Quantity }
	default:
		return func(a, b *model.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	}
}

func (r *memoryProductRepo) Update(_ context.Context, id uint, apply func(*model.Product) error) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	working := cloneProduct(row)
	if err := apply(&working); err != nil {
		return nil, err
	}
	working.ID = id
	working.CreatedAt = row.CreatedAt
	working.Touch(r.now())
	r.rows[id] = cloneProduct(working)
	return &working, nil
}

func (r *memoryProductRepo) Delete(_ context.Context, id uint) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.rows, id)
	r.ids = removeID(r.ids, id)
	return &row, nil
}

func removeID(ids []uint, id uint) []uint {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneProduct detaches pointer fields so callers never alias stored rows.
func cloneProduct(p model.Product) model.Product {
	p.OldPrice = copyPtr(p.OldPrice)
	p.Image = copyPtr(p.Image)
	p.Description = copyPtr(p.Description)
	p.Specification = copyPtr(p.Specification)
	p.MaterialID = copyPtr(p.MaterialID)
	p.ColorID = copyPtr(p.ColorID)
	p.SizeID = copyPtr(p.SizeID)
	return p
}
