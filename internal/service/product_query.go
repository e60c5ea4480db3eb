package service

import (
	"context"
	"math"
	"strings"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// ListQuery is the raw product list request as it arrives on the URL.
type ListQuery struct {
	Page        string `query:"page"`
	Limit       string `query:"limit"`
	SortBy      string `query:"sortBy"`
	Order       string `query:"order"`
	CategoryID  string `query:"categoryId"`
	MaterialID  string `query:"materialId"`
	ColorID     string `query:"colorId"`
	SizeID      string `query:"sizeId"`
	MinPrice    string `query:"minPrice"`
	MaxPrice    string `query:"maxPrice"`
	MinQuantity string `query:"minQuantity"`
	MaxQuantity string `query:"maxQuantity"`
}

type PageDefaults struct {
	Limit    int
	MaxLimit int
}

// ProductPage is one page of enriched products plus the unpaged match count.
type ProductPage struct {
	Items []model.EnrichedProduct `json:"items"`
	Total int64                   `json:"total"`
}

func lenientUint(raw string) *uint {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	digits, ok := decimalDigits(raw)
	if !ok {
		return nil
	}
	v, err := cast.ToUintE(digits)
	if err != nil {
		return nil
	}
	return &v
}

func lenientInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	digits, ok := decimalDigits(raw)
	if !ok {
		return nil
	}
	v, err := cast.ToIntE(digits)
	if err != nil {
		return nil
	}
	return &v
}

func lenientDecimal(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ParseListQuery turns raw parameters into a typed query. Malformed numbers
// are dropped instead of failing the request; unknown sort fields fall back
// to name and anything but DESC sorts ascending.
func ParseListQuery(raw ListQuery, defaults PageDefaults) repository.ProductQuery {
	q := repository.ProductQuery{
		Filter: repository.ProductFilter{
			CategoryID:  lenientUint(raw.CategoryID),
			MaterialID:  lenientUint(raw.MaterialID),
			ColorID:     lenientUint(raw.ColorID),
			SizeID:      lenientUint(raw.SizeID),
			MinPrice:    lenientDecimal(raw.MinPrice),
			MaxPrice:    lenientDecimal(raw.MaxPrice),
			MinQuantity: lenientInt(raw.MinQuantity),
			MaxQuantity: lenientInt(raw.MaxQuantity),
		},
		Sort: repository.ProductSort{
			Field: repository.SortField(strings.TrimSpace(raw.SortBy)),
			Desc:  strings.EqualFold(strings.TrimSpace(raw.Order), "desc"),
		},
		Page: repository.Page{Number: 1, Size: defaults.Limit},
	}
	if !q.Sort.Field.Valid() {
		q.Sort.Field = repository.SortByName
	}
	if n := lenientInt(raw.Page); n != nil && *n > 0 {
		q.Page.Number = *n
	}
	if n := lenientInt(raw.Limit); n != nil && *n > 0 {
		q.Page.Size = *n
	}
	if defaults.MaxLimit > 0 && q.Page.Size > defaults.MaxLimit {
		q.Page.Size = defaults.MaxLimit
	}
	if q.Page.Size < 1 {
		q.Page.Size = 1
	}
	// Past this the offset would overflow; the page is out of range anyway.
	if maxPage := math.MaxInt / q.Page.Size; q.Page.Number > maxPage {
		q.Page.Number = maxPage
	}
	return q
}

func (s *productService) ListProducts(ctx context.Context, q repository.ProductQuery) (*ProductPage, error) {
	rows, total, err := s.store.Products.FindPage(ctx, q)
	if err != nil {
		return nil, &StoreError{Op: "list products", Err: err}
	}
	items, err := s.enrich(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total}, nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*model.EnrichedProduct, error) {
	product, err := s.store.Products.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("get product", "product", id, err)
	}
	items, err := s.enrich(ctx, []model.Product{*product})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// enrich resolves every reference on the page with one lookup per kind.
func (s *productService) enrich(ctx context.Context, products []model.Product) ([]model.EnrichedProduct, error) {
	items := make([]model.EnrichedProduct, len(products))
	for i := range products {
		items[i].Product = products[i]
	}

	for _, kind := range model.LookupKinds {
		seen := map[uint]bool{}
		ids := []uint{}
		for i := range items {
			if ref := items[i].Ref(kind); ref != nil && !seen[*ref] {
				seen[*ref] = true
				ids = append(ids, *ref)
			}
		}
		if len(ids) == 0 {
			continue
		}

		rows, err := s.store.Lookup(kind).FindByIDs(ctx, ids)
		if err != nil {
			return nil, &StoreError{Op: "resolve " + kind.Table(), Err: err}
		}
		for i := range items {
			items[i].SetRef(kind, resolveRef(items[i].Ref(kind), rows))
		}
	}
	return items, nil
}

// resolveRef yields nil for an unset reference and an "N/A" name when the
// target row is gone.
func resolveRef(id *uint, rows map[uint]model.Lookup) *model.LookupRef {
	if id == nil {
		return nil
	}
	if row, ok := rows[*id]; ok {
		return &model.LookupRef{ID: row.ID, Name: row.Name}
	}
	return &model.LookupRef{ID: *id, Name: model.MissingName}
}
