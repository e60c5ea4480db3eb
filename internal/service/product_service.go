package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/internal/upload"
	"go-catalog-admin/pkg/validator"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

type ProductService interface {
	ListProducts(ctx context.Context, q repository.ProductQuery) (*ProductPage, error)
	GetProduct(ctx context.Context, id uint) (*model.EnrichedProduct, error)
	CreateProduct(ctx context.Context, form ProductForm, image *upload.File) (uint, error)
	UpdateProduct(ctx context.Context, id uint, form ProductForm, image *upload.File) error
	DeleteProduct(ctx context.Context, id uint) error
}

// ImageStore is the part of upload.Uploader the product service uses.
type ImageStore interface {
	Save(ctx context.Context, f *upload.File) (string, error)
	Remove(ctx context.Context, ref string) error
}

// ProductForm carries product fields exactly as submitted. Empty strings
// mean "not supplied".
type ProductForm struct {
	Name          string `json:"name" form:"name"`
	Price         string `json:"price" form:"price"`
	OldPrice      string `json:"oldPrice" form:"oldPrice"`
	Quantity      string `json:"quantity" form:"quantity"`
	Description   string `json:"description" form:"description"`
	Specification string `json:"specification" form:"specification"`
	CategoryID    string `json:"categoryId" form:"categoryId"`
	MaterialID    string `json:"materialId" form:"materialId"`
	ColorID       string `json:"colorId" form:"colorId"`
	SizeID        string `json:"sizeId" form:"sizeId"`
}

// UnmarshalJSON accepts JSON numbers and booleans as well as strings, so
// {"price": 9.99} reads like the form value "9.99". null means not supplied.
func (f *ProductForm) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	fields := map[string]*string{
		"name":          &f.Name,
		"price":         &f.Price,
		"oldPrice":      &f.OldPrice,
		"quantity":      &f.Quantity,
		"description":   &f.Description,
		"specification": &f.Specification,
		"categoryId":    &f.CategoryID,
		"materialId":    &f.MaterialID,
		"colorId":       &f.ColorID,
		"sizeId":        &f.SizeID,
	}
	for key, value := range raw {
		dst, ok := fields[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case nil:
			*dst = ""
		case json.Number:
			*dst = v.String()
		case string, bool:
			*dst = cast.ToString(v)
		default:
			return fmt.Errorf("%s: expected a string or number", key)
		}
	}
	return nil
}

// productFields is the typed form. Nil means the field was not supplied.
type productFields struct {
	Name          *string          `json:"name" validate:"omitempty,notblank"`
	Price         *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
	OldPrice      *decimal.Decimal `json:"oldPrice" validate:"omitempty,gte=0"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gte=0"`
	Description   *string          `json:"description"`
	Specification *string          `json:"specification"`
	CategoryID    *uint            `json:"categoryId"`
	MaterialID    *uint            `json:"materialId"`
	ColorID       *uint            `json:"colorId"`
	SizeID        *uint            `json:"sizeId"`
}

// newProduct lists what a create must carry.
type newProduct struct {
	Name       *string          `json:"name" validate:"required"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Quantity   *int             `json:"quantity" validate:"required"`
	CategoryID *uint            `json:"categoryId" validate:"required"`
}

func optionalText(raw string) *string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}

func parseDecimal(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, invalid(field, "must be a number")
	}
	if !d.Equal(d.Round(model.PriceScale)) {
		return nil, invalid(field, fmt.Sprintf("must have at most %d decimal places", model.PriceScale))
	}
	if d.Abs().GreaterThanOrEqual(model.PriceCeiling) {
		return nil, invalid(field, "must be less than "+model.PriceCeiling.String())
	}
	return &d, nil
}

func parseInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	digits, ok := decimalDigits(raw)
	if !ok {
		return nil, invalid(field, "must be an integer")
	}
	v, err := cast.ToIntE(digits)
	if err != nil {
		return nil, invalid(field, "must be an integer")
	}
	return &v, nil
}

// parseRef treats 0 like an empty value.
func parseRef(field, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	digits, ok := decimalDigits(raw)
	if !ok {
		return nil, invalid(field, "must be a positive integer")
	}
	v, err := cast.ToUintE(digits)
	if err != nil {
		return nil, invalid(field, "must be a positive integer")
	}
	if v == 0 {
		return nil, nil
	}
	return &v, nil
}

func parseProductForm(form ProductForm) (*productFields, error) {
	f := &productFields{
		Description:   optionalText(form.Description),
		Specification: optionalText(form.Specification),
	}
	if name := strings.TrimSpace(form.Name); name != "" {
		f.Name = &name
	}

	var err error
	if f.Price, err = parseDecimal("price", form.Price); err != nil {
		return nil, err
	}
	if f.OldPrice, err = parseDecimal("oldPrice", form.OldPrice); err != nil {
		return nil, err
	}
	if f.Quantity, err = parseInt("quantity", form.Quantity); err != nil {
		return nil, err
	}
	if f.CategoryID, err = parseRef("categoryId", form.CategoryID); err != nil {
		return nil, err
	}
	if f.MaterialID, err = parseRef("materialId", form.MaterialID); err != nil {
		return nil, err
	}
	if f.ColorID, err = parseRef("colorId", form.ColorID); err != nil {
		return nil, err
	}
	if f.SizeID, err = parseRef("sizeId", form.SizeID); err != nil {
		return nil, err
	}

	if err := fromValidator(validator.ValidateStruct(f)); err != nil {
		return nil, err
	}
	return f, nil
}

// apply merges the supplied fields onto p, keeping everything else.
func (f *productFields) apply(p *model.Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.OldPrice != nil {
		p.OldPrice = f.OldPrice
	}
	if f.Quantity != nil {
		p.Quantity = *f.Quantity
	}
	if f.Description != nil {
		p.Description = f.Description
	}
	if f.Specification != nil {
		p.Specification = f.Specification
	}
	if f.CategoryID != nil {
		p.CategoryID = *f.CategoryID
	}
	if f.MaterialID != nil {
		p.MaterialID = f.MaterialID
	}
	if f.ColorID != nil {
		p.ColorID = f.ColorID
	}
	if f.SizeID != nil {
		p.SizeID = f.SizeID
	}
}

type productService struct {
	store     *repository.Store
	images    ImageStore
	publisher EventPublisher
	log       *zap.Logger
}

func NewProductService(store *repository.Store, images ImageStore, publisher EventPublisher, log *zap.Logger) ProductService {
	return &productService{
		store:     store,
		images:    images,
		publisher: publisher,
		log:       log,
	}
}

// checkRefs confirms every supplied reference points at a row of its own kind.
func (s *productService) checkRefs(ctx context.Context, f *productFields) error {
	refs := []struct {
		kind  model.LookupKind
		field string
		id    *uint
	}{
		{model.KindCategory, "categoryId", f.CategoryID},
		{model.KindMaterial, "materialId", f.MaterialID},
		{model.KindColor, "colorId", f.ColorID},
		{model.KindSize, "sizeId", f.SizeID},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		_, err := s.store.Lookup(ref.kind).FindByID(ctx, *ref.id)
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(ref.field, fmt.Sprintf("%s %d does not exist", strings.ToLower(ref.kind.Label()), *ref.id))
		}
		if err != nil {
			return &StoreError{Op: "check " + ref.kind.Table(), Err: err}
		}
	}
	return nil
}

func (s *productService) saveImage(ctx context.Context, image *upload.File) (*string, error) {
	if image == nil {
		return nil, nil
	}
	ref, err := s.images.Save(ctx, image)
	switch {
	case errors.Is(err, upload.ErrTooLarge), errors.Is(err, upload.ErrUnsupportedType):
		return nil, invalid("image", err.Error())
	case err != nil:
		return nil, &StoreError{Op: "save image", Err: err}
	}
	return &ref, nil
}

// dropImage removes a stored image; failures only get logged.
func (s *productService) dropImage(ctx context.Context, ref *string) {
	if ref == nil {
		return
	}
	if err := s.images.Remove(ctx, *ref); err != nil {
		s.log.Warn("failed to remove image", zap.String("image", *ref), zap.Error(err))
	}
}

func (s *productService) CreateProduct(ctx context.Context, form ProductForm, image *upload.File) (uint, error) {
	// 1. Parse & validate
	f, err := parseProductForm(form)
	if err != nil {
		return 0, err
	}
	if err := fromValidator(validator.ValidateStruct(&newProduct{
		Name:       f.Name,
		Price:      f.Price,
		Quantity:   f.Quantity,
		CategoryID: f.CategoryID,
	})); err != nil {
		return 0, err
	}
	if err := s.checkRefs(ctx, f); err != nil {
		return 0, err
	}

	// 2. Store the image only once the fields are known to be good
	imageRef, err := s.saveImage(ctx, image)
	if err != nil {
		return 0, err
	}

	product := &model.Product{Image: imageRef}
	f.apply(product)

	// 3. Persist
	if err := s.store.Products.Create(ctx, product); err != nil {
		s.dropImage(ctx, imageRef)
		s.log.Error("product create failed", zap.Error(err))
		return 0, &StoreError{Op: "create product", Err: err}
	}

	s.log.Info("product created", zap.Uint("id", product.ID), zap.String("name", product.Name))
	s.publisher.Publish(newEvent("product", "created", product.ID, product.Name))
	return product.ID, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, form ProductForm, image *upload.File) error {
	f, err := parseProductForm(form)
	if err != nil {
		return err
	}
	if err := s.checkRefs(ctx, f); err != nil {
		return err
	}

	imageRef, err := s.saveImage(ctx, image)
	if err != nil {
		return err
	}

	var replaced *string
	updated, err := s.store.Products.Update(ctx, id, func(p *model.Product) error {
		f.apply(p)
		if imageRef != nil {
			replaced = p.Image
			p.Image = imageRef
		}
		return nil
	})
	if err != nil {
		s.dropImage(ctx, imageRef)
		return storeErr("update product", "product", id, err)
	}
	if replaced != nil && *replaced != *imageRef {
		s.dropImage(ctx, replaced)
	}

	s.log.Info("product updated", zap.Uint("id", id))
	s.publisher.Publish(newEvent("product", "updated", id, updated.Name))
	return nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	deleted, err := s.store.Products.Delete(ctx, id)
	if err != nil {
		return storeErr("delete product", "product", id, err)
	}
	s.dropImage(ctx, deleted.Image)

	s.log.Info("product deleted", zap.Uint("id", id))
	s.publisher.Publish(newEvent("product", "deleted", id, deleted.Name))
	return nil
}
