package service

import (
	"context"
	"strings"

	"go-catalog-admin/internal/model"
	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/validator"

	"go.uber.org/zap"
)

// LookupService manages one lookup table (categories, materials, colors or sizes).
type LookupService interface {
	Kind() model.LookupKind
	List(ctx context.Context) ([]model.Lookup, error)
	Get(ctx context.Context, id uint) (*model.Lookup, error)
	Create(ctx context.Context, req LookupRequest) (uint, error)
	Update(ctx context.Context, id uint, req LookupRequest) error
	Delete(ctx context.Context, id uint) error
}

type LookupRequest struct {
	Name string `json:"name" form:"name" validate:"notblank"`
}

type lookupService struct {
	repo      repository.LookupRepository
	publisher EventPublisher
	log       *zap.Logger
}

func NewLookupService(repo repository.LookupRepository, publisher EventPublisher, log *zap.Logger) LookupService {
	return &lookupService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("entity", string(repo.Kind()))),
	}
}

func (s *lookupService) Kind() model.LookupKind {
	return s.repo.Kind()
}

func (s *lookupService) entity() string {
	return string(s.repo.Kind())
}

func (s *lookupService) List(ctx context.Context) ([]model.Lookup, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list " + s.repo.Kind().Table(), Err: err}
	}
	return rows, nil
}

func (s *lookupService) Get(ctx context.Context, id uint) (*model.Lookup, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("get "+s.entity(), s.entity(), id, err)
	}
	return row, nil
}

func (s *lookupService) validName(req LookupRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := fromValidator(validator.ValidateStruct(&req)); err != nil {
		return "", err
	}
	return req.Name, nil
}

func (s *lookupService) Create(ctx context.Context, req LookupRequest) (uint, error) {
	name, err := s.validName(req)
	if err != nil {
		return 0, err
	}

	row := &model.Lookup{Name: name}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log.Error("create failed", zap.Error(err))
		return 0, &StoreError{Op: "create " + s.entity(), Err: err}
	}

	s.log.Info("created", zap.Uint("id", row.ID), zap.String("name", name))
	s.publisher.Publish(newEvent(s.entity(), "created", row.ID, name))
	return row.ID, nil
}

// Update renames the row. A lookup has no other field, so an empty name is
// rejected rather than merged.
func (s *lookupService) Update(ctx context.Context, id uint, req LookupRequest) error {
	name, err := s.validName(req)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateName(ctx, id, name); err != nil {
		return storeErr("update "+s.entity(), s.entity(), id, err)
	}

	s.log.Info("updated", zap.Uint("id", id))
	s.publisher.Publish(newEvent(s.entity(), "updated", id, name))
	return nil
}

// Delete removes the row. Products that point at it keep the dangling id.
func (s *lookupService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr("delete "+s.entity(), s.entity(), id, err)
	}

	s.log.Info("deleted", zap.Uint("id", id))
	s.publisher.Publish(newEvent(s.entity(), "deleted", id, ""))
	return nil
}
