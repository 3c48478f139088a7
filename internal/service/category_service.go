package service

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
)

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrDuplicate
	}
	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) FindByID(ctx context.Context, id uuid.UUID) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, categoryToResponse(&categories[i]))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if req.Name != nil && *req.Name != c.Name {
		if existing, err := s.repo.FindByName(ctx, *req.Name); err == nil && existing != nil {
			return nil, ErrDuplicate
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := categoryToResponse(c)
	return &resp, nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return ErrNotFound
	}
	return s.repo.Deactivate(ctx, id)
}

func categoryToResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
	}
}
