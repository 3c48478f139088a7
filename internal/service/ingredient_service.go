package service

import (
	"context"

	"github.com/AbyssT34/Ecommerce-Shop/internal/dto"
	"github.com/AbyssT34/Ecommerce-Shop/internal/model"
	"github.com/AbyssT34/Ecommerce-Shop/internal/repository"

	"github.com/google/uuid"
)

type IngredientService interface {
	Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context) ([]dto.IngredientResponse, error)
}

type ingredientService struct {
	repo repository.IngredientRepository
}

func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if existing, err := s.repo.FindByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrDuplicate
	}
	i := &model.Ingredient{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	resp := ingredientToResponse(i)
	return &resp, nil
}

func (s *ingredientService) FindByID(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	resp := ingredientToResponse(i)
	return &resp, nil
}

func (s *ingredientService) List(ctx context.Context) ([]dto.IngredientResponse, error) {
	ingredients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		result = append(result, ingredientToResponse(&ingredients[i]))
	}
	return result, nil
}

func ingredientToResponse(i *model.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:          i.ID.String(),
		Name:        i.Name,
		Description: i.Description,
	}
}
