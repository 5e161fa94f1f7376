package service

import (
	"context"

	"github.com/tnguyen/foodlog/internal/domain"
	"github.com/tnguyen/foodlog/internal/repository"
)

type catalogService struct {
	foods repository.FoodRepo
}

func NewCatalogService(foods repository.FoodRepo) CatalogService {
	return &catalogService{foods: foods}
}

func (s *catalogService) Food(ctx context.Context, fdcID int64) (*domain.Food, error) {
	return s.foods.GetByFDCID(ctx, fdcID)
}

func (s *catalogService) FoodHistory(ctx context.Context) ([]*domain.Food, error) {
	return s.foods.History(ctx)
}

func (s *catalogService) RemoveFromHistory(ctx context.Context, fdcID int64) error {
	return s.foods.ClearHistory(ctx, fdcID)
}
