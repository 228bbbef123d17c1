package service

import (
	"context"

	"github.com/Skotchmaster/marketplace/internal/models"
	"github.com/Skotchmaster/marketplace/internal/repo"
)

// ProductService is a thin pass-through over the product repository.
type ProductService struct {
	Repo *repo.GormRepo
}

func NewProductService(r *repo.GormRepo) *ProductService {
	return &ProductService{Repo: r}
}

func (s *ProductService) Products(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	return s.Repo.Products(ctx, offset, limit)
}

func (s *ProductService) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.ProductByID(ctx, id)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]models.Product, error) {
	return s.Repo.SearchProducts(ctx, query)
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ProductsByCategory(ctx, category)
}
