package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/marketplace/internal/models"
)

func (r *GormRepo) Products(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// SearchProducts matches the query as a case-insensitive substring of
// the name or description. LOWER + LIKE instead of ILIKE keeps the
// query portable between postgres and the sqlite test database.
func (r *GormRepo) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", category).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
