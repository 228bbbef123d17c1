package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/marketplace/internal/models"
)

// AddCartItem bumps the quantity of the user's line for the product,
// creating the line with quantity 1 when there is none. The insert and
// the increment are a single ON CONFLICT upsert against the
// (user, product) unique index, so two concurrent adds both land: one
// inserts, the other increments, and neither can turn the lost race
// into a duplicate-key failure.
func (r *GormRepo) AddCartItem(ctx context.Context, userID, productID uint) error {
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("quantity + ?", 1)}),
		}).
		Create(&item).Error
}

// CartItems returns the user's cart lines joined with their products,
// ordered by product id. An empty cart yields an empty slice.
func (r *GormRepo) CartItems(ctx context.Context, userID uint) ([]models.ProductQuantity, error) {
	var lines []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("product_id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}

	result := make([]models.ProductQuantity, 0, len(lines))
	if len(lines) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		result = append(result, models.ProductQuantity{Product: product, Count: line.Quantity})
	}

	return result, nil
}
