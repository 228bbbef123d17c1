package repo

import (
	"context"

	"github.com/Skotchmaster/marketplace/internal/models"
)

// CreateUser inserts a new user. The unique indexes on username and
// email are the source of truth for uniqueness; a violation comes back
// as ErrDuplicate instead of a prior existence check, so concurrent
// signups cannot slip past the validation.
func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *GormRepo) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
