package models

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"not null"                 json:"first_name"`
	LastName     string `gorm:"not null"                 json:"last_name"`
	Username     string `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null"                 json:"name"`
	Description string  `gorm:"not null"                 json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Category    string  `gorm:"index"                    json:"category"`
	Brand       string  `json:"brand"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

// CartItem is one line of a user's cart. The cart itself is implicit:
// every line belongs to exactly one user, and the unique index keeps at
// most one line per (user, product) pair.
type CartItem struct {
	ID        uint `gorm:"primaryKey"                             json:"id"`
	UserID    uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"user_id"`
	ProductID uint `gorm:"uniqueIndex:idx_user_product;not null"  json:"product_id"`
	Quantity  uint `gorm:"default:1;check:quantity>0"             json:"quantity"`
}

// ProductQuantity is a response-only projection of a cart line joined
// with its product. It is never persisted.
type ProductQuantity struct {
	Product Product `json:"product"`
	Count   uint    `json:"count"`
}
