// internal/models/membership.go
package models

// Favorite marks a recipe as favorited by a user, unique per pair.
type Favorite struct {
	BaseModel
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`
	RecipeID uint `json:"recipe_id" gorm:"not null;uniqueIndex:idx_favorite_pair"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// ShoppingCart marks a recipe as queued for purchase planning, unique per pair.
type ShoppingCart struct {
	BaseModel
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_shopping_cart_pair"`
	RecipeID uint `json:"recipe_id" gorm:"not null;uniqueIndex:idx_shopping_cart_pair"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe Recipe `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
