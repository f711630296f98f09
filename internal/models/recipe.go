// internal/models/recipe.go
package models

type Recipe struct {
	BaseModel
	AuthorID    uint   `json:"-" gorm:"not null;index"`
	Name        string `json:"name" gorm:"size:200;not null;index"`
	Image       string `json:"image" gorm:"size:500;not null"`
	Text        string `json:"text" gorm:"type:text;not null"`
	CookingTime int    `json:"cooking_time" gorm:"not null"`

	// Relationships
	Author            User               `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Tags              []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	RecipeIngredients []RecipeIngredient `json:"-" gorm:"foreignKey:RecipeID"`
}

// RecipeIngredient is the association record the shopping-list
// aggregation scans; amount lives here, not on Ingredient.
type RecipeIngredient struct {
	BaseModel
	RecipeID     uint `json:"recipe_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient_pair"`
	IngredientID uint `json:"ingredient_id" gorm:"not null;uniqueIndex:idx_recipe_ingredient_pair"`
	Amount       int  `json:"amount" gorm:"not null"`

	Recipe     Recipe     `json:"-" gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient Ingredient `json:"-" gorm:"foreignKey:IngredientID"`
}
