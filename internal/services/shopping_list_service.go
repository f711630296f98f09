// internal/services/shopping_list_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/recipebox/recipebox-backend/internal/models"
)

// ShoppingListService renders a user's shopping cart as a plain-text
// ingredient list. Read-only; amounts for the same (name, measurement_unit)
// pair are summed across recipes, since two recipes may reference the same
// conceptual ingredient.
type ShoppingListService struct {
	db *gorm.DB
}

type ShoppingListDocument struct {
	Filename string
	Content  string
}

type shoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int64
}

const (
	shoppingListHeader = "Your shopping list:"
	shoppingListEmpty  = "Your shopping cart is empty."
	footerTimeFormat   = "15:04 on 02/01/2006"
)

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// BuildShoppingList aggregates the ingredients of every recipe in the user's
// cart and renders the text document. Ordering is by ingredient name, then
// unit, so repeated calls with an unchanged cart produce identical lines.
func (s *ShoppingListService) BuildShoppingList(userID uint) (*ShoppingListDocument, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var rows []shoppingListRow
	err := s.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_carts ON shopping_carts.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name, ingredients.measurement_unit").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping cart: %w", err)
	}

	return &ShoppingListDocument{
		Filename: user.Username + "-shopping-list.txt",
		Content:  renderShoppingList(rows, time.Now()),
	}, nil
}

func renderShoppingList(rows []shoppingListRow, now time.Time) string {
	var b strings.Builder

	if len(rows) == 0 {
		b.WriteString(shoppingListEmpty)
		b.WriteString("\n")
	} else {
		b.WriteString(shoppingListHeader)
		b.WriteString("\n")
		for i, row := range rows {
			fmt.Fprintf(&b, "%d. %s %d %s.\n", i+1, row.Name, row.Total, row.MeasurementUnit)
		}
	}

	b.WriteString(shoppingListFooter(now))
	return b.String()
}

func shoppingListFooter(now time.Time) string {
	line := "Generated at " + now.Format(footerTimeFormat)
	return strings.Repeat("-", len(line)) + "\n" + line + "\n"
}
