// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Permissions
	KeyPermissionDenied = "permission.denied"

	// Users
	KeyUserNotFound = "user.not_found"

	// Recipes
	KeyRecipeCreated  = "recipe.created"
	KeyRecipeUpdated  = "recipe.updated"
	KeyRecipeDeleted  = "recipe.deleted"
	KeyRecipeNotFound = "recipe.not_found"

	// Catalog
	KeyTagCreated          = "tag.created"
	KeyTagNotFound         = "tag.not_found"
	KeyTagExists           = "tag.exists"
	KeyIngredientCreated   = "ingredient.created"
	KeyIngredientNotFound  = "ingredient.not_found"
	KeyIngredientExists    = "ingredient.exists"

	// Memberships
	KeyFavoriteExists       = "favorite.exists"
	KeyFavoriteNotFound     = "favorite.not_found"
	KeyShoppingCartExists   = "shopping_cart.exists"
	KeyShoppingCartNotFound = "shopping_cart.not_found"

	// Subscriptions
	KeyFollowSelf     = "follow.self"
	KeyFollowExists   = "follow.exists"
	KeyFollowNotFound = "follow.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
