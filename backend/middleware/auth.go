package middleware

import (
	"errors"
	"unichance/backend/config"
	"unichance/backend/models"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware rejects requests without a resolvable bearer token.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// CurrentUser resolves the bearer token to the user row it was issued for.
// A token for a deleted user resolves to nothing and is treated as
// unauthenticated.
func CurrentUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	userID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
		}
		return nil, err
	}

	return &user, nil
}
