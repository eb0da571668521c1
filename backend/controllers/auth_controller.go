package controllers

import (
	"errors"
	"strings"
	"unichance/backend/config"
	"unichance/backend/middleware"
	"unichance/backend/models"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAuthController(db *gorm.DB, cfg *config.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

type RegisterInput struct {
	Name       string  `json:"name"`
	Surname    string  `json:"surname"`
	Patronymic string  `json:"patronymic"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Subject    string  `json:"subject"`
	AvatarUUID *string `json:"avatar_uuid"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. Every registration starts as a guest no
// matter what the request claims; promotion is a superadmin operation.
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return utils.BadRequest(c, "A valid email is required")
	}
	if input.Password == "" {
		return utils.BadRequest(c, "Password is required")
	}
	subject := models.LessonSubject(input.Subject)
	if !subject.Valid() {
		return utils.BadRequest(c, "Unknown subject")
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return utils.BadRequest(c, "Email already registered")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return utils.InternalServerError(c, "Could not hash password")
	}

	user := models.User{
		Name:         input.Name,
		Surname:      input.Surname,
		Patronymic:   input.Patronymic,
		Email:        input.Email,
		PasswordHash: hash,
		Status:       models.StatusGuest,
		Subject:      subject,
		AvatarUUID:   input.AvatarUUID,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not create user")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Login authenticates by email and password and returns a fresh token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	token, err := utils.GenerateJWTToken(user.ID, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, "Could not generate token")
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Me returns the profile of the authenticated user.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c, ac.DB, ac.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"name":        user.Name,
		"surname":     user.Surname,
		"patronymic":  user.Patronymic,
		"email":       user.Email,
		"status":      user.Status,
		"subject":     user.Subject,
		"avatar_uuid": user.AvatarUUID,
	})
}
