package controllers

import (
	"errors"
	"unichance/backend/config"
	"unichance/backend/middleware"
	"unichance/backend/models"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SuperadminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewSuperadminController(db *gorm.DB, cfg *config.Config) *SuperadminController {
	return &SuperadminController{DB: db, Cfg: cfg}
}

// FindIDByEmail resolves a user's numeric id from their email.
func (sc *SuperadminController) FindIDByEmail(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status != models.StatusSuperadmin {
		return utils.Forbidden(c, "You are not SUPERADMIN")
	}

	var user models.User
	if err := sc.DB.Where("email = ?", c.Params("user_email")).First(&user).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	return c.JSON(fiber.Map{"id": user.ID})
}

// DeleteUser hard-removes a user together with their roster memberships.
// Check order: existence, actor role, target protection. Superadmins can
// never be deleted.
func (sc *SuperadminController) DeleteUser(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	var target models.User
	if err := sc.DB.First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if actor.Status != models.StatusSuperadmin {
		return utils.Forbidden(c, "You are not SUPERADMIN")
	}

	if target.Status == models.StatusSuperadmin {
		return utils.MethodNotAllowed(c, "You can't delete superadmin")
	}

	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM lesson_user WHERE user_id = ?", target.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&target).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}

	return c.JSON(fiber.Map{"result": "User successfully deleted"})
}

// PromoteToTeacher moves a guest to the teacher role. Check order:
// existence, actor role, target protection, state conflict.
func (sc *SuperadminController) PromoteToTeacher(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	userID, err := c.ParamsInt("user_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user id")
	}

	var target models.User
	if err := sc.DB.First(&target, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if actor.Status != models.StatusSuperadmin {
		return utils.Forbidden(c, "You are not SUPERADMIN")
	}

	if target.Status == models.StatusSuperadmin {
		return utils.MethodNotAllowed(c, "You can't move down from superadmin to teacher")
	}

	if target.Status == models.StatusTeacher {
		return utils.Conflict(c, "This user is already teacher")
	}

	target.Status = models.StatusTeacher
	if err := sc.DB.Save(&target).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}

	return c.JSON(fiber.Map{"result": "User status successfully changed"})
}

// ListStudents returns all guest users.
func (sc *SuperadminController) ListStudents(c *fiber.Ctx) error {
	return sc.listByStatus(c, models.StatusGuest)
}

// ListTeachers returns all teacher users.
func (sc *SuperadminController) ListTeachers(c *fiber.Ctx) error {
	return sc.listByStatus(c, models.StatusTeacher)
}

func (sc *SuperadminController) listByStatus(c *fiber.Ctx, status models.UserStatus) error {
	actor, err := middleware.CurrentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status != models.StatusSuperadmin {
		return utils.Forbidden(c, "You are not SUPERADMIN")
	}

	var users []models.User
	if err := sc.DB.Where("status = ?", status).Order("id").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(users))
	for i := range users {
		u := &users[i]
		result = append(result, fiber.Map{
			"id":          u.ID,
			"FIO":         u.FIO(),
			"email":       u.Email,
			"subject":     u.Subject,
			"avatar_uuid": u.AvatarUUID,
		})
	}

	return c.JSON(result)
}
