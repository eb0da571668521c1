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

type TeacherController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewTeacherController(db *gorm.DB, cfg *config.Config) *TeacherController {
	return &TeacherController{DB: db, Cfg: cfg}
}

type CreateLessonInput struct {
	Time  string `json:"time"`
	Place string `json:"place"`
}

// canManageLesson: the owning teacher or any superadmin may change a roster.
func canManageLesson(actor *models.User, lesson *models.Lesson) bool {
	return lesson.TeacherID == actor.ID || actor.Status == models.StatusSuperadmin
}

// FindStudentIDByEmail resolves a guest's id from their email. Only
// registered guests are searchable here.
func (tc *TeacherController) FindStudentIDByEmail(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, tc.DB, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status == models.StatusGuest {
		return utils.Forbidden(c, "You haven't rights to do this")
	}

	var user models.User
	err = tc.DB.Where("email = ?", c.Params("user_email")).First(&user).Error
	if err != nil || user.Status != models.StatusGuest {
		return utils.BadRequest(c, "User not found")
	}

	return c.JSON(fiber.Map{"id": user.ID})
}

// CreateLesson schedules a new lesson. Subject and teacher are taken from
// the authenticated user, never from the request body.
func (tc *TeacherController) CreateLesson(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, tc.DB, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status == models.StatusGuest {
		return utils.Forbidden(c, "You haven't rights to do this")
	}

	var input CreateLessonInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.Place == "" {
		return utils.BadRequest(c, "Place is required")
	}

	lesson := models.Lesson{
		Subject:   actor.Subject,
		TeacherID: actor.ID,
		Time:      input.Time,
		Place:     input.Place,
	}
	if err := tc.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}

	return c.JSON(fiber.Map{
		"id":         lesson.ID,
		"subject":    lesson.Subject,
		"teacher_id": lesson.TeacherID,
		"time":       lesson.Time,
		"place":      lesson.Place,
	})
}

// AddStudent enrolls a student into a lesson. Check order: actor role,
// lesson existence, ownership, student existence. Enrollment is idempotent:
// adding the same student twice is a conflict, not a duplicate row.
func (tc *TeacherController) AddStudent(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, tc.DB, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status == models.StatusGuest {
		return utils.Forbidden(c, "You haven't rights to do this")
	}

	childID, err := c.ParamsInt("child_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid child id")
	}
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson id")
	}

	var lesson models.Lesson
	if err := tc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !canManageLesson(actor, &lesson) {
		return utils.Forbidden(c, "This is not your lesson")
	}

	var student models.User
	if err := tc.DB.First(&student, childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrolled int64
	tc.DB.Table("lesson_user").
		Where("lesson_id = ? AND user_id = ?", lesson.ID, student.ID).
		Count(&enrolled)
	if enrolled > 0 {
		return utils.Conflict(c, "User is already in the lesson")
	}

	if err := tc.DB.Model(&lesson).Association("Users").Append(&student); err != nil {
		return utils.InternalServerError(c, "Could not enroll user")
	}

	return c.JSON(fiber.Map{"result": "User successfully added to lesson"})
}

// RemoveStudent takes a student out of a lesson roster.
func (tc *TeacherController) RemoveStudent(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, tc.DB, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status == models.StatusGuest {
		return utils.Forbidden(c, "You haven't rights to do this")
	}

	childID, err := c.ParamsInt("child_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid child id")
	}
	lessonID, err := c.ParamsInt("lesson_id")
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson id")
	}

	var lesson models.Lesson
	if err := tc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if !canManageLesson(actor, &lesson) {
		return utils.Forbidden(c, "This is not your lesson")
	}

	var student models.User
	if err := tc.DB.First(&student, childID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var enrolled int64
	tc.DB.Table("lesson_user").
		Where("lesson_id = ? AND user_id = ?", lesson.ID, student.ID).
		Count(&enrolled)
	if enrolled == 0 {
		return utils.NotFound(c, "User not in list of lesson")
	}

	if err := tc.DB.Model(&lesson).Association("Users").Delete(&student); err != nil {
		return utils.InternalServerError(c, "Could not remove user from lesson")
	}

	return c.JSON(fiber.Map{"result": "User successfully deleted from lesson"})
}

// ListLessons returns the actor's lessons in creation order, each expanded
// with the teacher's display name and the full roster.
func (tc *TeacherController) ListLessons(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, tc.DB, tc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status == models.StatusGuest {
		return utils.Forbidden(c, "You haven't rights to do this")
	}

	var lessons []models.Lesson
	if err := tc.DB.Preload("Users").
		Where("teacher_id = ?", actor.ID).
		Order("id").
		Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		lesson := &lessons[i]

		roster := make([]fiber.Map, 0, len(lesson.Users))
		for j := range lesson.Users {
			u := &lesson.Users[j]
			roster = append(roster, fiber.Map{
				"id":          u.ID,
				"FIO":         u.FIO(),
				"email":       u.Email,
				"avatar_uuid": u.AvatarUUID,
			})
		}

		result = append(result, fiber.Map{
			"id":          lesson.ID,
			"time":        lesson.Time,
			"type_lesson": lesson.Subject,
			"teacher_FIO": actor.FIO(),
			"place":       lesson.Place,
			"users":       roster,
		})
	}

	return c.JSON(result)
}
