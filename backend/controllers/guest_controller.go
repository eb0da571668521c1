package controllers

import (
	"unichance/backend/config"
	"unichance/backend/middleware"
	"unichance/backend/models"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type GuestController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewGuestController(db *gorm.DB, cfg *config.Config) *GuestController {
	return &GuestController{DB: db, Cfg: cfg}
}

// MyLessons lists the lessons the authenticated guest is enrolled in.
func (gc *GuestController) MyLessons(c *fiber.Ctx) error {
	actor, err := middleware.CurrentUser(c, gc.DB, gc.Cfg)
	if err != nil {
		return utils.Unauthorized(c, "Unauthorized")
	}

	if actor.Status != models.StatusGuest {
		return utils.Forbidden(c, "Only guests can access this endpoint")
	}

	var lessons []models.Lesson
	if err := gc.DB.
		Select("lessons.*").
		Joins("JOIN lesson_user ON lesson_user.lesson_id = lessons.id").
		Where("lesson_user.user_id = ?", actor.ID).
		Order("lessons.id").
		Find(&lessons).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]fiber.Map, 0, len(lessons))
	for i := range lessons {
		lesson := &lessons[i]

		var teacherFIO *string
		var teacher models.User
		if err := gc.DB.First(&teacher, lesson.TeacherID).Error; err == nil {
			fio := teacher.FIO()
			teacherFIO = &fio
		}

		result = append(result, fiber.Map{
			"id":          lesson.ID,
			"time":        lesson.Time,
			"type_lesson": lesson.Subject,
			"teacher_FIO": teacherFIO,
			"place":       lesson.Place,
		})
	}

	return c.JSON(result)
}
