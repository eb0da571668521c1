package routes

import (
	"unichance/backend/config"
	"unichance/backend/controllers"
	"unichance/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Pong"})
	})

	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/auth/register", authController.Register)
	app.Post("/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	app.Get("/auth/me", authMiddleware, authController.Me)

	// Superadmin routes. Role checks live in the handlers so the
	// existence-before-authorization error order is preserved.
	superadminController := controllers.NewSuperadminController(db, cfg)
	superadmin := app.Group("/superadmin", authMiddleware)
	superadmin.Get("/find_id_from_FIO/:user_email", superadminController.FindIDByEmail)
	superadmin.Delete("/del_user/:user_id", superadminController.DeleteUser)
	superadmin.Put("/change_to_teacher/:user_id", superadminController.PromoteToTeacher)
	superadmin.Get("/students", superadminController.ListStudents)
	superadmin.Get("/teachers", superadminController.ListTeachers)

	// Teacher routes
	teacherController := controllers.NewTeacherController(db, cfg)
	teacher := app.Group("/teacher", authMiddleware)
	teacher.Get("/find_id_from_FIO/:user_email", teacherController.FindStudentIDByEmail)
	teacher.Post("/create_lesson", teacherController.CreateLesson)
	teacher.Put("/add_child_in_list_lesson/:child_id/:lesson_id", teacherController.AddStudent)
	teacher.Delete("/delete_child_from_list_lesson/:child_id/:lesson_id", teacherController.RemoveStudent)
	teacher.Get("/list_of_lessons", teacherController.ListLessons)

	// Guest routes
	guestController := controllers.NewGuestController(db, cfg)
	app.Get("/guest/my_lessons", authMiddleware, guestController.MyLessons)

	// File routes
	filesController := controllers.NewFilesController(db, cfg)
	files := app.Group("/files")
	files.Post("/upload", filesController.Upload)
	files.Get("/preview/:file_uuid", filesController.Preview)
	files.Get("/:file_uuid", filesController.Get)

	// Unichance AI routes
	aiController := controllers.NewAIController(db, cfg)
	ai := app.Group("/unichance-ai", authMiddleware)
	ai.Get("/ask/:prompt", aiController.Ask)
	ai.Get("/history", aiController.History)
}
