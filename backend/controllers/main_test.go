package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"unichance/backend/config"
	"unichance/backend/models"
	"unichance/backend/routes"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

const superadminEmail = "admin@unichance.test"

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	teardown()
	os.Exit(code)
}

func setup() {
	uploadDir, err := os.MkdirTemp("", "unichance-uploads")
	if err != nil {
		panic(err)
	}

	cfg = &config.Config{
		DatabasePath:       "file::memory:?cache=shared",
		JWTSecret:          "testsecret",
		TokenExpireMinutes: 60,
		ServerPort:         "8000",
		UploadDir:          uploadDir,
		SuperadminEmail:    superadminEmail,
		SuperadminPassword: "adminpassword",
		AIModel:            "test-model",
	}

	db, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}
	if err := utils.EnsureSuperadmin(db, cfg); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)
}

func teardown() {
	db.Migrator().DropTable(
		"lesson_user",
		&models.User{},
		&models.Lesson{},
		&models.File{},
	)
	os.RemoveAll(cfg.UploadDir)
}

// createUser inserts a user directly, bypassing the register endpoint, so
// tests can build teachers and superadmins without promotion round-trips.
func createUser(t *testing.T, email string, status models.UserStatus, subject models.LessonSubject) *models.User {
	t.Helper()

	hash, err := utils.HashPassword("password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Name:         "Ivan",
		Surname:      "Ivanov",
		Patronymic:   "Ivanovich",
		Email:        email,
		PasswordHash: hash,
		Status:       status,
		Subject:      subject,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func tokenFor(t *testing.T, userID uint) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(userID, cfg)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func superadmin(t *testing.T) *models.User {
	t.Helper()

	var admin models.User
	if err := db.Where("email = ?", superadminEmail).First(&admin).Error; err != nil {
		t.Fatalf("load superadmin: %v", err)
	}
	return &admin
}

// doRequest runs a request through the app and decodes nothing; callers
// decode what they need.
func doRequest(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

func decodeList(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()

	var result []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return result
}

var emailSeq int

// uniqueEmail avoids collisions in the shared test database.
func uniqueEmail(prefix string) string {
	emailSeq++
	return fmt.Sprintf("%s%d@example.com", prefix, emailSeq)
}
