package controllers

import (
	"os"
	"path/filepath"
	"strings"
	"unichance/backend/config"
	"unichance/backend/models"
	"unichance/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFilesController(db *gorm.DB, cfg *config.Config) *FilesController {
	return &FilesController{DB: db, Cfg: cfg}
}

// Upload stores an image on disk under a fresh UUID and records it in the
// database. Only image content types are accepted.
func (fc *FilesController) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "File is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return utils.BadRequest(c, "Only image files are allowed")
	}

	if err := os.MkdirAll(fc.Cfg.UploadDir, 0o755); err != nil {
		return utils.InternalServerError(c, "Could not prepare upload directory")
	}

	uniqueID := uuid.New().String()
	ext := filepath.Ext(fileHeader.Filename)
	path := filepath.Join(fc.Cfg.UploadDir, uniqueID+ext)
	absPath, err := filepath.Abs(path)
	if err != nil {
		return utils.InternalServerError(c, "Could not resolve file path")
	}

	if err := c.SaveFile(fileHeader, path); err != nil {
		return utils.InternalServerError(c, "Could not save file")
	}

	file := models.File{
		UUID:        uniqueID,
		Filename:    fileHeader.Filename,
		Path:        absPath,
		ContentType: contentType,
	}
	if err := fc.DB.Create(&file).Error; err != nil {
		return utils.InternalServerError(c, "Could not save file record")
	}

	return c.JSON(fiber.Map{
		"uuid":     file.UUID,
		"filename": file.Filename,
	})
}

// Get serves a stored image as a download under its original filename.
func (fc *FilesController) Get(c *fiber.Ctx) error {
	var file models.File
	if err := fc.DB.Where("uuid = ?", c.Params("file_uuid")).First(&file).Error; err != nil {
		return utils.NotFound(c, "File not found")
	}

	return c.Download(file.Path, file.Filename)
}

// Preview serves a stored image inline with its recorded content type.
func (fc *FilesController) Preview(c *fiber.Ctx) error {
	var file models.File
	if err := fc.DB.Where("uuid = ?", c.Params("file_uuid")).First(&file).Error; err != nil {
		return utils.NotFound(c, "File not found")
	}

	data, err := os.ReadFile(file.Path)
	if err != nil {
		return utils.NotFound(c, "File not found")
	}

	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(data)
}
