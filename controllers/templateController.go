package controllers

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"orient-classics-backend/database"
	"orient-classics-backend/middlewares"
	"orient-classics-backend/models"
	"orient-classics-backend/render"
	"orient-classics-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateCreateDTO struct {
	Name            string `json:"name" validate:"required,min=1"`
	Description     string `json:"description" validate:"omitempty"`
	Content         string `json:"content" validate:"omitempty"`
	IsDefault       bool   `json:"is_default" validate:"omitempty"`
	TranslationPart string `json:"translation_part" validate:"omitempty"`
}

type TemplateUpdateDTO struct {
	Name            *string `json:"name" validate:"omitempty,min=1"`
	Description     *string `json:"description" validate:"omitempty"`
	Content         *string `json:"content" validate:"omitempty"`
	IsDefault       *bool   `json:"is_default" validate:"omitempty"`
	TranslationPart *string `json:"translation_part" validate:"omitempty"`
}

func uploadsDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	return dir
}

// saveTemplateUpload stores the uploaded .docx under a uuid name and returns
// the stored path.
func saveTemplateUpload(c *fiber.Ctx) (path, fileName string, size int64, err error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", "", 0, fiber.NewError(fiber.StatusBadRequest, "missing file upload")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".docx") {
		return "", "", 0, fiber.NewError(fiber.StatusBadRequest, "only .docx templates are supported")
	}

	dir := uploadsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", 0, fiber.NewError(fiber.StatusInternalServerError, "could not prepare uploads directory")
	}
	stored := filepath.Join(dir, uuid.NewString()+".docx")
	if err := c.SaveFile(fh, stored); err != nil {
		return "", "", 0, fiber.NewError(fiber.StatusInternalServerError, "could not store uploaded file")
	}
	return stored, fh.Filename, fh.Size, nil
}

// POST /api/contract-template
// Rich-text templates arrive as JSON; word_file templates as multipart with a
// "file" part plus form fields.
func CreateTemplate(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	ct := string(c.Request().Header.ContentType())
	if strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		name := strings.TrimSpace(c.FormValue("name"))
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		stored, fileName, size, err := saveTemplateUpload(c)
		if err != nil {
			return err
		}

		tpl := models.ContractTemplate{
			Name:            name,
			Description:     strings.TrimSpace(c.FormValue("description")),
			Type:            models.TemplateTypeWordFile,
			FilePath:        stored,
			FileName:        fileName,
			FileSize:        size,
			IsDefault:       parseBoolForm(c.FormValue("is_default")),
			TranslationPart: strings.TrimSpace(c.FormValue("translation_part")),
		}
		if err := db.Create(&tpl).Error; err != nil {
			_ = os.Remove(stored)
			return fiber.NewError(fiber.StatusBadRequest, "could not create template")
		}
		return c.Status(fiber.StatusCreated).JSON(tpl)
	}

	var in TemplateCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	tpl := models.ContractTemplate{
		Name:            in.Name,
		Description:     in.Description,
		Type:            models.TemplateTypeRichText,
		Content:         in.Content,
		IsDefault:       in.IsDefault,
		TranslationPart: in.TranslationPart,
	}
	if err := db.Create(&tpl).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create template")
	}
	return c.Status(fiber.StatusCreated).JSON(tpl)
}

// GET /api/contract-templates
func GetTemplates(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	q := db.Model(&models.ContractTemplate{}).Order("created_at DESC")
	if typ := strings.TrimSpace(c.Query("type")); typ != "" {
		q = q.Where("type = ?", typ)
	}

	var templates []models.ContractTemplate
	if err := q.Find(&templates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list templates")
	}
	return c.JSON(fiber.Map{"templates": templates, "message": "success"})
}

// GET /api/contract-template/:id
func GetTemplate(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing template id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var tpl models.ContractTemplate
	if err := db.First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(tpl)
}

// GET /api/contract-template/:id/file
func DownloadTemplateFile(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing template id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var tpl models.ContractTemplate
	if err := db.First(&tpl, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if tpl.Type != models.TemplateTypeWordFile || tpl.FilePath == "" {
		return fiber.NewError(fiber.StatusBadRequest, "template has no uploaded file")
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+utils.SanitizeFileName(tpl.FileName)+`"`)
	return c.SendFile(tpl.FilePath)
}

// PUT /api/contract-template/:id
// Metadata/content updates arrive as JSON; a multipart request replaces the
// uploaded file of a word_file template.
func UpdateTemplate(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing template id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.ContractTemplate
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	ct := string(c.Request().Header.ContentType())
	if strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		if existing.Type != models.TemplateTypeWordFile {
			return fiber.NewError(fiber.StatusBadRequest, "template is not a word_file template")
		}

		stored, fileName, size, err := saveTemplateUpload(c)
		if err != nil {
			return err
		}

		oldPath := existing.FilePath
		updates := map[string]any{
			"file_path": stored,
			"file_name": fileName,
			"file_size": size,
		}
		if name := strings.TrimSpace(c.FormValue("name")); name != "" {
			updates["name"] = name
		}
		if err := db.Model(&models.ContractTemplate{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			_ = os.Remove(stored)
			return fiber.NewError(fiber.StatusBadRequest, "could not update template")
		}
		render.EvictTemplate(id)
		if oldPath != "" && oldPath != stored {
			_ = os.Remove(oldPath)
		}
	} else {
		var in TemplateUpdateDTO
		if err := middlewares.BindAndValidate(c, &in); err != nil {
			return err
		}
		utils.NormalizeDTO(&in)

		updates := utils.UpdatesFromPtrDTO(&in)
		if len(updates) > 0 {
			if err := db.Model(&models.ContractTemplate{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "could not update template")
			}
		}
	}

	var out models.ContractTemplate
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload template")
	}
	return c.JSON(out)
}

// DELETE /api/contract-template/:id
func DeleteTemplate(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing template id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.ContractTemplate
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := db.Delete(&models.ContractTemplate{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete template")
	}
	render.EvictTemplate(id)
	if existing.FilePath != "" {
		_ = os.Remove(existing.FilePath)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func parseBoolForm(s string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(s))
	return b
}
