package controllers

import (
	"errors"
	"strings"

	"orient-classics-backend/database"
	"orient-classics-backend/middlewares"
	"orient-classics-backend/models"
	"orient-classics-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WorkCreateDTO struct {
	Name                string `json:"name" validate:"required,min=1"`
	NameOriginal        string `json:"name_original" validate:"omitempty"`
	Author              string `json:"author" validate:"omitempty"`
	SourceLanguage      string `json:"source_language" validate:"omitempty"`
	TargetLanguage      string `json:"target_language" validate:"omitempty"`
	PageCount           int    `json:"page_count" validate:"omitempty,gte=0"`
	WordCount           int    `json:"word_count" validate:"omitempty,gte=0"`
	Description         string `json:"description" validate:"omitempty"`
	TranslationPartCode string `json:"translation_part_code" validate:"omitempty"`
	Stage               string `json:"stage" validate:"omitempty"`
}

type WorkUpdateDTO struct {
	Name                *string `json:"name" validate:"omitempty,min=1"`
	NameOriginal        *string `json:"name_original" validate:"omitempty"`
	Author              *string `json:"author" validate:"omitempty"`
	SourceLanguage      *string `json:"source_language" validate:"omitempty"`
	TargetLanguage      *string `json:"target_language" validate:"omitempty"`
	PageCount           *int    `json:"page_count" validate:"omitempty,gte=0"`
	WordCount           *int    `json:"word_count" validate:"omitempty,gte=0"`
	Description         *string `json:"description" validate:"omitempty"`
	TranslationPartCode *string `json:"translation_part_code" validate:"omitempty"`
	Stage               *string `json:"stage" validate:"omitempty"`
	Active              *bool   `json:"active" validate:"omitempty"`
}

// POST /api/work
func CreateWork(c *fiber.Ctx) error {
	var in WorkCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	work := models.Work{
		Name:                in.Name,
		NameOriginal:        in.NameOriginal,
		Author:              in.Author,
		SourceLanguage:      in.SourceLanguage,
		TargetLanguage:      in.TargetLanguage,
		PageCount:           in.PageCount,
		WordCount:           in.WordCount,
		Description:         in.Description,
		TranslationPartCode: in.TranslationPartCode,
		Stage:               in.Stage,
		Active:              true,
	}

	if err := db.Create(&work).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create work")
	}
	return c.Status(fiber.StatusCreated).JSON(work)
}

// GET /api/works
func GetWorks(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	q := db.Model(&models.Work{}).Order("created_at DESC")
	if stage := strings.TrimSpace(c.Query("stage")); stage != "" {
		q = q.Where("stage = ?", stage)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR name_original ILIKE ? OR author ILIKE ?", pattern, pattern, pattern)
	}

	var works []models.Work
	if err := q.Find(&works).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list works")
	}
	return c.JSON(fiber.Map{"works": works, "message": "success"})
}

// GET /api/work/:id
func GetWork(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing work id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var work models.Work
	if err := db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "work not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(work)
}

// PUT /api/work/:id
func UpdateWork(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing work id in path")
	}

	var in WorkUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.Work
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "work not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	if len(updates) > 0 {
		if err := db.Model(&models.Work{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update work")
		}
	}

	var out models.Work
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload work")
	}
	return c.JSON(out)
}

// DELETE /api/work/:id
func DeleteWork(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing work id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var count int64
	if err := db.Model(&models.Contract{}).Where("work_id = ?", id).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "work has contracts and cannot be deleted")
	}

	res := db.Delete(&models.Work{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete work")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "work not found")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
