package controllers

import (
	"errors"
	"strings"
	"time"

	"orient-classics-backend/database"
	"orient-classics-backend/middlewares"
	"orient-classics-backend/models"
	"orient-classics-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TranslatorCreateDTO struct {
	FullName          string `json:"full_name" validate:"required,min=1"`
	IdCardNumber      string `json:"id_card_number" validate:"omitempty"`
	IdCardIssueDate   string `json:"id_card_issue_date" validate:"omitempty"`
	IdCardIssuePlace  string `json:"id_card_issue_place" validate:"omitempty"`
	Workplace         string `json:"workplace" validate:"omitempty"`
	Address           string `json:"address" validate:"omitempty"`
	Phone             string `json:"phone" validate:"omitempty"`
	Email             string `json:"email" validate:"omitempty,email"`
	Beneficiary       string `json:"beneficiary" validate:"omitempty"`
	BankAccountNumber string `json:"bank_account_number" validate:"omitempty"`
	BankName          string `json:"bank_name" validate:"omitempty"`
	BankBranch        string `json:"bank_branch" validate:"omitempty"`
	TaxCode           string `json:"tax_code" validate:"omitempty"`
}

type TranslatorUpdateDTO struct {
	FullName          *string `json:"full_name" validate:"omitempty,min=1"`
	IdCardNumber      *string `json:"id_card_number" validate:"omitempty"`
	IdCardIssueDate   *string `json:"id_card_issue_date" validate:"omitempty"`
	IdCardIssuePlace  *string `json:"id_card_issue_place" validate:"omitempty"`
	Workplace         *string `json:"workplace" validate:"omitempty"`
	Address           *string `json:"address" validate:"omitempty"`
	Phone             *string `json:"phone" validate:"omitempty"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Beneficiary       *string `json:"beneficiary" validate:"omitempty"`
	BankAccountNumber *string `json:"bank_account_number" validate:"omitempty"`
	BankName          *string `json:"bank_name" validate:"omitempty"`
	BankBranch        *string `json:"bank_branch" validate:"omitempty"`
	TaxCode           *string `json:"tax_code" validate:"omitempty"`
	Active            *bool   `json:"active" validate:"omitempty"`
}

// parseDatePtr accepts "2006-01-02" (the form wire format) with an RFC3339
// fallback. Empty or malformed input yields nil.
func parseDatePtr(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}

// POST /api/translator
func CreateTranslator(c *fiber.Ctx) error {
	var in TranslatorCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	translator := models.Translator{
		FullName:          in.FullName,
		IdCardNumber:      in.IdCardNumber,
		IdCardIssueDate:   parseDatePtr(in.IdCardIssueDate),
		IdCardIssuePlace:  in.IdCardIssuePlace,
		Workplace:         in.Workplace,
		Address:           in.Address,
		Phone:             in.Phone,
		Email:             in.Email,
		Beneficiary:       in.Beneficiary,
		BankAccountNumber: in.BankAccountNumber,
		BankName:          in.BankName,
		BankBranch:        in.BankBranch,
		TaxCode:           in.TaxCode,
		Active:            true,
	}

	if err := db.Create(&translator).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create translator")
	}
	return c.Status(fiber.StatusCreated).JSON(translator)
}

// GET /api/translators
func GetTranslators(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	q := db.Model(&models.Translator{}).Order("full_name ASC")
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
	}

	var translators []models.Translator
	if err := q.Find(&translators).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list translators")
	}
	return c.JSON(fiber.Map{"translators": translators, "message": "success"})
}

// GET /api/translator/:id
func GetTranslator(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing translator id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var translator models.Translator
	if err := db.First(&translator, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "translator not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(translator)
}

// PUT /api/translator/:id
func UpdateTranslator(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing translator id in path")
	}

	var in TranslatorUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.Translator
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "translator not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in)
	// The issue date travels as a string; convert before it reaches the DB.
	if in.IdCardIssueDate != nil {
		updates["id_card_issue_date"] = parseDatePtr(*in.IdCardIssueDate)
	}
	if len(updates) > 0 {
		if err := db.Model(&models.Translator{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update translator")
		}
	}

	var out models.Translator
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload translator")
	}
	return c.JSON(out)
}

// DELETE /api/translator/:id
func DeleteTranslator(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing translator id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var count int64
	if err := db.Model(&models.Contract{}).Where("translator_id = ?", id).Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusConflict, "translator has contracts and cannot be deleted")
	}

	res := db.Delete(&models.Translator{}, "id = ?", id)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete translator")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "translator not found")
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}
