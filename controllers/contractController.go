package controllers

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"orient-classics-backend/database"
	"orient-classics-backend/finance"
	"orient-classics-backend/merge"
	"orient-classics-backend/middlewares"
	"orient-classics-backend/models"
	"orient-classics-backend/render"
	"orient-classics-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// ContractFinanceDTO carries the raw cascade inputs. Amounts tolerate numbers
// and Vietnamese-formatted strings; anything unparseable coerces to zero.
type ContractFinanceDTO struct {
	BasePageCount          utils.Amount `json:"base_page_count"`
	TranslationUnitPrice   utils.Amount `json:"translation_unit_price"`
	OverviewWritingCost    utils.Amount `json:"overview_writing_cost"`
	AdvancePayment1Percent utils.Amount `json:"advance_payment_1_percent"`
	AdvancePayment2Percent utils.Amount `json:"advance_payment_2_percent"`
	AdvanceIncludeOverview bool         `json:"advance_payment_include_overview"`
}

func (d ContractFinanceDTO) inputs() finance.Inputs {
	return finance.Inputs{
		BasePageCount:          d.BasePageCount.Decimal,
		TranslationUnitPrice:   d.TranslationUnitPrice.Decimal,
		OverviewWritingCost:    d.OverviewWritingCost.Decimal,
		AdvancePayment1Percent: d.AdvancePayment1Percent.Decimal,
		AdvancePayment2Percent: d.AdvancePayment2Percent.Decimal,
		AdvanceIncludeOverview: d.AdvanceIncludeOverview,
	}
}

type ContractCreateDTO struct {
	ContractNumber string `json:"contract_number" validate:"required,min=1"`
	WorkId         string `json:"work_id" validate:"required,uuid4"`
	TranslatorId   string `json:"translator_id" validate:"required,uuid4"`
	StartDate      string `json:"start_date" validate:"omitempty"`
	EndDate        string `json:"end_date" validate:"omitempty"`
	Status         string `json:"status" validate:"omitempty,oneof=draft pending signed active completed cancelled"`

	ContractFinanceDTO

	Overrides map[string]string `json:"overrides" validate:"omitempty"`
}

type ContractUpdateDTO struct {
	ContractNumber *string `json:"contract_number" validate:"omitempty,min=1"`
	WorkId         *string `json:"work_id" validate:"omitempty,uuid4"`
	TranslatorId   *string `json:"translator_id" validate:"omitempty,uuid4"`
	StartDate      *string `json:"start_date" validate:"omitempty"`
	EndDate        *string `json:"end_date" validate:"omitempty"`
	Status         *string `json:"status" validate:"omitempty,oneof=draft pending signed active completed cancelled"`

	BasePageCount          *utils.Amount `json:"base_page_count" validate:"omitempty"`
	TranslationUnitPrice   *utils.Amount `json:"translation_unit_price" validate:"omitempty"`
	OverviewWritingCost    *utils.Amount `json:"overview_writing_cost" validate:"omitempty"`
	AdvancePayment1Percent *utils.Amount `json:"advance_payment_1_percent" validate:"omitempty"`
	AdvancePayment2Percent *utils.Amount `json:"advance_payment_2_percent" validate:"omitempty"`
	AdvanceIncludeOverview *bool         `json:"advance_payment_include_overview" validate:"omitempty"`

	Overrides map[string]string `json:"overrides" validate:"omitempty"`
}

var (
	pdfConverterOnce sync.Once
	pdfConverter     render.PDFConverter
)

func getPDFConverter() render.PDFConverter {
	pdfConverterOnce.Do(func() {
		pdfConverter = render.NewPDFConverter()
	})
	return pdfConverter
}

// applyFinancials writes the full derived breakdown plus the jsonb snapshot
// onto the contract. Derived columns are never taken from the client.
func applyFinancials(contract *models.Contract, f finance.Financials) error {
	contract.BasePageCount = int(f.BasePageCount)
	contract.TranslationUnitPrice = f.TranslationUnitPrice
	contract.TranslationCost = f.TranslationCost
	contract.OverviewWritingCost = f.OverviewWritingCost
	contract.TotalAmount = f.TotalAmount
	contract.ManagementFee = f.ManagementFee
	contract.TaxAmount = f.TaxAmount
	contract.AdvancePayment1Percent = f.AdvancePayment1Percent
	contract.AdvancePayment1 = f.AdvancePayment1
	contract.AdvancePayment2Percent = f.AdvancePayment2Percent
	contract.AdvancePayment2 = f.AdvancePayment2
	contract.AdvanceIncludeOverview = f.AdvanceIncludeOverview
	contract.FinalPayment = f.FinalPayment

	snapshot, err := json.Marshal(f)
	if err != nil {
		return err
	}
	contract.Financials = datatypes.JSON(snapshot)
	return nil
}

// contractFinancials restores the snapshot, recomputing from the stored
// columns when a row predates snapshots.
func contractFinancials(contract *models.Contract) finance.Financials {
	if len(contract.Financials) > 0 {
		var f finance.Financials
		if err := json.Unmarshal(contract.Financials, &f); err == nil {
			return f
		}
	}
	return finance.Recompute(storedInputs(contract))
}

func storedInputs(contract *models.Contract) finance.Inputs {
	return finance.Inputs{
		BasePageCount:          decimalFromInt(contract.BasePageCount),
		TranslationUnitPrice:   contract.TranslationUnitPrice,
		OverviewWritingCost:    contract.OverviewWritingCost,
		AdvancePayment1Percent: contract.AdvancePayment1Percent,
		AdvancePayment2Percent: contract.AdvancePayment2Percent,
		AdvanceIncludeOverview: contract.AdvanceIncludeOverview,
	}
}

func contractOverrides(contract *models.Contract) map[string]string {
	if len(contract.Overrides) == 0 {
		return nil
	}
	var ov map[string]string
	if err := json.Unmarshal(contract.Overrides, &ov); err != nil {
		return nil
	}
	return ov
}

// POST /api/contract
func CreateContract(c *fiber.Ctx) error {
	var in ContractCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	// The linked records must exist before the FK insert.
	var work models.Work
	if err := db.First(&work, "id = ?", in.WorkId).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "work not found")
	}
	var translator models.Translator
	if err := db.First(&translator, "id = ?", in.TranslatorId).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "translator not found")
	}

	status := in.Status
	if status == "" {
		status = models.ContractStatusDraft
	}

	contract := models.Contract{
		ContractNumber: in.ContractNumber,
		WorkId:         in.WorkId,
		TranslatorId:   in.TranslatorId,
		StartDate:      parseDatePtr(in.StartDate),
		EndDate:        parseDatePtr(in.EndDate),
		Status:         status,
	}
	if err := applyFinancials(&contract, finance.Recompute(in.inputs())); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot financials")
	}
	if len(in.Overrides) > 0 {
		blob, err := json.Marshal(in.Overrides)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid overrides")
		}
		contract.Overrides = datatypes.JSON(blob)
	}

	if err := db.Create(&contract).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create contract")
	}

	var out models.Contract
	if err := db.Preload("Work").Preload("Translator").First(&out, "id = ?", contract.Id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload contract")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GET /api/contracts
func GetContracts(c *fiber.Ctx) error {
	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	q := db.Model(&models.Contract{}).
		Preload("Work").
		Preload("Translator").
		Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}
	if workID := strings.TrimSpace(c.Query("work_id")); workID != "" {
		q = q.Where("work_id = ?", workID)
	}
	if translatorID := strings.TrimSpace(c.Query("translator_id")); translatorID != "" {
		q = q.Where("translator_id = ?", translatorID)
	}

	var contracts []models.Contract
	if err := q.Find(&contracts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not list contracts")
	}
	return c.JSON(fiber.Map{"contracts": contracts, "message": "success"})
}

// GET /api/contract/:id
func GetContract(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing contract id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var contract models.Contract
	if err := db.Preload("Work").Preload("Translator").First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(contract)
}

// PUT /api/contract/:id
// Any change to a raw input reruns the whole cascade; derived columns are
// replaced wholesale, never patched individually.
func UpdateContract(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing contract id in path")
	}

	var in ContractUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.Contract
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.WorkId != nil {
		var work models.Work
		if err := db.First(&work, "id = ?", *in.WorkId).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "work not found")
		}
		existing.WorkId = *in.WorkId
	}
	if in.TranslatorId != nil {
		var translator models.Translator
		if err := db.First(&translator, "id = ?", *in.TranslatorId).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "translator not found")
		}
		existing.TranslatorId = *in.TranslatorId
	}
	if in.ContractNumber != nil {
		existing.ContractNumber = *in.ContractNumber
	}
	if in.StartDate != nil {
		existing.StartDate = parseDatePtr(*in.StartDate)
	}
	if in.EndDate != nil {
		existing.EndDate = parseDatePtr(*in.EndDate)
	}
	if in.Status != nil {
		existing.Status = *in.Status
	}
	if in.Overrides != nil {
		blob, err := json.Marshal(in.Overrides)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid overrides")
		}
		existing.Overrides = datatypes.JSON(blob)
	}

	inputs := storedInputs(&existing)
	if in.BasePageCount != nil {
		inputs.BasePageCount = in.BasePageCount.Decimal
	}
	if in.TranslationUnitPrice != nil {
		inputs.TranslationUnitPrice = in.TranslationUnitPrice.Decimal
	}
	if in.OverviewWritingCost != nil {
		inputs.OverviewWritingCost = in.OverviewWritingCost.Decimal
	}
	if in.AdvancePayment1Percent != nil {
		inputs.AdvancePayment1Percent = in.AdvancePayment1Percent.Decimal
	}
	if in.AdvancePayment2Percent != nil {
		inputs.AdvancePayment2Percent = in.AdvancePayment2Percent.Decimal
	}
	if in.AdvanceIncludeOverview != nil {
		inputs.AdvanceIncludeOverview = *in.AdvanceIncludeOverview
	}
	if err := applyFinancials(&existing, finance.Recompute(inputs)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot financials")
	}

	if err := db.Save(&existing).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update contract")
	}

	var out models.Contract
	if err := db.Preload("Work").Preload("Translator").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload contract")
	}
	return c.JSON(out)
}

// DELETE /api/contract/:id
func DeleteContract(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing contract id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var existing models.Contract
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if err := db.Delete(&models.Contract{}, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete contract")
	}
	if existing.ContractFile != "" {
		_ = os.Remove(existing.ContractFile)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// POST /api/contract/preview
// Runs the cascade on submitted inputs without persisting anything; the form
// calls this on every change.
func PreviewContract(c *fiber.Ctx) error {
	var in ContractFinanceDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	return c.JSON(finance.Recompute(in.inputs()))
}

// GET /api/contract/:id/estimate
// Recovers editable inputs for a contract. Rows with a snapshot return exact
// inputs; legacy rows fall back to reverse estimation from the totals.
func EstimateContract(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing contract id in path")
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var contract models.Contract
	if err := db.Preload("Work").First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if len(contract.Financials) > 0 {
		var f finance.Financials
		if err := json.Unmarshal(contract.Financials, &f); err == nil {
			return c.JSON(finance.Estimate{
				Inputs: finance.Inputs{
					BasePageCount:          decimalFromInt(int(f.BasePageCount)),
					TranslationUnitPrice:   f.TranslationUnitPrice,
					OverviewWritingCost:    f.OverviewWritingCost,
					AdvancePayment1Percent: f.AdvancePayment1Percent,
					AdvancePayment2Percent: f.AdvancePayment2Percent,
					AdvanceIncludeOverview: f.AdvanceIncludeOverview,
				},
				TranslationCost: f.TranslationCost,
				OverviewCost:    f.OverviewWritingCost,
				Estimated:       false,
			})
		}
	}

	pageCount := int64(contract.BasePageCount)
	if pageCount == 0 && contract.Work != nil {
		pageCount = int64(contract.Work.PageCount)
	}
	return c.JSON(finance.ReverseEstimate(finance.StoredTotals{
		TotalAmount:            contract.TotalAmount,
		AdvancePayment1:        contract.AdvancePayment1,
		AdvancePayment2:        contract.AdvancePayment2,
		FinalPayment:           contract.FinalPayment,
		AdvanceIncludeOverview: contract.AdvanceIncludeOverview,
		BasePageCount:          pageCount,
	}))
}

type DocumentRequestDTO struct {
	TemplateId string `json:"template_id" validate:"omitempty,uuid4"`
	Format     string `json:"format" validate:"required,oneof=html docx pdf"`
	Attach     bool   `json:"attach" validate:"omitempty"`
}

// POST /api/contract/:id/document
// Resolves the merge bundle, renders the requested format and streams it.
// Rendering failures surface as errors without touching the contract row;
// with attach=true the artifact is also stored and linked on the contract.
func GenerateContractDocument(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing contract id in path")
	}

	var in DocumentRequestDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetRequestDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db unavailable")
	}

	var contract models.Contract
	if err := db.Preload("Work").Preload("Translator").First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "contract not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	var tpl *models.ContractTemplate
	if in.TemplateId != "" {
		var t models.ContractTemplate
		if err := db.First(&t, "id = ?", in.TemplateId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "template not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "db error")
		}
		tpl = &t
	}

	data := merge.Data{
		ContractNumber: contract.ContractNumber,
		StartDate:      contract.StartDate,
		EndDate:        contract.EndDate,
		Financials:     contractFinancials(&contract),
		Work:           contract.Work,
		Translator:     contract.Translator,
		Overrides:      contractOverrides(&contract),
	}

	var artifact []byte
	var contentType string
	switch in.Format {
	case "html":
		if tpl == nil || tpl.Type != models.TemplateTypeRichText {
			return fiber.NewError(fiber.StatusBadRequest, "html output requires a rich_text template")
		}
		merged := merge.Merge(tpl.Content, data)
		artifact = []byte(render.WrapHTML(merged, "Hợp đồng "+contract.ContractNumber))
		contentType = fiber.MIMETextHTMLCharsetUTF8
	case "docx":
		artifact, err = buildDocx(tpl, data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "document generation failed: "+err.Error())
		}
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "pdf":
		docx, err := buildDocx(tpl, data)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "document generation failed: "+err.Error())
		}
		artifact, err = getPDFConverter().Convert(c.UserContext(), docx)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "pdf conversion failed: "+err.Error())
		}
		contentType = "application/pdf"
	}

	fileName := render.ContractFileName(contract.ContractNumber, in.Format)

	if in.Attach {
		dir := uploadsDir()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not prepare uploads directory")
		}
		stored := filepath.Join(dir, uuid.NewString()+"."+in.Format)
		if err := os.WriteFile(stored, artifact, 0o644); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not store generated document")
		}
		if err := db.Model(&models.Contract{}).Where("id = ?", id).
			Update("contract_file", stored).Error; err != nil {
			_ = os.Remove(stored)
			return fiber.NewError(fiber.StatusInternalServerError, "could not attach document to contract")
		}
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(artifact)
}

// buildDocx produces the .docx bytes: merged into the uploaded template when
// one is given, otherwise structurally built from the contract data.
func buildDocx(tpl *models.ContractTemplate, data merge.Data) ([]byte, error) {
	if tpl != nil && tpl.Type == models.TemplateTypeWordFile {
		raw, ok := render.CachedTemplate(tpl.Id)
		if !ok {
			b, err := os.ReadFile(tpl.FilePath)
			if err != nil {
				return nil, err
			}
			render.CacheTemplate(tpl.Id, b)
			raw = b
		}
		return render.MergeWordTemplate(raw, merge.Values(data))
	}
	return render.PackDOCX(render.BuildContractDocument(data))
}
