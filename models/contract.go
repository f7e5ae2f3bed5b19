package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contract statuses.
const (
	ContractStatusDraft     = "draft"
	ContractStatusPending   = "pending"
	ContractStatusSigned    = "signed"
	ContractStatusActive    = "active"
	ContractStatusCompleted = "completed"
	ContractStatusCancelled = "cancelled"
)

// Contract is a translation contract with its full financial breakdown.
// Derived columns are always recomputed server-side from the raw inputs
// before persisting; they are never accepted from the client as-is. The
// breakdown is stored so editing an existing contract never has to fall back
// to reverse estimation.
type Contract struct {
	Id             string `json:"id" gorm:"primaryKey"`
	ContractNumber string `json:"contract_number" gorm:"not null;unique"`

	WorkId       string      `json:"work_id" gorm:"index"`
	Work         *Work       `json:"work,omitempty" gorm:"foreignKey:WorkId"`
	TranslatorId string      `json:"translator_id" gorm:"index"`
	Translator   *Translator `json:"translator,omitempty" gorm:"foreignKey:TranslatorId"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Financial cascade, full precision.
	BasePageCount          int             `json:"base_page_count"`
	TranslationUnitPrice   decimal.Decimal `json:"translation_unit_price" gorm:"type:numeric(15,2)"`
	TranslationCost        decimal.Decimal `json:"translation_cost" gorm:"type:numeric(15,2)"`
	OverviewWritingCost    decimal.Decimal `json:"overview_writing_cost" gorm:"type:numeric(15,2)"`
	TotalAmount            decimal.Decimal `json:"total_amount" gorm:"type:numeric(15,2)"`
	ManagementFee          decimal.Decimal `json:"management_fee" gorm:"type:numeric(15,2)"`
	TaxAmount              decimal.Decimal `json:"tax_amount" gorm:"type:numeric(15,2)"`
	AdvancePayment1Percent decimal.Decimal `json:"advance_payment_1_percent" gorm:"type:numeric(7,4)"`
	AdvancePayment1        decimal.Decimal `json:"advance_payment_1" gorm:"type:numeric(15,2)"`
	AdvancePayment2Percent decimal.Decimal `json:"advance_payment_2_percent" gorm:"type:numeric(7,4)"`
	AdvancePayment2        decimal.Decimal `json:"advance_payment_2" gorm:"type:numeric(15,2)"`
	AdvanceIncludeOverview bool            `json:"advance_payment_include_overview"`
	FinalPayment           decimal.Decimal `json:"final_payment" gorm:"type:numeric(15,2)"`

	// Snapshot of the last recompute, as produced by finance.Recompute.
	// Rows created before the breakdown columns existed have none; those are
	// the only ones that ever need reverse estimation.
	Financials datatypes.JSON `json:"financials,omitempty" gorm:"type:jsonb"`

	// Per-contract field overrides for document generation, keyed by
	// placeholder name (e.g. "translator_phone"). An override shadows the
	// linked entity's stored value during merge.
	Overrides datatypes.JSON `json:"overrides,omitempty" gorm:"type:jsonb"`

	Status       string     `json:"status" gorm:"default:draft"`
	ContractFile string     `json:"contract_file"`
	SignedAt     *time.Time `json:"signed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.Id == "" {
		c.Id = uuid.NewString()
	}
	return
}
