package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Translator holds the personal, banking and tax details that flow into
// contract documents. Kept separate from application users.
type Translator struct {
	Id       string `json:"id" gorm:"primaryKey"`
	FullName string `json:"full_name" gorm:"not null"`

	IdCardNumber     string     `json:"id_card_number" gorm:"uniqueIndex"`
	IdCardIssueDate  *time.Time `json:"id_card_issue_date"`
	IdCardIssuePlace string     `json:"id_card_issue_place"`

	Workplace string `json:"workplace"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`

	Beneficiary       string `json:"beneficiary"` // defaults to FullName when empty
	BankAccountNumber string `json:"bank_account_number"`
	BankName          string `json:"bank_name"`
	BankBranch        string `json:"bank_branch"`
	TaxCode           string `json:"tax_code"`

	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Translator) BeforeCreate(tx *gorm.DB) (err error) {
	if t.Id == "" {
		t.Id = uuid.NewString()
	}
	return
}
