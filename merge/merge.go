// Package merge substitutes contract data into placeholder-bearing templates.
// Templates carry {{key}} tokens from a fixed catalog; each key resolves to a
// formatted value from the contract financials, the linked work or the linked
// translator, with per-contract overrides shadowing the linked records.
package merge

import (
	"regexp"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"orient-classics-backend/finance"
	"orient-classics-backend/models"
	"orient-classics-backend/utils"
)

// Data is the resolved bundle a template is merged against. Work and
// Translator may be nil (the contract may predate its links); resolved fields
// then fall back to the override value or the empty string, never an error.
type Data struct {
	ContractNumber string
	StartDate      *time.Time
	EndDate        *time.Time
	Financials     finance.Financials
	Work           *models.Work
	Translator     *models.Translator

	// Overrides are keyed by placeholder name and win over the linked
	// entity's stored value.
	Overrides map[string]string

	// Now anchors the contract_date fallback when StartDate is unset.
	// Zero means time.Now().
	Now time.Time
}

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Merge performs a single pass over the template, replacing every catalog
// token with its resolved value. Tokens outside the catalog are left
// untouched, so merging an already-merged document is a no-op.
func Merge(template string, d Data) string {
	if template == "" {
		return ""
	}
	values := Values(d)
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := m[2 : len(m)-2]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
}

// Values resolves the full placeholder catalog for d. The map's key set is
// the catalog; templates are free to use any subset.
func Values(d Data) map[string]string {
	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}
	contractDate := utils.FormatVietnameseDate(now)
	if d.StartDate != nil {
		contractDate = utils.FormatVietnameseDate(*d.StartDate)
	}

	// Precedence: override > linked record > "".
	ov := func(key, fromEntity string) string {
		if v, ok := d.Overrides[key]; ok && v != "" {
			return v
		}
		return fromEntity
	}

	var (
		workName string

		trName, trIdCard, trIssuePlace, trWorkplace string
		trIssueDate                                 string
		trAddress, trPhone, trEmail                 string
		trBeneficiary, trBankAccount                string
		trBankName, trBankBranch, trTaxCode         string
	)
	if d.Work != nil {
		workName = d.Work.Name
	}
	if t := d.Translator; t != nil {
		trName = t.FullName
		trIdCard = t.IdCardNumber
		if t.IdCardIssueDate != nil {
			trIssueDate = utils.FormatVietnameseDate(*t.IdCardIssueDate)
		}
		trIssuePlace = t.IdCardIssuePlace
		trWorkplace = t.Workplace
		trAddress = t.Address
		trPhone = t.Phone
		trEmail = t.Email
		trBeneficiary = t.Beneficiary
		if trBeneficiary == "" {
			trBeneficiary = t.FullName
		}
		trBankAccount = t.BankAccountNumber
		trBankName = t.BankName
		trBankBranch = t.BankBranch
		trTaxCode = t.TaxCode
	}

	f := d.Financials
	return map[string]string{
		"contract_number": d.ContractNumber,
		"contract_date":   contractDate,

		"work_name": ov("work_name", workName),

		"translator_name":                    ov("translator_name", trName),
		"translator_id_card":                 ov("translator_id_card", trIdCard),
		"translator_id_card_issue_date":      ov("translator_id_card_issue_date", trIssueDate),
		"translator_id_card_issue_place":     ov("translator_id_card_issue_place", trIssuePlace),
		"translator_workplace":               ov("translator_workplace", trWorkplace),
		"translator_address":                 ov("translator_address", trAddress),
		"translator_phone":                   ov("translator_phone", trPhone),
		"translator_email":                   ov("translator_email", trEmail),
		"translator_beneficiary":             ov("translator_beneficiary", trBeneficiary),
		"translator_bank_account":            ov("translator_bank_account", trBankAccount),
		"translator_bank_name":               ov("translator_bank_name", trBankName),
		"translator_bank_branch":             ov("translator_bank_branch", trBankBranch),
		"translator_tax_code":                ov("translator_tax_code", trTaxCode),

		"start_date": formatDatePtr(d.StartDate),
		"end_date":   formatDatePtr(d.EndDate),

		"base_page_count":           utils.FormatVietnameseNumber(decimal.NewFromInt(f.BasePageCount)),
		"translation_unit_price":    utils.FormatCurrency(f.TranslationUnitPrice),
		"translation_cost":          utils.FormatCurrency(f.TranslationCost),
		"overview_writing_cost":     utils.FormatCurrency(f.OverviewWritingCost),
		"total_amount":              utils.FormatCurrency(f.TotalAmount),
		"advance_payment_1_percent": f.AdvancePayment1Percent.String(),
		"advance_payment_1":         utils.FormatCurrency(f.AdvancePayment1),
		"advance_payment_2_percent": f.AdvancePayment2Percent.String(),
		"advance_payment_2":         utils.FormatCurrency(f.AdvancePayment2),
		"final_payment":             utils.FormatCurrency(f.FinalPayment),

		"translation_cost_words":      utils.AmountInWords(f.TranslationCost),
		"overview_writing_cost_words": utils.AmountInWords(f.OverviewWritingCost),
		"total_amount_words":          utils.AmountInWords(f.TotalAmount),
		"advance_payment_1_words":     utils.AmountInWords(f.AdvancePayment1),
		"advance_payment_2_words":     utils.AmountInWords(f.AdvancePayment2),
		"final_payment_words":         utils.AmountInWords(f.FinalPayment),
	}
}

// Catalog returns the closed placeholder key set. Extending it is a versioned
// change to the template contract.
func Catalog() []string {
	values := Values(Data{})
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return utils.FormatVietnameseDate(*t)
}
