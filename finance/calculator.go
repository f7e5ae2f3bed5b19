// Package finance implements the contract financial cascade: every derived
// monetary field of a translation contract computed from a small set of raw
// inputs, in one deterministic pass.
package finance

import (
	"github.com/shopspring/decimal"
)

// Fixed contract rates.
var (
	// ManagementFeeRate is deducted from the total contract value.
	ManagementFeeRate = decimal.NewFromFloat(0.05)
	// PersonalIncomeTaxRate applies to the total minus the management fee.
	PersonalIncomeTaxRate = decimal.NewFromFloat(0.10)

	oneHundred = decimal.NewFromInt(100)
)

// Inputs are the user-entered fields the cascade derives everything from.
// Callers that receive formatted strings should run them through
// utils.ParseVietnameseNumber first; Recompute itself only clamps.
type Inputs struct {
	BasePageCount          decimal.Decimal `json:"base_page_count"`
	TranslationUnitPrice   decimal.Decimal `json:"translation_unit_price"`
	OverviewWritingCost    decimal.Decimal `json:"overview_writing_cost"`
	AdvancePayment1Percent decimal.Decimal `json:"advance_payment_1_percent"`
	AdvancePayment2Percent decimal.Decimal `json:"advance_payment_2_percent"`
	// AdvanceIncludeOverview switches the advance base from translation cost
	// alone to translation cost + overview cost. One flag for both advances.
	AdvanceIncludeOverview bool `json:"advance_payment_include_overview"`
}

// Financials is the fully derived contract record. Derived fields are never
// edited directly; they are recomputed from the inputs on every change.
type Financials struct {
	BasePageCount          int64           `json:"base_page_count"`
	TranslationUnitPrice   decimal.Decimal `json:"translation_unit_price"`
	TranslationCost        decimal.Decimal `json:"translation_cost"`
	OverviewWritingCost    decimal.Decimal `json:"overview_writing_cost"`
	TotalAmount            decimal.Decimal `json:"total_amount"`
	ManagementFee          decimal.Decimal `json:"management_fee"`
	TaxAmount              decimal.Decimal `json:"tax_amount"`
	AdvancePayment1Percent decimal.Decimal `json:"advance_payment_1_percent"`
	AdvancePayment1        decimal.Decimal `json:"advance_payment_1"`
	AdvancePayment2Percent decimal.Decimal `json:"advance_payment_2_percent"`
	AdvancePayment2        decimal.Decimal `json:"advance_payment_2"`
	AdvanceIncludeOverview bool            `json:"advance_payment_include_overview"`
	FinalPayment           decimal.Decimal `json:"final_payment"`
}

// clampAmount coerces an invalid monetary input to zero.
func clampAmount(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Recompute runs the full cascade. It is pure, never fails, and always runs
// every stage: invalid inputs degrade to zero instead of erroring, so the
// result is safe to render on every keystroke.
//
// Stage order (each stage reads only earlier stages):
//  1. translation_cost = round(floor(base_page_count) × unit_price)
//  2. total_amount     = translation_cost + overview_writing_cost
//  3. management_fee   = total_amount × 5%
//  4. tax_amount       = (total_amount − management_fee) × 10%
//  5. advance_base     = include_overview ? total_amount : translation_cost
//  6. advance_1        = advance_base × percent_1 / 100
//  7. advance_2        = advance_base × percent_2 / 100
//  8. final_payment    = total_amount − advance_1 − advance_2
func Recompute(in Inputs) Financials {
	pages := clampAmount(in.BasePageCount).Floor().IntPart()
	unitPrice := clampAmount(in.TranslationUnitPrice)
	overviewCost := clampAmount(in.OverviewWritingCost)
	pct1 := clampAmount(in.AdvancePayment1Percent)
	pct2 := clampAmount(in.AdvancePayment2Percent)

	translationCost := decimal.NewFromInt(pages).Mul(unitPrice).Round(0)
	totalAmount := translationCost.Add(overviewCost)
	managementFee := totalAmount.Mul(ManagementFeeRate)
	taxAmount := totalAmount.Sub(managementFee).Mul(PersonalIncomeTaxRate)

	advanceBase := translationCost
	if in.AdvanceIncludeOverview {
		advanceBase = totalAmount
	}
	advance1 := advanceBase.Mul(pct1).Div(oneHundred)
	advance2 := advanceBase.Mul(pct2).Div(oneHundred)
	finalPayment := totalAmount.Sub(advance1).Sub(advance2)

	return Financials{
		BasePageCount:          pages,
		TranslationUnitPrice:   unitPrice,
		TranslationCost:        translationCost,
		OverviewWritingCost:    overviewCost,
		TotalAmount:            totalAmount,
		ManagementFee:          managementFee,
		TaxAmount:              taxAmount,
		AdvancePayment1Percent: pct1,
		AdvancePayment1:        advance1,
		AdvancePayment2Percent: pct2,
		AdvancePayment2:        advance2,
		AdvanceIncludeOverview: in.AdvanceIncludeOverview,
		FinalPayment:           finalPayment,
	}
}
