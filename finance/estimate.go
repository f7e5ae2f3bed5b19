package finance

import (
	"github.com/shopspring/decimal"
)

// Reverse estimation reconstructs a plausible input breakdown for contracts
// persisted before the full cascade was stored, when only the totals survive.
// The ratios below are rough conventions, not business rules: advances tend to
// sit around half the translation cost, and the overview essay around 15% of
// the total. Every estimated field is expected to be overridden by the editor.
var (
	estAdvanceShare  = decimal.NewFromFloat(0.5)
	estOverviewShare = decimal.NewFromFloat(0.15)
)

// StoredTotals are the fields a legacy contract row actually persists.
type StoredTotals struct {
	TotalAmount            decimal.Decimal
	AdvancePayment1        decimal.Decimal
	AdvancePayment2        decimal.Decimal
	FinalPayment           decimal.Decimal
	AdvanceIncludeOverview bool
	// BasePageCount comes from the linked work when available.
	BasePageCount int64
}

// Estimate is a reconstructed Inputs set plus the intermediate costs it
// implies. Estimated is always true: nothing here is derived truth.
type Estimate struct {
	Inputs          Inputs          `json:"inputs"`
	TranslationCost decimal.Decimal `json:"translation_cost"`
	OverviewCost    decimal.Decimal `json:"overview_writing_cost"`
	Estimated       bool            `json:"estimated"`
}

// ReverseEstimate inverts the cascade heuristically from stored totals.
func ReverseEstimate(st StoredTotals) Estimate {
	total := clampAmount(st.TotalAmount)
	advance1 := clampAmount(st.AdvancePayment1)
	advance2 := clampAmount(st.AdvancePayment2)
	advanceSum := advance1.Add(advance2)

	translationCost := total
	overviewCost := decimal.Zero

	switch {
	case !st.AdvanceIncludeOverview && advanceSum.IsPositive():
		// Advances were computed on translation cost alone; assume they
		// covered about half of it.
		translationCost = advanceSum.Div(estAdvanceShare)
		overviewCost = decimal.Max(decimal.Zero, total.Sub(translationCost))
	case st.AdvanceIncludeOverview && advanceSum.IsPositive():
		// Advances were computed on the total; peel off a conventional
		// overview share.
		overviewCost = total.Mul(estOverviewShare)
		translationCost = total.Sub(overviewCost)
	}

	unitPrice := decimal.Zero
	if st.BasePageCount > 0 {
		unitPrice = translationCost.Div(decimal.NewFromInt(st.BasePageCount))
	}

	advanceBase := translationCost
	if st.AdvanceIncludeOverview {
		advanceBase = total
	}
	pct1, pct2 := decimal.Zero, decimal.Zero
	if advanceBase.IsPositive() {
		pct1 = advance1.Div(advanceBase).Mul(oneHundred)
		pct2 = advance2.Div(advanceBase).Mul(oneHundred)
	}

	return Estimate{
		Inputs: Inputs{
			BasePageCount:          decimal.NewFromInt(st.BasePageCount),
			TranslationUnitPrice:   unitPrice,
			OverviewWritingCost:    overviewCost,
			AdvancePayment1Percent: pct1,
			AdvancePayment2Percent: pct2,
			AdvanceIncludeOverview: st.AdvanceIncludeOverview,
		},
		TranslationCost: translationCost,
		OverviewCost:    overviewCost,
		Estimated:       true,
	}
}
