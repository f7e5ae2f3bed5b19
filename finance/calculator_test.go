package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"orient-classics-backend/utils"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestRecomputeSimpleContract(t *testing.T) {
	// 100 pages × 300.000đ, no overview, 30%+30% advances on translation cost.
	f := Recompute(Inputs{
		BasePageCount:          d("100"),
		TranslationUnitPrice:   d("300000"),
		AdvancePayment1Percent: d("30"),
		AdvancePayment2Percent: d("30"),
	})

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"translation_cost", f.TranslationCost, "30000000"},
		{"total_amount", f.TotalAmount, "30000000"},
		{"management_fee", f.ManagementFee, "1500000"},
		{"tax_amount", f.TaxAmount, "2850000"},
		{"advance_payment_1", f.AdvancePayment1, "9000000"},
		{"advance_payment_2", f.AdvancePayment2, "9000000"},
		{"final_payment", f.FinalPayment, "12000000"},
	}
	for _, c := range checks {
		if !c.got.Equal(d(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestRecomputeWithOverviewIncludedInAdvanceBase(t *testing.T) {
	f := Recompute(Inputs{
		BasePageCount:          d("100"),
		TranslationUnitPrice:   d("300000"),
		OverviewWritingCost:    d("5000000"),
		AdvancePayment1Percent: d("30"),
		AdvancePayment2Percent: d("30"),
		AdvanceIncludeOverview: true,
	})

	if !f.TotalAmount.Equal(d("35000000")) {
		t.Errorf("total_amount = %s, want 35000000", f.TotalAmount)
	}
	if !f.AdvancePayment1.Equal(d("10500000")) {
		t.Errorf("advance_payment_1 = %s, want 10500000", f.AdvancePayment1)
	}
	if !f.AdvancePayment2.Equal(d("10500000")) {
		t.Errorf("advance_payment_2 = %s, want 10500000", f.AdvancePayment2)
	}
	if !f.FinalPayment.Equal(d("14000000")) {
		t.Errorf("final_payment = %s, want 14000000", f.FinalPayment)
	}
}

func TestRecomputeInvariants(t *testing.T) {
	cases := []Inputs{
		{},
		{BasePageCount: d("100"), TranslationUnitPrice: d("300000")},
		{BasePageCount: d("37.9"), TranslationUnitPrice: d("123456.78"), OverviewWritingCost: d("1000000")},
		{BasePageCount: d("1"), TranslationUnitPrice: d("1"), AdvancePayment1Percent: d("12.5"), AdvancePayment2Percent: d("37.5")},
		{BasePageCount: d("-5"), TranslationUnitPrice: d("-100"), OverviewWritingCost: d("-1")},
		{BasePageCount: d("250"), TranslationUnitPrice: d("275000"), OverviewWritingCost: d("7000000"), AdvancePayment1Percent: d("40"), AdvancePayment2Percent: d("25"), AdvanceIncludeOverview: true},
	}
	for i, in := range cases {
		f := Recompute(in)

		if !f.TotalAmount.Equal(f.TranslationCost.Add(f.OverviewWritingCost)) {
			t.Errorf("case %d: total != translation + overview", i)
		}
		if !f.FinalPayment.Equal(f.TotalAmount.Sub(f.AdvancePayment1).Sub(f.AdvancePayment2)) {
			t.Errorf("case %d: final != total - advances", i)
		}
		if !f.ManagementFee.Equal(f.TotalAmount.Mul(ManagementFeeRate)) {
			t.Errorf("case %d: management fee not 5%% of total", i)
		}
		if !f.TaxAmount.Equal(f.TotalAmount.Sub(f.ManagementFee).Mul(PersonalIncomeTaxRate)) {
			t.Errorf("case %d: tax not 10%% of (total - fee)", i)
		}
		if f.TranslationCost.IsNegative() || f.TotalAmount.IsNegative() {
			t.Errorf("case %d: negative derived amount", i)
		}
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	in := Inputs{
		BasePageCount:          d("100"),
		TranslationUnitPrice:   d("300000"),
		OverviewWritingCost:    d("5000000"),
		AdvancePayment1Percent: d("30"),
		AdvancePayment2Percent: d("20"),
		AdvanceIncludeOverview: true,
	}
	a, b := Recompute(in), Recompute(in)
	if !a.FinalPayment.Equal(b.FinalPayment) || !a.TaxAmount.Equal(b.TaxAmount) {
		t.Fatal("repeated recompute diverged")
	}
}

func TestRecomputeCoercion(t *testing.T) {
	// Page count arrives as an unparseable string, price as a formatted one.
	pages := utils.ParseVietnameseNumber("abc")
	price := utils.ParseVietnameseNumber("300.000")

	if !price.Equal(d("300000")) {
		t.Fatalf("price parsed to %s, want 300000", price)
	}

	f := Recompute(Inputs{BasePageCount: pages, TranslationUnitPrice: price})
	if !f.TranslationCost.IsZero() {
		t.Fatalf("translation_cost = %s, want 0", f.TranslationCost)
	}
}

func TestRecomputeFloorsPageCount(t *testing.T) {
	f := Recompute(Inputs{BasePageCount: d("100.9"), TranslationUnitPrice: d("300000")})
	if f.BasePageCount != 100 {
		t.Fatalf("base_page_count = %d, want 100", f.BasePageCount)
	}
	if !f.TranslationCost.Equal(d("30000000")) {
		t.Fatalf("translation_cost = %s, want 30000000", f.TranslationCost)
	}
}

func TestReverseEstimateExcludedOverview(t *testing.T) {
	// Advances on translation cost alone: assume they were ~50% of it.
	est := ReverseEstimate(StoredTotals{
		TotalAmount:     d("35000000"),
		AdvancePayment1: d("9000000"),
		AdvancePayment2: d("9000000"),
		BasePageCount:   100,
	})

	if !est.Estimated {
		t.Fatal("estimate not flagged")
	}
	if !est.TranslationCost.Equal(d("36000000")) {
		t.Errorf("translation_cost = %s, want 36000000", est.TranslationCost)
	}
	// Overview never goes negative even when the heuristic overshoots.
	if est.OverviewCost.IsNegative() {
		t.Errorf("overview cost negative: %s", est.OverviewCost)
	}
	if !est.Inputs.TranslationUnitPrice.Equal(d("360000")) {
		t.Errorf("unit price = %s, want 360000", est.Inputs.TranslationUnitPrice)
	}
	if !est.Inputs.AdvancePayment1Percent.Equal(d("25")) {
		t.Errorf("advance 1 percent = %s, want 25", est.Inputs.AdvancePayment1Percent)
	}
}

func TestReverseEstimateIncludedOverview(t *testing.T) {
	est := ReverseEstimate(StoredTotals{
		TotalAmount:            d("35000000"),
		AdvancePayment1:        d("10500000"),
		AdvancePayment2:        d("10500000"),
		AdvanceIncludeOverview: true,
		BasePageCount:          100,
	})

	if !est.OverviewCost.Equal(d("5250000")) {
		t.Errorf("overview cost = %s, want 5250000 (15%% of total)", est.OverviewCost)
	}
	if !est.TranslationCost.Equal(d("29750000")) {
		t.Errorf("translation cost = %s, want 29750000", est.TranslationCost)
	}
	if !est.Inputs.AdvancePayment1Percent.Equal(d("30")) {
		t.Errorf("advance 1 percent = %s, want 30", est.Inputs.AdvancePayment1Percent)
	}
}

func TestReverseEstimateNoAdvances(t *testing.T) {
	est := ReverseEstimate(StoredTotals{TotalAmount: d("20000000")})
	if !est.TranslationCost.Equal(d("20000000")) || !est.OverviewCost.IsZero() {
		t.Fatalf("expected whole total as translation cost, got %s / %s",
			est.TranslationCost, est.OverviewCost)
	}
	if !est.Inputs.TranslationUnitPrice.IsZero() {
		t.Fatalf("unit price without page count should be zero, got %s", est.Inputs.TranslationUnitPrice)
	}
}
