package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"orient-classics-backend/finance"
	"orient-classics-backend/merge"
	"orient-classics-backend/models"
)

func docText(doc *Document) string {
	var sb strings.Builder
	var collect func(p Paragraph)
	collect = func(p Paragraph) {
		for _, r := range p.Runs {
			sb.WriteString(r.Text)
		}
		sb.WriteString("\n")
	}
	for _, b := range doc.Blocks {
		if b.Paragraph != nil {
			collect(*b.Paragraph)
		}
		if b.Table != nil {
			for _, row := range b.Table.Rows {
				for _, cell := range row {
					for _, p := range cell.Paragraphs {
						collect(p)
					}
				}
			}
		}
	}
	return sb.String()
}

func contractData() merge.Data {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

	f := finance.Recompute(finance.Inputs{
		BasePageCount:          decimal.NewFromInt(100),
		TranslationUnitPrice:   decimal.NewFromInt(300000),
		OverviewWritingCost:    decimal.NewFromInt(5000000),
		AdvancePayment1Percent: decimal.NewFromInt(30),
		AdvancePayment2Percent: decimal.NewFromInt(30),
	})

	return merge.Data{
		ContractNumber: "12/HĐ-VPKĐ",
		StartDate:      &start,
		EndDate:        &end,
		Financials:     f,
		Work: &models.Work{
			Name:           "Đại Tạng Kinh",
			SourceLanguage: "Hán văn",
			TargetLanguage: "Tiếng Việt",
		},
		Translator: &models.Translator{
			FullName:          "Nguyễn Văn An",
			IdCardNumber:      "012345678901",
			Address:           "Cầu Giấy, Hà Nội",
			Phone:             "0912345678",
			Email:             "an@example.com",
			BankAccountNumber: "2601183714",
			BankName:          "BIDV",
			TaxCode:           "8000000000",
		},
	}
}

func TestBuildContractDocumentFullData(t *testing.T) {
	doc := BuildContractDocument(contractData())
	got := docText(doc)

	for _, want := range []string{
		"HỢP ĐỒNG DỊCH THUẬT",
		"Số: 12/HĐ-VPKĐ",
		"Nguyễn Văn An",
		"Đại Tạng Kinh",
		"từ Hán văn sang Tiếng Việt",
		"100 trang (350 chữ/1 trang)",
		"6 tháng kể từ ngày 1 tháng 3 năm 2024",
		"hết ngày 1 tháng 9 năm 2024",
		"35.000.000 đồng",
		"ba mươi lăm triệu đồng chẵn",
		"+ Đợt 1: ",
		"+ Đợt 2: ",
		"+ Đợt 3: ",
		`Kinh phí viết "Bài khảo sát tổng quan"`,
		"Điều 6: Điều khoản thi hành",
		"BÊN A",
		"BÊN B",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("contract text missing %q", want)
		}
	}
	if strings.Contains(got, "[Tên dịch giả]") {
		t.Error("bracketed fallback used despite full data")
	}
}

func TestBuildContractDocumentFallbacks(t *testing.T) {
	d := contractData()
	d.Work = nil
	d.Translator = nil
	d.ContractNumber = ""

	got := docText(BuildContractDocument(d))

	for _, want := range []string{
		"[Tên dịch giả]",
		"[Tên tác phẩm]",
		"[Số CMND/CCCD]",
		"[Địa chỉ]",
		"[Số điện thoại]",
		"[Email]",
		"[Số tài khoản]",
		"[Tên ngân hàng]",
		"[Mã số thuế TNCN]",
		"từ [Ngôn ngữ nguồn] sang [Ngôn ngữ đích]",
		"Số: /HĐ-VPKĐ",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback %q missing", want)
		}
	}
}

func TestBuildContractDocumentSkipsEmptyConditionals(t *testing.T) {
	d := contractData()
	d.Financials = finance.Recompute(finance.Inputs{
		BasePageCount:        decimal.NewFromInt(100),
		TranslationUnitPrice: decimal.NewFromInt(300000),
	})

	got := docText(BuildContractDocument(d))

	if strings.Contains(got, "+ Đợt 1: ") || strings.Contains(got, "+ Đợt 2: ") {
		t.Error("advance clauses present with zero advance percents")
	}
	if strings.Contains(got, `Kinh phí viết "Bài khảo sát tổng quan"`) {
		t.Error("overview clause present with zero overview cost")
	}
	if !strings.Contains(got, "+ Đợt 3: ") {
		t.Error("final installment clause must always be present")
	}
}

func TestBuildContractDocumentUsesOverrides(t *testing.T) {
	d := contractData()
	d.Overrides = map[string]string{"translator_phone": "0999999999"}

	got := docText(BuildContractDocument(d))
	if !strings.Contains(got, "0999999999") {
		t.Error("phone override not applied")
	}
	if strings.Contains(got, "0912345678") {
		t.Error("stored phone leaked past the override")
	}
}

func TestContractFileName(t *testing.T) {
	cases := []struct {
		number, ext, want string
	}{
		{"12/HĐ-VPKĐ", "docx", "Hop-dong-12-HĐ-VPKĐ.docx"},
		{"", "pdf", "Hop-dong-dich-thuat.pdf"},
		{`a\b:c*?"<>|`, "html", "Hop-dong-a-b-c.html"},
	}
	for _, tc := range cases {
		if got := ContractFileName(tc.number, tc.ext); got != tc.want {
			t.Errorf("ContractFileName(%q, %q) = %q, want %q", tc.number, tc.ext, got, tc.want)
		}
	}
}

func TestContractMonths(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	if got := contractMonths(&start, &end); got != 6 {
		t.Errorf("contractMonths = %d, want 6", got)
	}
	if got := contractMonths(&start, &start); got != 0 {
		t.Errorf("contractMonths same day = %d, want 0", got)
	}
	if got := contractMonths(&start, nil); got != 0 {
		t.Errorf("contractMonths nil end = %d, want 0", got)
	}
}
