package render

import (
	"fmt"
	"math"
	"time"

	"orient-classics-backend/merge"
	"orient-classics-backend/utils"
)

// Project-side (Bên A) constants printed into every contract.
const (
	partyAName       = `Văn phòng Dự án Dịch thuật và phát huy giá trị tinh hoa các tác phẩm kinh điển phương Đông (gọi tắt là "Dự án")`
	partyARep        = "Bà Đào Thị Tâm Khánh"
	partyATitle      = "Chánh Văn phòng"
	partyAAddress    = "Số 144 Xuân Thủy, Cầu Giấy, Hà Nội"
	partyAPhone      = "02462666889"
	partyABankAcct   = "2601183714"
	partyABank       = "Ngân hàng TMCP Đầu Tư và Phát triển Việt Nam (BIDV) CN Mỹ Đình"
	partyATaxCode    = "0107762297 - 001"
	partyASignerName = "Đào Thị Tâm Khánh"
)

var legalBases = []string{
	"- Căn cứ Luật Dân sự của nước Cộng hòa Xã hội Chủ nghĩa Việt Nam;",
	"- Căn cứ Quyết định số 888/QĐ-ĐHQGHN ngày 28/03/2019 của Giám đốc ĐHQGHN về việc phê duyệt dự án KH&CN do Thủ tướng Chính phủ giao;",
	"- Căn cứ Quyết định số 889/QĐ-ĐHQGHN ngày 23/8/2019 của Giám đốc ĐHQGHN về việc thành lập Văn phòng Dự án Dịch thuật và phát huy giá trị tinh hoa các tác phẩm kinh điển phương Đông;",
	`- Căn cứ Quyết định số 3668/QĐ-ĐHQGHN ngày 19/11/2019 về việc ban hành Quy chế tổ chức và hoạt động của Dự án khoa học và công nghệ "Dịch thuật và phát huy giá trị tinh hoa các tác phẩm kinh điển phương Đông";`,
	"- Căn cứ Thông tư 55/2015/TTLT-BTC-BKHCN ngày 22/4/2015 về việc hướng dẫn định mức xây dựng, phân bổ dự toán và quyết toán kinh phí đối với nhiệm vụ khoa học và công nghệ có sử dụng ngân sách nhà nước;",
	`- Căn cứ Quyết định số 16/QĐ-VTNT ngày 16/01/2020 về việc ban hành Quy chế chi tiêu nội bộ của Dự án khoa học và công nghệ "Dịch thuật và phát huy giá trị tinh hoa các tác phẩm kinh điển phương Đông";`,
	"- Căn cứ Giấy ủy quyền số 15/GUQ-VPKĐ ngày 01/09/2020 của Chủ nhiệm Dự án cho Chánh Văn phòng Dự án;",
	"- Căn cứ Quyết định số 14/QĐ-VPKĐ ngày 08/05/2023 về việc ký các hợp đồng dịch thuật Hợp phần Phật tạng tinh yếu giai đoạn 3;",
	"- Căn cứ vào khả năng và nhu cầu của hai bên.",
}

// BuildContractDocument rebuilds the full legal contract text as a structured
// document. Every data slot falls back to a bracketed prompt so a draft with
// missing links still produces a reviewable file.
func BuildContractDocument(d merge.Data) *Document {
	vals := merge.Values(d)
	f := d.Financials

	translatorName := fallback(vals["translator_name"], "[Tên dịch giả]")
	workName := fallback(vals["work_name"], "[Tên tác phẩm]")

	sourceLang := "[Ngôn ngữ nguồn]"
	targetLang := "[Ngôn ngữ đích]"
	if d.Work != nil {
		if d.Work.SourceLanguage != "" {
			sourceLang = d.Work.SourceLanguage
		}
		if d.Work.TargetLanguage != "" {
			targetLang = d.Work.TargetLanguage
		}
	}

	contractNumber := d.ContractNumber
	if contractNumber == "" {
		contractNumber = "/HĐ-VPKĐ"
	}

	doc := &Document{}

	// Letterhead.
	doc.addParagraph(runs(bold("VIỆN TRẦN NHÂN TÔNG")))
	doc.addParagraph(runs(bold("DỰ ÁN KINH ĐIỂN PHƯƠNG ĐÔNG")))
	doc.addParagraph(Paragraph{Runs: []Run{bold("CỘNG HOÀ XÃ HỘI CHỦ NGHĨA VIỆT NAM")}, Alignment: AlignRight})
	doc.addParagraph(Paragraph{Runs: []Run{bold("Độc lập - Tự do - Hạnh phúc")}, Alignment: AlignRight})
	doc.addParagraph(Paragraph{Runs: []Run{italic(vals["contract_date"])}, Alignment: AlignRight})
	doc.addParagraph(Paragraph{Runs: []Run{plain("Số: " + contractNumber)}, Alignment: AlignRight})
	doc.addParagraph(blank())

	doc.addParagraph(Paragraph{Runs: []Run{plain("HỢP ĐỒNG DỊCH THUẬT")}, Alignment: AlignCenter, Heading: 1})
	doc.addParagraph(Paragraph{Runs: []Run{plain("HỢP PHẦN PHẬT TẠNG TINH YẾU")}, Alignment: AlignCenter, Heading: 2})
	doc.addParagraph(blank())

	for _, basis := range legalBases {
		doc.addParagraph(runs(italic(basis)))
	}
	doc.addParagraph(blank())

	// Parties.
	doc.addParagraph(runs(bold("Chúng tôi gồm:")))
	doc.addParagraph(blank())
	doc.addParagraph(runs(bold("Bên giao (Bên A): "), bold(partyAName)))
	doc.addParagraph(labeled("Đại diện và thừa ủy quyền của Chủ nhiệm Dự án: ", partyARep))
	doc.addParagraph(labeled("Chức vụ: ", partyATitle))
	doc.addParagraph(labeled("Địa chỉ: ", partyAAddress))
	doc.addParagraph(labeled("Điện thoại: ", partyAPhone))
	doc.addParagraph(labeled("Số tài khoản: ", partyABankAcct))
	doc.addParagraph(labeled("Tại: ", partyABank))
	doc.addParagraph(labeled("Mã số thuế: ", partyATaxCode))
	doc.addParagraph(blank())

	doc.addParagraph(runs(bold("Bên nhận (Bên B): " + translatorName)))
	idCardLine := "Số CMT: " + fallback(vals["translator_id_card"], "[Số CMND/CCCD]")
	if issue := vals["translator_id_card_issue_date"]; issue != "" {
		idCardLine += " Ngày cấp: " + issue
	}
	doc.addParagraph(text(idCardLine))
	if place := vals["translator_id_card_issue_place"]; place != "" {
		doc.addParagraph(labeled("Nơi cấp: ", place))
	}
	if wp := vals["translator_workplace"]; wp != "" {
		doc.addParagraph(labeled("Nơi công tác: ", wp))
	}
	doc.addParagraph(labeled("Địa chỉ: ", fallback(vals["translator_address"], "[Địa chỉ]")))
	doc.addParagraph(labeled("Điện thoại: ", fallback(vals["translator_phone"], "[Số điện thoại]")))
	doc.addParagraph(labeled("Email: ", fallback(vals["translator_email"], "[Email]")))
	doc.addParagraph(labeled("Người thụ hưởng: ", fallback(vals["translator_beneficiary"], "[Tên dịch giả]")))
	doc.addParagraph(labeled("Số tài khoản: ", fallback(vals["translator_bank_account"], "[Số tài khoản]")))
	doc.addParagraph(labeled("Tại ngân hàng: ", fallback(vals["translator_bank_name"], "[Tên ngân hàng]")))
	if branch := vals["translator_bank_branch"]; branch != "" {
		doc.addParagraph(labeled("Chi nhánh: ", branch))
	}
	doc.addParagraph(labeled("Mã số thuế TNCN: ", fallback(vals["translator_tax_code"], "[Mã số thuế TNCN]")))
	doc.addParagraph(blank())

	doc.addParagraph(runs(
		bold("Hai bên thỏa thuận kí kết Hợp đồng dịch thuật hợp phần Phật tạng tinh yếu ("),
		italic(`sau đây gọi tắt là "Hợp đồng"`),
		bold(") với những điều khoản sau:"),
	))
	doc.addParagraph(blank())

	// Điều 1.
	doc.addParagraph(runs(bold("Điều 1:")))
	doc.addParagraph(runs(
		plain(`Bên B cam kết thực hiện việc toàn dịch và chú giải (sau đây gọi tắt là "dịch thuật") cho Bên A toàn bộ tài liệu `),
		italic(workName),
		plain(fmt.Sprintf(" từ %s sang %s theo thỏa thuận được quy định cụ thể trong Hợp đồng này.", sourceLang, targetLang)),
	))
	doc.addParagraph(runs(bold("- Tên tài liệu: "), italic(workName)))
	doc.addParagraph(labeled("- Ngôn ngữ gốc: ", sourceLang))
	doc.addParagraph(runs(
		bold("- Tổng số trang tài liệu quy đổi cần thực hiện dịch thuật (tạm tính): "),
		plain(vals["base_page_count"]+" trang (350 chữ/1 trang)"),
	))
	doc.addParagraph(runs(bold("- Nội dung công việc cụ thể bao gồm:")))
	doc.addParagraph(text("1) Toàn dịch, chú giải và chú thích;"))
	doc.addParagraph(text("2) Viết bài giới thiệu tổng quan."))
	doc.addParagraph(blank())

	// Điều 2.
	doc.addParagraph(runs(bold("Điều 2: Thời gian và kinh phí thực hiện Hợp đồng")))
	doc.addParagraph(runs(bold("2.1. Thời gian thực hiện Hợp đồng:")))
	doc.addParagraph(runs(
		bold("- Tổng thời gian thực hiện Hợp đồng: "),
		plain(fmt.Sprintf("%d tháng kể từ %s", contractMonths(d.StartDate, d.EndDate), vals["start_date"])),
	))
	doc.addParagraph(runs(
		bold("- Thời gian giao nộp sản phẩm cuối cùng: "),
		plain("hết "+vals["end_date"]),
	))
	doc.addParagraph(runs(bold("2.2. Kinh phí thực hiện Hợp đồng:")))
	doc.addParagraph(runs(
		bold("- Tổng kinh phí khái toán thực hiện Hợp đồng là: "),
		plain(vals["total_amount"]+" đồng (Bằng chữ: "),
		italic(vals["total_amount_words"]),
		plain("). Trong đó:"),
	))
	doc.addParagraph(runs(
		bold("+ Kinh phí phiên dịch, chú giải, chú thích: "),
		plain(fmt.Sprintf("%s trang quy đổi × %s đ/trang = %s đồng (Bằng chữ: ",
			vals["base_page_count"], vals["translation_unit_price"], vals["translation_cost"])),
		italic(vals["translation_cost_words"]),
		plain(");"),
	))
	if f.OverviewWritingCost.IsPositive() {
		doc.addParagraph(runs(
			bold(`+ Kinh phí viết "Bài khảo sát tổng quan" cho tài liệu trong Điều 1 của Hợp đồng này là: `),
			plain(vals["overview_writing_cost"]+" đồng (Bằng chữ: "),
			italic(vals["overview_writing_cost_words"]),
			plain("). Kinh phí này sẽ được thanh toán sau khi được Hội đồng nghiệm thu tài liệu dịch thuật do Bên A tổ chức công nhận là đạt chất lượng."),
		))
	}
	doc.addParagraph(text("- Tổng kinh phí cuối cùng của Hợp đồng căn cứ vào tổng số chữ thực tế của sản phẩm giao nộp cuối cùng đã được Hội đồng nghiệm thu tài liệu dịch thuật do Bên A tổ chức công nhận là đạt chất lượng theo yêu cầu (Không bao gồm phần nguyên văn chữ Hán và phần phiên âm)."))
	doc.addParagraph(text("- Kinh phí này đã bao gồm những khoản đóng góp nghĩa vụ cho ngân sách Nhà nước theo quy định của pháp luật và theo quy định của Dự án."))
	doc.addParagraph(runs(bold("- Tổng số kinh phí khái toán này Bên A sẽ chuyển vào tài khoản của Bên B theo nội dung và tiến độ như sau:")))
	if f.AdvancePayment1Percent.IsPositive() {
		doc.addParagraph(runs(
			bold("+ Đợt 1: "),
			plain(fmt.Sprintf("Bên A sẽ tạm ứng cho Bên B %s%% tổng kinh phí phiên dịch, chú giải, chú thích ngay sau khi kí Hợp đồng tương ứng số tiền là: %s đồng (Bằng chữ: ",
				vals["advance_payment_1_percent"], vals["advance_payment_1"])),
			italic(vals["advance_payment_1_words"]),
			plain(");"),
		))
	}
	if f.AdvancePayment2Percent.IsPositive() {
		doc.addParagraph(runs(
			bold("+ Đợt 2: "),
			plain(fmt.Sprintf("Bên A sẽ thanh toán cho Bên B số tiền %s%% tổng kinh phí phiên dịch, chú giải, chú thích sau khi Bên A kiểm tra tiến độ và Bên B đạt đủ điều kiện hoàn thành ít nhất 50%% khối lượng sản phẩm của hợp đồng, tương ứng số tiền là: %s đồng (Bằng chữ: ",
				vals["advance_payment_2_percent"], vals["advance_payment_2"])),
			italic(vals["advance_payment_2_words"]),
			plain(");"),
		))
	}
	doc.addParagraph(runs(
		bold("+ Đợt 3: "),
		plain(`Bên A sẽ thanh toán cho Bên B số tiền còn lại của Hợp đồng (căn cứ trên tổng kinh phí cuối cùng của Hợp đồng đã khấu trừ các khoản đóng góp nghĩa vụ và bao gồm kinh phí viết bài khảo sát tổng quan theo quy định của Dự án) sau khi bên B giao nộp sản phẩm hoàn chỉnh và nghiệm thu, thanh lí Hợp đồng. Đối với trường hợp bên B không hoàn thành được "Bài khảo sát tổng quan" theo yêu cầu của hội đồng nghiệm thu thì bên A sẽ giữ lại phần kinh phí này;`),
	))
	doc.addParagraph(text("+ Bên A sẽ khấu trừ phí quản lí hợp đồng có giá trị 5% trên tổng kinh phí cuối cùng của hợp đồng và thực hiện khấu trừ theo từng lần thanh toán."))
	doc.addParagraph(text("+ Bên A sẽ khấu trừ 10% của tổng kinh phí chuyên môn thực nhận (không bao gồm 5% phí quản lí) của Hợp đồng, theo từng lần thanh toán để thực hiện nghĩa vụ thuế thu nhập cá nhân theo quy định của pháp luật."))
	doc.addParagraph(blank())

	// Điều 3.
	doc.addParagraph(runs(bold("Điều 3: Quyền và trách nhiệm của bên B")))
	doc.addParagraph(runs(
		bold("3.1. "),
		plain(`Bên B cam kết đảm bảo bản toàn dịch, chú giải và chú thích (sau đây gọi tắt là "bản dịch") đạt chất lượng, đầy đủ, chính xác, đúng nội dung bản gốc và tuân thủ theo yêu cầu của bản "Thể lệ dịch thuật Phật tạng tinh yếu" do Dự án ban hành. Sản phẩm cuối cùng Bên B giao nộp cho Bên A phải được Hội đồng nghiệm thu tài liệu dịch thuật do Bên A tổ chức công nhận là đạt chất lượng theo yêu cầu, bao gồm:`),
	))
	doc.addParagraph(text("- Bản toàn dịch, chú giải và chú thích."))
	doc.addParagraph(text("- 01 bài khảo sát tổng quan về sản phẩm thực hiện theo mẫu và đạt yêu cầu của Dự án, dung lượng từ 8.000 chữ đến 15.000 chữ."))
	doc.addParagraph(runs(
		bold("3.2. "),
		plain("Bên B cam kết tự tiến hành dịch toàn bộ phần được yêu cầu dịch đã thỏa thuận trong Điều 1 và không chuyển cho bất kì bên thứ ba nào khác dịch thay."),
	))
	doc.addParagraph(runs(
		bold("3.3. "),
		plain("Bên B cam kết đảm bảo hoàn thành và giao nộp bản dịch theo chất lượng được yêu cầu và thời gian nêu trong hợp đồng."),
	))
	doc.addParagraph(runs(
		bold("3.4. "),
		plain("Bên B có trách nhiệm cộng tác chặt chẽ với Bên A để sửa chữa, hoàn thiện bản dịch theo tiến độ thời gian và yêu cầu chất lượng cụ thể của Bên A."),
	))
	doc.addParagraph(runs(
		bold("3.5. "),
		plain("Nếu bản dịch của Bên B được Hội đồng nghiệm thu do Bên A tổ chức đánh giá là đạt chất lượng tốt, hoàn thiện và có thể xuất bản được ngay, thì Bên A sẽ xem xét thanh toán kinh phí hiệu đính cho bên B căn cứ theo nội dung, khối lượng thực hiện cụ thể và theo Quy chế của Dự án."),
	))
	doc.addParagraph(blank())

	// Điều 4.
	doc.addParagraph(runs(bold("Điều 4: Quyền và trách nhiệm của Bên A")))
	doc.addParagraph(runs(
		bold("4.1. "),
		plain("Bên A cam kết cấp kinh phí cho Bên B theo đúng tiến độ thực hiện như quy định tại Điều 2 của Hợp đồng này."),
	))
	doc.addParagraph(runs(
		bold("4.2. "),
		plain("Bên A có trách nhiệm tổ chức đánh giá tiến độ thực hiện và nghiệm thu bản dịch theo quy định hiện hành."),
	))
	doc.addParagraph(runs(
		bold("4.3. "),
		plain(`Bên A giữ toàn quyền biên tập bản dịch và có quyền yêu cầu Bên B tiến hành sửa chữa, hoàn thiện bản dịch cho đến khi đạt chất lượng được quy định cụ thể theo bản "Thể lệ dịch thuật Phật tạng tinh yếu" do Dự án ban hành.`),
	))
	doc.addParagraph(blank())

	// Điều 5.
	doc.addParagraph(runs(bold("Điều 5: Bản quyền và quyền sở hữu trí tuệ")))
	doc.addParagraph(runs(
		bold("5.1. "),
		plain("Bản quyền đối với bản dịch do Bên B thực hiện thuộc về Bên A. Bên A nắm quyền sở hữu bản dịch, độc quyền khai thác, phát hành bản dịch dưới mọi hình thức, trên mọi phương tiện theo thời hạn Hợp đồng độc quyền kí với bên B, hoặc không thời hạn đối với tác phẩm hết thời hạn bảo hộ theo quy định của Công ước Berne và pháp luật Việt Nam tại thời điểm kí kết Hợp đồng này."),
	))
	doc.addParagraph(runs(bold("5.2. "), plain("Quyền lợi khi xuất bản:")))
	doc.addParagraph(text(`- Bên A: ghi tên: "Dự án Dịch thuật và phát huy giá trị tinh hoa các tác phẩm kinh điển phương Đông (Viện Trần Nhân Tông, Đại học Quốc gia Hà Nội)"; Chủ nhiệm Dự án đứng tên Tổng chủ biên; ghi tên Hội đồng biên tập; ghi tên nhà tài trợ cho việc dịch thuật và in ấn.`))
	doc.addParagraph(text(`- Bên B được đứng tên thật hoặc bút danh trong phần "Người dịch".`))
	doc.addParagraph(text("- Ghi tên Người hiệu đính (nếu có)."))
	doc.addParagraph(text("- Ghi các thông tin xuất bản khác theo quy định."))
	doc.addParagraph(runs(
		bold("5.3. "),
		plain("Trong mọi trường hợp, Bên B cam kết không phát tán hay chuyển bản dịch cho bất kì bên thứ ba nào khác mà không được sự cho phép của Bên A. Nếu vi phạm, Bên B sẽ phải đền bù thiệt hại tương ứng cho Bên A theo quy định của pháp luật."),
	))
	doc.addParagraph(blank())

	// Điều 6.
	doc.addParagraph(runs(bold("Điều 6: Điều khoản thi hành")))
	doc.addParagraph(runs(
		bold("6.1. "),
		plain("Hai bên cam kết thực hiện đúng các điều khoản đã được ghi trong hợp đồng, bên nào vi phạm sẽ phải chịu hoàn toàn trách nhiệm theo các quy định hiện hành. Trong quá trình thực hiện hợp đồng, hai bên phải thông báo cho nhau những vấn đề nảy sinh và cùng nhau bàn bạc giải quyết."),
	))
	doc.addParagraph(runs(
		bold("6.2. "),
		plain("Hợp đồng này có hiệu lực kể từ ngày kí. Hợp đồng được làm thành 05 bản có giá trị pháp lí như nhau, Bên B giữ 01 bản, Bên A giữ 04 bản (01 bản lưu BCN Dự án, 01 bản lưu Văn thư, 01 bản lưu tại bộ phận Kế toán, 01 bản lưu tại Ban Thư kí Dự án)./."),
	))
	doc.addParagraph(blank())

	// Signature block.
	doc.addTable(Table{Rows: [][]Cell{{
		{
			WidthPct: 50,
			Paragraphs: []Paragraph{
				{Runs: []Run{bold("BÊN A")}, Alignment: AlignCenter},
				{Runs: []Run{bold("CHÁNH VĂN PHÒNG")}, Alignment: AlignCenter},
				blank(),
				{Runs: []Run{italic("(Kí, đóng dấu)")}, Alignment: AlignCenter},
				blank(),
				blank(),
				{Runs: []Run{bold(partyASignerName)}, Alignment: AlignCenter},
			},
		},
		{
			WidthPct: 50,
			Paragraphs: []Paragraph{
				{Runs: []Run{bold("BÊN B")}, Alignment: AlignCenter},
				blank(),
				{Runs: []Run{italic("(Kí, ghi rõ họ tên)")}, Alignment: AlignCenter},
				blank(),
				blank(),
				{Runs: []Run{bold(translatorName)}, Alignment: AlignCenter},
			},
		},
	}}})

	return doc
}

// ContractFileName names the generated artifact after the contract number.
func ContractFileName(contractNumber, ext string) string {
	if contractNumber == "" {
		contractNumber = "dich-thuat"
	}
	return "Hop-dong-" + utils.SanitizeFileName(contractNumber) + "." + ext
}

// contractMonths approximates the contract duration in whole months, counting
// 30-day blocks between the dates. Missing dates count as today.
func contractMonths(start, end *time.Time) int {
	s := time.Now()
	if start != nil {
		s = *start
	}
	e := s
	if end != nil {
		e = *end
	}
	days := math.Round(e.Sub(s).Hours() / 24)
	return int(math.Round(days / 30))
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
