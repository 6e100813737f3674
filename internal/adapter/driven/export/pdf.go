package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
)

// Larguras (mm) das colunas em A4 paisagem, na ordem de AccessRecordColumns.
var pdfColumnWidths = []float64{30, 45, 80, 35, 50, 37}

func encodePDF(buf *bytes.Buffer, records []entity.AccessRecord) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	neverColor := [3]int{192, 0, 0}

	drawHeader := func() {
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 9)
		for i, col := range entity.AccessRecordColumns {
			pdf.CellFormat(pdfColumnWidths[i], 8, col, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		title := "IAM User Action-Level Access Report"
		if len(records) > 0 {
			title = fmt.Sprintf("%s - %s", title, records[0].UserName)
		}
		pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated at %s", time.Now().UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
		pdf.Ln(3)
		if len(records) > 0 {
			drawHeader()
		}
	})

	pdf.AddPage()

	if len(records) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 10, "No records", "", 1, "L", false, 0, "")
	}

	for _, record := range records {
		for i, value := range record.Values() {
			if i == len(pdfColumnWidths)-1 && value == entity.NeverAccessed {
				pdf.SetTextColor(neverColor[0], neverColor[1], neverColor[2])
			}
			pdf.CellFormat(pdfColumnWidths[i], 6, tr(fitText(pdf, value, pdfColumnWidths[i]-2)), "1", 0, "L", false, 0, "")
			pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		}
		pdf.Ln(-1)
	}

	return pdf.Output(buf)
}

// fitText corta o texto para caber na célula, terminando com "...".
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
