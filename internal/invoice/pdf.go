package invoice

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 20.0
	qrSideMM   = 55.0
	footerText = "Generated securely by Monero PayQR"
)

type rgb struct{ r, g, b int }

var (
	accent = rgb{247, 183, 49}
	ink    = rgb{17, 24, 39}
	muted  = rgb{107, 114, 128}
	faint  = rgb{156, 163, 175}
	rule   = rgb{229, 231, 235}
)

func textColor(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

// RenderPDF draws the invoice on one A4 page with qrPNG centered under
// "SCAN TO PAY". Blank header fields are filled with their defaults.
func RenderPDF(inv Invoice, qrPNG []byte, now time.Time) ([]byte, error) {
	inv = inv.WithDefaults(now)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetCreator("payqr", false)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.Rect(0, 0, pageW, 3, "F")

	// header
	pdf.SetY(pageMargin)
	pdf.SetFont("Helvetica", "B", 20)
	textColor(pdf, ink)
	pdf.MultiCell(contentW, 9, tr(strings.ToUpper(inv.BusinessName)), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	textColor(pdf, muted)
	pdf.CellFormat(contentW, 6, "INVOICE / RECEIPT", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	half := contentW / 2
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(half, 5, "DATE", "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 5, "INVOICE #", "", 1, "R", false, 0, "")
	pdf.SetFont("Courier", "B", 11)
	textColor(pdf, ink)
	pdf.CellFormat(half, 6, tr(inv.Date), "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, tr(inv.Number), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	hline(pdf, rule, contentW)
	pdf.Ln(6)

	// line items
	if len(inv.Items) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		textColor(pdf, faint)
		pdf.CellFormat(contentW, 10, "No line items added", "", 1, "C", false, 0, "")
	}
	for _, it := range inv.Items {
		pdf.SetFont("Helvetica", "", 11)
		textColor(pdf, rgb{75, 85, 99})
		pdf.CellFormat(half, 7, tr(it.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Courier", "B", 11)
		textColor(pdf, ink)
		pdf.CellFormat(half, 7, tr(it.Value), "", 1, "R", false, 0, "")
		hline(pdf, rgb{243, 244, 246}, contentW)
		pdf.Ln(1)
	}

	if total, ok := inv.Total(); ok {
		pdf.Ln(4)
		pdf.SetLineWidth(0.6)
		hline(pdf, ink, contentW)
		pdf.SetLineWidth(0.2)
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 13)
		textColor(pdf, rgb{0, 0, 0})
		pdf.CellFormat(half, 9, "TOTAL", "", 0, "L", false, 0, "")
		pdf.SetFont("Courier", "B", 14)
		pdf.SetFillColor(0, 0, 0)
		textColor(pdf, accent)
		pdf.CellFormat(half, 9, tr(total+" "+inv.Ticker()), "", 1, "R", true, 0, "")
	}

	// payment code
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	textColor(pdf, muted)
	pdf.CellFormat(contentW, 6, "SCAN TO PAY", "", 1, "C", false, 0, "")
	if len(qrPNG) > 0 {
		opt := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(qrPNG))
		x := (pageW - qrSideMM) / 2
		y := pdf.GetY() + 2
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.5)
		pdf.Rect(x-2, y-2, qrSideMM+4, qrSideMM+4, "D")
		pdf.SetLineWidth(0.2)
		pdf.ImageOptions("qr", x, y, qrSideMM, qrSideMM, false, opt, 0, "")
		pdf.SetY(y + qrSideMM + 4)
	}

	if notes := strings.TrimSpace(inv.Notes); notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		textColor(pdf, muted)
		pdf.MultiCell(contentW, 5, tr(`"`+notes+`"`), "", "C", false)
	}

	pdf.SetAutoPageBreak(false, 0)
	pdf.SetY(pageH - pageMargin/2 - 5)
	pdf.SetFont("Courier", "", 7)
	textColor(pdf, faint)
	pdf.CellFormat(contentW, 5, footerText, "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func hline(pdf *fpdf.Fpdf, c rgb, w float64) {
	pdf.SetDrawColor(c.r, c.g, c.b)
	y := pdf.GetY()
	pdf.Line(pageMargin, y, pageMargin+w, y)
}
