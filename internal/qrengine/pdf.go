package qrengine

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// pdfPage places the PNG on an A4 page, 10mm from the top-left corner and
// spanning the page width minus the margins.
func pdfPage(png []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreator("payqr", false)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	side := pageW - 20
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opt, bytes.NewReader(png))
	pdf.ImageOptions("qr", 10, 10, side, side, false, opt, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
