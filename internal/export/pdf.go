package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 7.0
	pdfFontSize   = 11.0
)

// renderPDF lays text out on A4 pages. Long lines wrap, blank lines advance
// half a line, and pages break automatically.
func renderPDF(text string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetFont("Helvetica", "", pdfFontSize)
	doc.AddPage()

	// core fonts are cp1252; map UTF-8 input onto it
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines(text) {
		if strings.TrimSpace(line) == "" {
			doc.Ln(pdfLineHeight / 2)
			continue
		}
		doc.MultiCell(0, pdfLineHeight, tr(line), "", "L", false)
	}

	if err := doc.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
