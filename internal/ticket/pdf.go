package ticket

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

func (r *PDFRenderer) FileName(t Ticket) string {
	return fmt.Sprintf("ticket_%d.pdf", t.OrderID)
}

func (r *PDFRenderer) Render(w io.Writer, t Ticket) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(t.GeneratedAt)
	pdf.SetTitle(t.Heading(), true)
	pdf.AddPage()

	// core fonts are cp1252; the translator maps names and the dash in lines
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(t.Heading()), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)

	for _, m := range t.Metadata() {
		pdf.CellFormat(0, 7, tr(m), "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(0, 7, separator, "", 1, "L", false, 0, "")

	for _, l := range t.Lines {
		pdf.CellFormat(0, 7, tr(l), "", 1, "L", false, 0, "")
	}

	pdf.CellFormat(0, 7, separator, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(t.TotalLine), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering ticket %d: %w", t.OrderID, err)
	}

	return nil
}
