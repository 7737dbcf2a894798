package export

import (
	"bytes"
	"fmt"

	"github.com/venchfc/litmusEU/metrics"
	"github.com/venchfc/litmusEU/service"

	"github.com/go-pdf/fpdf"
)

// RenderResultsPDF renders a ResultsView as a downloadable document. Layout
// only, no recomputation of standings.
func RenderResultsPDF(view *service.ResultsView) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "LITMUS Event Results", "", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Event: %s", view.Event.Name), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Competition: %s", view.Competition.Name), "", 1, "", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(15, 8, "Rank", "", 0, "", false, 0, "")
	pdf.CellFormat(95, 8, "Contestant", "", 0, "", false, 0, "")
	pdf.CellFormat(40, 8, "Total", "", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, standing := range view.Standings {
		pdf.CellFormat(15, 8, fmt.Sprintf("%d", standing.Rank), "", 0, "", false, 0, "")
		pdf.CellFormat(95, 8, standing.Contestant.Name, "", 0, "", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", standing.Total), "", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	metrics.PdfExportCounter.Inc()
	return buf.Bytes(), nil
}

// Filename derives the download name for a rendered view.
func Filename(view *service.ResultsView) string {
	return fmt.Sprintf("results_%s_%d.pdf", view.Competition.Slug, view.Event.Id)
}
