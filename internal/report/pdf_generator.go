package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/log_analyzer_go/internal/analysis"
	"github.com/user/log_analyzer_go/internal/config"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and flowing-content state.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	currentY   float64
	pageHeight float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		styles:     make(map[string]func()),
		lineHeight: 6,
		pageHeight: pdfPageHeightLandscape - (2 * pdfMargin),
		currentY:   pdfMargin,
	}
	s.styles["h1"] = func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(200, 200, 200)
		pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
	}
	s.styles["tableCellDim"] = func() {
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(120, 120, 120)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeParagraph(text, styleName string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", "L", false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) tableRow(widths []float64, cells []string, styleName string) {
	s.applyStyle(styleName)
	rowHeight := s.lineHeight
	s.checkAddPage(rowHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	fill := styleName == "tableHeader"
	for i, cell := range cells {
		s.pdf.CellFormat(widths[i], rowHeight, cell, "1", 0, "L", fill, 0, "")
	}
	s.currentY += rowHeight
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))
	s.checkAddPage(height)
	s.pdf.ImageOptions(imageName, pdfMargin, s.currentY, width, height, false,
		gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	s.currentY += height + 2
}

// BuildPDFReport writes a one-stop PDF: run summary, the targets-vs-positions
// chart, and tables of phase segments, total averages and pairwise
// deviations. chartPNG may be nil to skip the chart page.
func BuildPDFReport(path string, cfg *config.AnalysisConfig, rep *analysis.Report, chartPNG []byte) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	s := newPDFStyler(pdf)
	s.writeParagraph("Actuation Log Analysis Report", "h1")
	s.writeParagraph(fmt.Sprintf(
		"Home position %.1f (tolerance %.1f), minimum segment length %d samples, %d actuated motor(s).",
		cfg.HomePosition, cfg.HomeTolerance, cfg.MinSegmentSamples, len(cfg.ActuatedMotors)), "normal")
	s.addSpacer(2)

	if rep.Empty() {
		s.writeParagraph("No phase-2 segments detected (check config thresholds).", "normal")
		return pdf.OutputFileAndClose(path)
	}

	if chartPNG != nil {
		imgHeight := pdfContentWidth / 2 // chart is rendered 2:1
		s.addImage(chartPNG, "timeseries", pdfContentWidth, imgHeight)
		s.addSpacer(2)
	}

	s.writeParagraph("Detected phase-2 segments", "h2")
	segWidths := []float64{25, 25, 35, 35, pdfContentWidth - 120}
	s.tableRow(segWidths, []string{"Segment", "Samples", "t start (s)", "t end (s)", "Sub-segments"}, "tableHeader")
	for _, seg := range rep.Segments {
		s.tableRow(segWidths, []string{
			fmt.Sprintf("%d", seg.Segment.ID),
			fmt.Sprintf("%d", seg.Segment.Len()),
			fmt.Sprintf("%.3f", seg.Segment.TStart),
			fmt.Sprintf("%.3f", seg.Segment.TEnd),
			fmt.Sprintf("%d", len(seg.SubSegments)),
		}, "tableCell")
		for _, sub := range seg.SubSegments {
			s.tableRow(segWidths, []string{
				"", sub.Label(),
				fmt.Sprintf("%.3f", sub.TStart),
				fmt.Sprintf("%.3f", sub.TEnd),
				averagesText(sub.Averages, rep.ReportMotorIDs),
			}, "tableCellDim")
		}
	}
	s.addSpacer(4)

	s.writeParagraph("Total averages across all segments", "h2")
	totWidths := []float64{45, 30, pdfContentWidth - 75}
	s.tableRow(totWidths, []string{"Group", "Samples", "Averages"}, "tableHeader")
	for _, total := range rep.Totals {
		label := fmt.Sprintf("%s %s", total.Motor, total.State)
		if total.Averages == nil {
			s.tableRow(totWidths, []string{label, "0", "no samples"}, "tableCellDim")
			continue
		}
		s.tableRow(totWidths, []string{
			label,
			fmt.Sprintf("%d", total.Samples),
			averagesText(total.Averages, rep.ReportMotorIDs),
		}, "tableCell")
	}
	s.addSpacer(4)

	s.writeParagraph("Position deviation", "h2")
	if len(rep.Deviations) == 0 {
		s.writeParagraph("Requires at least two actuated motors.", "normal")
	} else {
		devWidths := []float64{60, pdfContentWidth - 60}
		s.tableRow(devWidths, []string{"Pair", "Deviations"}, "tableHeader")
		for _, dev := range rep.Deviations {
			label := fmt.Sprintf("%s (%s vs %s)", titleCase(string(dev.State)), dev.MotorA, dev.MotorB)
			if dev.Deviations == nil {
				s.tableRow(devWidths, []string{label, "insufficient data"}, "tableCellDim")
				continue
			}
			s.tableRow(devWidths, []string{label, deviationsText(dev.Deviations, rep.ReportMotorIDs)}, "tableCell")
		}
	}

	return pdf.OutputFileAndClose(path)
}

func deviationsText(deviations map[int]float64, reportMotorIDs []int) string {
	parts := make([]string, 0, len(reportMotorIDs))
	for _, motorID := range reportMotorIDs {
		parts = append(parts, fmt.Sprintf("M%d_dev=%.2f", motorID, deviations[motorID]))
	}
	return strings.Join(parts, ", ")
}
