package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/log_analyzer_go/internal/analysis"
	"github.com/user/log_analyzer_go/internal/config"
	"github.com/user/log_analyzer_go/internal/dataset"
)

const (
	chartWidth  = vg.Length(800)
	chartHeight = vg.Length(400)
)

var (
	relaxedFill   = color.NRGBA{G: 160, A: 38}
	stretchedFill = color.NRGBA{R: 220, A: 38}
	relaxedEdge   = color.NRGBA{G: 160, A: 255}
	stretchedEdge = color.NRGBA{R: 220, A: 255}

	tracePalette = []color.Color{
		color.RGBA{B: 255, A: 255},
		color.RGBA{R: 255, G: 140, A: 255},
		color.RGBA{G: 160, A: 255},
		color.RGBA{R: 128, B: 128, A: 255},
	}
)

// invert mirrors a position value around home (e.g. 2247 <-> 1847), so two
// opposing motors overlay on the same band of the chart.
func invert(value, home float64) float64 {
	return 2*home - value
}

// TimeSeriesPlot builds the targets-vs-positions chart: a dashed target
// trace and a solid position trace per report motor, with shaded overlays
// for relaxed dwell (relaxed mask intersected with the phase mask) and
// stretched dwell (union over all actuated motors). When exactly two
// report motors are configured the second one is mirrored around home.
func TimeSeriesPlot(ds *dataset.Dataset, cfg *config.AnalysisConfig) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Motor targets vs positions"
	p.X.Label.Text = "Time (seconds)"
	p.Y.Label.Text = "Position"
	p.Add(plotter.NewGrid())

	yMin, yMax := outlineBounds(ds, cfg)

	phaseMask := analysis.PhaseMask(ds, cfg)
	relaxedMask := analysis.RelaxedMask(ds, cfg.ActuatedMotors)
	for i := range relaxedMask {
		relaxedMask[i] = relaxedMask[i] && phaseMask[i]
	}
	stretchedMask := make([]bool, ds.N())
	for _, motor := range cfg.ActuatedMotors {
		for i, active := range analysis.StretchMask(ds, motor) {
			stretchedMask[i] = stretchedMask[i] || active
		}
	}

	if err := addIntervalShapes(p, ds, relaxedMask, relaxedFill, relaxedEdge, yMin, yMax); err != nil {
		return nil, err
	}
	if err := addIntervalShapes(p, ds, stretchedMask, stretchedFill, stretchedEdge, yMin, yMax); err != nil {
		return nil, err
	}
	addRegionLegend(p, "Relaxed Region", relaxedEdge)
	addRegionLegend(p, "Stretched Region", stretchedEdge)

	mirroredID := -1
	if len(cfg.ReportMotorIDs) == 2 {
		mirroredID = cfg.ReportMotorIDs[1]
	}

	for idx, motorID := range cfg.ReportMotorIDs {
		name := fmt.Sprintf("Motor %d", motorID)
		target := ds.Column(dataset.TargetCol(motorID))
		position := ds.Column(dataset.PosCol(motorID))

		transform := func(v float64) float64 { return v }
		if motorID == mirroredID {
			transform = func(v float64) float64 { return invert(v, cfg.HomePosition) }
			name += " (mirrored)"
		}

		traceColor := tracePalette[idx%len(tracePalette)]

		targetLine, err := tracePoints(ds.TSec, target, transform)
		if err != nil {
			return nil, err
		}
		targetLine.Color = traceColor
		targetLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(targetLine)
		p.Legend.Add(fmt.Sprintf("%s Target", name), targetLine)

		posLine, err := tracePoints(ds.TSec, position, transform)
		if err != nil {
			return nil, err
		}
		posLine.Color = traceColor
		posLine.LineStyle.Width = vg.Points(1.5)
		p.Add(posLine)
		p.Legend.Add(fmt.Sprintf("%s Position", name), posLine)
	}

	p.Legend.Top = true
	return p, nil
}

// SaveChart renders the chart to a file; the format follows the extension
// (.png, .svg, .pdf, ...).
func SaveChart(ds *dataset.Dataset, cfg *config.AnalysisConfig, path string) error {
	p, err := TimeSeriesPlot(ds, cfg)
	if err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

// ChartPNG renders the chart to PNG bytes for embedding in a PDF report.
func ChartPNG(ds *dataset.Dataset, cfg *config.AnalysisConfig) ([]byte, error) {
	p, err := TimeSeriesPlot(ds, cfg)
	if err != nil {
		return nil, err
	}
	writer, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}

// tracePoints builds a line from (t, value) pairs, skipping NaN samples.
func tracePoints(tsec, values []float64, transform func(float64) float64) (*plotter.Line, error) {
	pts := make(plotter.XYs, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: tsec[i], Y: transform(v)})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("create trace line: %v", err)
	}
	return line, nil
}

// addIntervalShapes shades every contiguous interval of the mask as a
// translucent rectangle spanning [yMin, yMax].
func addIntervalShapes(p *plot.Plot, ds *dataset.Dataset, mask []bool, fill, edge color.Color, yMin, yMax float64) error {
	for _, iv := range analysis.FindIntervals(mask) {
		x0 := ds.TSec[iv.Start]
		x1 := ds.TSec[iv.End]
		rect := plotter.XYs{
			{X: x0, Y: yMin},
			{X: x1, Y: yMin},
			{X: x1, Y: yMax},
			{X: x0, Y: yMax},
		}
		poly, err := plotter.NewPolygon(rect)
		if err != nil {
			return fmt.Errorf("create interval shape: %v", err)
		}
		poly.Color = fill
		poly.LineStyle.Color = edge
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}
	return nil
}

func addRegionLegend(p *plot.Plot, name string, c color.Color) {
	marker, err := plotter.NewLine(plotter.XYs{})
	if err != nil {
		return
	}
	marker.Color = c
	marker.LineStyle.Width = vg.Points(3)
	p.Legend.Add(name, marker)
}

// outlineBounds computes the shaded-rectangle vertical extent from the
// report motors' target and position columns, with 5% padding.
func outlineBounds(ds *dataset.Dataset, cfg *config.AnalysisConfig) (float64, float64) {
	yMin := math.Inf(1)
	yMax := math.Inf(-1)
	for _, motorID := range cfg.ReportMotorIDs {
		for _, name := range []string{dataset.PosCol(motorID), dataset.TargetCol(motorID)} {
			for _, v := range ds.Column(name) {
				if math.IsNaN(v) {
					continue
				}
				yMin = math.Min(yMin, v)
				yMax = math.Max(yMax, v)
			}
		}
	}
	if math.IsInf(yMin, 1) || math.IsInf(yMax, -1) {
		return 0, 1
	}
	if yMin == yMax {
		yMin--
		yMax++
	}
	padding := 0.05 * (yMax - yMin)
	return yMin - padding, yMax + padding
}
