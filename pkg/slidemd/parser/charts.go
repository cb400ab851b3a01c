package parser

import (
	"encoding/xml"
	"io"
	"log/slog"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// loadChart resolves a chart relationship of the slide and parses the chart
// part. Any failure leaves the frame without chart data.
func (sp *slideParser) loadChart(rID string) *models.Chart {
	chartPart, ok := sp.pkg.relationshipTarget(sp.part, rID)
	if !ok {
		return nil
	}
	chart, err := sp.pkg.parseChartPart(chartPart)
	if err != nil {
		sp.pkg.logger.Debug("chart part unreadable",
			slog.String("part", chartPart),
			slog.Any("error", err))
		return nil
	}
	return chart
}

// parseChartPart parses a chart part and, when caches are missing, fills
// series data from the chart's embedded workbook.
func (p *Package) parseChartPart(part string) (*models.Chart, error) {
	data, err := p.readPart(part)
	if err != nil {
		return nil, err
	}

	chart, externalID, err := parseChartXML(data)
	if err != nil {
		return nil, err
	}

	if needsWorkbook(chart) && externalID != "" {
		if wbPart, ok := p.relationshipTarget(part, externalID); ok {
			wb, err := p.readPart(wbPart)
			if err == nil {
				err = fillFromWorkbook(chart, wb)
			}
			if err != nil {
				p.logger.Debug("embedded chart workbook unreadable",
					slog.String("part", wbPart),
					slog.Any("error", err))
			}
		}
	}
	return chart, nil
}

// parseChartXML parses chart XML content. It also returns the relationship id
// of the embedded workbook, if any.
func parseChartXML(data []byte) (*models.Chart, string, error) {
	r := newTokenReader(data)
	chart := &models.Chart{}
	var externalID string

	for {
		token, err := r.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "chart":
				if err := parseChartElement(r, chart); err != nil {
					return nil, "", err
				}
			case "externalData":
				externalID = attrNS(se, nsR, "id")
			}
		}
	}

	if chart.ChartType == "" {
		chart.ChartType = "unknown"
	}
	return chart, externalID, nil
}

// parseChartElement parses c:chart element.
func parseChartElement(r *tokenReader, chart *models.Chart) error {
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				title, err := parseChartTitle(r)
				if err != nil {
					return err
				}
				chart.Title = title
				depth--
			case "plotArea":
				if err := parsePlotArea(r, chart); err != nil {
					return err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// parseChartTitle parses a title element, joining its text runs.
func parseChartTitle(r *tokenReader) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				txt, err := r.readText()
				if err != nil {
					return "", err
				}
				b.WriteString(txt)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// parsePlotArea parses plot area element. The first chart type element names
// the chart; series of every type element are collected.
func parsePlotArea(r *tokenReader, chart *models.Chart) error {
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if ct, ok := ChartTypeMap[t.Name.Local]; ok {
				ct, err := parseChartGroup(r, ct, chart)
				if err != nil {
					return err
				}
				if chart.ChartType == "" {
					chart.ChartType = ct
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// parseChartGroup parses the series of one chart type element and returns
// the refined type name (bar charts with column direction become Column).
func parseChartGroup(r *tokenReader, chartType string, chart *models.Chart) (string, error) {
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return chartType, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "barDir":
				if attr(t, "val") == "col" {
					chartType = strings.Replace(chartType, "Bar", "Column", 1)
				}
			case "ser":
				s, categories, err := parseSingleSeries(r)
				if err != nil {
					return chartType, err
				}
				chart.Series = append(chart.Series, s)
				if len(chart.Categories) == 0 && len(categories) > 0 {
					chart.Categories = categories
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return chartType, nil
}

// parseSingleSeries parses a single series element and its category labels.
func parseSingleSeries(r *tokenReader) (models.ChartSeries, []string, error) {
	var s models.ChartSeries
	var categories []string

	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return s, nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tx":
				ref, points, err := parseDataSource(r)
				if err != nil {
					return s, nil, err
				}
				if ref != "" {
					s.NameRange = ref
				}
				if len(points) > 0 && s.Name == "" {
					s.Name = points[0]
				}
				depth--
			case "cat", "xVal":
				ref, points, err := parseDataSource(r)
				if err != nil {
					return s, nil, err
				}
				s.CategoryRange = ref
				categories = points
				depth--
			case "val", "yVal":
				ref, points, err := parseDataSource(r)
				if err != nil {
					return s, nil, err
				}
				s.ValueRange = ref
				s.Values = points
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return s, categories, nil
}

// parseDataSource reads the formula reference and cached point values of a
// tx, cat or val element. Literal names (c:v directly under tx) count as a
// single point.
func parseDataSource(r *tokenReader) (string, []string, error) {
	var ref string
	var points []string
	depth := 1
	for depth > 0 {
		token, err := r.Token()
		if err != nil {
			return ref, points, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "f":
				txt, err := r.readText()
				if err != nil {
					return ref, points, err
				}
				ref = strings.TrimSpace(txt)
				depth--
			case "v":
				txt, err := r.readText()
				if err != nil {
					return ref, points, err
				}
				points = append(points, strings.TrimSpace(txt))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return ref, points, nil
}

// needsWorkbook reports whether any series lacks cached data that its
// formula reference could supply.
func needsWorkbook(chart *models.Chart) bool {
	for _, s := range chart.Series {
		if len(s.Values) == 0 && s.ValueRange != "" {
			return true
		}
		if s.Name == "" && s.NameRange != "" {
			return true
		}
		if len(chart.Categories) == 0 && s.CategoryRange != "" {
			return true
		}
	}
	return false
}
