package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/slidemd-go/internal/pptxtest"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

func strRef(ref string, points ...string) string {
	return `<c:strRef><c:f>` + ref + `</c:f>` + cache("strCache", points) + `</c:strRef>`
}

func numRef(ref string, points ...string) string {
	return `<c:numRef><c:f>` + ref + `</c:f>` + cache("numCache", points) + `</c:numRef>`
}

func cache(tag string, points []string) string {
	if len(points) == 0 {
		return ""
	}
	out := fmt.Sprintf(`<c:%s><c:ptCount val="%d"/>`, tag, len(points))
	for i, p := range points {
		out += fmt.Sprintf(`<c:pt idx="%d"><c:v>%s</c:v></c:pt>`, i, p)
	}
	return out + `</c:` + tag + `>`
}

func series(name, cat, val string) string {
	return `<c:ser><c:idx val="0"/><c:tx>` + name + `</c:tx><c:cat>` + cat + `</c:cat><c:val>` + val + `</c:val></c:ser>`
}

func TestParseChartXML(t *testing.T) {
	tests := []struct {
		name         string
		xml          string
		want         *models.Chart
		wantExternal string
	}{
		{
			name: "column chart with caches",
			xml: pptxtest.ChartXML("Quarterly Sales",
				`<c:barChart><c:barDir val="col"/><c:grouping val="clustered"/>`+
					series(strRef("Sheet1!$B$1", "North"),
						strRef("Sheet1!$A$2:$A$3", "Q1", "Q2"),
						numRef("Sheet1!$B$2:$B$3", "10", "20"))+
					series(strRef("Sheet1!$C$1", "South"),
						strRef("Sheet1!$A$2:$A$3", "Q1", "Q2"),
						numRef("Sheet1!$C$2:$C$3", "5", "7"))+
					`</c:barChart>`, ""),
			want: &models.Chart{
				ChartType:  "Column",
				Title:      "Quarterly Sales",
				Categories: []string{"Q1", "Q2"},
				Series: []models.ChartSeries{
					{Name: "North", NameRange: "Sheet1!$B$1", CategoryRange: "Sheet1!$A$2:$A$3", ValueRange: "Sheet1!$B$2:$B$3", Values: []string{"10", "20"}},
					{Name: "South", NameRange: "Sheet1!$C$1", CategoryRange: "Sheet1!$A$2:$A$3", ValueRange: "Sheet1!$C$2:$C$3", Values: []string{"5", "7"}},
				},
			},
		},
		{
			name: "horizontal bar keeps bar type",
			xml: pptxtest.ChartXML("",
				`<c:barChart><c:barDir val="bar"/>`+
					series(`<c:v>Only</c:v>`, "", numRef("Sheet1!$B$2", "1"))+
					`</c:barChart>`, ""),
			want: &models.Chart{
				ChartType: "Bar",
				Series: []models.ChartSeries{
					{Name: "Only", ValueRange: "Sheet1!$B$2", Values: []string{"1"}},
				},
			},
		},
		{
			name: "combo chart takes first type",
			xml: pptxtest.ChartXML("Combo",
				`<c:lineChart>`+series(strRef("S!$A$1", "L"), "", numRef("S!$A$2", "3"))+`</c:lineChart>`+
					`<c:pieChart>`+series(strRef("S!$B$1", "P"), "", numRef("S!$B$2", "4"))+`</c:pieChart>`, ""),
			want: &models.Chart{
				ChartType: "Line",
				Title:     "Combo",
				Series: []models.ChartSeries{
					{Name: "L", NameRange: "S!$A$1", ValueRange: "S!$A$2", Values: []string{"3"}},
					{Name: "P", NameRange: "S!$B$1", ValueRange: "S!$B$2", Values: []string{"4"}},
				},
			},
		},
		{
			name:         "unknown plot type",
			xml:          pptxtest.ChartXML("Mystery", `<c:funnelChart/>`, "rId1"),
			want:         &models.Chart{ChartType: "unknown", Title: "Mystery"},
			wantExternal: "rId1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, external, err := parseChartXML([]byte(tt.xml))
			require.NoError(t, err)
			assert.Equal(t, tt.want, chart)
			assert.Equal(t, tt.wantExternal, external)
		})
	}
}

func TestParseChartXMLMalformed(t *testing.T) {
	_, _, err := parseChartXML([]byte(`<c:chartSpace xmlns:c="x"><c:chart><c:plotArea>`))
	assert.Error(t, err)
}

func TestNeedsWorkbook(t *testing.T) {
	tests := []struct {
		name  string
		chart models.Chart
		want  bool
	}{
		{"cached", models.Chart{Categories: []string{"a"}, Series: []models.ChartSeries{{Name: "n", Values: []string{"1"}, ValueRange: "A1"}}}, false},
		{"missing values", models.Chart{Series: []models.ChartSeries{{Name: "n", ValueRange: "A1"}}}, true},
		{"missing name", models.Chart{Series: []models.ChartSeries{{NameRange: "A1", Values: []string{"1"}}}}, true},
		{"missing categories", models.Chart{Series: []models.ChartSeries{{Name: "n", Values: []string{"1"}, CategoryRange: "A1:A2"}}}, true},
		{"no references", models.Chart{Series: []models.ChartSeries{{}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, needsWorkbook(&tt.chart))
		})
	}
}

func workbookBytes(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "B1", "Revenue"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Q1"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Q2"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 10))
	require.NoError(t, f.SetCellValue(sheet, "B3", 20.5))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func chartDeck(t *testing.T, chartXML string, withWorkbook bool) pptxtest.Deck {
	parts := map[string][]byte{
		"ppt/charts/chart1.xml": []byte(chartXML),
		"ppt/charts/_rels/chart1.xml.rels": []byte(pptxtest.RelsXML([]pptxtest.Rel{
			{ID: "rId1", Type: pptxtest.RelPackage, Target: "../embeddings/Microsoft_Excel_Worksheet.xlsx"},
		})),
	}
	if withWorkbook {
		parts["ppt/embeddings/Microsoft_Excel_Worksheet.xlsx"] = workbookBytes(t)
	}

	return pptxtest.Deck{
		Slides: []pptxtest.Slide{{
			Shapes: pptxtest.Chart(4, "Chart 3", "rId2") + pptxtest.Chart(5, "Chart 4", "rId9"),
			Rels: []pptxtest.Rel{
				{ID: "rId2", Type: pptxtest.RelChart, Target: "../charts/chart1.xml"},
			},
		}},
		Parts: parts,
	}
}

func TestChartWorkbookFallback(t *testing.T) {
	chartXML := pptxtest.ChartXML("Revenue",
		`<c:lineChart>`+
			series(strRef("Sheet1!$B$1"), strRef("Sheet1!$A$2:$A$3"), numRef("Sheet1!$B$2:$B$3"))+
			`</c:lineChart>`, "rId1")

	pres, err := readDeck(t, chartDeck(t, chartXML, true))
	require.NoError(t, err)

	slide := pres.Slides[0]
	require.Len(t, slide.Shapes, 2)

	chart := slide.Shape(0)
	require.True(t, chart.HasChart())
	assert.Equal(t, "Line", chart.Chart.ChartType)
	assert.Equal(t, []string{"Q1", "Q2"}, chart.Chart.Categories)
	require.Len(t, chart.Chart.Series, 1)
	assert.Equal(t, "Revenue", chart.Chart.Series[0].Name)
	assert.Equal(t, []string{"10", "20.5"}, chart.Chart.Series[0].Values)

	dangling := slide.Shape(1)
	assert.Equal(t, models.KindChart, dangling.Kind)
	assert.Nil(t, dangling.Chart)
	assert.False(t, dangling.HasChart())
}

func TestChartWithoutWorkbook(t *testing.T) {
	chartXML := pptxtest.ChartXML("",
		`<c:areaChart>`+series(strRef("Sheet1!$B$1"), "", numRef("Sheet1!$B$2:$B$3"))+`</c:areaChart>`, "rId1")

	pres, err := readDeck(t, chartDeck(t, chartXML, false))
	require.NoError(t, err)

	chart := pres.Slides[0].Shape(0).Chart
	require.NotNil(t, chart)
	assert.Equal(t, "Area", chart.ChartType)
	require.Len(t, chart.Series, 1)
	assert.Empty(t, chart.Series[0].Name)
	assert.Empty(t, chart.Series[0].Values)
}

func TestChartUnreadableWorkbookIsLogged(t *testing.T) {
	chartXML := pptxtest.ChartXML("Revenue",
		`<c:lineChart>`+series(strRef("Sheet1!$B$1"), "", numRef("Sheet1!$B$2:$B$3"))+`</c:lineChart>`, "rId1")
	deck := chartDeck(t, chartXML, false)
	deck.Parts["ppt/embeddings/Microsoft_Excel_Worksheet.xlsx"] = []byte("not a workbook")

	data, err := deck.Bytes()
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	pres, err := Read(bytes.NewReader(data), int64(len(data)), WithLogger(logger))
	require.NoError(t, err)

	chart := pres.Slides[0].Shape(0).Chart
	require.NotNil(t, chart)
	assert.Equal(t, "Line", chart.ChartType)
	assert.Empty(t, chart.Series[0].Values)

	assert.Contains(t, logs.String(), "embedded chart workbook unreadable")
	assert.Contains(t, logs.String(), "part=ppt/embeddings/Microsoft_Excel_Worksheet.xlsx")
}
