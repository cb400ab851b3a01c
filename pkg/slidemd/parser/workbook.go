package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// maxRangeCells bounds the cells read for one reference; whole-sheet
// references are truncated to it.
const maxRangeCells = 4096

// cellRange is a rectangular block of cells on one sheet (1-based, inclusive).
type cellRange struct {
	Sheet  string
	C1, R1 int
	C2, R2 int
}

// fillFromWorkbook reads series names, values and categories that the chart
// caches lack from the chart's embedded workbook.
func fillFromWorkbook(chart *models.Chart, data []byte) error {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer f.Close()

	for i := range chart.Series {
		s := &chart.Series[i]
		if len(s.Values) == 0 && s.ValueRange != "" {
			s.Values = readRange(f, s.ValueRange)
		}
		if s.Name == "" && s.NameRange != "" {
			if names := readRange(f, s.NameRange); len(names) > 0 {
				s.Name = names[0]
			}
		}
	}

	if len(chart.Categories) == 0 {
		for _, s := range chart.Series {
			if s.CategoryRange == "" {
				continue
			}
			if cats := readRange(f, s.CategoryRange); len(cats) > 0 {
				chart.Categories = cats
				break
			}
		}
	}
	return nil
}

// readRange returns the formatted values of a reference, row by row, up to
// maxRangeCells of them. Unresolvable references yield nil.
func readRange(f *excelize.File, ref string) []string {
	rng, err := parseReference(ref)
	if err != nil {
		return nil
	}
	if rng.Sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil
		}
		rng.Sheet = sheets[0]
	}

	var values []string
rows:
	for row := rng.R1; row <= rng.R2; row++ {
		for col := rng.C1; col <= rng.C2; col++ {
			if len(values) == maxRangeCells {
				break rows
			}
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil
			}
			v, err := f.GetCellValue(rng.Sheet, cell)
			if err != nil {
				return nil
			}
			values = append(values, v)
		}
	}
	return values
}

// parseReference parses a reference string.
// Format: 'Sheet Name'!$A$1:$D$10, Sheet1!$B$2 or $B$2:$B$5
func parseReference(ref string) (cellRange, error) {
	var rng cellRange

	rangeStr := strings.TrimSpace(ref)
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		sheet := rangeStr[:idx]
		rangeStr = rangeStr[idx+1:]
		if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
			sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
		}
		rng.Sheet = sheet
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 {
		return rng, fmt.Errorf("invalid reference %q", ref)
	}

	var err error
	rng.C1, rng.R1, err = excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return rng, err
	}
	rng.C2, rng.R2 = rng.C1, rng.R1
	if len(parts) == 2 {
		rng.C2, rng.R2, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return rng, err
		}
	}
	if rng.C2 < rng.C1 {
		rng.C1, rng.C2 = rng.C2, rng.C1
	}
	if rng.R2 < rng.R1 {
		rng.R1, rng.R2 = rng.R2, rng.R1
	}
	return rng, nil
}
