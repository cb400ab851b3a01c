package parser

import (
	"encoding/xml"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// parseTable parses an a:tbl element into rows of cell text.
func (sp *slideParser) parseTable() (*models.Table, error) {
	table := &models.Table{}
	var row []string

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "tr":
				row = []string{}
			case "tc":
				text, err := sp.parseCell()
				if err != nil {
					return nil, err
				}
				row = append(row, text)
				depth--
			}
		case xml.EndElement:
			depth--
			if t.Name.Local == "tr" {
				table.Rows = append(table.Rows, row)
				row = nil
			}
		}
	}
	return table, nil
}

// parseCell parses an a:tc element and returns its text with paragraphs
// joined by a space, so every row stays on one markdown line.
func (sp *slideParser) parseCell() (string, error) {
	holder := &models.Shape{}

	depth := 1
	for depth > 0 {
		token, err := sp.r.Token()
		if err != nil {
			return "", err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "txBody" {
				if err := sp.parseTextBody(holder); err != nil {
					return "", err
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return cellText(holder), nil
}

func cellText(holder *models.Shape) string {
	if holder.Text == nil {
		return strings.TrimSpace(holder.PlainText)
	}
	var parts []string
	for _, p := range holder.Text.Paragraphs {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
