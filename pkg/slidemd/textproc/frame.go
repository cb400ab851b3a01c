package textproc

import (
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

// ExtractTextFrame builds a text block from the shape's paragraphs. It returns
// nil when the shape has no text frame or every paragraph is blank.
func ExtractTextFrame(shape *models.Shape) *models.TextBlock {
	if shape == nil || shape.Text == nil || len(shape.Text.Paragraphs) == 0 {
		return nil
	}

	block := &models.TextBlock{ShapeHyperlink: ShapeHyperlink(shape)}
	for _, p := range shape.Text.Paragraphs {
		if record, ok := ProcessParagraph(p); ok {
			block.Paragraphs = append(block.Paragraphs, record)
		}
	}
	if len(block.Paragraphs) == 0 {
		return nil
	}
	return block
}

// ExtractPlainText builds a single-paragraph block from a shape that only
// exposes flat text.
func ExtractPlainText(shape *models.Shape) *models.TextBlock {
	if shape == nil {
		return nil
	}
	text := shape.PlainText
	if text == "" {
		text = shape.TextContent()
	}
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return nil
	}

	n := len([]rune(stripped))
	return &models.TextBlock{
		Paragraphs: []models.ParagraphRecord{{
			RawText:       text,
			CleanText:     stripped,
			FormattedRuns: []models.FormattedRun{{Text: text}},
			Hints: models.Hints{
				BulletLevel:   -1,
				ShortText:     n < 100,
				AllCaps:       IsAllCaps(stripped),
				LikelyHeading: n > 0 && n < 80,
			},
		}},
		ShapeHyperlink: ShapeHyperlink(shape),
	}
}

// ShapeHyperlink returns the normalized click target of the whole shape.
func ShapeHyperlink(shape *models.Shape) string {
	if shape == nil {
		return ""
	}
	return FixURL(shape.Hyperlink)
}
