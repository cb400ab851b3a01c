// Package content turns ordered slide shapes into typed content blocks.
package content

import (
	"log/slog"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/order"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/textproc"
)

// Extractor dispatches shapes by kind into text, table, image, chart and
// group blocks.
type Extractor struct {
	logger *slog.Logger
}

// New creates an Extractor. A nil logger discards log output.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// ExtractSlide extracts the blocks of a slide from its reading order entries,
// keeping their order. Shapes without content produce no block.
func (e *Extractor) ExtractSlide(slide *models.Slide, entries []models.ReadingOrderEntry) []models.ContentBlock {
	blocks := make([]models.ContentBlock, 0, len(entries))
	for _, entry := range entries {
		block, ok := e.Extract(slide, entry.Shape, entry.Role)
		if !ok {
			e.logger.Debug("shape has no content",
				slog.Int("slide", slide.Number),
				slog.String("shape", entry.Shape.Name),
				slog.String("kind", entry.Shape.Kind.String()))
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Extract builds the block for a single shape. It reports false when the
// shape carries nothing renderable.
func (e *Extractor) Extract(slide *models.Slide, shape *models.Shape, role models.Role) (models.ContentBlock, bool) {
	if shape == nil {
		return models.ContentBlock{}, false
	}

	switch shape.Kind {
	case models.KindGroup:
		return e.group(slide, shape)
	case models.KindPicture:
		return image(shape), true
	case models.KindTable:
		return table(shape)
	case models.KindChart:
		return chart(shape)
	case models.KindConnector:
		return models.ContentBlock{}, false
	}
	return text(shape, role)
}

// group extracts every leaf below a group. Nested groups are flattened, and
// leaves without content become shape placeholders.
func (e *Extractor) group(slide *models.Slide, shape *models.Shape) (models.ContentBlock, bool) {
	g := &models.GroupBlock{Hyperlink: textproc.ShapeHyperlink(shape)}

	for _, h := range order.Flatten(slide, shape.Children) {
		child := slide.Shape(h)
		if block, ok := e.Extract(slide, child, order.Classify(child)); ok {
			g.Blocks = append(g.Blocks, block)
			continue
		}
		if child.Kind == models.KindAutoShape {
			g.Blocks = append(g.Blocks, models.ContentBlock{
				Type:  models.BlockShape,
				Shape: &models.ShapeBlock{Subtype: subtype(child)},
			})
		}
	}

	if len(g.Blocks) == 0 {
		return models.ContentBlock{}, false
	}
	return models.ContentBlock{Type: models.BlockGroup, Group: g}, true
}

func text(shape *models.Shape, role models.Role) (models.ContentBlock, bool) {
	block := textproc.ExtractTextFrame(shape)
	if block == nil && shape.PlainText != "" {
		block = textproc.ExtractPlainText(shape)
	}
	if block == nil {
		return models.ContentBlock{}, false
	}
	block.Role = role
	return models.ContentBlock{Type: models.BlockText, Text: block}, true
}

func image(shape *models.Shape) models.ContentBlock {
	alt := shape.AltText
	if alt == "" {
		alt = shape.Name
	}
	return models.ContentBlock{
		Type: models.BlockImage,
		Image: &models.ImageBlock{
			AltText:   alt,
			Hyperlink: textproc.ShapeHyperlink(shape),
		},
	}
}

func table(shape *models.Shape) (models.ContentBlock, bool) {
	if !shape.HasTable() || len(shape.Table.Rows) == 0 {
		return models.ContentBlock{}, false
	}
	return models.ContentBlock{
		Type:  models.BlockTable,
		Table: &models.TableBlock{Rows: shape.Table.Rows},
	}, true
}

func chart(shape *models.Shape) (models.ContentBlock, bool) {
	if !shape.HasChart() {
		return models.ContentBlock{}, false
	}
	c := shape.Chart

	block := &models.ChartBlock{
		Title:      c.Title,
		ChartType:  c.ChartType,
		Categories: c.Categories,
		Hyperlink:  textproc.ShapeHyperlink(shape),
	}
	for _, s := range c.Series {
		block.Series = append(block.Series, models.ChartSeriesData{Name: s.Name, Values: s.Values})
	}
	return models.ContentBlock{Type: models.BlockChart, Chart: block}, true
}

func subtype(shape *models.Shape) string {
	if shape.Geometry != "" {
		return shape.Geometry
	}
	return "unknown"
}
