// Package models defines data structures for presentation extraction.
package models

import "strings"

// ShapeKind is the resolved variant of a slide shape.
type ShapeKind int

const (
	// KindAutoShape is a plain shape (sp), usually a text box or placeholder.
	KindAutoShape ShapeKind = iota
	// KindGroup is a group shape (grpSp) holding child shapes.
	KindGroup
	// KindPicture is a picture (pic).
	KindPicture
	// KindChart is a graphic frame holding a chart.
	KindChart
	// KindTable is a graphic frame holding a table.
	KindTable
	// KindConnector is a connector or line (cxnSp).
	KindConnector
	// KindGraphicFrame is any other graphic frame (SmartArt, OLE objects).
	KindGraphicFrame
)

var kindNames = map[ShapeKind]string{
	KindAutoShape:    "auto_shape",
	KindGroup:        "group",
	KindPicture:      "picture",
	KindChart:        "chart",
	KindTable:        "table",
	KindConnector:    "connector",
	KindGraphicFrame: "graphic_frame",
}

func (k ShapeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Shape is one visual element on a slide.
type Shape struct {
	// Handle is the arena index of the shape within its slide.
	Handle int `json:"handle"`
	// XMLID is the cNvPr id attribute from the slide markup.
	XMLID string `json:"xml_id,omitempty"`
	// Name is the display name from cNvPr.
	Name string `json:"name"`
	// Kind is the resolved shape variant.
	Kind ShapeKind `json:"kind"`
	// Geometry is the preset geometry name (e.g. rect, ellipse), if any.
	Geometry string `json:"geometry,omitempty"`
	// Text is the paragraph/run structure of the shape's text body.
	Text *TextFrame `json:"text,omitempty"`
	// PlainText is the flat text of a shape whose text body could not be structured.
	PlainText string `json:"plain_text,omitempty"`
	// Children holds the handles of a group's direct children in document order.
	Children []int `json:"children,omitempty"`
	// Table holds cell text for table frames.
	Table *Table `json:"table,omitempty"`
	// Chart holds chart data for chart frames.
	Chart *Chart `json:"chart,omitempty"`
	// AltText is the accessibility description of a picture.
	AltText string `json:"alt_text,omitempty"`
	// Hyperlink is the raw click-action target attached to the whole shape.
	Hyperlink string `json:"hyperlink,omitempty"`
	// Markup is the raw XML of the shape element.
	Markup []byte `json:"-"`
}

// IsGroup reports whether the shape is a group.
func (s *Shape) IsGroup() bool {
	return s.Kind == KindGroup
}

// TextContent returns the shape's full text, paragraphs joined by newlines.
func (s *Shape) TextContent() string {
	if s.Text != nil {
		parts := make([]string, len(s.Text.Paragraphs))
		for i, p := range s.Text.Paragraphs {
			parts[i] = p.Text()
		}
		return strings.Join(parts, "\n")
	}
	return s.PlainText
}

// HasText reports whether the shape carries any non-whitespace text.
func (s *Shape) HasText() bool {
	return strings.TrimSpace(s.TextContent()) != ""
}

// HasTable reports whether the shape is a table frame with data.
func (s *Shape) HasTable() bool {
	return s.Kind == KindTable && s.Table != nil
}

// HasChart reports whether the shape is a chart frame with data.
func (s *Shape) HasChart() bool {
	return s.Kind == KindChart && s.Chart != nil
}

// Table represents the cell text of a table frame.
type Table struct {
	// Rows holds cell text row by row.
	Rows [][]string `json:"rows"`
}
