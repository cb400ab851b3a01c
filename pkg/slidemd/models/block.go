package models

// BlockType identifies the variant held by a ContentBlock.
type BlockType string

const (
	BlockText  BlockType = "text"
	BlockTable BlockType = "table"
	BlockImage BlockType = "image"
	BlockChart BlockType = "chart"
	BlockGroup BlockType = "group"
	// BlockShape is a content-less shape; only rendered inside groups.
	BlockShape BlockType = "shape"
)

// ContentBlock is a typed unit of slide content. Exactly one of the variant
// pointers matching Type is non-nil.
type ContentBlock struct {
	Type  BlockType   `json:"type" yaml:"type"`
	Text  *TextBlock  `json:"text,omitempty" yaml:"text,omitempty"`
	Table *TableBlock `json:"table,omitempty" yaml:"table,omitempty"`
	Image *ImageBlock `json:"image,omitempty" yaml:"image,omitempty"`
	Chart *ChartBlock `json:"chart,omitempty" yaml:"chart,omitempty"`
	Group *GroupBlock `json:"group,omitempty" yaml:"group,omitempty"`
	Shape *ShapeBlock `json:"shape,omitempty" yaml:"shape,omitempty"`
}

// TextBlock holds the paragraphs of one text-bearing shape.
type TextBlock struct {
	Role           Role              `json:"semantic_role" yaml:"semantic_role"`
	Paragraphs     []ParagraphRecord `json:"paragraphs" yaml:"paragraphs"`
	ShapeHyperlink string            `json:"shape_hyperlink,omitempty" yaml:"shape_hyperlink,omitempty"`
}

// TableBlock holds table cell text.
type TableBlock struct {
	Rows [][]string `json:"data" yaml:"data"`
}

// ImageBlock holds a picture reference.
type ImageBlock struct {
	AltText   string `json:"alt_text" yaml:"alt_text"`
	Hyperlink string `json:"hyperlink,omitempty" yaml:"hyperlink,omitempty"`
}

// ChartSeriesData is one named series of a chart block.
type ChartSeriesData struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// ChartBlock holds chart data.
type ChartBlock struct {
	Title      string            `json:"title" yaml:"title"`
	ChartType  string            `json:"chart_type" yaml:"chart_type"`
	Categories []string          `json:"categories,omitempty" yaml:"categories,omitempty"`
	Series     []ChartSeriesData `json:"series,omitempty" yaml:"series,omitempty"`
	Hyperlink  string            `json:"hyperlink,omitempty" yaml:"hyperlink,omitempty"`
}

// GroupBlock holds the blocks extracted from a group's children.
type GroupBlock struct {
	Blocks    []ContentBlock `json:"extracted_blocks" yaml:"extracted_blocks"`
	Hyperlink string         `json:"hyperlink,omitempty" yaml:"hyperlink,omitempty"`
}

// ShapeBlock stands in for a shape with no extractable content.
type ShapeBlock struct {
	Subtype string `json:"shape_subtype" yaml:"shape_subtype"`
}

// SlideRecord holds the ordered content blocks of one slide.
type SlideRecord struct {
	SlideNumber      int            `json:"slide_number" yaml:"slide_number"`
	Blocks           []ContentBlock `json:"content_blocks" yaml:"content_blocks"`
	ExtractionMethod string         `json:"extraction_method" yaml:"extraction_method"`
}

// PresentationRecord holds the slide records of a whole deck.
type PresentationRecord struct {
	TotalSlides int           `json:"total_slides" yaml:"total_slides"`
	Slides      []SlideRecord `json:"slides" yaml:"slides"`
}

// PresentationData is the extraction result returned to callers.
type PresentationData struct {
	// FileName is the input file name (no path).
	FileName string             `json:"file_name" yaml:"file_name"`
	Metadata Metadata           `json:"metadata" yaml:"metadata"`
	Record   PresentationRecord `json:"record" yaml:"record"`
}
