package models

import "strings"

// TextFrame is the structured text body of a shape.
type TextFrame struct {
	// Paragraphs in document order.
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Paragraph is a single a:p element.
type Paragraph struct {
	// Runs in document order. Line breaks appear as "\n" runs.
	Runs []Run `json:"runs"`
	// Level is the structural indent level (a:pPr lvl). Parsed paragraphs
	// always carry one; nil means the source exposes no level.
	Level *int `json:"level,omitempty"`
	// Markup is the raw XML of the paragraph.
	Markup []byte `json:"-"`
}

// Text returns the concatenated text of all runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Run is a span of text sharing one formatting state.
type Run struct {
	// Text is the run text.
	Text string `json:"text"`
	// Bold is true when the run properties set b.
	Bold bool `json:"bold,omitempty"`
	// Italic is true when the run properties set i.
	Italic bool `json:"italic,omitempty"`
	// Hyperlink is the raw click target of the run, if any.
	Hyperlink string `json:"hyperlink,omitempty"`
}
