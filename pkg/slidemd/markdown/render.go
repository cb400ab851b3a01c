// Package markdown renders extracted slide content as markdown.
package markdown

import (
	"fmt"
	"strings"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

const (
	// ImagePlaceholder is the target of every rendered image reference.
	ImagePlaceholder = "image"
	// DefaultChartTitle names charts without a title.
	DefaultChartTitle = "Untitled Chart"
	// DefaultChartType names charts whose type is unknown.
	DefaultChartType = "unknown"

	maxSeriesValues = 5
)

// Render converts a presentation record to markdown. Every slide starts with
// a <!-- Slide N --> marker; the marker and each block are separated by a
// blank line.
func Render(rec models.PresentationRecord) string {
	var parts []string
	for _, slide := range rec.Slides {
		parts = append(parts, slideParts(slide)...)
	}
	if len(parts) == 0 {
		return ""
	}
	return joinBlocks(parts) + "\n"
}

// RenderSlide converts a single slide record to markdown.
func RenderSlide(slide models.SlideRecord) string {
	return joinBlocks(slideParts(slide)) + "\n"
}

func slideParts(slide models.SlideRecord) []string {
	parts := []string{SlideMarker(slide.SlideNumber)}
	for _, block := range slide.Blocks {
		if md := RenderBlock(block); md != "" {
			parts = append(parts, md)
		}
	}
	return parts
}

// SlideMarker returns the comment placed before each slide.
func SlideMarker(number int) string {
	return fmt.Sprintf("<!-- Slide %d -->", number)
}

// RenderBlock renders one top-level block. Shape placeholders only appear
// inside groups and render empty here.
func RenderBlock(block models.ContentBlock) string {
	switch block.Type {
	case models.BlockText:
		return RenderText(block.Text)
	case models.BlockTable:
		return RenderTable(block.Table)
	case models.BlockImage:
		return RenderImage(block.Image)
	case models.BlockChart:
		return RenderChart(block.Chart)
	case models.BlockGroup:
		return RenderGroup(block.Group)
	}
	return ""
}

// RenderText renders a text block. Titles become level-1 headings, subtitles
// level-2 headings and everything else goes through RenderParagraph. A shape
// hyperlink wraps the whole result.
func RenderText(block *models.TextBlock) string {
	if block == nil {
		return ""
	}

	var lines []string
	for _, p := range block.Paragraphs {
		if p.CleanText == "" {
			continue
		}
		var line string
		switch block.Role {
		case models.RoleTitle:
			line = "# " + FormatRuns(p.FormattedRuns, p.CleanText)
		case models.RoleSubtitle:
			line = "## " + FormatRuns(p.FormattedRuns, p.CleanText)
		default:
			line = RenderParagraph(p)
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	result := strings.Join(lines, "\n")
	return wrapLink(result, block.ShapeHyperlink)
}

// RenderParagraph renders a body paragraph as a bullet, a numbered item, a
// heading or a plain line.
func RenderParagraph(p models.ParagraphRecord) string {
	if p.CleanText == "" {
		return ""
	}
	text := FormatRuns(p.FormattedRuns, p.CleanText)

	switch h := p.Hints; {
	case h.IsBullet:
		level := max(h.BulletLevel, 0)
		return strings.Repeat("  ", level) + "- " + text
	case h.IsNumbered:
		return "1. " + text
	case h.LikelyHeading:
		if h.AllCaps || len([]rune(p.CleanText)) < 30 {
			return "## " + text
		}
		return "### " + text
	}
	return text
}

// FormatRuns applies run formatting to clean text. Runs sharing one hyperlink
// wrap the clean text once, with emphasis shared by all of them inside the
// link. Runs without links that are uniformly bold, italic or plain wrap the
// clean text once. Any other mix renders every run on its own.
func FormatRuns(runs []models.FormattedRun, clean string) string {
	var textRuns []models.FormattedRun
	for _, r := range runs {
		if r.Text != "" {
			textRuns = append(textRuns, r)
		}
	}
	if len(textRuns) == 0 {
		return clean
	}

	allBold, allItalic, anyFormat := true, true, false
	link, sameLink, anyLink := textRuns[0].Hyperlink, true, false
	for _, r := range textRuns {
		allBold = allBold && r.Bold
		allItalic = allItalic && r.Italic
		anyFormat = anyFormat || r.Bold || r.Italic
		anyLink = anyLink || r.Hyperlink != ""
		sameLink = sameLink && r.Hyperlink == link
	}

	switch {
	case sameLink && link != "":
		return wrapLink(emphasize(clean, allBold, allItalic), link)
	case !anyLink && (allBold || allItalic || !anyFormat):
		return emphasize(clean, allBold, allItalic)
	}

	var b strings.Builder
	for _, r := range textRuns {
		b.WriteString(wrapLink(emphasize(r.Text, r.Bold, r.Italic), r.Hyperlink))
	}
	return b.String()
}

// RenderTable renders rows as a pipe table with a separator after the first
// row. Pipes in cell text are escaped.
func RenderTable(block *models.TableBlock) string {
	if block == nil || len(block.Rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, row := range block.Rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = strings.ReplaceAll(cell, "|", `\|`)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 {
			sep := make([]string, len(row))
			for j := range sep {
				sep[j] = "---"
			}
			b.WriteString("| " + strings.Join(sep, " | ") + " |\n")
		}
	}
	return b.String()
}

// RenderImage renders an image reference with the alt text as caption.
func RenderImage(block *models.ImageBlock) string {
	if block == nil {
		return ""
	}
	return wrapLink(fmt.Sprintf("![%s](%s)", block.AltText, ImagePlaceholder), block.Hyperlink)
}

// RenderChart renders the chart title and type, plus the first values of each
// named series when both categories and series are present.
func RenderChart(block *models.ChartBlock) string {
	if block == nil {
		return ""
	}
	title := block.Title
	if title == "" {
		title = DefaultChartTitle
	}
	chartType := block.ChartType
	if chartType == "" {
		chartType = DefaultChartType
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Chart: %s**\n", title)
	fmt.Fprintf(&b, "*Chart Type: %s*\n\n", chartType)

	if len(block.Categories) > 0 && len(block.Series) > 0 {
		b.WriteString("Data:\n")
		for _, s := range block.Series {
			if s.Name == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s: ", s.Name)
			if len(s.Values) > 0 {
				b.WriteString(strings.Join(s.Values[:min(len(s.Values), maxSeriesValues)], ", "))
				if len(s.Values) > maxSeriesValues {
					b.WriteString("...")
				}
			}
			b.WriteString("\n")
		}
	}
	return wrapLink(b.String(), block.Hyperlink)
}

// RenderGroup renders the blocks extracted from a group's children. Children
// without renderable content appear as [Shape: subtype] placeholders.
func RenderGroup(block *models.GroupBlock) string {
	if block == nil {
		return ""
	}

	var parts []string
	for _, child := range block.Blocks {
		var md string
		switch child.Type {
		case models.BlockText, models.BlockTable, models.BlockImage, models.BlockChart:
			md = RenderBlock(child)
		default:
			md = fmt.Sprintf("[Shape: %s]", shapeSubtype(child))
		}
		if md != "" {
			parts = append(parts, md)
		}
	}
	return wrapLink(joinBlocks(parts), block.Hyperlink)
}

func shapeSubtype(block models.ContentBlock) string {
	if block.Shape != nil && block.Shape.Subtype != "" {
		return block.Shape.Subtype
	}
	if block.Type != "" && block.Type != models.BlockShape {
		return string(block.Type)
	}
	return "unknown"
}

func emphasize(text string, bold, italic bool) string {
	switch {
	case bold && italic:
		return "***" + text + "***"
	case bold:
		return "**" + text + "**"
	case italic:
		return "*" + text + "*"
	}
	return text
}

// wrapLink wraps non-empty text as a markdown link when url is set.
func wrapLink(text, url string) string {
	if text == "" || url == "" {
		return text
	}
	return "[" + text + "](" + url + ")"
}

// joinBlocks joins rendered parts with a blank line, dropping the trailing
// newlines of each part.
func joinBlocks(parts []string) string {
	trimmed := make([]string, len(parts))
	for i, p := range parts {
		trimmed[i] = strings.TrimRight(p, "\n")
	}
	return strings.Join(trimmed, "\n\n")
}
