// Package metadata formats presentation properties as a markdown header
// comment and scores their completeness.
package metadata

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

const bytesPerMB = 1024 * 1024

// Wrap prepends the metadata header comment to markdown.
func Wrap(markdown string, meta models.Metadata) string {
	return Header(meta) + markdown
}

// Header returns the metadata comment block. Empty properties are omitted;
// filename and slide count are always present.
func Header(meta models.Metadata) string {
	var b strings.Builder
	b.WriteString("\n<!-- POWERPOINT METADATA:\n")

	line := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	line("Document Title", meta.Title)
	line("Author", meta.Author)
	line("Subject", meta.Subject)
	line("Keywords", meta.Keywords)
	line("Category", meta.Category)
	line("Document Comments", meta.Comments)
	line("Content Status", meta.ContentStatus)
	line("Language", meta.Language)
	line("Version", meta.Version)

	line("Created Date", FormatDate(meta.Created))
	line("Last Modified", FormatDate(meta.Modified))
	line("Last Modified By", meta.LastModifiedBy)
	line("Last Printed", FormatDate(meta.LastPrinted))

	filename := meta.Filename
	if filename == "" {
		filename = "unknown"
	}
	fmt.Fprintf(&b, "Filename: %s\n", filename)
	if meta.FileSize > 0 {
		fmt.Fprintf(&b, "File Size: %.2f MB\n", float64(meta.FileSize)/bytesPerMB)
	}
	line("Created With", meta.Application)
	line("Company", meta.Company)

	fmt.Fprintf(&b, "Slide Count: %d\n", meta.SlideCount)
	if meta.SlideMasterCount > 0 {
		fmt.Fprintf(&b, "Slide Masters: %d\n", meta.SlideMasterCount)
	}
	line("Layout Types", meta.LayoutTypes)

	b.WriteString("-->\n")
	return b.String()
}

// FormatDate renders a W3CDTF property value as "2006-01-02 15:04:05" in UTC.
// Values that do not parse are returned unchanged.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.DateTime)
		}
	}
	return value
}

// Summary holds the key indicators of a presentation's metadata.
type Summary struct {
	HasTitle     bool     `json:"has_title" yaml:"has_title"`
	HasAuthor    bool     `json:"has_author" yaml:"has_author"`
	SlideCount   int      `json:"slide_count" yaml:"slide_count"`
	FileSizeMB   *float64 `json:"file_size_mb" yaml:"file_size_mb"`
	CreationDate string   `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	LastModified string   `json:"last_modified,omitempty" yaml:"last_modified,omitempty"`
	HasKeywords  bool     `json:"has_keywords" yaml:"has_keywords"`
	Application  string   `json:"application" yaml:"application"`
}

// Summarize returns the key indicators of meta.
func Summarize(meta models.Metadata) Summary {
	s := Summary{
		HasTitle:     meta.Title != "",
		HasAuthor:    meta.Author != "",
		SlideCount:   meta.SlideCount,
		CreationDate: FormatDate(meta.Created),
		LastModified: FormatDate(meta.Modified),
		HasKeywords:  meta.Keywords != "",
		Application:  meta.Application,
	}
	if meta.FileSize > 0 {
		mb := math.Round(float64(meta.FileSize)/bytesPerMB*100) / 100
		s.FileSizeMB = &mb
	}
	return s
}

// Validation scores metadata completeness.
type Validation struct {
	// CompletenessScore is the share of title, author and slide count present, 0-100.
	CompletenessScore float64  `json:"completeness_score" yaml:"completeness_score"`
	Issues            []string `json:"issues" yaml:"issues"`
	Recommendations   []string `json:"recommendations" yaml:"recommendations"`
}

// Validate checks meta for the properties a well-described deck should carry.
func Validate(meta models.Metadata) Validation {
	v := Validation{Issues: []string{}, Recommendations: []string{}}

	present := 0
	for _, ok := range []bool{meta.Title != "", meta.Author != "", meta.SlideCount > 0} {
		if ok {
			present++
		}
	}
	v.CompletenessScore = float64(present) / 3 * 100

	if meta.Title == "" {
		v.Issues = append(v.Issues, "No document title")
		v.Recommendations = append(v.Recommendations, "Add a descriptive title to the presentation")
	}
	if meta.Author == "" {
		v.Issues = append(v.Issues, "No author information")
		v.Recommendations = append(v.Recommendations, "Set author information in document properties")
	}
	if meta.SlideCount == 0 {
		v.Issues = append(v.Issues, "No slides detected")
	}
	if meta.Keywords == "" {
		v.Recommendations = append(v.Recommendations, "Add keywords to improve searchability")
	}
	return v
}
