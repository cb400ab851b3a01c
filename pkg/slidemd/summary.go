package slidemd

import (
	"errors"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/order"
)

const (
	// ProcessingStructured is reported when the document parses.
	ProcessingStructured = "structured_xml_with_semantic_roles"
	// ProcessingFallback is reported when only the fallback converter can be used.
	ProcessingFallback = "markitdown_fallback"

	previewSlides = 3
)

// SlidePreview counts the roles resolved for one slide.
type SlidePreview struct {
	SlideNumber      int    `json:"slide_number" yaml:"slide_number"`
	ShapeCount       int    `json:"shape_count" yaml:"shape_count"`
	TitleShapes      int    `json:"title_shapes" yaml:"title_shapes"`
	SubtitleShapes   int    `json:"subtitle_shapes" yaml:"subtitle_shapes"`
	ContentShapes    int    `json:"content_shapes" yaml:"content_shapes"`
	HasText          bool   `json:"has_text" yaml:"has_text"`
	ExtractionMethod string `json:"extraction_method" yaml:"extraction_method"`
}

// ProcessingSummary describes how a file would be converted.
type ProcessingSummary struct {
	FilePath         string         `json:"file_path" yaml:"file_path"`
	Structured       bool           `json:"has_xml_access" yaml:"has_xml_access"`
	ProcessingMethod string         `json:"processing_method" yaml:"processing_method"`
	SlideCount       int            `json:"slide_count" yaml:"slide_count"`
	Strategy         string         `json:"extraction_method" yaml:"extraction_method"`
	SlidesPreview    []SlidePreview `json:"slides_preview,omitempty" yaml:"slides_preview,omitempty"`
	Note             string         `json:"note,omitempty" yaml:"note,omitempty"`
}

// Summary reports how path would be processed, previewing the reading order
// of the first three slides. A document that fails to open yields a fallback
// summary rather than an error; a missing file is an error.
func Summary(path string, opts Options) (*ProcessingSummary, error) {
	pres, err := open(path, opts.logger())
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, err
		}
		return &ProcessingSummary{
			FilePath:         path,
			ProcessingMethod: ProcessingFallback,
			Strategy:         ProcessingFallback,
			Note:             "XML not available - " + err.Error(),
		}, nil
	}
	return Summarize(path, pres, opts), nil
}

// Summarize builds the processing summary of an opened presentation.
func Summarize(path string, pres *models.Presentation, opts Options) *ProcessingSummary {
	resolver := order.New(opts.Order, opts.logger())
	s := &ProcessingSummary{
		FilePath:         path,
		Structured:       true,
		ProcessingMethod: ProcessingStructured,
		SlideCount:       len(pres.Slides),
		Strategy:         string(resolver.Strategy()),
	}

	for _, slide := range pres.Slides[:min(len(pres.Slides), previewSlides)] {
		entries := resolver.Resolve(slide)
		p := SlidePreview{
			SlideNumber:      slide.Number,
			ShapeCount:       len(entries),
			ExtractionMethod: resolver.LastMethod(),
		}
		for _, e := range entries {
			switch e.Role {
			case models.RoleTitle:
				p.TitleShapes++
			case models.RoleSubtitle:
				p.SubtitleShapes++
			case models.RoleContent:
				p.ContentShapes++
			}
			if e.Shape.Text != nil || e.Shape.PlainText != "" {
				p.HasText = true
			}
		}
		s.SlidesPreview = append(s.SlidesPreview, p)
	}
	return s
}
