package slidemd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/content"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/markdown"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/metadata"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/order"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/parser"
)

// FallbackHeader precedes markdown produced by the fallback converter.
const FallbackHeader = "\n<!-- Converted using MarkItDown fallback - XML not available -->\n"

// Extract extracts structured slide content from a PowerPoint file.
func Extract(path string, opts Options) (*models.PresentationData, error) {
	pres, err := open(path, opts.logger())
	if err != nil {
		return nil, err
	}
	return ExtractPresentation(pres, opts)
}

// Open parses the file into the document model. Every failure is a
// *DocumentOpenError.
func Open(path string) (*models.Presentation, error) {
	return open(path, nil)
}

func open(path string, logger *slog.Logger) (*models.Presentation, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DocumentOpenError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &DocumentOpenError{Path: path, Err: err}
	}

	pres, err := parser.Open(path, parser.WithLogger(logger))
	if err != nil {
		return nil, &DocumentOpenError{Path: path, Err: err}
	}
	return pres, nil
}

// ExtractPresentation resolves reading order and extracts content blocks for
// every slide of an opened presentation.
func ExtractPresentation(pres *models.Presentation, opts Options) (*models.PresentationData, error) {
	logger := opts.logger()
	resolver := order.New(opts.Order, logger)
	extractor := content.New(logger)

	rec := models.PresentationRecord{TotalSlides: len(pres.Slides)}
	for i, slide := range pres.Slides {
		if slide == nil {
			return nil, NewStructureExtractionError(i+1, "order", errors.New("missing slide"))
		}
		sr, err := extractSlide(resolver, extractor, slide)
		if err != nil {
			return nil, err
		}
		logger.Debug("slide extracted",
			slog.Int("slide", sr.SlideNumber),
			slog.Int("blocks", len(sr.Blocks)),
			slog.String("method", sr.ExtractionMethod))
		rec.Slides = append(rec.Slides, sr)
	}

	return &models.PresentationData{
		FileName: pres.Metadata.Filename,
		Metadata: pres.Metadata,
		Record:   rec,
	}, nil
}

func extractSlide(resolver *order.Resolver, extractor *content.Extractor, slide *models.Slide) (sr models.SlideRecord, err error) {
	component := "order"
	defer func() {
		if r := recover(); r != nil {
			err = NewStructureExtractionError(slide.Number, component, fmt.Errorf("panic: %v", r))
		}
	}()

	entries := resolver.Resolve(slide)
	component = "content"
	blocks := extractor.ExtractSlide(slide, entries)

	return models.SlideRecord{
		SlideNumber:      slide.Number,
		Blocks:           blocks,
		ExtractionMethod: resolver.LastMethod(),
	}, nil
}

// Convert converts a PowerPoint file to markdown.
func Convert(path string, opts Options) (string, error) {
	return ConvertContext(context.Background(), path, opts)
}

// ConvertContext converts a PowerPoint file to markdown. When the document
// cannot be opened and opts.Fallback is set, the fallback output is returned
// behind FallbackHeader. Extraction faults never use the fallback.
func ConvertContext(ctx context.Context, path string, opts Options) (string, error) {
	logger := opts.logger()

	data, err := Extract(path, opts)
	if err != nil {
		var openErr *DocumentOpenError
		if !errors.As(err, &openErr) || opts.Fallback == nil || errors.Is(err, ErrFileNotFound) {
			return "", err
		}

		logger.Warn("structured extraction unavailable, using fallback",
			slog.String("path", path),
			slog.String("error", err.Error()))
		md, ferr := opts.Fallback.Convert(ctx, path)
		if ferr != nil {
			return "", fmt.Errorf("fallback conversion failed: %w (after %w)", ferr, err)
		}
		return FallbackHeader + md, nil
	}

	return Render(data, opts), nil
}

// ConvertFile converts a PowerPoint file and writes the markdown to outPath.
func ConvertFile(path, outPath string, opts Options) error {
	md, err := Convert(path, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

// Render renders extracted data to markdown, with the metadata header unless
// disabled in opts.
func Render(data *models.PresentationData, opts Options) string {
	md := markdown.Render(data.Record)
	if opts.ShouldIncludeMetadata() {
		md = metadata.Wrap(md, data.Metadata)
	}
	return md
}
