// Package textproc turns slide paragraphs into structured records, reading
// bullets, numbering and levels from the paragraph markup.
package textproc

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

var (
	levelPattern = regexp.MustCompile(`lvl="(\d+)"`)

	bulletIndicators = [][]byte{[]byte("buChar"), []byte("buAutoNum"), []byte("buFont")}
	autoNumIndicator = []byte("buAutoNum")
)

// bulletGlyphs are the leading characters removed from bulleted text.
const bulletGlyphs = "•◦▪▫‣·○■□→►✓✗-*+※◆◇"

// ProcessParagraph builds the record for one paragraph. It reports false when
// the paragraph holds only whitespace.
func ProcessParagraph(p models.Paragraph) (models.ParagraphRecord, bool) {
	raw := p.Text()
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.ParagraphRecord{}, false
	}

	markupBullet, markupLevel := MarkupBullet(p.Markup)
	level := ResolveBulletLevel(markupBullet, markupLevel, p.Level)
	isBullet := level >= 0

	clean := trimmed
	stripped := false
	if isBullet {
		clean, stripped = StripBullet(trimmed)
	}

	return models.ParagraphRecord{
		RawText:       raw,
		CleanText:     clean,
		FormattedRuns: alignRuns(p.Runs, clean, stripped),
		Hints: models.Hints{
			HasStructuralLevel: p.Level != nil,
			StructuralLevel:    copyLevel(p.Level),
			BulletLevel:        level,
			IsBullet:           isBullet,
			IsNumbered:         IsNumbered(p.Markup),
			ShortText:          len([]rune(clean)) < 100,
			AllCaps:            IsAllCaps(clean),
		},
	}, true
}

// MarkupBullet reports whether the paragraph markup carries a bullet glyph,
// auto-number or bullet font indicator, and the lvl attribute found in it.
func MarkupBullet(markup []byte) (bool, *int) {
	found := false
	for _, indicator := range bulletIndicators {
		if bytes.Contains(markup, indicator) {
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}

	m := levelPattern.FindSubmatch(markup)
	if m == nil {
		return true, nil
	}
	level, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return true, nil
	}
	return true, &level
}

// IsNumbered reports whether the paragraph markup declares auto-numbering.
func IsNumbered(markup []byte) bool {
	return bytes.Contains(markup, autoNumIndicator)
}

// ResolveBulletLevel picks the bullet level: the markup level for markup
// bullets, else the structural level, else 0 for markup bullets and -1 for
// everything else.
func ResolveBulletLevel(markupBullet bool, markupLevel, structural *int) int {
	switch {
	case markupBullet && markupLevel != nil:
		return *markupLevel
	case structural != nil:
		return *structural
	case markupBullet:
		return 0
	}
	return -1
}

// StripBullet removes one leading bullet glyph and the whitespace after it.
func StripBullet(text string) (string, bool) {
	for _, glyph := range bulletGlyphs {
		if rest, ok := strings.CutPrefix(text, string(glyph)); ok {
			return strings.TrimLeftFunc(rest, unicode.IsSpace), true
		}
	}
	return text, false
}

// IsAllCaps reports whether text has at least one cased letter and no
// lowercase or titlecase letters.
func IsAllCaps(text string) bool {
	cased := false
	for _, r := range text {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}

// alignRuns converts runs to formatted runs. When a glyph was stripped, runs
// before the start of the clean text are dropped and the run straddling it
// is truncated.
func alignRuns(runs []models.Run, clean string, stripped bool) []models.FormattedRun {
	if len(runs) == 0 {
		return []models.FormattedRun{{Text: clean}}
	}

	start := 0
	if stripped {
		var full strings.Builder
		for _, r := range runs {
			full.WriteString(r.Text)
		}
		start = cleanTextStart([]rune(full.String()), clean)
	}

	formatted := make([]models.FormattedRun, 0, len(runs))
	pos := 0
	for _, r := range runs {
		text := []rune(r.Text)
		runStart, runEnd := pos, pos+len(text)
		pos = runEnd

		if runEnd <= start {
			continue
		}
		if runStart < start {
			text = text[start-runStart:]
		}
		if len(text) == 0 {
			continue
		}
		formatted = append(formatted, formatRun(r, string(text)))
	}
	return formatted
}

// cleanTextStart returns the first rune offset at which the trimmed
// remainder of full equals clean, or 0 when there is none.
func cleanTextStart(full []rune, clean string) int {
	for i := range full {
		if strings.TrimSpace(string(full[i:])) == clean {
			return i
		}
	}
	return 0
}

func formatRun(r models.Run, text string) models.FormattedRun {
	fr := models.FormattedRun{
		Text:   text,
		Bold:   r.Bold,
		Italic: r.Italic,
	}
	if r.Hyperlink != "" {
		fr.Hyperlink = FixURL(r.Hyperlink)
	}
	return fr
}

func copyLevel(level *int) *int {
	if level == nil {
		return nil
	}
	v := *level
	return &v
}
