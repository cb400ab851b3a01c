package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

func intPtr(v int) *int { return &v }

const (
	charBullet  = `<a:p><a:pPr><a:buFont typeface="Arial"/><a:buChar char="•"/></a:pPr><a:r><a:t>x</a:t></a:r></a:p>`
	levelBullet = `<a:p><a:pPr lvl="2"><a:buChar char="-"/></a:pPr><a:r><a:t>x</a:t></a:r></a:p>`
	autoNumber  = `<a:p><a:pPr><a:buAutoNum type="arabicPeriod"/></a:pPr><a:r><a:t>x</a:t></a:r></a:p>`
	plain       = `<a:p><a:r><a:t>x</a:t></a:r></a:p>`
)

func TestProcessParagraphBulletGlyph(t *testing.T) {
	p := models.Paragraph{
		Runs:   []models.Run{{Text: "• Item one"}},
		Markup: []byte(charBullet),
	}

	rec, ok := ProcessParagraph(p)
	require.True(t, ok)
	assert.Equal(t, "• Item one", rec.RawText)
	assert.Equal(t, "Item one", rec.CleanText)
	assert.True(t, rec.Hints.IsBullet)
	assert.Equal(t, 0, rec.Hints.BulletLevel)
	assert.False(t, rec.Hints.IsNumbered)
	assert.False(t, rec.Hints.HasStructuralLevel)
	assert.Nil(t, rec.Hints.StructuralLevel)
	// the clean text starts at the first offset whose trimmed remainder matches
	assert.Equal(t, []models.FormattedRun{{Text: " Item one"}}, rec.FormattedRuns)
}

func TestProcessParagraphBlank(t *testing.T) {
	_, ok := ProcessParagraph(models.Paragraph{Runs: []models.Run{{Text: "  "}, {Text: "\n"}}})
	assert.False(t, ok)

	_, ok = ProcessParagraph(models.Paragraph{})
	assert.False(t, ok)
}

func TestProcessParagraphLevels(t *testing.T) {
	tests := []struct {
		name         string
		markup       string
		level        *int
		wantLevel    int
		wantBullet   bool
		wantNumbered bool
	}{
		{"markup level wins", levelBullet, intPtr(1), 2, true, false},
		{"markup bullet uses structural level", charBullet, intPtr(1), 1, true, false},
		{"markup bullet defaults to zero", charBullet, nil, 0, true, false},
		{"structural level only", plain, intPtr(3), 3, true, false},
		{"default structural level", plain, intPtr(0), 0, true, false},
		{"nothing known", plain, nil, -1, false, false},
		{"auto number", autoNumber, nil, 0, true, true},
		{"no markup", "", nil, -1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := ProcessParagraph(models.Paragraph{
				Runs:   []models.Run{{Text: "Point"}},
				Level:  tt.level,
				Markup: []byte(tt.markup),
			})
			require.True(t, ok)
			assert.Equal(t, tt.wantLevel, rec.Hints.BulletLevel)
			assert.Equal(t, tt.wantBullet, rec.Hints.IsBullet)
			assert.Equal(t, tt.wantNumbered, rec.Hints.IsNumbered)
			assert.Equal(t, tt.level != nil, rec.Hints.HasStructuralLevel)
		})
	}
}

func TestProcessParagraphRunAlignment(t *testing.T) {
	p := models.Paragraph{
		Runs: []models.Run{
			{Text: "• "},
			{Text: "Bold", Bold: true},
			{Text: " and ", Italic: true},
			{Text: "link", Hyperlink: "www.example.com"},
		},
		Markup: []byte(charBullet),
	}

	rec, ok := ProcessParagraph(p)
	require.True(t, ok)
	assert.Equal(t, "Bold and link", rec.CleanText)
	assert.Equal(t, []models.FormattedRun{
		{Text: " "},
		{Text: "Bold", Bold: true},
		{Text: " and ", Italic: true},
		{Text: "link", Hyperlink: "https://www.example.com"},
	}, rec.FormattedRuns)
}

func TestProcessParagraphTruncatesStraddlingRun(t *testing.T) {
	p := models.Paragraph{
		Runs:   []models.Run{{Text: "→ First", Bold: true}, {Text: " second"}},
		Markup: []byte(charBullet),
	}

	rec, ok := ProcessParagraph(p)
	require.True(t, ok)
	assert.Equal(t, "First second", rec.CleanText)
	assert.Equal(t, []models.FormattedRun{
		{Text: " First", Bold: true},
		{Text: " second"},
	}, rec.FormattedRuns)
}

func TestProcessParagraphWithoutBulletKeepsRuns(t *testing.T) {
	p := models.Paragraph{
		Runs:   []models.Run{{Text: "- not a list"}, {Text: ""}},
		Markup: []byte(plain),
	}

	rec, ok := ProcessParagraph(p)
	require.True(t, ok)
	assert.Equal(t, "- not a list", rec.CleanText)
	assert.False(t, rec.Hints.IsBullet)
	assert.Equal(t, []models.FormattedRun{{Text: "- not a list"}}, rec.FormattedRuns)
}

func TestProcessParagraphDefaultLevelIsBullet(t *testing.T) {
	p := models.Paragraph{
		Runs:   []models.Run{{Text: "- not a list"}, {Text: ""}},
		Level:  intPtr(0),
		Markup: []byte(plain),
	}

	rec, ok := ProcessParagraph(p)
	require.True(t, ok)
	assert.Equal(t, "not a list", rec.CleanText)
	assert.True(t, rec.Hints.IsBullet)
	assert.Equal(t, 0, rec.Hints.BulletLevel)
	assert.True(t, rec.Hints.HasStructuralLevel)
	assert.Equal(t, []models.FormattedRun{{Text: " not a list"}}, rec.FormattedRuns)
}

func TestProcessParagraphHints(t *testing.T) {
	rec, ok := ProcessParagraph(models.Paragraph{Runs: []models.Run{{Text: "  KEY FACTS 2024 "}}})
	require.True(t, ok)
	assert.True(t, rec.Hints.AllCaps)
	assert.True(t, rec.Hints.ShortText)

	long := make([]rune, 120)
	for i := range long {
		long[i] = 'a'
	}
	rec, ok = ProcessParagraph(models.Paragraph{Runs: []models.Run{{Text: string(long)}}})
	require.True(t, ok)
	assert.False(t, rec.Hints.ShortText)
	assert.False(t, rec.Hints.AllCaps)
}

func TestStripBullet(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		wantStrip bool
	}{
		{"• Item", "Item", true},
		{"✓\tDone", "Done", true},
		{"** twice", "* twice", true},
		{"-dash", "dash", true},
		{"Plain", "Plain", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, stripped := StripBullet(tt.in)
		if got != tt.want || stripped != tt.wantStrip {
			t.Errorf("StripBullet(%q) = %q, %v, expected %q, %v", tt.in, got, stripped, tt.want, tt.wantStrip)
		}
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"HELLO", true},
		{"HELLO 123!", true},
		{"Hello", false},
		{"123", false},
		{"", false},
		{"ÉTÉ", true},
	}

	for _, tt := range tests {
		if got := IsAllCaps(tt.in); got != tt.want {
			t.Errorf("IsAllCaps(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestMarkupBulletBadLevel(t *testing.T) {
	ok, level := MarkupBullet([]byte(`<a:pPr lvl="99999999999999999999"><a:buChar char="•"/></a:pPr>`))
	assert.True(t, ok)
	assert.Nil(t, level)
}
