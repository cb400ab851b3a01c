package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/slidemd-go/internal/pptxtest"
	"github.com/ukaji3/slidemd-go/pkg/slidemd/models"
)

func readDeck(t *testing.T, deck pptxtest.Deck) (*models.Presentation, error) {
	t.Helper()
	data, err := deck.Bytes()
	require.NoError(t, err)
	return Read(bytes.NewReader(data), int64(len(data)))
}

func TestReadShapeTree(t *testing.T) {
	deck := pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextShape(2, "Title 1", pptxtest.Para("Welcome")) +
			pptxtest.TextShape(3, "Content Placeholder 2",
				pptxtest.BulletPara("Item one", 0),
				pptxtest.BulletPara("Sub item", 1),
				`<a:p>`+pptxtest.Run("Bold ", `b="1"`)+pptxtest.LinkRun("Docs", "rId2")+`</a:p>`) +
			pptxtest.Picture(4, "Picture 3", "Sales photo") +
			pptxtest.Group(5, "Group 4",
				pptxtest.AutoShape(6, "Rectangle 5", "rect"),
				pptxtest.TextShape(7, "TextBox 6", pptxtest.Para("Inside"))) +
			pptxtest.Connector(8, "Straight Connector 7") +
			pptxtest.Table(9, "Table 8", [][]string{{"a", "b"}, {"1", "x\ny"}}) +
			pptxtest.LinkedShape(10, "TextBox 9", "rId3", pptxtest.Para("Click")),
		Rels: []pptxtest.Rel{
			{ID: "rId2", Type: pptxtest.RelHyperlink, Target: "https://example.com/docs", External: true},
			{ID: "rId3", Type: pptxtest.RelHyperlink, Target: "www.example.org", External: true},
		},
	}}}

	pres, err := readDeck(t, deck)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 1)

	slide := pres.Slides[0]
	assert.Equal(t, 1, slide.Number)
	assert.Equal(t, "ppt/slides/slide1.xml", slide.PartName)
	assert.Equal(t, []int{0, 1, 2, 3, 6, 7, 8}, slide.Top)
	require.Len(t, slide.Shapes, 9)
	assert.True(t, bytes.HasPrefix(slide.ContainerMarkup, []byte("<p:spTree>")))
	assert.True(t, bytes.HasSuffix(slide.ContainerMarkup, []byte("</p:spTree>")))

	kinds := make([]models.ShapeKind, len(slide.Shapes))
	for i, s := range slide.Shapes {
		assert.Equal(t, i, s.Handle)
		kinds[i] = s.Kind
	}
	assert.Equal(t, []models.ShapeKind{
		models.KindAutoShape, models.KindAutoShape, models.KindPicture,
		models.KindGroup, models.KindAutoShape, models.KindAutoShape,
		models.KindConnector, models.KindTable, models.KindAutoShape,
	}, kinds)

	title := slide.Shape(0)
	assert.Equal(t, "2", title.XMLID)
	assert.Equal(t, "Title 1", title.Name)
	assert.Equal(t, "rect", title.Geometry)
	assert.Equal(t, "Welcome", title.TextContent())
	assert.True(t, bytes.HasPrefix(title.Markup, []byte("<p:sp>")))

	body := slide.Shape(1)
	require.NotNil(t, body.Text)
	require.Len(t, body.Text.Paragraphs, 3)
	first := body.Text.Paragraphs[0]
	require.NotNil(t, first.Level)
	assert.Equal(t, 0, *first.Level)
	assert.Contains(t, string(first.Markup), "buChar")
	require.NotNil(t, body.Text.Paragraphs[1].Level)
	assert.Equal(t, 1, *body.Text.Paragraphs[1].Level)
	// a paragraph without a:pPr lvl sits at the schema default
	require.NotNil(t, body.Text.Paragraphs[2].Level)
	assert.Equal(t, 0, *body.Text.Paragraphs[2].Level)
	require.NotNil(t, title.Text.Paragraphs[0].Level)
	assert.Equal(t, 0, *title.Text.Paragraphs[0].Level)
	runs := body.Text.Paragraphs[2].Runs
	require.Len(t, runs, 2)
	assert.Equal(t, models.Run{Text: "Bold ", Bold: true}, runs[0])
	assert.Equal(t, models.Run{Text: "Docs", Hyperlink: "https://example.com/docs"}, runs[1])

	pic := slide.Shape(2)
	assert.Equal(t, "Sales photo", pic.AltText)

	group := slide.Shape(3)
	assert.Equal(t, "Group 4", group.Name)
	assert.Equal(t, "5", group.XMLID)
	assert.Equal(t, []int{4, 5}, group.Children)
	assert.False(t, slide.Shape(4).HasText())
	assert.Equal(t, "Inside", slide.Shape(5).TextContent())

	table := slide.Shape(7)
	require.True(t, table.HasTable())
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x y"}}, table.Table.Rows)

	assert.Equal(t, "www.example.org", slide.Shape(8).Hyperlink)
}

func TestReadLooseText(t *testing.T) {
	equation := `<a:p><m:oMathPara xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math">` +
		`<m:oMath><m:r><m:t>x=1</m:t></m:r></m:oMath></m:oMathPara></a:p>`
	deck := pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextShape(2, "Equation", equation),
	}}}

	pres, err := readDeck(t, deck)
	require.NoError(t, err)

	shape := pres.Slides[0].Shape(0)
	assert.Nil(t, shape.Text)
	assert.Equal(t, "x=1", shape.PlainText)
	assert.Equal(t, "x=1", shape.TextContent())
}

func TestReadSlideOrder(t *testing.T) {
	deck := pptxtest.Deck{Slides: []pptxtest.Slide{
		{Shapes: pptxtest.TextShape(2, "Title 1", pptxtest.Para("One"))},
		{Shapes: pptxtest.TextShape(2, "Title 1", pptxtest.Para("Two"))},
		{Shapes: ""},
	}}

	pres, err := readDeck(t, deck)
	require.NoError(t, err)
	require.Len(t, pres.Slides, 3)
	assert.Equal(t, "One", pres.Slides[0].Shape(0).TextContent())
	assert.Equal(t, "Two", pres.Slides[1].Shape(0).TextContent())
	assert.Empty(t, pres.Slides[2].Top)
	assert.Equal(t, 3, pres.Slides[2].Number)
	assert.Equal(t, 3, pres.Metadata.SlideCount)
}

func TestReadErrors(t *testing.T) {
	noPresentation := func() []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("word/document.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("<w:document/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		return buf.Bytes()
	}

	deckBytes := func(deck pptxtest.Deck) []byte {
		data, err := deck.Bytes()
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		wantErr error
		part    bool
	}{
		{
			name:    "not a package",
			data:    []byte("this is plain text"),
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "empty input",
			data:    nil,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "truncated compound file",
			data:    append(append([]byte{}, cfbSignature...), make([]byte, 32)...),
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "zip without presentation part",
			data:    noPresentation(),
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "no slides",
			data:    deckBytes(pptxtest.Deck{}),
			wantErr: ErrNoSlides,
		},
		{
			name: "malformed slide",
			data: deckBytes(pptxtest.Deck{Slides: []pptxtest.Slide{{
				Shapes: `<p:sp><p:nvSpPr>`,
			}}}),
			part: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tt.data), int64(len(tt.data)))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.part {
				var partErr *PartError
				require.True(t, errors.As(err, &partErr))
				assert.Equal(t, "ppt/slides/slide1.xml", partErr.Part)
			}
		})
	}
}

func TestOpenSetsFileInfo(t *testing.T) {
	deck := pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextShape(2, "Title 1", pptxtest.Para("Hello")),
	}}}
	path := deck.Write(t, "hello.pptx")

	pres, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "hello.pptx", pres.Metadata.Filename)
	assert.Positive(t, pres.Metadata.FileSize)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("does-not-exist.pptx")
	require.Error(t, err)
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target string
		base   string
		want   string
	}{
		{"slides/slide1.xml", "ppt", "ppt/slides/slide1.xml"},
		{"../charts/chart2.xml", "ppt/slides", "ppt/charts/chart2.xml"},
		{"/ppt/media/image1.png", "ppt/slides", "ppt/media/image1.png"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveRelativePath(tt.target, tt.base))
		})
	}
}

func TestRelsPathFor(t *testing.T) {
	assert.Equal(t, "ppt/slides/_rels/slide1.xml.rels", relsPathFor("ppt/slides/slide1.xml"))
	assert.Equal(t, "_rels/.rels", relsPathFor(""))
}

func TestReadNonUTF8Part(t *testing.T) {
	utf8Slide := pptxtest.SlideXML(pptxtest.TextShape(2, "Title 1", pptxtest.Para("cafX")))
	latin1Slide := `<?xml version="1.0" encoding="ISO-8859-1"?>` + strings.Replace(
		strings.TrimPrefix(utf8Slide, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`),
		"cafX", "caf\xe9", 1)

	data, err := pptxtest.Deck{Slides: []pptxtest.Slide{{}}}.Bytes()
	require.NoError(t, err)

	// Rewrite the package with the Latin-1 slide part.
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		w, err := zw.Create(f.Name)
		require.NoError(t, err)
		if f.Name == "ppt/slides/slide1.xml" {
			_, err = w.Write([]byte(latin1Slide))
			require.NoError(t, err)
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		_, err = io.Copy(w, rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
	}
	require.NoError(t, zw.Close())

	pres, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Equal(t, "café", pres.Slides[0].Shape(0).TextContent())
}
