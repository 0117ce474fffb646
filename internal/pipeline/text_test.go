package pipeline

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"
	"github.com/ppiankov/tcase/internal/extract"
	"github.com/ppiankov/tcase/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statementPDF renders one line per entry, the way UVa statements lay out samples
func statementPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.AddPage()
	doc.SetFont("Courier", "", 12)
	for _, line := range lines {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

var threeNPlusOne = []string{
	"The 3n + 1 problem",
	"Sample Input",
	"1 10",
	"100 200",
	"Sample Output",
	"1 10 20",
	"100 200 125",
}

// extractUVa runs flattened statement text through the UVa extractor
func extractUVa(t *testing.T, text string) []model.TestCase {
	t.Helper()
	p, err := extract.NewUVaExtractor(extract.Options{Strict: true}).Extract(extract.Document{
		ProblemID:       "100",
		Body:            text,
		Title:           "The 3n + 1 problem",
		TimeLimitMillis: 3000,
	})
	require.NoError(t, err)
	return p.TestCases
}

func TestNativePDF_OneLinePerRow(t *testing.T) {
	text, err := NativePDF{}.ToText(context.Background(), statementPDF(t, threeNPlusOne...))
	require.NoError(t, err)

	want := "The 3n + 1 problem\nSample Input\n1 10\n100 200\nSample Output\n1 10 20\n100 200 125\n\f"
	assert.Equal(t, want, text)
}

func TestNativePDF_FeedsUVaExtractor(t *testing.T) {
	text, err := NativePDF{}.ToText(context.Background(), statementPDF(t, threeNPlusOne...))
	require.NoError(t, err)

	assert.Equal(t, []model.TestCase{{
		Input:  "1 10\n100 200\n",
		Output: "1 10 20\n100 200 125\n",
	}}, extractUVa(t, text))
}

func TestPdftotext_FeedsUVaExtractor(t *testing.T) {
	path, err := exec.LookPath("pdftotext")
	if err != nil {
		t.Skip("pdftotext not installed")
	}

	text, err := (&Pdftotext{Path: path}).ToText(context.Background(), statementPDF(t, threeNPlusOne...))
	require.NoError(t, err)

	assert.Equal(t, []model.TestCase{{
		Input:  "1 10\n100 200\n",
		Output: "1 10 20\n100 200 125\n",
	}}, extractUVa(t, text))
}

func TestTextLines(t *testing.T) {
	glyph := func(s string, x, y, w float64) pdf.Text {
		return pdf.Text{FontSize: 10, X: x, Y: y, W: w, S: s}
	}

	tests := []struct {
		name   string
		glyphs []pdf.Text
		want   []string
	}{
		{
			name: "baseline change starts a line",
			glyphs: []pdf.Text{
				glyph("a", 10, 700, 5), glyph("b", 15, 700, 5),
				glyph("c", 10, 688, 5),
			},
			want: []string{"ab", "c"},
		},
		{
			name: "small jitter stays on the line",
			glyphs: []pdf.Text{
				glyph("x", 10, 700, 5), glyph("2", 15, 702, 5),
			},
			want: []string{"x2"},
		},
		{
			name: "positioned runs get a space",
			glyphs: []pdf.Text{
				glyph("3", 10, 700, 5), glyph("4", 25, 700, 5),
			},
			want: []string{"3 4"},
		},
		{
			name: "explicit space is not doubled",
			glyphs: []pdf.Text{
				glyph("3", 10, 700, 5), glyph(" ", 15, 700, 3), glyph("4", 25, 700, 5),
			},
			want: []string{"3 4"},
		},
		{
			name: "glyphs without width metrics",
			glyphs: []pdf.Text{
				glyph("1", 10, 700, 0), glyph(" ", 10, 700, 0), glyph("0", 10, 700, 0),
			},
			want: []string{"1 0"},
		},
		{
			name:   "empty page",
			glyphs: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textLines(tt.glyphs))
		})
	}
}

func TestNativePDF_NotAPDF(t *testing.T) {
	_, err := NativePDF{}.ToText(context.Background(), []byte("<html>not a pdf</html>"))
	assert.Error(t, err)
}

func TestNewTextExtractor(t *testing.T) {
	text, err := NewTextExtractor(model.PDFConfig{Backend: model.PDFBackendNative})
	require.NoError(t, err)
	assert.IsType(t, NativePDF{}, text)

	text, err = NewTextExtractor(model.PDFConfig{Backend: model.PDFBackendPdftotext, Pdftotext: "/usr/bin/pdftotext"})
	require.NoError(t, err)
	assert.Equal(t, &Pdftotext{Path: "/usr/bin/pdftotext"}, text)

	_, err = NewTextExtractor(model.PDFConfig{Backend: "ocr"})
	assert.Error(t, err)
}

func TestNewTextExtractor_AutoFallsBackToNative(t *testing.T) {
	text, err := NewTextExtractor(model.PDFConfig{Backend: model.PDFBackendAuto, Pdftotext: "/nonexistent/pdftotext"})
	require.NoError(t, err)
	assert.IsType(t, NativePDF{}, text)
}

func TestNewTextExtractor_AutoPrefersPdftotext(t *testing.T) {
	path, err := exec.LookPath("pdftotext")
	if err != nil {
		t.Skip("pdftotext not installed")
	}

	text, err := NewTextExtractor(model.PDFConfig{Backend: model.PDFBackendAuto})
	require.NoError(t, err)
	assert.Equal(t, &Pdftotext{Path: path}, text)
}

func TestPdftotext_MissingBinary(t *testing.T) {
	p := &Pdftotext{Path: "/nonexistent/pdftotext"}
	_, err := p.ToText(context.Background(), statementPDF(t, "Sample Input"))
	assert.Error(t, err)
}
