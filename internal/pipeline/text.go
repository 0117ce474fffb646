package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/ppiankov/tcase/internal/model"
)

// TextExtractor flattens a binary statement into line-oriented text
type TextExtractor interface {
	ToText(ctx context.Context, document []byte) (string, error)
}

// NewTextExtractor returns the backend selected by the configuration. The auto
// backend prefers pdftotext when it is installed and falls back to NativePDF.
func NewTextExtractor(cfg model.PDFConfig) (TextExtractor, error) {
	switch cfg.Backend {
	case "", model.PDFBackendAuto:
		if path, err := exec.LookPath(pdftotextBinary(cfg.Pdftotext)); err == nil {
			return &Pdftotext{Path: path}, nil
		}
		return NativePDF{}, nil
	case model.PDFBackendNative:
		return NativePDF{}, nil
	case model.PDFBackendPdftotext:
		return &Pdftotext{Path: cfg.Pdftotext}, nil
	default:
		return nil, fmt.Errorf("unknown pdf backend %q (want %s, %s or %s)",
			cfg.Backend, model.PDFBackendAuto, model.PDFBackendNative, model.PDFBackendPdftotext)
	}
}

// NativePDF extracts text in-process. Glyphs are regrouped into lines by their
// baseline, so every visual line of the statement becomes one output line.
type NativePDF struct{}

// ToText reads every page in content order, ending each page with a form feed
func (NativePDF) ToText(ctx context.Context, document []byte) (text string, err error) {
	r, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	// the content interpreter panics on malformed streams
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("read pdf content: %v", rec)
		}
	}()

	var buf strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		for _, line := range textLines(page.Content().Text) {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		buf.WriteByte('\f')
	}

	return buf.String(), nil
}

// textLines joins glyphs into lines. A baseline shift of more than half the
// font size starts a new line; a horizontal gap wider than a fifth of the font
// size between two glyphs becomes a space.
func textLines(glyphs []pdf.Text) []string {
	var lines []string
	var cur strings.Builder
	var prev *pdf.Text

	for i := range glyphs {
		g := &glyphs[i]
		if g.S == "" {
			continue
		}

		if prev != nil {
			size := math.Max(math.Abs(prev.FontSize), 1)
			switch {
			case math.Abs(g.Y-prev.Y) > size/2:
				lines = append(lines, cur.String())
				cur.Reset()
			case g.X-(prev.X+prev.W) > size/5 && !endsWithSpace(cur.String()) && g.S != " ":
				cur.WriteByte(' ')
			}
		}

		cur.WriteString(g.S)
		prev = g
	}

	if prev != nil {
		lines = append(lines, cur.String())
	}
	return lines
}

func endsWithSpace(s string) bool {
	return s == "" || strings.HasSuffix(s, " ")
}

func pdftotextBinary(path string) string {
	if path == "" {
		return "pdftotext"
	}
	return path
}

// Pdftotext shells out to poppler's pdftotext in raw mode
type Pdftotext struct {
	Path string
}

// ToText writes the document to a temp file and captures pdftotext's stdout
func (p *Pdftotext) ToText(ctx context.Context, document []byte) (string, error) {
	tmp, err := os.CreateTemp("", "tcase-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(document); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	bin := pdftotextBinary(p.Path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-raw", tmp.Name(), "-")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w: %s", bin, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
