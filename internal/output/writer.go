// Package output persists extracted problems as a per-problem directory tree:
//
//	<root>/<id>/input/<i>.in
//	<root>/<id>/output/<i>.out
//	<root>/<id>/info.txt
//	<root>/<id>/sol<ext>       (copied from the template once, never overwritten)
//	<root>/<id>/statement.md   (optional)
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/ppiankov/tcase/internal/model"
)

// Writer writes problems to disk
type Writer struct {
	OutputDir string
	Template  string // optional solution template
	Statement bool   // write statement.md when the problem carries statement HTML

	locks sync.Map // problem id -> *sync.Mutex
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir, template string, statement bool) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if template != "" {
		info, err := os.Stat(template)
		if err != nil {
			return nil, fmt.Errorf("solution template: %w", err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("solution template %s is a directory", template)
		}
	}

	return &Writer{OutputDir: outputDir, Template: template, Statement: statement}, nil
}

// Write persists a problem and returns its directory. Writing the same problem
// twice leaves the same files behind; writes for one id never interleave.
func (w *Writer) Write(p *model.Problem) (string, error) {
	if err := validateID(p.ID); err != nil {
		return "", err
	}

	mu, _ := w.locks.LoadOrStore(p.ID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	dir := filepath.Join(w.OutputDir, p.ID)
	inputDir := filepath.Join(dir, "input")
	outputDir := filepath.Join(dir, "output")

	for _, d := range []string{inputDir, outputDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := removeStale(inputDir, ".in"); err != nil {
		return "", err
	}
	if err := removeStale(outputDir, ".out"); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(dir, "info.txt"), info(p)); err != nil {
		return "", err
	}

	for i, tc := range p.TestCases {
		name := strconv.Itoa(i)
		if err := writeFile(filepath.Join(inputDir, name+".in"), tc.Input); err != nil {
			return "", err
		}
		if err := writeFile(filepath.Join(outputDir, name+".out"), tc.Output); err != nil {
			return "", err
		}
	}

	if w.Template != "" {
		if err := copyIfAbsent(w.Template, filepath.Join(dir, "sol"+filepath.Ext(w.Template))); err != nil {
			return "", err
		}
	}

	if w.Statement && p.StatementHTML != "" {
		markdown, err := htmltomarkdown.ConvertString(p.StatementHTML)
		if err != nil {
			return "", fmt.Errorf("converting statement to markdown: %w", err)
		}
		if err := writeFile(filepath.Join(dir, "statement.md"), markdown); err != nil {
			return "", err
		}
	}

	return dir, nil
}

func info(p *model.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID=%s\n", p.ID)
	fmt.Fprintf(&b, "NAME=%s\n", p.Name)
	fmt.Fprintf(&b, "TIMELIMIT=%s\n", p.TimeLimit)
	fmt.Fprintf(&b, "OJ=%s\n", p.Judge)
	return b.String()
}

// validateID rejects ids that would escape the output root
func validateID(id string) error {
	if id == "" {
		return errors.New("problem id is empty")
	}
	if id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("problem id %q is not a valid directory name", id)
	}
	return nil
}

// removeStale deletes numbered case files left over from an earlier run
func removeStale(dir, ext string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return fmt.Errorf("removing %s: %w", m, err)
		}
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// copyIfAbsent copies src to dst unless dst already exists
func copyIfAbsent(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening template: %w", err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", dst, closeErr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying template to %s: %w", dst, err)
	}
	return nil
}
