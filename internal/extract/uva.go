package extract

import (
	"strconv"
	"strings"

	"github.com/ppiankov/tcase/internal/model"
)

const (
	markerSampleInput  = "Sample Input"
	markerSampleOutput = "Sample Output"
)

// UVaExtractor scans the flattened text of a UVa PDF statement. Title and time
// limit are not taken from the text; they come with the document from uHunt.
type UVaExtractor struct {
	opts Options
}

// NewUVaExtractor creates a UVa extractor
func NewUVaExtractor(opts Options) *UVaExtractor {
	return &UVaExtractor{opts: opts}
}

// Judge returns the judge name
func (e *UVaExtractor) Judge() model.Judge {
	return model.JudgeUVa
}

// Extract recovers the single sample pair of a UVa statement
func (e *UVaExtractor) Extract(d Document) (*model.Problem, error) {
	if d.ProblemID == "" {
		return nil, errEmptyID
	}
	j, id := e.Judge(), d.ProblemID

	if d.Title == "" {
		return nil, missingSection(j, id, "title metadata")
	}

	start := strings.Index(d.Body, markerSampleInput)
	if start < 0 {
		return nil, markerNotFound(j, id, markerSampleInput)
	}

	const (
		modeNone = iota
		modeInput
		modeOutput
	)

	mode := modeNone
	sawOutput := false
	var inputLines, outputLines []string

	for _, line := range splitLines(d.Body[start:]) {
		switch {
		case line == markerSampleInput:
			mode = modeInput
			continue
		case line == markerSampleOutput:
			mode = modeOutput
			sawOutput = true
			continue
		case e.isRunningHeader(line, d.Title, id):
			continue
		}

		switch mode {
		case modeInput:
			inputLines = append(inputLines, line)
		case modeOutput:
			outputLines = append(outputLines, line)
		}
	}

	if !sawOutput && e.opts.Strict {
		return nil, markerNotFound(j, id, markerSampleOutput)
	}

	return &model.Problem{
		ID:        id,
		Name:      strings.TrimSpace(d.Title),
		TimeLimit: strconv.Itoa(d.TimeLimitMillis / 1000),
		Judge:     j,
		TestCases: []model.TestCase{{
			Input:  strings.Join(inputLines, "\n") + "\n",
			Output: strings.Join(outputLines, "\n") + "\n",
		}},
	}, nil
}

// isRunningHeader reports page headers/footers that repeat both title and id
func (e *UVaExtractor) isRunningHeader(line, title, id string) bool {
	return strings.Contains(line, title) && strings.Contains(line, id)
}

// splitLines splits on every line boundary and drops empty lines
func splitLines(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
			return true
		}
		return false
	})
}
