// Package extract turns raw judge documents into normalized problems.
package extract

import (
	"errors"
	"fmt"

	"github.com/ppiankov/tcase/internal/model"
)

// Document is the raw input of an extraction
type Document struct {
	ProblemID string
	Body      string // HTML markup, or flattened text for PDF statements

	// Metadata looked up out of band, only used by text extractors
	Title           string
	TimeLimitMillis int
}

// Extractor converts one judge's documents into problems
type Extractor interface {
	// Judge returns the judge this extractor understands
	Judge() model.Judge

	// Extract builds a Problem from the document or fails with an *ExtractionError
	Extract(doc Document) (*model.Problem, error)
}

// Options tunes extraction strictness
type Options struct {
	// Strict turns "no samples found" and "no Sample Output marker" into errors
	Strict bool
}

// Registry manages the per-judge extractors
type Registry struct {
	extractors map[model.Judge]Extractor
}

// NewRegistry creates a registry holding the built-in extractors
func NewRegistry(opts Options) *Registry {
	registry := &Registry{
		extractors: make(map[model.Judge]Extractor),
	}

	registry.Register(NewCodeforcesExtractor(opts))
	registry.Register(NewURIExtractor(opts))
	registry.Register(NewUVaExtractor(opts))

	return registry
}

// Register registers an extractor, replacing any previous one for the same judge
func (r *Registry) Register(e Extractor) {
	r.extractors[e.Judge()] = e
}

// For returns the extractor of a judge
func (r *Registry) For(j model.Judge) (Extractor, error) {
	e, ok := r.extractors[j]
	if !ok {
		return nil, fmt.Errorf("no extractor for judge %q", j)
	}
	return e, nil
}

var errEmptyID = errors.New("empty problem id")
