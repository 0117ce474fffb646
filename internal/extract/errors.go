package extract

import (
	"errors"
	"fmt"

	"github.com/ppiankov/tcase/internal/model"
)

// Extraction failure kinds, matched with errors.Is
var (
	ErrMissingSection = errors.New("missing section")
	ErrMarkerNotFound = errors.New("marker not found")
	ErrCountMismatch  = errors.New("sample count mismatch")
)

// ExtractionError describes why a document could not be turned into a Problem
type ExtractionError struct {
	Kind      error // one of the Err* sentinels above
	Judge     model.Judge
	ProblemID string
	Detail    string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s %s: %v: %s", e.Judge, e.ProblemID, e.Kind, e.Detail)
}

func (e *ExtractionError) Unwrap() error {
	return e.Kind
}

func missingSection(j model.Judge, id, section string) error {
	return &ExtractionError{Kind: ErrMissingSection, Judge: j, ProblemID: id, Detail: section}
}

func markerNotFound(j model.Judge, id, marker string) error {
	return &ExtractionError{Kind: ErrMarkerNotFound, Judge: j, ProblemID: id, Detail: fmt.Sprintf("%q", marker)}
}

func countMismatch(j model.Judge, id string, inputs, outputs int) error {
	return &ExtractionError{
		Kind:      ErrCountMismatch,
		Judge:     j,
		ProblemID: id,
		Detail:    fmt.Sprintf("%d inputs, %d outputs", inputs, outputs),
	}
}
