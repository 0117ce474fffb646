package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/tcase/internal/model"
	"github.com/ppiankov/tcase/internal/pipeline"
)

// Processor handles a single problem id end to end
type Processor interface {
	Process(ctx context.Context, j model.Judge, id string) (*pipeline.Result, error)
}

// ProblemJob processes one problem id
type ProblemJob struct {
	Index     int
	Judge     model.Judge
	ID        string
	Processor Processor
}

// Execute runs the job
func (j *ProblemJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.Process(ctx, j.Judge, j.ID)
	return &ProblemResult{
		Index:  j.Index,
		ID:     j.ID,
		Result: result,
		Error:  err,
	}
}

// ProblemResult is the outcome of one problem id
type ProblemResult struct {
	Index  int // position of the id in the request
	ID     string
	Result *pipeline.Result // nil on error
	Error  error
}

// GetError returns the processing error, if any
func (r *ProblemResult) GetError() error {
	return r.Error
}

// BatchProcessor processes a list of problem ids
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor. A concurrency of one or less
// processes ids strictly in order and stops at the first failure.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessIDs processes the ids and returns their results in request order.
// Sequential runs return results up to and including the first failure.
func (b *BatchProcessor) ProcessIDs(ctx context.Context, j model.Judge, ids []string) []*ProblemResult {
	if len(ids) == 0 {
		return []*ProblemResult{}
	}

	if b.concurrency <= 1 {
		return b.sequential(ctx, j, ids)
	}

	// Same-id writes must not overlap
	ids = Dedupe(ids)

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		for i, id := range ids {
			if !pool.Submit(&ProblemJob{Index: i, Judge: j, ID: id, Processor: b.processor}) {
				break
			}
		}
		pool.Close()
	}()

	results := make([]*ProblemResult, 0, len(ids))
	for r := range pool.Results() {
		results = append(results, r.(*ProblemResult))
	}

	sort.Slice(results, func(a, b int) bool {
		return results[a].Index < results[b].Index
	})
	return results
}

func (b *BatchProcessor) sequential(ctx context.Context, j model.Judge, ids []string) []*ProblemResult {
	results := make([]*ProblemResult, 0, len(ids))
	for i, id := range ids {
		job := &ProblemJob{Index: i, Judge: j, ID: id, Processor: b.processor}
		r := job.Execute(ctx).(*ProblemResult)
		results = append(results, r)
		if r.Error != nil {
			break
		}
	}
	return results
}

// Dedupe drops repeated ids, keeping the first occurrence
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ReadIDsFromFile reads problem ids from a file, one per line.
// Blank lines and # comments are skipped; repeats are dropped.
func ReadIDsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return Dedupe(ids), nil
}
