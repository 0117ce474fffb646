package pipeline

import (
	"context"
	"fmt"

	"github.com/ppiankov/tcase/internal/extract"
	"github.com/ppiankov/tcase/internal/judge"
	"github.com/ppiankov/tcase/internal/model"
	"github.com/ppiankov/tcase/internal/output"
	"github.com/ppiankov/tcase/internal/util"
	"github.com/rs/zerolog/log"
)

// Pipeline orchestrates fetch -> extract -> persist for one problem id
type Pipeline struct {
	table    *judge.Table
	fetcher  DocumentFetcher
	stats    MetadataLookup
	text     TextExtractor
	registry *extract.Registry
	writer   *output.Writer
	robots   *util.RobotsChecker // nil unless robots.txt is respected
}

// NewPipeline wires every stage from the configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	text, err := NewTextExtractor(cfg.PDF)
	if err != nil {
		return nil, err
	}

	writer, err := output.New(cfg.Output.Dir, cfg.Output.Template, cfg.Output.Statement)
	if err != nil {
		return nil, err
	}

	var robots *util.RobotsChecker
	if cfg.HTTP.RespectRobots {
		robots = util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	}

	return &Pipeline{
		table:    judge.NewTable(cfg.Judges),
		fetcher:  NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
		stats:    NewStatsClient(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy),
		text:     text,
		registry: extract.NewRegistry(extract.Options{Strict: cfg.Extract.Strict}),
		writer:   writer,
		robots:   robots,
	}, nil
}

// OutputDir is the resolved root that problem directories are written under
func (p *Pipeline) OutputDir() string {
	return p.writer.OutputDir
}

// Result is the outcome of one processed problem
type Result struct {
	Problem *model.Problem
	Dir     string
	URL     string
}

// Process fetches, extracts and persists a single problem. Files written before
// a failure are left on disk.
func (p *Pipeline) Process(ctx context.Context, j model.Judge, rawID string) (*Result, error) {
	id, err := judge.NormalizeID(j, rawID)
	if err != nil {
		return nil, err
	}

	url, err := p.table.ProblemURL(j, id)
	if err != nil {
		return nil, err
	}

	logger := log.With().Str("judge", j.String()).Str("id", id).Str("url", url).Logger()

	if p.robots != nil {
		if err := p.robots.Check(ctx, url); err != nil {
			return nil, err
		}
	}

	// 1. Fetch
	logger.Debug().Msg("fetching problem")
	fetched, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Build the extraction input
	doc := extract.Document{ProblemID: id}
	if j == model.JudgeUVa {
		doc, err = p.pdfDocument(ctx, j, id, fetched)
	} else {
		doc.Body, err = fetched.Text()
	}
	if err != nil {
		return nil, err
	}

	// 3. Extract
	extractor, err := p.registry.For(j)
	if err != nil {
		return nil, err
	}
	problem, err := extractor.Extract(doc)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("cases", len(problem.TestCases)).Str("name", problem.Name).Msg("extracted")

	// 4. Persist
	dir, err := p.writer.Write(problem)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}
	logger.Info().Int("cases", len(problem.TestCases)).Str("dir", dir).Msg("problem written")

	return &Result{Problem: problem, Dir: dir, URL: url}, nil
}

// pdfDocument flattens a PDF statement and attaches the out-of-band metadata
func (p *Pipeline) pdfDocument(ctx context.Context, j model.Judge, id string, fetched *FetchResult) (extract.Document, error) {
	doc := extract.Document{ProblemID: id}

	statsURL, err := p.table.StatsURL(j, id)
	if err != nil {
		return doc, err
	}
	stats, err := p.stats.Lookup(ctx, statsURL)
	if err != nil {
		return doc, fmt.Errorf("metadata: %w", err)
	}

	text, err := p.text.ToText(ctx, fetched.Body)
	if err != nil {
		return doc, fmt.Errorf("pdf text: %w", err)
	}

	doc.Body = text
	doc.Title = stats.Title
	doc.TimeLimitMillis = stats.TimeLimitMillis
	return doc, nil
}
