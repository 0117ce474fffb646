package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/tcase/internal/judge"
	"github.com/ppiankov/tcase/internal/model"
	"github.com/ppiankov/tcase/internal/pipeline"
	"github.com/ppiankov/tcase/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	onlineJudge string
	idsFile     string
	idTimeout   time.Duration
)

func init() {
	defaults := model.DefaultConfig()
	flags := rootCmd.Flags()

	flags.StringVarP(&onlineJudge, "online-judge", "o", string(model.JudgeCodeforces), "online judge (codeforces, cf, uri, uva)")
	flags.StringVar(&idsFile, "file", "", "read problem ids from a file (one per line, # comments)")
	flags.DurationVar(&idTimeout, "timeout", 2*time.Minute, "timeout for a single problem")

	flags.StringP("output-dir", "d", "", "output directory (default: current directory)")
	flags.String("template", "", "solution template copied to <id>/sol<ext> when absent")
	flags.Bool("statement", false, "also write the statement as <id>/statement.md (HTML judges)")
	flags.Bool("strict", false, "fail problems with no samples or without a Sample Output marker")
	flags.IntP("concurrency", "j", defaults.Concurrency.Workers, "problems processed in parallel (1 = sequential, stop at first error)")
	flags.Bool("respect-robots", false, "honor the judge's robots.txt")
	flags.String("pdf-backend", defaults.PDF.Backend, "PDF text backend (auto, native, pdftotext)")
	flags.String("ua", defaults.HTTP.UserAgent, "HTTP User-Agent")
	flags.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	flags.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")

	for key, flag := range map[string]string{
		"output.dir":          "output-dir",
		"output.template":     "template",
		"output.statement":    "statement",
		"extract.strict":      "strict",
		"concurrency.workers": "concurrency",
		"http.respect_robots": "respect-robots",
		"pdf.backend":         "pdf-backend",
		"http.user_agent":     "ua",
		"http.http_proxy":     "http-proxy",
		"http.https_proxy":    "https-proxy",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	j, err := judge.Parse(onlineJudge)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Not implemented.\n", onlineJudge)
		return err
	}

	ids := args
	if idsFile != "" {
		fromFile, err := worker.ReadIDsFromFile(idsFile)
		if err != nil {
			return fmt.Errorf("read ids: %w", err)
		}
		ids = append(ids, fromFile...)
	}
	if len(ids) == 0 {
		return errors.New("no problem ids given (pass ids as arguments or use --file)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	log.Debug().
		Str("judge", j.String()).
		Int("ids", len(ids)).
		Int("workers", cfg.Concurrency.Workers).
		Str("dir", p.OutputDir()).
		Msg("starting")

	processor := worker.NewBatchProcessor(&timeoutProcessor{next: p, timeout: idTimeout}, cfg.Concurrency.Workers)
	results := processor.ProcessIDs(cmd.Context(), j, ids)

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %v\n", r.ID, r.Error)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d cases -> %s\n", r.Result.Problem.ID, len(r.Result.Problem.TestCases), r.Result.Dir)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d problems failed", failed, len(ids))
	}
	return nil
}

// timeoutProcessor bounds each problem by its own deadline
type timeoutProcessor struct {
	next    worker.Processor
	timeout time.Duration
}

func (t *timeoutProcessor) Process(ctx context.Context, j model.Judge, id string) (*pipeline.Result, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Process(ctx, j, id)
}
