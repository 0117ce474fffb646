package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/tcase/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden at build time with -ldflags "-X ...cli.version=..."
var version = "dev"

var (
	cfgFile string
	verbose bool
)

// rootCmd fetches sample tests; subcommands manage configuration
var rootCmd = &cobra.Command{
	Use:   "tcase [flags] <problem_ids>...",
	Short: "tcase - download sample tests of competitive programming problems",
	Long: `tcase downloads the sample tests of competitive programming problems
and lays them out for local testing:

  <dir>/<id>/input/0.in, 1.in, ...
  <dir>/<id>/output/0.out, 1.out, ...
  <dir>/<id>/info.txt

Supported online judges: codeforces (cf), uri, uva.

Example:
  tcase 4A 158A
  tcase -o uri -d ./uri 1001 1002
  tcase -o uva 100
  tcase --file ids.txt -j 4 --template ~/templates/main.cpp`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runFetch,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// ExecuteContext runs the root command; cancelling ctx stops in-flight problems
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tcase %s\n", version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.tcase/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	setDefaults(model.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("cannot find home directory")
		} else {
			viper.AddConfigPath(filepath.Join(home, ".tcase"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// TCASE_HTTP_TIMEOUT overrides http.timeout, and so on
	viper.SetEnvPrefix("TCASE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()

	if viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

// setDefaults registers every key so env variables and config files can reach it
func setDefaults(cfg *model.Config) {
	viper.SetDefault("http.timeout", cfg.HTTP.Timeout)
	viper.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	viper.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	viper.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	viper.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	viper.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)
	viper.SetDefault("output.dir", cfg.Output.Dir)
	viper.SetDefault("output.template", cfg.Output.Template)
	viper.SetDefault("output.statement", cfg.Output.Statement)
	viper.SetDefault("extract.strict", cfg.Extract.Strict)
	viper.SetDefault("concurrency.workers", cfg.Concurrency.Workers)
	viper.SetDefault("pdf.backend", cfg.PDF.Backend)
	viper.SetDefault("pdf.pdftotext", cfg.PDF.Pdftotext)
}

// loadConfig resolves flags, env, config file and defaults into a Config
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
