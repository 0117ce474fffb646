package model

import "time"

// Config holds every tunable of a tcase run
type Config struct {
	HTTP        HTTPConfig             `yaml:"http" mapstructure:"http"`
	Output      OutputConfig           `yaml:"output" mapstructure:"output"`
	Extract     ExtractConfig          `yaml:"extract" mapstructure:"extract"`
	Concurrency ConcurrencyConfig      `yaml:"concurrency" mapstructure:"concurrency"`
	PDF         PDFConfig              `yaml:"pdf" mapstructure:"pdf"`
	Judges      map[string]JudgeConfig `yaml:"judges,omitempty" mapstructure:"judges"`
	Verbose     bool                   `yaml:"verbose" mapstructure:"verbose"`
}

// HTTPConfig configures document and metadata fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// OutputConfig configures the on-disk layout
type OutputConfig struct {
	Dir       string `yaml:"dir,omitempty" mapstructure:"dir"`           // empty = current directory
	Template  string `yaml:"template,omitempty" mapstructure:"template"` // solution template copied to sol<ext>
	Statement bool   `yaml:"statement" mapstructure:"statement"`         // write statement.md for HTML judges
}

// ExtractConfig configures extraction strictness
type ExtractConfig struct {
	// Strict fails problems with no samples or without a "Sample Output" marker
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// ConcurrencyConfig configures per-id parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// PDFConfig selects how PDF statements are flattened to text
type PDFConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"` // auto, native or pdftotext
	Pdftotext string `yaml:"pdftotext,omitempty" mapstructure:"pdftotext"`
}

// JudgeConfig overrides the endpoints of a single judge
type JudgeConfig struct {
	Host  string `yaml:"host,omitempty" mapstructure:"host"`
	Stats string `yaml:"stats,omitempty" mapstructure:"stats"`
}

const (
	PDFBackendAuto      = "auto"
	PDFBackendNative    = "native"
	PDFBackendPdftotext = "pdftotext"
)

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "tcase/1.0 (+https://github.com/ppiankov/tcase)",
			MaxBodyBytes: 10_000_000,
		},
		Concurrency: ConcurrencyConfig{Workers: 1},
		PDF: PDFConfig{
			Backend:   PDFBackendAuto,
			Pdftotext: "pdftotext",
		},
	}
}
