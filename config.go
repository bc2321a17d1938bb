package insightful

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// DefaultPrefix is prepended to every printed line unless configured otherwise.
const DefaultPrefix = "Insight: "

// Config defines what an Insight logs and how.
type Config struct {
	FunctionCalls       bool     `yaml:"function_calls"`       // log method calls and their results
	AttributeAccess     bool     `yaml:"attribute_access"`     // log field reads
	AttributeAssignment bool     `yaml:"attribute_assignment"` // log field writes
	AttributeDeletion   bool     `yaml:"attribute_deletion"`   // log field deletions
	ShowMethodAccess    bool     `yaml:"show_method_access"`   // also log reads of methods that are not calls
	Prefix              string   `yaml:"prefix"`               // literal prefix of every line
	CallStart           bool     `yaml:"call_start"`           // also log a line before each call
	InstanceOnly        bool     `yaml:"instance_only"`        // only log the instance given as target
	Color               bool     `yaml:"color"`                // color the prefix for terminals
	Summary             bool     `yaml:"summary"`              // print a tally on exit
	Params              []string `yaml:"params"`               // parameter names, e.g. "Whoops(arg)"
}

// DefaultConfig returns the configuration used when no options are given:
// everything is logged except bare method reads.
func DefaultConfig() Config {
	return Config{
		FunctionCalls:       true,
		AttributeAccess:     true,
		AttributeAssignment: true,
		AttributeDeletion:   true,
		ShowMethodAccess:    false,
		Prefix:              DefaultPrefix,
	}
}

// ParseConfig decodes YAML over the defaults, so omitted keys keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("insightful: failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("insightful: failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// Option configures an Insight.
type Option func(*Insight)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(i *Insight) {
		i.cfg = cfg
	}
}

func WithFunctionCalls(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.FunctionCalls = enabled
	}
}

func WithAttributeAccess(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.AttributeAccess = enabled
	}
}

func WithAttributeAssignment(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.AttributeAssignment = enabled
	}
}

func WithAttributeDeletion(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.AttributeDeletion = enabled
	}
}

// WithShowMethodAccess logs reads of methods as well as their calls. A read cannot
// tell whether the caller means to call the method, so by default only calls are logged.
func WithShowMethodAccess(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.ShowMethodAccess = enabled
	}
}

func WithPrefix(prefix string) Option {
	return func(i *Insight) {
		i.cfg.Prefix = prefix
	}
}

// WithCallStart logs each call before it runs, in addition to its result.
func WithCallStart(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.CallStart = enabled
	}
}

// InstanceOnly restricts logging to the instance passed as target. Without it, an
// instance target observes every instance of its type. The target must be a pointer or
// a *Proxy; otherwise Enter fails with ErrTarget.
func InstanceOnly() Option {
	return func(i *Insight) {
		i.cfg.InstanceOnly = true
	}
}

// WithParams names method parameters for call lines, e.g. WithParams("Whoops(arg)").
// Unnamed parameters render as arg0, arg1 and so on.
func WithParams(signatures ...string) Option {
	return func(i *Insight) {
		i.cfg.Params = append(i.cfg.Params, signatures...)
	}
}

// WithSummary prints a tally of the logged interactions when the Insight exits.
func WithSummary(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.Summary = enabled
	}
}

// WithColor colors the prefix using the color profile of standard output.
func WithColor(enabled bool) Option {
	return func(i *Insight) {
		i.cfg.Color = enabled
	}
}

// WithColorProfile colors the prefix using the given profile.
func WithColorProfile(profile termenv.Profile) Option {
	return func(i *Insight) {
		i.cfg.Color = true
		i.profile = &profile
	}
}

// WithOutput writes lines to w instead of standard output.
func WithOutput(w io.Writer) Option {
	return func(i *Insight) {
		i.printer = WriterPrinter(w)
	}
}

// WithPrinter sends lines to p instead of standard output.
func WithPrinter(p Printer) Option {
	return func(i *Insight) {
		i.printer = p
	}
}
