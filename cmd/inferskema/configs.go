package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	inferskema "github.com/reoring/inferskema"
	"github.com/reoring/inferskema/i18n"
	"github.com/reoring/inferskema/source"
)

type MainConfig struct {
	Verbose bool   `cli:"name=v desc='debug logging on stderr'"`
	Color   bool   `cli:"name=color desc='force colored output'"`
	NoColor bool   `cli:"name=no-color desc='disable colored output'"`
	Lang    string `cli:"name=lang desc='message language: en, ja' default=en"`

	Main *cli.Command
	log  *slog.Logger
}

// setup applies the global options once the main command has parsed them.
func (cfg *MainConfig) setup() {
	i18n.SetLanguage(cfg.Lang)
	cfg.log = newLogger(os.Stderr, cfg.Verbose)
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		cfg.log = newLogger(os.Stderr, false)
	}
	return cfg.log
}

// colored decides whether output to w gets ANSI colors: explicit flags win,
// otherwise only terminals do.
func (cfg *MainConfig) colored(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SampleConfig holds the options shared by commands that read samples.
// Its options are registered on each such command.
type SampleConfig struct {
	Format       string `cli:"name=format aliases=f desc='input format: auto, json, extjson, yaml' default=auto"`
	Optional     string `cli:"name=optional desc='comma separated top-level attributes that are not required'"`
	Defaults     string `cli:"name=defaults desc='document holding default values keyed by attribute'"`
	StrongArrays bool   `cli:"name=strong-arrays aliases=s desc='type array elements'"`
	Decimal      string `cli:"name=decimal desc='comma separated decimal rules, or all'"`
	MaxDepth     int    `cli:"name=max-depth desc='nesting limit, 0 for none'"`
	Dates        bool   `cli:"name=dates desc='read RFC3339 strings as dates'"`
	Canonical    bool   `cli:"name=canonical desc='require canonical extended JSON'"`
}

func (cfg *SampleConfig) sourceOptions() source.Options {
	return source.Options{ParseDates: cfg.Dates, Canonical: cfg.Canonical}
}

func (cfg *SampleConfig) format() (source.Format, error) {
	f, err := source.ParseFormat(cfg.Format)
	if err != nil {
		return "", fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return f, nil
}

func (cfg *SampleConfig) inferOptions() (inferskema.Options, error) {
	opt := inferskema.Options{
		OptionalAttributes: splitList(cfg.Optional),
		StronglyTypeArrays: cfg.StrongArrays,
		MaxDepth:           cfg.MaxDepth,
	}
	if cfg.MaxDepth < 0 {
		return opt, fmt.Errorf("%w: -max-depth must not be negative", cli.ErrUsage)
	}
	for _, name := range splitList(cfg.Decimal) {
		if strings.EqualFold(name, "all") {
			opt.DecimalRules = inferskema.DecimalRules()
			break
		}
		r, err := inferskema.ParseDecimalRule(name)
		if err != nil {
			return opt, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opt.DecimalRules = append(opt.DecimalRules, r)
	}
	if cfg.Defaults != "" {
		defaults, err := readDefaults(cfg.Defaults, cfg.sourceOptions())
		if err != nil {
			return opt, err
		}
		opt.DefaultValues = defaults
	}
	return opt, nil
}

type InferConfig struct {
	*MainConfig
	Sample *SampleConfig

	Output   string `cli:"name=o aliases=output desc='output: definition, yaml, jsonschema, mongo, go' default=definition"`
	Compact  bool   `cli:"name=compact desc='single line JSON output'"`
	TypeName string `cli:"name=type desc='root type name for -o go' default=Sample"`
	Package  string `cli:"name=package desc='package clause for -o go' default=main"`

	Infer *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Sample *SampleConfig

	Patch bool `cli:"name=patch aliases=p desc='print a JSON merge patch instead of a line diff'"`

	Diff *cli.Command
}

type RulesConfig struct {
	*MainConfig

	Rules *cli.Command
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
