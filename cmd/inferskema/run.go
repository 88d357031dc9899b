package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"go.mongodb.org/mongo-driver/bson"

	inferskema "github.com/reoring/inferskema"
	"github.com/reoring/inferskema/source"
)

func mainRun(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	cfg.setup()
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// readSample decodes the named file, or stdin for "" and "-".
func readSample(cfg *SampleConfig, cc *cli.Context, name string) (any, error) {
	f, err := cfg.format()
	if err != nil {
		return nil, err
	}
	if name != "" && name != "-" {
		return source.ReadFile(name, f, cfg.sourceOptions())
	}
	data, err := io.ReadAll(cc.In)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return source.Decode(data, f, cfg.sourceOptions())
}

func inferFile(cfg *MainConfig, sample *SampleConfig, cc *cli.Context, name string) (*inferskema.Object, error) {
	opt, err := sample.inferOptions()
	if err != nil {
		return nil, err
	}
	v, err := readSample(sample, cc, name)
	if err != nil {
		return nil, err
	}
	cfg.logger().Debug("sample decoded", "input", displayName(name), "type", fmt.Sprintf("%T", v))
	tree, err := inferskema.Infer(v, opt)
	if err != nil {
		if e, ok := inferskema.AsError(err); ok {
			cfg.logger().Debug("inference failed", "input", displayName(name), "code", e.Code, "path", e.Path)
		}
		return nil, fmt.Errorf("%s: %w", displayName(name), err)
	}
	cfg.logger().Debug("schema inferred", "input", displayName(name), "attributes", len(tree.Fields))
	return tree, nil
}

func readDefaults(path string, opt source.Options) (map[string]any, error) {
	v, err := source.ReadFile(path, source.FormatAuto, opt)
	if err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}
	doc, ok := v.(bson.D)
	if !ok {
		return nil, fmt.Errorf("%s: defaults must be a document, got %T", path, v)
	}
	out := make(map[string]any, len(doc))
	for _, e := range doc {
		out[e.Key] = e.Value
	}
	return out, nil
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}
