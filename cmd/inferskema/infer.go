package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/scott-cotton/cli"

	inferskema "github.com/reoring/inferskema"
	"github.com/reoring/inferskema/internal/gen"
	js "github.com/reoring/inferskema/jsonschema"
)

func infer(cfg *InferConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Infer.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: infer takes at most one file, got %v", cli.ErrUsage, args)
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	tree, err := inferFile(cfg.MainConfig, cfg.Sample, cc, name)
	if err != nil {
		return err
	}
	out, err := render(tree, cfg.Output, cfg.Compact, gen.File{Package: cfg.Package, Type: cfg.TypeName})
	if err != nil {
		return err
	}
	if cfg.colored(cc.Out) && !strings.EqualFold(cfg.Output, "go") {
		out = colorize(out)
	}
	if _, err := cc.Out.Write(out); err != nil {
		return err
	}
	return nil
}

func render(tree *inferskema.Object, output string, compact bool, goFile gen.File) ([]byte, error) {
	indent := "  "
	if compact {
		indent = ""
	}
	var (
		out []byte
		err error
	)
	switch strings.ToLower(output) {
	case "", "definition", "def", "json":
		out, err = inferskema.DefinitionJSON(tree, indent)
	case "yaml", "yml":
		return inferskema.DefinitionYAML(tree)
	case "jsonschema", "schema":
		out, err = marshalSchema(js.FromTree(tree, js.Standard), indent)
	case "mongo", "bsonschema":
		out, err = marshalSchema(js.FromTree(tree, js.Mongo), indent)
	case "go":
		return gen.RenderFile(goFile, tree)
	default:
		return nil, fmt.Errorf("%w: unknown output %q", cli.ErrUsage, output)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func marshalSchema(s *js.Schema, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(s)
	}
	return json.MarshalIndent(s, "", indent)
}
