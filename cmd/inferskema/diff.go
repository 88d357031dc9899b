package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/reoring/inferskema/drift"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := inferFile(cfg.MainConfig, cfg.Sample, cc, args[0])
	if err != nil {
		return err
	}
	b, err := inferFile(cfg.MainConfig, cfg.Sample, cc, args[1])
	if err != nil {
		return err
	}
	if !drift.Changed(a, b) {
		cfg.logger().Debug("no drift", "a", args[0], "b", args[1])
		return nil
	}
	if cfg.Patch {
		patch, err := drift.MergePatch(a, b)
		if err != nil {
			return err
		}
		if _, err := cc.Out.Write(append(patch, '\n')); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	lines, err := drift.Lines(a, b)
	if err != nil {
		return err
	}
	paint := cfg.colored(cc.Out)
	for _, l := range lines {
		s := l.String()
		if paint {
			s = colorLine(l)
		}
		if _, err := fmt.Fprintln(cc.Out, s); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}
