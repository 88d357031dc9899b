package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "inferskema").
		WithSynopsis("inferskema [opts] command [opts]").
		WithDescription("inferskema derives a mongoose-style schema definition from a sample document.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mainRun(cfg, cc, args)
		}).
		WithSubs(
			InferCommand(cfg),
			DiffCommand(cfg),
			RulesCommand(cfg))
}

func InferCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InferConfig{MainConfig: mainCfg, Sample: &SampleConfig{}}
	opts := sampleOpts(cfg, cfg.Sample)
	cmd := cli.NewCommand("infer").
		WithAliases("i").
		WithSynopsis("infer [opts] [file]").
		WithDescription("infer a schema from a sample document (stdin when no file is given)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return infer(cfg, cc, args)
		})
	cfg.Infer = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Sample: &SampleConfig{}}
	opts := sampleOpts(cfg, cfg.Sample)
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff [opts] a b").
		WithDescription("compare the schemas inferred from two samples; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func RulesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RulesConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("rules").
		WithSynopsis("rules").
		WithDescription("list decimal conversion rules").
		WithRun(func(cc *cli.Context, args []string) error {
			return rules(cfg, cc, args)
		})
	cfg.Rules = cmd
	return cmd
}

func sampleOpts(cfg any, sample *SampleConfig) []*cli.Opt {
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	sOpts, err := cli.StructOpts(sample)
	if err != nil {
		panic(err)
	}
	return append(opts, sOpts...)
}
