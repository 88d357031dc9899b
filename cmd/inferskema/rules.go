package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/scott-cotton/cli"

	inferskema "github.com/reoring/inferskema"
)

var ruleDescriptions = map[inferskema.DecimalRule]string{
	inferskema.IntegerToDecimal:          "integers up to 2^53-1",
	inferskema.DecimalToDecimal:          "decimal numbers",
	inferskema.BigintToDecimal:           "big.Int values up to 2^63-1",
	inferskema.DecimalStringToDecimal:    "strings like 12.50",
	inferskema.IntegerStringToDecimal:    "digit strings up to 2^53-1",
	inferskema.BigintStringToDecimal:     "digit strings up to 2^63-1",
	inferskema.Decimal128StringToDecimal: "reserved, never matches",
}

func rules(cfg *RulesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rules.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: rules takes no arguments", cli.ErrUsage)
	}
	paint := cfg.colored(cc.Out)
	w := tabwriter.NewWriter(cc.Out, 0, 4, 2, ' ', 0)
	for _, r := range inferskema.DecimalRules() {
		name := r.String()
		if paint {
			name = ruleColor(name)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, ruleDescriptions[r])
	}
	return w.Flush()
}
