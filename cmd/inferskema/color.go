package main

import (
	"bytes"
	"regexp"

	"github.com/fatih/color"

	"github.com/reoring/inferskema/drift"
)

var (
	insertColor = color.New(color.FgGreen).SprintFunc()
	deleteColor = color.New(color.FgRed).SprintFunc()
	keyColor    = color.RGB(74, 92, 138).SprintFunc()
	tokenColor  = color.New(color.FgCyan).SprintFunc()
	ruleColor   = color.New(color.Bold).SprintFunc()

	// "key": in rendered JSON and YAML definitions
	keyPattern = regexp.MustCompile(`(?m)^(\s*-?\s*)("[^"]+"|[A-Za-z_$][\w.$-]*)(:)`)
	// type tokens on the value side
	tokenPattern = regexp.MustCompile(`\b(Mixed|String|Number|Date|Buffer|Boolean|ObjectId|Array|Decimal128|Map)\b`)
)

func init() {
	// color's own terminal detection is superseded by MainConfig.colored
	color.NoColor = false
}

func colorLine(l drift.Line) string {
	switch l.Op {
	case drift.Insert:
		return insertColor(l.String())
	case drift.Delete:
		return deleteColor(l.String())
	}
	return l.String()
}

func colorize(out []byte) []byte {
	var buf bytes.Buffer
	for _, line := range bytes.SplitAfter(out, []byte("\n")) {
		i := 0
		if m := keyPattern.FindSubmatchIndex(line); m != nil {
			buf.Write(line[:m[4]])
			buf.WriteString(keyColor(string(line[m[4]:m[5]])))
			i = m[5]
		}
		buf.Write(tokenPattern.ReplaceAllFunc(line[i:], func(tok []byte) []byte {
			return []byte(tokenColor(string(tok)))
		}))
	}
	return buf.Bytes()
}
