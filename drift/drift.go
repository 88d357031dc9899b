// Package drift compares schemas inferred from two samples.
package drift

import (
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	inferskema "github.com/reoring/inferskema"
)

// Op classifies a diff line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) prefix() string {
	switch o {
	case Insert:
		return "+ "
	case Delete:
		return "- "
	}
	return "  "
}

// Line is one line of rendered definition together with its diff op.
type Line struct {
	Op   Op
	Text string
}

// String renders the line with a "+ ", "- " or "  " prefix.
func (l Line) String() string { return l.Op.prefix() + l.Text }

// Lines diffs the indented JSON definitions of a and b line by line.
func Lines(a, b *inferskema.Object) ([]Line, error) {
	from, err := inferskema.DefinitionJSON(a, "  ")
	if err != nil {
		return nil, err
	}
	to, err := inferskema.DefinitionJSON(b, "  ")
	if err != nil {
		return nil, err
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(from)+"\n", string(to)+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, l := range strings.SplitAfter(d.Text, "\n") {
			if l == "" {
				continue
			}
			out = append(out, Line{Op: op, Text: strings.TrimSuffix(l, "\n")})
		}
	}
	return out, nil
}

// Text returns the line diff of a and b, or "" when their definitions match.
func Text(a, b *inferskema.Object) (string, error) {
	lines, err := Lines(a, b)
	if err != nil {
		return "", err
	}
	changed := false
	var sb strings.Builder
	for _, l := range lines {
		if l.Op != Equal {
			changed = true
		}
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	if !changed {
		return "", nil
	}
	return sb.String(), nil
}

// MergePatch returns the RFC 7386 merge patch turning a's definition into b's.
// Identical definitions yield "{}".
func MergePatch(a, b *inferskema.Object) ([]byte, error) {
	from, err := inferskema.DefinitionJSON(a, "")
	if err != nil {
		return nil, err
	}
	to, err := inferskema.DefinitionJSON(b, "")
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(from, to)
}

// Changed reports whether the two trees differ in shape.
func Changed(a, b *inferskema.Object) bool { return !inferskema.Equal(a, b) }
