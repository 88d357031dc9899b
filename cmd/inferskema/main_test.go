package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scott-cotton/cli"
	"go.mongodb.org/mongo-driver/bson"

	inferskema "github.com/reoring/inferskema"
	"github.com/reoring/inferskema/internal/gen"
)

func TestSplitList(t *testing.T) {
	got := splitList(" a, ,b,c ")
	if strings.Join(got, "|") != "a|b|c" {
		t.Fatalf("unexpected: %q", got)
	}
	if splitList("") != nil {
		t.Fatalf("empty input should give nil")
	}
}

func TestInferOptions(t *testing.T) {
	dir := t.TempDir()
	defaults := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(defaults, []byte("status: active\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &SampleConfig{
		Optional:     "note, tags",
		Decimal:      "IntegerToDecimal,convertdecimaltodecimal128",
		StrongArrays: true,
		MaxDepth:     4,
		Defaults:     defaults,
	}
	opt, err := cfg.inferOptions()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opt.OptionalAttributes) != 2 || opt.OptionalAttributes[1] != "tags" {
		t.Fatalf("optional: %v", opt.OptionalAttributes)
	}
	if len(opt.DecimalRules) != 2 || opt.DecimalRules[1] != inferskema.DecimalToDecimal {
		t.Fatalf("rules: %v", opt.DecimalRules)
	}
	if !opt.StronglyTypeArrays || opt.MaxDepth != 4 {
		t.Fatalf("flags lost: %+v", opt)
	}
	if opt.DefaultValues["status"] != "active" {
		t.Fatalf("defaults: %v", opt.DefaultValues)
	}

	all, err := (&SampleConfig{Decimal: "all"}).inferOptions()
	if err != nil || len(all.DecimalRules) != len(inferskema.DecimalRules()) {
		t.Fatalf("all: %v %v", all.DecimalRules, err)
	}

	_, err = (&SampleConfig{Decimal: "nope"}).inferOptions()
	if !errors.Is(err, cli.ErrUsage) {
		t.Fatalf("want usage error, got %v", err)
	}
}

func TestRender(t *testing.T) {
	tree, err := inferskema.Infer(bson.D{{Key: "name", Value: "x"}}, inferskema.Options{})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	out, err := render(tree, "definition", true, gen.File{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"name":{"type":"String","required":true}}`+"\n" {
		t.Fatalf("definition: %s", out)
	}
	out, err = render(tree, "mongo", true, gen.File{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"bsonType":"object"`) {
		t.Fatalf("mongo schema: %s", out)
	}
	out, err = render(tree, "go", false, gen.File{Package: "models", Type: "Doc"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "type Doc struct") {
		t.Fatalf("go output: %s", out)
	}
	if _, err := render(tree, "xml", false, gen.File{}); !errors.Is(err, cli.ErrUsage) {
		t.Fatalf("want usage error, got %v", err)
	}
}

func TestColorize_KeepsText(t *testing.T) {
	in := []byte("{\n  \"name\": {\n    \"type\": \"String\"\n  }\n}\n")
	out := colorize(in)
	if !strings.Contains(string(out), "name") || !strings.Contains(string(out), "String") {
		t.Fatalf("text lost: %q", out)
	}
	if len(out) <= len(in) {
		t.Fatalf("expected escape sequences to be added")
	}
}

// nopWriteCloser adapts an io.Writer to the io.WriteCloser cli.Context expects.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// run executes the command tree with the given stdin and returns stdout and
// the exit status the command maps its error to.
func run(t *testing.T, stdin string, args ...string) (string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	cc := &cli.Context{
		Go:  context.Background(),
		In:  io.NopCloser(strings.NewReader(stdin)),
		Out: nopWriteCloser{&out},
		Err: nopWriteCloser{&errOut},
	}
	cmd := MainCommand()
	err := cmd.Run(cc, args)
	if err == nil {
		return out.String(), 0
	}
	return out.String(), cmd.Exit(cc, err)
}

func writeSample(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInferCommand(t *testing.T) {
	path := writeSample(t, "user.json", `{"name":"Ada","tags":["x"]}`)
	out, code := run(t, "", "infer", "-compact", "-strong-arrays", path)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if out != `{"name":{"type":"String","required":true},"tags":{"type":["String"],"required":true}}`+"\n" {
		t.Fatalf("unexpected output: %s", out)
	}

	out, code = run(t, `{"n":1}`, "infer", "-compact")
	if code != 0 || out != `{"n":{"type":"Number","required":true}}`+"\n" {
		t.Fatalf("stdin: exit %d output %s", code, out)
	}

	// extended JSON dates stay dates with every decimal rule enabled
	path = writeSample(t, "event.ejson", `{"at":{"$date":"2024-01-02T03:04:05Z"},"n":5}`)
	out, code = run(t, "", "infer", "-compact", "-decimal", "all", path)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	if out != `{"at":{"type":"Date","required":true},"n":{"type":"Decimal128","required":true}}`+"\n" {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestDiffCommand(t *testing.T) {
	a := writeSample(t, "a.json", `{"name":"Ada","age":36}`)
	same := writeSample(t, "same.json", `{"name":"Grace","age":85}`)
	b := writeSample(t, "b.json", `{"name":"Ada","age":"36"}`)

	out, code := run(t, "", "diff", a, same)
	if code != 0 || out != "" {
		t.Fatalf("identical schemas: exit %d output %q", code, out)
	}

	out, code = run(t, "", "diff", a, b)
	if code != 1 {
		t.Fatalf("drift should exit 1, got %d", code)
	}
	if !strings.Contains(out, "- ") || !strings.Contains(out, "+ ") || !strings.Contains(out, "String") {
		t.Fatalf("diff output: %s", out)
	}

	out, code = run(t, "", "diff", "-patch", a, b)
	if code != 1 {
		t.Fatalf("drift should exit 1, got %d", code)
	}
	if !strings.Contains(out, `"age"`) || strings.Contains(out, `"name"`) {
		t.Fatalf("patch: %s", out)
	}
}

func TestRulesCommand(t *testing.T) {
	out, code := run(t, "", "rules")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, r := range inferskema.DecimalRules() {
		if !strings.Contains(out, r.String()) {
			t.Fatalf("%s missing from %s", r, out)
		}
	}
}
