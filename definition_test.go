package inferskema_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	inferskema "github.com/reoring/inferskema"
)

func TestDefinitionJSON(t *testing.T) {
	o := mustInfer(t, bson.D{
		{Key: "name", Value: "x"},
		{Key: "tags", Value: bson.A{"a"}},
		{Key: "any", Value: bson.A{}},
		{Key: "address", Value: bson.D{{Key: "city", Value: "T"}}},
		{Key: "items", Value: bson.A{bson.D{{Key: "sku", Value: "a"}}}},
	}, inferskema.Options{
		StronglyTypeArrays: true,
		OptionalAttributes: []string{"tags"},
		DefaultValues:      map[string]any{"name": "anon"},
	})
	got, err := inferskema.DefinitionJSON(o, "")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":{"type":"String","required":true,"default":"anon"},` +
		`"tags":{"type":["String"],"required":false},` +
		`"any":{"type":"Array","required":true},` +
		`"address":{"type":{"city":{"type":"String","required":true}},"required":true},` +
		`"items":{"type":[{"sku":{"type":"String","required":true}}],"required":true}}`
	if string(got) != want {
		t.Fatalf("definition mismatch\n got: %s\nwant: %s", got, want)
	}

	indented, err := inferskema.DefinitionJSON(o, "  ")
	if err != nil {
		t.Fatalf("indent: %v", err)
	}
	if len(indented) <= len(got) || indented[0] != '{' || indented[1] != '\n' {
		t.Fatalf("expected indented output, got %s", indented)
	}
}

func TestDefinitionYAML(t *testing.T) {
	o := mustInfer(t, bson.D{
		{Key: "name", Value: "x"},
		{Key: "tags", Value: bson.A{"a"}},
		{Key: "n", Value: 1},
	}, inferskema.Options{StronglyTypeArrays: true, DefaultValues: map[string]any{"n": 5}})
	got, err := inferskema.DefinitionYAML(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "name:\n" +
		"  type: String\n" +
		"  required: true\n" +
		"tags:\n" +
		"  type: [String]\n" +
		"  required: true\n" +
		"n:\n" +
		"  type: Number\n" +
		"  required: true\n" +
		"  default: 5\n"
	if string(got) != want {
		t.Fatalf("yaml mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}
