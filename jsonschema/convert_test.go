package jsonschema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	inferskema "github.com/reoring/inferskema"
	js "github.com/reoring/inferskema/jsonschema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFromTree_Standard(t *testing.T) {
	tree, err := inferskema.Infer(bson.D{
		{Key: "name", Value: "x"},
		{Key: "tags", Value: bson.A{"a", "b"}},
		{Key: "address", Value: bson.D{{Key: "city", Value: "Tokyo"}}},
		{Key: "note", Value: nil},
	}, inferskema.Options{StronglyTypeArrays: true, OptionalAttributes: []string{"note"}})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}

	got := js.FromTree(tree, js.Standard)
	want := &js.Schema{
		Type: "object",
		Properties: map[string]*js.Schema{
			"name": {Type: "string"},
			"tags": {Type: "array", Items: &js.Schema{Type: "string"}},
			"address": {
				Type:       "object",
				Properties: map[string]*js.Schema{"city": {Type: "string"}},
				Required:   []string{"city"},
			},
			"note": {},
		},
		Required: []string{"name", "tags", "address"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTree_MongoDialect(t *testing.T) {
	dec, _ := primitive.ParseDecimal128("1.5")
	tree, err := inferskema.Infer(bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "price", Value: dec},
		{Key: "blob", Value: []byte("x")},
		{Key: "labels", Value: inferskema.Map{"a": "b"}},
	}, inferskema.Options{DefaultValues: map[string]any{"price": "0"}})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}

	got := js.FromTree(tree, js.Mongo)
	if got.BSONType != "object" || got.Type != "" {
		t.Fatalf("root: %+v", got)
	}
	cases := map[string]string{"_id": "objectId", "price": "decimal", "blob": "binData", "labels": "object"}
	for name, bt := range cases {
		if p := got.Properties[name]; p == nil || p.BSONType != bt {
			t.Fatalf("%s: want bsonType %s, got %+v", name, bt, p)
		}
	}
	if got.Properties["price"].Default != "0" {
		t.Fatalf("default not carried: %+v", got.Properties["price"])
	}
	if got.Properties["labels"].AdditionalProperties != true {
		t.Fatalf("map should allow additional properties")
	}
}
