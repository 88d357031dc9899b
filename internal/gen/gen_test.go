package gen

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	inferskema "github.com/reoring/inferskema"
)

func TestRenderFile_Structs(t *testing.T) {
	tree, err := inferskema.Infer(bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "user_name", Value: "ada"},
		{Key: "address", Value: bson.D{{Key: "city", Value: "Tokyo"}}},
		{Key: "items", Value: bson.A{bson.D{{Key: "sku", Value: "a"}}}},
		{Key: "note", Value: nil},
	}, inferskema.Options{StronglyTypeArrays: true, OptionalAttributes: []string{"note"}})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	out, err := RenderFile(File{Package: "models", Type: "user"}, tree)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// gofmt aligns fields; compare with whitespace collapsed
	src := strings.Join(strings.Fields(string(out)), " ")
	for _, want := range []string{
		"package models",
		`"go.mongodb.org/mongo-driver/bson/primitive"`,
		"type User struct",
		"ID primitive.ObjectID `bson:\"_id\" json:\"_id\"`",
		"UserName string",
		"Address UserAddress",
		"type UserAddress struct",
		"Items []UserItemsItem",
		"type UserItemsItem struct",
		"SKU string",
		"Note any `bson:\"note,omitempty\" json:\"note,omitempty\"`",
	} {
		if !strings.Contains(src, want) {
			t.Fatalf("missing %q in:\n%s", want, src)
		}
	}
	if strings.Contains(src, `"time"`) {
		t.Fatalf("unused import rendered:\n%s", src)
	}
}

func TestExportedName(t *testing.T) {
	cases := map[string]string{
		"_id":        "ID",
		"created_at": "CreatedAt",
		"userName":   "UserName",
		"apiURL":     "APIURL",
		"2fa":        "F2fa",
		"":           "Field",
	}
	for in, want := range cases {
		if got := exportedName(in); got != want {
			t.Fatalf("exportedName(%q) = %q want %q", in, got, want)
		}
	}
}

func TestRenderFile_InvalidPackage(t *testing.T) {
	tree, _ := inferskema.Infer(bson.D{{Key: "a", Value: 1}}, inferskema.Options{})
	if _, err := RenderFile(File{Package: "bad-name"}, tree); err == nil {
		t.Fatalf("expected error")
	}
}
