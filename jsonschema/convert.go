package jsonschema

import (
	inferskema "github.com/reoring/inferskema"
)

// Dialect selects how inferred kinds are projected.
type Dialect int

const (
	// Standard emits plain JSON Schema types and formats only.
	Standard Dialect = iota
	// Mongo emits bsonType instead of type, for use in $jsonSchema validators.
	Mongo
)

type projection struct {
	typ      string
	format   string
	bsonType string
}

var projections = map[inferskema.Kind]projection{
	inferskema.KindString:     {typ: "string", bsonType: "string"},
	inferskema.KindNumber:     {typ: "number", bsonType: "number"},
	inferskema.KindDate:       {typ: "string", format: "date-time", bsonType: "date"},
	inferskema.KindBuffer:     {typ: "string", format: "byte", bsonType: "binData"},
	inferskema.KindBoolean:    {typ: "boolean", bsonType: "bool"},
	inferskema.KindObjectID:   {typ: "string", format: "objectid", bsonType: "objectId"},
	inferskema.KindArray:      {typ: "array", bsonType: "array"},
	inferskema.KindDecimal128: {typ: "string", format: "decimal", bsonType: "decimal"},
	inferskema.KindMap:        {typ: "object", bsonType: "object"},
	inferskema.KindObject:     {typ: "object", bsonType: "object"},
}

// FromTree projects an inferred tree into a JSON Schema. Mixed fields accept
// any value and carry no type.
func FromTree(o *inferskema.Object, d Dialect) *Schema {
	return fromType(o, d)
}

func fromType(t inferskema.Type, d Dialect) *Schema {
	s := &Schema{}
	if t == nil {
		return s
	}
	if p, ok := projections[t.Kind()]; ok {
		if d == Mongo {
			s.BSONType = p.bsonType
		} else {
			s.Type, s.Format = p.typ, p.format
		}
	}
	switch x := t.(type) {
	case *inferskema.Array:
		if x.Elem != nil {
			s.Items = fromType(x.Elem, d)
		}
	case *inferskema.Object:
		s.Properties = make(map[string]*Schema, len(x.Fields))
		for _, f := range x.Fields {
			fs := fromType(f.Type, d)
			if f.HasDefault {
				fs.Default = f.Default
			}
			s.Properties[f.Name] = fs
			if f.Required {
				s.Required = append(s.Required, f.Name)
			}
		}
	}
	if t.Kind() == inferskema.KindMap {
		s.AdditionalProperties = true
	}
	return s
}
