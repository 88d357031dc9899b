package inferskema

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// The tree marshals to the mongoose-style schema definition it describes:
//
//	{"name": {"type": "String", "required": true},
//	 "tags": {"type": ["String"], "required": true},
//	 "address": {"type": {"city": {"type": "String", "required": true}}, "required": true}}
//
// Attribute order is preserved in both JSON and YAML.

// MarshalJSON renders the kind's type token.
func (s *Scalar) MarshalJSON() ([]byte, error) { return json.Marshal(s.K.String()) }

// MarshalJSON renders "Array" for untyped collections and [elem] otherwise.
func (a *Array) MarshalJSON() ([]byte, error) {
	if a.Elem == nil {
		return json.Marshal(KindArray.String())
	}
	elem, err := json.Marshal(a.Elem)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{'['}, elem...), ']'), nil
}

// MarshalJSON renders the object as an ordered definition document.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := writeFieldJSON(&buf, f); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeFieldJSON(buf *bytes.Buffer, f Field) error {
	typ, err := json.Marshal(f.Type)
	if err != nil {
		return err
	}
	buf.WriteString(`{"type":`)
	buf.Write(typ)
	buf.WriteString(`,"required":`)
	buf.WriteString(strconv.FormatBool(f.Required))
	if f.HasDefault {
		def, err := json.Marshal(f.Default)
		if err != nil {
			return err
		}
		buf.WriteString(`,"default":`)
		buf.Write(def)
	}
	buf.WriteByte('}')
	return nil
}

// MarshalYAML renders the kind's type token.
func (s *Scalar) MarshalYAML() (any, error) { return strNode(s.K.String()), nil }

// MarshalYAML renders "Array" for untyped collections and [elem] otherwise.
func (a *Array) MarshalYAML() (any, error) {
	if a.Elem == nil {
		return strNode(KindArray.String()), nil
	}
	elem, err := typeNode(a.Elem)
	if err != nil {
		return nil, err
	}
	n := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{elem}}
	if elem.Kind == yaml.ScalarNode {
		n.Style = yaml.FlowStyle
	}
	return n, nil
}

// MarshalYAML renders the object as an ordered definition mapping.
func (o *Object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range o.Fields {
		fn, err := fieldNode(f)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, strNode(f.Name), fn)
	}
	return n, nil
}

func fieldNode(f Field) (*yaml.Node, error) {
	typ, err := typeNode(f.Type)
	if err != nil {
		return nil, err
	}
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content,
		strNode("type"), typ,
		strNode("required"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(f.Required)},
	)
	if f.HasDefault {
		def := &yaml.Node{}
		if err := def.Encode(f.Default); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, strNode("default"), def)
	}
	return n, nil
}

func typeNode(t Type) (*yaml.Node, error) {
	m, ok := t.(yaml.Marshaler)
	if !ok {
		return strNode(KindMixed.String()), nil
	}
	v, err := m.MarshalYAML()
	if err != nil {
		return nil, err
	}
	return v.(*yaml.Node), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// DefinitionJSON renders the tree as indented JSON.
func DefinitionJSON(o *Object, indent string) ([]byte, error) {
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return raw, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DefinitionYAML renders the tree as a YAML document.
func DefinitionYAML(o *Object) ([]byte, error) {
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
