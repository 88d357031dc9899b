package source

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/yaml.v3"
)

// YAML decodes the first YAML document. Mapping order is preserved, aliases
// are resolved, !!binary scalars decode to []byte and !!timestamp scalars to
// time.Time.
func YAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("source: empty YAML input")
		}
		return nil, err
	}
	return yamlValue(&root)
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		doc := bson.D{}
		index := map[string]int{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.ShortTag() == "!!merge" {
				if err := mergeInto(&doc, index, v); err != nil {
					return nil, err
				}
				continue
			}
			val, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			setKey(&doc, index, k.Value, val)
		}
		return doc, nil
	case yaml.SequenceNode:
		arr := make(bson.A, 0, len(n.Content))
		for _, c := range n.Content {
			val, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("source: unsupported YAML node kind %d", n.Kind)
}

func yamlScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("source: line %d: invalid !!binary: %w", n.Line, err)
		}
		return b, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
		}
		return t, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: line %d: %w", n.Line, err)
	}
	return v, nil
}

// mergeInto applies a YAML merge key (<<); keys already present win.
func mergeInto(doc *bson.D, index map[string]int, n *yaml.Node) error {
	sources := []*yaml.Node{n}
	if n.Kind == yaml.SequenceNode {
		sources = n.Content
	}
	for _, s := range sources {
		v, err := yamlValue(s)
		if err != nil {
			return err
		}
		m, ok := v.(bson.D)
		if !ok {
			return fmt.Errorf("source: line %d: merge value is not a mapping", s.Line)
		}
		for _, e := range m {
			if _, exists := index[e.Key]; !exists {
				setKey(doc, index, e.Key, e.Value)
			}
		}
	}
	return nil
}

func setKey(doc *bson.D, index map[string]int, key string, val any) {
	if i, ok := index[key]; ok {
		(*doc)[i].Value = val
		return
	}
	index[key] = len(*doc)
	*doc = append(*doc, bson.E{Key: key, Value: val})
}
