package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson"
)

// JSON decodes a plain JSON document with goccy/go-json. Numbers are kept as
// json.Number and object keys keep their input order; a repeated key replaces
// the earlier value in place.
func JSON(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("source: empty JSON input")
		}
		return nil, err
	}
	v, err := decodeJSONValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("source: trailing data after JSON document")
	}
	return v, nil
}

func decodeJSONValue(dec *j.Decoder, tok any) (any, error) {
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		}
		return nil, fmt.Errorf("source: unexpected delimiter %q", rune(v))
	case string, bool, j.Number, nil:
		return v, nil
	case float64:
		// only without UseNumber; kept for completeness
		return v, nil
	}
	return nil, fmt.Errorf("source: unexpected token %T", tok)
}

func decodeJSONObject(dec *j.Decoder) (bson.D, error) {
	doc := bson.D{}
	index := map[string]int{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == '}' {
			return doc, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("source: expected object key, got %T", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		val, err := decodeJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			doc[i].Value = val
			continue
		}
		index[key] = len(doc)
		doc = append(doc, bson.E{Key: key, Value: val})
	}
}

func decodeJSONArray(dec *j.Decoder) (bson.A, error) {
	arr := bson.A{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(j.Delim); ok && d == ']' {
			return arr, nil
		}
		val, err := decodeJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
}
