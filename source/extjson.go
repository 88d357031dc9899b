package source

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ExtJSON decodes MongoDB Extended JSON. Relaxed mode also accepts plain JSON.
// Any top-level value is allowed; non-documents are returned as decoded.
func ExtJSON(data []byte, canonical bool) (any, error) {
	wrapped := make([]byte, 0, len(data)+8)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, '}')
	var doc bson.D
	if err := bson.UnmarshalExtJSON(wrapped, canonical, &doc); err != nil {
		return nil, fmt.Errorf("source: extended JSON: %w", err)
	}
	if len(doc) != 1 {
		return nil, fmt.Errorf("source: extended JSON: expected a single value")
	}
	return doc[0].Value, nil
}
