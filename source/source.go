// Package source decodes sample documents into values Infer understands.
//
// Objects decode to bson.D so attribute order survives, arrays to bson.A.
// JSON numbers stay json.Number (go-json) so the decimal rules see their
// literal text; Extended JSON yields the driver's typed values (ObjectID,
// Decimal128, DateTime, Binary); YAML timestamps and !!binary scalars become
// time.Time and []byte.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/inferskema/i18n"
)

// Format names an input encoding.
type Format string

const (
	FormatAuto    Format = "auto"
	FormatJSON    Format = "json"
	FormatExtJSON Format = "extjson"
	FormatYAML    Format = "yaml"
)

// Options controls decoding.
type Options struct {
	// ParseDates turns RFC3339 strings into time.Time after decoding.
	ParseDates bool
	// Canonical restricts Extended JSON to canonical mode.
	Canonical bool
}

// ParseFormat resolves a format name; "" means auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "json", "j":
		return FormatJSON, nil
	case "extjson", "ejson", "bson":
		return FormatExtJSON, nil
	case "yaml", "yml", "y":
		return FormatYAML, nil
	}
	return "", errors.New("source: " + i18n.T("unknown_format", map[string]string{"format": s}))
}

// Detect picks a format from a file name. Unknown extensions fall back to
// JSON.
func Detect(name string) Format {
	base := strings.ToLower(filepath.Base(name))
	switch {
	case strings.HasSuffix(base, ".yaml"), strings.HasSuffix(base, ".yml"):
		return FormatYAML
	case strings.HasSuffix(base, ".ejson"), strings.HasSuffix(base, ".extjson"),
		strings.HasSuffix(base, ".bson.json"):
		return FormatExtJSON
	}
	return FormatJSON
}

// Decode decodes data in the given format. FormatAuto sniffs the first
// non-space byte: '{' or '[' is treated as Extended JSON (a superset of plain
// JSON), anything else as YAML.
func Decode(data []byte, f Format, opt Options) (any, error) {
	if f == FormatAuto {
		f = sniff(data)
	}
	var (
		v   any
		err error
	)
	switch f {
	case FormatJSON:
		v, err = JSON(data)
	case FormatExtJSON:
		v, err = ExtJSON(data, opt.Canonical)
	case FormatYAML:
		v, err = YAML(data)
	default:
		return nil, fmt.Errorf("source: unknown format %q", f)
	}
	if err != nil {
		return nil, err
	}
	if opt.ParseDates {
		v = parseDates(v)
	}
	return v, nil
}

// ReadFile decodes the file at path; FormatAuto picks the format from the
// file extension.
func ReadFile(path string, f Format, opt Options) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if f == FormatAuto {
		f = Detect(path)
	}
	v, err := Decode(data, f, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

func sniff(data []byte) Format {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', '[':
			return FormatExtJSON
		}
		return FormatYAML
	}
	return FormatYAML
}
