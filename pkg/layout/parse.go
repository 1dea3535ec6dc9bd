package layout

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a layout document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// MaxSpan is the width of a full grid row.
const MaxSpan = 12

// Parse decodes and validates a layout document, sniffing its format.
func Parse(data []byte) (Grid, error) {
	return ParseFormat(data, FormatAuto)
}

// ParseFormat decodes and validates a layout document in the given format.
// Decoding and structural problems fail with *MalformedLayoutError.
func ParseFormat(data []byte, format Format) (Grid, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Grid{}, malformed("", "empty document")
	}
	if format == FormatAuto {
		format = sniff(trimmed)
	}

	var (
		grid Grid
		err  error
	)
	switch format {
	case FormatJSON:
		err = json.Unmarshal(trimmed, &grid)
	case FormatXML:
		err = xml.Unmarshal(trimmed, &grid)
	case FormatYAML:
		err = yaml.Unmarshal(trimmed, &grid)
	default:
		return Grid{}, fmt.Errorf("layout: unsupported format %q", format)
	}
	if err != nil {
		return Grid{}, &MalformedLayoutError{Reason: "decode " + string(format), Err: err}
	}
	if err := grid.Validate(); err != nil {
		return Grid{}, err
	}
	return grid, nil
}

// FormatFromName maps a file name or content type to a format.
func FormatFromName(name string) Format {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "json"):
		return FormatJSON
	case strings.Contains(lower, "xml"):
		return FormatXML
	case strings.Contains(lower, "yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	default:
		return FormatAuto
	}
}

func sniff(data []byte) Format {
	switch data[0] {
	case '{':
		return FormatJSON
	case '<':
		return FormatXML
	default:
		return FormatYAML
	}
}
