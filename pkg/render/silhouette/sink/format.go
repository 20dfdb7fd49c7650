package sink

import (
	"slices"
	"strings"

	"github.com/matzehuels/skyline/pkg/errors"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	// FormatDOT is the street plan rendered by package nodelink.
	FormatDOT Format = "dot"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatSVG, FormatPNG, FormatJSON, FormatDOT}

// ParseFormat parses a format name. "txt" is accepted for text.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "txt" {
		f = FormatText
	}
	if !slices.Contains(Formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want text, svg, png, json or dot)", s)
	}
	return f, nil
}

// ParseFormats parses a comma-separated list, dropping duplicates.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, nil
}

// Ext returns the file extension, without the dot.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool { return f == FormatPNG }
