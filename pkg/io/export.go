package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

type streetFile struct {
	Name   string          `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Length int             `json:"length" yaml:"length" toml:"length"`
	Row1   []buildingEntry `json:"row1" yaml:"row1" toml:"row1"`
	Row2   []buildingEntry `json:"row2" yaml:"row2" toml:"row2"`
}

type buildingEntry struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Category string `json:"category" yaml:"category" toml:"category"`
	Left     int    `json:"left" yaml:"left" toml:"left"`
	Length   int    `json:"length" yaml:"length" toml:"length"`
	Height   int    `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Owner    string `json:"owner,omitempty" yaml:"owner,omitempty" toml:"owner,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Rooms    int    `json:"rooms,omitempty" yaml:"rooms,omitempty" toml:"rooms,omitempty"`
	Business string `json:"business,omitempty" yaml:"business,omitempty" toml:"business,omitempty"`
	Opening  string `json:"opening,omitempty" yaml:"opening,omitempty" toml:"opening,omitempty"`
	Closing  string `json:"closing,omitempty" yaml:"closing,omitempty" toml:"closing,omitempty"`
}

func entryOf(b building.Building) buildingEntry {
	return buildingEntry{
		ID:       b.ID,
		Category: b.Category.String(),
		Left:     b.Left,
		Length:   b.Length,
		Height:   b.Height,
		Owner:    b.Owner,
		Color:    b.Color,
		Rooms:    b.Rooms,
		Business: b.Business,
		Opening:  b.Opening,
		Closing:  b.Closing,
	}
}

// WriteStreet encodes s, with an optional name, and writes it to w.
// Buildings keep their identifiers, so [ReadStreet] restores an equal street.
func WriteStreet(w io.Writer, s *street.Street, name string, f Format) error {
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	out := streetFile{
		Name:   name,
		Length: s.Length(),
		Row1:   []buildingEntry{},
		Row2:   []buildingEntry{},
	}
	for _, b := range s.Row(street.Row1) {
		out.Row1 = append(out.Row1, entryOf(b))
	}
	for _, b := range s.Row(street.Row2) {
		out.Row2 = append(out.Row2, entryOf(b))
	}

	if err := encode(w, f, out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported street file format %q", f)
}

// Marshal encodes s into memory.
func Marshal(s *street.Street, name string, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteStreet(&buf, s, name, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportStreet writes s to a file at path, picking the format from the
// extension.
func ExportStreet(s *street.Street, name, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer file.Close()
	return WriteStreet(file, s, name, f)
}
