package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/skyline/pkg/building"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/street"
)

// ReadStreet decodes a street file from r and returns the street and the
// name recorded in the file (empty if none).
//
// The street is rebuilt by replaying every building through
// [street.Street.AddBuilding], row1 first, in file order. A file that breaks
// a street invariant is rejected with the coded error of the first offending
// building, wrapped with its row and identifier. Buildings without an "id"
// get a fresh one.
//
// ReadStreet does not close r.
func ReadStreet(r io.Reader, f Format) (*street.Street, string, error) {
	var data streetFile
	if err := decode(r, f, &data); err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}

	s, err := street.New(data.Length)
	if err != nil {
		return nil, "", err
	}
	for _, row := range []struct {
		id      street.RowID
		entries []buildingEntry
	}{
		{street.Row1, data.Row1},
		{street.Row2, data.Row2},
	} {
		for i, e := range row.entries {
			b, err := e.building()
			if err != nil {
				return nil, "", fmt.Errorf("%s building %d: %w", row.id, i+1, err)
			}
			if err := s.AddBuilding(row.id, b); err != nil {
				return nil, "", fmt.Errorf("%s building %s: %w", row.id, b.ID, err)
			}
		}
	}
	return s, data.Name, nil
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatJSON:
		return json.NewDecoder(r).Decode(v)
	case FormatYAML:
		return yaml.NewDecoder(r).Decode(v)
	case FormatTOML:
		_, err := toml.NewDecoder(r).Decode(v)
		return err
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported street file format %q", f)
}

// Unmarshal decodes a street file held in memory.
func Unmarshal(data []byte, f Format) (*street.Street, string, error) {
	return ReadStreet(bytes.NewReader(data), f)
}

// ImportStreet reads the street file at path, picking the format from the
// extension.
func ImportStreet(path string) (*street.Street, string, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, "", err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()
	return ReadStreet(file, f)
}

func (e buildingEntry) building() (building.Building, error) {
	cat, err := building.ParseCategory(e.Category)
	if err != nil {
		return building.Building{}, err
	}
	id := e.ID
	if id == "" {
		id = building.NewID()
	}
	return building.Building{
		ID:       id,
		Category: cat,
		Left:     e.Left,
		Length:   e.Length,
		Height:   e.Height,
		Owner:    e.Owner,
		Color:    e.Color,
		Rooms:    e.Rooms,
		Business: e.Business,
		Opening:  e.Opening,
		Closing:  e.Closing,
	}, nil
}
