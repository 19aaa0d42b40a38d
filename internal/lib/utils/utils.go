// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// WriteJSON pretty-prints any Go value as indented JSON to w, followed by
// a newline.
//
// If the value contains unsupported types (channels, funcs, circular refs),
// the error from the encoder is returned and nothing is written.
func WriteJSON(w io.Writer, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal JSON")
	}

	encoded = append(encoded, '\n')
	if _, err := w.Write(encoded); err != nil {
		return errors.Wrap(err, "failed to write JSON")
	}
	return nil
}

// ReadJSON decodes a single JSON value from r into v and rejects trailing
// data.
func ReadJSON(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "failed to decode JSON")
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
