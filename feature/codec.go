// SPDX-License-Identifier: MIT

package feature

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read decodes one JSON sequence from r and validates it.
func Read(r io.Reader) (Sequence, error) {
	var s Sequence
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Sequence{}, fmt.Errorf("decode sequence: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Sequence{}, err
	}

	return s, nil
}

// Load reads and validates the JSON sequence stored at path.
func Load(path string) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sequence{}, fmt.Errorf("open sequence: %w", err)
	}
	defer f.Close()

	s, err := Read(f)
	if err != nil {
		return Sequence{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Write encodes s as indented JSON.
func Write(w io.Writer, s Sequence) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode sequence: %w", err)
	}

	return nil
}
