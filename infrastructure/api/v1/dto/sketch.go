// Package dto holds request bodies for the v1 API.
package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingProgram indicates a sketch request without a program attribute.
var ErrMissingProgram = errors.New("data.attributes.program is required")

// SketchAttributes carries the program to translate. Program is either a
// program object or a string holding a YAML or JSON document.
type SketchAttributes struct {
	Program json.RawMessage `json:"program"`
}

// SketchData represents sketch request data in JSON:API format.
type SketchData struct {
	Type       string           `json:"type"`
	Attributes SketchAttributes `json:"attributes"`
}

// SketchRequest represents a JSON:API sketch request.
type SketchRequest struct {
	Data SketchData `json:"data"`
}

// ProgramDocument returns the program as bytes the loader can decode.
func (r SketchRequest) ProgramDocument() ([]byte, error) {
	raw := bytes.TrimSpace(r.Data.Attributes.Program)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrMissingProgram
	}
	if raw[0] != '"' {
		return raw, nil
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}
	return []byte(text), nil
}
