package mcp

import (
	"fmt"
	"strings"
)

// blockURIScheme prefixes block resource URIs.
const blockURIScheme = "block://"

// BlockURI addresses one catalogue block as an MCP resource.
// Immutable value object.
type BlockURI struct {
	name string
}

// NewBlockURI creates a BlockURI for the named block.
func NewBlockURI(name string) BlockURI {
	return BlockURI{name: name}
}

// ParseBlockURI parses a block://{name} URI.
func ParseBlockURI(raw string) (BlockURI, error) {
	name, ok := strings.CutPrefix(raw, blockURIScheme)
	if !ok {
		return BlockURI{}, fmt.Errorf("not a block uri: %q", raw)
	}
	name = strings.Trim(name, "/")
	if name == "" || strings.Contains(name, "/") {
		return BlockURI{}, fmt.Errorf("invalid block uri: %q", raw)
	}
	return BlockURI{name: name}, nil
}

// Name returns the block wire name.
func (u BlockURI) Name() string { return u.name }

// String builds the block:// URI string.
func (u BlockURI) String() string {
	return blockURIScheme + u.name
}
