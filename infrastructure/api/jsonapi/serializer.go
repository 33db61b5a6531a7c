package jsonapi

import (
	"github.com/helixml/blockgen/application/service"
)

// Resource types.
const (
	TypeBlock  = "block"
	TypeSketch = "sketch"
)

// BlockAttributes represents block attributes in JSON:API format.
type BlockAttributes struct {
	Label      string   `json:"label"`
	Genus      string   `json:"genus"`
	ValueType  string   `json:"value_type,omitempty"`
	Template   string   `json:"template"`
	Sockets    []string `json:"sockets"`
	Structural bool     `json:"structural"`
}

// SketchAttributes represents a generated sketch in JSON:API format.
type SketchAttributes struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	HeaderFiles []string `json:"header_files"`
	Definitions []string `json:"definitions"`
	BlockCount  int      `json:"block_count"`
}

// BlockResource converts a catalogue entry into a JSON:API resource.
func BlockResource(b service.BlockInfo) *Resource {
	r := NewResource(TypeBlock, b.Name(), BlockAttributes{
		Label:      b.Label(),
		Genus:      string(b.Genus()),
		ValueType:  string(b.ValueType()),
		Template:   b.Template(),
		Sockets:    b.Sockets(),
		Structural: b.Structural(),
	})
	r.Links = &Links{Self: "/api/v1/blocks/" + b.Name()}
	return r
}

// BlockResources converts a catalogue into JSON:API resources.
func BlockResources(blocks []service.BlockInfo) []*Resource {
	resources := make([]*Resource, len(blocks))
	for i, b := range blocks {
		resources[i] = BlockResource(b)
	}
	return resources
}

// SketchResource converts a sketch into a JSON:API resource identified by
// the program name.
func SketchResource(s service.Sketch) *Resource {
	return NewResource(TypeSketch, s.Name(), SketchAttributes{
		Name:        s.Name(),
		Source:      s.Source(),
		HeaderFiles: s.HeaderFiles(),
		Definitions: s.Definitions(),
		BlockCount:  s.BlockCount(),
	})
}
