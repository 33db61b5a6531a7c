// Package loader decodes program documents. Documents are YAML; JSON input
// is accepted as well since it is a subset of YAML.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/helixml/blockgen/domain/program"
	"gopkg.in/yaml.v3"
)

// Decoding errors.
var (
	ErrEmptyProgram   = errors.New("empty program document")
	ErrInvalidProgram = errors.New("invalid program document")
)

// Document is the serialized form of a program.
type Document struct {
	Name     string            `yaml:"name,omitempty" json:"name,omitempty"`
	Setup    []NodeDocument    `yaml:"setup,omitempty" json:"setup,omitempty"`
	Loop     []NodeDocument    `yaml:"loop,omitempty" json:"loop,omitempty"`
	Routines []RoutineDocument `yaml:"routines,omitempty" json:"routines,omitempty"`
}

// RoutineDocument is the serialized form of a routine.
type RoutineDocument struct {
	Name string         `yaml:"name" json:"name"`
	Body []NodeDocument `yaml:"body" json:"body"`
}

// NodeDocument is the serialized form of one placed block.
type NodeDocument struct {
	ID      int64                    `yaml:"id,omitempty" json:"id,omitempty"`
	Block   string                   `yaml:"block" json:"block"`
	Label   string                   `yaml:"label,omitempty" json:"label,omitempty"`
	Prefix  string                   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix  string                   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Value   string                   `yaml:"value,omitempty" json:"value,omitempty"`
	Routine string                   `yaml:"routine,omitempty" json:"routine,omitempty"`
	Sockets map[string]*NodeDocument `yaml:"sockets,omitempty" json:"sockets,omitempty"`
	Do      []NodeDocument           `yaml:"do,omitempty" json:"do,omitempty"`
}

// Decode parses a program from YAML or JSON bytes. Unknown fields are rejected.
func Decode(data []byte) (program.Program, error) {
	return Read(bytes.NewReader(data))
}

// Read parses a program from r.
func Read(r io.Reader) (program.Program, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return program.Program{}, ErrEmptyProgram
		}
		return program.Program{}, fmt.Errorf("%w: %v", ErrInvalidProgram, err)
	}
	return doc.ToProgram()
}

// Load reads a program file. A program without a name takes the file's base
// name.
func Load(path string) (program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return program.Program{}, fmt.Errorf("open program: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := Read(f)
	if err != nil {
		return program.Program{}, fmt.Errorf("%s: %w", path, err)
	}
	if prog.Name == "" {
		base := filepath.Base(path)
		prog.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return prog, nil
}

// Encode renders a program as YAML.
func Encode(p program.Program) ([]byte, error) {
	data, err := yaml.Marshal(FromProgram(p))
	if err != nil {
		return nil, fmt.Errorf("encode program: %w", err)
	}
	return data, nil
}

// ToProgram converts the document into the domain program.
func (d Document) ToProgram() (program.Program, error) {
	setup, err := toNodes(d.Setup, "setup")
	if err != nil {
		return program.Program{}, err
	}
	loop, err := toNodes(d.Loop, "loop")
	if err != nil {
		return program.Program{}, err
	}
	var routines []program.Routine
	for i, r := range d.Routines {
		body, err := toNodes(r.Body, fmt.Sprintf("routines[%d].body", i))
		if err != nil {
			return program.Program{}, err
		}
		routines = append(routines, program.Routine{Name: r.Name, Body: body})
	}
	return program.Program{
		Name:     d.Name,
		Setup:    setup,
		Loop:     loop,
		Routines: routines,
	}, nil
}

func toNodes(docs []NodeDocument, path string) ([]program.Node, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	nodes := make([]program.Node, len(docs))
	for i, d := range docs {
		n, err := toNode(d, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func toNode(d NodeDocument, path string) (program.Node, error) {
	if strings.TrimSpace(d.Block) == "" {
		return program.Node{}, fmt.Errorf("%w: %s: block name is required", ErrInvalidProgram, path)
	}
	if d.ID < 0 {
		return program.Node{}, fmt.Errorf("%w: %s: id must not be negative", ErrInvalidProgram, path)
	}
	n := program.Node{
		ID:      d.ID,
		Block:   strings.TrimSpace(d.Block),
		Label:   d.Label,
		Prefix:  d.Prefix,
		Suffix:  d.Suffix,
		Value:   d.Value,
		Routine: d.Routine,
	}
	if len(d.Sockets) > 0 {
		n.Sockets = make(map[string]*program.Node, len(d.Sockets))
		for name, s := range d.Sockets {
			if s == nil {
				continue
			}
			child, err := toNode(*s, path+".sockets."+name)
			if err != nil {
				return program.Node{}, err
			}
			n.Sockets[name] = &child
		}
	}
	do, err := toNodes(d.Do, path+".do")
	if err != nil {
		return program.Node{}, err
	}
	n.Do = do
	return n, nil
}

// FromProgram converts a domain program into its document form.
func FromProgram(p program.Program) Document {
	doc := Document{
		Name:  p.Name,
		Setup: fromNodes(p.Setup),
		Loop:  fromNodes(p.Loop),
	}
	for _, r := range p.Routines {
		doc.Routines = append(doc.Routines, RoutineDocument{Name: r.Name, Body: fromNodes(r.Body)})
	}
	return doc
}

func fromNodes(nodes []program.Node) []NodeDocument {
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]NodeDocument, len(nodes))
	for i, n := range nodes {
		docs[i] = fromNode(n)
	}
	return docs
}

func fromNode(n program.Node) NodeDocument {
	d := NodeDocument{
		ID:      n.ID,
		Block:   n.Block,
		Label:   n.Label,
		Prefix:  n.Prefix,
		Suffix:  n.Suffix,
		Value:   n.Value,
		Routine: n.Routine,
		Do:      fromNodes(n.Do),
	}
	if len(n.Sockets) > 0 {
		d.Sockets = make(map[string]*NodeDocument, len(n.Sockets))
		for name, s := range n.Sockets {
			if s == nil {
				continue
			}
			child := fromNode(*s)
			d.Sockets[name] = &child
		}
	}
	return d
}
