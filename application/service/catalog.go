package service

import (
	"github.com/helixml/blockgen/domain/block"
	"github.com/helixml/blockgen/domain/program"
)

// BlockInfo describes a block that may appear in a program document.
type BlockInfo struct {
	name      string
	label     string
	genus     block.Genus
	valueType block.ValueType
	template  string
	sockets   []string
}

// Name returns the wire name used in program documents.
func (b BlockInfo) Name() string { return b.name }

// Label returns the display label.
func (b BlockInfo) Label() string { return b.label }

// Genus returns where the block may be placed.
func (b BlockInfo) Genus() block.Genus { return b.genus }

// ValueType returns the expression type for value blocks.
func (b BlockInfo) ValueType() block.ValueType { return b.valueType }

// Template returns the emitted text. Structural blocks use %s for socket values.
func (b BlockInfo) Template() string { return b.template }

// Sockets returns the required socket names.
func (b BlockInfo) Sockets() []string {
	result := make([]string, len(b.sockets))
	copy(result, b.sockets)
	return result
}

// Structural reports whether the block is handled by the translation walk
// instead of the InsectBot Hexa block family.
func (b BlockInfo) Structural() bool {
	_, err := block.ParseKind(b.name)
	return err != nil
}

var structuralBlocks = []BlockInfo{
	{name: program.BlockCall, label: "call routine", genus: block.GenusCommand, template: "%s();\n"},
	{name: program.BlockDelay, label: "delay", genus: block.GenusCommand, template: "delay(%s);\n", sockets: []string{program.SocketMilliseconds}},
	{name: program.BlockIf, label: "if", genus: block.GenusCommand, template: "if (%s)\n{\n%s}\n", sockets: []string{program.SocketCondition}},
	{name: program.BlockNumber, label: "number", genus: block.GenusValue, valueType: block.ValueNumber, template: "%s"},
}

// Blocks returns every block a program may use: the robot blocks sorted by
// wire name, followed by the structural blocks.
func (s *Sketches) Blocks() []BlockInfo {
	specs := block.Catalog()
	result := make([]BlockInfo, 0, len(specs)+len(structuralBlocks))
	for _, spec := range specs {
		result = append(result, BlockInfo{
			name:      spec.Kind.String(),
			label:     spec.Label,
			genus:     spec.Genus,
			valueType: spec.ValueType,
			template:  spec.Template,
		})
	}
	return append(result, structuralBlocks...)
}
