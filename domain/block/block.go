package block

import "fmt"

// Library header and object definition every InsectBot Hexa sketch needs.
const (
	HeaderInsectBotHexa = "InsectBotHexa.h"
	HeaderServo         = "Servo.h"
	ClassInsectBotHexa  = "InsectBotHexa"
	ObjectInsect        = "insect"
	DefinitionInsect    = ClassInsectBotHexa + " " + ObjectInsect + ";"
)

// Environment is the part of the shared translation context a block writes to.
// Both methods must ignore repeated registrations.
type Environment interface {
	AddHeaderFile(name string)
	AddDefinitionCommand(command string)
}

// EnsureEnvironment registers the InsectBot Hexa headers and robot object.
// Safe to call any number of times.
func EnsureEnvironment(env Environment) {
	env.AddHeaderFile(HeaderInsectBotHexa)
	env.AddHeaderFile(HeaderServo)
	env.AddDefinitionCommand(DefinitionInsect)
}

// Block is one placed instance of a variant. Immutable value object.
type Block struct {
	id     int64
	kind   Kind
	prefix string
	suffix string
	label  string
}

// New creates a Block. An empty label falls back to the variant's label.
func New(id int64, kind Kind, prefix, suffix, label string) (Block, error) {
	if !kind.Valid() {
		return Block{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if label == "" {
		label = kind.Label()
	}
	return Block{
		id:     id,
		kind:   kind,
		prefix: prefix,
		suffix: suffix,
		label:  label,
	}, nil
}

// ID returns the block identifier.
func (b Block) ID() int64 { return b.id }

// Kind returns the variant.
func (b Block) Kind() Kind { return b.kind }

// Prefix returns the text emitted before the template.
func (b Block) Prefix() string { return b.prefix }

// Suffix returns the text emitted after the template.
func (b Block) Suffix() string { return b.suffix }

// Label returns the display label.
func (b Block) Label() string { return b.label }

// Produce registers the block's environment and returns its code fragment.
func (b Block) Produce(env Environment) (string, error) {
	EnsureEnvironment(env)
	return b.prefix + b.kind.Template() + b.suffix, nil
}
