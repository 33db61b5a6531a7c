package service

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/helixml/blockgen/domain/block"
	"github.com/helixml/blockgen/domain/program"
	"github.com/helixml/blockgen/domain/translator"
	"github.com/helixml/blockgen/internal/log"
)

var routineNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// numberLiteralPattern matches the decimal literals C++ accepts unchanged.
var numberLiteralPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// reservedRoutineNames holds names the sketch already defines, names the
// Arduino core reserves and the C++ keywords.
var reservedRoutineNames = newNameSet(
	"setup", "loop", "main", "delay", "Serial",
	block.ClassInsectBotHexa, block.ObjectInsect, "Servo",

	"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor",
	"bool", "break", "case", "catch", "char", "char8_t", "char16_t", "char32_t",
	"class", "compl", "concept", "const", "consteval", "constexpr", "constinit",
	"const_cast", "continue", "co_await", "co_return", "co_yield", "decltype",
	"default", "delete", "do", "double", "dynamic_cast", "else", "enum",
	"explicit", "export", "extern", "false", "float", "for", "friend", "goto",
	"if", "inline", "int", "long", "mutable", "namespace", "new", "noexcept",
	"not", "not_eq", "nullptr", "operator", "or", "or_eq", "private",
	"protected", "public", "register", "reinterpret_cast", "requires", "return",
	"short", "signed", "sizeof", "static", "static_assert", "static_cast",
	"struct", "switch", "template", "this", "thread_local", "throw", "true",
	"try", "typedef", "typeid", "typename", "union", "unsigned", "using",
	"virtual", "void", "volatile", "wchar_t", "while", "xor", "xor_eq",
)

func newNameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Sketch is the generated Arduino source for one program.
type Sketch struct {
	name        string
	source      string
	headers     []string
	definitions []string
	blockCount  int
}

// NewSketch creates a Sketch.
func NewSketch(name, source string, headers, definitions []string, blockCount int) Sketch {
	return Sketch{
		name:        name,
		source:      source,
		headers:     headers,
		definitions: definitions,
		blockCount:  blockCount,
	}
}

// Name returns the program name.
func (s Sketch) Name() string { return s.name }

// Source returns the complete sketch text.
func (s Sketch) Source() string { return s.source }

// HeaderFiles returns the included headers in order.
func (s Sketch) HeaderFiles() []string {
	result := make([]string, len(s.headers))
	copy(result, s.headers)
	return result
}

// Definitions returns the one-time global definitions in order.
func (s Sketch) Definitions() []string {
	result := make([]string, len(s.definitions))
	copy(result, s.definitions)
	return result
}

// BlockCount returns the number of blocks that were translated.
func (s Sketch) BlockCount() int { return s.blockCount }

// Sketches translates programs into Arduino sketches.
// Each call uses its own translator, so one Sketches value serves concurrent callers.
type Sketches struct {
	setupCommands []string
	logger        *slog.Logger
}

// NewSketches creates a new Sketches service. setupCommands are emitted at
// the top of setup() in every sketch.
func NewSketches(logger *slog.Logger, setupCommands []string) *Sketches {
	if logger == nil {
		logger = slog.Default()
	}
	commands := make([]string, len(setupCommands))
	copy(commands, setupCommands)
	return &Sketches{
		setupCommands: commands,
		logger:        logger,
	}
}

// Translate walks the program in order and returns the assembled sketch.
// MissingInputError and UndeclaredRoutineError from the block package abort
// the run and are returned wrapped.
func (s *Sketches) Translate(ctx context.Context, prog program.Program) (Sketch, error) {
	if err := ctx.Err(); err != nil {
		return Sketch{}, fmt.Errorf("translate: %w", err)
	}
	ctx = log.WithProgram(ctx, prog.Name)

	prog = prog.Clone()
	prog.AssignIDs()

	tr := translator.New()
	for _, c := range s.setupCommands {
		tr.AddSetupCommand(c)
	}
	if err := declareRoutines(tr, prog.Routines); err != nil {
		return Sketch{}, err
	}

	w := walker{tr: tr}

	setup, err := w.statements(prog.Setup)
	if err != nil {
		return Sketch{}, fmt.Errorf("translate setup: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Sketch{}, fmt.Errorf("translate loop: %w", err)
	}
	loop, err := w.statements(prog.Loop)
	if err != nil {
		return Sketch{}, fmt.Errorf("translate loop: %w", err)
	}
	for _, r := range prog.Routines {
		if err := ctx.Err(); err != nil {
			return Sketch{}, fmt.Errorf("translate routine %s: %w", r.Name, err)
		}
		body, err := w.statements(r.Body)
		if err != nil {
			return Sketch{}, fmt.Errorf("translate routine %s: %w", r.Name, err)
		}
		tr.AddRoutine(r.Name, body)
	}

	sketch := NewSketch(prog.Name, tr.Assemble(setup, loop), tr.HeaderFiles(), tr.Definitions(), prog.Count())

	log.Wrap(s.logger).WithContext(ctx).Debug("sketch translated",
		slog.Int("blocks", sketch.BlockCount()),
		slog.Int("headers", len(sketch.headers)),
		slog.Int("routines", len(prog.Routines)),
	)

	return sketch, nil
}

func declareRoutines(tr *translator.Translator, routines []program.Routine) error {
	for _, r := range routines {
		if !routineNamePattern.MatchString(r.Name) {
			return fmt.Errorf("%w: %q is not a valid identifier", ErrInvalidRoutine, r.Name)
		}
		if _, reserved := reservedRoutineNames[r.Name]; reserved {
			return fmt.Errorf("%w: %q is reserved", ErrInvalidRoutine, r.Name)
		}
		if !tr.DeclareRoutine(r.Name) {
			return fmt.Errorf("%w: %q is defined twice", ErrInvalidRoutine, r.Name)
		}
	}
	return nil
}

// walker produces code for nodes against one shared translator.
type walker struct {
	tr *translator.Translator
}

func (w walker) statements(nodes []program.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		code, err := w.statement(n)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

func (w walker) statement(n program.Node) (string, error) {
	switch n.Block {
	case program.BlockIf:
		if err := checkChildren(n, true, program.SocketCondition); err != nil {
			return "", err
		}
		cond, err := w.socket(n, program.SocketCondition, block.ValueBoolean)
		if err != nil {
			return "", err
		}
		body, err := w.statements(n.Do)
		if err != nil {
			return "", err
		}
		return n.Prefix + "if (" + cond + ")\n{\n" + body + "}\n" + n.Suffix, nil

	case program.BlockDelay:
		if err := checkChildren(n, false, program.SocketMilliseconds); err != nil {
			return "", err
		}
		ms, err := w.socket(n, program.SocketMilliseconds, block.ValueNumber)
		if err != nil {
			return "", err
		}
		return n.Prefix + "delay(" + ms + ");\n" + n.Suffix, nil

	case program.BlockCall:
		if err := checkChildren(n, false); err != nil {
			return "", err
		}
		if !w.tr.IsRoutineDeclared(n.Routine) {
			return "", block.NewUndeclaredRoutineError(n.ID, n.Routine)
		}
		return n.Prefix + n.Routine + "();\n" + n.Suffix, nil

	case program.BlockNumber:
		return "", mismatch(n, "a value block cannot stand alone as a statement")
	}

	b, err := newBlock(n)
	if err != nil {
		return "", err
	}
	if b.Kind().Genus() != block.GenusCommand {
		return "", mismatch(n, "a value block cannot stand alone as a statement")
	}
	if err := checkChildren(n, false); err != nil {
		return "", err
	}
	return b.Produce(w.tr)
}

func (w walker) socket(parent program.Node, name string, want block.ValueType) (string, error) {
	n := parent.Socket(name)
	if n == nil {
		return "", block.NewMissingInputError(parent.ID, name)
	}
	return w.value(*n, want)
}

func (w walker) value(n program.Node, want block.ValueType) (string, error) {
	switch n.Block {
	case program.BlockNumber:
		if want != block.ValueNumber {
			return "", typeMismatch(n, want, block.ValueNumber)
		}
		if err := checkChildren(n, false); err != nil {
			return "", err
		}
		literal := strings.TrimSpace(n.Value)
		if !numberLiteralPattern.MatchString(literal) {
			return "", fmt.Errorf("%w: block %d: %q", ErrInvalidLiteral, n.ID, n.Value)
		}
		return n.Prefix + literal + n.Suffix, nil

	case program.BlockIf, program.BlockDelay, program.BlockCall:
		return "", mismatch(n, "a command block cannot fill a socket")
	}

	b, err := newBlock(n)
	if err != nil {
		return "", err
	}
	if b.Kind().Genus() != block.GenusValue {
		return "", mismatch(n, "a command block cannot fill a socket")
	}
	if got := b.Kind().ValueType(); got != want {
		return "", typeMismatch(n, want, got)
	}
	if err := checkChildren(n, false); err != nil {
		return "", err
	}
	return b.Produce(w.tr)
}

// checkChildren rejects nested statements and sockets the node's kind does
// not define. Every block counted in a program must reach the output.
func checkChildren(n program.Node, takesStatements bool, sockets ...string) error {
	if len(n.Do) > 0 && !takesStatements {
		return fmt.Errorf("%w: block %d (%s) takes no nested statements", ErrUnexpectedChild, n.ID, n.Block)
	}
	for _, name := range slices.Sorted(maps.Keys(n.Sockets)) {
		if n.Sockets[name] != nil && !slices.Contains(sockets, name) {
			return fmt.Errorf("%w: block %d (%s) has no socket %q", ErrUnexpectedChild, n.ID, n.Block, name)
		}
	}
	return nil
}

func newBlock(n program.Node) (block.Block, error) {
	kind, err := block.ParseKind(n.Block)
	if err != nil {
		return block.Block{}, fmt.Errorf("block %d: %w", n.ID, err)
	}
	return block.New(n.ID, kind, n.Prefix, n.Suffix, n.Label)
}

func mismatch(n program.Node, reason string) error {
	return fmt.Errorf("%w: block %d (%s): %s", ErrGenusMismatch, n.ID, n.Block, reason)
}

func typeMismatch(n program.Node, want, got block.ValueType) error {
	return fmt.Errorf("%w: block %d (%s): want %s, got %s", ErrTypeMismatch, n.ID, n.Block, want, got)
}
