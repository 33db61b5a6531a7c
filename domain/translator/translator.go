// Package translator provides the shared context that collects headers,
// one-time definitions and routines while a program is translated, then
// assembles the final sketch.
package translator

import (
	"strings"
)

// orderedSet keeps insertion order and ignores duplicates.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(item string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[item]; ok {
		return false
	}
	s.seen[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

func (s *orderedSet) contains(item string) bool {
	_, ok := s.seen[item]
	return ok
}

func (s *orderedSet) list() []string {
	result := make([]string, len(s.items))
	copy(result, s.items)
	return result
}

// Routine is a generated function definition.
type Routine struct {
	name string
	body string
}

// Name returns the function name.
func (r Routine) Name() string { return r.name }

// Body returns the statements inside the function.
func (r Routine) Body() string { return r.body }

// Translator accumulates declarations for one translation run.
// It is not safe for concurrent use.
type Translator struct {
	headers     orderedSet
	definitions orderedSet
	setup       orderedSet
	declared    orderedSet
	routines    []Routine
}

// New creates an empty Translator.
func New() *Translator {
	return &Translator{}
}

// AddHeaderFile registers a header to include. Blank names are ignored.
func (t *Translator) AddHeaderFile(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	t.headers.add(name)
}

// AddDefinitionCommand registers a global statement emitted once.
func (t *Translator) AddDefinitionCommand(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}
	t.definitions.add(command)
}

// AddSetupCommand registers a statement emitted once at the top of setup().
func (t *Translator) AddSetupCommand(command string) {
	if strings.TrimSpace(command) == "" {
		return
	}
	t.setup.add(command)
}

// DeclareRoutine records that a routine with this name will be defined.
// It reports false when the name was already declared.
func (t *Translator) DeclareRoutine(name string) bool {
	return t.declared.add(name)
}

// IsRoutineDeclared reports whether name was declared.
func (t *Translator) IsRoutineDeclared(name string) bool {
	return t.declared.contains(name)
}

// AddRoutine appends a function definition to the sketch.
func (t *Translator) AddRoutine(name, body string) {
	t.declared.add(name)
	t.routines = append(t.routines, Routine{name: name, body: body})
}

// HeaderFiles returns the registered headers in registration order.
func (t *Translator) HeaderFiles() []string { return t.headers.list() }

// Definitions returns the registered definitions in registration order.
func (t *Translator) Definitions() []string { return t.definitions.list() }

// SetupCommands returns the registered setup commands in registration order.
func (t *Translator) SetupCommands() []string { return t.setup.list() }

// Routines returns the routine definitions in registration order.
func (t *Translator) Routines() []Routine {
	result := make([]Routine, len(t.routines))
	copy(result, t.routines)
	return result
}

// Assemble returns the complete sketch around the given setup and loop bodies.
func (t *Translator) Assemble(setupBody, loopBody string) string {
	var b strings.Builder

	if len(t.headers.items) > 0 {
		for _, h := range t.headers.items {
			b.WriteString("#include <")
			b.WriteString(h)
			b.WriteString(">\n")
		}
		b.WriteByte('\n')
	}

	if len(t.definitions.items) > 0 {
		for _, d := range t.definitions.items {
			writeLine(&b, d)
		}
		b.WriteByte('\n')
	}

	var setup strings.Builder
	for _, c := range t.setup.items {
		writeLine(&setup, c)
	}
	setup.WriteString(setupBody)
	writeFunction(&b, "setup", setup.String())
	b.WriteByte('\n')
	writeFunction(&b, "loop", loopBody)

	for _, r := range t.routines {
		b.WriteByte('\n')
		writeFunction(&b, r.name, r.body)
	}

	return b.String()
}

func writeFunction(b *strings.Builder, name, body string) {
	b.WriteString("void ")
	b.WriteString(name)
	b.WriteString("()\n{\n")
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		b.WriteByte('\n')
	}
}
