package block

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed generation errors.
var (
	ErrMissingInput      = errors.New("missing block input")
	ErrUndeclaredRoutine = errors.New("undeclared routine")
)

// MissingInputError reports a required socket with nothing connected to it.
type MissingInputError struct {
	blockID int64
	socket  string
}

// NewMissingInputError creates a MissingInputError.
func NewMissingInputError(blockID int64, socket string) *MissingInputError {
	return &MissingInputError{blockID: blockID, socket: socket}
}

// BlockID returns the block whose socket is empty.
func (e *MissingInputError) BlockID() int64 { return e.blockID }

// Socket returns the name of the empty socket.
func (e *MissingInputError) Socket() string { return e.socket }

// Error implements the error interface.
func (e *MissingInputError) Error() string {
	return fmt.Sprintf("block %d: socket %q is not connected", e.blockID, e.socket)
}

// Is allows errors.Is(err, ErrMissingInput).
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// UndeclaredRoutineError reports a call to a routine that is never defined.
type UndeclaredRoutineError struct {
	blockID int64
	routine string
}

// NewUndeclaredRoutineError creates an UndeclaredRoutineError.
func NewUndeclaredRoutineError(blockID int64, routine string) *UndeclaredRoutineError {
	return &UndeclaredRoutineError{blockID: blockID, routine: routine}
}

// BlockID returns the calling block.
func (e *UndeclaredRoutineError) BlockID() int64 { return e.blockID }

// Routine returns the name that could not be resolved.
func (e *UndeclaredRoutineError) Routine() string { return e.routine }

// Error implements the error interface.
func (e *UndeclaredRoutineError) Error() string {
	return fmt.Sprintf("block %d: routine %q is not declared", e.blockID, e.routine)
}

// Is allows errors.Is(err, ErrUndeclaredRoutine).
func (e *UndeclaredRoutineError) Is(target error) bool {
	return target == ErrUndeclaredRoutine
}
