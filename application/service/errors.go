package service

import "errors"

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("blockgen: client is closed")

// Translation errors raised while walking a program.
var (
	ErrGenusMismatch   = errors.New("block placed in the wrong position")
	ErrTypeMismatch    = errors.New("socket value has the wrong type")
	ErrInvalidLiteral  = errors.New("invalid number literal")
	ErrInvalidRoutine  = errors.New("invalid routine")
	ErrUnexpectedChild = errors.New("block carries children its kind does not define")
)
