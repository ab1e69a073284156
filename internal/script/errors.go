package script

import "errors"

// Errors returned by engine operations.
var (
	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("script engine is closed")

	// ErrNoIndentRule indicates a script that defines no indent function.
	ErrNoIndentRule = errors.New("script defines no indent function")
)
