package parser

import (
	"errors"
	"fmt"
)

// Sentinel errors for the parser statuses that name a specific syntactic
// failure. ParseError.Unwrap exposes one of these so callers can test for
// a kind of failure with errors.Is instead of comparing Status directly.
// Modeled on nfa.CompileError's wrap-and-Unwrap idiom: StatusParserError
// covers failures with no single recurring cause (an empty pattern, a
// pattern that reduces to nothing) and so has no sentinel of its own.
var (
	// ErrParserUnsupported is wrapped by a ParseError whose Status is
	// StatusParserUnsupported.
	ErrParserUnsupported = errors.New("unsupported operator")

	// ErrParserUnexpected is wrapped by a ParseError whose Status is
	// StatusParserUnexpected.
	ErrParserUnexpected = errors.New("unexpected character")

	// ErrParserMissingLeftParenthesis is wrapped by a ParseError whose
	// Status is StatusParserMissingLeftParenthesis.
	ErrParserMissingLeftParenthesis = errors.New("missing left parenthesis")

	// ErrParserMissingRightParenthesis is wrapped by a ParseError whose
	// Status is StatusParserMissingRightParenthesis.
	ErrParserMissingRightParenthesis = errors.New("missing right parenthesis")
)

// sentinelFor returns the package sentinel a ParseError of this Status
// should wrap, or nil if the status has none.
func sentinelFor(status Status) error {
	switch status {
	case StatusParserUnsupported:
		return ErrParserUnsupported
	case StatusParserUnexpected:
		return ErrParserUnexpected
	case StatusParserMissingLeftParenthesis:
		return ErrParserMissingLeftParenthesis
	case StatusParserMissingRightParenthesis:
		return ErrParserMissingRightParenthesis
	default:
		return nil
	}
}

// Status is the stable identifier for a parser outcome, per the engine's
// status taxonomy. Success is never carried on a ParseError - ParseError
// only exists for failures.
type Status byte

const (
	// StatusSuccess indicates nothing went wrong. Never attached to a
	// ParseError; exported so callers can compare against a zero Pattern's
	// status before Compile has run.
	StatusSuccess Status = iota

	// StatusOutOfMemory is a runtime allocation failure, not a parser error.
	// Listed here because it shares the taxonomy with the parser statuses.
	StatusOutOfMemory

	// StatusParserError is a generic parse failure not covered by a more
	// specific status below (e.g. an empty pattern).
	StatusParserError

	// StatusParserUnsupported is an operator the grammar recognizes but
	// does not implement (*, +, ?, ^, $, [, {).
	StatusParserUnsupported

	// StatusParserUnexpected is a syntactic error at a known byte offset,
	// such as a dangling backslash or an escape of a non-escapable byte.
	StatusParserUnexpected

	// StatusParserMissingLeftParenthesis is an unmatched ')'.
	StatusParserMissingLeftParenthesis

	// StatusParserMissingRightParenthesis is an unclosed '('.
	StatusParserMissingRightParenthesis
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusOutOfMemory:
		return "OutOfMemory"
	case StatusParserError:
		return "ParserError"
	case StatusParserUnsupported:
		return "ParserUnsupported"
	case StatusParserUnexpected:
		return "ParserUnexpected"
	case StatusParserMissingLeftParenthesis:
		return "ParserMissingLeftParenthesis"
	case StatusParserMissingRightParenthesis:
		return "ParserMissingRightParenthesis"
	default:
		return fmt.Sprintf("Status(%d)", byte(s))
	}
}

// ParseError reports a failure to parse a pattern. It carries the kind of
// failure, the byte offset of the offending character within the pattern,
// a human-readable message, and - for statuses that name one - the
// package sentinel error Unwrap exposes.
type ParseError struct {
	Status  Status
	Offset  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the sentinel error matching e.Status, or nil for statuses
// that don't name one (StatusParserError, StatusOutOfMemory).
func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(status Status, offset int, message string) *ParseError {
	return &ParseError{Status: status, Offset: offset, Message: message, Err: sentinelFor(status)}
}
