// This file contains the dispatch result taxonomy. Dispatch never panics or
// returns a Go error to its caller; every outcome is expressed as a
// DispatchResult so the runtime loop can report and continue.
package slashtypes

import "fmt"

// DispatchStatus classifies the outcome of dispatching one command line.
type DispatchStatus int

const (
	// StatusOK means every argument bound and the handler completed.
	StatusOK DispatchStatus = iota
	// StatusParseError means the line could not be tokenized or carried
	// more positional tokens than the command declares.
	StatusParseError
	// StatusUnknownCommand means the first token named no registered command.
	StatusUnknownCommand
	// StatusUnknownOption means a --flag matched no declared argument.
	StatusUnknownOption
	// StatusMissingArgument means a required argument stayed unbound.
	StatusMissingArgument
	// StatusInvalidValue means a bound token failed type conversion.
	StatusInvalidValue
	// StatusCanceled means the user abstained from a prompt; the handler
	// was never invoked.
	StatusCanceled
	// StatusHandlerError means the handler itself failed; the error is
	// caught at the dispatch boundary and carried on the result.
	StatusHandlerError
)

// String returns the status name for logging.
func (s DispatchStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusParseError:
		return "parse_error"
	case StatusUnknownCommand:
		return "unknown_command"
	case StatusUnknownOption:
		return "unknown_option"
	case StatusMissingArgument:
		return "missing_argument"
	case StatusInvalidValue:
		return "invalid_value"
	case StatusCanceled:
		return "canceled"
	case StatusHandlerError:
		return "handler_error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DispatchResult is the sole outcome type of dispatching a command line.
type DispatchResult struct {
	Status  DispatchStatus
	Command string

	// Argument names the offending spec for MissingArgument, InvalidValue
	// and UnknownOption outcomes.
	Argument string
	// Raw carries the token that failed conversion.
	Raw string
	// Detail carries free-form context for parse errors.
	Detail string
	// Err carries the caught handler error.
	Err error
}

// OK reports whether the dispatch succeeded.
func (r DispatchResult) OK() bool {
	return r.Status == StatusOK
}

// Message renders the single user-facing error line for a failed dispatch.
func (r DispatchResult) Message() string {
	switch r.Status {
	case StatusParseError:
		return fmt.Sprintf("Parse error: %s", r.Detail)
	case StatusUnknownCommand:
		return fmt.Sprintf("Unknown: %s", r.Command)
	case StatusUnknownOption:
		return fmt.Sprintf("Unknown option: %s", r.Argument)
	case StatusMissingArgument:
		return fmt.Sprintf("Missing: %s", r.Argument)
	case StatusInvalidValue:
		return fmt.Sprintf("Invalid value for %s", r.Argument)
	case StatusCanceled:
		return "Canceled"
	case StatusHandlerError:
		return fmt.Sprintf("Command failed: %v", r.Err)
	default:
		return ""
	}
}
