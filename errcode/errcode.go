package errcode

// Code is a stable error identifier shared by the runtime glue.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	InvalidParams Code = "invalid_params"
	Timeout       Code = "timeout"

	// Arena
	NoMemory Code = "no_memory"
	Corrupt  Code = "arena_corrupt"

	// Unwind
	Uncaught       Code = "uncaught"
	StaleRecovery  Code = "stale_recovery"
	SwallowedJump  Code = "swallowed_jump"
	FatalReturned  Code = "fatal_returned"
	InvalidPayload Code = "invalid_payload"

	// Peripheral
	IO Code = "io"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E. A nil cause is allowed.
func Wrap(c Code, op string, err error) *E {
	e := &E{C: c, Op: op, Err: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// OfPayload maps an unwind payload to a Code. Non-error payloads map to
// Uncaught so fatal paths always have something printable.
func OfPayload(p any) Code {
	switch v := p.(type) {
	case nil:
		return Uncaught
	case error:
		return Of(v)
	default:
		return Uncaught
	}
}
