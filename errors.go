package main

import "errors"

// interpError is a recoverable evaluation error: the REPL reports it and
// moves on to the next line.  Anything else that comes out of evaluation is
// treated as fatal to the session.
type interpError string

func (e interpError) Error() string { return string(e) }

// Error text prints verbatim after "Error: ", so it is part of the line
// protocol rather than conventional Go error prose.
const (
	errStackOverflow    interpError = "Stack overflow"
	errStackUnderflow   interpError = "Stack underflow"
	errStackEmpty       interpError = "Stack empty"
	errDivisionByZero   interpError = "Division by zero"
	errAlreadyCompiling interpError = "Already compiling"
	errNotCompiling     interpError = "Not compiling"
	errDictionaryFull   interpError = "Dictionary full"
	errWordTooLong      interpError = "Word too long"
	errUnknownWord      interpError = "Unknown word"
	errUnknownBuiltin   interpError = "Unknown builtin"
)

// errBye ends the session from inside the bye builtin.  Run treats it as a
// clean exit alongside io.EOF.
var errBye = errors.New("bye")
