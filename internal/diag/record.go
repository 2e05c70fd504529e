package diag

import "encoding/json"

// RawValue is an unresolved call-argument handle as captured from the
// target. When the capture carried the value inline, Value holds its JSON
// encoding; otherwise ObjectID can be realized through an ArgumentRealizer.
// For error-valued arguments Description carries the message (and, after
// the first line, the raw stack text) and Cause the next error in the
// chain.
type RawValue struct {
	Type        string          `json:"type,omitempty"`
	Subtype     string          `json:"subtype,omitempty"`
	Value       json.RawMessage `json:"value,omitempty"`
	Description string          `json:"description,omitempty"`
	ObjectID    string          `json:"objectId,omitempty"`
	Cause       *RawError       `json:"cause,omitempty"`
}

// IsError reports whether the value's declared type marks it as an error
// object, in which case it is resolved as a SymbolizedError rather than a
// plain value.
func (v RawValue) IsError() bool {
	return v.Type == "object" && v.Subtype == "error"
}

// RawError describes an exception as captured from the target, before
// symbolication. Stack, when present, is the captured (possibly unmapped)
// stack; Cause links to the error that triggered this one.
type RawError struct {
	ExceptionID int64       `json:"exceptionId,omitempty"`
	Description string      `json:"description"`
	Stack       *StackTrace `json:"stack,omitempty"`
	Cause       *RawError   `json:"cause,omitempty"`
}

// Source is the input to Formatter construction: either a console message
// or an uncaught runtime error.
type Source interface {
	source()
}

// ConsoleMessage is a console API call captured from the target.
type ConsoleMessage struct {
	Kind  string      `json:"kind"`
	Text  string      `json:"text"`
	Args  []RawValue  `json:"args,omitempty"`
	Stack *StackTrace `json:"stack,omitempty"`
}

// UncaughtError is an uncaught runtime exception captured from the target.
type UncaughtError struct {
	Err RawError `json:"error"`
}

func (ConsoleMessage) source() {}
func (UncaughtError) source()  {}
