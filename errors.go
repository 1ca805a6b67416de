// Package jmeta provides the error domain shared by every component of
// the aggregator: a single tagged error type and the closed set of
// error kinds components report through (spec §7). The normalized
// artifact record itself lives in the artifact subpackage.
package jmeta

import (
	"errors"
	"strings"
)

// Error is the jmeta error domain type.
//
// Errors coming from jmeta components should be able to be inspected as
// ([errors.As]) an *Error at some point in the error chain. Components
// should create an Error at the system boundary (a failed HTTP call, a
// database error, a file read) and intermediate layers should prefer
// wrapping with "%w" over constructing another Error, except to add
// additional ErrorKind information.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
}

var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	b.WriteString("[")
	switch e.Kind {
	case ErrConfigMissing, ErrNetwork, ErrDecode, ErrVendorFatal, ErrDb, ErrIo:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is] by comparing error kind. Callers should compare
// against a declared ErrorKind rather than a specific *Error value.
func (e *Error) Is(kind error) bool {
	return errors.Is(e.Kind, kind)
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind represents the closed set of error classes reported by
// jmeta components, per spec §7.
type ErrorKind string

// Error implements error so ErrorKind values can be used directly with
// [errors.Is].
func (k ErrorKind) Error() string { return string(k) }

// Defined error kinds.
var (
	ErrConfigMissing = ErrorKind("config-missing") // required configuration absent
	ErrNetwork       = ErrorKind("network")         // HTTP transport or non-2xx status
	ErrDecode        = ErrorKind("decode")           // JSON/HTML/markdown/regex parse failure
	ErrVendorFatal   = ErrorKind("vendor-fatal")     // scraper cannot proceed
	ErrDb            = ErrorKind("db")               // persistence failure
	ErrIo            = ErrorKind("io")               // filesystem failure
)
