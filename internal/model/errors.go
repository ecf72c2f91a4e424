package model

import (
	"errors"
	"fmt"
)

// ErrorKind is the machine-readable classification of a conversion error.
type ErrorKind string

const (
	KindFetch          ErrorKind = "fetch"          // network/timeout/not-found; fatal
	KindParse          ErrorKind = "parse"          // malformed graph document; fatal
	KindUnknownSource  ErrorKind = "unknown_source" // unsupported source type; fatal, pre-fetch
	KindNormalization  ErrorKind = "normalization"  // per-value; recovered into a warning
	KindMappingGap     ErrorKind = "mapping_gap"    // unmapped field; recovered into a warning
	KindReconciliation ErrorKind = "reconciliation" // lookup failure; recovered into a warning
)

// Fatal reports whether errors of this kind abort a conversion. Only
// acquisition and parse failures do; everything downstream degrades into
// warnings on a still-successful result.
func (k ErrorKind) Fatal() bool {
	switch k {
	case KindFetch, KindParse, KindUnknownSource:
		return true
	default:
		return false
	}
}

// ConvError is an error with a conversion-taxonomy kind attached.
type ConvError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ConvError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConvError) Unwrap() error {
	return e.Err
}

// Errf builds a ConvError with a formatted message.
func Errf(kind ErrorKind, format string, args ...any) *ConvError {
	return &ConvError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapErr attaches a kind to an underlying error. If err already carries a
// kind it is returned unchanged, so wrapping at pipeline boundaries never
// reclassifies more specific failures.
func WrapErr(kind ErrorKind, msg string, err error) error {
	var ce *ConvError
	if errors.As(err, &ce) {
		return err
	}
	return &ConvError{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var ce *ConvError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
