// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package gderr defines the fatal error kinds shared by every codec
// layer that reports errors (hamming, rs, dict, gd; gf256 panics and
// matrix returns its own ErrSingular, which rs wraps), per the error handling
// design in spec.md §7. All of them are terminal to the operation that
// raised them; callers should discard the codec/engine instance that
// produced one rather than try to continue.
package gderr

import "github.com/pkg/errors"

// Kind enumerates the fatal error categories an operation can raise.
type Kind int

const (
	// InvalidParams signals bad construction parameters: n <= k,
	// n >= 256, an unsupported Hamming degree, a non-square precoding
	// matrix, or a zero dictionary capacity.
	InvalidParams Kind = iota
	// SingularMatrix signals a matrix inversion with no available
	// pivot, during RS setup or precoding installation.
	SingularMatrix
	// LengthMismatch signals an ECC encode/decode call with a
	// wrong-sized input.
	LengthMismatch
	// InvalidDictionary signals a lookup of an unknown dictionary id,
	// or an internal forward/reverse map inconsistency.
	InvalidDictionary
	// InvalidFrame signals that dup parsing found insufficient bits
	// for a field, or a frame whose deviation fails sanity checks.
	InvalidFrame
)

func (k Kind) String() string {
	switch k {
	case InvalidParams:
		return "InvalidParams"
	case SingularMatrix:
		return "SingularMatrix"
	case LengthMismatch:
		return "LengthMismatch"
	case InvalidDictionary:
		return "InvalidDictionary"
	case InvalidFrame:
		return "InvalidFrame"
	default:
		return "Unknown"
	}
}

// Error is the error type every codec layer returns for a fatal
// condition. It carries a Kind so callers can switch on the category
// without string-matching, and wraps an underlying cause when one is
// available (e.g. a matrix.ErrSingular from the algebra layer).
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.cause.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind with no wrapped cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error of the given kind around cause, preserving cause
// in the error chain via errors.WithStack, which records a stack trace
// on the cause. *Error has no Format method, so %+v on it prints only
// the Error() text; the trace is printed when the unwrapped cause is
// formatted with %+v.
func Wrap(kind Kind, cause error, msg string) error {
	return &Error{Kind: kind, Msg: msg, cause: errors.WithStack(cause)}
}

// Is reports whether err is a *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ge, ok := err.(*Error); ok {
			e = ge
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
