/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind categorizes the error.
type Kind string

const (
	// KindNilArgument marks a required argument that was absent
	// (zero element key, empty type name, nil store, nil type).
	KindNilArgument Kind = "nil_argument"
	// KindTypeMismatch marks a value whose kind differs from the requested one.
	KindTypeMismatch Kind = "type_mismatch"
	// KindArgumentMismatch marks an invocation whose arguments do not fit
	// the declared method signature.
	KindArgumentMismatch Kind = "argument_mismatch"
	// KindMissingElement marks an accessor call with no backing value.
	KindMissingElement Kind = "missing_element"
	// KindInvalidContract marks a Go type that cannot serve as a contract.
	KindInvalidContract Kind = "invalid_contract"
)

// Sentinels for errors.Is. Matching is by Kind only.
var (
	ErrNilArgument      = &Error{Kind: KindNilArgument, Index: -1}
	ErrTypeMismatch     = &Error{Kind: KindTypeMismatch, Index: -1}
	ErrArgumentMismatch = &Error{Kind: KindArgumentMismatch, Index: -1}
	ErrMissingElement   = &Error{Kind: KindMissingElement, Index: -1}
	ErrInvalidContract  = &Error{Kind: KindInvalidContract, Index: -1}
)

// Error is the structured error type used throughout mirror.
type Error struct {
	Cause error
	// Op is the failing operation, e.g. "values.Int" or "builder.Enums".
	Op      string
	Kind    Kind
	Element string
	Want    string
	Got     string
	Detail  string
	// Index is the offending slice index, or -1.
	Index int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("mirror")
	if e.Op != "" {
		b.WriteByte('(')
		b.WriteString(e.Op)
		b.WriteByte(')')
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))

	if e.Element != "" {
		b.WriteString(" at ")
		b.WriteString(e.Element)
	}
	if e.Index >= 0 {
		b.WriteString(" [")
		b.WriteString(strconv.Itoa(e.Index))
		b.WriteByte(']')
	}

	if e.Want != "" || e.Got != "" {
		b.WriteString(": want ")
		b.WriteString(orUnknown(e.Want))
		b.WriteString(", got ")
		b.WriteString(orUnknown(e.Got))
	}

	if e.Detail != "" {
		if e.Want != "" || e.Got != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(op string, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:    op,
			Kind:  kind,
			Index: -1,
		},
	}
}

// Element sets the element the error refers to.
func (b *Builder) Element(e fmt.Stringer) *Builder {
	if e != nil {
		b.err.Element = e.String()
	}
	return b
}

// Want sets the expected kind or type.
func (b *Builder) Want(w string) *Builder {
	b.err.Want = w
	return b
}

// Got sets the actual kind or type.
func (b *Builder) Got(g string) *Builder {
	b.err.Got = g
	return b
}

// Index sets the offending slice index.
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	err := b.err
	return &err
}

// NilArgument reports an absent required argument.
func NilArgument(op, arg string) *Error {
	return New(op, KindNilArgument).Detail("%s cannot be nil", arg).Build()
}

// TypeMismatch reports a stored or supplied kind that differs from the wanted one.
func TypeMismatch(op string, elem fmt.Stringer, want, got string) *Error {
	return New(op, KindTypeMismatch).Element(elem).Want(want).Got(got).Build()
}

// ArgumentMismatch reports an invocation that does not fit the method signature.
func ArgumentMismatch(op, method, detail string) *Error {
	return New(op, KindArgumentMismatch).Detail("%s: %s", method, detail).Build()
}

// MissingElement reports an accessor with no stored value.
func MissingElement(op string, elem fmt.Stringer) *Error {
	return New(op, KindMissingElement).Element(elem).Build()
}

// InvalidContract reports a type that cannot be used as a contract.
func InvalidContract(op, typ, detail string) *Error {
	return New(op, KindInvalidContract).Detail("%s: %s", typ, detail).Build()
}
