package rterr

import "fmt"

// Kind categorizes a runtime error, matching spec §7's four categories.
type Kind string

const (
	KindType       Kind = "type"
	KindIndex      Kind = "index"
	KindAllocation Kind = "allocation"
	KindGeneric    Kind = "generic"
)

// maxMessageLen mirrors the reference runtime's fixed 256-byte
// error_message buffer: messages that would overflow it are replaced
// with "??" to guarantee the format call terminates.
const maxMessageLen = 256

// Error is the structured runtime error type. Its Error() string matches
// the exact message shape from spec §7 so logs and captured output are
// byte-for-byte the runtime's historical wire format.
type Error struct {
	Kind Kind
	// Site names the operation or property name for a Type error, or the
	// array/operation name for an Index error.
	Site string
	// Index/Len are populated for Kind == KindIndex.
	Index, Len int32
	// Msg is the free-form reason for Allocation and Generic errors.
	Msg string
}

func (e *Error) Error() string {
	site := e.Site
	if len(site) > maxMessageLen-32 {
		site = "??"
	}
	msg := e.Msg
	if len(msg) > maxMessageLen-32 {
		msg = "??"
	}

	switch e.Kind {
	case KindType:
		return fmt.Sprintf("** runtime type error: %s", site)
	case KindIndex:
		return fmt.Sprintf("** error: array index out of range: %d (len: %d) in %s", e.Index, e.Len, site)
	case KindAllocation:
		return fmt.Sprintf("** runtime memory allocation error: %s", msg)
	default:
		return fmt.Sprintf("** runtime error: %s", msg)
	}
}

// Builder constructs an *Error incrementally, mirroring the reference
// corpus's errors.Builder pattern (see errors.New(...).Path(...).Build()
// in the teacher's errors package).
type Builder struct {
	err *Error
}

// New starts building an error of the given kind.
func New(kind Kind) *Builder {
	return &Builder{err: &Error{Kind: kind}}
}

func (b *Builder) Site(site string) *Builder {
	b.err.Site = site
	return b
}

func (b *Builder) Index(idx, length int32) *Builder {
	b.err.Index = idx
	b.err.Len = length
	return b
}

func (b *Builder) Message(msg string) *Builder {
	b.err.Msg = msg
	return b
}

func (b *Builder) Build() *Error {
	return b.err
}

// TypeError builds a Kind == KindType error for the named site.
func TypeError(site string) *Error {
	return New(KindType).Site(site).Build()
}

// IndexError builds a Kind == KindIndex error.
func IndexError(site string, idx, length int32) *Error {
	return New(KindIndex).Site(site).Index(idx, length).Build()
}

// AllocationError builds a Kind == KindAllocation error.
func AllocationError(reason string) *Error {
	return New(KindAllocation).Message(reason).Build()
}

// GenericError builds a Kind == KindGeneric error.
func GenericError(msg string) *Error {
	return New(KindGeneric).Message(msg).Build()
}

// Raise panics with err. Every component in this module raises errors
// this way instead of returning them, mirroring the reference runtime's
// longjmp: control never returns to the raising call site.
func Raise(err *Error) {
	panic(err)
}
