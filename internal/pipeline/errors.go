package pipeline

import "fmt"

// Kind classifies a processing failure. New kinds are only ever appended.
type Kind int

const (
	// KindIO covers stat, open, read and write failures.
	KindIO Kind = iota + 1
	// KindFormat means the tag container is missing, truncated or invalid.
	KindFormat
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a failure to process one file.
type Error struct {
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
