package sandbox

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure.
type Kind string

const (
	// KindInvalidPath means resolution would escape the base directory.
	// It is never downgraded to a not-found condition.
	KindInvalidPath Kind = "invalid_path"
	// KindNotFound means the resolved location does not exist.
	KindNotFound Kind = "not_found"
	// KindNotADirectory means the location exists but is not a directory.
	KindNotADirectory Kind = "not_a_directory"
	// KindNotAFile means the location exists but is not a regular file.
	KindNotAFile Kind = "not_a_file"
	// KindNotAccessible means a stat failed on a single entry (permissions,
	// dangling symlink, entry vanished between enumeration and stat).
	KindNotAccessible Kind = "not_accessible"
	// KindIOFailure means the underlying write/copy/move/create failed.
	KindIOFailure Kind = "io_failure"
)

// Error is the failure type returned by all sandbox operations. Path carries
// the caller-supplied relative path, never a resolved absolute path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

// Message is the client-facing form: the classification and the
// caller-supplied relative path, without the underlying cause. The cause
// typically carries resolved absolute paths and belongs in logs only.
func (e *Error) Message() string {
	msg := string(e.Kind)
	switch e.Kind {
	case KindInvalidPath:
		msg = "invalid path: outside base directory"
	case KindNotFound:
		msg = "not found"
	case KindNotADirectory:
		msg = "not a directory"
	case KindNotAFile:
		msg = "not a file"
	case KindNotAccessible:
		msg = "not accessible"
	case KindIOFailure:
		msg = "operation failed"
	}
	return fmt.Sprintf("%s: %s", msg, e.Path)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.Err)
	}
	return e.Message()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from err, or "" if err is not a sandbox error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func invalidPath(path string) error {
	return &Error{Kind: KindInvalidPath, Path: path}
}

func notFound(path string) error {
	return &Error{Kind: KindNotFound, Path: path}
}

func notADirectory(path string) error {
	return &Error{Kind: KindNotADirectory, Path: path}
}

func notAFile(path string) error {
	return &Error{Kind: KindNotAFile, Path: path}
}

func notAccessible(path string, err error) error {
	return &Error{Kind: KindNotAccessible, Path: path, Err: err}
}

func ioFailure(path string, err error) error {
	return &Error{Kind: KindIOFailure, Path: path, Err: err}
}
