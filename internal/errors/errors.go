// Package errors provides standardized error handling for renumber.
// It defines the error kinds a renumbering run can fail with, typed errors
// carrying the offending name, sequence, path or parameter, and predicates
// for callers that need to branch on the kind.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// MalformedName: a file name without an extension, or with an empty stem
	MalformedName
	// AmbiguousStart: a sequence with no digits at all and no explicit start
	AmbiguousStart
	// DirectoryNotFound: the source directory is missing or unreadable
	DirectoryNotFound
	// RelocationFailed: a copy, delete or mkdir failed mid-run
	RelocationFailed
	// InvalidConfig: an option or config file value is out of range
	InvalidConfig
	// DirectoryLocked: another run holds the source directory
	DirectoryLocked
)

// String returns the name of the kind as used in log output
func (k ErrorKind) String() string {
	switch k {
	case MalformedName:
		return "malformed_name"
	case AmbiguousStart:
		return "ambiguous_start"
	case DirectoryNotFound:
		return "directory_not_found"
	case RelocationFailed:
		return "relocation_failed"
	case InvalidConfig:
		return "invalid_config"
	case DirectoryLocked:
		return "directory_locked"
	default:
		return "unknown"
	}
}

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// detail formats msg, an optional subject and the wrapped error.
func (e *ApplicationError) detail(subject string) string {
	if subject == "" {
		return e.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.msg, subject, e.err)
	}
	return fmt.Sprintf("%s: %s", e.msg, subject)
}

// NameError reports a file name that cannot be split into its parts
type NameError struct {
	ApplicationError
	name string
}

// NewNameError creates a new name error
func NewNameError(msg string, name string, kind ErrorKind, err error) *NameError {
	return &NameError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		name:             name,
	}
}

// Error returns the name error message. The name is quoted so that an
// empty stem is still visible in the output.
func (e *NameError) Error() string {
	return e.detail(fmt.Sprintf("%q", e.name))
}

// Name returns the file name associated with the error
func (e *NameError) Name() string {
	return e.name
}

// SequenceError reports a problem with a whole sequence
type SequenceError struct {
	ApplicationError
	key string
}

// NewSequenceError creates a new sequence error. key is the printable
// (prefix, extension) pair of the sequence.
func NewSequenceError(msg string, key string, kind ErrorKind, err error) *SequenceError {
	return &SequenceError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		key:              key,
	}
}

// Error returns the sequence error message
func (e *SequenceError) Error() string {
	return e.detail(e.key)
}

// Key returns the sequence key associated with the error
func (e *SequenceError) Key() string {
	return e.key
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		path:             path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	return e.detail(e.path)
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{msg: msg, err: err, kind: kind},
		param:            param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	return e.detail(e.param)
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the kind of the first application error in err's chain,
// or Unknown if there is none.
func KindOf(err error) ErrorKind {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsMalformedName checks if the error is a malformed file name error
func IsMalformedName(err error) bool {
	return KindOf(err) == MalformedName
}

// IsAmbiguousStart checks if the error is an ambiguous start error
func IsAmbiguousStart(err error) bool {
	return KindOf(err) == AmbiguousStart
}

// IsDirectoryNotFound checks if the error is a missing source directory error
func IsDirectoryNotFound(err error) bool {
	return KindOf(err) == DirectoryNotFound
}

// IsRelocationFailed checks if the error is a relocation error
func IsRelocationFailed(err error) bool {
	return KindOf(err) == RelocationFailed
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	return KindOf(err) == InvalidConfig
}

// IsDirectoryLocked checks if the error is a directory lock error
func IsDirectoryLocked(err error) bool {
	return KindOf(err) == DirectoryLocked
}
