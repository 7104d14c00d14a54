package ensuretable

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a provisioning failure.
type ErrorKind string

const (
	// KindInvalidInput marks an event without a usable table name. No remote call was made.
	KindInvalidInput ErrorKind = "InvalidInput"
	// KindClient marks a failure to build the DynamoDB client.
	KindClient ErrorKind = "Client"
	// KindProbe marks a describe table failure other than the table not existing.
	KindProbe ErrorKind = "Probe"
	// KindCreate marks a rejected create table request.
	KindCreate ErrorKind = "Create"
	// KindTimeout marks a wait that spent every attempt without reaching the desired status.
	KindTimeout ErrorKind = "Timeout"
	// KindInaccessible marks a table in a status that is neither usable nor creatable.
	KindInaccessible ErrorKind = "Inaccessible"
	// KindLookup marks a ready table whose ARN could not be read back.
	KindLookup ErrorKind = "Lookup"
)

// Sentinel errors for use with errors.Is. Every *Error matches the sentinel of its kind.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrClient       = errors.New("dynamodb client unavailable")
	ErrProbe        = errors.New("table status probe failed")
	ErrCreate       = errors.New("table creation failed")
	ErrTimeout      = errors.New("table never reached desired status")
	ErrInaccessible = errors.New("table is inaccessible")
	ErrLookup       = errors.New("table arn lookup failed")
)

var sentinels = map[ErrorKind]error{
	KindInvalidInput: ErrInvalidInput,
	KindClient:       ErrClient,
	KindProbe:        ErrProbe,
	KindCreate:       ErrCreate,
	KindTimeout:      ErrTimeout,
	KindInaccessible: ErrInaccessible,
	KindLookup:       ErrLookup,
}

// Error is returned by every Provisioner operation that fails.
type Error struct {
	Kind      ErrorKind
	TableName string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	if e.TableName != "" {
		msg = fmt.Sprintf("%s (table %q)", msg, e.TableName)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && s == target
}

func newError(kind ErrorKind, table, msg string, cause error) *Error {
	return &Error{Kind: kind, TableName: table, Message: msg, Cause: cause}
}

// TimeoutError is the cause carried by a KindTimeout *Error.
type TimeoutError struct {
	TableName   string
	Desired     TableStatus
	Last        TableStatus
	Attempts    int
	MaxAttempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tableName: %s never became %s (last status %s), waited %d of %d attempts",
		e.TableName, e.Desired, e.Last, e.Attempts, e.MaxAttempts)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
