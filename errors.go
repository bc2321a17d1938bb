package insightful

import (
	"errors"
)

// Sentinel errors returned by Insight and Proxy. Failures of observed methods are
// returned unchanged and never wrapped in these.
var (
	// ErrTarget indicates a target that is not a struct type, a struct, or a pointer to one.
	ErrTarget = errors.New("invalid target")

	// ErrNoAttribute indicates a name that is neither an exported field nor a method.
	ErrNoAttribute = errors.New("no such attribute")

	// ErrNotCallable indicates a call of an attribute that is not a method.
	ErrNotCallable = errors.New("attribute is not callable")

	// ErrType indicates a value that cannot be assigned to a field or passed as an argument.
	ErrType = errors.New("incompatible type")

	// ErrArguments indicates a call with the wrong number of arguments.
	ErrArguments = errors.New("wrong number of arguments")

	// ErrSignature indicates a parameter signature that cannot be parsed, see WithParams.
	ErrSignature = errors.New("invalid signature")

	// ErrActive indicates Enter on an Insight that is already active.
	ErrActive = errors.New("insight already active")

	// ErrNotActive indicates Exit without a matching Enter.
	ErrNotActive = errors.New("insight not active")

	// ErrOutOfOrder indicates Exit while a later activation of the same type is still installed.
	ErrOutOfOrder = errors.New("insight exited out of order")
)
