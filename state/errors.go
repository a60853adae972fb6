package state

import (
	"fmt"

	"github.com/reilabs/blockifier/common"
)

const (
	// ErrUndeclaredClassHash is reported when a class is requested that has
	// not been declared.
	ErrUndeclaredClassHash = common.ConstError("undeclared class hash")

	// ErrMalformedClass is reported if a class definition can not be decoded
	// or describes an invalid program.
	ErrMalformedClass = common.ConstError("malformed contract class")

	// ErrEntryPointNotFound is reported if a class has no entry point for a
	// selector and no default entry point.
	ErrEntryPointNotFound = common.ConstError("entry point not found")

	// ErrDuplicatedEntryPoint is reported if a class lists a selector twice.
	ErrDuplicatedEntryPoint = common.ConstError("duplicated entry point selector")

	// ErrInvalidSnapshot is reported when reverting to an unknown snapshot.
	ErrInvalidSnapshot = common.ConstError("invalid snapshot id")

	// ErrNonceOverflow is reported when incrementing the largest nonce.
	ErrNonceOverflow = common.ConstError("nonce overflow")

	// ErrOutOfRangeContractAddress is reported when deploying to address zero.
	ErrOutOfRangeContractAddress = common.ConstError("contract address out of range")

	// ErrTransactionClosed is reported when using a committed or aborted
	// transactional state.
	ErrTransactionClosed = common.ConstError("transactional state already closed")
)

// StateReadError is the error reported by a state when a value could not be
// obtained from its underlying reader.
type StateReadError struct {
	Op  string
	Key string
	Err error
}

func (e *StateReadError) Error() string {
	return fmt.Sprintf("failed to read %s of %s: %v", e.Op, e.Key, e.Err)
}

func (e *StateReadError) Unwrap() error {
	return e.Err
}

// wrapReadError attaches the operation and key to an error of a reader.
// Errors that already are StateReadErrors are forwarded unchanged.
func wrapReadError(op string, key fmt.Stringer, err error) error {
	if _, ok := err.(*StateReadError); ok {
		return err
	}
	return &StateReadError{Op: op, Key: key.String(), Err: err}
}
