package execution

import (
	"fmt"

	"github.com/reilabs/blockifier/common"
)

const (
	// ErrContractNotDeployed is reported when calling an address without a
	// deployed class.
	ErrContractNotDeployed = common.ConstError("no contract deployed at address")

	// ErrInvalidConstructorCalldata is reported when passing calldata to a
	// class without a constructor.
	ErrInvalidConstructorCalldata = common.ConstError("cannot pass calldata to a contract without a constructor")

	// ErrCallDepthExceeded is reported when nested calls exceed MaxCallDepth.
	ErrCallDepthExceeded = common.ConstError("maximum call depth exceeded")
)

// MaxCallDepth is the maximum number of nested call frames, including the
// outermost call.
const MaxCallDepth = 100

// EntryPointExecutionError describes a failed entry point call.
type EntryPointExecutionError struct {
	Address  common.ContractAddress
	Selector common.Felt
	Err      error
}

func (e *EntryPointExecutionError) Error() string {
	return fmt.Sprintf("failed to execute entry point %v of contract %v: %v", e.Selector, e.Address, e.Err)
}

func (e *EntryPointExecutionError) Unwrap() error {
	return e.Err
}
