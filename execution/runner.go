package execution

import (
	"context"

	"github.com/reilabs/blockifier/common"
	"github.com/reilabs/blockifier/state"
)

// Run describes a single entry point invocation handed to a Runner.
type Run struct {
	ClassHash    common.ClassHash
	Class        *state.ContractClass
	EntryPointPC uint64
	Selector     common.Felt
	Calldata     []common.Felt
	Syscalls     *SyscallHandler
}

// RunResult is the outcome of a successful Run. Trace lists the program
// counters executed within the run's class, in execution order.
type RunResult struct {
	Retdata []common.Felt
	Trace   []uint64
}

// Runner executes the program of a class starting at an entry point. Calls to
// other contracts are issued through the run's SyscallHandler.
type Runner interface {
	Run(ctx context.Context, run *Run) (*RunResult, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, run *Run) (*RunResult, error)

func (f RunnerFunc) Run(ctx context.Context, run *Run) (*RunResult, error) {
	return f(ctx, run)
}
