package execution

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/reilabs/blockifier/common"
	"github.com/reilabs/blockifier/state"
)

// ConstructorEntryPointName is the name of the entry point run on deployment.
const ConstructorEntryPointName = "constructor"

var (
	callCounter       = metrics.NewRegisteredCounter("blockifier/execution/calls", nil)
	failedCallCounter = metrics.NewRegisteredCounter("blockifier/execution/calls/failed", nil)
)

// CallEntryPoint describes a call to an entry point of a contract. If
// ClassHash is nil, the class deployed at StorageAddress is used.
type CallEntryPoint struct {
	ClassHash          *common.ClassHash
	EntryPointType     state.EntryPointType
	EntryPointSelector common.Felt
	Calldata           []common.Felt
	StorageAddress     common.ContractAddress
	CallerAddress      common.ContractAddress
}

// CallInfo summarizes an executed call and all calls issued by it.
type CallInfo struct {
	Call                CallEntryPoint
	ClassHash           common.ClassHash
	Retdata             []common.Felt
	InnerCalls          []*CallInfo
	AccessedStorageKeys []common.StorageKey
	StorageReadValues   []common.Felt
}

// ExecuteEntryPointCall runs the given call on the state. Program counters
// visited by the run are recorded in the state. If the run fails, all writes
// it performed are reverted.
func ExecuteEntryPointCall(ctx context.Context, db state.StateDB, call CallEntryPoint, runner Runner) (*CallInfo, error) {
	return executeEntryPointCall(ctx, db, call, runner, 0)
}

func executeEntryPointCall(ctx context.Context, db state.StateDB, call CallEntryPoint, runner Runner, depth int) (*CallInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if depth >= MaxCallDepth {
		return nil, ErrCallDepthExceeded
	}
	callCounter.Inc(1)

	snapshot := db.Snapshot()
	info, err := runEntryPoint(ctx, db, call, runner, depth)
	if err != nil {
		failedCallCounter.Inc(1)
		if revertErr := db.RevertToSnapshot(snapshot); revertErr != nil {
			return nil, revertErr
		}
		return nil, &EntryPointExecutionError{
			Address:  call.StorageAddress,
			Selector: call.EntryPointSelector,
			Err:      err,
		}
	}
	return info, nil
}

func runEntryPoint(ctx context.Context, db state.StateDB, call CallEntryPoint, runner Runner, depth int) (*CallInfo, error) {
	classHash, err := resolveClassHash(db, call)
	if err != nil {
		return nil, err
	}
	class, err := db.GetContractClass(classHash)
	if err != nil {
		return nil, err
	}
	entryPoint, err := class.ResolveEntryPoint(call.EntryPointType, call.EntryPointSelector)
	if err != nil {
		return nil, err
	}

	log.Trace("Executing entry point", "address", call.StorageAddress, "class", classHash, "selector", call.EntryPointSelector, "depth", depth)
	syscalls := newSyscallHandler(ctx, db, runner, call.StorageAddress, call.CallerAddress, depth)
	result, err := runner.Run(ctx, &Run{
		ClassHash:    classHash,
		Class:        class,
		EntryPointPC: uint64(entryPoint.Offset),
		Selector:     call.EntryPointSelector,
		Calldata:     call.Calldata,
		Syscalls:     syscalls,
	})
	if err != nil {
		return nil, err
	}
	db.AddVisitedPcs(classHash, result.Trace)

	return &CallInfo{
		Call:                call,
		ClassHash:           classHash,
		Retdata:             result.Retdata,
		InnerCalls:          syscalls.innerCalls,
		AccessedStorageKeys: syscalls.AccessedStorageKeys(),
		StorageReadValues:   syscalls.readValues,
	}, nil
}

func resolveClassHash(db state.StateDB, call CallEntryPoint) (common.ClassHash, error) {
	if call.ClassHash != nil {
		return *call.ClassHash, nil
	}
	classHash, err := db.GetClassHashAt(call.StorageAddress)
	if err != nil {
		return classHash, err
	}
	if common.Felt(classHash).IsZero() {
		return classHash, ErrContractNotDeployed
	}
	return classHash, nil
}

// ExecuteConstructor runs the constructor of a freshly deployed contract.
// Classes without a constructor accept only empty calldata.
func ExecuteConstructor(
	ctx context.Context,
	db state.StateDB,
	classHash common.ClassHash,
	address common.ContractAddress,
	deployer common.ContractAddress,
	calldata []common.Felt,
	runner Runner,
) (*CallInfo, error) {
	class, err := db.GetContractClass(classHash)
	if err != nil {
		return nil, err
	}
	call := CallEntryPoint{
		ClassHash:          &classHash,
		EntryPointType:     state.EntryPointTypeConstructor,
		EntryPointSelector: common.SelectorFromName(ConstructorEntryPointName),
		Calldata:           calldata,
		StorageAddress:     address,
		CallerAddress:      deployer,
	}
	if !class.HasConstructor() {
		if len(calldata) > 0 {
			return nil, ErrInvalidConstructorCalldata
		}
		return &CallInfo{Call: call, ClassHash: classHash}, nil
	}
	return ExecuteEntryPointCall(ctx, db, call, runner)
}

// ExecuteDeployment assigns the class to the given address and runs its
// constructor. The address is allocated before the constructor runs, so the
// constructor can observe its own deployment.
func ExecuteDeployment(
	ctx context.Context,
	db state.StateDB,
	classHash common.ClassHash,
	address common.ContractAddress,
	deployer common.ContractAddress,
	calldata []common.Felt,
	runner Runner,
) (*CallInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snapshot := db.Snapshot()
	if err := db.SetClassHashAt(address, classHash); err != nil {
		return nil, err
	}
	info, err := ExecuteConstructor(ctx, db, classHash, address, deployer, calldata, runner)
	if err != nil {
		if revertErr := db.RevertToSnapshot(snapshot); revertErr != nil {
			return nil, revertErr
		}
		return nil, err
	}
	return info, nil
}
