package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/reilabs/blockifier/common"
	"github.com/reilabs/blockifier/state"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slices"
)

var (
	contractClassHash = common.ClassHash(common.FeltFromUint64(0xc1))
	plainClassHash    = common.ClassHash(common.FeltFromUint64(0xc2))

	contractAddress = common.Address(0x100)
	otherAddress    = common.Address(0x200)
	deployer        = common.Address(0x300)

	incrementSelector = common.SelectorFromName("increment")
	callOtherSelector = common.SelectorFromName("call_other")
	failSelector      = common.SelectorFromName("fail")
	constructor       = common.SelectorFromName(ConstructorEntryPointName)

	counterKey = common.Key(7)
)

func newClass(entryPoints map[state.EntryPointType][]state.EntryPoint) *state.ContractClass {
	data := make([]common.Felt, 32)
	for i := range data {
		data[i] = common.FeltFromUint64(uint64(i))
	}
	return &state.ContractClass{
		Program:           state.Program{Data: data},
		EntryPointsByType: entryPoints,
	}
}

// fakeRunner dispatches runs to handlers keyed by selector. Each handler's
// trace starts at the entry point's PC.
type fakeRunner struct {
	handlers map[common.Felt]func(ctx context.Context, run *Run) ([]common.Felt, error)
	runs     int
}

func (r *fakeRunner) Run(ctx context.Context, run *Run) (*RunResult, error) {
	r.runs++
	handler, found := r.handlers[run.Selector]
	if !found {
		return nil, errors.New("unknown selector")
	}
	retdata, err := handler(ctx, run)
	if err != nil {
		return nil, err
	}
	return &RunResult{
		Retdata: retdata,
		Trace:   []uint64{run.EntryPointPC, run.EntryPointPC + 1, run.EntryPointPC},
	}, nil
}

func increment(ctx context.Context, run *Run) ([]common.Felt, error) {
	value, err := run.Syscalls.StorageRead(counterKey)
	if err != nil {
		return nil, err
	}
	value = value.Add(common.FeltFromUint64(1))
	if err := run.Syscalls.StorageWrite(counterKey, value); err != nil {
		return nil, err
	}
	return []common.Felt{value}, nil
}

func newTestEnvironment(t *testing.T) (*state.CachedState[*state.VisitedPcsSet], *fakeRunner) {
	t.Helper()
	db := state.NewCachedState[*state.VisitedPcsSet](state.NewDictStateReader(), state.NewVisitedPcsSet())
	class := newClass(map[state.EntryPointType][]state.EntryPoint{
		state.EntryPointTypeExternal: {
			{Selector: incrementSelector, Offset: 2},
			{Selector: callOtherSelector, Offset: 10},
			{Selector: failSelector, Offset: 20},
		},
		state.EntryPointTypeConstructor: {
			{Selector: constructor, Offset: 25},
		},
	})
	if err := db.SetContractClass(contractClassHash, class); err != nil {
		t.Fatal(err)
	}
	if err := db.SetContractClass(plainClassHash, newClass(map[state.EntryPointType][]state.EntryPoint{
		state.EntryPointTypeExternal: {{Selector: common.Felt{}, Offset: 5}},
	})); err != nil {
		t.Fatal(err)
	}
	for _, address := range []common.ContractAddress{contractAddress, otherAddress} {
		if err := db.SetClassHashAt(address, contractClassHash); err != nil {
			t.Fatal(err)
		}
	}

	runner := &fakeRunner{}
	runner.handlers = map[common.Felt]func(context.Context, *Run) ([]common.Felt, error){
		incrementSelector: increment,
		callOtherSelector: func(ctx context.Context, run *Run) ([]common.Felt, error) {
			if _, err := increment(ctx, run); err != nil {
				return nil, err
			}
			return run.Syscalls.CallContract(otherAddress, incrementSelector, nil)
		},
		failSelector: func(ctx context.Context, run *Run) ([]common.Felt, error) {
			if _, err := increment(ctx, run); err != nil {
				return nil, err
			}
			return nil, errors.New("assertion failed")
		},
		constructor: func(ctx context.Context, run *Run) ([]common.Felt, error) {
			if len(run.Calldata) != 1 {
				return nil, errors.New("expected one argument")
			}
			return nil, run.Syscalls.StorageWrite(counterKey, run.Calldata[0])
		},
	}
	return db, runner
}

func externalCall(address common.ContractAddress, selector common.Felt) CallEntryPoint {
	return CallEntryPoint{
		EntryPointType:     state.EntryPointTypeExternal,
		EntryPointSelector: selector,
		StorageAddress:     address,
		CallerAddress:      deployer,
	}
}

func TestExecuteEntryPointCall_StorageAccessesAreTracked(t *testing.T) {
	db, runner := newTestEnvironment(t)

	info, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, incrementSelector), runner)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if got, want := info.Retdata, []common.Felt{common.FeltFromUint64(1)}; !slices.Equal(got, want) {
		t.Errorf("unexpected retdata, wanted %v, got %v", want, got)
	}
	if info.ClassHash != contractClassHash {
		t.Errorf("unexpected class hash %v", info.ClassHash)
	}
	if got, want := info.AccessedStorageKeys, []common.StorageKey{counterKey}; !slices.Equal(got, want) {
		t.Errorf("unexpected accessed keys, wanted %v, got %v", want, got)
	}
	if got, want := info.StorageReadValues, []common.Felt{{}}; !slices.Equal(got, want) {
		t.Errorf("unexpected read values, wanted %v, got %v", want, got)
	}
	if value, _ := db.GetStorageAt(contractAddress, counterKey); value != common.FeltFromUint64(1) {
		t.Errorf("unexpected counter value %v", value)
	}
}

func TestExecuteEntryPointCall_VisitedPcsAreRecorded(t *testing.T) {
	db, runner := newTestEnvironment(t)

	if _, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, incrementSelector), runner); err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if got, want := db.VisitedPcs().VisitedPcs(contractClassHash), []uint64{2, 3}; !slices.Equal(got, want) {
		t.Errorf("unexpected visited pcs, wanted %v, got %v", want, got)
	}
}

func TestExecuteEntryPointCall_InnerCallsAreExecuted(t *testing.T) {
	db, runner := newTestEnvironment(t)

	info, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, callOtherSelector), runner)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if len(info.InnerCalls) != 1 {
		t.Fatalf("expected one inner call, got %d", len(info.InnerCalls))
	}
	inner := info.InnerCalls[0]
	if inner.Call.StorageAddress != otherAddress || inner.Call.CallerAddress != contractAddress {
		t.Errorf("unexpected inner call %+v", inner.Call)
	}
	for _, address := range []common.ContractAddress{contractAddress, otherAddress} {
		if value, _ := db.GetStorageAt(address, counterKey); value != common.FeltFromUint64(1) {
			t.Errorf("unexpected counter value at %v: %v", address, value)
		}
	}
	if got, want := db.VisitedPcs().VisitedPcs(contractClassHash), []uint64{2, 3, 10, 11}; !slices.Equal(got, want) {
		t.Errorf("unexpected visited pcs, wanted %v, got %v", want, got)
	}
}

func TestExecuteEntryPointCall_FailedRunsAreReverted(t *testing.T) {
	db, runner := newTestEnvironment(t)

	_, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, failSelector), runner)
	var execErr *EntryPointExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected execution error, got %v", err)
	}
	if execErr.Address != contractAddress || execErr.Selector != failSelector {
		t.Errorf("unexpected error details %v", execErr)
	}
	if value, _ := db.GetStorageAt(contractAddress, counterKey); !value.IsZero() {
		t.Errorf("writes of failed run should be reverted, got %v", value)
	}
	if pcs := db.VisitedPcs().VisitedPcs(contractClassHash); len(pcs) != 0 {
		t.Errorf("failed runs should not record pcs, got %v", pcs)
	}
}

func TestExecuteEntryPointCall_FailedInnerCallOnlyRevertsInnerWrites(t *testing.T) {
	db, runner := newTestEnvironment(t)
	runner.handlers[callOtherSelector] = func(ctx context.Context, run *Run) ([]common.Felt, error) {
		if _, err := increment(ctx, run); err != nil {
			return nil, err
		}
		if _, err := run.Syscalls.CallContract(otherAddress, failSelector, nil); err == nil {
			return nil, errors.New("inner call should fail")
		}
		return nil, nil
	}

	info, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, callOtherSelector), runner)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if len(info.InnerCalls) != 0 {
		t.Errorf("failed inner calls should not be listed")
	}
	if value, _ := db.GetStorageAt(contractAddress, counterKey); value != common.FeltFromUint64(1) {
		t.Errorf("outer write should be kept, got %v", value)
	}
	if value, _ := db.GetStorageAt(otherAddress, counterKey); !value.IsZero() {
		t.Errorf("inner write should be reverted, got %v", value)
	}
}

func TestExecuteEntryPointCall_UndeployedContractIsReported(t *testing.T) {
	db, runner := newTestEnvironment(t)

	_, err := ExecuteEntryPointCall(context.Background(), db, externalCall(common.Address(0x999), incrementSelector), runner)
	if !errors.Is(err, ErrContractNotDeployed) {
		t.Errorf("expected undeployed contract error, got %v", err)
	}
	if runner.runs != 0 {
		t.Errorf("runner should not be invoked")
	}
}

func TestExecuteEntryPointCall_UnknownSelectorIsReported(t *testing.T) {
	db, runner := newTestEnvironment(t)

	_, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, common.SelectorFromName("missing")), runner)
	if !errors.Is(err, state.ErrEntryPointNotFound) {
		t.Errorf("expected missing entry point error, got %v", err)
	}
}

func TestExecuteEntryPointCall_LibraryCallUsesDefaultEntryPoint(t *testing.T) {
	db, runner := newTestEnvironment(t)
	anySelector := common.SelectorFromName("anything")
	runner.handlers[anySelector] = func(ctx context.Context, run *Run) ([]common.Felt, error) {
		if run.ClassHash != plainClassHash || run.EntryPointPC != 5 {
			return nil, errors.New("unexpected entry point")
		}
		if run.Syscalls.ContractAddress() != contractAddress {
			return nil, errors.New("library calls should run in the caller's context")
		}
		return []common.Felt{common.FeltFromUint64(42)}, nil
	}
	runner.handlers[callOtherSelector] = func(ctx context.Context, run *Run) ([]common.Felt, error) {
		return run.Syscalls.LibraryCall(plainClassHash, anySelector, nil)
	}

	info, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, callOtherSelector), runner)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if got, want := info.Retdata, []common.Felt{common.FeltFromUint64(42)}; !slices.Equal(got, want) {
		t.Errorf("unexpected retdata, wanted %v, got %v", want, got)
	}
	if got, want := db.VisitedPcs().VisitedPcs(plainClassHash), []uint64{5, 6}; !slices.Equal(got, want) {
		t.Errorf("unexpected visited pcs, wanted %v, got %v", want, got)
	}
}

func TestExecuteEntryPointCall_RecursionIsBounded(t *testing.T) {
	db, runner := newTestEnvironment(t)
	runner.handlers[callOtherSelector] = func(ctx context.Context, run *Run) ([]common.Felt, error) {
		return run.Syscalls.CallContract(contractAddress, callOtherSelector, nil)
	}

	_, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, callOtherSelector), runner)
	if !errors.Is(err, ErrCallDepthExceeded) {
		t.Errorf("expected call depth error, got %v", err)
	}
	if runner.runs != MaxCallDepth {
		t.Errorf("unexpected number of runs, wanted %d, got %d", MaxCallDepth, runner.runs)
	}
}

func TestExecuteEntryPointCall_MaxCallDepthFramesAreAllowed(t *testing.T) {
	// Each run calls itself until the number of frames given as calldata is reached.
	recurse := func(ctx context.Context, run *Run) ([]common.Felt, error) {
		frames, _ := run.Calldata[0].Uint64()
		if frames <= 1 {
			return nil, nil
		}
		return run.Syscalls.CallContract(contractAddress, callOtherSelector, []common.Felt{common.FeltFromUint64(frames - 1)})
	}
	for _, test := range []struct {
		frames uint64
		fails  bool
	}{
		{frames: 1},
		{frames: MaxCallDepth - 1},
		{frames: MaxCallDepth},
		{frames: MaxCallDepth + 1, fails: true},
	} {
		db, runner := newTestEnvironment(t)
		runner.handlers[callOtherSelector] = recurse
		call := externalCall(contractAddress, callOtherSelector)
		call.Calldata = []common.Felt{common.FeltFromUint64(test.frames)}

		_, err := ExecuteEntryPointCall(context.Background(), db, call, runner)
		if test.fails && !errors.Is(err, ErrCallDepthExceeded) {
			t.Errorf("%d frames: expected call depth error, got %v", test.frames, err)
		}
		if !test.fails && err != nil {
			t.Errorf("%d frames: unexpected error %v", test.frames, err)
		}
	}
}

func TestExecuteEntryPointCall_CancelledContextIsReported(t *testing.T) {
	db, runner := newTestEnvironment(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExecuteEntryPointCall(ctx, db, externalCall(contractAddress, incrementSelector), runner)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
	if runner.runs != 0 {
		t.Errorf("runner should not be invoked")
	}
}

func TestExecuteEntryPointCall_RunnerFailureRevertsToSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := state.NewMockStateDB(ctrl)
	class := newClass(map[state.EntryPointType][]state.EntryPoint{
		state.EntryPointTypeExternal: {{Selector: incrementSelector, Offset: 1}},
	})
	injected := errors.New("injected")

	gomock.InOrder(
		db.EXPECT().Snapshot().Return(3),
		db.EXPECT().GetClassHashAt(contractAddress).Return(contractClassHash, nil),
		db.EXPECT().GetContractClass(contractClassHash).Return(class, nil),
		db.EXPECT().RevertToSnapshot(3).Return(nil),
	)
	runner := RunnerFunc(func(ctx context.Context, run *Run) (*RunResult, error) {
		return nil, injected
	})

	if _, err := ExecuteEntryPointCall(context.Background(), db, externalCall(contractAddress, incrementSelector), runner); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
}

func TestExecuteDeployment_ConstructorObservesDeployment(t *testing.T) {
	db, runner := newTestEnvironment(t)
	address := common.Address(0x400)
	runner.handlers[constructor] = func(ctx context.Context, run *Run) ([]common.Felt, error) {
		classHash, err := db.GetClassHashAt(run.Syscalls.ContractAddress())
		if err != nil || classHash != contractClassHash {
			return nil, errors.New("contract not yet deployed")
		}
		if run.Syscalls.CallerAddress() != deployer {
			return nil, errors.New("unexpected caller")
		}
		return nil, run.Syscalls.StorageWrite(counterKey, run.Calldata[0])
	}

	info, err := ExecuteDeployment(context.Background(), db, contractClassHash, address, deployer, []common.Felt{common.FeltFromUint64(5)}, runner)
	if err != nil {
		t.Fatalf("deployment failed: %v", err)
	}
	if info.Call.EntryPointType != state.EntryPointTypeConstructor {
		t.Errorf("unexpected entry point type %v", info.Call.EntryPointType)
	}
	if value, _ := db.GetStorageAt(address, counterKey); value != common.FeltFromUint64(5) {
		t.Errorf("unexpected initial counter %v", value)
	}
}

func TestExecuteDeployment_ClassWithoutConstructorRequiresEmptyCalldata(t *testing.T) {
	db, runner := newTestEnvironment(t)
	address := common.Address(0x400)

	_, err := ExecuteDeployment(context.Background(), db, plainClassHash, address, deployer, []common.Felt{common.FeltFromUint64(1)}, runner)
	if !errors.Is(err, ErrInvalidConstructorCalldata) {
		t.Errorf("expected invalid calldata error, got %v", err)
	}
	if classHash, _ := db.GetClassHashAt(address); !common.Felt(classHash).IsZero() {
		t.Errorf("failed deployment should be reverted, got %v", classHash)
	}

	info, err := ExecuteDeployment(context.Background(), db, plainClassHash, address, deployer, nil, runner)
	if err != nil {
		t.Fatalf("deployment failed: %v", err)
	}
	if len(info.Retdata) != 0 || runner.runs != 0 {
		t.Errorf("no constructor should be run")
	}
	if classHash, _ := db.GetClassHashAt(address); classHash != plainClassHash {
		t.Errorf("unexpected class hash %v", classHash)
	}
}

func TestExecuteDeployment_AddressZeroIsRejected(t *testing.T) {
	db, runner := newTestEnvironment(t)
	_, err := ExecuteDeployment(context.Background(), db, plainClassHash, common.ContractAddress{}, deployer, nil, runner)
	if !errors.Is(err, state.ErrOutOfRangeContractAddress) {
		t.Errorf("expected out of range address error, got %v", err)
	}
}
