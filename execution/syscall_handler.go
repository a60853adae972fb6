package execution

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reilabs/blockifier/common"
	"github.com/reilabs/blockifier/state"
)

// SyscallHandler serves the system calls of a single entry point run. Storage
// accesses are bound to the storage address of the call.
type SyscallHandler struct {
	ctx            context.Context
	db             state.StateDB
	runner         Runner
	storageAddress common.ContractAddress
	callerAddress  common.ContractAddress
	depth          int

	accessedKeys mapset.Set[common.StorageKey]
	readValues   []common.Felt
	innerCalls   []*CallInfo
}

func newSyscallHandler(
	ctx context.Context,
	db state.StateDB,
	runner Runner,
	storageAddress common.ContractAddress,
	callerAddress common.ContractAddress,
	depth int,
) *SyscallHandler {
	return &SyscallHandler{
		ctx:            ctx,
		db:             db,
		runner:         runner,
		storageAddress: storageAddress,
		callerAddress:  callerAddress,
		depth:          depth,
		accessedKeys:   mapset.NewThreadUnsafeSet[common.StorageKey](),
	}
}

func (h *SyscallHandler) ContractAddress() common.ContractAddress {
	return h.storageAddress
}

func (h *SyscallHandler) CallerAddress() common.ContractAddress {
	return h.callerAddress
}

// StorageRead reads a storage cell of the executing contract.
func (h *SyscallHandler) StorageRead(key common.StorageKey) (common.Felt, error) {
	h.accessedKeys.Add(key)
	value, err := h.db.GetStorageAt(h.storageAddress, key)
	if err != nil {
		return value, err
	}
	h.readValues = append(h.readValues, value)
	return value, nil
}

// StorageWrite writes a storage cell of the executing contract.
func (h *SyscallHandler) StorageWrite(key common.StorageKey, value common.Felt) error {
	h.accessedKeys.Add(key)
	return h.db.SetStorageAt(h.storageAddress, key, value)
}

// CallContract executes an external entry point of another contract.
func (h *SyscallHandler) CallContract(address common.ContractAddress, selector common.Felt, calldata []common.Felt) ([]common.Felt, error) {
	return h.call(CallEntryPoint{
		EntryPointType:     state.EntryPointTypeExternal,
		EntryPointSelector: selector,
		Calldata:           calldata,
		StorageAddress:     address,
		CallerAddress:      h.storageAddress,
	})
}

// LibraryCall executes an entry point of the given class in the context of
// the executing contract.
func (h *SyscallHandler) LibraryCall(classHash common.ClassHash, selector common.Felt, calldata []common.Felt) ([]common.Felt, error) {
	return h.call(CallEntryPoint{
		ClassHash:          &classHash,
		EntryPointType:     state.EntryPointTypeExternal,
		EntryPointSelector: selector,
		Calldata:           calldata,
		StorageAddress:     h.storageAddress,
		CallerAddress:      h.callerAddress,
	})
}

func (h *SyscallHandler) call(call CallEntryPoint) ([]common.Felt, error) {
	info, err := executeEntryPointCall(h.ctx, h.db, call, h.runner, h.depth+1)
	if err != nil {
		return nil, err
	}
	h.innerCalls = append(h.innerCalls, info)
	return info.Retdata, nil
}

// AccessedStorageKeys lists the storage keys touched so far in ascending order.
func (h *SyscallHandler) AccessedStorageKeys() []common.StorageKey {
	keys := h.accessedKeys.ToSlice()
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}
