package state

//go:generate mockgen -source state.go -destination state_mocks.go -package state

import (
	"github.com/reilabs/blockifier/common"
)

// StateReader provides point reads of a committed state. Keys never written
// read as zero. Implementations shared between transactions must be safe for
// concurrent use.
type StateReader interface {
	// GetStorageAt returns the value of a storage cell of the given contract.
	GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error)

	// GetClassHashAt returns the class hash deployed at the given address.
	GetClassHashAt(address common.ContractAddress) (common.ClassHash, error)

	// GetNonceAt returns the nonce of the given account.
	GetNonceAt(address common.ContractAddress) (common.Nonce, error)

	// GetCompiledClassHash returns the compiled class hash of a declared class.
	GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error)

	// GetContractClass returns the raw JSON definition of a class, or nil if
	// the class has not been declared.
	GetContractClass(classHash common.ClassHash) ([]byte, error)
}

// State is a persistent or in-memory backend a block's diffs are committed to.
type State interface {
	StateReader

	// Apply writes the given diff to the state.
	Apply(diff common.StateDiff) error

	// DeclareClass stores the raw definition of a class.
	DeclareClass(classHash common.ClassHash, definition []byte) error

	// Flush writes all buffered data to disk.
	Flush() error

	// Close flushes and releases all resources. The state must not be used
	// afterwards.
	Close() error

	// GetMemoryFootprint computes an approximation of the memory used by this state.
	GetMemoryFootprint() *common.MemoryFootprint
}

// StateDB is the mutable view of the state a single transaction is executed
// on. Read accessors may populate internal caches, so a StateDB must not be
// shared between goroutines.
type StateDB interface {
	GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error)
	SetStorageAt(address common.ContractAddress, key common.StorageKey, value common.Felt) error

	GetClassHashAt(address common.ContractAddress) (common.ClassHash, error)
	SetClassHashAt(address common.ContractAddress, classHash common.ClassHash) error

	GetNonceAt(address common.ContractAddress) (common.Nonce, error)
	IncrementNonce(address common.ContractAddress) error

	GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error)
	SetCompiledClassHash(classHash common.ClassHash, compiledClassHash common.CompiledClassHash) error

	// GetContractClass loads and deserializes the class with the given hash.
	GetContractClass(classHash common.ClassHash) (*ContractClass, error)
	// SetContractClass declares a class within the current transaction.
	SetContractClass(classHash common.ClassHash, class *ContractClass) error

	// AddVisitedPcs records program counters executed within the given class.
	AddVisitedPcs(classHash common.ClassHash, pcs []uint64)

	// Snapshot returns an identifier of the current write set.
	Snapshot() int
	// RevertToSnapshot undoes all writes performed since the given snapshot.
	RevertToSnapshot(id int) error

	// ToStateDiff computes the effective changes of this transaction.
	ToStateDiff() common.StateDiff
}
