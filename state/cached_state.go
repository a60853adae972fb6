package state

import (
	"fmt"
	"unsafe"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/reilabs/blockifier/common"
)

// valueReader is the part of a StateReader serving the values tracked by a
// StateCache. Both StateReaders and CachedStates provide it.
type valueReader interface {
	GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error)
	GetClassHashAt(address common.ContractAddress) (common.ClassHash, error)
	GetNonceAt(address common.ContractAddress) (common.Nonce, error)
	GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error)
}

// CachedState is the state a single transaction is executed on. It layers a
// StateCache and a ContractClassMapping on top of a shared reader and records
// the PCs visited during execution using the strategy V.
//
// Read accessors populate the cache on a miss. Thus, a CachedState must only
// be used by a single goroutine. The reader is never written to; all writes
// are buffered until the transaction's diff is extracted.
type CachedState[V VisitedPcs[V]] struct {
	reader    valueReader
	loadClass func(common.ClassHash) (*ContractClass, error)

	cache      *StateCache
	classes    ContractClassMapping
	visitedPcs V

	// Classes declared by this transaction, in declaration order.
	declared []common.ClassHash

	// A list of operations undoing writes, used for reverting to snapshots.
	undo []func()
}

// TransactionOutput summarizes the effects of a transaction executed on a
// CachedState.
type TransactionOutput[V VisitedPcs[V]] struct {
	StateDiff       common.StateDiff
	VisitedPcs      V
	DeclaredClasses map[common.ClassHash]*ContractClass
}

// NewCachedState creates an empty cached state on top of the given reader,
// recording visited PCs in the given recorder.
func NewCachedState[V VisitedPcs[V]](reader StateReader, visitedPcs V) *CachedState[V] {
	return NewCachedStateWithClassCache(reader, visitedPcs, nil)
}

// NewCachedStateWithClassCache is like NewCachedState but consults the given
// shared cache before loading and parsing a class from the reader. The cache
// may be nil.
func NewCachedStateWithClassCache[V VisitedPcs[V]](reader StateReader, visitedPcs V, classCache *ContractClassCache) *CachedState[V] {
	return newCachedState(reader, func(classHash common.ClassHash) (*ContractClass, error) {
		return readContractClass(reader, classCache, classHash)
	}, visitedPcs)
}

func newCachedState[V VisitedPcs[V]](reader valueReader, loadClass func(common.ClassHash) (*ContractClass, error), visitedPcs V) *CachedState[V] {
	return &CachedState[V]{
		reader:     reader,
		loadClass:  loadClass,
		cache:      NewStateCache(),
		classes:    ContractClassMapping{},
		visitedPcs: visitedPcs,
		undo:       make([]func(), 0, 100),
	}
}

func readContractClass(reader StateReader, classCache *ContractClassCache, classHash common.ClassHash) (*ContractClass, error) {
	if classCache != nil {
		if class, found := classCache.Get(classHash); found {
			return class, nil
		}
	}
	definition, err := reader.GetContractClass(classHash)
	if err != nil {
		return nil, wrapReadError("contract class", classHash, err)
	}
	if len(definition) == 0 {
		return nil, wrapReadError("contract class", classHash, ErrUndeclaredClassHash)
	}
	class, err := ParseContractClass(definition)
	if err != nil {
		classParseFailCounter.Inc(1)
		log.Debug("Failed to parse contract class", "class", classHash, "err", err)
		return nil, wrapReadError("contract class", classHash, err)
	}
	log.Debug("Loaded contract class", "class", classHash, "size", len(definition))
	if classCache != nil {
		classCache.Add(classHash, class)
	}
	return class, nil
}

type cacheKey interface {
	comparable
	fmt.Stringer
}

// getOrRead fetches the value of the given key from the table, reading it
// from the underlying reader on a miss.
func getOrRead[K cacheKey, V comparable](
	table cacheTable[K, V],
	key K,
	op string,
	hits, misses metrics.Counter,
	read func() (V, error),
) (V, error) {
	if value, found := table.get(key); found {
		hits.Inc(1)
		return value, nil
	}
	misses.Inc(1)
	value, err := read()
	if err != nil {
		return value, wrapReadError(op, key, err)
	}
	table.setInitial(key, value)
	return value, nil
}

func (s *CachedState[V]) GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error) {
	return getOrRead(s.cache.storage, storageCell{address, key}, "storage", storageHitCounter, storageMissCounter, func() (common.Felt, error) {
		return s.reader.GetStorageAt(address, key)
	})
}

func (s *CachedState[V]) SetStorageAt(address common.ContractAddress, key common.StorageKey, value common.Felt) error {
	s.undo = append(s.undo, s.cache.storage.set(storageCell{address, key}, value))
	return nil
}

func (s *CachedState[V]) GetClassHashAt(address common.ContractAddress) (common.ClassHash, error) {
	return getOrRead(s.cache.classHashes, address, "class hash", classHashHitCounter, classHashMissCounter, func() (common.ClassHash, error) {
		return s.reader.GetClassHashAt(address)
	})
}

// SetClassHashAt deploys the given class at the given address. Address zero
// is reserved and can not be deployed to.
func (s *CachedState[V]) SetClassHashAt(address common.ContractAddress, classHash common.ClassHash) error {
	if common.Felt(address).IsZero() {
		return fmt.Errorf("%w: %v", ErrOutOfRangeContractAddress, address)
	}
	s.undo = append(s.undo, s.cache.classHashes.set(address, classHash))
	return nil
}

func (s *CachedState[V]) GetNonceAt(address common.ContractAddress) (common.Nonce, error) {
	return getOrRead(s.cache.nonces, address, "nonce", nonceHitCounter, nonceMissCounter, func() (common.Nonce, error) {
		return s.reader.GetNonceAt(address)
	})
}

// IncrementNonce increases the nonce of the given account by one. The current
// nonce is read first, so the account's nonce always has a baseline.
func (s *CachedState[V]) IncrementNonce(address common.ContractAddress) error {
	nonce, err := s.GetNonceAt(address)
	if err != nil {
		return err
	}
	if common.Felt(nonce) == common.MaxFelt() {
		return fmt.Errorf("%w: account %v", ErrNonceOverflow, address)
	}
	s.setNonce(address, common.Nonce(common.Felt(nonce).Add(common.FeltFromUint64(1))))
	return nil
}

func (s *CachedState[V]) setNonce(address common.ContractAddress, nonce common.Nonce) {
	s.undo = append(s.undo, s.cache.nonces.set(address, nonce))
}

func (s *CachedState[V]) GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error) {
	return getOrRead(s.cache.compiledClassHashes, classHash, "compiled class hash", compiledClassHashHitCounter, compiledClassHashMissCounter, func() (common.CompiledClassHash, error) {
		return s.reader.GetCompiledClassHash(classHash)
	})
}

func (s *CachedState[V]) SetCompiledClassHash(classHash common.ClassHash, compiledClassHash common.CompiledClassHash) error {
	s.undo = append(s.undo, s.cache.compiledClassHashes.set(classHash, compiledClassHash))
	return nil
}

// GetContractClass returns the class with the given hash. Each class is
// loaded from the reader and parsed at most once per transaction. Failures are
// reported as StateReadErrors and are not cached.
func (s *CachedState[V]) GetContractClass(classHash common.ClassHash) (*ContractClass, error) {
	if class, found := s.classes.Get(classHash); found {
		classMappingHitCounter.Inc(1)
		return class, nil
	}
	classMappingMissCounter.Inc(1)
	class, err := s.loadClass(classHash)
	if err != nil {
		return nil, err
	}
	s.classes.Insert(classHash, class)
	return class, nil
}

// SetContractClass declares the given class. Declaring a class already known
// to this transaction has no effect.
func (s *CachedState[V]) SetContractClass(classHash common.ClassHash, class *ContractClass) error {
	if class == nil {
		return fmt.Errorf("%w: no class provided for %v", ErrMalformedClass, classHash)
	}
	if !s.classes.Insert(classHash, class) {
		return nil
	}
	s.declared = append(s.declared, classHash)
	s.undo = append(s.undo, func() {
		delete(s.classes, classHash)
		s.declared = s.declared[:len(s.declared)-1]
	})
	return nil
}

// AddVisitedPcs records the PCs executed within the given class.
func (s *CachedState[V]) AddVisitedPcs(classHash common.ClassHash, pcs []uint64) {
	s.visitedPcs.Insert(classHash, pcs)
}

// VisitedPcs provides the recorder of this state.
func (s *CachedState[V]) VisitedPcs() V {
	return s.visitedPcs
}

// Snapshot returns an identifier of the current set of writes. Reads and
// recorded PCs are not covered by snapshots.
func (s *CachedState[V]) Snapshot() int {
	return len(s.undo)
}

// RevertToSnapshot undoes all writes and class declarations performed since
// the given snapshot was taken.
func (s *CachedState[V]) RevertToSnapshot(id int) error {
	if id < 0 || len(s.undo) < id {
		return fmt.Errorf("%w: %d, allowed range 0 - %d", ErrInvalidSnapshot, id, len(s.undo))
	}
	log.Trace("Reverting cached state", "snapshot", id, "operations", len(s.undo)-id)
	for len(s.undo) > id {
		s.undo[len(s.undo)-1]()
		s.undo = s.undo[:len(s.undo)-1]
	}
	return nil
}

// ToStateDiff computes the changes performed by this transaction.
func (s *CachedState[V]) ToStateDiff() common.StateDiff {
	return s.cache.ToStateDiff()
}

// DeclaredClasses lists the classes declared by this transaction.
func (s *CachedState[V]) DeclaredClasses() map[common.ClassHash]*ContractClass {
	res := make(map[common.ClassHash]*ContractClass, len(s.declared))
	for _, classHash := range s.declared {
		res[classHash] = s.classes[classHash]
	}
	return res
}

// Finalize summarizes the effects of the transaction. The output is
// detached from the state: further writes and recorded PCs are still
// possible but not reflected in the returned output.
func (s *CachedState[V]) Finalize() *TransactionOutput[V] {
	visitedPcs := s.visitedPcs.New()
	visitedPcs.Extend(s.visitedPcs)
	return &TransactionOutput[V]{
		StateDiff:       s.ToStateDiff(),
		VisitedPcs:      visitedPcs,
		DeclaredClasses: s.DeclaredClasses(),
	}
}

type memoryFootprintProvider interface {
	GetMemoryFootprint() *common.MemoryFootprint
}

func (s *CachedState[V]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s) + uintptr(cap(s.undo))*unsafe.Sizeof(func() {}))
	mf.AddChild("cache", s.cache.GetMemoryFootprint())
	mf.AddChild("classes", s.classes.GetMemoryFootprint())
	if provider, ok := any(s.visitedPcs).(memoryFootprintProvider); ok {
		mf.AddChild("visitedPcs", provider.GetMemoryFootprint())
	}
	return mf
}

// stateDiffTarget applies diffs to a cached state as regular writes, so they
// are covered by the state's snapshots.
type stateDiffTarget[V VisitedPcs[V]] struct {
	state *CachedState[V]
}

func (t stateDiffTarget[V]) SetStorage(address common.ContractAddress, key common.StorageKey, value common.Felt) error {
	return t.state.SetStorageAt(address, key, value)
}

func (t stateDiffTarget[V]) SetNonce(address common.ContractAddress, nonce common.Nonce) error {
	t.state.setNonce(address, nonce)
	return nil
}

func (t stateDiffTarget[V]) SetClassHash(address common.ContractAddress, classHash common.ClassHash) error {
	return t.state.SetClassHashAt(address, classHash)
}

func (t stateDiffTarget[V]) SetCompiledClassHash(classHash common.ClassHash, compiledClassHash common.CompiledClassHash) error {
	return t.state.SetCompiledClassHash(classHash, compiledClassHash)
}

var _ StateDB = (*CachedState[*VisitedPcsSet])(nil)
