package state

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/maps"
)

// storageCell identifies a single storage slot of a contract.
type storageCell struct {
	address common.ContractAddress
	key     common.StorageKey
}

func (c storageCell) String() string {
	return fmt.Sprintf("%v/%v", c.address, c.key)
}

func (c storageCell) compare(o storageCell) int {
	if res := c.address.Compare(o.address); res != 0 {
		return res
	}
	return c.key.Compare(o.key)
}

// cachedValue is the cache record of a single key. The initial value is the
// first value observed from the underlying reader and is never updated. Keys
// written before being read have no initial value.
type cachedValue[V comparable] struct {
	initial      V
	initialKnown bool
	current      V
}

// changed is true if the value needs to be part of a state diff.
func (v *cachedValue[V]) changed() bool {
	return !v.initialKnown || v.initial != v.current
}

type cacheTable[K comparable, V comparable] map[K]*cachedValue[V]

func (t cacheTable[K, V]) get(key K) (V, bool) {
	if entry, found := t[key]; found {
		return entry.current, true
	}
	var zero V
	return zero, false
}

// setInitial records a value read from the underlying reader. A key that is
// already present keeps its records.
func (t cacheTable[K, V]) setInitial(key K, value V) {
	if _, found := t[key]; found {
		return
	}
	t[key] = &cachedValue[V]{initial: value, initialKnown: true, current: value}
}

// set overwrites the current value and returns an operation restoring the
// previous record.
func (t cacheTable[K, V]) set(key K, value V) func() {
	entry, found := t[key]
	if !found {
		t[key] = &cachedValue[V]{current: value}
		return func() { delete(t, key) }
	}
	old := entry.current
	entry.current = value
	return func() { entry.current = old }
}

// changes lists the keys to be included in a diff in ascending order.
func (t cacheTable[K, V]) changes(compare func(a, b K) int) []K {
	res := make([]K, 0, len(t))
	for _, key := range maps.Keys(t) {
		if t[key].changed() {
			res = append(res, key)
		}
	}
	sort.Slice(res, func(i, j int) bool { return compare(res[i], res[j]) < 0 })
	return res
}

func (t cacheTable[K, V]) getMemoryFootprint() *common.MemoryFootprint {
	var key K
	var value cachedValue[V]
	entrySize := unsafe.Sizeof(key) + unsafe.Sizeof(&value) + unsafe.Sizeof(value)
	return common.NewMemoryFootprint(uintptr(len(t)) * entrySize)
}

// StateCache records all values read and written by a single transaction,
// covering storage cells, deployed class hashes, nonces, and compiled class
// hashes.
type StateCache struct {
	storage             cacheTable[storageCell, common.Felt]
	classHashes         cacheTable[common.ContractAddress, common.ClassHash]
	nonces              cacheTable[common.ContractAddress, common.Nonce]
	compiledClassHashes cacheTable[common.ClassHash, common.CompiledClassHash]
}

func NewStateCache() *StateCache {
	return &StateCache{
		storage:             cacheTable[storageCell, common.Felt]{},
		classHashes:         cacheTable[common.ContractAddress, common.ClassHash]{},
		nonces:              cacheTable[common.ContractAddress, common.Nonce]{},
		compiledClassHashes: cacheTable[common.ClassHash, common.CompiledClassHash]{},
	}
}

// ToStateDiff lists all keys whose current value differs from the value
// initially read. Keys written without a preceding read are always listed.
// The cache is not modified.
func (c *StateCache) ToStateDiff() common.StateDiff {
	diff := common.StateDiff{}
	for _, cell := range c.storage.changes(storageCell.compare) {
		diff.AppendStorageUpdate(cell.address, cell.key, c.storage[cell].current)
	}
	for _, address := range c.nonces.changes(common.ContractAddress.Compare) {
		diff.AppendNonceUpdate(address, c.nonces[address].current)
	}
	for _, address := range c.classHashes.changes(common.ContractAddress.Compare) {
		diff.AppendClassHashUpdate(address, c.classHashes[address].current)
	}
	for _, classHash := range c.compiledClassHashes.changes(common.ClassHash.Compare) {
		diff.AppendCompiledClassHashUpdate(classHash, c.compiledClassHashes[classHash].current)
	}
	return diff
}

func (c *StateCache) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*c))
	mf.AddChild("storage", c.storage.getMemoryFootprint())
	mf.AddChild("classHashes", c.classHashes.getMemoryFootprint())
	mf.AddChild("nonces", c.nonces.getMemoryFootprint())
	mf.AddChild("compiledClassHashes", c.compiledClassHashes.getMemoryFootprint())
	return mf
}
