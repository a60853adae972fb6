package common

import (
	"fmt"
	"sort"
)

// StateDiff summarizes the effective changes of a transaction: storage cells,
// class hashes deployed at addresses, nonces, and compiled class hashes.
//
// A diff is typically built by appending changes and normalizing the result:
//
//	diff := StateDiff{}
//	diff.AppendStorageUpdate(..)
//	diff.AppendNonceUpdate(..)
//	...
//	err := diff.Normalize()
//
// Normalized diffs list each key at most once, sorted by key.
type StateDiff struct {
	StorageUpdates      []StorageUpdate           `json:"storage_diffs"`
	Nonces              []NonceUpdate             `json:"nonces"`
	ClassHashes         []ClassHashUpdate         `json:"deployed_contracts"`
	CompiledClassHashes []CompiledClassHashUpdate `json:"declared_classes"`
}

type StorageUpdate struct {
	Address ContractAddress `json:"address"`
	Key     StorageKey      `json:"key"`
	Value   Felt            `json:"value"`
}

type NonceUpdate struct {
	Address ContractAddress `json:"contract_address"`
	Nonce   Nonce           `json:"nonce"`
}

type ClassHashUpdate struct {
	Address   ContractAddress `json:"address"`
	ClassHash ClassHash       `json:"class_hash"`
}

type CompiledClassHashUpdate struct {
	ClassHash         ClassHash         `json:"class_hash"`
	CompiledClassHash CompiledClassHash `json:"compiled_class_hash"`
}

// StateDiffTarget is implemented by anything a diff can be applied to.
type StateDiffTarget interface {
	SetStorage(address ContractAddress, key StorageKey, value Felt) error
	SetNonce(address ContractAddress, nonce Nonce) error
	SetClassHash(address ContractAddress, classHash ClassHash) error
	SetCompiledClassHash(classHash ClassHash, compiledClassHash CompiledClassHash) error
}

// IsEmpty is true if there is no change covered by this diff.
func (d StateDiff) IsEmpty() bool {
	return d.Len() == 0
}

// Len is the total number of entries in the diff.
func (d StateDiff) Len() int {
	return len(d.StorageUpdates) + len(d.Nonces) + len(d.ClassHashes) + len(d.CompiledClassHashes)
}

func (d *StateDiff) AppendStorageUpdate(address ContractAddress, key StorageKey, value Felt) {
	d.StorageUpdates = append(d.StorageUpdates, StorageUpdate{address, key, value})
}

func (d *StateDiff) AppendNonceUpdate(address ContractAddress, nonce Nonce) {
	d.Nonces = append(d.Nonces, NonceUpdate{address, nonce})
}

func (d *StateDiff) AppendClassHashUpdate(address ContractAddress, classHash ClassHash) {
	d.ClassHashes = append(d.ClassHashes, ClassHashUpdate{address, classHash})
}

func (d *StateDiff) AppendCompiledClassHashUpdate(classHash ClassHash, compiledClassHash CompiledClassHash) {
	d.CompiledClassHashes = append(d.CompiledClassHashes, CompiledClassHashUpdate{classHash, compiledClassHash})
}

// Normalize sorts all updates and removes duplicates. Conflicting updates of
// the same key are reported as an error.
func (d *StateDiff) Normalize() error {
	d.StorageUpdates = sortUnique(d.StorageUpdates, storageLess)
	d.Nonces = sortUnique(d.Nonces, nonceLess)
	d.ClassHashes = sortUnique(d.ClassHashes, classHashLess)
	d.CompiledClassHashes = sortUnique(d.CompiledClassHashes, compiledClassHashLess)
	return d.Check()
}

// Check verifies that all updates are sorted and unique per key.
func (d *StateDiff) Check() error {
	if !isSortedAndUnique(d.StorageUpdates, storageLess) {
		return fmt.Errorf("storage updates are not in order or unique")
	}
	if !isSortedAndUnique(d.Nonces, nonceLess) {
		return fmt.Errorf("nonce updates are not in order or unique")
	}
	if !isSortedAndUnique(d.ClassHashes, classHashLess) {
		return fmt.Errorf("class hash updates are not in order or unique")
	}
	if !isSortedAndUnique(d.CompiledClassHashes, compiledClassHashLess) {
		return fmt.Errorf("compiled class hash updates are not in order or unique")
	}
	return nil
}

// ApplyTo applies this diff to the given target in a fixed order: class
// hashes, compiled class hashes, nonces, and storage cells.
func (d *StateDiff) ApplyTo(target StateDiffTarget) error {
	for _, change := range d.ClassHashes {
		if err := target.SetClassHash(change.Address, change.ClassHash); err != nil {
			return err
		}
	}
	for _, change := range d.CompiledClassHashes {
		if err := target.SetCompiledClassHash(change.ClassHash, change.CompiledClassHash); err != nil {
			return err
		}
	}
	for _, change := range d.Nonces {
		if err := target.SetNonce(change.Address, change.Nonce); err != nil {
			return err
		}
	}
	for _, change := range d.StorageUpdates {
		if err := target.SetStorage(change.Address, change.Key, change.Value); err != nil {
			return err
		}
	}
	return nil
}

func storageLess(a, b *StorageUpdate) bool {
	c := a.Address.Compare(b.Address)
	return c < 0 || (c == 0 && a.Key.Compare(b.Key) < 0)
}

func nonceLess(a, b *NonceUpdate) bool {
	return a.Address.Compare(b.Address) < 0
}

func classHashLess(a, b *ClassHashUpdate) bool {
	return a.Address.Compare(b.Address) < 0
}

func compiledClassHashLess(a, b *CompiledClassHashUpdate) bool {
	return a.ClassHash.Compare(b.ClassHash) < 0
}

func isSortedAndUnique[T any](list []T, less func(a, b *T) bool) bool {
	for i := 0; i < len(list)-1; i++ {
		if !less(&list[i], &list[i+1]) {
			return false
		}
	}
	return true
}

// sortUnique sorts the list by key and drops exact duplicates. Entries with the
// same key but different values are retained, so Check can report them.
func sortUnique[T comparable](list []T, less func(a, b *T) bool) []T {
	if len(list) <= 1 {
		return list
	}
	sort.SliceStable(list, func(i, j int) bool { return less(&list[i], &list[j]) })
	j := 0
	for i := 1; i < len(list); i++ {
		if list[j] != list[i] {
			j++
			list[j] = list[i]
		}
	}
	return list[:j+1]
}
