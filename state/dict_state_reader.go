package state

import (
	"sync"
	"unsafe"

	"github.com/reilabs/blockifier/common"
)

// DictStateReader is an in-memory State. It is safe for concurrent use.
type DictStateReader struct {
	mu                  sync.RWMutex
	storage             map[storageCell]common.Felt
	classHashes         map[common.ContractAddress]common.ClassHash
	nonces              map[common.ContractAddress]common.Nonce
	compiledClassHashes map[common.ClassHash]common.CompiledClassHash
	classes             map[common.ClassHash][]byte
}

func NewDictStateReader() *DictStateReader {
	return &DictStateReader{
		storage:             map[storageCell]common.Felt{},
		classHashes:         map[common.ContractAddress]common.ClassHash{},
		nonces:              map[common.ContractAddress]common.Nonce{},
		compiledClassHashes: map[common.ClassHash]common.CompiledClassHash{},
		classes:             map[common.ClassHash][]byte{},
	}
}

func newDictState(params Parameters) (State, error) {
	return NewDictStateReader(), nil
}

func (s *DictStateReader) GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.storage[storageCell{address, key}], nil
}

func (s *DictStateReader) GetClassHashAt(address common.ContractAddress) (common.ClassHash, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classHashes[address], nil
}

func (s *DictStateReader) GetNonceAt(address common.ContractAddress) (common.Nonce, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nonces[address], nil
}

func (s *DictStateReader) GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.compiledClassHashes[classHash], nil
}

func (s *DictStateReader) GetContractClass(classHash common.ClassHash) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[classHash], nil
}

func (s *DictStateReader) Apply(diff common.StateDiff) error {
	if err := diff.Check(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return diff.ApplyTo(dictStateTarget{s})
}

func (s *DictStateReader) DeclareClass(classHash common.ClassHash, definition []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes[classHash] = append([]byte(nil), definition...)
	return nil
}

func (s *DictStateReader) Flush() error {
	return nil
}

func (s *DictStateReader) Close() error {
	return nil
}

func (s *DictStateReader) GetMemoryFootprint() *common.MemoryFootprint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	felt := unsafe.Sizeof(common.Felt{})
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("storage", common.NewMemoryFootprint(uintptr(len(s.storage))*3*felt))
	mf.AddChild("classHashes", common.NewMemoryFootprint(uintptr(len(s.classHashes))*2*felt))
	mf.AddChild("nonces", common.NewMemoryFootprint(uintptr(len(s.nonces))*2*felt))
	mf.AddChild("compiledClassHashes", common.NewMemoryFootprint(uintptr(len(s.compiledClassHashes))*2*felt))
	var classes uintptr
	for _, definition := range s.classes {
		classes += felt + uintptr(len(definition))
	}
	mf.AddChild("classes", common.NewMemoryFootprint(classes))
	return mf
}

// dictStateTarget applies diff entries without acquiring the lock.
type dictStateTarget struct {
	s *DictStateReader
}

func (t dictStateTarget) SetStorage(address common.ContractAddress, key common.StorageKey, value common.Felt) error {
	if value.IsZero() {
		delete(t.s.storage, storageCell{address, key})
	} else {
		t.s.storage[storageCell{address, key}] = value
	}
	return nil
}

func (t dictStateTarget) SetNonce(address common.ContractAddress, nonce common.Nonce) error {
	t.s.nonces[address] = nonce
	return nil
}

func (t dictStateTarget) SetClassHash(address common.ContractAddress, classHash common.ClassHash) error {
	t.s.classHashes[address] = classHash
	return nil
}

func (t dictStateTarget) SetCompiledClassHash(classHash common.ClassHash, compiledClassHash common.CompiledClassHash) error {
	t.s.compiledClassHashes[classHash] = compiledClassHash
	return nil
}
