package pebble

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/log"
	"github.com/reilabs/blockifier/common"
)

// DefaultCacheSize is the size of pebble's block cache in bytes.
const DefaultCacheSize = 16 << 20

// State is a state stored in a Pebble instance, using the same key layout as
// the LevelDB state. Zero values are not stored.
type State struct {
	db    *pebble.DB
	cache *pebble.Cache
}

// NewState opens or creates a Pebble state in the given directory.
func NewState(directory string) (*State, error) {
	cache := pebble.NewCache(DefaultCacheSize)
	db, err := pebble.Open(directory, &pebble.Options{Cache: cache})
	if err != nil {
		cache.Unref()
		return nil, fmt.Errorf("failed to open Pebble in %s: %w", directory, err)
	}
	log.Info("Opened Pebble state", "directory", directory)
	return &State{db: db, cache: cache}, nil
}

func (s *State) get(key common.DbKey) ([]byte, error) {
	value, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	res := make([]byte, len(value))
	copy(res, value)
	return res, closer.Close()
}

func (s *State) getFelt(key common.DbKey) (common.Felt, error) {
	value, err := s.get(key)
	if err != nil || value == nil {
		return common.Felt{}, err
	}
	return common.FeltFromBytes(value)
}

func (s *State) GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error) {
	return s.getFelt(common.StorageDBKey(address, key))
}

func (s *State) GetClassHashAt(address common.ContractAddress) (common.ClassHash, error) {
	value, err := s.getFelt(common.ClassHashKeySpace.ToDBKey(common.Felt(address)))
	return common.ClassHash(value), err
}

func (s *State) GetNonceAt(address common.ContractAddress) (common.Nonce, error) {
	value, err := s.getFelt(common.NonceKeySpace.ToDBKey(common.Felt(address)))
	return common.Nonce(value), err
}

func (s *State) GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error) {
	value, err := s.getFelt(common.CompiledClassHashKeySpace.ToDBKey(common.Felt(classHash)))
	return common.CompiledClassHash(value), err
}

func (s *State) GetContractClass(classHash common.ClassHash) ([]byte, error) {
	return s.get(common.ClassDefinitionKeySpace.ToDBKey(common.Felt(classHash)))
}

// Apply writes all entries of the diff in a single batch.
func (s *State) Apply(diff common.StateDiff) error {
	if err := diff.Check(); err != nil {
		return err
	}
	batch := s.db.NewBatch()
	defer batch.Close()
	if err := diff.ApplyTo(common.KeyValueDiffTarget{Writer: batchWriter{batch}}); err != nil {
		return err
	}
	return batch.Commit(pebble.NoSync)
}

func (s *State) DeclareClass(classHash common.ClassHash, definition []byte) error {
	return s.db.Set(common.ClassDefinitionKeySpace.ToDBKey(common.Felt(classHash)), definition, pebble.NoSync)
}

// Flush syncs the write-ahead log and flushes the memtable to disk.
func (s *State) Flush() error {
	if err := s.db.LogData(nil, pebble.Sync); err != nil {
		return err
	}
	return s.db.Flush()
}

func (s *State) Close() error {
	log.Info("Closing Pebble state")
	err := errors.Join(s.Flush(), s.db.Close())
	s.cache.Unref()
	return err
}

func (s *State) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("blockCache", common.NewMemoryFootprint(uintptr(s.cache.Size())))
	mf.AddChild("memtables", common.NewMemoryFootprint(uintptr(s.db.Metrics().MemTable.Size)))
	return mf
}

type batchWriter struct {
	batch *pebble.Batch
}

func (w batchWriter) Put(key common.DbKey, value []byte) error {
	return w.batch.Set(key, value, nil)
}

func (w batchWriter) Delete(key common.DbKey) error {
	return w.batch.Delete(key, nil)
}
