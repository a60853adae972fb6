package ldb

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ethereum/go-ethereum/log"
	"github.com/reilabs/blockifier/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// State is a state stored in a LevelDB instance. Values are stored under the
// keys of the common table spaces. Zero values are not stored.
type State struct {
	db      *leveldb.DB
	options *opt.Options
}

// NewState opens or creates a LevelDB state in the given directory.
func NewState(directory string) (*State, error) {
	options := &opt.Options{}
	db, err := leveldb.OpenFile(directory, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB in %s: %w", directory, err)
	}
	log.Info("Opened LevelDB state", "directory", directory)
	return &State{db: db, options: options}, nil
}

func (s *State) get(key common.DbKey) ([]byte, error) {
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return value, err
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
	batch := new(leveldb.Batch)
	if err := diff.ApplyTo(common.KeyValueDiffTarget{Writer: batchWriter{batch}}); err != nil {
		return err
	}
	return s.db.Write(batch, nil)
}

func (s *State) DeclareClass(classHash common.ClassHash, definition []byte) error {
	return s.db.Put(common.ClassDefinitionKeySpace.ToDBKey(common.Felt(classHash)), definition, nil)
}

// Flush is a no-op, since LevelDB persists writes in its journal.
func (s *State) Flush() error {
	return nil
}

func (s *State) Close() error {
	log.Info("Closing LevelDB state")
	return s.db.Close()
}

func (s *State) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("writeBuffer", common.NewMemoryFootprint(uintptr(s.options.GetWriteBuffer())))
	mf.AddChild("blockCache", common.NewMemoryFootprint(uintptr(s.options.GetBlockCacheCapacity())))
	return mf
}

type batchWriter struct {
	batch *leveldb.Batch
}

func (w batchWriter) Put(key common.DbKey, value []byte) error {
	w.batch.Put(key, value)
	return nil
}

func (w batchWriter) Delete(key common.DbKey) error {
	w.batch.Delete(key)
	return nil
}
