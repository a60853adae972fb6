package state

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/pbnjay/memory"
	"github.com/reilabs/blockifier/common"
)

const (
	// minReadCacheSize is the smallest read cache created when sizing the
	// cache from the system's memory.
	minReadCacheSize = 32 << 20
	// readCacheMemoryShare is the fraction of the system's memory used for
	// the read cache if no explicit size is given.
	readCacheMemoryShare = 16
)

// DefaultReadCacheSize derives a read cache size from the total memory of
// the system.
func DefaultReadCacheSize() int {
	size := memory.TotalMemory() / readCacheMemoryShare
	if size < minReadCacheSize {
		return minReadCacheSize
	}
	return int(size)
}

// CachingState is a State retaining recently read values in a memory-bounded
// cache shared by all readers. Classes are not cached, since parsed classes
// are retained by a ContractClassCache. It is safe for concurrent use if the
// wrapped state is.
//
// Values read from the wrapped state are only cached if no Apply started
// since the read was issued, so a concurrent Apply never gets overwritten by
// an outdated value.
type CachingState struct {
	State
	cache *fastcache.Cache

	// mu is held exclusively by Apply and shared while filling the cache.
	mu sync.RWMutex
	// generation counts the Apply calls started so far.
	generation atomic.Uint64
}

// NewCachingState wraps the given state in a read cache of the given size in
// bytes. A non-positive size selects DefaultReadCacheSize.
func NewCachingState(state State, size int) *CachingState {
	if size <= 0 {
		size = DefaultReadCacheSize()
	}
	return &CachingState{
		State: state,
		cache: fastcache.New(size),
	}
}

func (s *CachingState) getFelt(key common.DbKey, read func() (common.Felt, error)) (common.Felt, error) {
	if value, found := s.cache.HasGet(nil, key); found {
		readCacheHitCounter.Inc(1)
		return common.FeltFromBytes(value)
	}
	readCacheMissCounter.Inc(1)
	generation := s.generation.Load()
	value, err := read()
	if err != nil {
		return value, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.generation.Load() == generation {
		bytes := value.Bytes()
		s.cache.Set(key, bytes[:])
	}
	return value, nil
}

func (s *CachingState) GetStorageAt(address common.ContractAddress, key common.StorageKey) (common.Felt, error) {
	return s.getFelt(common.StorageDBKey(address, key), func() (common.Felt, error) {
		return s.State.GetStorageAt(address, key)
	})
}

func (s *CachingState) GetClassHashAt(address common.ContractAddress) (common.ClassHash, error) {
	value, err := s.getFelt(common.ClassHashKeySpace.ToDBKey(common.Felt(address)), func() (common.Felt, error) {
		value, err := s.State.GetClassHashAt(address)
		return common.Felt(value), err
	})
	return common.ClassHash(value), err
}

func (s *CachingState) GetNonceAt(address common.ContractAddress) (common.Nonce, error) {
	value, err := s.getFelt(common.NonceKeySpace.ToDBKey(common.Felt(address)), func() (common.Felt, error) {
		value, err := s.State.GetNonceAt(address)
		return common.Felt(value), err
	})
	return common.Nonce(value), err
}

func (s *CachingState) GetCompiledClassHash(classHash common.ClassHash) (common.CompiledClassHash, error) {
	value, err := s.getFelt(common.CompiledClassHashKeySpace.ToDBKey(common.Felt(classHash)), func() (common.Felt, error) {
		value, err := s.State.GetCompiledClassHash(classHash)
		return common.Felt(value), err
	})
	return common.CompiledClassHash(value), err
}

// Apply forwards the diff to the wrapped state and updates cached values.
func (s *CachingState) Apply(diff common.StateDiff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation.Add(1)
	if err := s.State.Apply(diff); err != nil {
		// The wrapped state may have been partially updated.
		s.cache.Reset()
		return err
	}
	return diff.ApplyTo(common.KeyValueDiffTarget{Writer: cacheWriter{s.cache}})
}

func (s *CachingState) GetMemoryFootprint() *common.MemoryFootprint {
	var stats fastcache.Stats
	s.cache.UpdateStats(&stats)
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("readCache", common.NewMemoryFootprint(uintptr(stats.BytesSize)))
	mf.AddChild("state", s.State.GetMemoryFootprint())
	return mf
}

// cacheWriter stores diff entries in the read cache. Deleted entries are
// cached as zero values.
type cacheWriter struct {
	cache *fastcache.Cache
}

func (w cacheWriter) Put(key common.DbKey, value []byte) error {
	w.cache.Set(key, value)
	return nil
}

func (w cacheWriter) Delete(key common.DbKey) error {
	var zero [common.FeltSize]byte
	w.cache.Set(key, zero[:])
	return nil
}
