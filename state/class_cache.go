package state

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/reilabs/blockifier/common"
)

// DefaultClassCacheCapacity is the number of parsed classes retained by a
// ContractClassCache if no capacity is specified.
const DefaultClassCacheCapacity = 1024

// ContractClassCache retains parsed classes across transactions, so a class
// used by multiple transactions of a block is only decoded once. It is safe
// for concurrent use.
type ContractClassCache struct {
	cache *lru.Cache[common.ClassHash, *ContractClass]
}

// NewContractClassCache creates a cache retaining up to capacity classes.
func NewContractClassCache(capacity int) (*ContractClassCache, error) {
	if capacity <= 0 {
		capacity = DefaultClassCacheCapacity
	}
	cache, err := lru.New[common.ClassHash, *ContractClass](capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create class cache: %w", err)
	}
	return &ContractClassCache{cache: cache}, nil
}

func (c *ContractClassCache) Get(classHash common.ClassHash) (*ContractClass, bool) {
	class, found := c.cache.Get(classHash)
	if found {
		classCacheHitCounter.Inc(1)
	} else {
		classCacheMissCounter.Inc(1)
	}
	return class, found
}

func (c *ContractClassCache) Add(classHash common.ClassHash, class *ContractClass) {
	c.cache.Add(classHash, class)
}

func (c *ContractClassCache) Len() int {
	return c.cache.Len()
}

// Clear removes all retained classes.
func (c *ContractClassCache) Clear() {
	c.cache.Purge()
}
