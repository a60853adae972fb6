package state

import "github.com/ethereum/go-ethereum/metrics"

var (
	storageHitCounter            = metrics.NewRegisteredCounter("blockifier/state/cache/storage/hit", nil)
	storageMissCounter           = metrics.NewRegisteredCounter("blockifier/state/cache/storage/miss", nil)
	classHashHitCounter          = metrics.NewRegisteredCounter("blockifier/state/cache/classhash/hit", nil)
	classHashMissCounter         = metrics.NewRegisteredCounter("blockifier/state/cache/classhash/miss", nil)
	nonceHitCounter              = metrics.NewRegisteredCounter("blockifier/state/cache/nonce/hit", nil)
	nonceMissCounter             = metrics.NewRegisteredCounter("blockifier/state/cache/nonce/miss", nil)
	compiledClassHashHitCounter  = metrics.NewRegisteredCounter("blockifier/state/cache/compiledclasshash/hit", nil)
	compiledClassHashMissCounter = metrics.NewRegisteredCounter("blockifier/state/cache/compiledclasshash/miss", nil)

	classMappingHitCounter  = metrics.NewRegisteredCounter("blockifier/state/classes/mapping/hit", nil)
	classMappingMissCounter = metrics.NewRegisteredCounter("blockifier/state/classes/mapping/miss", nil)
	classCacheHitCounter    = metrics.NewRegisteredCounter("blockifier/state/classes/shared/hit", nil)
	classCacheMissCounter   = metrics.NewRegisteredCounter("blockifier/state/classes/shared/miss", nil)
	classParseFailCounter   = metrics.NewRegisteredCounter("blockifier/state/classes/malformed", nil)

	readCacheHitCounter  = metrics.NewRegisteredCounter("blockifier/state/readcache/hit", nil)
	readCacheMissCounter = metrics.NewRegisteredCounter("blockifier/state/readcache/miss", nil)
)
