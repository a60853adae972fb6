package state

import (
	"fmt"

	"github.com/reilabs/blockifier/backend/ldb"
	"github.com/reilabs/blockifier/backend/pebble"
	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/maps"
)

// Parameters struct defining configuration parameters for state instances.
type Parameters struct {
	Variant   Variant
	Directory string
	// ReadCacheSize is the size of a shared read cache in bytes placed in
	// front of the state. Zero disables the cache, a negative value selects
	// DefaultReadCacheSize.
	ReadCacheSize int
}

// Variant names a state implementation.
type Variant string

const (
	GoMemory  Variant = "go-memory"
	GoLevelDb Variant = "go-ldb"
	GoPebble  Variant = "go-pebble"
)

// UnsupportedConfiguration is the error returned if unsupported configuration
// parameters have been specified. The text may contain further details regarding the
// unsupported feature.
const UnsupportedConfiguration = common.ConstError("unsupported configuration")

// NewState creates a state for the given parameters. If the requested
// configuration is not supported, the error is an UnsupportedConfiguration
// error.
func NewState(params Parameters) (State, error) {
	// Enforce default values.
	if params.Variant == "" {
		params.Variant = GoMemory
	}
	factory, found := stateFactoryRegistry[params.Variant]
	if !found {
		return nil, fmt.Errorf("%w: no registered implementation for %v", UnsupportedConfiguration, params.Variant)
	}
	state, err := factory(params)
	if err != nil {
		return nil, err
	}
	if params.ReadCacheSize != 0 {
		return NewCachingState(state, params.ReadCacheSize), nil
	}
	return state, nil
}

type StateFactory func(params Parameters) (State, error)

var stateFactoryRegistry = map[Variant]StateFactory{}

func RegisterStateFactory(variant Variant, factory StateFactory) {
	if _, found := stateFactoryRegistry[variant]; found {
		panic(fmt.Sprintf("attempted to register multiple factories for %v", variant))
	}
	stateFactoryRegistry[variant] = factory
}

func GetAllRegisteredStateFactories() map[Variant]StateFactory {
	return maps.Clone(stateFactoryRegistry)
}

func newLevelDbState(params Parameters) (State, error) {
	if params.Directory == "" {
		return nil, fmt.Errorf("%w: %v requires a directory", UnsupportedConfiguration, GoLevelDb)
	}
	return ldb.NewState(params.Directory)
}

func newPebbleState(params Parameters) (State, error) {
	if params.Directory == "" {
		return nil, fmt.Errorf("%w: %v requires a directory", UnsupportedConfiguration, GoPebble)
	}
	return pebble.NewState(params.Directory)
}

func init() {
	RegisterStateFactory(GoMemory, newDictState)
	RegisterStateFactory(GoLevelDb, newLevelDbState)
	RegisterStateFactory(GoPebble, newPebbleState)
}
