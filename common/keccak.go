package common

import (
	"golang.org/x/crypto/sha3"
)

const (
	// DefaultEntryPointName is the name of the fallback entry point invoked
	// for unknown selectors.
	DefaultEntryPointName = "__default__"
	// DefaultL1EntryPointName is the fallback for L1 handlers.
	DefaultL1EntryPointName = "__l1_default__"
)

// Keccak256 computes the legacy Keccak-256 hash of the given data.
func Keccak256(data []byte) [32]byte {
	var res [32]byte
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	hasher.Sum(res[:0])
	return res
}

// StarknetKeccak is Keccak-256 truncated to the 250 least significant bits,
// which always yields a valid field element.
func StarknetKeccak(data []byte) Felt {
	hash := Keccak256(data)
	hash[0] &= 0x03
	res, err := FeltFromBytes(hash[:])
	if err != nil {
		panic(err) // unreachable, 250 bits are always in range
	}
	return res
}

// SelectorFromName computes the entry point selector of the given function
// name. The default entry points map to selector zero.
func SelectorFromName(name string) Felt {
	if name == DefaultEntryPointName || name == DefaultL1EntryPointName {
		return Felt{}
	}
	return StarknetKeccak([]byte(name))
}
