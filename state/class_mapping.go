package state

import (
	"sort"
	"unsafe"

	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/maps"
)

// ContractClassMapping holds the classes loaded or declared by a single
// transaction. Entries are inserted once and never replaced.
type ContractClassMapping map[common.ClassHash]*ContractClass

func (m ContractClassMapping) Get(classHash common.ClassHash) (*ContractClass, bool) {
	class, found := m[classHash]
	return class, found
}

// Insert adds the class if the hash is not yet present. It reports whether
// the class has been added.
func (m ContractClassMapping) Insert(classHash common.ClassHash, class *ContractClass) bool {
	if _, found := m[classHash]; found {
		return false
	}
	m[classHash] = class
	return true
}

// ClassHashes lists the hashes of all contained classes in ascending order.
func (m ContractClassMapping) ClassHashes() []common.ClassHash {
	return sortedClassHashes(maps.Keys(m))
}

func (m ContractClassMapping) GetMemoryFootprint() *common.MemoryFootprint {
	var classHash common.ClassHash
	var class *ContractClass
	mf := common.NewMemoryFootprint(uintptr(len(m)) * (unsafe.Sizeof(classHash) + unsafe.Sizeof(class)))
	for hash, class := range m {
		mf.AddChild(hash.String(), class.GetMemoryFootprint())
	}
	return mf
}

func sortedClassHashes(hashes []common.ClassHash) []common.ClassHash {
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].Compare(hashes[j]) < 0 })
	return hashes
}
