package state

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// VisitedPcs records the program counters executed within each class during
// a transaction. Implementations define whether repeated visits are retained
// and in which order PCs are reported. T is the implementing type itself, so
// recorders of the same strategy can be merged.
type VisitedPcs[T any] interface {
	// New creates an empty recorder of the same strategy.
	New() T

	// RecordVisit marks a single PC of the given class as executed.
	RecordVisit(classHash common.ClassHash, pc uint64)

	// Insert records a sequence of executed PCs, for instance the PCs of a
	// runner's trace. An empty sequence records nothing.
	Insert(classHash common.ClassHash, pcs []uint64)

	// ClassHashes lists all classes with at least one recorded visit.
	ClassHashes() []common.ClassHash

	// VisitedPcs lists the PCs recorded for the given class. The result is
	// empty for classes without recorded visits.
	VisitedPcs(classHash common.ClassHash) []uint64

	// ToSet provides the distinct PCs recorded for the given class.
	ToSet(classHash common.ClassHash) mapset.Set[uint64]

	// Extend merges the visits recorded by other into this recorder.
	Extend(other T)
}

// VisitedPcsSet is a VisitedPcs strategy retaining each visited PC once.
// Classes and PCs are reported in ascending order.
type VisitedPcsSet struct {
	pcs map[common.ClassHash]mapset.Set[uint64]
}

func NewVisitedPcsSet() *VisitedPcsSet {
	return &VisitedPcsSet{pcs: map[common.ClassHash]mapset.Set[uint64]{}}
}

func (v *VisitedPcsSet) New() *VisitedPcsSet {
	return NewVisitedPcsSet()
}

func (v *VisitedPcsSet) get(classHash common.ClassHash) mapset.Set[uint64] {
	set, found := v.pcs[classHash]
	if !found {
		set = mapset.NewThreadUnsafeSet[uint64]()
		v.pcs[classHash] = set
	}
	return set
}

func (v *VisitedPcsSet) RecordVisit(classHash common.ClassHash, pc uint64) {
	v.get(classHash).Add(pc)
}

func (v *VisitedPcsSet) Insert(classHash common.ClassHash, pcs []uint64) {
	if len(pcs) == 0 {
		return
	}
	v.get(classHash).Append(pcs...)
}

func (v *VisitedPcsSet) ClassHashes() []common.ClassHash {
	return sortedClassHashes(maps.Keys(v.pcs))
}

func (v *VisitedPcsSet) VisitedPcs(classHash common.ClassHash) []uint64 {
	set, found := v.pcs[classHash]
	if !found {
		return nil
	}
	res := set.ToSlice()
	slices.Sort(res)
	return res
}

func (v *VisitedPcsSet) ToSet(classHash common.ClassHash) mapset.Set[uint64] {
	if set, found := v.pcs[classHash]; found {
		return set.Clone()
	}
	return mapset.NewThreadUnsafeSet[uint64]()
}

func (v *VisitedPcsSet) Extend(other *VisitedPcsSet) {
	for classHash, pcs := range other.pcs {
		v.get(classHash).Append(pcs.ToSlice()...)
	}
}

func (v *VisitedPcsSet) GetMemoryFootprint() *common.MemoryFootprint {
	var entries uintptr
	for _, set := range v.pcs {
		entries += uintptr(set.Cardinality())
	}
	return common.NewMemoryFootprint(entries*8 + uintptr(len(v.pcs))*uintptr(common.FeltSize))
}
