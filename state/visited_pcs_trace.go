package state

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/slices"
)

// VisitedPcsTrace is a VisitedPcs strategy retaining every visit in execution
// order, including repeated visits of the same PC. Classes are reported in
// the order of their first recorded visit.
//
// Extending a trace appends, for each class of the other trace, all of its
// PCs after the PCs already recorded for that class. Classes new to this
// trace are appended to the class order in the other trace's order.
type VisitedPcsTrace struct {
	order []common.ClassHash
	pcs   map[common.ClassHash][]uint64
}

func NewVisitedPcsTrace() *VisitedPcsTrace {
	return &VisitedPcsTrace{pcs: map[common.ClassHash][]uint64{}}
}

func (v *VisitedPcsTrace) New() *VisitedPcsTrace {
	return NewVisitedPcsTrace()
}

func (v *VisitedPcsTrace) append(classHash common.ClassHash, pcs ...uint64) {
	trace, found := v.pcs[classHash]
	if !found {
		v.order = append(v.order, classHash)
	}
	v.pcs[classHash] = append(trace, pcs...)
}

func (v *VisitedPcsTrace) RecordVisit(classHash common.ClassHash, pc uint64) {
	v.append(classHash, pc)
}

func (v *VisitedPcsTrace) Insert(classHash common.ClassHash, pcs []uint64) {
	if len(pcs) == 0 {
		return
	}
	v.append(classHash, pcs...)
}

func (v *VisitedPcsTrace) ClassHashes() []common.ClassHash {
	return slices.Clone(v.order)
}

func (v *VisitedPcsTrace) VisitedPcs(classHash common.ClassHash) []uint64 {
	return slices.Clone(v.pcs[classHash])
}

func (v *VisitedPcsTrace) ToSet(classHash common.ClassHash) mapset.Set[uint64] {
	return mapset.NewThreadUnsafeSet(v.pcs[classHash]...)
}

func (v *VisitedPcsTrace) Extend(other *VisitedPcsTrace) {
	for _, classHash := range other.order {
		// Copied first, since other may be this trace.
		pcs := slices.Clone(other.pcs[classHash])
		v.append(classHash, pcs...)
	}
}

// Len is the total number of recorded visits.
func (v *VisitedPcsTrace) Len() int {
	res := 0
	for _, pcs := range v.pcs {
		res += len(pcs)
	}
	return res
}

func (v *VisitedPcsTrace) GetMemoryFootprint() *common.MemoryFootprint {
	var size uintptr
	for _, pcs := range v.pcs {
		size += uintptr(cap(pcs)) * 8
	}
	return common.NewMemoryFootprint(size + uintptr(cap(v.order)+len(v.pcs))*uintptr(common.FeltSize))
}
