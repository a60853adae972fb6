package state

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/maps"
)

// VisitedPcsBitmap is a VisitedPcs strategy with the semantics of
// VisitedPcsSet, storing the PCs of each class in a compressed bitmap. It is
// suited for recording the coverage of large programs.
type VisitedPcsBitmap struct {
	pcs map[common.ClassHash]*roaring64.Bitmap
}

func NewVisitedPcsBitmap() *VisitedPcsBitmap {
	return &VisitedPcsBitmap{pcs: map[common.ClassHash]*roaring64.Bitmap{}}
}

func (v *VisitedPcsBitmap) New() *VisitedPcsBitmap {
	return NewVisitedPcsBitmap()
}

func (v *VisitedPcsBitmap) get(classHash common.ClassHash) *roaring64.Bitmap {
	bitmap, found := v.pcs[classHash]
	if !found {
		bitmap = roaring64.New()
		v.pcs[classHash] = bitmap
	}
	return bitmap
}

func (v *VisitedPcsBitmap) RecordVisit(classHash common.ClassHash, pc uint64) {
	v.get(classHash).Add(pc)
}

func (v *VisitedPcsBitmap) Insert(classHash common.ClassHash, pcs []uint64) {
	if len(pcs) == 0 {
		return
	}
	v.get(classHash).AddMany(pcs)
}

func (v *VisitedPcsBitmap) ClassHashes() []common.ClassHash {
	return sortedClassHashes(maps.Keys(v.pcs))
}

func (v *VisitedPcsBitmap) VisitedPcs(classHash common.ClassHash) []uint64 {
	bitmap, found := v.pcs[classHash]
	if !found {
		return nil
	}
	return bitmap.ToArray()
}

func (v *VisitedPcsBitmap) ToSet(classHash common.ClassHash) mapset.Set[uint64] {
	return mapset.NewThreadUnsafeSet(v.VisitedPcs(classHash)...)
}

func (v *VisitedPcsBitmap) Extend(other *VisitedPcsBitmap) {
	for classHash, bitmap := range other.pcs {
		v.get(classHash).Or(bitmap)
	}
}

func (v *VisitedPcsBitmap) GetMemoryFootprint() *common.MemoryFootprint {
	var size uint64
	for _, bitmap := range v.pcs {
		size += bitmap.GetSizeInBytes()
	}
	return common.NewMemoryFootprint(uintptr(size) + uintptr(len(v.pcs))*uintptr(common.FeltSize))
}
