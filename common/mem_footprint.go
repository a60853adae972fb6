package common

import (
	"fmt"
	"sort"
	"strings"
)

// MemoryFootprint describes the memory consumption of a structure as a tree of
// named components.
type MemoryFootprint struct {
	value    uintptr
	children map[string]*MemoryFootprint
}

// NewMemoryFootprint creates a footprint of the given size without children.
func NewMemoryFootprint(value uintptr) *MemoryFootprint {
	return &MemoryFootprint{
		value:    value,
		children: make(map[string]*MemoryFootprint),
	}
}

// AddChild attaches the footprint of a sub-component.
func (mf *MemoryFootprint) AddChild(name string, child *MemoryFootprint) {
	mf.children[name] = child
}

// GetChild returns the named sub-component or nil.
func (mf *MemoryFootprint) GetChild(name string) *MemoryFootprint {
	return mf.children[name]
}

// Value provides the bytes consumed by the structure itself, excluding children.
func (mf *MemoryFootprint) Value() uintptr {
	return mf.value
}

// Total provides the bytes consumed including all children. Shared children are
// counted once.
func (mf *MemoryFootprint) Total() uintptr {
	return mf.total(map[*MemoryFootprint]bool{})
}

func (mf *MemoryFootprint) total(seen map[*MemoryFootprint]bool) uintptr {
	if seen[mf] {
		return 0
	}
	seen[mf] = true
	res := mf.value
	for _, child := range mf.children {
		res += child.total(seen)
	}
	return res
}

func (mf *MemoryFootprint) String() string {
	var sb strings.Builder
	mf.write(&sb, ".")
	return sb.String()
}

func (mf *MemoryFootprint) write(sb *strings.Builder, path string) {
	writeMemoryAmount(sb, mf.Total())
	sb.WriteRune(' ')
	sb.WriteString(path)
	sb.WriteRune('\n')
	names := make([]string, 0, len(mf.children))
	for name := range mf.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mf.children[name].write(sb, path+"/"+name)
	}
}

func writeMemoryAmount(sb *strings.Builder, bytes uintptr) {
	const unit = 1024
	const prefixes = "KMGTPE"
	if bytes < unit {
		fmt.Fprintf(sb, "%d B", bytes)
		return
	}
	div, exp := uintptr(unit), 0
	for n := bytes / unit; n >= unit && exp+1 < len(prefixes); n /= unit {
		div *= unit
		exp++
	}
	fmt.Fprintf(sb, "%.1f %cB", float64(bytes)/float64(div), prefixes[exp])
}
