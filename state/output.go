package state

import (
	"fmt"

	"golang.org/x/exp/maps"
)

// ApplyOutput persists the effects of a transaction to the given state. The
// declared classes are stored first, followed by the state diff.
func ApplyOutput[V VisitedPcs[V]](target State, output *TransactionOutput[V]) error {
	for _, classHash := range sortedClassHashes(maps.Keys(output.DeclaredClasses)) {
		definition := output.DeclaredClasses[classHash].Definition()
		if len(definition) == 0 {
			return fmt.Errorf("%w: class %v has no definition", ErrMalformedClass, classHash)
		}
		if err := target.DeclareClass(classHash, definition); err != nil {
			return fmt.Errorf("failed to declare class %v: %w", classHash, err)
		}
	}
	return target.Apply(output.StateDiff)
}

// MergeVisitedPcs combines the recorders of multiple transactions into one.
func MergeVisitedPcs[V VisitedPcs[V]](into V, outputs ...*TransactionOutput[V]) V {
	for _, output := range outputs {
		into.Extend(output.VisitedPcs)
	}
	return into
}
