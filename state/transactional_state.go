package state

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// TransactionalState is a cached state layered on top of another cached
// state. Its writes, declared classes, and recorded PCs are moved to the
// parent on Commit or dropped on Abort. Reads missing in the child are served
// by the parent, populating the parent's cache.
type TransactionalState[V VisitedPcs[V]] struct {
	*CachedState[V]
	parent *CachedState[V]
	closed bool
}

// NewTransactionalState creates a child state of the given parent. The parent
// must not be modified while the child is open.
func NewTransactionalState[V VisitedPcs[V]](parent *CachedState[V]) *TransactionalState[V] {
	return &TransactionalState[V]{
		CachedState: newCachedState[V](parent, parent.GetContractClass, parent.visitedPcs.New()),
		parent:      parent,
	}
}

// Commit applies the child's diff to the parent, declares the child's
// classes in the parent, and merges the recorded PCs into the parent's
// recorder. All modifications of the parent are covered by its snapshots. If
// the commit fails, the parent is restored and the child stays open.
func (t *TransactionalState[V]) Commit() error {
	if t.closed {
		return ErrTransactionClosed
	}
	snapshot := t.parent.Snapshot()
	if err := t.applyToParent(); err != nil {
		if revertErr := t.parent.RevertToSnapshot(snapshot); revertErr != nil {
			return errors.Join(err, revertErr)
		}
		return err
	}
	t.parent.visitedPcs.Extend(t.visitedPcs)
	t.closed = true
	log.Trace("Committed transactional state", "operations", len(t.parent.undo)-snapshot, "classes", len(t.declared))
	return nil
}

func (t *TransactionalState[V]) applyToParent() error {
	diff := t.ToStateDiff()
	if err := diff.ApplyTo(stateDiffTarget[V]{t.parent}); err != nil {
		return fmt.Errorf("failed to apply diff to parent state: %w", err)
	}
	for _, classHash := range t.declared {
		if err := t.parent.SetContractClass(classHash, t.classes[classHash]); err != nil {
			return fmt.Errorf("failed to declare class in parent state: %w", err)
		}
	}
	return nil
}

// Abort drops all effects of the child. Classes loaded and values read
// through the child remain cached in the parent.
func (t *TransactionalState[V]) Abort() error {
	if t.closed {
		return ErrTransactionClosed
	}
	t.closed = true
	log.Trace("Aborted transactional state", "operations", len(t.undo))
	return nil
}
