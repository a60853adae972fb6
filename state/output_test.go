package state

import (
	"sync"
	"testing"

	"github.com/reilabs/blockifier/common"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

func TestApplyOutput_EffectsAreVisibleToLaterTransactions(t *testing.T) {
	base := NewDictStateReader()
	class, err := ParseContractClass(simpleClass().definition())
	if err != nil {
		t.Fatalf("failed to parse class: %v", err)
	}

	first := NewCachedState[*VisitedPcsSet](base, NewVisitedPcsSet())
	if err := first.SetContractClass(classHash(1), class); err != nil {
		t.Fatal(err)
	}
	if err := first.SetCompiledClassHash(classHash(1), compiledClassHash(2)); err != nil {
		t.Fatal(err)
	}
	if err := first.SetClassHashAt(address1, classHash(1)); err != nil {
		t.Fatal(err)
	}
	if err := first.SetStorageAt(address1, key1, val3); err != nil {
		t.Fatal(err)
	}
	if err := first.IncrementNonce(address1); err != nil {
		t.Fatal(err)
	}
	if err := ApplyOutput(base, first.Finalize()); err != nil {
		t.Fatalf("failed to apply output: %v", err)
	}

	second := NewCachedState[*VisitedPcsSet](base, NewVisitedPcsSet())
	if value, err := second.GetStorageAt(address1, key1); err != nil || value != val3 {
		t.Errorf("unexpected storage value %v, %v", value, err)
	}
	if value, err := second.GetNonceAt(address1); err != nil || value != nonce(1) {
		t.Errorf("unexpected nonce %v, %v", value, err)
	}
	if value, err := second.GetClassHashAt(address1); err != nil || value != classHash(1) {
		t.Errorf("unexpected class hash %v, %v", value, err)
	}
	if value, err := second.GetCompiledClassHash(classHash(1)); err != nil || value != compiledClassHash(2) {
		t.Errorf("unexpected compiled class hash %v, %v", value, err)
	}
	loaded, err := second.GetContractClass(classHash(1))
	if err != nil {
		t.Fatalf("failed to load declared class: %v", err)
	}
	if got, want := len(loaded.Program.Data), len(class.Program.Data); got != want {
		t.Errorf("unexpected program length, wanted %d, got %d", want, got)
	}
	if len(second.ToStateDiff().StorageUpdates) != 0 {
		t.Errorf("reading persisted values should not produce a diff")
	}
}

func TestApplyOutput_FailingStateIsReported(t *testing.T) {
	base := NewDictStateReader()
	output := &TransactionOutput[*VisitedPcsSet]{
		StateDiff: common.StateDiff{
			StorageUpdates: []common.StorageUpdate{
				{Address: address2, Key: key1, Value: val1},
				{Address: address1, Key: key1, Value: val1},
			},
		},
	}
	if err := ApplyOutput(base, output); err == nil {
		t.Errorf("unsorted diff should be rejected")
	}
}

func TestMergeVisitedPcs_CombinesAllOutputs(t *testing.T) {
	outputs := []*TransactionOutput[*VisitedPcsSet]{}
	for i := uint64(0); i < 3; i++ {
		pcs := NewVisitedPcsSet()
		pcs.Insert(classHash(i%2), []uint64{i, 10 + i})
		outputs = append(outputs, &TransactionOutput[*VisitedPcsSet]{VisitedPcs: pcs})
	}
	merged := MergeVisitedPcs(NewVisitedPcsSet(), outputs...)
	if got, want := merged.VisitedPcs(classHash(0)), []uint64{0, 2, 10, 12}; !slices.Equal(got, want) {
		t.Errorf("unexpected pcs of class 0, wanted %v, got %v", want, got)
	}
	if got, want := merged.VisitedPcs(classHash(1)), []uint64{1, 11}; !slices.Equal(got, want) {
		t.Errorf("unexpected pcs of class 1, wanted %v, got %v", want, got)
	}
}

func TestCachedState_ConcurrentTransactionsShareReaders(t *testing.T) {
	const numTransactions = 16

	base := NewDictStateReader()
	if err := base.DeclareClass(classHash(1), simpleClass().definition()); err != nil {
		t.Fatal(err)
	}
	reader := NewCachingState(base, 1<<20)
	classCache, err := NewContractClassCache(0)
	if err != nil {
		t.Fatal(err)
	}

	outputs := make([]*TransactionOutput[*VisitedPcsBitmap], numTransactions)
	var group errgroup.Group
	for i := 0; i < numTransactions; i++ {
		i := i
		group.Go(func() error {
			state := NewCachedStateWithClassCache[*VisitedPcsBitmap](reader, NewVisitedPcsBitmap(), classCache)
			class, err := state.GetContractClass(classHash(1))
			if err != nil {
				return err
			}
			entryPoint, err := class.ResolveEntryPoint(EntryPointTypeExternal, common.SelectorFromName("transfer"))
			if err != nil {
				return err
			}
			state.AddVisitedPcs(classHash(1), []uint64{uint64(entryPoint.Offset), uint64(entryPoint.Offset) + uint64(i)})
			address := common.Address(uint64(i) + 1)
			if _, err := state.GetStorageAt(address, key1); err != nil {
				return err
			}
			if err := state.SetStorageAt(address, key1, common.FeltFromUint64(uint64(i)+1)); err != nil {
				return err
			}
			outputs[i] = state.Finalize()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	merged := MergeVisitedPcs(NewVisitedPcsBitmap(), outputs...)
	pcs := merged.VisitedPcs(classHash(1))
	if got, want := len(pcs), numTransactions; got != want {
		t.Errorf("unexpected number of visited pcs, wanted %d, got %d", want, got)
	}
	for i, output := range outputs {
		if got := len(output.StateDiff.StorageUpdates); got != 1 {
			t.Errorf("transaction %d: unexpected number of storage updates %d", i, got)
		}
	}
	if got := classCache.Len(); got != 1 {
		t.Errorf("class should be parsed once and shared, cache holds %d entries", got)
	}
}

func TestDictStateReader_ConcurrentApplyAndRead(t *testing.T) {
	state := NewDictStateReader()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i uint64) {
			defer wg.Done()
			diff := common.StateDiff{}
			diff.AppendStorageUpdate(common.Address(i+1), key1, common.FeltFromUint64(i+1))
			if err := state.Apply(diff); err != nil {
				t.Errorf("failed to apply diff: %v", err)
			}
			if _, err := state.GetStorageAt(common.Address(i+1), key1); err != nil {
				t.Errorf("failed to read: %v", err)
			}
		}(uint64(i))
	}
	wg.Wait()
	for i := uint64(0); i < 8; i++ {
		if value, _ := state.GetStorageAt(common.Address(i+1), key1); value != common.FeltFromUint64(i+1) {
			t.Errorf("unexpected value at %d: %v", i, value)
		}
	}
}
