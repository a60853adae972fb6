package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestStateDiff_EmptyDiff(t *testing.T) {
	diff := StateDiff{}
	if !diff.IsEmpty() {
		t.Errorf("fresh diff should be empty")
	}
	if err := diff.Check(); err != nil {
		t.Errorf("empty diff should be valid, got %v", err)
	}
}

func newSingleUpdateDiff() StateDiff {
	diff := StateDiff{}
	diff.AppendStorageUpdate(Address(1), Key(1), FeltFromUint64(1))
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(1)))
	return diff
}

func TestStateDiff_SizeCanBeQueriedOnReturnedValues(t *testing.T) {
	if newSingleUpdateDiff().IsEmpty() {
		t.Errorf("diff with updates should not be empty")
	}
	if got := newSingleUpdateDiff().Len(); got != 2 {
		t.Errorf("unexpected number of updates, wanted 2, got %d", got)
	}
}

func TestStateDiff_NormalizeSortsEntries(t *testing.T) {
	diff := StateDiff{}
	diff.AppendStorageUpdate(Address(2), Key(1), FeltFromUint64(1))
	diff.AppendStorageUpdate(Address(1), Key(2), FeltFromUint64(2))
	diff.AppendStorageUpdate(Address(1), Key(1), FeltFromUint64(3))
	diff.AppendNonceUpdate(Address(3), Nonce(FeltFromUint64(1)))
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(1)))
	diff.AppendClassHashUpdate(Address(2), ClassHash(FeltFromUint64(7)))
	diff.AppendClassHashUpdate(Address(1), ClassHash(FeltFromUint64(8)))
	diff.AppendCompiledClassHashUpdate(ClassHash(FeltFromUint64(9)), CompiledClassHash(FeltFromUint64(1)))
	diff.AppendCompiledClassHashUpdate(ClassHash(FeltFromUint64(4)), CompiledClassHash(FeltFromUint64(1)))

	if err := diff.Check(); err == nil {
		t.Errorf("unsorted diff should fail the check")
	}
	if err := diff.Normalize(); err != nil {
		t.Fatalf("failed to normalize: %v", err)
	}
	wantStorage := []StorageUpdate{
		{Address(1), Key(1), FeltFromUint64(3)},
		{Address(1), Key(2), FeltFromUint64(2)},
		{Address(2), Key(1), FeltFromUint64(1)},
	}
	if !reflect.DeepEqual(diff.StorageUpdates, wantStorage) {
		t.Errorf("unexpected storage order, wanted %v, got %v", wantStorage, diff.StorageUpdates)
	}
	if diff.Nonces[0].Address != Address(1) || diff.ClassHashes[0].Address != Address(1) {
		t.Errorf("nonces and class hashes should be sorted by address")
	}
	if diff.CompiledClassHashes[0].ClassHash != ClassHash(FeltFromUint64(4)) {
		t.Errorf("compiled class hashes should be sorted by class hash")
	}
	if got, want := diff.Len(), 9; got != want {
		t.Errorf("unexpected length, wanted %d, got %d", want, got)
	}
}

func TestStateDiff_NormalizeDropsDuplicates(t *testing.T) {
	diff := StateDiff{}
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(2)))
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(2)))
	if err := diff.Normalize(); err != nil {
		t.Fatalf("failed to normalize: %v", err)
	}
	if got := len(diff.Nonces); got != 1 {
		t.Errorf("duplicates should be removed, got %d entries", got)
	}
}

func TestStateDiff_NormalizeDetectsConflicts(t *testing.T) {
	diff := StateDiff{}
	diff.AppendStorageUpdate(Address(1), Key(1), FeltFromUint64(1))
	diff.AppendStorageUpdate(Address(1), Key(1), FeltFromUint64(2))
	if err := diff.Normalize(); err == nil {
		t.Errorf("conflicting updates should be reported")
	}
}

type diffRecorder struct {
	calls []string
	fail  string
}

func (r *diffRecorder) record(call string) error {
	r.calls = append(r.calls, call)
	if call == r.fail {
		return errors.New("injected error")
	}
	return nil
}

func (r *diffRecorder) SetStorage(address ContractAddress, key StorageKey, value Felt) error {
	return r.record(fmt.Sprintf("storage %v %v %v", address, key, value))
}

func (r *diffRecorder) SetNonce(address ContractAddress, nonce Nonce) error {
	return r.record(fmt.Sprintf("nonce %v %v", address, nonce))
}

func (r *diffRecorder) SetClassHash(address ContractAddress, classHash ClassHash) error {
	return r.record(fmt.Sprintf("class %v %v", address, classHash))
}

func (r *diffRecorder) SetCompiledClassHash(classHash ClassHash, compiledClassHash CompiledClassHash) error {
	return r.record(fmt.Sprintf("compiled %v %v", classHash, compiledClassHash))
}

func TestStateDiff_ApplyToFollowsFixedOrder(t *testing.T) {
	diff := StateDiff{}
	diff.AppendStorageUpdate(Address(1), Key(2), FeltFromUint64(3))
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(1)))
	diff.AppendCompiledClassHashUpdate(ClassHash(FeltFromUint64(5)), CompiledClassHash(FeltFromUint64(6)))
	diff.AppendClassHashUpdate(Address(1), ClassHash(FeltFromUint64(5)))

	target := &diffRecorder{}
	if err := diff.ApplyTo(target); err != nil {
		t.Fatalf("failed to apply diff: %v", err)
	}
	want := []string{
		"class 0x1 0x5",
		"compiled 0x5 0x6",
		"nonce 0x1 0x1",
		"storage 0x1 0x2 0x3",
	}
	if !reflect.DeepEqual(target.calls, want) {
		t.Errorf("unexpected calls, wanted %v, got %v", want, target.calls)
	}
}

func TestStateDiff_ApplyToStopsAtFirstError(t *testing.T) {
	diff := StateDiff{}
	diff.AppendStorageUpdate(Address(1), Key(2), FeltFromUint64(3))
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(1)))

	target := &diffRecorder{fail: "nonce 0x1 0x1"}
	if err := diff.ApplyTo(target); err == nil {
		t.Errorf("error of target should be forwarded")
	}
	if got := len(target.calls); got != 1 {
		t.Errorf("no updates should be applied after a failure, got %v", target.calls)
	}
}

func TestStateDiff_JsonFieldNames(t *testing.T) {
	diff := StateDiff{}
	diff.AppendNonceUpdate(Address(1), Nonce(FeltFromUint64(2)))
	data, err := json.Marshal(&diff)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	want := `{"storage_diffs":null,"nonces":[{"contract_address":"0x1","nonce":"0x2"}],"deployed_contracts":null,"declared_classes":null}`
	if got := string(data); got != want {
		t.Errorf("unexpected encoding\nwanted %s\n   got %s", want, got)
	}
}
