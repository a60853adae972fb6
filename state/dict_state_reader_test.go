package state

import (
	"testing"

	"github.com/reilabs/blockifier/common"
)

func TestDictStateReader_UnknownKeysAreZero(t *testing.T) {
	state := NewDictStateReader()
	if value, err := state.GetStorageAt(address1, key1); err != nil || !value.IsZero() {
		t.Errorf("unexpected value %v, %v", value, err)
	}
	if value, err := state.GetNonceAt(address1); err != nil || !common.Felt(value).IsZero() {
		t.Errorf("unexpected nonce %v, %v", value, err)
	}
	if class, err := state.GetContractClass(classHash(1)); err != nil || class != nil {
		t.Errorf("unknown classes should be nil, got %v, %v", class, err)
	}
}

func TestDictStateReader_ApplyDiff(t *testing.T) {
	state := NewDictStateReader()
	diff := common.StateDiff{}
	diff.AppendStorageUpdate(address1, key1, val2)
	diff.AppendNonceUpdate(address1, nonce(3))
	diff.AppendClassHashUpdate(address1, classHash(4))
	diff.AppendCompiledClassHashUpdate(classHash(4), compiledClassHash(5))
	if err := state.Apply(diff); err != nil {
		t.Fatalf("failed to apply diff: %v", err)
	}
	if value, _ := state.GetStorageAt(address1, key1); value != val2 {
		t.Errorf("unexpected storage value %v", value)
	}
	if value, _ := state.GetNonceAt(address1); value != nonce(3) {
		t.Errorf("unexpected nonce %v", value)
	}
	if value, _ := state.GetClassHashAt(address1); value != classHash(4) {
		t.Errorf("unexpected class hash %v", value)
	}
	if value, _ := state.GetCompiledClassHash(classHash(4)); value != compiledClassHash(5) {
		t.Errorf("unexpected compiled class hash %v", value)
	}

	reset := common.StateDiff{}
	reset.AppendStorageUpdate(address1, key1, val0)
	if err := state.Apply(reset); err != nil {
		t.Fatal(err)
	}
	if value, _ := state.GetStorageAt(address1, key1); !value.IsZero() {
		t.Errorf("storage should be reset, got %v", value)
	}
}

func TestDictStateReader_ApplyRejectsUnsortedDiffs(t *testing.T) {
	state := NewDictStateReader()
	diff := common.StateDiff{}
	diff.AppendStorageUpdate(address2, key1, val1)
	diff.AppendStorageUpdate(address1, key1, val1)
	if err := state.Apply(diff); err == nil {
		t.Errorf("unsorted diff should be rejected")
	}
}

func TestDictStateReader_DeclareClassCopiesDefinition(t *testing.T) {
	state := NewDictStateReader()
	definition := []byte("abc")
	if err := state.DeclareClass(classHash(1), definition); err != nil {
		t.Fatal(err)
	}
	definition[0] = 'x'
	if got, _ := state.GetContractClass(classHash(1)); string(got) != "abc" {
		t.Errorf("unexpected definition %s", got)
	}
}
