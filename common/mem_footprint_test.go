package common

import (
	"strings"
	"testing"
)

func TestMemoryFootprint_TotalIncludesChildren(t *testing.T) {
	root := NewMemoryFootprint(10)
	root.AddChild("a", NewMemoryFootprint(20))
	root.AddChild("b", NewMemoryFootprint(30))
	if got, want := root.Total(), uintptr(60); got != want {
		t.Errorf("unexpected total, wanted %d, got %d", want, got)
	}
	if got, want := root.Value(), uintptr(10); got != want {
		t.Errorf("unexpected value, wanted %d, got %d", want, got)
	}
}

func TestMemoryFootprint_SharedChildrenAreCountedOnce(t *testing.T) {
	shared := NewMemoryFootprint(100)
	root := NewMemoryFootprint(0)
	left := NewMemoryFootprint(1)
	right := NewMemoryFootprint(2)
	left.AddChild("shared", shared)
	right.AddChild("shared", shared)
	root.AddChild("left", left)
	root.AddChild("right", right)
	if got, want := root.Total(), uintptr(103); got != want {
		t.Errorf("unexpected total, wanted %d, got %d", want, got)
	}
}

func TestMemoryFootprint_GetChild(t *testing.T) {
	child := NewMemoryFootprint(5)
	root := NewMemoryFootprint(0)
	root.AddChild("child", child)
	if root.GetChild("child") != child {
		t.Errorf("failed to fetch child")
	}
	if root.GetChild("missing") != nil {
		t.Errorf("missing child should be nil")
	}
}

func TestMemoryFootprint_String(t *testing.T) {
	root := NewMemoryFootprint(2048)
	root.AddChild("b", NewMemoryFootprint(12))
	root.AddChild("a", NewMemoryFootprint(3*1024*1024))
	str := root.String()
	lines := strings.Split(strings.TrimSpace(str), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected number of lines in\n%s", str)
	}
	if !strings.HasSuffix(lines[0], " .") || !strings.HasPrefix(lines[0], "3.0 MB") {
		t.Errorf("unexpected root line: %s", lines[0])
	}
	if lines[1] != "3.0 MB ./a" {
		t.Errorf("unexpected first child line: %s", lines[1])
	}
	if lines[2] != "12 B ./b" {
		t.Errorf("unexpected second child line: %s", lines[2])
	}
}
