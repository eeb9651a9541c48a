package grouper

import (
	"testing"

	"github.com/moyu-x/dupmover/internal"
)

func rec(path, digest string) internal.FileRecord {
	return internal.FileRecord{Path: path, Size: 5, Digest: digest}
}

func TestGroup_IdenticalContent(t *testing.T) {
	records := []internal.FileRecord{
		rec("/d/z.txt", "aa"),
		rec("/d/a.txt", "aa"),
		rec("/d/m.txt", "aa"),
	}

	groups := Group(records)
	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}

	g := groups[0]
	if g.Digest != "aa" {
		t.Errorf("Expected digest aa, got %s", g.Digest)
	}
	// first seen wins, no sorting by path
	if g.Original().Path != "/d/z.txt" {
		t.Errorf("Expected /d/z.txt as original, got %s", g.Original().Path)
	}
	dups := g.Duplicates()
	if len(dups) != 2 || dups[0].Path != "/d/a.txt" || dups[1].Path != "/d/m.txt" {
		t.Errorf("Unexpected duplicates order: %+v", dups)
	}
}

func TestGroup_DistinctContent(t *testing.T) {
	records := []internal.FileRecord{
		rec("/d/a.txt", "01"),
		rec("/d/b.txt", "02"),
		rec("/d/c.txt", "03"),
	}

	if groups := Group(records); len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestGroup_Empty(t *testing.T) {
	if groups := Group(nil); len(groups) != 0 {
		t.Errorf("Expected no groups, got %d", len(groups))
	}
}

func TestGroup_OrderByFirstMember(t *testing.T) {
	records := []internal.FileRecord{
		rec("/d/1", "bb"),
		rec("/d/2", "aa"),
		rec("/d/3", "cc"),
		rec("/d/4", "aa"),
		rec("/d/5", "bb"),
	}

	groups := Group(records)
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Digest != "bb" || groups[1].Digest != "aa" {
		t.Errorf("Expected groups in first-seen order [bb aa], got [%s %s]", groups[0].Digest, groups[1].Digest)
	}
	if groups[0].Original().Path != "/d/1" || groups[1].Original().Path != "/d/2" {
		t.Error("Unexpected originals")
	}
}

func TestClassify(t *testing.T) {
	records := []internal.FileRecord{
		rec("/d/a.txt", "hello"),
		rec("/d/b.txt", "hello"),
		rec("/d/c.txt", "world"),
	}

	states := Classify(records)
	want := map[string]internal.FileState{
		"/d/a.txt": internal.StateOriginal,
		"/d/b.txt": internal.StateDuplicatePending,
		"/d/c.txt": internal.StateUnique,
	}
	for path, st := range want {
		if states[path] != st {
			t.Errorf("state of %s = %s, want %s", path, states[path], st)
		}
	}
}
