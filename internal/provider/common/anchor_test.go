package common

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/johanforsgren/lgtmthreads/internal/domain"
	"github.com/johanforsgren/lgtmthreads/internal/review"
)

const anchorDiff = `diff --git a/file.txt b/file.txt
--- a/file.txt
+++ b/file.txt
@@ -1,3 +1,3 @@
 line 1
-line 2
+line two
 line 3
diff --git a/old.go b/new.go
similarity index 90%
rename from old.go
rename to new.go
--- a/old.go
+++ b/new.go
@@ -5,1 +5,2 @@ func main() {
 	run()
+	stop()`

func TestAnchorIndex_Location(t *testing.T) {
	idx := NewAnchorIndex(ParseUnifiedDiff(anchorDiff))

	tests := []struct {
		name       string
		path       string
		side       Side
		line       int
		wantChange review.ChangeID
		wantHunk   string
	}{
		{"context from new side", "file.txt", SideNew, 1, "N1", "@@ -1,3 +1,3 @@"},
		{"context from old side", "file.txt", SideOld, 3, "N3", "@@ -1,3 +1,3 @@"},
		{"added line", "file.txt", SideNew, 2, "I2", "@@ -1,3 +1,3 @@"},
		{"deleted line", "file.txt", SideOld, 2, "D2", "@@ -1,3 +1,3 @@"},
		{"renamed file", "new.go", SideNew, 6, "I6", "@@ -5,1 +5,2 @@ func main() {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, ok := idx.Location(tt.path, tt.side, tt.line)
			if !ok {
				t.Fatalf("Location(%s, %s, %d) not found", tt.path, tt.side, tt.line)
			}
			if loc.Hunk != tt.wantHunk {
				t.Errorf("hunk = %q, want %q", loc.Hunk, tt.wantHunk)
			}
			got, err := review.ChangeIDFor(*loc)
			if err != nil {
				t.Fatalf("ChangeIDFor() unexpected error: %v", err)
			}
			if got != tt.wantChange {
				t.Errorf("change = %q, want %q", got, tt.wantChange)
			}
		})
	}
}

func TestAnchorIndex_Misses(t *testing.T) {
	idx := NewAnchorIndex(ParseUnifiedDiff(anchorDiff))

	tests := []struct {
		name string
		path string
		side Side
		line int
	}{
		{"line outside hunks", "file.txt", SideNew, 40},
		{"unknown file", "missing.go", SideNew, 1},
		{"zero line", "file.txt", SideNew, 0},
		{"added line from old side", "new.go", SideOld, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := idx.Location(tt.path, tt.side, tt.line); ok {
				t.Errorf("expected miss for %s:%d", tt.path, tt.line)
			}
		})
	}

	if !idx.HasFile("old.go") {
		t.Error("expected renamed file reachable by old path")
	}
}

func TestAnchorIndex_NilDiff(t *testing.T) {
	idx := NewAnchorIndex(nil)
	if idx.HasFile("any") {
		t.Error("expected empty index")
	}
}

func TestSideLocation(t *testing.T) {
	got := SideLocation("a.go", "@@ -1 +1 @@", SideOld, 7)
	want := &domain.Location{File: "a.go", Hunk: "@@ -1 +1 @@", OldLineNumber: 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SideLocation() mismatch (-want +got):\n%s", diff)
	}
}
