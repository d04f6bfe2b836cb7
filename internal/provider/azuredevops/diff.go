package azuredevops

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const contextLines = 3

// changedFile is one entry of an iteration's change list with both blob
// contents loaded.
type changedFile struct {
	oldPath    string
	newPath    string
	oldContent string
	newContent string
	isNew      bool
	isDeleted  bool
}

type lineOp struct {
	kind byte
	text string
}

// writeFileDiff renders f in git's unified format so the shared diff
// parser can read it.
func writeFileDiff(b *strings.Builder, f changedFile) {
	fmt.Fprintf(b, "diff --git a/%s b/%s\n", f.oldPath, f.newPath)
	switch {
	case f.isNew:
		b.WriteString("new file mode 100644\n")
	case f.isDeleted:
		b.WriteString("deleted file mode 100644\n")
	case f.oldPath != f.newPath:
		fmt.Fprintf(b, "rename from %s\nrename to %s\n", f.oldPath, f.newPath)
	}

	if f.isNew {
		b.WriteString("--- /dev/null\n")
	} else {
		fmt.Fprintf(b, "--- a/%s\n", f.oldPath)
	}
	if f.isDeleted {
		b.WriteString("+++ /dev/null\n")
	} else {
		fmt.Fprintf(b, "+++ b/%s\n", f.newPath)
	}

	for _, hunk := range buildHunks(lineOps(f.oldContent, f.newContent)) {
		b.WriteString(hunk)
	}
}

func lineOps(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var ops []lineOp
	for _, d := range diffs {
		kind := byte(' ')
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = '+'
		case diffmatchpatch.DiffDelete:
			kind = '-'
		}
		for _, line := range splitLines(d.Text) {
			ops = append(ops, lineOp{kind: kind, text: line})
		}
	}
	return ops
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// buildHunks groups changed lines with up to contextLines of surrounding
// context, merging groups whose context would overlap.
func buildHunks(ops []lineOp) []string {
	// oldBefore[i] and newBefore[i] count the lines of each side that
	// precede ops[i].
	oldBefore := make([]int, len(ops)+1)
	newBefore := make([]int, len(ops)+1)
	for i, op := range ops {
		oldBefore[i+1] = oldBefore[i]
		newBefore[i+1] = newBefore[i]
		if op.kind != '+' {
			oldBefore[i+1]++
		}
		if op.kind != '-' {
			newBefore[i+1]++
		}
	}

	var hunks []string
	i := 0
	for i < len(ops) {
		if ops[i].kind == ' ' {
			i++
			continue
		}

		start := max(0, i-contextLines)
		last := i
		for j := i + 1; j < len(ops) && j <= last+2*contextLines; j++ {
			if ops[j].kind != ' ' {
				last = j
			}
		}
		end := min(len(ops), last+contextLines+1)

		hunks = append(hunks, formatHunk(ops[start:end], oldBefore[start], newBefore[start]))
		i = end
	}
	return hunks
}

func formatHunk(ops []lineOp, oldBefore, newBefore int) string {
	var oldCount, newCount int
	var body strings.Builder
	for _, op := range ops {
		if op.kind != '+' {
			oldCount++
		}
		if op.kind != '-' {
			newCount++
		}
		body.WriteByte(op.kind)
		body.WriteString(op.text)
		body.WriteByte('\n')
	}

	return fmt.Sprintf("@@ -%s +%s @@\n%s", hunkRange(oldBefore, oldCount), hunkRange(newBefore, newCount), body.String())
}

// hunkRange follows git: an empty side starts at the line before.
func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}
