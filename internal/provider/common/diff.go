package common

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/johanforsgren/lgtmthreads/internal/domain"
)

var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

type diffParser struct {
	files   []domain.FileDiff
	file    *domain.FileDiff
	hunk    *domain.DiffHunk
	oldLine int
	newLine int
}

// ParseUnifiedDiff parses git's unified diff output. Hunk headers are kept
// verbatim since comment anchors are keyed on them.
func ParseUnifiedDiff(diffText string) *domain.Diff {
	p := &diffParser{files: []domain.FileDiff{}}
	for _, line := range strings.Split(diffText, "\n") {
		p.parseLine(line)
	}
	p.flushFile()
	return &domain.Diff{Files: p.files}
}

func (p *diffParser) parseLine(line string) {
	switch {
	case strings.HasPrefix(line, "diff --git"):
		p.flushFile()
		p.file = &domain.FileDiff{Hunks: []domain.DiffHunk{}}
	case p.file == nil:
		return
	case p.hunk == nil && strings.HasPrefix(line, "--- "):
		path := strings.TrimPrefix(line, "--- ")
		if path == "/dev/null" {
			p.file.IsNew = true
		} else {
			p.file.OldPath = strings.TrimPrefix(path, "a/")
		}
	case p.hunk == nil && strings.HasPrefix(line, "+++ "):
		path := strings.TrimPrefix(line, "+++ ")
		if path == "/dev/null" {
			p.file.IsDeleted = true
		} else {
			p.file.NewPath = strings.TrimPrefix(path, "b/")
		}
	case p.hunk == nil && strings.HasPrefix(line, "rename from "):
		p.file.IsRenamed = true
		p.file.OldPath = strings.TrimPrefix(line, "rename from ")
	case p.hunk == nil && strings.HasPrefix(line, "rename to "):
		p.file.IsRenamed = true
		p.file.NewPath = strings.TrimPrefix(line, "rename to ")
	case strings.HasPrefix(line, "@@"):
		p.flushHunk()
		p.hunk = &domain.DiffHunk{Header: line, Lines: []domain.DiffLine{}}
		if matches := hunkHeaderRegex.FindStringSubmatch(line); len(matches) >= 3 {
			p.oldLine, _ = strconv.Atoi(matches[1])
			p.newLine, _ = strconv.Atoi(matches[2])
		}
	case p.hunk != nil:
		p.parseHunkLine(line)
	}
}

func (p *diffParser) parseHunkLine(line string) {
	diffLine := domain.DiffLine{Content: line}
	switch {
	case line == "" || strings.HasPrefix(line, `\`):
		// trailing newline or "\ No newline at end of file"
		return
	case strings.HasPrefix(line, "+"):
		diffLine.Type = domain.DiffLineAdd
		diffLine.NewLine = p.newLine
		p.newLine++
	case strings.HasPrefix(line, "-"):
		diffLine.Type = domain.DiffLineDelete
		diffLine.OldLine = p.oldLine
		p.oldLine++
	default:
		diffLine.Type = domain.DiffLineContext
		diffLine.OldLine = p.oldLine
		diffLine.NewLine = p.newLine
		p.oldLine++
		p.newLine++
	}
	p.hunk.Lines = append(p.hunk.Lines, diffLine)
}

func (p *diffParser) flushHunk() {
	if p.file != nil && p.hunk != nil {
		p.file.Hunks = append(p.file.Hunks, *p.hunk)
	}
	p.hunk = nil
}

func (p *diffParser) flushFile() {
	p.flushHunk()
	if p.file != nil {
		if p.file.OldPath != "" && p.file.NewPath != "" && p.file.OldPath != p.file.NewPath {
			p.file.IsRenamed = true
		}
		p.files = append(p.files, *p.file)
	}
	p.file = nil
}
