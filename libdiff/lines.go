package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Delete
	Insert
)

func (o Op) Prefix() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	default:
		return " "
	}
}

// Line is one line of a line diff.
type Line struct {
	Op   Op
	Text string
}

// LineDiff is a line diff, in order.
type LineDiff []Line

// Changed reports whether any line was inserted or deleted.
func (d LineDiff) Changed() bool {
	for i := range d {
		if d[i].Op != Equal {
			return true
		}
	}
	return false
}

func (d LineDiff) String() string {
	var b strings.Builder
	for i := range d {
		b.WriteString(d[i].Op.Prefix())
		b.WriteString(d[i].Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Lines computes the line diff transforming from into to.
func Lines(from, to string) LineDiff {
	diffCfg := diffpatch.New()
	a, b, lines := diffCfg.DiffLinesToChars(from, to)
	diffs := diffCfg.DiffMain(a, b, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	var res LineDiff
	for i := range diffs {
		diff := &diffs[i]
		op := Equal
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
