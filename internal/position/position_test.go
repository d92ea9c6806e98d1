package position

import "testing"

func pos(filename string, line, column, offset int) Position {
	return Position{Filename: filename, Line: line, Column: column, Offset: offset}
}

// TestSpanUnion tests merging spans into a covering range.
func TestSpanUnion(t *testing.T) {
	a := Span{Start: pos("f.nt", 1, 1, 0), End: pos("f.nt", 1, 4, 3)}
	b := Span{Start: pos("f.nt", 1, 8, 7), End: pos("f.nt", 2, 3, 12)}

	got := a.Union(b)
	if got.Start != a.Start || got.End != b.End {
		t.Errorf("Union = %s, want covering span", got)
	}

	// Union is symmetric.
	if rev := b.Union(a); rev != got {
		t.Errorf("Union not symmetric: %s vs %s", rev, got)
	}

	// An invalid span contributes nothing.
	if withInvalid := a.Union(Span{}); withInvalid != a {
		t.Errorf("Union with invalid span = %s, want %s", withInvalid, a)
	}
}

// TestSpanString tests the compact formatting for one-line and multi-line
// spans.
func TestSpanString(t *testing.T) {
	oneLine := Span{Start: pos("dir/f.nt", 1, 2, 1), End: pos("dir/f.nt", 1, 5, 4)}
	if got := oneLine.String(); got != "f.nt:1:2-5" {
		t.Errorf("String() = %q, want f.nt:1:2-5", got)
	}

	multiLine := Span{Start: pos("f.nt", 1, 2, 1), End: pos("f.nt", 3, 4, 20)}
	if got := multiLine.String(); got != "f.nt:1:2-3:4" {
		t.Errorf("String() = %q, want f.nt:1:2-3:4", got)
	}
}

// TestSourceFileGetLine tests 1-based line access with out-of-range
// requests yielding an empty string.
func TestSourceFileGetLine(t *testing.T) {
	sf := NewSourceFile("f.nt", "type A = 1\ntype B = 2")

	if got := sf.GetLine(2); got != "type B = 2" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := sf.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := sf.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q, want empty", got)
	}
}
