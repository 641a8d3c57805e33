package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// hlString flattens a row's highlight classes into one letter per
// rendered byte, readable in test failures.
func hlString(r *Row) string {
	letters := map[Highlight]byte{
		HighlightNormal:       'n',
		HighlightComment:      'c',
		HighlightBlockComment: 'b',
		HighlightFunction:     'f',
		HighlightKeyword1:     'k',
		HighlightKeyword2:     't',
		HighlightString:       's',
		HighlightNumber:       'd',
		HighlightMatch:        'm',
	}
	out := make([]byte, len(r.hl))
	for i, h := range r.hl {
		out[i] = letters[h]
	}
	return string(out)
}

func newCDocument(lines ...string) *Document {
	d := NewDocument(4)
	d.SetFilename("test.c")
	bs := make([][]byte, len(lines))
	for i, l := range lines {
		bs[i] = []byte(l)
	}
	d.Load(bs)
	return d
}

func TestHighlightRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "keyword needs a word boundary",
			line: "int x; intx",
			want: "tttnnnnnnnn",
		},
		{
			name: "keyword at end of row",
			line: "return",
			want: "kkkkkk",
		},
		{
			name: "keyword after separator",
			line: "x=if",
			want: "nnkk",
		},
		{
			name: "numbers after separators only",
			line: "42 3.14 a1",
			want: "ddnddddnnn",
		},
		{
			name: "hex prefix",
			line: "0x12",
			want: "dddd",
		},
		{
			name: "double quoted string with escape",
			line: `x = "a\"b";`,
			want: "nnnnssssssn",
		},
		{
			name: "single quoted string",
			line: "c = 'q';",
			want: "nnnnsssn",
		},
		{
			name: "line comment swallows the rest",
			line: `int x // "no string" 42`,
			want: "tttnnnccccccccccccccccc",
		},
		{
			name: "block comment within one row",
			line: "a /* c */ b",
			want: "nnbbbbbbbnn",
		},
		{
			name: "comment opener inside a string",
			line: `"/*" x`,
			want: "ssssnn",
		},
		{
			name: "function call marker",
			line: "foo(1)",
			want: "fffndn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newCDocument(tt.line)
			if diff := cmp.Diff(tt.want, hlString(d.Row(0))); diff != "" {
				t.Errorf("highlight mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHighlightCoversAllRowsOnLoad(t *testing.T) {
	d := newCDocument("int a;", "int b;", "int c;")

	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i)
		if len(row.Highlights()) != len(row.Render()) {
			t.Errorf("row %d: len(hl) = %d, want %d", i, len(row.Highlights()), len(row.Render()))
		}
	}
	if got := hlString(d.Row(2)); got != "tttnnn" {
		t.Errorf("last row = %q, want keyword int", got)
	}
}

func TestHighlightCoversAllRowsOnSetFilename(t *testing.T) {
	d := newTestDocument(4, "int a;", "/* x", "y */", "int b;")

	d.SetFilename("late.c")
	for i := 0; i < d.NumRows(); i++ {
		row := d.Row(i)
		if len(row.Highlights()) != len(row.Render()) {
			t.Errorf("row %d: len(hl) = %d, want %d", i, len(row.Highlights()), len(row.Render()))
		}
	}
	if !d.Row(1).OpenComment() {
		t.Error("open comment state not derived for row 1")
	}
	if got := hlString(d.Row(3)); got != "tttnnn" {
		t.Errorf("last row = %q, want keyword int", got)
	}
}

func TestHighlightOpenCommentPropagates(t *testing.T) {
	d := newCDocument("int a;", "/* open", "still", "closed */", "int b;")

	wantOpen := []bool{false, true, true, false, false}
	for i, want := range wantOpen {
		if got := d.Row(i).OpenComment(); got != want {
			t.Errorf("row %d OpenComment = %v, want %v", i, got, want)
		}
	}
	if got := hlString(d.Row(2)); got != "bbbbb" {
		t.Errorf("row 2 inside comment = %q, want all block comment", got)
	}
	if got := hlString(d.Row(4)); got != "tttnnn" {
		t.Errorf("row 4 after comment = %q, want keyword int", got)
	}
}

func TestHighlightCascadeOnEdit(t *testing.T) {
	d := newCDocument("x;", "int y;", "int z;")

	// opening a block comment on the first row swallows the rest
	_ = d.InsertChar(0, 0, '*')
	_ = d.InsertChar(0, 0, '/')
	for i := 0; i < 3; i++ {
		if !d.Row(i).OpenComment() {
			t.Errorf("row %d not inside comment after opening /*", i)
		}
	}
	if got := hlString(d.Row(1)); got != "bbbbbb" {
		t.Errorf("row 1 = %q, want all block comment", got)
	}

	// deleting the opener restores everything below
	_ = d.DeleteChar(0, 0)
	_ = d.DeleteChar(0, 0)
	for i := 0; i < 3; i++ {
		if d.Row(i).OpenComment() {
			t.Errorf("row %d still inside comment after removing /*", i)
		}
	}
	if got := hlString(d.Row(1)); got != "tttnnn" {
		t.Errorf("row 1 = %q, want keyword int", got)
	}
}

func TestHighlightRecomputeIdempotent(t *testing.T) {
	d := newCDocument("int x = 42; /* open", "\"str\" */ return 1;")

	first := make([][]Highlight, d.NumRows())
	for i := range first {
		first[i] = append([]Highlight(nil), d.Row(i).hl...)
	}

	d.updateHighlight(0)
	for i := range first {
		if diff := cmp.Diff(first[i], d.Row(i).hl); diff != "" {
			t.Errorf("row %d changed on recompute (-want +got):\n%s", i, diff)
		}
	}
}

func TestHighlightNoProfile(t *testing.T) {
	d := newTestDocument(4, "int x = 42;")

	want := make([]Highlight, len(d.Row(0).Render()))
	if diff := cmp.Diff(want, d.Row(0).hl); diff != "" {
		t.Errorf("unprofiled row not all normal (-want +got):\n%s", diff)
	}
}

// Each feature flag gates exactly the rule it names, independent of the
// others.
func TestHighlightFeatureFlags(t *testing.T) {
	base := Syntax{
		Name:              "test",
		Keywords:          []Keyword{{"if", HighlightKeyword1}},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
	}

	t.Run("numbers off strings on", func(t *testing.T) {
		s := base
		s.Strings = true
		r := newRow(0, []byte(`42 "x"`))
		r.update(4)
		s.highlightRow(r, false)
		if got := hlString(r); got != "nnnsss" {
			t.Errorf("hl = %q, want %q", got, "nnnsss")
		}
	})

	t.Run("strings off numbers on", func(t *testing.T) {
		s := base
		s.Numbers = true
		r := newRow(0, []byte(`42 "x"`))
		r.update(4)
		s.highlightRow(r, false)
		if got := hlString(r); got != "ddnnnn" {
			t.Errorf("hl = %q, want %q", got, "ddnnnn")
		}
	})

	t.Run("functions off", func(t *testing.T) {
		s := base
		r := newRow(0, []byte("foo()"))
		r.update(4)
		s.highlightRow(r, false)
		if got := hlString(r); got != "nnnnn" {
			t.Errorf("hl = %q, want %q", got, "nnnnn")
		}
	})
}

func TestMatchProfile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.c", "c"},
		{"header.h", "c"},
		{"widget.cpp", "c"},
		{"main.go", "go"},
		{"README.md", ""},
		{"", ""},
	}

	for _, tt := range tests {
		got := ""
		if s := matchProfile(tt.filename); s != nil {
			got = s.Name
		}
		if got != tt.want {
			t.Errorf("matchProfile(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
