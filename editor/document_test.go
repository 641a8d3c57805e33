package editor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestDocument(tabStop int, lines ...string) *Document {
	d := NewDocument(tabStop)
	bs := make([][]byte, len(lines))
	for i, l := range lines {
		bs[i] = []byte(l)
	}
	d.Load(bs)
	return d
}

func rowContents(d *Document) []string {
	out := make([]string, d.NumRows())
	for i := range out {
		out[i] = string(d.Row(i).Chars())
	}
	return out
}

func TestInsertRow(t *testing.T) {
	d := newTestDocument(4, "a", "c")

	if err := d.InsertRow(1, []byte("b")); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, rowContents(d)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	for i := 0; i < d.NumRows(); i++ {
		if d.Row(i).idx != i {
			t.Errorf("row %d has idx %d", i, d.Row(i).idx)
		}
	}
	if d.Dirty() != 1 {
		t.Errorf("dirty = %d, want 1", d.Dirty())
	}

	if err := d.InsertRow(-1, nil); !errors.Is(err, ErrIndex) {
		t.Errorf("InsertRow(-1) = %v, want ErrIndex", err)
	}
	if err := d.InsertRow(4, nil); !errors.Is(err, ErrIndex) {
		t.Errorf("InsertRow(4) = %v, want ErrIndex", err)
	}
	if d.Dirty() != 1 {
		t.Errorf("rejected insert changed dirty to %d", d.Dirty())
	}
}

func TestDeleteRow(t *testing.T) {
	d := newTestDocument(4, "a", "b", "c")

	if err := d.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, rowContents(d)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if d.Row(1).idx != 1 {
		t.Errorf("row 1 has idx %d after delete", d.Row(1).idx)
	}

	if err := d.DeleteRow(2); !errors.Is(err, ErrIndex) {
		t.Errorf("DeleteRow(2) = %v, want ErrIndex", err)
	}
}

func TestInsertDeleteChar(t *testing.T) {
	d := newTestDocument(4, "ac")

	if err := d.InsertChar(0, 1, 'b'); err != nil {
		t.Fatalf("InsertChar: %v", err)
	}
	if got := string(d.Row(0).Chars()); got != "abc" {
		t.Errorf("chars = %q, want %q", got, "abc")
	}
	// out of range column clamps to the end
	if err := d.InsertChar(0, 99, 'd'); err != nil {
		t.Fatalf("InsertChar clamp: %v", err)
	}
	if got := string(d.Row(0).Chars()); got != "abcd" {
		t.Errorf("chars = %q, want %q", got, "abcd")
	}

	if err := d.DeleteChar(0, 1); err != nil {
		t.Fatalf("DeleteChar: %v", err)
	}
	if got := string(d.Row(0).Chars()); got != "acd" {
		t.Errorf("chars = %q, want %q", got, "acd")
	}
	if err := d.DeleteChar(0, 3); !errors.Is(err, ErrIndex) {
		t.Errorf("DeleteChar(0,3) = %v, want ErrIndex", err)
	}
	if err := d.DeleteChar(5, 0); !errors.Is(err, ErrIndex) {
		t.Errorf("DeleteChar(5,0) = %v, want ErrIndex", err)
	}
}

func TestSplitAndMergeRow(t *testing.T) {
	d := newTestDocument(4, "hello")

	if err := d.SplitRow(0, 2); err != nil {
		t.Fatalf("SplitRow: %v", err)
	}
	if diff := cmp.Diff([]string{"he", "llo"}, rowContents(d)); diff != "" {
		t.Errorf("rows after split (-want +got):\n%s", diff)
	}
	if d.Dirty() != 1 {
		t.Errorf("dirty after split = %d, want 1", d.Dirty())
	}

	// merge back the way backspace at column zero does
	if err := d.AppendRow(0, d.Row(1).Chars()); err != nil {
		t.Fatalf("AppendRow: %v", err)
	}
	if err := d.DeleteRow(1); err != nil {
		t.Fatalf("DeleteRow: %v", err)
	}
	if diff := cmp.Diff([]string{"hello"}, rowContents(d)); diff != "" {
		t.Errorf("rows after merge (-want +got):\n%s", diff)
	}
}

func TestSplitRowColumnClamps(t *testing.T) {
	d := newTestDocument(4, "ab")

	if err := d.SplitRow(0, 99); err != nil {
		t.Fatalf("SplitRow: %v", err)
	}
	if diff := cmp.Diff([]string{"ab", ""}, rowContents(d)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestContents(t *testing.T) {
	d := newTestDocument(4, "a", "", "b")

	if got := string(d.Contents()); got != "a\n\nb\n" {
		t.Errorf("Contents = %q, want %q", got, "a\n\nb\n")
	}
}

func TestLoadResetsDirty(t *testing.T) {
	d := newTestDocument(4, "a")
	_ = d.InsertChar(0, 0, 'x')
	if d.Dirty() == 0 {
		t.Fatal("edit did not bump dirty")
	}

	d.Load([][]byte{[]byte("fresh")})
	if d.Dirty() != 0 {
		t.Errorf("dirty after load = %d, want 0", d.Dirty())
	}
	if diff := cmp.Diff([]string{"fresh"}, rowContents(d)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d := NewDocument(4)
	if err := d.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, rowContents(d)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if d.Dirty() != 0 {
		t.Errorf("dirty after open = %d, want 0", d.Dirty())
	}

	_ = d.InsertChar(0, 3, '!')
	n, err := d.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != len("one!\ntwo\n") {
		t.Errorf("Save wrote %d bytes, want %d", n, len("one!\ntwo\n"))
	}
	if d.Dirty() != 0 {
		t.Errorf("dirty after save = %d, want 0", d.Dirty())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "one!\ntwo\n" {
		t.Errorf("file content = %q, want %q", got, "one!\ntwo\n")
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	d := newTestDocument(4, "a")
	d.filename = filepath.Join(t.TempDir(), "missing", "test.txt")
	_ = d.InsertChar(0, 0, 'x')
	before := d.Dirty()

	if _, err := d.Save(); err == nil {
		t.Fatal("Save into a missing directory succeeded")
	}
	if d.Dirty() != before {
		t.Errorf("dirty after failed save = %d, want %d", d.Dirty(), before)
	}
}

func TestSetFilenameSelectsProfile(t *testing.T) {
	d := newTestDocument(4, "int x;")
	if d.Syntax() != nil {
		t.Fatal("nameless document has a syntax profile")
	}

	d.SetFilename("main.c")
	if d.Syntax() == nil || d.Syntax().Name != "c" {
		t.Fatalf("profile = %v, want c", d.Syntax())
	}
	if d.Row(0).Highlights()[0] != HighlightKeyword2 {
		t.Error("highlighting was not recomputed after SetFilename")
	}
}
