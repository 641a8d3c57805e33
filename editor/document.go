package editor

import (
	"errors"

	"kyte/storage"
)

// ErrIndex reports a row or column operation with an out of range
// position. The operation is rejected, the document is untouched.
var ErrIndex = errors.New("editor: index out of range")

type (
	// Document owns the ordered rows of one open file plus the edit
	// counter and the active syntax profile. All views handed out by its
	// rows are borrowed and valid only until the next mutation.
	Document struct {
		rows     []*Row
		dirty    int
		filename string
		syntax   *Syntax
		tabStop  int
	}
)

func NewDocument(tabStop int) *Document {
	if tabStop < 1 {
		tabStop = 1
	}
	return &Document{tabStop: tabStop}
}

func (d *Document) NumRows() int {
	return len(d.rows)
}

// Row returns the row at position at, nil when out of range.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return d.rows[at]
}

// Dirty returns the edit counter since the last successful save or load.
func (d *Document) Dirty() int {
	return d.dirty
}

func (d *Document) Filename() string {
	return d.filename
}

func (d *Document) TabStop() int {
	return d.tabStop
}

// Syntax returns the active profile, nil when no profile matched.
func (d *Document) Syntax() *Syntax {
	return d.syntax
}

// SetFilename records the file name and reselects the syntax profile,
// recomputing the whole document's highlighting.
func (d *Document) SetFilename(name string) {
	d.filename = name
	d.syntax = matchProfile(name)
	d.recomputeAll()
}

// InsertRow inserts a new row at position at, shifting the indices of all
// following rows up by one.
func (d *Document) InsertRow(at int, content []byte) error {
	if at < 0 || at > len(d.rows) {
		return ErrIndex
	}

	row := newRow(at, content)
	d.rows = append(d.rows, nil)
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
	for j := at + 1; j < len(d.rows); j++ {
		d.rows[j].idx = j
	}

	row.update(d.tabStop)
	d.updateHighlight(at)
	d.dirty++
	return nil
}

// DeleteRow removes the row at position at, shifting following indices
// down by one.
func (d *Document) DeleteRow(at int) error {
	if at < 0 || at >= len(d.rows) {
		return ErrIndex
	}

	d.rows = append(d.rows[:at], d.rows[at+1:]...)
	for j := at; j < len(d.rows); j++ {
		d.rows[j].idx = j
	}

	// the deleted row may have carried an open comment into its successor
	if at < len(d.rows) {
		d.updateHighlight(at)
	}
	d.dirty++
	return nil
}

// InsertChar inserts c at the logical column col of the given row. Out of
// range columns clamp to the end of the row.
func (d *Document) InsertChar(row, col int, c byte) error {
	r := d.Row(row)
	if r == nil {
		return ErrIndex
	}
	r.insertChar(col, c)
	d.updateRow(r)
	d.dirty++
	return nil
}

// DeleteChar removes the byte at the logical column col of the given row.
func (d *Document) DeleteChar(row, col int) error {
	r := d.Row(row)
	if r == nil || col < 0 || col >= len(r.chars) {
		return ErrIndex
	}
	r.deleteChar(col)
	d.updateRow(r)
	d.dirty++
	return nil
}

// AppendRow concatenates content onto the row at position at. Used when a
// deleted row is merged into its predecessor.
func (d *Document) AppendRow(at int, content []byte) error {
	r := d.Row(at)
	if r == nil {
		return ErrIndex
	}
	r.appendBytes(content)
	d.updateRow(r)
	d.dirty++
	return nil
}

// SplitRow truncates the row at col and inserts a new row holding the
// remainder. Used for newline insertion.
func (d *Document) SplitRow(row, col int) error {
	r := d.Row(row)
	if r == nil {
		return ErrIndex
	}
	if col < 0 {
		col = 0
	}
	if col > len(r.chars) {
		col = len(r.chars)
	}

	rest := make([]byte, len(r.chars)-col)
	copy(rest, r.chars[col:])
	if err := d.InsertRow(row+1, rest); err != nil {
		return err
	}
	r.chars = r.chars[:col]
	d.updateRow(r)
	return nil
}

// Contents returns the rows joined by a newline, one trailing newline per
// row, the exact form persisted on save.
func (d *Document) Contents() []byte {
	n := 0
	for _, r := range d.rows {
		n += len(r.chars) + 1
	}

	buf := make([]byte, 0, n)
	for _, r := range d.rows {
		buf = append(buf, r.chars...)
		buf = append(buf, '\n')
	}
	return buf
}

// Load replaces the document with one row per input line and resets the
// edit counter.
func (d *Document) Load(lines [][]byte) {
	d.rows = d.rows[:0]
	for i, line := range lines {
		row := newRow(i, line)
		row.update(d.tabStop)
		d.rows = append(d.rows, row)
	}
	d.recomputeAll()
	d.dirty = 0
}

// Open reads the file at path into the document. The file name sticks for
// later saves and selects the syntax profile.
func (d *Document) Open(path string) error {
	lines, err := storage.ReadLines(path)
	if err != nil {
		return err
	}
	d.filename = path
	d.syntax = matchProfile(path)
	d.Load(lines)
	return nil
}

// Save writes the document to its file name atomically and returns the
// number of bytes written. On failure the in-memory state, including the
// edit counter, is untouched.
func (d *Document) Save() (int, error) {
	buf := d.Contents()
	n, err := storage.WriteAtomic(d.filename, buf)
	if err != nil {
		return n, err
	}
	d.dirty = 0
	return n, nil
}

// updateRow re-derives the rendered text of the row and recomputes
// highlighting from it onward.
func (d *Document) updateRow(r *Row) {
	r.update(d.tabStop)
	d.updateHighlight(r.idx)
}

// updateHighlight recomputes the highlight array of the row at position
// at, then cascades to following rows while the exit comment state keeps
// changing. An explicit loop, bounded by the row count.
func (d *Document) updateHighlight(at int) {
	for ; at < len(d.rows); at++ {
		if !d.highlightOne(at) {
			break
		}
	}
}

// recomputeAll rehighlights every row in order, unconditionally. Load
// and profile changes need this: the edit cascade's early exit would
// leave rows below an unchanged one stale.
func (d *Document) recomputeAll() {
	for at := range d.rows {
		d.highlightOne(at)
	}
}

// highlightOne recomputes one row, seeding the scan from its
// predecessor, and reports whether the row's exit comment state changed.
func (d *Document) highlightOne(at int) bool {
	row := d.rows[at]

	if d.syntax == nil {
		row.hl = make([]Highlight, len(row.render))
		row.openComment = false
		return false
	}

	inComment := at > 0 && d.rows[at-1].openComment
	open := d.syntax.highlightRow(row, inComment)
	changed := row.openComment != open
	row.openComment = open
	return changed
}
