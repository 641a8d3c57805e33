package editor

type (
	// Row is one line of the document. chars holds the raw bytes, render
	// the tab-expanded form that gets drawn and searched, hl one highlight
	// class per rendered byte.
	Row struct {
		idx         int
		chars       []byte
		render      []byte
		hl          []Highlight
		openComment bool
	}
)

func newRow(idx int, content []byte) *Row {
	r := &Row{idx: idx}
	r.chars = append(r.chars, content...)
	return r
}

// update rebuilds the rendered form, replacing each tab with spaces up to
// the next tab stop boundary (never fewer than one space).
func (r *Row) update(tabStop int) {
	if tabStop < 1 {
		tabStop = 1
	}

	tabs := 0
	for _, c := range r.chars {
		if c == '\t' {
			tabs++
		}
	}

	render := make([]byte, 0, len(r.chars)+tabs*(tabStop-1))
	for _, c := range r.chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%tabStop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	r.render = render
}

// CxToRx converts a logical column into the visual column of the rendered
// row. Out of range columns clamp.
func (r *Row) CxToRx(cx, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	if cx < 0 {
		cx = 0
	}
	if cx > len(r.chars) {
		cx = len(r.chars)
	}

	rx := 0
	for j := 0; j < cx; j++ {
		if r.chars[j] == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// RxToCx is the inverse scan: the first logical column whose cumulative
// visual width exceeds rx. Returns len(chars) when rx is past the row end.
func (r *Row) RxToCx(rx, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	if rx < 0 {
		return 0
	}

	curRx := 0
	for cx := 0; cx < len(r.chars); cx++ {
		if r.chars[cx] == '\t' {
			curRx += (tabStop - 1) - (curRx % tabStop)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return len(r.chars)
}

// Chars returns the raw content. The slice is borrowed, valid until the
// next mutation of the row.
func (r *Row) Chars() []byte {
	return r.chars
}

// Render returns the tab-expanded content. Borrowed like Chars.
func (r *Row) Render() []byte {
	return r.render
}

// Highlights returns one class per rendered byte. Borrowed like Chars.
func (r *Row) Highlights() []Highlight {
	return r.hl
}

// OpenComment reports whether the row ends inside an unterminated block
// comment. Consumed by the next row's highlight recompute.
func (r *Row) OpenComment() bool {
	return r.openComment
}

func (r *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = c
}

func (r *Row) deleteChar(at int) {
	r.chars = append(r.chars[:at], r.chars[at+1:]...)
}

func (r *Row) appendBytes(content []byte) {
	r.chars = append(r.chars, content...)
}
