package editor

import "bytes"

type (
	// SearchKey is the navigation input driving one probe step.
	SearchKey uint8

	// SearchResult reports the match of one probe step. Col is the
	// logical column of the match start.
	SearchResult struct {
		Found bool
		Row   int
		Col   int
	}

	// Search is one incremental search session over a document. It owns a
	// saved copy of at most one row's highlight slice so the transient
	// match overlay can always be undone.
	Search struct {
		doc       *Document
		fromRow   int
		lastMatch int
		direction int
		savedRow  int
		savedHl   []Highlight
	}
)

const (
	SearchKeyOther SearchKey = iota
	SearchKeyNext
	SearchKeyPrev
	SearchKeyConfirm
	SearchKeyCancel
)

// NewSearch starts a search session anchored at the given cursor row.
func NewSearch(doc *Document, fromRow int) *Search {
	return &Search{
		doc:       doc,
		fromRow:   fromRow,
		lastMatch: -1,
		direction: 1,
		savedRow:  -1,
	}
}

// Step runs one probe of the session: it restores any pending overlay,
// derives the direction from the key, scans at most once around the
// document for the query and overlays the match. Confirm and cancel end
// the session, leaving every highlight array at its pre-search value.
func (s *Search) Step(query string, key SearchKey) SearchResult {
	s.restore()

	switch key {
	case SearchKeyConfirm, SearchKeyCancel:
		s.lastMatch = -1
		s.direction = 1
		return SearchResult{}
	case SearchKeyNext:
		s.direction = 1
	case SearchKeyPrev:
		s.direction = -1
	default:
		// the query changed, drop the anchor
		s.lastMatch = -1
		s.direction = 1
	}

	if query == "" || s.doc.NumRows() == 0 {
		return SearchResult{}
	}
	if s.lastMatch == -1 {
		s.direction = 1
	}

	current := s.lastMatch
	if current == -1 {
		// no anchor yet: start the scan on the cursor row itself
		current = s.fromRow - s.direction
	}

	q := []byte(query)
	for i := 0; i < s.doc.NumRows(); i++ {
		current += s.direction
		if current < 0 {
			current = s.doc.NumRows() - 1
		} else if current >= s.doc.NumRows() {
			current = 0
		}

		row := s.doc.Row(current)
		rx := bytes.Index(row.render, q)
		if rx < 0 {
			continue
		}

		s.lastMatch = current
		s.savedRow = current
		s.savedHl = make([]Highlight, len(row.hl))
		copy(s.savedHl, row.hl)
		for j := rx; j < rx+len(q) && j < len(row.hl); j++ {
			row.hl[j] = HighlightMatch
		}

		return SearchResult{
			Found: true,
			Row:   current,
			Col:   row.RxToCx(rx, s.doc.TabStop()),
		}
	}

	return SearchResult{}
}

// restore puts the saved highlight slice back on the row it was taken
// from and discards the copy.
func (s *Search) restore() {
	if s.savedHl == nil {
		return
	}
	row := s.doc.Row(s.savedRow)
	if row != nil && len(row.hl) == len(s.savedHl) {
		copy(row.hl, s.savedHl)
	}
	s.savedRow = -1
	s.savedHl = nil
}
