package editor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rivo/uniseg"

	"kyte/clipboard"
)

const version = "0.1.0"

// quitConfirmTimes is how often Ctrl-Q must be pressed to discard a
// dirty document.
const quitConfirmTimes = 3

type (
	keymapper interface {
		Get(keys []string, group string) (string, bool)
	}

	Editor struct {
		*tview.Box
		keymapper keymapper

		doc  *Document
		mode mode

		cursor  [2]int // row, logical column
		offsets [2]int // row offset, visual column offset

		pending      []string
		actionRunner map[Action]func()

		searchSession *Search
		searchQuery   string
		savedCursor   [2]int
		savedOffsets  [2]int

		register string // yanked text, fallback when no system clipboard

		quitTimes   int
		lastHeight  int
		lineNumbers bool
		numberLen   int

		statusFunc func(format string, args ...any)
		exitFunc   func()
		saveAsFunc func()
	}
)

func New(doc *Document, opts ...func(*Editor)) *Editor {
	e := &Editor{
		Box:        tview.NewBox(),
		doc:        doc,
		quitTimes:  quitConfirmTimes,
		lastHeight: 1,
		numberLen:  4,
		statusFunc: func(string, ...any) {},
	}

	e.actionRunner = map[Action]func(){
		ActionMoveLeft:          e.MoveCursorLeft,
		ActionMoveRight:         e.MoveCursorRight,
		ActionMoveUp:            e.MoveCursorUp,
		ActionMoveDown:          e.MoveCursorDown,
		ActionMoveStartOfLine:   func() { e.cursor[1] = 0 },
		ActionMoveEndOfLine:     e.MoveCursorEndOfLine,
		ActionMovePageUp:        e.MoveCursorPageUp,
		ActionMovePageDown:      e.MoveCursorPageDown,
		ActionMoveFirstLine:     func() { e.cursor[0] = 0 },
		ActionMoveLastLine:      e.MoveCursorLastLine,
		ActionInsert:            func() { e.mode = insert },
		ActionInsertStartOfLine: func() { e.cursor[1] = 0; e.mode = insert },
		ActionInsertAfter:       e.InsertAfter,
		ActionInsertEndOfLine:   func() { e.MoveCursorEndOfLine(); e.mode = insert },
		ActionInsertBelow:       e.InsertBelow,
		ActionInsertAbove:       e.InsertAbove,
		ActionDeleteUnderCursor: func() { _ = e.doc.DeleteChar(e.cursor[0], e.cursor[1]); e.clampCursor() },
		ActionDeleteChar:        e.DeleteChar,
		ActionDeleteLine:        e.DeleteLine,
		ActionDeleteLineDown:    e.DeleteLineDown,
		ActionDeleteLineUp:      e.DeleteLineUp,
		ActionDeleteRight:       e.DeleteRight,
		ActionDeleteLeft:        func() { _ = e.doc.DeleteChar(e.cursor[0], e.cursor[1]-1); e.clampCursor() },
		ActionDeleteWord:        e.DeleteWord,
		ActionReplace:           func() { e.mode = replace },
		ActionYankLine:          e.YankLine,
		ActionPaste:             e.Paste,
		ActionIndent:            e.IndentLine,
		ActionOutdent:           e.OutdentLine,
		ActionEnableSearch:      e.EnableSearch,
		ActionSave:              e.Save,
		ActionQuit:              e.Quit,
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the document the editor operates on.
func (e *Editor) Document() *Document {
	return e.doc
}

// Mode returns the current mode name for the status line.
func (e *Editor) Mode() string {
	return e.mode.String()
}

// Filename returns the document's file name, empty for a new buffer.
func (e *Editor) Filename() string {
	return e.doc.Filename()
}

// FileType returns the active syntax profile name, empty when none.
func (e *Editor) FileType() string {
	if s := e.doc.Syntax(); s != nil {
		return s.Name
	}
	return ""
}

func (e *Editor) Dirty() bool {
	return e.doc.Dirty() > 0
}

func (e *Editor) RowCount() int {
	return e.doc.NumRows()
}

// CursorRow returns the zero based cursor row.
func (e *Editor) CursorRow() int {
	return e.cursor[0]
}

// CursorCol returns the visual cursor column, tab expansion applied.
func (e *Editor) CursorCol() int {
	row := e.doc.Row(e.cursor[0])
	if row == nil {
		return 0
	}
	return row.CxToRx(e.cursor[1], e.doc.TabStop())
}

func (e *Editor) currentRow() *Row {
	return e.doc.Row(e.cursor[0])
}

// clampCursor snaps the cursor column back into the current row.
func (e *Editor) clampCursor() {
	if e.cursor[0] < 0 {
		e.cursor[0] = 0
	}
	rowLen := 0
	if row := e.currentRow(); row != nil {
		rowLen = len(row.chars)
	}
	if e.cursor[1] > rowLen {
		e.cursor[1] = rowLen
	}
	if e.cursor[1] < 0 {
		e.cursor[1] = 0
	}
}

func (e *Editor) MoveCursorLeft() {
	if e.cursor[1] > 0 {
		e.cursor[1]--
	} else if e.cursor[0] > 0 {
		e.cursor[0]--
		e.cursor[1] = len(e.currentRow().chars)
	}
}

func (e *Editor) MoveCursorRight() {
	row := e.currentRow()
	if row == nil {
		return
	}
	if e.mode == insert {
		// mirrors MoveCursorLeft: past the row end wraps to the next row
		if e.cursor[1] < len(row.chars) {
			e.cursor[1]++
		} else {
			e.cursor[0]++
			e.cursor[1] = 0
		}
		return
	}
	if e.cursor[1] < len(row.chars)-1 {
		e.cursor[1]++
	}
}

func (e *Editor) MoveCursorUp() {
	if e.cursor[0] > 0 {
		e.cursor[0]--
	}
	e.clampCursor()
}

func (e *Editor) MoveCursorDown() {
	limit := e.doc.NumRows() - 1
	if e.mode == insert {
		limit = e.doc.NumRows()
	}
	if e.cursor[0] < limit {
		e.cursor[0]++
	}
	e.clampCursor()
}

func (e *Editor) MoveCursorEndOfLine() {
	if row := e.currentRow(); row != nil {
		e.cursor[1] = len(row.chars)
	}
}

func (e *Editor) MoveCursorLastLine() {
	if e.doc.NumRows() > 0 {
		e.cursor[0] = e.doc.NumRows() - 1
	}
	e.clampCursor()
}

func (e *Editor) MoveCursorPageUp() {
	e.cursor[0] = e.offsets[0]
	for i := 0; i < e.lastHeight; i++ {
		e.MoveCursorUp()
	}
}

func (e *Editor) MoveCursorPageDown() {
	e.cursor[0] = e.offsets[0] + e.lastHeight - 1
	if e.cursor[0] > e.doc.NumRows()-1 {
		e.cursor[0] = e.doc.NumRows() - 1
	}
	if e.cursor[0] < 0 {
		e.cursor[0] = 0
	}
	for i := 0; i < e.lastHeight; i++ {
		e.MoveCursorDown()
	}
}

func (e *Editor) InsertAfter() {
	if row := e.currentRow(); row != nil && len(row.chars) > 0 {
		e.cursor[1]++
	}
	e.mode = insert
}

func (e *Editor) InsertBelow() {
	_ = e.doc.InsertRow(e.cursor[0]+1, nil)
	e.cursor[0]++
	e.cursor[1] = 0
	e.mode = insert
}

func (e *Editor) InsertAbove() {
	_ = e.doc.InsertRow(e.cursor[0], nil)
	e.cursor[1] = 0
	e.mode = insert
}

// DeleteChar removes the byte left of the cursor, merging the row into
// its predecessor at column zero.
func (e *Editor) DeleteChar() {
	if e.cursor[0] >= e.doc.NumRows() {
		return
	}
	if e.cursor[0] == 0 && e.cursor[1] == 0 {
		return
	}

	row := e.currentRow()
	if e.cursor[1] > 0 {
		_ = e.doc.DeleteChar(e.cursor[0], e.cursor[1]-1)
		e.cursor[1]--
		return
	}

	prev := e.doc.Row(e.cursor[0] - 1)
	e.cursor[1] = len(prev.chars)
	_ = e.doc.AppendRow(e.cursor[0]-1, row.chars)
	_ = e.doc.DeleteRow(e.cursor[0])
	e.cursor[0]--
}

func (e *Editor) DeleteLine() {
	_ = e.doc.DeleteRow(e.cursor[0])
	if e.cursor[0] > e.doc.NumRows()-1 {
		e.cursor[0] = e.doc.NumRows() - 1
	}
	if e.cursor[0] < 0 {
		e.cursor[0] = 0
	}
	e.clampCursor()
}

func (e *Editor) DeleteLineDown() {
	_ = e.doc.DeleteRow(e.cursor[0] + 1)
	e.DeleteLine()
}

func (e *Editor) DeleteLineUp() {
	_ = e.doc.DeleteRow(e.cursor[0])
	_ = e.doc.DeleteRow(e.cursor[0] - 1)
	e.MoveCursorUp()
	if e.cursor[0] > e.doc.NumRows()-1 {
		e.cursor[0] = e.doc.NumRows() - 1
	}
	if e.cursor[0] < 0 {
		e.cursor[0] = 0
	}
	e.clampCursor()
}

func (e *Editor) DeleteRight() {
	_ = e.doc.DeleteChar(e.cursor[0], e.cursor[1]+1)
	e.clampCursor()
}

// DeleteWord removes bytes under the cursor up to the next space or the
// end of the row.
func (e *Editor) DeleteWord() {
	row := e.currentRow()
	if row == nil {
		return
	}
	for e.cursor[1] < len(row.chars) && row.chars[e.cursor[1]] != ' ' {
		_ = e.doc.DeleteChar(e.cursor[0], e.cursor[1])
	}
	e.clampCursor()
}

func (e *Editor) YankLine() {
	row := e.currentRow()
	if row == nil {
		return
	}
	e.register = string(row.chars) + "\n"
	if err := clipboard.Write(e.register); err == nil {
		e.statusFunc("1 line yanked")
	} else {
		e.statusFunc("1 line yanked (internal register)")
	}
}

// Paste inserts the yanked lines below the cursor row.
func (e *Editor) Paste() {
	text, err := clipboard.Read()
	if err != nil || text == "" {
		text = e.register
	}
	if text == "" {
		return
	}

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	at := e.cursor[0] + 1
	if at > e.doc.NumRows() {
		at = e.doc.NumRows()
	}
	for i, line := range lines {
		_ = e.doc.InsertRow(at+i, []byte(line))
	}
	e.cursor[0] = at
	e.clampCursor()
}

func (e *Editor) IndentLine() {
	if e.currentRow() == nil {
		return
	}
	_ = e.doc.InsertChar(e.cursor[0], 0, '\t')
	e.MoveCursorRight()
}

func (e *Editor) OutdentLine() {
	row := e.currentRow()
	if row == nil || len(row.chars) == 0 || row.chars[0] != '\t' {
		return
	}
	_ = e.doc.DeleteChar(e.cursor[0], 0)
	e.clampCursor()
	e.MoveCursorLeft()
}

// EnableSearch opens an incremental search session. The cursor and
// scroll position are restored when the session is cancelled.
func (e *Editor) EnableSearch() {
	e.savedCursor = e.cursor
	e.savedOffsets = e.offsets
	e.searchSession = NewSearch(e.doc, e.cursor[0])
	e.searchQuery = ""
	e.mode = search
	e.statusFunc("/")
}

func (e *Editor) probeSearch(key SearchKey) {
	res := e.searchSession.Step(e.searchQuery, key)
	if res.Found {
		e.cursor[0] = res.Row
		e.cursor[1] = res.Col
	}
	e.statusFunc("/%s", e.searchQuery)
}

func (e *Editor) endSearch(key SearchKey) {
	e.searchSession.Step(e.searchQuery, key)
	if key == SearchKeyCancel {
		e.cursor = e.savedCursor
		e.offsets = e.savedOffsets
	}
	e.searchSession = nil
	e.searchQuery = ""
	e.mode = normal
	e.statusFunc("")
}

// Save writes the document out. Without a file name it defers to the
// save-as prompt, if one was wired in.
func (e *Editor) Save() {
	if e.doc.Filename() == "" {
		if e.saveAsFunc != nil {
			e.saveAsFunc()
		} else {
			e.statusFunc("no file name")
		}
		return
	}

	n, err := e.doc.Save()
	if err != nil {
		e.statusFunc("failed to save %s: %v", e.doc.Filename(), err)
		return
	}
	e.statusFunc("\"%s\" %dL, %dB written", e.doc.Filename(), e.doc.NumRows(), n)
}

// SaveAs records the file name chosen in the prompt and saves.
func (e *Editor) SaveAs(name string) {
	if name == "" {
		e.statusFunc("save aborted")
		return
	}
	e.doc.SetFilename(name)
	e.Save()
}

// Quit ends the session. A dirty document needs quitConfirmTimes
// consecutive presses.
func (e *Editor) Quit() {
	if e.doc.Dirty() > 0 && e.quitTimes > 0 {
		e.statusFunc("no write since last change, press Ctrl-Q %d more times to quit", e.quitTimes)
		e.quitTimes--
		return
	}
	if e.exitFunc != nil {
		e.exitFunc()
	}
}

func (e *Editor) insertRune(r rune) {
	if e.cursor[0] == e.doc.NumRows() {
		_ = e.doc.InsertRow(e.doc.NumRows(), nil)
	}
	for _, b := range []byte(string(r)) {
		_ = e.doc.InsertChar(e.cursor[0], e.cursor[1], b)
		e.cursor[1]++
	}
}

func (e *Editor) insertNewline() {
	if e.cursor[0] == e.doc.NumRows() {
		_ = e.doc.InsertRow(e.doc.NumRows(), nil)
	}
	if e.cursor[1] == 0 {
		_ = e.doc.InsertRow(e.cursor[0], nil)
	} else {
		_ = e.doc.SplitRow(e.cursor[0], e.cursor[1])
	}
	e.cursor[0]++
	e.cursor[1] = 0
}

func (e *Editor) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return e.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch e.mode {
		case search:
			e.handleSearchKey(event)
			return
		case replace:
			e.handleReplaceKey(event)
			return
		case insert:
			e.handleInsertKey(event)
			return
		}

		eventName := event.Name()
		if event.Key() == tcell.KeyRune {
			eventName = string(event.Rune())
		} else {
			eventName = strings.ToLower(eventName)
		}
		e.pending = append(e.pending, eventName)

		actionString, anyStartWith := e.keymapper.Get(e.pending, e.mode.ShortString())
		action := ActionFromString(actionString)

		if f := e.actionRunner[action]; f != nil {
			f()
			e.pending = nil
			if action != ActionQuit {
				e.quitTimes = quitConfirmTimes
			}
			return
		}

		// a longer binding starts with the pending keys, keep waiting
		if anyStartWith {
			return
		}
		e.pending = nil
		e.quitTimes = quitConfirmTimes
	})
}

func (e *Editor) handleInsertKey(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyEsc:
		if e.cursor[1] != 0 {
			e.MoveCursorLeft()
		}
		e.mode = normal
	case tcell.KeyRune:
		e.insertRune(event.Rune())
	case tcell.KeyTab:
		e.insertRune('\t')
	case tcell.KeyEnter:
		e.insertNewline()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.DeleteChar()
	case tcell.KeyDelete:
		e.MoveCursorRight()
		e.DeleteChar()
	case tcell.KeyLeft:
		e.MoveCursorLeft()
	case tcell.KeyRight:
		e.MoveCursorRight()
	case tcell.KeyUp:
		e.MoveCursorUp()
	case tcell.KeyDown:
		e.MoveCursorDown()
	case tcell.KeyCtrlQ:
		e.Quit()
		return
	}
	e.quitTimes = quitConfirmTimes
}

func (e *Editor) handleReplaceKey(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyEsc:
		e.mode = normal
	case tcell.KeyRune:
		row := e.currentRow()
		if row == nil || e.cursor[1] >= len(row.chars) {
			e.mode = normal
			return
		}
		_ = e.doc.DeleteChar(e.cursor[0], e.cursor[1])
		for i, b := range []byte(string(event.Rune())) {
			_ = e.doc.InsertChar(e.cursor[0], e.cursor[1]+i, b)
		}
		e.mode = normal
	}
}

func (e *Editor) handleSearchKey(event *tcell.EventKey) {
	switch event.Key() {
	case tcell.KeyEsc:
		e.endSearch(SearchKeyCancel)
	case tcell.KeyEnter:
		e.endSearch(SearchKeyConfirm)
	case tcell.KeyRight, tcell.KeyDown:
		e.probeSearch(SearchKeyNext)
	case tcell.KeyLeft, tcell.KeyUp:
		e.probeSearch(SearchKeyPrev)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.searchQuery != "" {
			e.searchQuery = e.searchQuery[:len(e.searchQuery)-1]
		}
		e.probeSearch(SearchKeyOther)
	case tcell.KeyRune:
		e.searchQuery += string(event.Rune())
		e.probeSearch(SearchKeyOther)
	}
}

func styleFor(h Highlight) tcell.Style {
	st := tcell.StyleDefault
	switch h {
	case HighlightComment, HighlightBlockComment:
		return st.Foreground(tcell.ColorGray)
	case HighlightFunction:
		return st.Foreground(tcell.ColorGreen)
	case HighlightKeyword1:
		return st.Foreground(tcell.ColorRed)
	case HighlightKeyword2:
		return st.Foreground(tcell.ColorAqua)
	case HighlightString:
		return st.Foreground(tcell.ColorYellow)
	case HighlightNumber:
		return st.Foreground(tcell.ColorFuchsia)
	case HighlightMatch:
		return st.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	}
	return st
}

func (e *Editor) Draw(screen tcell.Screen) {
	e.Box.DrawForSubclass(screen, e)

	x, y, w, h := e.GetInnerRect()
	if w < 1 || h < 1 {
		return
	}
	e.lastHeight = h

	e.clampCursor()

	gutter := 0
	if e.lineNumbers {
		gutter = e.numberLen + 2
		if gutter > w-1 {
			gutter = 0
		}
	}
	textW := w - gutter

	cursorRx := 0
	if row := e.currentRow(); row != nil {
		cursorRx = row.CxToRx(e.cursor[1], e.doc.TabStop())
	}

	// vertical scroll follows cursor
	if e.cursor[0] < e.offsets[0] {
		e.offsets[0] = e.cursor[0]
	}
	if e.cursor[0] >= e.offsets[0]+h {
		e.offsets[0] = e.cursor[0] - h + 1
	}
	// horizontal scroll in visual columns
	if cursorRx < e.offsets[1] {
		e.offsets[1] = cursorRx
	}
	if cursorRx >= e.offsets[1]+textW {
		e.offsets[1] = cursorRx - textW + 1
	}

	numberStyle := tcell.StyleDefault.Foreground(tcell.ColorSlateGray)
	fillerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	for i := 0; i < h; i++ {
		filerow := e.offsets[0] + i

		if filerow >= e.doc.NumRows() {
			screen.SetContent(x, y+i, '~', nil, fillerStyle)
			if e.doc.NumRows() == 0 && i == h/3 {
				welcome := fmt.Sprintf("kyte editor -- version %s", version)
				if len(welcome) > textW {
					welcome = welcome[:textW]
				}
				pad := (textW - len(welcome)) / 2
				tview.Print(screen, welcome, x+gutter+pad, y+i, textW, tview.AlignLeft, tcell.ColorGray)
			}
			continue
		}

		if gutter > 0 {
			num := fmt.Sprintf(" %*d ", e.numberLen, filerow+1)
			st := numberStyle
			if filerow == e.cursor[0] {
				st = tcell.StyleDefault.Foreground(tcell.ColorOrange)
			}
			col := x
			for _, r := range num {
				if col >= x+gutter {
					break
				}
				screen.SetContent(col, y+i, r, nil, st)
				col++
			}
		}

		row := e.doc.Row(filerow)
		e.drawRow(screen, row, x+gutter, y+i, textW)
	}

	if e.mode != search {
		cursorStyle := tcell.CursorStyleSteadyBlock
		switch e.mode {
		case insert:
			cursorStyle = tcell.CursorStyleSteadyBar
		case replace:
			cursorStyle = tcell.CursorStyleSteadyUnderline
		}
		screen.SetCursorStyle(cursorStyle)
		screen.ShowCursor(x+gutter+cursorRx-e.offsets[1], y+e.cursor[0]-e.offsets[0])
	} else {
		screen.HideCursor()
	}
}

// drawRow draws the visible window of one rendered row. Highlight
// classes map one to one onto rendered bytes; grapheme stepping keeps
// multi byte content from tearing cells apart.
func (e *Editor) drawRow(screen tcell.Screen, row *Row, x, y, w int) {
	render := row.render
	hl := row.hl
	if e.offsets[1] >= len(render) {
		return
	}
	render = render[e.offsets[1]:]
	hl = hl[e.offsets[1]:]

	col := 0
	byteIdx := 0
	state := -1
	text := string(render)
	for text != "" && col < w {
		cluster, rest, boundaries, next := uniseg.StepString(text, state)
		width := boundaries >> uniseg.ShiftWidth
		if width < 1 {
			width = 1
		}

		st := styleFor(hl[byteIdx])
		runes := []rune(cluster)
		screen.SetContent(x+col, y, runes[0], runes[1:], st)

		col += width
		byteIdx += len(cluster)
		text = rest
		state = next
	}
}
