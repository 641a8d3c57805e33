package statusbar

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type (
	// editorState is what the bar reads from the editor each draw. All
	// values are borrowed for the current frame only.
	editorState interface {
		Mode() string
		Filename() string
		FileType() string
		Dirty() bool
		RowCount() int
		CursorRow() int
	}

	// StatusBar is a two line widget: the status line with mode, file
	// name, dirty marker and position, and a message line whose content
	// expires after a timeout.
	StatusBar struct {
		*tview.Box
		editor    editorState
		separator string
		timeout   time.Duration

		message     string
		messageTime time.Time
	}
)

func New(editor editorState, separator string, timeout time.Duration) *StatusBar {
	return &StatusBar{
		Box:       tview.NewBox(),
		editor:    editor,
		separator: separator,
		timeout:   timeout,
	}
}

// ShowMessage replaces the message line, restarting the timeout.
func (s *StatusBar) ShowMessage(format string, args ...any) {
	s.message = fmt.Sprintf(format, args...)
	s.messageTime = time.Now()
}

func (s *StatusBar) Draw(screen tcell.Screen) {
	s.Box.DrawForSubclass(screen, s)

	x, y, w, h := s.GetInnerRect()
	if w < 1 || h < 1 {
		return
	}

	filename := s.editor.Filename()
	if filename == "" {
		filename = "[No Name]"
	}
	dirty := " "
	if s.editor.Dirty() {
		dirty = " [+] "
	}
	filetype := s.editor.FileType()
	if filetype == "" {
		filetype = "no ft"
	}

	left := fmt.Sprintf(" %s %s %.20s%s- %d", s.editor.Mode(), s.separator, filename, dirty, s.editor.RowCount())
	right := fmt.Sprintf("%s %s %d/%d ", filetype, s.separator, s.editor.CursorRow()+1, s.editor.RowCount())

	statusStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	col := 0
	for _, r := range left {
		if col >= w {
			break
		}
		screen.SetContent(x+col, y, r, nil, statusStyle)
		col++
	}
	for ; col < w-len(right); col++ {
		screen.SetContent(x+col, y, ' ', nil, statusStyle)
	}
	for _, r := range right {
		if col >= w {
			break
		}
		screen.SetContent(x+col, y, r, nil, statusStyle)
		col++
	}

	if h < 2 {
		return
	}
	msg := s.message
	if msg != "" && time.Since(s.messageTime) >= s.timeout {
		msg = ""
	}
	col = 0
	for _, r := range msg {
		if col >= w {
			break
		}
		screen.SetContent(x+col, y+1, r, nil, tcell.StyleDefault)
		col++
	}
	for ; col < w; col++ {
		screen.SetContent(x+col, y+1, ' ', nil, tcell.StyleDefault)
	}
}
