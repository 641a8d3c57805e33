package app

import (
	"context"
	_ "embed"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kyte/config"
	"kyte/editor"
	"kyte/keymap"
	"kyte/statusbar"
)

type (
	App struct {
		*tview.Pages
		app    *tview.Application
		flex   *tview.Flex
		editor *editor.Editor
		bar    *statusbar.StatusBar
	}
)

//go:embed keymap.json
var keymapString string

// New wires the whole editor together: settings, keymap, document and
// widgets. Failing to open a named file is fatal, the session cannot
// proceed without a document.
func New(path string) (*App, error) {
	settings, err := config.Load(config.DefaultPath())
	if err != nil {
		settings = config.Default()
	}
	km := keymap.New(keymapString)

	doc := editor.NewDocument(settings.TabStop)
	if path != "" {
		if err := doc.Open(path); err != nil {
			return nil, err
		}
	}

	a := &App{
		app: tview.NewApplication(),
	}

	opts := []func(*editor.Editor){
		editor.WithKeymapper(km),
		editor.WithStatusFunc(func(format string, args ...any) {
			a.bar.ShowMessage(format, args...)
		}),
		editor.WithExitFunc(func() {
			a.app.Stop()
		}),
		editor.WithSaveAsFunc(func() {
			a.promptSaveAs()
		}),
	}
	if settings.Number {
		opts = append(opts, editor.WithLineNumbers(settings.NumberLen))
	}
	a.editor = editor.New(doc, opts...)
	a.bar = statusbar.New(a.editor, settings.Separator,
		time.Duration(settings.MessageTimeout)*time.Second)

	a.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.editor, 0, 1, true).
		AddItem(a.bar, 2, 0, false)

	a.Pages = tview.NewPages().AddPage("main", a.flex, true, true)

	a.bar.ShowMessage("HELP: Ctrl-S: save | Ctrl-Q: quit | /: search")

	return a, nil
}

// promptSaveAs swaps a one line input below the status bar and hands it
// focus until the file name is confirmed or the prompt is cancelled.
func (a *App) promptSaveAs() {
	input := tview.NewInputField().SetLabel("Save as: ")
	input.SetDoneFunc(func(key tcell.Key) {
		name := input.GetText()
		a.flex.RemoveItem(input)
		a.app.SetFocus(a.editor)
		if key == tcell.KeyEnter {
			a.editor.SaveAs(name)
		} else {
			a.editor.SaveAs("")
		}
	})
	a.flex.AddItem(input, 1, 0, true)
	a.app.SetFocus(input)
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.drawLoop(ctx)

	return a.app.SetRoot(a.Pages, true).Run()
}

// drawLoop redraws on a slow tick so the message line expires even
// without input.
func (a *App) drawLoop(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("draw loop: %+v", r)
			a.app.Stop()
			panic(r)
		}
	}()

	t := time.NewTicker(500 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.app.Draw()
		}
	}
}
