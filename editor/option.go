package editor

func WithKeymapper(km keymapper) func(e *Editor) {
	return func(e *Editor) {
		e.keymapper = km
	}
}

// WithLineNumbers turns the line number gutter on, width digits wide.
func WithLineNumbers(width int) func(e *Editor) {
	return func(e *Editor) {
		e.lineNumbers = true
		if width > 0 {
			e.numberLen = width
		}
	}
}

// WithStatusFunc wires the message sink for status line feedback.
func WithStatusFunc(f func(format string, args ...any)) func(e *Editor) {
	return func(e *Editor) {
		e.statusFunc = f
	}
}

// WithExitFunc wires the callback run when the editor quits.
func WithExitFunc(f func()) func(e *Editor) {
	return func(e *Editor) {
		e.exitFunc = f
	}
}

// WithSaveAsFunc wires the prompt shown when saving a nameless buffer.
func WithSaveAsFunc(f func()) func(e *Editor) {
	return func(e *Editor) {
		e.saveAsFunc = f
	}
}
