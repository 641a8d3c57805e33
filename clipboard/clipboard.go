// Package clipboard reads and writes the system clipboard by shelling
// out to the platform's clipboard utility, in the manner of
// https://github.com/atotto/clipboard.
package clipboard

// Read returns the clipboard content.
func Read() (string, error) {
	return read()
}

// Write replaces the clipboard content.
func Write(text string) error {
	return write(text)
}
