// Derived from https://github.com/atotto/clipboard/blob/master/clipboard_unix.go

// Copyright 2013 @atotto. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build freebsd || linux || netbsd || openbsd || solaris || dragonfly

package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

var (
	once         sync.Once
	copyCmdArgs  []string
	pasteCmdArgs []string

	errUnsupported = errors.New("clipboard: no clipboard utility available, install xclip, xsel or wl-clipboard")
)

// candidates in preference order; wayland tools only when a wayland
// display is around
var candidates = []struct {
	wayland   bool
	copyArgs  []string
	pasteArgs []string
}{
	{wayland: true, copyArgs: []string{"wl-copy"}, pasteArgs: []string{"wl-paste", "--no-newline"}},
	{copyArgs: []string{"xclip", "-in", "-selection", "clipboard"}, pasteArgs: []string{"xclip", "-out", "-selection", "clipboard"}},
	{copyArgs: []string{"xsel", "--input", "--clipboard"}, pasteArgs: []string{"xsel", "--output", "--clipboard"}},
	{copyArgs: []string{"termux-clipboard-set"}, pasteArgs: []string{"termux-clipboard-get"}},
}

func setCmdArgs() {
	once.Do(func() {
		wayland := os.Getenv("WAYLAND_DISPLAY") != ""
		for _, c := range candidates {
			if c.wayland && !wayland {
				continue
			}
			if _, err := exec.LookPath(c.copyArgs[0]); err != nil {
				continue
			}
			if _, err := exec.LookPath(c.pasteArgs[0]); err != nil {
				continue
			}
			copyCmdArgs = c.copyArgs
			pasteCmdArgs = c.pasteArgs
			return
		}
	})
}

func read() (string, error) {
	setCmdArgs()
	if pasteCmdArgs == nil {
		return "", errUnsupported
	}
	out, err := exec.Command(pasteCmdArgs[0], pasteCmdArgs[1:]...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func write(text string) error {
	setCmdArgs()
	if copyCmdArgs == nil {
		return errUnsupported
	}
	cmd := exec.Command(copyCmdArgs[0], copyCmdArgs[1:]...)
	in, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := in.Write([]byte(text)); err != nil {
		return err
	}
	if err := in.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
