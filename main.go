package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"kyte/app"
)

func main() {
	// log lines on stderr would tear the terminal UI apart, so they go
	// to a file or nowhere
	log.SetOutput(io.Discard)
	if path := os.Getenv("KYTE_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			log.SetOutput(f)
		}
	}

	var path string
	if len(os.Args) >= 2 {
		path = os.Args[1]
	}

	a, err := app.New(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := a.Run(); err != nil {
		panic(err)
	}
}
