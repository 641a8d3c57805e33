package editor

import (
	"bytes"
	"path/filepath"
	"strings"
)

type (
	// Highlight classifies one rendered byte for coloring.
	Highlight uint8

	// Keyword is one entry of a syntax profile's keyword table.
	Keyword struct {
		Text  string
		Class Highlight
	}

	// Syntax is the highlight profile selected per file type.
	Syntax struct {
		Name              string
		FileMatch         []string
		Keywords          []Keyword
		LineComment       string
		BlockCommentStart string
		BlockCommentEnd   string

		// each flag gates only its own rule
		Numbers   bool
		Strings   bool
		Functions bool
	}
)

const (
	HighlightNormal Highlight = iota
	HighlightComment
	HighlightBlockComment
	HighlightFunction
	HighlightKeyword1
	HighlightKeyword2
	HighlightString
	HighlightNumber
	HighlightMatch
)

const separators = ",.()+-/*=~%<>[];"

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f' ||
		c == 0 || strings.IndexByte(separators, c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// highlightRow classifies every rendered byte of the row in a single left
// to right pass. inComment seeds the scan with the predecessor's open
// comment state; the return value is the state at the end of the row.
// The row's hl slice is only replaced once the whole scan succeeded.
func (s *Syntax) highlightRow(row *Row, inComment bool) bool {
	hl := make([]Highlight, len(row.render))

	scs := []byte(s.LineComment)
	mcs := []byte(s.BlockCommentStart)
	mce := []byte(s.BlockCommentEnd)

	prevSep := true
	var inString byte

	i := 0
	for i < len(row.render) {
		c := row.render[i]
		prevHl := HighlightNormal
		if i > 0 {
			prevHl = hl[i-1]
		}

		if s.Functions && inString == 0 && isAlpha(c) &&
			i+1 < len(row.render) && row.render[i+1] == '(' {
			for j := i; j >= 0 && !isSeparator(row.render[j]); j-- {
				hl[j] = HighlightFunction
			}
		}

		if len(scs) > 0 && inString == 0 && !inComment && bytes.HasPrefix(row.render[i:], scs) {
			for j := i; j < len(row.render); j++ {
				hl[j] = HighlightComment
			}
			break
		}

		if len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				hl[i] = HighlightBlockComment
				if bytes.HasPrefix(row.render[i:], mce) {
					for j := range mce {
						hl[i+j] = HighlightBlockComment
					}
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(row.render[i:], mcs) {
				for j := range mcs {
					hl[i+j] = HighlightBlockComment
				}
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if s.Strings {
			if inString != 0 {
				hl[i] = HighlightString
				if c == '\\' && i+1 < len(row.render) {
					hl[i+1] = HighlightString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				hl[i] = HighlightString
				i++
				continue
			}
		}

		if s.Numbers {
			prevC := byte(0)
			if i > 0 {
				prevC = row.render[i-1]
			}
			if (isDigit(c) && (prevSep || prevHl == HighlightNumber)) ||
				(c == '.' && prevHl == HighlightNumber) ||
				((c == 'x' || c == 'b') && prevC == '0') {
				hl[i] = HighlightNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			matched := false
			for _, kw := range s.Keywords {
				end := i + len(kw.Text)
				if !bytes.HasPrefix(row.render[i:], []byte(kw.Text)) {
					continue
				}
				// whole word only: the keyword must be followed by a
				// separator or the end of the row
				if end < len(row.render) && !isSeparator(row.render[end]) {
					continue
				}
				for j := i; j < end; j++ {
					hl[j] = kw.Class
				}
				i = end
				matched = true
				break
			}
			if matched {
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	row.hl = hl
	return inComment
}

// match reports whether the profile applies to the given file name.
// Entries starting with a dot match the extension, anything else matches
// as a substring of the name.
func (s *Syntax) match(filename string) bool {
	ext := filepath.Ext(filename)
	for _, fm := range s.FileMatch {
		if strings.HasPrefix(fm, ".") {
			if ext != "" && ext == fm {
				return true
			}
		} else if strings.Contains(filename, fm) {
			return true
		}
	}
	return false
}

// profiles is the built-in highlight database.
var profiles = []*Syntax{
	{
		Name:      "c",
		FileMatch: []string{".c", ".h", ".cpp"},
		Keywords: []Keyword{
			{"switch", HighlightKeyword1}, {"if", HighlightKeyword1},
			{"while", HighlightKeyword1}, {"for", HighlightKeyword1},
			{"break", HighlightKeyword1}, {"continue", HighlightKeyword1},
			{"return", HighlightKeyword1}, {"else", HighlightKeyword1},
			{"default", HighlightKeyword1}, {"union", HighlightKeyword1},
			{"case", HighlightKeyword1}, {"#include", HighlightKeyword1},
			{"#ifndef", HighlightKeyword1}, {"#define", HighlightKeyword1},
			{"#endif", HighlightKeyword1}, {"#pragma once", HighlightKeyword1},
			{"namespace", HighlightKeyword1},
			{"struct", HighlightKeyword2}, {"typedef", HighlightKeyword2},
			{"enum", HighlightKeyword2}, {"class", HighlightKeyword2},
			{"int", HighlightKeyword2}, {"long", HighlightKeyword2},
			{"double", HighlightKeyword2}, {"float", HighlightKeyword2},
			{"char", HighlightKeyword2}, {"unsigned", HighlightKeyword2},
			{"signed", HighlightKeyword2}, {"void", HighlightKeyword2},
			{"static", HighlightKeyword2}, {"using", HighlightKeyword2},
			{"std", HighlightKeyword1},
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Numbers:           true,
		Strings:           true,
		Functions:         true,
	},
	{
		Name:      "go",
		FileMatch: []string{".go"},
		Keywords: []Keyword{
			{"break", HighlightKeyword1}, {"case", HighlightKeyword1},
			{"chan", HighlightKeyword1}, {"const", HighlightKeyword1},
			{"continue", HighlightKeyword1}, {"default", HighlightKeyword1},
			{"defer", HighlightKeyword1}, {"else", HighlightKeyword1},
			{"fallthrough", HighlightKeyword1}, {"for", HighlightKeyword1},
			{"func", HighlightKeyword1}, {"go", HighlightKeyword1},
			{"goto", HighlightKeyword1}, {"if", HighlightKeyword1},
			{"import", HighlightKeyword1}, {"interface", HighlightKeyword1},
			{"map", HighlightKeyword1}, {"package", HighlightKeyword1},
			{"range", HighlightKeyword1}, {"return", HighlightKeyword1},
			{"select", HighlightKeyword1}, {"struct", HighlightKeyword1},
			{"switch", HighlightKeyword1}, {"type", HighlightKeyword1},
			{"var", HighlightKeyword1},
			{"bool", HighlightKeyword2}, {"byte", HighlightKeyword2},
			{"error", HighlightKeyword2}, {"float32", HighlightKeyword2},
			{"float64", HighlightKeyword2}, {"int", HighlightKeyword2},
			{"int8", HighlightKeyword2}, {"int16", HighlightKeyword2},
			{"int32", HighlightKeyword2}, {"int64", HighlightKeyword2},
			{"rune", HighlightKeyword2}, {"string", HighlightKeyword2},
			{"uint", HighlightKeyword2}, {"uint8", HighlightKeyword2},
			{"uint16", HighlightKeyword2}, {"uint32", HighlightKeyword2},
			{"uint64", HighlightKeyword2}, {"uintptr", HighlightKeyword2},
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		Numbers:           true,
		Strings:           true,
		Functions:         true,
	},
}

// matchProfile returns the first built-in profile matching the file name,
// or nil when none does.
func matchProfile(filename string) *Syntax {
	if filename == "" {
		return nil
	}
	for _, s := range profiles {
		if s.match(filename) {
			return s
		}
	}
	return nil
}
