package config

import (
	"bufio"
	"io"
	"strings"
)

// Line is one significant source line.
type Line struct {
	Number int // 1-based
	Indent int
	Dashed bool
	Key    string
	Value  string
}

// Lexer turns a text stream into Lines, skipping blanks and # comments.
// Lines may be of any length.
type Lexer struct {
	r      *bufio.Reader
	done   bool
	linenr int
}

func NewLexer(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r)}
}

// next returns the next raw line without its terminator.
func (l *Lexer) next() (string, bool) {
	if l.done {
		return "", false
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if s == "" {
			return "", false
		}
	}
	return strings.TrimRight(s, "\r\n"), true
}

// Accept returns the next significant line. Read errors end the stream like EOF.
func (l *Lexer) Accept() (Line, bool) {
	for {
		text, ok := l.next()
		if !ok {
			return Line{}, false
		}
		l.linenr++
		indent := 0
		for indent < len(text) && text[indent] == ' ' {
			indent++
		}
		text = text[indent:]
		if text == "" || text[0] == '#' {
			continue
		}
		dashed := false
		if text[0] == '-' {
			dashed = true
			text = strings.TrimSpace(text[1:])
		}
		parts := strings.Split(text, ":")
		line := Line{
			Number: l.linenr,
			Indent: indent,
			Dashed: dashed,
			Key:    strings.TrimRight(parts[0], " \t"),
		}
		if len(parts) > 1 {
			line.Value = strings.TrimSpace(strings.Join(parts[1:], " "))
		}
		return line, true
	}
}
