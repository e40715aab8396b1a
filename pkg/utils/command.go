package utils

import (
	"errors"
	"strings"
)

var (
	// ErrUnterminatedQuote is returned when a quoted argument is not closed.
	ErrUnterminatedQuote = errors.New("unterminated quote in command")
	// ErrUnfinishedEscape is returned when a command ends with a backslash.
	ErrUnfinishedEscape = errors.New("unfinished escape sequence in command")
)

// SplitCommandLine splits a command line into arguments, honoring simple quotes.
// A quoted empty string ("") is kept as an empty argument.
func SplitCommandLine(input string) ([]string, error) {
	var args []string
	var current strings.Builder
	var quote rune
	escaped := false
	// inArg is set once the current argument has started, even if empty.
	inArg := false

	flush := func() {
		if inArg {
			args = append(args, current.String())
			current.Reset()
			inArg = false
		}
	}

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t' || r == '\n':
			flush()
		default:
			current.WriteRune(r)
			inArg = true
		}
	}

	if escaped {
		return nil, ErrUnfinishedEscape
	}
	if quote != 0 {
		return nil, ErrUnterminatedQuote
	}
	flush()

	return args, nil
}

// JoinCommandLine is the inverse of SplitCommandLine. Arguments holding
// whitespace, quotes or backslashes are single-quoted.
func JoinCommandLine(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = quoteArg(arg)
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\n'\"\\") {
		return arg
	}
	if !strings.Contains(arg, "'") {
		return "'" + arg + "'"
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range arg {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
