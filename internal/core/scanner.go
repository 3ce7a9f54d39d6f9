package core

import (
	"os"
	"regexp"
	"strings"

	"reqtxt/internal/types"
)

// Line is one logical line: comment-stripped, continuation-joined,
// environment-expanded, trimmed. Span covers every physical line consumed.
type Line struct {
	Text string
	Span types.Span
}

// Scanner walks the raw text of one requirements file and yields logical
// lines. Comments are stripped per physical line before continuation
// joining: a `#` at line start or after whitespace ends the line, and the
// whitespace run before it goes too. A physical line whose remaining
// content ends in an unescaped backslash joins the next physical line with
// the backslash and newline elided. `${NAME}` references (names limited to
// [A-Z0-9_]) are replaced from the lookup function after joining; unset
// names stay verbatim.
type Scanner struct {
	origin types.Origin
	lines  []string
	next   int
	lookup func(string) (string, bool)
}

var envReference = regexp.MustCompile(`\$\{[A-Z0-9_]+\}`)

func NewScanner(origin types.Origin, raw string) *Scanner {
	return NewScannerWithEnv(origin, raw, os.LookupEnv)
}

func NewScannerWithEnv(origin types.Origin, raw string, lookup func(string) (string, bool)) *Scanner {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Scanner{origin: origin, lines: splitPhysical(raw), lookup: lookup}
}

// Next returns the next non-empty logical line. The second return value is
// false once the text is exhausted.
func (s *Scanner) Next() (Line, bool) {
	for s.next < len(s.lines) {
		start := s.next
		var logical strings.Builder
		end := start
		for {
			content := stripComment(s.lines[s.next])
			end = s.next
			s.next++
			joined := hasContinuation(content)
			if joined {
				content = content[:len(content)-1]
			}
			logical.WriteString(content)
			if !joined || s.next >= len(s.lines) {
				break
			}
		}
		text := strings.TrimSpace(expandEnv(logical.String(), s.lookup))
		if text == "" {
			continue
		}
		return Line{
			Text: text,
			Span: types.Span{
				Origin:    s.origin,
				StartLine: start + 1,
				StartCol:  startColumn(stripComment(s.lines[start])),
				EndLine:   end + 1,
				EndCol:    endColumn(s.lines[end]),
			},
		}, true
	}
	return Line{}, false
}

func splitPhysical(raw string) []string {
	lines := strings.Split(raw, "\n")
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// stripComment removes a trailing comment from one physical line. Only a
// `#` at column one or preceded by whitespace opens a comment, so URL
// fragments like #egg=name survive.
func stripComment(line string) string {
	for idx := 0; idx < len(line); idx++ {
		if line[idx] != '#' {
			continue
		}
		if idx == 0 {
			return ""
		}
		if line[idx-1] == ' ' || line[idx-1] == '\t' {
			cut := idx
			for cut > 0 && (line[cut-1] == ' ' || line[cut-1] == '\t') {
				cut--
			}
			return line[:cut]
		}
	}
	return line
}

// hasContinuation reports whether the line ends in an unescaped backslash:
// an odd-length run of trailing backslashes.
func hasContinuation(line string) bool {
	count := 0
	for idx := len(line) - 1; idx >= 0 && line[idx] == '\\'; idx-- {
		count++
	}
	return count%2 == 1
}

func expandEnv(text string, lookup func(string) (string, bool)) string {
	return envReference.ReplaceAllStringFunc(text, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := lookup(name); ok {
			return value
		}
		return match
	})
}

func startColumn(content string) int {
	for idx := 0; idx < len(content); idx++ {
		if content[idx] != ' ' && content[idx] != '\t' {
			return idx + 1
		}
	}
	return 1
}

func endColumn(raw string) int {
	if len(raw) == 0 {
		return 1
	}
	return len(raw)
}
