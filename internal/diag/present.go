package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"minirust/internal/source"
)

// icons keys a presentation glyph by diagnostic kind, per spec §4.5.
var icons = map[Kind]string{
	LexicalError:      "✗",
	ParseError:        "✗",
	SemanticError:     "✗",
	TypeError:         "✗",
	OwnershipError:    "✗",
	UnusedVariable:    "⚠",
	IRGenerationError: "✗",
	Warning:           "⚠",
}

// hints maps a keyword substring of a diagnostic's message to an advisory
// suggestion, per spec §4.5. Checked in order; first match wins.
var hints = []struct {
	keyword    string
	suggestion string
}{
	{"Undefined variable", "Declare the variable with 'let' before using it."},
	{"Type mismatch", "Change the declared type or the expression to match."},
	{"Cannot assign to immutable", "Declare the variable with 'let mut' to allow reassignment."},
	{"Unterminated string literal", "Add a closing '\"' to the string literal."},
	{"Expected", "Check for a missing token just before this position."},
	{"Cannot create mutable borrow", "A mutable borrow needs a 'let mut' variable that has no other borrow in this model."},
	{"already borrowed", "A mutable borrow cannot coexist with any other borrow of the same variable in this model."},
}

// Suggest returns the advisory hint for a diagnostic message, or "" if none
// of the keyword patterns match.
func Suggest(message string) string {
	for _, h := range hints {
		if strings.Contains(message, h.keyword) {
			return h.suggestion
		}
	}
	return ""
}

// WithSuggestions returns a copy of the diagnostic list with the
// presentation layer's advisory suggestion attached post hoc, per spec §7
// ("Suggestions are advisory and may be attached post hoc").
func WithSuggestions(items []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(items))
	for i, d := range items {
		if d.Suggestion == "" {
			d.Suggestion = Suggest(d.Message)
		}
		out[i] = d
	}
	return out
}

// Format renders one diagnostic as an icon-tagged message, an advisory
// suggestion, and a caret-annotated source snippet. Color is only emitted
// when w is a terminal (golang.org/x/term.IsTerminal), so piped or
// redirected output — and every test in this repo — stays plain text.
func Format(w io.Writer, d Diagnostic, file *source.File) string {
	useColor := isTerminalWriter(w)

	icon := icons[d.Kind]
	head := fmt.Sprintf("%s [%s] %d:%d: %s", icon, d.Kind, d.Line, d.Column, d.Message)
	if useColor {
		head = colorForKind(d.Kind).Sprint(head)
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteByte('\n')

	suggestion := d.Suggestion
	if suggestion == "" {
		suggestion = Suggest(d.Message)
	}
	if suggestion != "" {
		hintLine := fmt.Sprintf("  hint: %s", suggestion)
		if useColor {
			hintLine = color.New(color.FgCyan).Sprint(hintLine)
		}
		b.WriteString(hintLine)
		b.WriteByte('\n')
	}

	if file != nil {
		line := file.Line(d.Line)
		if line != "" {
			b.WriteString("  " + line + "\n")
			b.WriteString("  " + caret(line, d.Column) + "\n")
		}
	}
	return b.String()
}

func colorForKind(k Kind) *color.Color {
	if k.Severity() == SevWarning {
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

// caret builds a line of spaces with a '^' under the given 1-based
// column, measuring display width rather than byte count so multi-byte
// runes before the column still line the caret up correctly.
func caret(line string, column int) string {
	if column < 1 {
		column = 1
	}
	runes := []rune(line)
	if column > len(runes)+1 {
		column = len(runes) + 1
	}
	prefix := string(runes[:column-1])
	width := runewidth.StringWidth(prefix)
	return strings.Repeat(" ", width) + "^"
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
