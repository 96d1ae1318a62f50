// Package repair fixes rule-section text before it is spliced under a
// language wrapper. The repairs are line heuristics, not a YAML parser: they
// only trigger on the patterns documented on each function and leave
// everything else untouched.
package repair

import "strings"

// DefaultIndent is the base indentation of a rule list spliced under a
// wrapper's "rules:" key.
const DefaultIndent = 4

// emptyRules is inserted after a bare key that is missing its rules list.
const emptyRules = "rules: []"

// Repairer rewrites raw rule-section text.
type Repairer interface {
	Repair(text string) string
}

// Heuristic is the default Repairer. It inserts missing "rules: []" lines and
// pads the text so its first significant line sits at Indent spaces.
type Heuristic struct {
	// Indent is the target base indentation. Zero means DefaultIndent.
	Indent int
}

// Repair applies AddMissingRules and then uniform padding.
// Blank input is returned unchanged.
func (h Heuristic) Repair(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	indent := h.Indent
	if indent <= 0 {
		indent = DefaultIndent
	}

	repaired := AddMissingRules(text)
	return Indent(repaired, missingIndent(repaired, indent))
}

// MissingIndent returns the padding that moves the first non-blank,
// non-comment line of text to DefaultIndent spaces. It returns "" when the
// line is already indented enough or no such line exists.
func MissingIndent(text string) string {
	return missingIndent(text, DefaultIndent)
}

func missingIndent(text string, target int) string {
	for _, line := range strings.Split(text, "\n") {
		if isBlank(line) || isComment(line) {
			continue
		}
		current := len(line) - len(strings.TrimLeft(line, " "))
		return strings.Repeat(" ", max(0, target-current))
	}
	return ""
}

// AddMissingRules inserts "rules: []" after every bare key line that is
// directly followed by a list item, or by a comment line that is itself
// followed by a list item. A bare line is non-empty, not a list item, not a
// comment and does not mention "rules". The inserted line copies the key's
// indentation.
func AddMissingRules(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		out = append(out, line)
		if isBareKey(line) && followedByItem(lines, i) {
			out = append(out, leadingWhitespace(line)+emptyRules)
		}
	}

	return strings.Join(out, "\n")
}

// Indent adds prefix to every line that has non-whitespace content.
func Indent(text, prefix string) string {
	if prefix == "" {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, line := range strings.SplitAfter(text, "\n") {
		if !isBlank(line) {
			sb.WriteString(prefix)
		}
		sb.WriteString(line)
	}
	return sb.String()
}

// Dedent removes the longest run of leading spaces shared by every
// non-blank line.
func Dedent(text string) string {
	lines := strings.SplitAfter(text, "\n")

	common := -1
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for _, line := range lines {
		if isBlank(line) {
			sb.WriteString(strings.TrimLeft(line, " \t"))
			continue
		}
		sb.WriteString(line[common:])
	}
	return sb.String()
}

func followedByItem(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	next := lines[i+1]
	if isItem(next) {
		return true
	}
	return isComment(next) && i+2 < len(lines) && isItem(lines[i+2])
}

func isBareKey(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" &&
		!strings.HasPrefix(trimmed, "-") &&
		!strings.HasPrefix(trimmed, "#") &&
		!strings.Contains(trimmed, "rules")
}

func isItem(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "-")
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
