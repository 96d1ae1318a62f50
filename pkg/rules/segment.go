package rules

import "strings"

// Block is a contiguous slice of a rules section believed to hold one
// top-level list item.
type Block struct {
	// Text is the exact source text of the block, including its trailing
	// blank lines and comments.
	Text string

	// Line is the 1-based line of the block's first line in the section.
	Line int

	// Preamble marks the text before the first list item.
	Preamble bool
}

// Segment splits a rules section into blocks. A block starts at every list
// item line ("-" followed by whitespace or end of line) at the section's
// top-level item indentation and runs up to the next one. Deeper items stay
// with their parent. Text before the first item becomes a Preamble block.
//
// Concatenating the Text of all returned blocks reproduces text exactly.
func Segment(text string) []Block {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	top := topLevelIndent(lines)

	var (
		blocks  []Block
		current strings.Builder
		start   = 1
		inItem  bool
	)

	flush := func(next int) {
		if current.Len() > 0 {
			blocks = append(blocks, Block{
				Text:     current.String(),
				Line:     start,
				Preamble: !inItem,
			})
		}
		current.Reset()
		start = next
	}

	for i, line := range lines {
		if indent, ok := itemIndent(line); ok && indent == top {
			flush(i + 1)
			inItem = true
		}
		current.WriteString(line)
	}
	flush(len(lines) + 1)

	return blocks
}

// topLevelIndent returns the smallest indentation of any item line, or -1.
func topLevelIndent(lines []string) int {
	top := -1
	for _, line := range lines {
		if indent, ok := itemIndent(line); ok && (top < 0 || indent < top) {
			top = indent
		}
	}
	return top
}

// itemIndent reports whether line is a list item and returns its indentation.
func itemIndent(line string) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "-") {
		return 0, false
	}
	rest := trimmed[1:]
	if rest != "" && !strings.ContainsAny(rest[:1], " \t\r\n") {
		return 0, false
	}
	return len(line) - len(trimmed), true
}
