package rules

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mdfence/pkg/langid"
	"github.com/yaklabco/mdfence/pkg/repair"
)

// SpliceText renders one language as text for the text assembly path: a
// banner comment, the wrapper header and the repaired section indented
// under the wrapper's "rules:" key.
func SpliceText(language, section string, repairer repair.Repairer) string {
	if repairer == nil {
		repairer = repair.Heuristic{}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# ----- Syntaxrules for %s ----- #\n", language)
	sb.WriteString("- " + wrapperKey + ":\n")
	sb.WriteString("    start: " + FenceStart(language) + "\n")
	sb.WriteString("    end: " + FenceEnd + "\n")
	sb.WriteString("    " + RulesKey + ":\n")
	sb.WriteString(ensureNewline(repairer.Repair(section)))
	return sb.String()
}

// SpliceHostText renders the markdown rules as top-level items.
func SpliceHostText(section string) string {
	return ensureNewline(repair.Dedent(section))
}

// MergeTextOptions configures MergeText.
type MergeTextOptions struct {
	Parser   Parser
	Sink     Sink
	Repairer repair.Repairer
}

// MergeText is the text assembly path. Each section is validated block by
// block, with failing blocks commented out, then repaired and spliced as
// text. The markdown section follows the wrapped languages, matching the
// structural path. Sections are never re-parsed, so Normalize's invariant is
// not guaranteed; prefer Merge.
func MergeText(ctx context.Context, inputs []Input, opts MergeTextOptions) (string, []Outcome, error) {
	outcomes := make([]Outcome, 0, len(inputs))

	var wrapped, host strings.Builder
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return "", outcomes, fmt.Errorf("merge cancelled: %w", err)
		}

		validation := Validate(input.Language, Segment(input.Text), opts.Parser, opts.Sink)
		outcomes = append(outcomes, Outcome{
			Language:   input.Language,
			Source:     input.Source,
			Validation: validation,
		})

		if input.Language == langid.Markdown {
			host.WriteString(SpliceHostText(validation.Text()))
			continue
		}
		wrapped.WriteString(SpliceText(input.Language, validation.Text(), opts.Repairer))
	}

	return wrapped.String() + host.String(), outcomes, nil
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
