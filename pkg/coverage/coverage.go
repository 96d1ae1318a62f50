// Package coverage checks which fenced code blocks of a Markdown document
// are highlighted by a merged syntax file.
//
// Fences are found with goldmark. Each fence's opening line is matched
// against the "start" patterns of the merged file's comment regions, using
// Go's regexp package just like micro does.
package coverage

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/langid"
	"github.com/yaklabco/mdfence/pkg/rules"
)

// Fence is one fenced code block.
type Fence struct {
	// Language is the first word of the info string, or "" when untagged.
	Language string

	// Line is the 1-based line of the opening fence.
	Line int

	// Opening is the opening fence line without its line terminator.
	Opening string

	// Guess is the detected language of an untagged fence's content.
	Guess string
}

// FenceLanguages returns every fenced code block in source, in order.
func FenceLanguages(source []byte) []Fence {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var fences []Fence
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		fence := Fence{Language: string(block.Language(source))}
		if start, found := openingOffset(block, source); found {
			fence.Line, fence.Opening = lineAt(source, start)
		}
		if fence.Language == "" {
			fence.Guess = langid.Detect(blockContent(block, source))
		}
		fences = append(fences, fence)
		return ast.WalkSkipChildren, nil
	})

	return fences
}

// openingOffset returns a byte offset on the fence's opening line.
func openingOffset(block *ast.FencedCodeBlock, source []byte) (int, bool) {
	if block.Info != nil {
		return block.Info.Segment.Start, true
	}
	lines := block.Lines()
	if lines.Len() == 0 {
		return 0, false
	}
	// The opening fence is the line before the first content line.
	first := lines.At(0).Start
	prev := bytes.LastIndexByte(source[:first], '\n')
	if prev <= 0 {
		return 0, false
	}
	return prev - 1, true
}

func blockContent(block *ast.FencedCodeBlock, source []byte) []byte {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

// lineAt returns the 1-based line number and text of the line containing offset.
func lineAt(source []byte, offset int) (int, string) {
	if offset > len(source) {
		offset = len(source)
	}
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := bytes.IndexByte(source[offset:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += offset
	}
	line := bytes.TrimSuffix(source[start:end], []byte("\r"))
	return bytes.Count(source[:start], []byte("\n")) + 1, string(line)
}

// StartPatterns returns the "start" regexes of every comment region in the
// rules list of a merged syntax file, in document order.
func StartPatterns(root *yaml.Node) []string {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}

	ruleList := root
	if root.Kind == yaml.MappingNode {
		ruleList = valueOf(root, rules.RulesKey)
	}
	if ruleList == nil || ruleList.Kind != yaml.SequenceNode {
		return nil
	}

	var patterns []string
	for _, item := range ruleList.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		region := valueOf(item, "comment")
		if region == nil || region.Kind != yaml.MappingNode {
			continue
		}
		if start := valueOf(region, "start"); start != nil && start.Kind == yaml.ScalarNode {
			patterns = append(patterns, start.Value)
		}
	}
	return patterns
}

// Result is the coverage of one fence.
type Result struct {
	Fence

	// Covered is true when a start pattern matches the opening line.
	Covered bool

	// Pattern is the first matching start pattern.
	Pattern string
}

// Report summarizes coverage for a set of fences.
type Report struct {
	Results []Result

	// Uncovered lists the distinct languages of uncovered tagged fences, sorted.
	Uncovered []string

	// Untagged counts fences without a language.
	Untagged int
}

// Covered reports whether every tagged fence is highlighted.
func (r *Report) Covered() bool {
	return len(r.Uncovered) == 0
}

// Check matches each fence against patterns. An invalid pattern is an error
// because micro would reject the syntax file too.
func Check(patterns []string, fences []Fence) (*Report, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile start pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}

	report := &Report{Results: make([]Result, 0, len(fences))}
	for _, fence := range fences {
		result := Result{Fence: fence}
		if fence.Language == "" {
			report.Untagged++
		}
		for _, re := range compiled {
			if re.MatchString(fence.Opening) {
				result.Covered = true
				result.Pattern = re.String()
				break
			}
		}
		if !result.Covered && fence.Language != "" && !slices.Contains(report.Uncovered, fence.Language) {
			report.Uncovered = append(report.Uncovered, fence.Language)
		}
		report.Results = append(report.Results, result)
	}
	sort.Strings(report.Uncovered)

	return report, nil
}

func valueOf(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
