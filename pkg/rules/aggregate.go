package rules

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/langid"
)

// FenceEnd matches the closing line of a fenced code block. It is left
// unanchored at the end so closing fences with trailing spaces still match.
const FenceEnd = "^```"

// wrapperKey is the micro region group used for fenced languages.
const wrapperKey = "comment"

// FenceStart returns the case-insensitive regex matching the opening line of
// a fenced code block tagged with language.
func FenceStart(language string) string {
	return "(?i)^```" + regexp.QuoteMeta(language) + "$"
}

// LanguageRuleSet is one language's normalized rule list.
type LanguageRuleSet struct {
	// Language is the canonical identifier used in fence markers.
	Language string

	// Source is the file the rules were read from.
	Source string

	// Rules is a sequence node of rule items.
	Rules *yaml.Node
}

// MergedDocument is the combined rule list handed to the document writer.
type MergedDocument struct {
	// Rules is the top-level sequence: wrapped fenced languages in input
	// order, followed by the markdown host rules.
	Rules *yaml.Node

	// Languages lists the canonical identifiers that were added, in order.
	Languages []string

	// Foot is comment text of markdown rules that had no item to sit under.
	// It belongs after the whole rule list.
	Foot string
}

// Builder accumulates language rule sets into a MergedDocument.
// A Builder is not safe for concurrent use.
type Builder struct {
	wrapped   []*yaml.Node
	host      []*yaml.Node
	hostFoot  string
	languages []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a language. The markdown rules are kept aside and spliced in
// after all wrapped languages; every other language is wrapped in a
// "comment" region keyed by its fence markers. Identifiers that repeat are
// appended again, not merged.
func (b *Builder) Add(set LanguageRuleSet) {
	rules := set.Rules
	if rules == nil {
		rules = newSequence()
	}

	b.languages = append(b.languages, set.Language)

	if set.Language == langid.Markdown {
		Normalize(rules)
		b.addHost(rules)
		return
	}

	// Comment text left on the sequence goes to the end of the region so it
	// stays inside this language's wrapper.
	foot := rules.FootComment
	rules.FootComment = ""

	wrapper := Wrap(set.Language, rules)
	Normalize(wrapper)
	appendFoot(wrapper.Content[1], foot)
	b.wrapped = append(b.wrapped, wrapper)
}

// addHost splices markdown items into the host list. Comment text left on
// the sequence itself stays with the markdown rules: below the last host
// item, or above the next one when none exists yet.
func (b *Builder) addHost(rules *yaml.Node) {
	if len(rules.Content) > 0 && b.hostFoot != "" {
		first := rules.Content[0]
		first.HeadComment = joinComments(b.hostFoot, first.HeadComment)
		b.hostFoot = ""
	}
	b.host = append(b.host, rules.Content...)

	if rules.FootComment == "" {
		return
	}
	if n := len(b.host); n > 0 {
		appendFoot(b.host[n-1], rules.FootComment)
	} else {
		b.hostFoot = joinComments(b.hostFoot, rules.FootComment)
	}
	rules.FootComment = ""
}

// Len returns the number of languages added so far.
func (b *Builder) Len() int {
	return len(b.languages)
}

// Document returns the merged rule list. It may be called more than once.
func (b *Builder) Document() *MergedDocument {
	seq := newSequence()
	seq.Content = make([]*yaml.Node, 0, len(b.wrapped)+len(b.host))
	seq.Content = append(seq.Content, b.wrapped...)
	seq.Content = append(seq.Content, b.host...)

	return &MergedDocument{
		Rules:     seq,
		Languages: append([]string(nil), b.languages...),
		Foot:      b.hostFoot,
	}
}

// Wrap builds the region item
//
//	- comment:
//	    start: (?i)^```<language>$
//	    end: ^```
//	    rules: <rules>
//
// with a header comment naming the language.
func Wrap(language string, rules *yaml.Node) *yaml.Node {
	region := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	region.Content = []*yaml.Node{
		scalar("start"), scalar(FenceStart(language)),
		scalar("end"), scalar(FenceEnd),
		scalar(RulesKey), rules,
	}

	item := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	item.Content = []*yaml.Node{scalar(wrapperKey), region}
	item.HeadComment = HeaderComment(language)

	return item
}

// HeaderComment returns the comment placed above a wrapped language.
func HeaderComment(language string) string {
	name := langid.DisplayName(language)
	if name == "" || name == language {
		return fmt.Sprintf("# ----- Rule set for language: %s -----", language)
	}
	return fmt.Sprintf("# ----- Rule set for language: %s (%s) -----", language, name)
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
