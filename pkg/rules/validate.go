package rules

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Sink receives blocks removed from a language's rules.
// Report must not be relied upon to stop processing; a panicking Sink is
// recovered.
type Sink interface {
	Report(language, blockText string, err error)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(language, blockText string, err error)

// Report implements Sink.
func (f SinkFunc) Report(language, blockText string, err error) {
	f(language, blockText, err)
}

// ParsedBlock is a block that parsed cleanly.
type ParsedBlock struct {
	Block Block

	// Items are the top-level list items of the block, in order.
	Items []*yaml.Node
}

// QuarantinedBlock is a block that failed to parse.
type QuarantinedBlock struct {
	Block Block

	// Err is a *BlockParseError.
	Err error

	// Text is the commented-out replacement produced by Quarantine.
	Text string
}

// Fragment is either a ParsedBlock or a QuarantinedBlock.
type Fragment struct {
	Parsed      *ParsedBlock
	Quarantined *QuarantinedBlock
}

// Text returns the fragment's output text: the source text of a parsed block
// or the comment text of a quarantined one.
func (f Fragment) Text() string {
	if f.Quarantined != nil {
		return f.Quarantined.Text
	}
	if f.Parsed != nil {
		return f.Parsed.Block.Text
	}
	return ""
}

// Original returns the source text of the fragment.
func (f Fragment) Original() string {
	if f.Quarantined != nil {
		return f.Quarantined.Block.Text
	}
	if f.Parsed != nil {
		return f.Parsed.Block.Text
	}
	return ""
}

// Validation is the outcome of validating one language's blocks.
type Validation struct {
	Language  string
	Fragments []Fragment
}

// Validate parses every block in isolation. Blocks that fail are quarantined
// and reported to sink; the remaining blocks are unaffected.
func Validate(language string, blocks []Block, parser Parser, sink Sink) *Validation {
	if parser == nil {
		parser = StrictParser{}
	}

	result := &Validation{
		Language:  language,
		Fragments: make([]Fragment, 0, len(blocks)),
	}

	for _, block := range blocks {
		items, err := parseBlock(parser, block)
		if err == nil {
			result.Fragments = append(result.Fragments, Fragment{
				Parsed: &ParsedBlock{Block: block, Items: items},
			})
			continue
		}

		blockErr := &BlockParseError{Language: language, Line: block.Line, Err: err}
		result.Fragments = append(result.Fragments, Fragment{
			Quarantined: &QuarantinedBlock{
				Block: block,
				Err:   blockErr,
				Text:  Quarantine(block.Text, err),
			},
		})
		report(sink, language, block.Text, blockErr)
	}

	return result
}

// parseBlock parses one block and returns its list items.
func parseBlock(parser Parser, block Block) (items []*yaml.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			items, err = nil, panicError(r)
		}
	}()

	doc, err := parser.Parse(block.Text)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	seq, err := rootSequence(doc)
	if err != nil {
		return nil, err
	}
	liftComments(doc, seq)
	return seq.Content, nil
}

// liftComments moves the comments yaml.v3 attached to the document and
// sequence nodes onto the first and last items, which are the only nodes
// kept from a block.
func liftComments(doc, seq *yaml.Node) {
	if len(seq.Content) == 0 {
		return
	}

	head := []string{seq.HeadComment}
	foot := []string{seq.FootComment}
	if doc != seq {
		head = []string{doc.HeadComment, seq.HeadComment}
		foot = append(foot, doc.FootComment)
	}

	first := seq.Content[0]
	first.HeadComment = joinComments(append(head, first.HeadComment)...)
	appendFoot(seq.Content[len(seq.Content)-1], joinComments(foot...))

	doc.HeadComment, doc.FootComment = "", ""
	seq.HeadComment, seq.FootComment = "", ""
}

// report forwards to sink and swallows any panic it raises.
func report(sink Sink, language, text string, err error) {
	if sink == nil {
		return
	}
	defer func() { _ = recover() }()
	sink.Report(language, text, err)
}

// Parsed returns the blocks that parsed cleanly, in order.
func (v *Validation) Parsed() []ParsedBlock {
	var out []ParsedBlock
	for _, f := range v.Fragments {
		if f.Parsed != nil {
			out = append(out, *f.Parsed)
		}
	}
	return out
}

// Quarantined returns the blocks that failed to parse, in order.
func (v *Validation) Quarantined() []QuarantinedBlock {
	var out []QuarantinedBlock
	for _, f := range v.Fragments {
		if f.Quarantined != nil {
			out = append(out, *f.Quarantined)
		}
	}
	return out
}

// Text returns the section with quarantined blocks commented out.
func (v *Validation) Text() string {
	var sb strings.Builder
	for _, f := range v.Fragments {
		sb.WriteString(f.Text())
	}
	return sb.String()
}

// Original returns the section text as it was before validation.
func (v *Validation) Original() string {
	var sb strings.Builder
	for _, f := range v.Fragments {
		sb.WriteString(f.Original())
	}
	return sb.String()
}

// Tree assembles the parsed items into one sequence node. The comment text
// of each quarantined block, and of each block holding only comments, is
// attached above the next item, or below the last item when no item follows.
// With no items at all the text is left on the sequence's FootComment.
func (v *Validation) Tree() *yaml.Node {
	seq := newSequence()

	var pending []string
	for _, f := range v.Fragments {
		if f.Quarantined != nil {
			pending = append(pending, strings.TrimSuffix(f.Quarantined.Text, "\n"))
			continue
		}
		if f.Parsed == nil {
			continue
		}
		if len(f.Parsed.Items) == 0 {
			if comments := commentLines(f.Parsed.Block.Text); comments != "" {
				pending = append(pending, comments)
			}
			continue
		}
		for _, item := range f.Parsed.Items {
			if len(pending) > 0 {
				item.HeadComment = joinComments(append(pending, item.HeadComment)...)
				pending = nil
			}
			seq.Content = append(seq.Content, item)
		}
	}

	if len(pending) > 0 {
		if n := len(seq.Content); n > 0 {
			appendFoot(seq.Content[n-1], joinComments(pending...))
		} else {
			seq.FootComment = joinComments(append([]string{seq.FootComment}, pending...)...)
		}
	}

	return seq
}

// appendFoot attaches comment below node. On a mapping the comment goes on
// the last key, which the encoder writes after that key's whole value and
// inside the mapping.
func appendFoot(node *yaml.Node, comment string) {
	if node == nil || comment == "" {
		return
	}
	target := node
	if node.Kind == yaml.MappingNode && len(node.Content) >= 2 {
		target = node.Content[len(node.Content)-2]
	}
	target.FootComment = joinComments(target.FootComment, comment)
}

// commentLines returns the comment lines of text with indentation removed.
func commentLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func joinComments(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

func newSequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}
