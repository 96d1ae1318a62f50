// Package document serializes a merged rule list into a micro syntax file.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfence/pkg/rules"
)

// Defaults for the generated syntax file.
const (
	DefaultFiletype       = "markdown"
	DefaultDetectFilename = `\.(livemd|md|mkd|mkdn|markdown)$`

	// Indent matches the indentation used by micro's bundled syntax files.
	Indent = 4
)

// Header holds the top-level keys written before "rules".
type Header struct {
	Filetype       string
	DetectFilename string
}

// DefaultHeader returns the header for micro's markdown filetype.
func DefaultHeader() Header {
	return Header{
		Filetype:       DefaultFiletype,
		DetectFilename: DefaultDetectFilename,
	}
}

func (h Header) withDefaults() Header {
	if h.Filetype == "" {
		h.Filetype = DefaultFiletype
	}
	if h.DetectFilename == "" {
		h.DetectFilename = DefaultDetectFilename
	}
	return h
}

// Build returns the document node
//
//	filetype: <filetype>
//	detect:
//	    filename: <regex>
//	rules: <merged rules>
func Build(doc *rules.MergedDocument, header Header) *yaml.Node {
	header = header.withDefaults()

	ruleList := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if doc != nil && doc.Rules != nil {
		ruleList = doc.Rules
	}

	// A foot comment on the last key is written after the whole rule list.
	rulesKey := str(rules.RulesKey)
	if doc != nil {
		rulesKey.FootComment = doc.Foot
	}

	detect := mapping(
		str("filename"), str(header.DetectFilename),
	)

	root := mapping(
		str("filetype"), str(header.Filetype),
		str("detect"), detect,
		rulesKey, ruleList,
	)

	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}
}

// Encode serializes the merged document with its header.
func Encode(doc *rules.MergedDocument, header Header) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(Indent)

	if err := encoder.Encode(Build(doc, header)); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// EncodeText writes the header as text and appends body, the output of the
// text assembly path, under "rules:".
func EncodeText(header Header, body string) []byte {
	header = header.withDefaults()

	var sb strings.Builder
	sb.WriteString("filetype: " + header.Filetype + "\n")
	sb.WriteString("detect:\n")
	sb.WriteString(strings.Repeat(" ", Indent) + "filename: " + header.DetectFilename + "\n")
	sb.WriteString(rules.RulesKey + ":\n")
	sb.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: content}
}

func str(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
