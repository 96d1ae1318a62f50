package rules

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser parses one block of rule text into a YAML node tree.
// A nil node with a nil error means the text holds no content.
type Parser interface {
	Parse(text string) (*yaml.Node, error)
}

// StrictParser is the default Parser. On top of yaml.v3 it rejects
// multi-document input and duplicate mapping keys.
type StrictParser struct{}

// Parse implements Parser.
func (StrictParser) Parse(text string) (*yaml.Node, error) {
	decoder := yaml.NewDecoder(strings.NewReader(text))

	var doc yaml.Node
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var extra yaml.Node
	switch err := decoder.Decode(&extra); {
	case err == nil:
		return nil, ErrMultipleDocuments
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := checkDuplicateKeys(&doc); err != nil {
		return nil, err
	}

	if isEmptyDocument(&doc) {
		return nil, nil
	}

	return &doc, nil
}

func checkDuplicateKeys(node *yaml.Node) error {
	if node == nil {
		return nil
	}

	if node.Kind == yaml.MappingNode {
		seen := make(map[string]int, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			if line, ok := seen[key.Value]; ok {
				return fmt.Errorf("line %d: %w %q (first defined at line %d)",
					key.Line, ErrDuplicateKey, key.Value, line)
			}
			seen[key.Value] = key.Line
		}
	}

	if node.Kind == yaml.AliasNode {
		return nil
	}

	for _, child := range node.Content {
		if err := checkDuplicateKeys(child); err != nil {
			return err
		}
	}
	return nil
}

func isEmptyDocument(doc *yaml.Node) bool {
	switch doc.Kind {
	case 0:
		return true
	case yaml.DocumentNode:
		if len(doc.Content) == 0 {
			return true
		}
		root := doc.Content[0]
		return root.Kind == yaml.ScalarNode && root.Tag == "!!null" && root.Value == ""
	default:
		return false
	}
}

// rootSequence returns the top-level sequence of a parsed block.
func rootSequence(doc *yaml.Node) (*yaml.Node, error) {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: %w", root.Line, ErrNotSequence)
	}
	return root, nil
}
