package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RulesKey is the key micro expects on every region rule.
const RulesKey = "rules"

// Normalize makes every mapping value that is itself a mapping carry a
// "rules" key holding a list. Missing keys are appended as "rules: []" and a
// null "rules" value is replaced by an empty list. Sequences are walked
// element by element; scalars and aliases end the walk.
//
// Normalize is idempotent.
func Normalize(node *yaml.Node) {
	if node == nil {
		return
	}

	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			Normalize(child)
		}
	case yaml.MappingNode:
		for i := 1; i < len(node.Content); i += 2 {
			value := node.Content[i]
			switch value.Kind {
			case yaml.MappingNode:
				ensureRules(value)
				Normalize(value)
			case yaml.SequenceNode:
				Normalize(value)
			}
		}
	case yaml.ScalarNode, yaml.AliasNode:
	}
}

// ensureRules adds or repairs the "rules" entry of a mapping.
func ensureRules(mapping *yaml.Node) {
	if value := lookup(mapping, RulesKey); value != nil {
		if isNull(value) {
			*value = *newSequence()
			value.Style = yaml.FlowStyle
		}
		return
	}

	empty := newSequence()
	empty.Style = yaml.FlowStyle
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: RulesKey},
		empty,
	)
}

// Violation is a mapping that breaks the invariant Normalize establishes.
type Violation struct {
	// Path is a dotted path to the offending mapping, e.g. "[0].comment".
	Path string

	// Line is the mapping's source line, or 0 for synthesized nodes.
	Line int

	// Reason describes what is wrong.
	Reason string
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s", v.Path, v.Line, v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// Check returns every place where node breaks the invariant.
func Check(node *yaml.Node) []Violation {
	var out []Violation
	check(node, "", &out)
	return out
}

func check(node *yaml.Node, path string, out *[]Violation) {
	if node == nil {
		return
	}

	switch node.Kind {
	case yaml.DocumentNode:
		for _, child := range node.Content {
			check(child, path, out)
		}
	case yaml.SequenceNode:
		for i, child := range node.Content {
			check(child, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			childPath := joinPath(path, key.Value)
			if value.Kind == yaml.MappingNode {
				rules := lookup(value, RulesKey)
				switch {
				case rules == nil:
					*out = append(*out, Violation{Path: childPath, Line: value.Line, Reason: "missing rules key"})
				case rules.Kind != yaml.SequenceNode:
					*out = append(*out, Violation{Path: childPath, Line: rules.Line, Reason: "rules is not a list"})
				}
			}
			check(value, childPath, out)
		}
	case yaml.ScalarNode, yaml.AliasNode:
	}
}

// lookup returns the value for key in a mapping node, or nil.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Kind == yaml.ScalarNode && mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}
