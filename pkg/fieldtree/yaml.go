package fieldtree

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateFromYAML parses a declarative field template from a YAML document.
// Mapping key order in the document becomes template order, which is why this
// decodes through yaml.Node instead of a map — Go maps would shuffle the very
// order the tree exists to preserve. Null values declare empty leaves, scalars
// declare defaults and nested mappings declare branches:
//
//	transaction:
//	  amount: ~
//	  credit_card:
//	    number: ~
//	    cvv: ~
//	  type: sale
func TemplateFromYAML(data []byte) (Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fieldtree: parse template: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("fieldtree: parse template: empty document")
	}
	return templateFromNode(doc.Content[0], "")
}

func templateFromNode(n *yaml.Node, parent string) (Template, error) {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fieldtree: parse template: %s must be a mapping, got %s", describeScope(parent), nodeKind(n))
	}

	tpl := make(Template, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]
		name := keyNode.Value
		if name == "" {
			return nil, fmt.Errorf("fieldtree: parse template: empty field name under %s", describeScope(parent))
		}

		path := name
		if parent != "" {
			path = parent + "." + name
		}

		value := valueNode
		if value.Kind == yaml.AliasNode {
			value = value.Alias
		}
		switch value.Kind {
		case yaml.ScalarNode:
			if value.Tag == "!!null" {
				tpl = append(tpl, Field(name))
			} else {
				tpl = append(tpl, Value(name, value.Value))
			}
		case yaml.MappingNode:
			children, err := templateFromNode(value, path)
			if err != nil {
				return nil, err
			}
			tpl = append(tpl, Entry{Name: name, Children: children})
		default:
			return nil, fmt.Errorf("fieldtree: parse template: field %q must be null, scalar or mapping, got %s", path, nodeKind(value))
		}
	}
	return tpl, nil
}

func describeScope(parent string) string {
	if parent == "" {
		return "template root"
	}
	return fmt.Sprintf("field %q", parent)
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "unknown node"
	}
}
