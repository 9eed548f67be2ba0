package validator

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseSpecs decodes a YAML spec document. Key order is preserved.
//
// A mapping of names to mappings yields Named:
//
//	foo: {is: int}
//	bar: {is: string, regex: "^(fee|fye|foe|fum)$", default: fee}
//
// A sequence of mappings yields Positional, and a single mapping whose first
// value is a scalar yields a ParamSpec. Builders and "instanceof" arguments
// given as strings refer to functions registered with WithFunc and types
// registered with WithType.
func ParseSpecs(data []byte) (SpecSet, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidSpec, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Named{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.MappingNode:
		if len(root.Content) == 0 {
			return Named{}, nil
		}
		first := root.Content[1]
		if first.Kind == yaml.MappingNode || first.Kind == yaml.SequenceNode {
			named, err := decodeNamed(root)
			if err != nil {
				return nil, err
			}
			return named, nil
		}
		spec, err := decodeParamSpec(root)
		if err != nil {
			return nil, err
		}
		return spec, nil
	case yaml.SequenceNode:
		positional, err := decodePositional(root)
		if err != nil {
			return nil, err
		}
		return positional, nil
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return Named{}, nil
		}
	}
	return nil, fmt.Errorf("%w: line %d: expected a mapping or a sequence", ErrInvalidSpec, root.Line)
}

func decodeNamed(n *yaml.Node) (Named, error) {
	out := make(Named, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, body := n.Content[i], n.Content[i+1]
		spec, err := decodeParamSpec(body)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", name.Value, err)
		}
		out = append(out, NamedSpec{Name: name.Value, Spec: spec})
	}
	return out, nil
}

func decodePositional(n *yaml.Node) (Positional, error) {
	out := make(Positional, 0, len(n.Content))
	for i, item := range n.Content {
		spec, err := decodeParamSpec(item)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		out = append(out, spec)
	}
	return out, nil
}

func decodeParamSpec(n *yaml.Node) (ParamSpec, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: line %d: a parameter spec must be a mapping", ErrInvalidSpec, n.Line)
	}
	spec := make(ParamSpec, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], n.Content[i+1]
		var arg any
		if err := value.Decode(&arg); err != nil {
			return nil, errors.Join(ErrInvalidSpec, err)
		}
		spec = append(spec, Rule{Name: key.Value, Arg: arg})
	}
	return spec, nil
}
