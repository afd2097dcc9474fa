package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Long-form keys of object, array and group.
const (
	keyFrom         = "from"
	keyInstructions = "instructions"
	keyBy           = "by"
	keyAggregate    = "aggregate"
)

// Modifier keys that accompany an operator.
const (
	keyField = "field"
	keySep   = "sep"
)

// --- Instructions YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Instructions.
// Accepts a mapping from destination field to spec and keeps its order.
func (ins *Instructions) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)

	if isNull(node) {
		*ins = nil
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: instructions must be a mapping, got %s", node.Line, kindName(node))
	}

	out := make(Instructions, 0, len(node.Content)/2)
	seen := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]

		var name string

		err := key.Decode(&name)
		if err != nil {
			return fmt.Errorf("line %d: destination field: %w", key.Line, err)
		}

		if _, dup := seen[name]; dup {
			return fmt.Errorf("line %d: duplicate destination field %q", key.Line, name)
		}

		seen[name] = struct{}{}

		var spec Spec

		err = spec.UnmarshalYAML(val)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}

		out = append(out, Entry{Name: name, Spec: spec})
	}

	*ins = out

	return nil
}

// MarshalYAML implements custom YAML marshaling for Instructions.
// Outputs a mapping in instruction order.
func (ins Instructions) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range ins {
		var val yaml.Node

		err := val.Encode(e.Spec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", e.Name, err)
		}

		node.Content = append(node.Content, stringNode(e.Name), &val)
	}

	return node, nil
}

// --- Spec YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for Spec.
// Accepts:
//   - A field name: "NAME"
//   - An operator mapping: {path: NAME.FIRST}, {sum: AMOUNT}
//   - A named strategy with an input path: {strategy: upper, field: NAME}
//   - Nested trees: {object: {...}}, {array: {from: X, instructions: {...}}}
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)

	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() != "!!str" {
			return fmt.Errorf("line %d: expected a field name or an operator mapping, got %s", node.Line, node.Value)
		}

		*s = Spec{Kind: KindAlias, Field: node.Value}

		return nil

	case yaml.MappingNode:
		return s.decodeOperator(node)

	default:
		return fmt.Errorf("line %d: expected a field name or an operator mapping, got %s", node.Line, kindName(node))
	}
}

func (s *Spec) decodeOperator(node *yaml.Node) error {
	*s = Spec{}

	var modifiers []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], resolveAlias(node.Content[i+1])

		name := key.Value

		kind, isOperator := operators[name]

		switch {
		case isOperator:
			if s.Kind != KindInvalid {
				return fmt.Errorf("line %d: more than one operator: %s and %s", key.Line, s.Kind, name)
			}

			s.Kind = kind

			err := s.decodeOperand(val)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, name, err)
			}

		case name == keyField:
			modifiers = append(modifiers, name)

			err := val.Decode(&s.Field)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, name, err)
			}

		case name == keySep:
			modifiers = append(modifiers, name)

			err := val.Decode(&s.Sep)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", val.Line, name, err)
			}

		default:
			s.Unknown = append(s.Unknown, name)
		}
	}

	for _, m := range modifiers {
		if s.Kind == KindInvalid {
			break
		}

		if (m == keyField && s.Kind != KindStrategy) || (m == keySep && s.Kind != KindJoin) {
			return fmt.Errorf("line %d: %q does not apply to %s", node.Line, m, s.Kind)
		}
	}

	return nil
}

func (s *Spec) decodeOperand(val *yaml.Node) error {
	switch s.Kind {
	case KindConst:
		return val.Decode(&s.Const)

	case KindJoin:
		return val.Decode(&s.Fields)

	case KindStrategy:
		return val.Decode(&s.Strategy)

	case KindCount:
		var on bool

		err := val.Decode(&on)
		if err != nil {
			return err
		}

		if !on {
			return errors.New("only count: true is meaningful")
		}

		return nil

	case KindObject, KindArray, KindGroup:
		return s.decodeBody(val)

	default:
		return val.Decode(&s.Field)
	}
}

// decodeBody reads the operand of object, array and group.
func (s *Spec) decodeBody(val *yaml.Node) error {
	if val.Kind != yaml.MappingNode {
		return fmt.Errorf("expected a mapping, got %s", kindName(val))
	}

	if s.Kind != KindGroup && !isLongForm(val) {
		return s.Instructions.UnmarshalYAML(val)
	}

	for i := 0; i+1 < len(val.Content); i += 2 {
		key, v := val.Content[i], val.Content[i+1]

		var err error

		switch key.Value {
		case keyFrom:
			err = v.Decode(&s.From)
		case keyInstructions:
			err = s.Instructions.UnmarshalYAML(v)
		case keyBy:
			err = v.Decode(&s.By)
		case keyAggregate:
			err = v.Decode(&s.Aggregate)
		default:
			s.Unknown = append(s.Unknown, key.Value)
		}

		if err != nil {
			return fmt.Errorf("%s: %w", key.Value, err)
		}

		if s.Kind != KindGroup && (key.Value == keyBy || key.Value == keyAggregate) {
			return fmt.Errorf("%q only applies to group", key.Value)
		}
	}

	return nil
}

// MarshalYAML implements custom YAML marshaling for Spec.
// Aliases become plain strings; everything else an operator mapping.
func (s Spec) MarshalYAML() (any, error) {
	if s.Kind == KindAlias {
		return s.Field, nil
	}

	if s.Kind == KindInvalid {
		return nil, errors.New("spec has no operator")
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, v any) error {
		var val yaml.Node

		err := val.Encode(v)
		if err != nil {
			return err
		}

		node.Content = append(node.Content, stringNode(key), &val)

		return nil
	}

	var err error

	switch s.Kind {
	case KindConst:
		err = add(s.Kind.String(), s.Const)
	case KindJoin:
		err = add(s.Kind.String(), s.Fields)
		if err == nil && s.Sep != "" {
			err = add(keySep, s.Sep)
		}
	case KindStrategy:
		err = add(s.Kind.String(), s.Strategy)
		if err == nil && s.Field != "" {
			err = add(keyField, s.Field)
		}
	case KindCount:
		err = add(s.Kind.String(), true)
	case KindObject, KindArray, KindGroup:
		var body any

		body, err = s.body()
		if err == nil {
			err = add(s.Kind.String(), body)
		}
	default:
		err = add(s.Kind.String(), s.Field)
	}

	if err != nil {
		return nil, err
	}

	return node, nil
}

// body renders the operand of object, array and group, preferring the short
// form where it round-trips.
func (s Spec) body() (any, error) {
	if s.Kind == KindObject && s.From == "" && !looksLongForm(s.Instructions) {
		return s.Instructions, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range []struct {
		key string
		val string
	}{
		{keyFrom, s.From},
		{keyBy, s.By},
		{keyAggregate, s.Aggregate},
	} {
		if kv.val != "" {
			node.Content = append(node.Content, stringNode(kv.key), stringNode(kv.val))
		}
	}

	if s.Aggregate == "" || !s.Instructions.IsEmpty() {
		var val yaml.Node

		err := val.Encode(s.Instructions)
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, stringNode(keyInstructions), &val)
	}

	return node, nil
}

func isLongForm(node *yaml.Node) bool {
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case keyFrom, keyInstructions:
			return true
		}
	}

	return false
}

// looksLongForm reports whether a short-form tree would be read back as the
// long form.
func looksLongForm(ins Instructions) bool {
	for _, e := range ins {
		if e.Name == keyFrom || e.Name == keyInstructions {
			return true
		}
	}

	return false
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar " + node.ShortTag()
	case yaml.AliasNode:
		return "alias"
	default:
		return "nothing"
	}
}
