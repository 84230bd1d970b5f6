package decl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"entity-projector/internal/common"
)

// --- StringOrArray ---

// UnmarshalYAML accepts either a single string or an array of strings.
// An empty string or an empty array both decode to a non-nil empty list.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		arr := make([]string, 0, len(node.Content))

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %s", node.Line, kindName(node))
	}
}

// UnmarshalTOML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		if val != "" {
			*s = StringOrArray{val}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case []any:
		arr, err := stringsOf(val)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("expected string or array, got %T", v)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

// IsZero reports whether the list is absent. An empty list is kept when
// marshaling since it differs from an absent one.
func (s StringOrArray) IsZero() bool { return s == nil }

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- AliasName ---

// UnmarshalYAML records non-string aliases instead of rejecting them.
func (a *AliasName) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		*a = AliasName{Value: node.Value}
		return nil
	}

	*a = AliasName{Invalid: describeNode(node)}

	return nil
}

// UnmarshalTOML records non-string aliases instead of rejecting them.
func (a *AliasName) UnmarshalTOML(v any) error {
	if str, ok := v.(string); ok {
		*a = AliasName{Value: str}
		return nil
	}

	*a = AliasName{Invalid: fmt.Sprintf("%T %v", v, v)}

	return nil
}

// MarshalYAML outputs the alias as a plain string.
func (a AliasName) MarshalYAML() (any, error) {
	if a.Invalid != "" {
		return nil, fmt.Errorf("alias: %s is not a string", a.Invalid)
	}

	return a.Value, nil
}

// MarshalTOML outputs the alias as a TOML basic string.
func (a AliasName) MarshalTOML() ([]byte, error) {
	if a.Invalid != "" {
		return nil, fmt.Errorf("alias: %s is not a string", a.Invalid)
	}

	return []byte(strconv.Quote(a.Value)), nil
}

// --- SlotList ---

// UnmarshalYAML accepts only a sequence of strings. Anything else is
// recorded as invalid.
func (s *SlotList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		*s = SlotList{Invalid: describeNode(node)}
		return nil
	}

	names := make([]string, 0, len(node.Content))

	err := node.Decode(&names)
	if err != nil {
		return err
	}

	*s = SlotList{Names: names}

	return nil
}

// UnmarshalTOML accepts only an array of strings.
func (s *SlotList) UnmarshalTOML(v any) error {
	arr, ok := v.([]any)
	if !ok {
		*s = SlotList{Invalid: fmt.Sprintf("%T %v", v, v)}
		return nil
	}

	names, err := stringsOf(arr)
	if err != nil {
		return err
	}

	*s = SlotList{Names: names}

	return nil
}

// MarshalYAML outputs the slot names as a sequence.
func (s SlotList) MarshalYAML() (any, error) {
	if s.Invalid != "" {
		return nil, fmt.Errorf("aux: %s is not a list", s.Invalid)
	}

	return s.Names, nil
}

// MarshalTOML outputs the slot names as a TOML array.
func (s SlotList) MarshalTOML() ([]byte, error) {
	if s.Invalid != "" {
		return nil, fmt.Errorf("aux: %s is not a list", s.Invalid)
	}

	quoted := make([]string, len(s.Names))
	for i, n := range s.Names {
		quoted[i] = strconv.Quote(n)
	}

	return []byte("[" + strings.Join(quoted, ", ") + "]"), nil
}

func stringsOf(items []any) ([]string, error) {
	out := make([]string, 0, len(items))

	for i, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("item %d: expected string, got %T", i, item)
		}

		out = append(out, str)
	}

	return out, nil
}

func describeNode(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode {
		return fmt.Sprintf("%s %q", node.ShortTag(), node.Value)
	}

	return kindName(node)
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return common.UnknownStr
	}
}
