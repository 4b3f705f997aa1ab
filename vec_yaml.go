package borrow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the elements as a plain YAML sequence.
func (v *Vec[T]) MarshalYAML() (any, error) {
	s := *v.ptr()
	if s == nil {
		s = []T{}
	}
	return s, nil
}

// UnmarshalYAML replaces the contents with a decoded sequence, which the Vec
// then owns. A bounded Vec keeps its ceiling and refuses longer input.
func (v *Vec[T]) UnmarshalYAML(node *yaml.Node) error {
	p := v.ptr()
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a sequence, got %s", node.Line, node.ShortTag())
	}
	var s []T
	if err := node.Decode(&s); err != nil {
		return err
	}
	if v.bounded && len(s) > v.limit {
		return fmt.Errorf("line %d: %w: %d elements, ceiling %d", node.Line, ErrCapacityExceeded, len(s), v.limit)
	}
	*p = s
	return nil
}
