package bytebuf

import (
	"encoding/base64"
	"fmt"

	"gopkg.in/yaml.v3"
)

const binaryTag = "!!binary"

// MarshalYAML writes the contents as a base64 !!binary scalar.
func (b *Bytes) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   binaryTag,
		Value: base64.StdEncoding.EncodeToString(b.bytes()),
	}, nil
}

// UnmarshalYAML accepts a !!binary scalar or a plain string, which is taken
// as its UTF-8 bytes. The result is owned by b, which becomes live again if
// it had been moved.
func (b *Bytes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bytebuf: expected a scalar, got %s", node.Line, node.ShortTag())
	}
	if node.ShortTag() == binaryTag {
		data, err := base64.StdEncoding.DecodeString(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: bytebuf: %w", node.Line, err)
		}
		b.b, b.live = data, true
		return nil
	}
	b.b, b.live = []byte(node.Value), true
	return nil
}
